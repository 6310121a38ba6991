package parser

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/yurifrl/ofxconv/pkg/config"
)

// ErrNotImplemented is returned for accounts with no registered parser
// and no usable fallback.
var ErrNotImplemented = fmt.Errorf("no transaction parser implemented")

// New selects the parser variant for an account. The explicit map is
// the extension point for new institutions: adding one means adding a
// case here plus one variant. Unmapped accounts fall back to the OFX
// passthrough parser only when their configured file format is OFX.
func New(cfg *config.Account, logger *log.Logger) (TransactionParser, error) {
	switch cfg.Name() {
	case "xp-conta", "xp-investimentos":
		return NewXPStatementParser(cfg, logger), nil
	case "xp-cartao":
		return NewXPCardParser(cfg, logger), nil
	case "nubank-cartao":
		return NewNubankParser(cfg, logger), nil
	}
	if cfg.Files.Format == config.FormatOFX {
		return NewOFXParser(cfg, logger), nil
	}
	return nil, fmt.Errorf("%w for account %s", ErrNotImplemented, cfg.Name())
}
