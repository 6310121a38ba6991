package reader

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/yurifrl/ofxconv/pkg/config"
	"github.com/yurifrl/ofxconv/pkg/models"
	"github.com/yurifrl/ofxconv/pkg/parser"
)

// Reader iterates a raw source file into records and delegates each to
// the transaction parser, returning only the valid transactions.
type Reader interface {
	ReadTransactions(p parser.TransactionParser, path string) ([]*models.Transaction, error)
}

// ErrNotImplemented is returned for file formats without a reader.
var ErrNotImplemented = fmt.Errorf("no reader implemented")

// New selects the reader for the account's configured file format and
// instantiates it with that format's options.
func New(cfg *config.Account, logger *log.Logger) (Reader, error) {
	switch cfg.Files.Format {
	case config.FormatCSV:
		return NewCSV(cfg.Files, logger)
	case config.FormatXLS:
		return NewXLS(cfg.Files, logger), nil
	case config.FormatOFX:
		return NewOFX(logger), nil
	}
	return nil, fmt.Errorf("%w for file format %q (account %s)", ErrNotImplemented, cfg.Files.Format, cfg.Name())
}
