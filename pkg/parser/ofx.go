package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/aclindsa/ofxgo"
	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"

	"github.com/yurifrl/ofxconv/pkg/config"
	"github.com/yurifrl/ofxconv/pkg/models"
)

var parcelaRe = regexp.MustCompile(`Parcela (\d+)/(\d+)`)

// OFXParser wraps transactions from an already-OFX-formatted source
// file. Most fields pass through; the identifier is the interesting
// part. Monthly card exports repeat every installment of a purchase
// under the purchase's original id, so keeping the source id for rows
// past the first installment would make distinct charges collide
// during downstream deduplication. The first occurrence keeps the
// source id and anchors the series; later ones fall back to the
// content hash.
type OFXParser struct {
	logger *log.Logger

	// suppressMemo marks additional memo shapes whose source id must
	// be discarded, beyond the installment rule.
	suppressMemo func(memo string) bool
}

func NewOFXParser(_ *config.Account, logger *log.Logger) *OFXParser {
	return &OFXParser{logger: logger}
}

// NewNubankParser extends the passthrough parser: Nubank reports
// anticipated-payment discounts with a memo that repeats across
// exports the same way installments do, so it gets the same id
// suppression.
func NewNubankParser(cfg *config.Account, logger *log.Logger) *OFXParser {
	p := NewOFXParser(cfg, logger)
	p.suppressMemo = func(memo string) bool {
		return strings.Contains(memo, "Desconto Antecipação")
	}
	return p
}

// InstallmentID decides which identifier survives for a source
// transaction: the source id for non-installment rows and for the
// first installment ("Parcela 1/N"), the empty string otherwise so a
// content hash is derived instead.
func (p *OFXParser) InstallmentID(tranID, memo string) string {
	if m := parcelaRe.FindStringSubmatch(memo); m != nil {
		current, err := strconv.Atoi(m[1])
		if err == nil && current > 1 {
			return ""
		}
		return tranID
	}
	if p.suppressMemo != nil && p.suppressMemo(memo) {
		return ""
	}
	return tranID
}

func (p *OFXParser) Parse(rec Record) (*models.Transaction, error) {
	stmt := rec.Stmt
	if stmt == nil {
		return nil, nil
	}

	timestamp := stmt.DtPosted.Time
	description := strings.TrimSpace(stmt.Memo.String())
	if description == "" {
		description = strings.TrimSpace(stmt.Name.String())
	}
	if timestamp.IsZero() || description == "" {
		p.logger.Debug("dropping invalid source transaction", "fitid", stmt.FiTID.String())
		return nil, nil
	}

	value := decimal.NewFromBigRat(&stmt.TrnAmt.Rat, 2)

	tx, err := models.New(models.Params{
		Timestamp:   timestamp,
		Description: description,
		Value:       value,
		ID:          p.InstallmentID(stmt.FiTID.String(), description),
		Type:        mapTrnType(stmt),
	})
	if err != nil {
		return nil, err
	}
	p.logger.Debug("parsed source transaction", "transaction", tx)
	return tx, nil
}

// mapTrnType keeps only the credit/debit distinction; any other source
// type is dropped so the canonical type derives from the amount sign.
func mapTrnType(stmt *ofxgo.Transaction) string {
	switch stmt.TrnType {
	case ofxgo.TrnTypeCredit:
		return models.TypeCredit
	case ofxgo.TrnTypeDebit:
		return models.TypeDebit
	default:
		return ""
	}
}
