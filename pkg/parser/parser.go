package parser

import (
	"github.com/aclindsa/ofxgo"
	"github.com/charmbracelet/log"

	"github.com/yurifrl/ofxconv/pkg/models"
)

// Record is one raw entry from a source file. Exactly one of the two
// members is set: Fields for a CSV/XLS row keyed by column header,
// Stmt for a transaction lifted from a source OFX document.
type Record struct {
	Fields map[string]string
	Stmt   *ofxgo.Transaction
}

// TransactionParser maps one raw record to a canonical Transaction.
// A record that fails date or money parsing, or the validity rule
// (timestamp, description and value all present), yields (nil, nil)
// and is dropped by the caller. A record whose source-provided type
// contradicts its amount sign yields an error.
type TransactionParser interface {
	Parse(rec Record) (*models.Transaction, error)
}

// ParseAll applies the parser to each record independently, in order,
// with no cross-record state. Invalid records are dropped; a count
// summary is logged.
func ParseAll(logger *log.Logger, p TransactionParser, recs []Record) ([]*models.Transaction, error) {
	transactions := make([]*models.Transaction, 0, len(recs))
	for _, rec := range recs {
		tx, err := p.Parse(rec)
		if err != nil {
			return nil, err
		}
		if tx == nil {
			continue
		}
		transactions = append(transactions, tx)
	}
	logger.Info("parsed records into transactions",
		"records", len(recs), "transactions", len(transactions), "dropped", len(recs)-len(transactions))
	return transactions, nil
}
