package reader

import (
	"fmt"
	"os"

	"github.com/aclindsa/ofxgo"
	"github.com/charmbracelet/log"

	"github.com/yurifrl/ofxconv/pkg/models"
	"github.com/yurifrl/ofxconv/pkg/parser"
)

// OFX reads an already-OFX-formatted source document and feeds its
// transaction list through the selected parser.
type OFX struct {
	logger *log.Logger
}

func NewOFX(logger *log.Logger) *OFX {
	return &OFX{logger: logger}
}

func (o *OFX) ReadTransactions(p parser.TransactionParser, path string) ([]*models.Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	resp, err := ofxgo.ParseResponse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source OFX file %s: %w", path, err)
	}

	tranList, err := transactionList(resp)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if tranList == nil {
		return nil, nil
	}

	records := make([]parser.Record, 0, len(tranList.Transactions))
	for i := range tranList.Transactions {
		records = append(records, parser.Record{Stmt: &tranList.Transactions[i]})
	}
	return parser.ParseAll(o.logger, p, records)
}

// transactionList pulls the statement transaction list out of either a
// credit card or a bank message set.
func transactionList(resp *ofxgo.Response) (*ofxgo.TransactionList, error) {
	if len(resp.CreditCard) > 0 {
		stmt, ok := resp.CreditCard[0].(*ofxgo.CCStatementResponse)
		if !ok {
			return nil, fmt.Errorf("unexpected credit card statement type %T", resp.CreditCard[0])
		}
		return stmt.BankTranList, nil
	}
	if len(resp.Bank) > 0 {
		stmt, ok := resp.Bank[0].(*ofxgo.StatementResponse)
		if !ok {
			return nil, fmt.Errorf("unexpected bank statement type %T", resp.Bank[0])
		}
		return stmt.BankTranList, nil
	}
	return nil, fmt.Errorf("no bank or credit card statement in source OFX file")
}
