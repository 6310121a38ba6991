package ofx

import (
	"fmt"
	"sort"
	"strings"
	"text/template"
	"time"

	"github.com/charmbracelet/log"

	"github.com/yurifrl/ofxconv/pkg/config"
	"github.com/yurifrl/ofxconv/pkg/models"
)

// ErrNoTransactions is returned when there is nothing to assemble;
// callers skip the output file rather than writing an empty document.
var ErrNoTransactions = fmt.Errorf("no transactions to assemble")

// Assembler renders canonical transactions into a complete OFX
// document for one account.
type Assembler struct {
	cfg    *config.Account
	logger *log.Logger
	now    func() time.Time
}

func NewAssembler(cfg *config.Account, logger *log.Logger) *Assembler {
	return &Assembler{cfg: cfg, logger: logger, now: time.Now}
}

type headerPayload struct {
	DtNow      string
	DtStart    string
	DtEnd      string
	FiOrg      string
	FiID       string
	BankID     string
	BranchID   string
	AcctID     string
	AcctType   string
	Lang       string
	Cur        string
	MsgSet     string
	TrnPrefix  string
	Abbrev     string
	CreditCard bool
}

type transactionPayload struct {
	TrnType  string
	DtPosted string
	Amount   string
	FitID    string
	Memo     string
}

type footerPayload struct {
	Balance   string
	DtEnd     string
	MsgSet    string
	TrnPrefix string
}

// Assemble renders the header, one block per transaction, and the
// footer into a single document. Date bounds and the terminal balance
// come from a sorted copy; the body keeps the caller's order.
func (a *Assembler) Assemble(transactions []*models.Transaction) (string, error) {
	if len(transactions) == 0 {
		return "", ErrNoTransactions
	}
	if err := a.validateAccount(); err != nil {
		return "", err
	}
	a.logger.Info("assembling OFX document", "account", a.cfg.Name(), "transactions", len(transactions))

	sorted := make([]*models.Transaction, len(transactions))
	copy(sorted, transactions)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	parts := make([]string, 0, len(transactions)+2)

	header, err := render(headerTmpl, a.headerPayload(sorted))
	if err != nil {
		return "", err
	}
	parts = append(parts, header)

	for _, tx := range transactions {
		block, err := render(transactionTmpl, transactionPayload{
			TrnType:  tx.Type(),
			DtPosted: FormatTime(tx.Timestamp()),
			Amount:   tx.Value().StringFixed(2),
			FitID:    tx.FitID(),
			Memo:     tx.Description(),
		})
		if err != nil {
			return "", err
		}
		parts = append(parts, block)
	}

	footer, err := render(footerTmpl, a.footerPayload(sorted))
	if err != nil {
		return "", err
	}
	parts = append(parts, footer)

	return strings.Join(parts, "\n"), nil
}

func (a *Assembler) headerPayload(sorted []*models.Transaction) headerPayload {
	accountType := a.cfg.Type
	return headerPayload{
		DtNow:      FormatTime(a.now()),
		DtStart:    FormatTime(sorted[0].Timestamp()),
		DtEnd:      FormatTime(sorted[len(sorted)-1].Timestamp()),
		FiOrg:      a.cfg.FI.Org,
		FiID:       a.cfg.FI.ID,
		BankID:     a.cfg.BankID(),
		BranchID:   a.cfg.Bank.Branch,
		AcctID:     a.cfg.Bank.ID,
		AcctType:   a.cfg.AcctType(),
		Lang:       a.cfg.LangUpper(),
		Cur:        a.cfg.CurUpper(),
		MsgSet:     accountType.MessageSet(),
		TrnPrefix:  trnPrefix(accountType),
		Abbrev:     accountType.Abbreviation(),
		CreditCard: accountType == models.AccountTypeCreditCard,
	}
}

func (a *Assembler) footerPayload(sorted []*models.Transaction) footerPayload {
	last := sorted[len(sorted)-1]
	balance := "0.00"
	if b := last.Balance(); b != nil {
		balance = b.StringFixed(2)
	} else {
		a.logger.Debug("last transaction carries no balance, emitting zero", "account", a.cfg.Name())
	}
	return footerPayload{
		Balance:   balance,
		DtEnd:     FormatTime(last.Timestamp()),
		MsgSet:    a.cfg.Type.MessageSet(),
		TrnPrefix: trnPrefix(a.cfg.Type),
	}
}

// trnPrefix is the statement tag prefix: CCSTMTTRNRS/CCSTMTRS for
// credit cards, plain STMTTRNRS/STMTRS for bank accounts.
func trnPrefix(t models.AccountType) string {
	if t == models.AccountTypeCreditCard {
		return "CC"
	}
	return ""
}

// validateAccount fails loudly when required institution metadata is
// missing, naming the account and the offending field.
func (a *Assembler) validateAccount() error {
	required := []struct {
		field string
		value string
	}{
		{"fi.org", a.cfg.FI.Org},
		{"fi.id", a.cfg.FI.ID},
		{"account.id", a.cfg.Bank.ID},
		{"cur", a.cfg.Currency},
		{"lang", a.cfg.Lang},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("account %s: missing required field %s", a.cfg.Name(), r.field)
		}
	}
	return nil
}

func render(tmpl *template.Template, payload any) (string, error) {
	var b strings.Builder
	if err := tmpl.Execute(&b, payload); err != nil {
		return "", fmt.Errorf("failed to render %s template: %w", tmpl.Name(), err)
	}
	return b.String(), nil
}
