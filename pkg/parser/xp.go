package parser

import (
	"regexp"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/yurifrl/ofxconv/pkg/config"
	"github.com/yurifrl/ofxconv/pkg/models"
)

// Column headers of XP CSV exports.
const (
	colDate        = "Data"
	colDescription = "Descricao"
	colValue       = "Valor"
	colBalance     = "Saldo"
	colInstallment = "Parcela"

	colEstablishment = "Estabelecimento"
)

var (
	// Statement rows carry a full timestamp with a 2-digit year,
	// e.g. "27/11/24 às 12:03:47". Card rows carry a date only with a
	// 4-digit year, e.g. "07/02/2025".
	statementDateRe = regexp.MustCompile(`^(?P<day>\d{2})/(?P<month>\d{2})/(?P<year>\d{2})\D+(?P<hour>\d{2}):(?P<min>\d{2}):(?P<sec>\d{2})$`)
	cardDateRe      = regexp.MustCompile(`^(?P<day>\d{2})/(?P<month>\d{2})/(?P<year>\d{4})$`)

	// Statement amounts place the sign before the currency marker
	// ("-R$ 1.439,80"), card amounts after it ("R$ -1.439,80").
	statementValueRe = regexp.MustCompile(`^(?P<sign>-)?R\$ (?P<value>[\d.,]+)$`)
	cardValueRe      = regexp.MustCompile(`^R\$ (?P<sign>-)?(?P<value>[\d.,]+)$`)

	installmentRe = regexp.MustCompile(`^(\d+) de (\d+)`)
)

// XPParser handles XP CSV exports. The statement and card variants
// share the row shape but differ in the description column and in the
// date/money serialization conventions.
type XPParser struct {
	logger         *log.Logger
	dates          *DateParser
	money          *MoneyParser
	descriptionCol string
}

// NewXPStatementParser parses checking/investment statement rows,
// including the installment column: a purchase reported as "N de M"
// with N > 1 has its effective date rolled forward N-1 months to the
// true charge month.
func NewXPStatementParser(cfg *config.Account, logger *log.Logger) *XPParser {
	return &XPParser{
		logger:         logger,
		dates:          NewDateParser(logger, statementDateRe),
		money:          NewMoneyParser(logger, statementValueRe, cfg.Type),
		descriptionCol: colDescription,
	}
}

// NewXPCardParser parses credit card invoice rows.
func NewXPCardParser(cfg *config.Account, logger *log.Logger) *XPParser {
	return &XPParser{
		logger:         logger,
		dates:          NewDateParser(logger, cardDateRe),
		money:          NewMoneyParser(logger, cardValueRe, cfg.Type),
		descriptionCol: colEstablishment,
	}
}

func (p *XPParser) Parse(rec Record) (*models.Transaction, error) {
	fields := rec.Fields
	if fields == nil {
		return nil, nil
	}

	timestamp := p.dates.Parse(fields[colDate])
	value := p.money.Parse(fields[colValue])
	balance := p.money.Parse(fields[colBalance])
	description := fields[p.descriptionCol]

	if current, ok := parseInstallment(fields[colInstallment]); ok && current > 1 && timestamp != nil {
		shifted := addMonths(*timestamp, current-1)
		timestamp = &shifted
	}

	if timestamp == nil || value == nil || description == "" {
		p.logger.Debug("dropping invalid record", "record", fields)
		return nil, nil
	}

	tx, err := models.New(models.Params{
		Timestamp:   *timestamp,
		Description: description,
		Value:       *value,
		Balance:     balance,
	})
	if err != nil {
		return nil, err
	}
	p.logger.Debug("parsed record", "transaction", tx)
	return tx, nil
}

// addMonths shifts t forward by whole months, clamping the day to the
// end of the target month. AddDate would normalize Jan 31 + 1 month
// into early March instead of Feb 28.
func addMonths(t time.Time, months int) time.Time {
	first := time.Date(t.Year(), t.Month()+time.Month(months), 1,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	day := t.Day()
	if last := first.AddDate(0, 1, -1).Day(); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// parseInstallment extracts the current installment count from a
// "N de M" column value.
func parseInstallment(raw string) (int, bool) {
	m := installmentRe.FindStringSubmatch(raw)
	if m == nil {
		return 0, false
	}
	current, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return current, true
}
