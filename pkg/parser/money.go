package parser

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"

	"github.com/yurifrl/ofxconv/pkg/models"
)

// MoneyParser converts locale-formatted currency strings into decimal
// amounts. The pattern must capture the numeric text as a "value"
// group and may capture a leading minus as a "sign" group. Values use
// "." as thousands separator and "," as decimal separator.
//
// On liability accounts the literal sign is inverted: a positive
// amount due is money leaving the user, stored negative.
type MoneyParser struct {
	re        *regexp.Regexp
	liability bool
	logger    *log.Logger
}

func NewMoneyParser(logger *log.Logger, re *regexp.Regexp, accountType models.AccountType) *MoneyParser {
	return &MoneyParser{re: re, liability: accountType.IsLiability(), logger: logger}
}

// Parse returns the signed amount for raw, or nil when raw is empty or
// the pattern does not match.
func (p *MoneyParser) Parse(raw string) *decimal.Decimal {
	if raw == "" {
		return nil
	}
	m := p.re.FindStringSubmatch(raw)
	if m == nil {
		return nil
	}

	var sign, value string
	for i, name := range p.re.SubexpNames() {
		switch name {
		case "sign":
			sign = m[i]
		case "value":
			value = m[i]
		}
	}

	normalized := strings.ReplaceAll(value, ".", "")
	normalized = strings.ReplaceAll(normalized, ",", ".")
	d, err := decimal.NewFromString(sign + normalized)
	if err != nil {
		p.logger.Error("failed converting amount, returning nil", "input", raw, "error", err)
		return nil
	}
	if p.liability {
		d = d.Neg()
	}
	return &d
}
