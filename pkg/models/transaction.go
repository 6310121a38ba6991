package models

import (
	"crypto/md5"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ErrTypeMismatch is returned when a source-provided transaction type
// contradicts the sign of the amount.
var ErrTypeMismatch = fmt.Errorf("transaction type incompatible with amount sign")

const (
	TypeCredit = "CREDIT"
	TypeDebit  = "DEBIT"
)

// Params carries the raw inputs for a Transaction. Balance, ID and
// Type are optional; sources that don't report them leave them unset.
type Params struct {
	Timestamp   time.Time
	Description string
	Value       decimal.Decimal
	Balance     *decimal.Decimal
	ID          string
	Type        string
}

// Transaction is the canonical representation of one financial
// movement. It is immutable after construction; monetary fields are
// quantized to two places with banker's rounding at build time.
type Transaction struct {
	timestamp   time.Time
	description string
	value       decimal.Decimal
	balance     *decimal.Decimal
	id          string
	trnType     string
}

// New builds a Transaction from raw parsed inputs. If a source type is
// supplied it must agree with the sign of the value: a negative value
// is a DEBIT, a non-negative one a CREDIT. A zero value is accepted
// under either label.
func New(p Params) (*Transaction, error) {
	value := p.Value.RoundBank(2)

	trnType := strings.ToUpper(p.Type)
	if trnType != "" {
		valid := (value.Sign() >= 0 && trnType == TypeCredit) ||
			(value.Sign() <= 0 && trnType == TypeDebit)
		if !valid {
			return nil, fmt.Errorf("%w: %s with amount %s", ErrTypeMismatch, trnType, value.StringFixed(2))
		}
	}

	var balance *decimal.Decimal
	if p.Balance != nil {
		b := p.Balance.RoundBank(2)
		balance = &b
	}

	return &Transaction{
		timestamp:   p.Timestamp,
		description: p.Description,
		value:       value,
		balance:     balance,
		id:          p.ID,
		trnType:     trnType,
	}, nil
}

func (t *Transaction) Timestamp() time.Time   { return t.timestamp }
func (t *Transaction) Description() string    { return t.description }
func (t *Transaction) Value() decimal.Decimal { return t.value }

// Balance returns the account balance after this transaction, or nil
// when the source format does not report one.
func (t *Transaction) Balance() *decimal.Decimal {
	if t.balance == nil {
		return nil
	}
	b := *t.balance
	return &b
}

// Type returns the source-provided transaction type when present,
// otherwise derives it from the sign of the value.
func (t *Transaction) Type() string {
	if t.trnType != "" {
		return t.trnType
	}
	if t.value.IsNegative() {
		return TypeDebit
	}
	return TypeCredit
}

// FitID returns the financial institution transaction id. An
// externally supplied id wins; otherwise a stable content hash over
// (timestamp, description, value) is derived so repeated runs over the
// same data produce the same identifier.
func (t *Transaction) FitID() string {
	if t.id != "" {
		return t.id
	}
	key := strings.Join([]string{
		t.timestamp.Format(time.RFC3339),
		t.description,
		t.value.StringFixed(2),
	}, "-")
	digest := md5.Sum([]byte(key))
	return base64.StdEncoding.EncodeToString(digest[:])
}

// Before orders transactions by timestamp ascending.
func (t *Transaction) Before(other *Transaction) bool {
	return t.timestamp.Before(other.timestamp)
}

func (t *Transaction) String() string {
	return fmt.Sprintf("Transaction(date:%s,desc:%s,value:%s)",
		t.timestamp.Format(time.RFC3339), t.description, t.value.StringFixed(2))
}
