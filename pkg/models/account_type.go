package models

// AccountType classifies an account for sign rules and for the OFX
// message-set envelope used on output.
type AccountType string

const (
	AccountTypeChecking   AccountType = "checking"
	AccountTypeCreditCard AccountType = "credit-card"
)

// IsLiability reports whether a positive statement amount represents
// money owed. Liability accounts invert the literal sign of parsed
// values.
func (t AccountType) IsLiability() bool {
	return t == AccountTypeCreditCard
}

// Valid reports whether the account type is one of the known values.
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeChecking, AccountTypeCreditCard:
		return true
	}
	return false
}

// Abbreviation returns the tag prefix used for the account-from block
// of the OFX statement ("CC" for CCACCTFROM, "BANK" for BANKACCTFROM).
func (t AccountType) Abbreviation() string {
	if t == AccountTypeCreditCard {
		return "CC"
	}
	return "BANK"
}

// MessageSet returns the OFX message-set name selecting the statement
// envelope. Header and footer must use the same value for the document
// to be well formed.
func (t AccountType) MessageSet() string {
	if t == AccountTypeCreditCard {
		return "CREDITCARD"
	}
	return "BANK"
}
