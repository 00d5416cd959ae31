package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Direction tells whether a transaction moves money in or out.
type Direction string

const (
	DirectionIncome  Direction = "income"
	DirectionExpense Direction = "expense"
)

// Category is a closed-vocabulary label for a transaction's purpose.
type Category string

const (
	CategoryGeneral  Category = "General"
	CategoryFood     Category = "Food"
	CategoryTravel   Category = "Travel"
	CategoryClothing Category = "Clothing"
	CategoryGrooming Category = "Grooming"
	CategoryHealth   Category = "Health"
	CategorySocial   Category = "Social"
	CategoryEFT      Category = "EFT"
	CategoryLent     Category = "Lent"
	CategoryOthers   Category = "Others"
	CategoryMoneyIn  Category = "Money In"
)

// DirectionFor returns the direction implied by a category. Direction is
// never stored independently; it is always derived from the category.
func DirectionFor(c Category) Direction {
	if c == CategoryMoneyIn {
		return DirectionIncome
	}
	return DirectionExpense
}

// TransactionRecord is one classified note line. It is immutable once
// assembled. Amount is a non-negative whole number of currency units.
// Optional fields (Date, Counterparty, Detail) are empty when absent; the
// assembler trims them, so a present value is never blank.
type TransactionRecord struct {
	Amount       decimal.Decimal
	Category     Category
	Date         string // short form like "17 Jan", no year
	Counterparty string // raw display casing of the lend/receive name
	Detail       string
	SourceLine   string // exact original line, for display and fingerprinting
	Fingerprint  string
}

// Direction returns the record's direction, derived from its category.
func (r TransactionRecord) Direction() Direction {
	return DirectionFor(r.Category)
}

// NormalizedCounterparty returns the matching key for the counterparty name,
// or "" when the record has none.
func (r TransactionRecord) NormalizedCounterparty() string {
	return NormalizeName(r.Counterparty)
}

// NormalizeName folds a counterparty name to its identity key. Every ledger
// lookup and insert goes through this so that casing or stray whitespace
// never splits one person into two entries.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
