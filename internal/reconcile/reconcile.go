// Package reconcile matches money lent to a person against money later
// received from that same person, computing settled and outstanding amounts
// per counterparty.
package reconcile

import (
	"github.com/shopspring/decimal"

	"github.com/flow-dev/flow/internal/model"
)

// PersonLedgerEntry is the reconciled position for one counterparty. Name is
// the normalized identity key; DisplayName keeps the first raw spelling seen.
// Balance is lent minus received and goes negative when someone over-repays.
type PersonLedgerEntry struct {
	Name        string
	DisplayName string
	Lent        decimal.Decimal
	Received    decimal.Decimal
	Settled     decimal.Decimal
	Balance     decimal.Decimal
}

// FullySettled reports whether everything lent has come back.
func (e PersonLedgerEntry) FullySettled() bool {
	return !e.Balance.IsPositive()
}

// Ledger is the full reconciliation output. Entries are ordered by each
// person's first lending record.
type Ledger struct {
	Entries      []PersonLedgerEntry
	TotalLent    decimal.Decimal
	TotalSettled decimal.Decimal

	byName map[string]int
}

// Entry looks up a person by name. The name is normalized before lookup, so
// "Rahul ", "rahul", and "RAHUL" all resolve to the same entry.
func (l Ledger) Entry(name string) (PersonLedgerEntry, bool) {
	i, ok := l.byName[model.NormalizeName(name)]
	if !ok {
		return PersonLedgerEntry{}, false
	}
	return l.Entries[i], true
}

// RecoveryRate returns the settled share of everything lent as a rounded
// percentage. When nothing was ever lent there is nothing to recover, so the
// rate is 100 rather than a division by zero.
func (l Ledger) RecoveryRate() decimal.Decimal {
	if l.TotalLent.IsZero() {
		return decimal.NewFromInt(100)
	}
	return l.TotalSettled.Mul(decimal.NewFromInt(100)).Div(l.TotalLent).Round(0)
}

// Reconcile computes the per-person ledger from a record collection. Only
// people who appear in at least one lending record are tracked; money
// received from anyone else stays plain income and never creates an entry.
func Reconcile(records []model.TransactionRecord) Ledger {
	l := Ledger{byName: make(map[string]int)}

	// Pass 1: the debtor universe, in order of first lending appearance.
	for _, r := range records {
		if r.Category != model.CategoryLent {
			continue
		}
		name := r.NormalizedCounterparty()
		if name == "" {
			continue
		}
		if _, ok := l.byName[name]; !ok {
			l.byName[name] = len(l.Entries)
			l.Entries = append(l.Entries, PersonLedgerEntry{Name: name})
		}
	}

	// Pass 2: accumulate lent and received for tracked names only.
	for _, r := range records {
		name := r.NormalizedCounterparty()
		if name == "" {
			continue
		}
		i, ok := l.byName[name]
		if !ok {
			continue
		}
		e := &l.Entries[i]
		if e.DisplayName == "" {
			e.DisplayName = r.Counterparty
		}
		switch r.Category {
		case model.CategoryLent:
			e.Lent = e.Lent.Add(r.Amount)
		case model.CategoryMoneyIn:
			e.Received = e.Received.Add(r.Amount)
		}
	}

	for i := range l.Entries {
		e := &l.Entries[i]
		e.Settled = decimal.Min(e.Lent, e.Received)
		e.Balance = e.Lent.Sub(e.Received)
		l.TotalLent = l.TotalLent.Add(e.Lent)
		l.TotalSettled = l.TotalSettled.Add(e.Settled)
	}
	return l
}
