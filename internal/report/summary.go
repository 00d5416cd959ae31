// Package report aggregates transaction records into the read-only views a
// presentation layer renders: per-category groups and headline totals. Every
// call recomputes from the records it is given; nothing is cached, because
// callers swap whole collections when loading historical snapshots.
package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/flow-dev/flow/internal/model"
)

// Item is one transaction's contribution to a category group.
type Item struct {
	Amount       decimal.Decimal
	Date         string
	Detail       string
	Counterparty string
}

// CategoryGroup is the aggregate for one category: its running total and the
// contributing items in original record order.
type CategoryGroup struct {
	Category  model.Category
	Direction model.Direction
	Total     decimal.Decimal
	Items     []Item
}

// ByCategory groups records by exact category, insertion-ordered by first
// appearance. The sum of group totals always equals the sum of record
// amounts.
func ByCategory(records []model.TransactionRecord) []CategoryGroup {
	index := make(map[model.Category]int)
	var groups []CategoryGroup
	for _, r := range records {
		i, ok := index[r.Category]
		if !ok {
			i = len(groups)
			index[r.Category] = i
			groups = append(groups, CategoryGroup{Category: r.Category, Direction: r.Direction()})
		}
		groups[i].Total = groups[i].Total.Add(r.Amount)
		groups[i].Items = append(groups[i].Items, Item{
			Amount:       r.Amount,
			Date:         r.Date,
			Detail:       r.Detail,
			Counterparty: r.Counterparty,
		})
	}
	return groups
}

// SortedByTotal returns a copy of groups ordered by total descending. This
// is a display convenience; ByCategory's own order is the contract.
func SortedByTotal(groups []CategoryGroup) []CategoryGroup {
	sorted := make([]CategoryGroup, len(groups))
	copy(sorted, groups)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Total.GreaterThan(sorted[j].Total)
	})
	return sorted
}

// Summary holds headline totals. Net is income minus expense.
type Summary struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Net     decimal.Decimal
}

// Overall sums records into gross income and expense totals.
func Overall(records []model.TransactionRecord) Summary {
	var s Summary
	for _, r := range records {
		if r.Direction() == model.DirectionIncome {
			s.Income = s.Income.Add(r.Amount)
		} else {
			s.Expense = s.Expense.Add(r.Amount)
		}
	}
	s.Net = s.Income.Sub(s.Expense)
	return s
}

// Adjusted removes settled lending from both sides so money lent and later
// repaid does not double-count as an expense and then income. Net is
// unchanged: settlement nets to zero by construction.
func (s Summary) Adjusted(settled decimal.Decimal) Summary {
	return Summary{
		Income:  s.Income.Sub(settled),
		Expense: s.Expense.Sub(settled),
		Net:     s.Net,
	}
}

// Percent returns part/whole as a rounded percentage, or zero when the whole
// is zero.
func Percent(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Mul(decimal.NewFromInt(100)).Div(whole).Round(0)
}
