package reconcile

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flow-dev/flow/internal/model"
)

func lent(name string, amount int64) model.TransactionRecord {
	return model.TransactionRecord{
		Amount:       decimal.NewFromInt(amount),
		Category:     model.CategoryLent,
		Counterparty: name,
	}
}

func received(name string, amount int64) model.TransactionRecord {
	return model.TransactionRecord{
		Amount:       decimal.NewFromInt(amount),
		Category:     model.CategoryMoneyIn,
		Counterparty: name,
	}
}

func TestReconcile_OverRepayment(t *testing.T) {
	l := Reconcile([]model.TransactionRecord{
		received("Sow", 2000),
		lent("Sow", 500),
	})

	require.Len(t, l.Entries, 1)
	e, ok := l.Entry("sow")
	require.True(t, ok)

	assert.Equal(t, "500", e.Lent.StringFixed(0))
	assert.Equal(t, "2000", e.Received.StringFixed(0))
	assert.Equal(t, "500", e.Settled.StringFixed(0))
	assert.Equal(t, "-1500", e.Balance.StringFixed(0))
	assert.True(t, e.FullySettled())

	assert.Equal(t, "500", l.TotalLent.StringFixed(0))
	assert.Equal(t, "500", l.TotalSettled.StringFixed(0))
}

func TestReconcile_PartialRepayment(t *testing.T) {
	l := Reconcile([]model.TransactionRecord{
		lent("Rahul", 1000),
		received("Rahul", 400),
	})

	e, ok := l.Entry("Rahul")
	require.True(t, ok)
	assert.Equal(t, "400", e.Settled.StringFixed(0))
	assert.Equal(t, "600", e.Balance.StringFixed(0))
	assert.False(t, e.FullySettled())
}

func TestReconcile_NameFolding(t *testing.T) {
	l := Reconcile([]model.TransactionRecord{
		lent("Rahul", 300),
		lent(" rahul ", 200),
		received("RAHUL", 100),
	})

	require.Len(t, l.Entries, 1)
	e := l.Entries[0]
	assert.Equal(t, "rahul", e.Name)
	assert.Equal(t, "Rahul", e.DisplayName)
	assert.Equal(t, "500", e.Lent.StringFixed(0))
	assert.Equal(t, "100", e.Received.StringFixed(0))
}

func TestReconcile_MoneyInOnlyPersonNotTracked(t *testing.T) {
	l := Reconcile([]model.TransactionRecord{
		received("Employer", 50000),
		lent("Anu", 200),
	})

	require.Len(t, l.Entries, 1)
	assert.Equal(t, "anu", l.Entries[0].Name)
	_, ok := l.Entry("Employer")
	assert.False(t, ok)
}

func TestReconcile_OrderedByFirstLend(t *testing.T) {
	l := Reconcile([]model.TransactionRecord{
		received("b", 10),
		lent("b", 100),
		lent("a", 100),
		lent("b", 50),
	})

	require.Len(t, l.Entries, 2)
	assert.Equal(t, "b", l.Entries[0].Name)
	assert.Equal(t, "a", l.Entries[1].Name)
}

func TestReconcile_LendWithoutNameIgnored(t *testing.T) {
	l := Reconcile([]model.TransactionRecord{
		{Amount: decimal.NewFromInt(100), Category: model.CategoryLent},
	})
	assert.Empty(t, l.Entries)
	assert.True(t, l.TotalLent.IsZero())
}

func TestReconcile_Empty(t *testing.T) {
	l := Reconcile(nil)
	assert.Empty(t, l.Entries)
	_, ok := l.Entry("anyone")
	assert.False(t, ok)
}

func TestRecoveryRate(t *testing.T) {
	l := Reconcile([]model.TransactionRecord{
		lent("a", 1000),
		received("a", 400),
	})
	assert.Equal(t, "40", l.RecoveryRate().String())
}

func TestRecoveryRate_NothingLent(t *testing.T) {
	l := Reconcile([]model.TransactionRecord{received("Employer", 50000)})
	assert.Equal(t, "100", l.RecoveryRate().String())
}

func TestRecoveryRate_Rounded(t *testing.T) {
	l := Reconcile([]model.TransactionRecord{
		lent("a", 3),
		received("a", 1),
	})
	// 33.33... rounds to 33.
	assert.Equal(t, "33", l.RecoveryRate().String())
}
