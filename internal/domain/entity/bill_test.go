package entity

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPendingBill(t *testing.T) *Bill {
	t.Helper()
	issued := time.Date(2026, 3, 1, 15, 30, 0, 0, time.UTC)
	b, err := NewBill(1, nil, decimal.RequireFromString("120.50"), "consultation", issued, issued.AddDate(0, 0, 30))
	require.NoError(t, err)
	return b
}

func TestNewBill(t *testing.T) {
	b := newPendingBill(t)
	assert.Equal(t, BillStatusPending, b.Status)
	assert.Nil(t, b.PaidDate)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), b.IssueDate)
	assert.Equal(t, time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC), b.DueDate)
	assert.NoError(t, b.Validate())
}

func TestNewBillRejectsNegativeAmount(t *testing.T) {
	_, err := NewBill(1, nil, decimal.NewFromInt(-1), "refund", time.Now(), time.Now())
	assert.ErrorIs(t, err, ErrNegativeAmount)
}

func TestBillMarkPaid(t *testing.T) {
	b := newPendingBill(t)
	require.NoError(t, b.MarkPaid(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)))

	assert.True(t, b.IsPaid())
	require.NotNil(t, b.PaidDate)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), *b.PaidDate)
	assert.NoError(t, b.Validate())

	assert.ErrorIs(t, b.MarkPaid(time.Now()), ErrInvalidBillTransition)
	assert.ErrorIs(t, b.MarkOverdue(), ErrInvalidBillTransition)
}

func TestBillMarkOverdue(t *testing.T) {
	b := newPendingBill(t)
	require.NoError(t, b.MarkOverdue())

	assert.Equal(t, BillStatusOverdue, b.Status)
	assert.Nil(t, b.PaidDate)
	assert.NoError(t, b.Validate())
	assert.ErrorIs(t, b.MarkPaid(time.Now()), ErrInvalidBillTransition)
}

func TestBillValidateRejectsInconsistentRows(t *testing.T) {
	paidWithoutDate := newPendingBill(t)
	paidWithoutDate.Status = BillStatusPaid
	assert.ErrorIs(t, paidWithoutDate.Validate(), ErrInconsistentBillState)

	pendingWithDate := newPendingBill(t)
	now := time.Now()
	pendingWithDate.PaidDate = &now
	assert.ErrorIs(t, pendingWithDate.Validate(), ErrInconsistentBillState)

	unknown := newPendingBill(t)
	unknown.Status = "void"
	assert.ErrorIs(t, unknown.BeforeSave(nil), ErrInvalidBillStatus)
}

func TestDateOnlyKeepsLocalCalendarDay(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)
	late := time.Date(2026, 5, 4, 23, 30, 0, 0, loc)
	assert.Equal(t, time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC), DateOnly(late))
}
