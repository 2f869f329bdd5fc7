package converter

import (
	"testing"
	"time"

	"hospital-management/internal/domain/entity"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"0", "$0.00"},
		{"5", "$5.00"},
		{"150.75", "$150.75"},
		{"1234.5", "$1,234.50"},
		{"1234567.891", "$1,234,567.89"},
		{"999.999", "$1,000.00"},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCurrency(decimal.RequireFromString(tt.amount)))
		})
	}
}

func TestBillToResponse(t *testing.T) {
	issued := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	bill, err := entity.NewBill(4, nil, decimal.RequireFromString("210"), "x-ray", issued, issued.AddDate(0, 0, 30))
	require.NoError(t, err)

	pending := BillToResponse(bill)
	assert.Equal(t, "210.00", pending.Amount.Amount)
	assert.Equal(t, "$210.00", pending.Amount.Display)
	assert.Equal(t, "2025-03-01", pending.IssueDate)
	assert.Equal(t, "2025-03-31", pending.DueDate)
	assert.Nil(t, pending.PaidDate)

	require.NoError(t, bill.MarkPaid(issued.AddDate(0, 0, 2)))
	paid := BillToResponse(bill)
	assert.Equal(t, "paid", paid.Status)
	require.NotNil(t, paid.PaidDate)
	assert.Equal(t, "2025-03-03", *paid.PaidDate)
}
