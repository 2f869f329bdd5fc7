package converter

import (
	"strings"

	"hospital-management/internal/delivery/dto"
	"hospital-management/internal/domain/entity"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var moneyPrinter = message.NewPrinter(language.English)

// FormatCurrency renders an amount as dollars with thousands separators and
// exactly two decimals, e.g. $1,234.50.
func FormatCurrency(amount decimal.Decimal) string {
	fixed := amount.StringFixed(2)

	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign = "-"
		fixed = fixed[1:]
	}

	whole, cents, _ := strings.Cut(fixed, ".")
	wholeValue := decimal.RequireFromString(whole).IntPart()
	return sign + "$" + moneyPrinter.Sprintf("%d", wholeValue) + "." + cents
}

func MoneyToResponse(amount decimal.Decimal) dto.MoneyResponse {
	return dto.MoneyResponse{
		Amount:  amount.StringFixed(2),
		Display: FormatCurrency(amount),
	}
}

func BillToResponse(bill *entity.Bill) dto.BillResponse {
	response := dto.BillResponse{
		ID:            bill.ID,
		PatientID:     bill.PatientID,
		AppointmentID: bill.AppointmentID,
		Amount:        MoneyToResponse(bill.Amount),
		Description:   bill.Description,
		Status:        string(bill.Status),
		IssueDate:     bill.IssueDate.Format(dateLayout),
		DueDate:       bill.DueDate.Format(dateLayout),
	}
	if bill.PaidDate != nil {
		paid := bill.PaidDate.Format(dateLayout)
		response.PaidDate = &paid
	}
	return response
}

func BillsToResponses(bills []entity.Bill) []dto.BillResponse {
	responses := make([]dto.BillResponse, len(bills))
	for i := range bills {
		responses[i] = BillToResponse(&bills[i])
	}
	return responses
}
