package dto

// MoneyResponse carries an amount fixed to two decimals and its display form
type MoneyResponse struct {
	Amount  string `json:"amount"`
	Display string `json:"display"`
}

type BillResponse struct {
	ID            uint          `json:"id"`
	PatientID     uint          `json:"patient_id"`
	AppointmentID *uint         `json:"appointment_id,omitempty"`
	Amount        MoneyResponse `json:"amount"`
	Description   string        `json:"description"`
	Status        string        `json:"status"`
	IssueDate     string        `json:"issue_date"`
	DueDate       string        `json:"due_date"`
	PaidDate      *string       `json:"paid_date,omitempty"`
}
