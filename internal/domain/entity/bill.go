package entity

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrNegativeAmount        = errors.New("bill amount must not be negative")
	ErrInvalidBillStatus     = errors.New("invalid bill status")
	ErrInvalidBillTransition = errors.New("bill is no longer pending")
	ErrInconsistentBillState = errors.New("paid date must be set if and only if the bill is paid")
)

// BillStatus represents the status of a bill
type BillStatus string

const (
	BillStatusPending BillStatus = "pending"
	BillStatusPaid    BillStatus = "paid"
	BillStatusOverdue BillStatus = "overdue"
)

func (s BillStatus) Valid() bool {
	switch s {
	case BillStatusPending, BillStatusPaid, BillStatusOverdue:
		return true
	}
	return false
}

// Bill is one of Pending, Paid{PaidDate} or Overdue. Status and PaidDate
// are only changed together through MarkPaid and MarkOverdue, and rows that
// break the pairing are rejected before they reach the database.
type Bill struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	PatientID     uint            `gorm:"not null;index" json:"patient_id"`
	AppointmentID *uint           `gorm:"index" json:"appointment_id,omitempty"`
	Amount        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Description   string          `gorm:"type:text;not null" json:"description"`
	Status        BillStatus      `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	IssueDate     time.Time       `gorm:"type:date;not null;index" json:"issue_date"`
	DueDate       time.Time       `gorm:"type:date;not null" json:"due_date"`
	PaidDate      *time.Time      `gorm:"type:date" json:"paid_date,omitempty"`

	// Relationships
	Patient     Patient      `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Appointment *Appointment `gorm:"foreignKey:AppointmentID" json:"appointment,omitempty"`
}

func (Bill) TableName() string {
	return "bills"
}

// NewBill creates a pending bill
func NewBill(patientID uint, appointmentID *uint, amount decimal.Decimal, description string, issued, due time.Time) (*Bill, error) {
	if amount.IsNegative() {
		return nil, ErrNegativeAmount
	}
	return &Bill{
		PatientID:     patientID,
		AppointmentID: appointmentID,
		Amount:        amount,
		Description:   description,
		Status:        BillStatusPending,
		IssueDate:     DateOnly(issued),
		DueDate:       DateOnly(due),
	}, nil
}

func (b *Bill) IsPending() bool {
	return b.Status == BillStatusPending
}

func (b *Bill) IsPaid() bool {
	return b.Status == BillStatusPaid
}

// MarkPaid settles a pending bill on the given day
func (b *Bill) MarkPaid(on time.Time) error {
	if !b.IsPending() {
		return fmt.Errorf("%w: status is %s", ErrInvalidBillTransition, b.Status)
	}
	paid := DateOnly(on)
	b.Status = BillStatusPaid
	b.PaidDate = &paid
	return nil
}

// MarkOverdue flags a pending bill as overdue
func (b *Bill) MarkOverdue() error {
	if !b.IsPending() {
		return fmt.Errorf("%w: status is %s", ErrInvalidBillTransition, b.Status)
	}
	b.Status = BillStatusOverdue
	return nil
}

// Validate checks the invariants of the Pending | Paid | Overdue variant
func (b *Bill) Validate() error {
	if !b.Status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidBillStatus, b.Status)
	}
	if b.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	if b.IsPaid() != (b.PaidDate != nil) {
		return ErrInconsistentBillState
	}
	return nil
}

func (b *Bill) BeforeSave(tx *gorm.DB) error {
	return b.Validate()
}

// DateOnly drops the clock part, keeping the calendar day as seen in t's location.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
