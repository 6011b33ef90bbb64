package loan

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status enum
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

var statusTransitions = map[Status][]Status{
	StatusPending:  {StatusApproved, StatusRejected, StatusCancelled},
	StatusApproved: {StatusActive, StatusCancelled},
	StatusActive:   {StatusCompleted, StatusCancelled},
}

// CanTransitionTo reports whether the loan status machine allows moving
// from s to next.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Loan - employee loan repaid through payroll installments.
// Invariant: RemainingAmount = Principal - InstallmentAmount*PaidInstallments,
// never negative, and PaidInstallments <= Installments. Only settlement runs
// mutate the repayment fields; at most one installment per period.
type Loan struct {
	ID                string
	EmployeeID        string
	CompanyID         string
	Principal         decimal.Decimal
	Installments      int
	InstallmentAmount decimal.Decimal
	PaidInstallments  int
	RemainingAmount   decimal.Decimal
	Status            Status
	Reason            *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Update - repayment delta produced by one settlement run for one loan.
type Update struct {
	LoanID              string
	InstallmentDue      decimal.Decimal
	NewRemainingAmount  decimal.Decimal
	NewPaidInstallments int
	NewStatus           Status
}
