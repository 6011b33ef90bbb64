package loan

import (
	"github.com/shopspring/decimal"
	"github.com/ujoors/payroll-backend-go/internal/pkg/validator"
)

type ApplyLoanRequest struct {
	EmployeeID   string          `json:"-"`
	Principal    decimal.Decimal `json:"principal"`
	Installments int             `json:"installments"`
	Reason       *string         `json:"reason,omitempty"`
}

func (r *ApplyLoanRequest) Validate() error {
	var errs validator.ValidationErrors

	if !r.Principal.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "principal", Message: "must be positive"})
	}
	if r.Installments < 1 {
		errs = append(errs, validator.ValidationError{Field: "installments", Message: "must be at least 1"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LoanResponse struct {
	ID                string          `json:"id"`
	EmployeeID        string          `json:"employee_id"`
	Principal         decimal.Decimal `json:"principal"`
	Installments      int             `json:"installments"`
	InstallmentAmount decimal.Decimal `json:"installment_amount"`
	PaidInstallments  int             `json:"paid_installments"`
	RemainingAmount   decimal.Decimal `json:"remaining_amount"`
	Status            string          `json:"status"`
	Reason            *string         `json:"reason,omitempty"`
}
