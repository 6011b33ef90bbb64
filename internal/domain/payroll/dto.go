package payroll

import (
	"github.com/shopspring/decimal"
	"github.com/ujoors/payroll-backend-go/internal/pkg/validator"
)

// ========== PERIOD DTOs ==========

type CreatePeriodRequest struct {
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	PaymentDate string `json:"payment_date"`
	WorkingDays int    `json:"working_days"`
}

func (r *CreatePeriodRequest) Validate() error {
	var errs validator.ValidationErrors

	start, okStart := validator.IsValidDate(r.StartDate)
	if !okStart {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	end, okEnd := validator.IsValidDate(r.EndDate)
	if !okEnd {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if _, ok := validator.IsValidDate(r.PaymentDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "payment_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if okStart && okEnd && !start.Before(end) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be after start_date"})
	}
	if r.WorkingDays <= 0 {
		errs = append(errs, validator.ValidationError{Field: "working_days", Message: "must be positive"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PeriodResponse struct {
	ID          string `json:"id"`
	CompanyID   string `json:"company_id"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	PaymentDate string `json:"payment_date"`
	WorkingDays int    `json:"working_days"`
	Status      string `json:"status"`
}

// ========== STRUCTURE DTOs ==========

type ComponentRequest struct {
	Name             string          `json:"name"`
	Type             string          `json:"type"`
	IsPercentage     bool            `json:"is_percentage"`
	Value            decimal.Decimal `json:"value"`
	IsTaxable        bool            `json:"is_taxable"`
	IsGOSIApplicable bool            `json:"is_gosi_applicable"`
}

type CreateStructureRequest struct {
	Name       string             `json:"name"`
	Components []ComponentRequest `json:"components"`
}

func (r *CreateStructureRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if len(r.Components) == 0 {
		errs = append(errs, validator.ValidationError{Field: "components", Message: "at least one component is required"})
	}

	basicCount := 0
	for i, c := range r.Components {
		field := "components[" + validator.Itoa(i) + "]"
		switch ComponentType(c.Type) {
		case ComponentTypeBasic:
			basicCount++
			if c.IsPercentage {
				errs = append(errs, validator.ValidationError{Field: field + ".is_percentage", Message: "basic component must be a fixed amount"})
			}
		case ComponentTypeHousing, ComponentTypeTransport, ComponentTypeOther:
		default:
			errs = append(errs, validator.ValidationError{Field: field + ".type", Message: "must be basic, housing, transport or other"})
		}
		if validator.IsEmpty(c.Name) {
			errs = append(errs, validator.ValidationError{Field: field + ".name", Message: "is required"})
		}
		if c.Value.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: field + ".value", Message: "must be non-negative"})
		}
	}
	if basicCount != 1 {
		errs = append(errs, validator.ValidationError{Field: "components", Message: "exactly one basic component is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ComponentResponse struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Type             string          `json:"type"`
	IsPercentage     bool            `json:"is_percentage"`
	Value            decimal.Decimal `json:"value"`
	IsTaxable        bool            `json:"is_taxable"`
	IsGOSIApplicable bool            `json:"is_gosi_applicable"`
}

type StructureResponse struct {
	ID         string              `json:"id"`
	CompanyID  string              `json:"company_id"`
	Name       string              `json:"name"`
	IsActive   bool                `json:"is_active"`
	Components []ComponentResponse `json:"components"`
}

// ========== RUN DTOs ==========

type RunPeriodRequest struct {
	EmployeeIDs []string `json:"employee_ids,omitempty"` // Empty = all active employees
}

// RunFailure reports one employee whose settlement failed. The run keeps
// going; HR fixes the data and re-runs just that employee.
type RunFailure struct {
	EmployeeID string `json:"employee_id"`
	ErrorKind  string `json:"error_kind"`
	Message    string `json:"message"`
}

type RunPeriodResponse struct {
	RunID        string       `json:"run_id"`
	PeriodID     string       `json:"period_id"`
	PeriodStatus string       `json:"period_status"`
	SettledCount int          `json:"settled_count"`
	SkippedCount int          `json:"skipped_count"`
	Failures     []RunFailure `json:"failures,omitempty"`
}

// ========== PAYSLIP DTOs ==========

type PayslipLineResponse struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

type PayslipResponse struct {
	ID              string                `json:"id"`
	EmployeeID      string                `json:"employee_id"`
	EmployeeName    string                `json:"employee_name,omitempty"`
	EmployeeCode    string                `json:"employee_code,omitempty"`
	PayrollPeriodID string                `json:"payroll_period_id"`
	Earnings        []PayslipLineResponse `json:"earnings"`
	Deductions      []PayslipLineResponse `json:"deductions"`
	TotalEarnings   decimal.Decimal       `json:"total_earnings"`
	TotalDeductions decimal.Decimal       `json:"total_deductions"`
	NetSalary       decimal.Decimal       `json:"net_salary"`
	GOSIBase        decimal.Decimal       `json:"gosi_base"`
	GOSIEmployee    decimal.Decimal       `json:"gosi_employee"`
	GOSIEmployer    decimal.Decimal       `json:"gosi_employer"`
	Status          string                `json:"status"`
}

type PayslipFilter struct {
	PeriodID   *string
	EmployeeID *string
	Status     *string
	Page       int
	Limit      int
}

type ListPayslipResponse struct {
	Data       []PayslipResponse `json:"data"`
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
}

type UpdatePayslipStatusRequest struct {
	ID     string
	Status string `json:"status"`
}

func (r *UpdatePayslipStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.Status, []string{string(PayslipStatusSent), string(PayslipStatusViewed)}) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be 'sent' or 'viewed'"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
