package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// ComponentType enum
type ComponentType string

const (
	ComponentTypeBasic     ComponentType = "basic"
	ComponentTypeHousing   ComponentType = "housing"
	ComponentTypeTransport ComponentType = "transport"
	ComponentTypeOther     ComponentType = "other"
)

// SalaryComponent - one line of a salary structure. Percentage components
// are resolved against the employee's basic salary at settlement time.
type SalaryComponent struct {
	ID               string
	StructureID      string
	Name             string
	Type             ComponentType
	IsPercentage     bool
	Value            decimal.Decimal
	IsTaxable        bool
	IsGOSIApplicable bool
	SortOrder        int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// SalaryStructure - named template of salary components assigned to
// employees. Components keep their declared order; exactly one must be a
// fixed basic component.
type SalaryStructure struct {
	ID         string
	CompanyID  string
	Name       string
	IsActive   bool
	Components []SalaryComponent
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// PeriodStatus enum
type PeriodStatus string

const (
	PeriodStatusDraft           PeriodStatus = "draft"
	PeriodStatusProcessing      PeriodStatus = "processing"
	PeriodStatusPendingApproval PeriodStatus = "pending_approval"
	PeriodStatusApproved        PeriodStatus = "approved"
	PeriodStatusPaid            PeriodStatus = "paid"
	PeriodStatusCancelled       PeriodStatus = "cancelled"
)

var periodTransitions = map[PeriodStatus][]PeriodStatus{
	PeriodStatusDraft:           {PeriodStatusProcessing, PeriodStatusCancelled},
	PeriodStatusProcessing:      {PeriodStatusPendingApproval},
	PeriodStatusPendingApproval: {PeriodStatusApproved, PeriodStatusCancelled},
	PeriodStatusApproved:        {PeriodStatusPaid},
}

// CanTransitionTo reports whether the period status machine allows moving
// from s to next.
func (s PeriodStatus) CanTransitionTo(next PeriodStatus) bool {
	for _, allowed := range periodTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// AllowsSettlement reports whether payslips may be generated while the
// period is in status s.
func (s PeriodStatus) AllowsSettlement() bool {
	return s == PeriodStatusDraft || s == PeriodStatusProcessing
}

// PayrollPeriod - one pay period per company. Settlement runs are scoped to
// exactly one period.
type PayrollPeriod struct {
	ID          string
	CompanyID   string
	StartDate   time.Time
	EndDate     time.Time
	PaymentDate time.Time
	WorkingDays int
	Status      PeriodStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AttendanceSummary - per employee per period aggregate, produced by the
// attendance subsystem and consumed as settlement input.
type AttendanceSummary struct {
	EmployeeID     string
	PeriodID       string
	WorkingDays    int
	ActualWorkDays int
	AbsentDays     int
	OvertimeHours  decimal.Decimal
}

// PayslipStatus enum
type PayslipStatus string

const (
	PayslipStatusDraft     PayslipStatus = "draft"
	PayslipStatusGenerated PayslipStatus = "generated"
	PayslipStatusSent      PayslipStatus = "sent"
	PayslipStatusViewed    PayslipStatus = "viewed"
)

var payslipTransitions = map[PayslipStatus][]PayslipStatus{
	PayslipStatusGenerated: {PayslipStatusSent},
	PayslipStatusSent:      {PayslipStatusViewed},
}

func (s PayslipStatus) CanTransitionTo(next PayslipStatus) bool {
	for _, allowed := range payslipTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// PayslipLine - one earnings or deduction line on a payslip.
type PayslipLine struct {
	Name   string
	Amount decimal.Decimal
}

// Payslip - settlement output for one employee in one period. Amounts are
// frozen once the payslip is generated; only the status moves afterwards.
type Payslip struct {
	ID              string
	EmployeeID      string
	CompanyID       string
	PayrollPeriodID string
	Earnings        []PayslipLine
	Deductions      []PayslipLine
	TotalEarnings   decimal.Decimal
	TotalDeductions decimal.Decimal
	NetSalary       decimal.Decimal
	GOSIBase        decimal.Decimal
	GOSIEmployee    decimal.Decimal
	GOSIEmployer    decimal.Decimal
	Status          PayslipStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Joined fields
	EmployeeName *string
	EmployeeCode *string
}
