package payroll

import "context"

// PeriodRepository defines data access for payroll periods.
// All methods include companyID to prevent cross-company data access.
type PeriodRepository interface {
	Create(ctx context.Context, period PayrollPeriod) (PayrollPeriod, error)
	GetByID(ctx context.Context, id string, companyID string) (PayrollPeriod, error)
	ListByCompanyID(ctx context.Context, companyID string) ([]PayrollPeriod, error)
	UpdateStatus(ctx context.Context, id string, companyID string, status PeriodStatus) error
}

// StructureRepository defines data access for salary structures and their
// components.
type StructureRepository interface {
	Create(ctx context.Context, structure SalaryStructure) (SalaryStructure, error)
	GetByID(ctx context.Context, id string, companyID string) (SalaryStructure, error)
	GetByEmployeeID(ctx context.Context, employeeID string, companyID string) (SalaryStructure, error)
	ListByCompanyID(ctx context.Context, companyID string, activeOnly bool) ([]SalaryStructure, error)
	Delete(ctx context.Context, id string, companyID string) error
}

// PayslipRepository defines data access for generated payslips.
type PayslipRepository interface {
	Create(ctx context.Context, payslip Payslip) (Payslip, error)
	GetByID(ctx context.Context, id string, companyID string) (Payslip, error)
	GetByEmployeePeriod(ctx context.Context, employeeID string, periodID string, companyID string) (Payslip, error)
	List(ctx context.Context, companyID string, filter PayslipFilter) ([]Payslip, int64, error)
	UpdateStatus(ctx context.Context, id string, companyID string, status PayslipStatus) error
}

// AttendanceRepository supplies per-employee attendance aggregates for a
// period. The attendance capture itself lives outside this service.
type AttendanceRepository interface {
	GetSummaries(ctx context.Context, companyID string, periodID string, employeeIDs []string) ([]AttendanceSummary, error)
}
