package payroll

import "context"

type PayrollService interface {
	// Periods
	CreatePeriod(ctx context.Context, req CreatePeriodRequest) (PeriodResponse, error)
	GetPeriod(ctx context.Context, id string) (PeriodResponse, error)
	ListPeriods(ctx context.Context) ([]PeriodResponse, error)
	ApprovePeriod(ctx context.Context, id string) error
	MarkPeriodPaid(ctx context.Context, id string) error
	CancelPeriod(ctx context.Context, id string) error

	// Settlement run
	RunPeriod(ctx context.Context, periodID string, req RunPeriodRequest) (RunPeriodResponse, error)

	// Salary structures
	CreateStructure(ctx context.Context, req CreateStructureRequest) (StructureResponse, error)
	GetStructure(ctx context.Context, id string) (StructureResponse, error)
	ListStructures(ctx context.Context, activeOnly bool) ([]StructureResponse, error)
	DeleteStructure(ctx context.Context, id string) error

	// Payslips
	GetPayslip(ctx context.Context, id string) (PayslipResponse, error)
	ListPayslips(ctx context.Context, filter PayslipFilter) (ListPayslipResponse, error)
	UpdatePayslipStatus(ctx context.Context, req UpdatePayslipStatusRequest) error
	RenderPayslipPDF(ctx context.Context, id string) (string, error)
}
