package loan

import "context"

// LoanRepository defines data access for employee loans.
// All methods include companyID to prevent cross-company data access.
type LoanRepository interface {
	Create(ctx context.Context, l Loan) (Loan, error)
	GetByID(ctx context.Context, id string, companyID string) (Loan, error)
	ListByEmployeeID(ctx context.Context, employeeID string, companyID string) ([]Loan, error)
	GetActiveByEmployeeID(ctx context.Context, employeeID string, companyID string) ([]Loan, error)
	UpdateStatus(ctx context.Context, id string, companyID string, status Status) error
	// ApplyUpdate persists a settlement run's repayment delta.
	ApplyUpdate(ctx context.Context, companyID string, update Update) error
}
