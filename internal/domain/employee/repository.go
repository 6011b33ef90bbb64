package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string, companyID string) (Employee, error)
	GetByEmployeeCode(ctx context.Context, companyID string, employeeCode string) (Employee, error)
	GetActiveByCompanyID(ctx context.Context, companyID string) ([]Employee, error)
	GetByIDs(ctx context.Context, companyID string, ids []string) ([]Employee, error)
}
