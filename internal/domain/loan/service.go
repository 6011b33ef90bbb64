package loan

import "context"

type LoanService interface {
	Apply(ctx context.Context, req ApplyLoanRequest) (LoanResponse, error)
	Get(ctx context.Context, id string) (LoanResponse, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]LoanResponse, error)
	Approve(ctx context.Context, id string) error
	Reject(ctx context.Context, id string) error
	Activate(ctx context.Context, id string) error
	Cancel(ctx context.Context, id string) error
}
