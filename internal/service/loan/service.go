package loan

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"
	"github.com/ujoors/payroll-backend-go/internal/domain/employee"
	"github.com/ujoors/payroll-backend-go/internal/domain/loan"
)

type LoanServiceImpl struct {
	loanRepo     loan.LoanRepository
	employeeRepo employee.EmployeeRepository
}

func NewLoanService(loanRepo loan.LoanRepository, employeeRepo employee.EmployeeRepository) loan.LoanService {
	return &LoanServiceImpl{
		loanRepo:     loanRepo,
		employeeRepo: employeeRepo,
	}
}

func getClaimsFromContext(ctx context.Context) (companyID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", fmt.Errorf("company_id claim is missing or invalid")
	}

	return companyID, nil
}

func (s *LoanServiceImpl) Apply(ctx context.Context, req loan.ApplyLoanRequest) (loan.LoanResponse, error) {
	companyID, err := getClaimsFromContext(ctx)
	if err != nil {
		return loan.LoanResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return loan.LoanResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, companyID); err != nil {
		return loan.LoanResponse{}, err
	}

	active, err := s.loanRepo.GetActiveByEmployeeID(ctx, req.EmployeeID, companyID)
	if err != nil {
		return loan.LoanResponse{}, err
	}
	if len(active) > 0 {
		return loan.LoanResponse{}, loan.ErrEmployeeHasActiveLoan
	}

	// The last installment absorbs any rounding residue at settlement time,
	// so a straight division here is fine.
	installmentAmount := req.Principal.Div(decimal.NewFromInt(int64(req.Installments))).Round(2)

	created, err := s.loanRepo.Create(ctx, loan.Loan{
		EmployeeID:        req.EmployeeID,
		CompanyID:         companyID,
		Principal:         req.Principal,
		Installments:      req.Installments,
		InstallmentAmount: installmentAmount,
		PaidInstallments:  0,
		RemainingAmount:   req.Principal,
		Status:            loan.StatusPending,
		Reason:            req.Reason,
	})
	if err != nil {
		return loan.LoanResponse{}, err
	}

	return toLoanResponse(created), nil
}

func (s *LoanServiceImpl) Get(ctx context.Context, id string) (loan.LoanResponse, error) {
	companyID, err := getClaimsFromContext(ctx)
	if err != nil {
		return loan.LoanResponse{}, err
	}

	l, err := s.loanRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return loan.LoanResponse{}, err
	}

	return toLoanResponse(l), nil
}

func (s *LoanServiceImpl) ListByEmployee(ctx context.Context, employeeID string) ([]loan.LoanResponse, error) {
	companyID, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	loans, err := s.loanRepo.ListByEmployeeID(ctx, employeeID, companyID)
	if err != nil {
		return nil, err
	}

	responses := make([]loan.LoanResponse, len(loans))
	for i, l := range loans {
		responses[i] = toLoanResponse(l)
	}

	return responses, nil
}

func (s *LoanServiceImpl) Approve(ctx context.Context, id string) error {
	return s.transition(ctx, id, loan.StatusApproved)
}

func (s *LoanServiceImpl) Reject(ctx context.Context, id string) error {
	return s.transition(ctx, id, loan.StatusRejected)
}

func (s *LoanServiceImpl) Activate(ctx context.Context, id string) error {
	return s.transition(ctx, id, loan.StatusActive)
}

func (s *LoanServiceImpl) Cancel(ctx context.Context, id string) error {
	return s.transition(ctx, id, loan.StatusCancelled)
}

func (s *LoanServiceImpl) transition(ctx context.Context, id string, next loan.Status) error {
	companyID, err := getClaimsFromContext(ctx)
	if err != nil {
		return err
	}

	l, err := s.loanRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return err
	}

	if !l.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", loan.ErrInvalidLoanTransition, l.Status, next)
	}

	return s.loanRepo.UpdateStatus(ctx, id, companyID, next)
}

func toLoanResponse(l loan.Loan) loan.LoanResponse {
	return loan.LoanResponse{
		ID:                l.ID,
		EmployeeID:        l.EmployeeID,
		Principal:         l.Principal,
		Installments:      l.Installments,
		InstallmentAmount: l.InstallmentAmount,
		PaidInstallments:  l.PaidInstallments,
		RemainingAmount:   l.RemainingAmount,
		Status:            string(l.Status),
		Reason:            l.Reason,
	}
}
