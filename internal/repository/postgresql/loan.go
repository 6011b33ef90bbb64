package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/ujoors/payroll-backend-go/internal/domain/loan"
	"github.com/ujoors/payroll-backend-go/internal/pkg/database"
)

type loanRepository struct {
	db *database.DB
}

func NewLoanRepository(db *database.DB) loan.LoanRepository {
	return &loanRepository{db: db}
}

const loanColumns = `
	id, employee_id, company_id, principal, installments, installment_amount,
	paid_installments, remaining_amount, status, reason, created_at, updated_at
`

func scanLoan(row pgx.Row) (loan.Loan, error) {
	var l loan.Loan
	err := row.Scan(
		&l.ID, &l.EmployeeID, &l.CompanyID, &l.Principal, &l.Installments, &l.InstallmentAmount,
		&l.PaidInstallments, &l.RemainingAmount, &l.Status, &l.Reason, &l.CreatedAt, &l.UpdatedAt,
	)
	return l, err
}

func (r *loanRepository) Create(ctx context.Context, l loan.Loan) (loan.Loan, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO loans (
			employee_id, company_id, principal, installments, installment_amount,
			paid_installments, remaining_amount, status, reason
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`

	created := l
	err := q.QueryRow(ctx, query,
		l.EmployeeID, l.CompanyID, l.Principal, l.Installments, l.InstallmentAmount,
		l.PaidInstallments, l.RemainingAmount, l.Status, l.Reason,
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return loan.Loan{}, fmt.Errorf("failed to create loan: %w", err)
	}

	return created, nil
}

func (r *loanRepository) GetByID(ctx context.Context, id string, companyID string) (loan.Loan, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + loanColumns + `
		FROM loans
		WHERE id = $1 AND company_id = $2
	`

	l, err := scanLoan(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return loan.Loan{}, loan.ErrLoanNotFound
		}
		return loan.Loan{}, fmt.Errorf("failed to get loan: %w", err)
	}

	return l, nil
}

func (r *loanRepository) ListByEmployeeID(ctx context.Context, employeeID string, companyID string) ([]loan.Loan, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + loanColumns + `
		FROM loans
		WHERE employee_id = $1 AND company_id = $2
		ORDER BY created_at DESC
	`

	rows, err := q.Query(ctx, query, employeeID, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list loans: %w", err)
	}
	defer rows.Close()

	var loans []loan.Loan
	for rows.Next() {
		l, err := scanLoan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan loan: %w", err)
		}
		loans = append(loans, l)
	}

	return loans, nil
}

func (r *loanRepository) GetActiveByEmployeeID(ctx context.Context, employeeID string, companyID string) ([]loan.Loan, error) {
	q := GetQuerier(ctx, r.db)

	// Oldest first so installments are deducted in disbursement order.
	query := `
		SELECT ` + loanColumns + `
		FROM loans
		WHERE employee_id = $1 AND company_id = $2 AND status = 'active'
		ORDER BY created_at ASC
	`

	rows, err := q.Query(ctx, query, employeeID, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active loans: %w", err)
	}
	defer rows.Close()

	var loans []loan.Loan
	for rows.Next() {
		l, err := scanLoan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan loan: %w", err)
		}
		loans = append(loans, l)
	}

	return loans, nil
}

func (r *loanRepository) UpdateStatus(ctx context.Context, id string, companyID string, status loan.Status) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE loans
		SET status = $3, updated_at = NOW()
		WHERE id = $1 AND company_id = $2
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, id, companyID, status).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return loan.ErrLoanNotFound
		}
		return fmt.Errorf("failed to update loan status: %w", err)
	}

	return nil
}

func (r *loanRepository) ApplyUpdate(ctx context.Context, companyID string, update loan.Update) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE loans
		SET remaining_amount = $3, paid_installments = $4, status = $5, updated_at = NOW()
		WHERE id = $1 AND company_id = $2 AND status = 'active'
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		update.LoanID, companyID,
		update.NewRemainingAmount, update.NewPaidInstallments, update.NewStatus,
	).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return loan.ErrLoanNotActive
		}
		return fmt.Errorf("failed to apply loan update: %w", err)
	}

	return nil
}
