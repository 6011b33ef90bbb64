package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/ujoors/payroll-backend-go/internal/domain/payroll"
	"github.com/ujoors/payroll-backend-go/internal/pkg/database"
)

// ========== PERIODS ==========

type periodRepository struct {
	db *database.DB
}

func NewPeriodRepository(db *database.DB) payroll.PeriodRepository {
	return &periodRepository{db: db}
}

func (r *periodRepository) Create(ctx context.Context, period payroll.PayrollPeriod) (payroll.PayrollPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_periods (company_id, start_date, end_date, payment_date, working_days, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, company_id, start_date, end_date, payment_date, working_days, status, created_at, updated_at
	`

	var p payroll.PayrollPeriod
	err := q.QueryRow(ctx, query,
		period.CompanyID, period.StartDate, period.EndDate, period.PaymentDate, period.WorkingDays, period.Status,
	).Scan(
		&p.ID, &p.CompanyID, &p.StartDate, &p.EndDate, &p.PaymentDate, &p.WorkingDays, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "uk_payroll_period_dates") {
			return payroll.PayrollPeriod{}, payroll.ErrPeriodAlreadyExists
		}
		return payroll.PayrollPeriod{}, fmt.Errorf("failed to create payroll period: %w", err)
	}

	return p, nil
}

func (r *periodRepository) GetByID(ctx context.Context, id string, companyID string) (payroll.PayrollPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, start_date, end_date, payment_date, working_days, status, created_at, updated_at
		FROM payroll_periods
		WHERE id = $1 AND company_id = $2
	`

	var p payroll.PayrollPeriod
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&p.ID, &p.CompanyID, &p.StartDate, &p.EndDate, &p.PaymentDate, &p.WorkingDays, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrollPeriod{}, payroll.ErrPeriodNotFound
		}
		return payroll.PayrollPeriod{}, fmt.Errorf("failed to get payroll period: %w", err)
	}

	return p, nil
}

func (r *periodRepository) ListByCompanyID(ctx context.Context, companyID string) ([]payroll.PayrollPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, start_date, end_date, payment_date, working_days, status, created_at, updated_at
		FROM payroll_periods
		WHERE company_id = $1
		ORDER BY start_date DESC
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll periods: %w", err)
	}
	defer rows.Close()

	var periods []payroll.PayrollPeriod
	for rows.Next() {
		var p payroll.PayrollPeriod
		if err := rows.Scan(
			&p.ID, &p.CompanyID, &p.StartDate, &p.EndDate, &p.PaymentDate, &p.WorkingDays, &p.Status, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payroll period: %w", err)
		}
		periods = append(periods, p)
	}

	return periods, nil
}

func (r *periodRepository) UpdateStatus(ctx context.Context, id string, companyID string, status payroll.PeriodStatus) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_periods
		SET status = $3, updated_at = NOW()
		WHERE id = $1 AND company_id = $2
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, id, companyID, status).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.ErrPeriodNotFound
		}
		return fmt.Errorf("failed to update payroll period status: %w", err)
	}

	return nil
}

// ========== PAYSLIPS ==========

type payslipRepository struct {
	db *database.DB
}

func NewPayslipRepository(db *database.DB) payroll.PayslipRepository {
	return &payslipRepository{db: db}
}

func (r *payslipRepository) Create(ctx context.Context, payslip payroll.Payslip) (payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	earnings, err := json.Marshal(payslip.Earnings)
	if err != nil {
		return payroll.Payslip{}, fmt.Errorf("failed to marshal earnings: %w", err)
	}
	deductions, err := json.Marshal(payslip.Deductions)
	if err != nil {
		return payroll.Payslip{}, fmt.Errorf("failed to marshal deductions: %w", err)
	}

	query := `
		INSERT INTO payslips (
			employee_id, company_id, payroll_period_id, earnings, deductions,
			total_earnings, total_deductions, net_salary,
			gosi_base, gosi_employee, gosi_employer, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at
	`

	created := payslip
	err = q.QueryRow(ctx, query,
		payslip.EmployeeID, payslip.CompanyID, payslip.PayrollPeriodID, earnings, deductions,
		payslip.TotalEarnings, payslip.TotalDeductions, payslip.NetSalary,
		payslip.GOSIBase, payslip.GOSIEmployee, payslip.GOSIEmployer, payslip.Status,
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "uk_payslip_employee_period") {
			return payroll.Payslip{}, payroll.ErrPayslipAlreadyExists
		}
		return payroll.Payslip{}, fmt.Errorf("failed to create payslip: %w", err)
	}

	return created, nil
}

const payslipColumns = `
	p.id, p.employee_id, p.company_id, p.payroll_period_id, p.earnings, p.deductions,
	p.total_earnings, p.total_deductions, p.net_salary,
	p.gosi_base, p.gosi_employee, p.gosi_employer, p.status,
	p.created_at, p.updated_at, e.full_name, e.employee_code
`

func scanPayslip(row pgx.Row) (payroll.Payslip, error) {
	var p payroll.Payslip
	var earnings, deductions []byte
	err := row.Scan(
		&p.ID, &p.EmployeeID, &p.CompanyID, &p.PayrollPeriodID, &earnings, &deductions,
		&p.TotalEarnings, &p.TotalDeductions, &p.NetSalary,
		&p.GOSIBase, &p.GOSIEmployee, &p.GOSIEmployer, &p.Status,
		&p.CreatedAt, &p.UpdatedAt, &p.EmployeeName, &p.EmployeeCode,
	)
	if err != nil {
		return payroll.Payslip{}, err
	}

	if err := json.Unmarshal(earnings, &p.Earnings); err != nil {
		return payroll.Payslip{}, fmt.Errorf("failed to unmarshal earnings: %w", err)
	}
	if err := json.Unmarshal(deductions, &p.Deductions); err != nil {
		return payroll.Payslip{}, fmt.Errorf("failed to unmarshal deductions: %w", err)
	}

	return p, nil
}

func (r *payslipRepository) GetByID(ctx context.Context, id string, companyID string) (payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payslipColumns + `
		FROM payslips p
		JOIN employees e ON e.id = p.employee_id
		WHERE p.id = $1 AND p.company_id = $2
	`

	p, err := scanPayslip(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Payslip{}, payroll.ErrPayslipNotFound
		}
		return payroll.Payslip{}, fmt.Errorf("failed to get payslip: %w", err)
	}

	return p, nil
}

func (r *payslipRepository) GetByEmployeePeriod(ctx context.Context, employeeID string, periodID string, companyID string) (payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payslipColumns + `
		FROM payslips p
		JOIN employees e ON e.id = p.employee_id
		WHERE p.employee_id = $1 AND p.payroll_period_id = $2 AND p.company_id = $3
	`

	p, err := scanPayslip(q.QueryRow(ctx, query, employeeID, periodID, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Payslip{}, payroll.ErrPayslipNotFound
		}
		return payroll.Payslip{}, fmt.Errorf("failed to get payslip by employee and period: %w", err)
	}

	return p, nil
}

func (r *payslipRepository) List(ctx context.Context, companyID string, filter payroll.PayslipFilter) ([]payroll.Payslip, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := []string{"p.company_id = $1"}
	args := []interface{}{companyID}
	argIdx := 2

	if filter.PeriodID != nil {
		where = append(where, fmt.Sprintf("p.payroll_period_id = $%d", argIdx))
		args = append(args, *filter.PeriodID)
		argIdx++
	}
	if filter.EmployeeID != nil {
		where = append(where, fmt.Sprintf("p.employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil {
		where = append(where, fmt.Sprintf("p.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}

	whereClause := strings.Join(where, " AND ")

	var totalCount int64
	countQuery := "SELECT COUNT(*) FROM payslips p WHERE " + whereClause
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count payslips: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT `+payslipColumns+`
		FROM payslips p
		JOIN employees e ON e.id = p.employee_id
		WHERE %s
		ORDER BY p.created_at DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payslips: %w", err)
	}
	defer rows.Close()

	var payslips []payroll.Payslip
	for rows.Next() {
		p, err := scanPayslip(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan payslip: %w", err)
		}
		payslips = append(payslips, p)
	}

	return payslips, totalCount, nil
}

func (r *payslipRepository) UpdateStatus(ctx context.Context, id string, companyID string, status payroll.PayslipStatus) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payslips
		SET status = $3, updated_at = NOW()
		WHERE id = $1 AND company_id = $2
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, id, companyID, status).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.ErrPayslipNotFound
		}
		return fmt.Errorf("failed to update payslip status: %w", err)
	}

	return nil
}
