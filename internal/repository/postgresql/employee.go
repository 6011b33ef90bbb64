package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/ujoors/payroll-backend-go/internal/domain/employee"
	"github.com/ujoors/payroll-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

const employeeColumns = `
	id, company_id, salary_structure_id, employee_code, full_name, email,
	bank_name, bank_account_number, basic_salary, overtime_multiplier,
	employment_status, hire_date, created_at, updated_at, deleted_at
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID, &e.CompanyID, &e.SalaryStructureID, &e.EmployeeCode, &e.FullName, &e.Email,
		&e.BankName, &e.BankAccountNumber, &e.BasicSalary, &e.OvertimeMultiplier,
		&e.EmploymentStatus, &e.HireDate, &e.CreatedAt, &e.UpdatedAt, &e.DeletedAt,
	)
	return e, err
}

func (r *employeeRepository) GetByID(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE id = $1 AND company_id = $2 AND deleted_at IS NULL
	`

	e, err := scanEmployee(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return e, nil
}

func (r *employeeRepository) GetByEmployeeCode(ctx context.Context, companyID string, employeeCode string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE company_id = $1 AND employee_code = $2 AND deleted_at IS NULL
	`

	e, err := scanEmployee(q.QueryRow(ctx, query, companyID, employeeCode))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by code: %w", err)
	}

	return e, nil
}

func (r *employeeRepository) GetActiveByCompanyID(ctx context.Context, companyID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE company_id = $1 AND employment_status = 'active' AND deleted_at IS NULL
		ORDER BY employee_code
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}

	return employees, nil
}

func (r *employeeRepository) GetByIDs(ctx context.Context, companyID string, ids []string) ([]employee.Employee, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE company_id = $1 AND id = ANY($2) AND deleted_at IS NULL
		ORDER BY employee_code
	`

	rows, err := q.Query(ctx, query, companyID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees by ids: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}

	return employees, nil
}
