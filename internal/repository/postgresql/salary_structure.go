package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/ujoors/payroll-backend-go/internal/domain/payroll"
	"github.com/ujoors/payroll-backend-go/internal/pkg/database"
)

type structureRepository struct {
	db *database.DB
}

func NewStructureRepository(db *database.DB) payroll.StructureRepository {
	return &structureRepository{db: db}
}

func (r *structureRepository) Create(ctx context.Context, structure payroll.SalaryStructure) (payroll.SalaryStructure, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO salary_structures (company_id, name, is_active)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	created := structure
	err := q.QueryRow(ctx, query, structure.CompanyID, structure.Name, structure.IsActive).
		Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "uk_salary_structure_name") {
			return payroll.SalaryStructure{}, payroll.ErrStructureNameExists
		}
		return payroll.SalaryStructure{}, fmt.Errorf("failed to create salary structure: %w", err)
	}

	componentQuery := `
		INSERT INTO salary_components (
			structure_id, name, type, is_percentage, value,
			is_taxable, is_gosi_applicable, sort_order
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	created.Components = make([]payroll.SalaryComponent, len(structure.Components))
	for i, component := range structure.Components {
		c := component
		c.StructureID = created.ID
		err := q.QueryRow(ctx, componentQuery,
			created.ID, c.Name, c.Type, c.IsPercentage, c.Value,
			c.IsTaxable, c.IsGOSIApplicable, c.SortOrder,
		).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return payroll.SalaryStructure{}, fmt.Errorf("failed to create salary component: %w", err)
		}
		created.Components[i] = c
	}

	return created, nil
}

func (r *structureRepository) GetByID(ctx context.Context, id string, companyID string) (payroll.SalaryStructure, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, name, is_active, created_at, updated_at
		FROM salary_structures
		WHERE id = $1 AND company_id = $2 AND deleted_at IS NULL
	`

	var s payroll.SalaryStructure
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&s.ID, &s.CompanyID, &s.Name, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.SalaryStructure{}, payroll.ErrStructureNotFound
		}
		return payroll.SalaryStructure{}, fmt.Errorf("failed to get salary structure: %w", err)
	}

	components, err := r.getComponents(ctx, s.ID)
	if err != nil {
		return payroll.SalaryStructure{}, err
	}
	s.Components = components

	return s, nil
}

func (r *structureRepository) GetByEmployeeID(ctx context.Context, employeeID string, companyID string) (payroll.SalaryStructure, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT s.id, s.company_id, s.name, s.is_active, s.created_at, s.updated_at
		FROM salary_structures s
		JOIN employees e ON e.salary_structure_id = s.id
		WHERE e.id = $1 AND s.company_id = $2 AND s.deleted_at IS NULL
	`

	var s payroll.SalaryStructure
	err := q.QueryRow(ctx, query, employeeID, companyID).Scan(
		&s.ID, &s.CompanyID, &s.Name, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.SalaryStructure{}, payroll.ErrStructureNotFound
		}
		return payroll.SalaryStructure{}, fmt.Errorf("failed to get salary structure by employee: %w", err)
	}

	components, err := r.getComponents(ctx, s.ID)
	if err != nil {
		return payroll.SalaryStructure{}, err
	}
	s.Components = components

	return s, nil
}

func (r *structureRepository) ListByCompanyID(ctx context.Context, companyID string, activeOnly bool) ([]payroll.SalaryStructure, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, name, is_active, created_at, updated_at
		FROM salary_structures
		WHERE company_id = $1 AND deleted_at IS NULL
	`
	if activeOnly {
		query += " AND is_active = TRUE"
	}
	query += " ORDER BY name"

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary structures: %w", err)
	}
	defer rows.Close()

	var structures []payroll.SalaryStructure
	for rows.Next() {
		var s payroll.SalaryStructure
		if err := rows.Scan(&s.ID, &s.CompanyID, &s.Name, &s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan salary structure: %w", err)
		}
		structures = append(structures, s)
	}

	for i := range structures {
		components, err := r.getComponents(ctx, structures[i].ID)
		if err != nil {
			return nil, err
		}
		structures[i].Components = components
	}

	return structures, nil
}

func (r *structureRepository) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	var assigned int64
	countQuery := `
		SELECT COUNT(*) FROM employees
		WHERE salary_structure_id = $1 AND company_id = $2 AND deleted_at IS NULL
	`
	if err := q.QueryRow(ctx, countQuery, id, companyID).Scan(&assigned); err != nil {
		return fmt.Errorf("failed to count structure assignments: %w", err)
	}
	if assigned > 0 {
		return payroll.ErrStructureInUse
	}

	query := `
		UPDATE salary_structures
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND company_id = $2 AND deleted_at IS NULL
		RETURNING id
	`

	var deletedID string
	err := q.QueryRow(ctx, query, id, companyID).Scan(&deletedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.ErrStructureNotFound
		}
		return fmt.Errorf("failed to delete salary structure: %w", err)
	}

	return nil
}

func (r *structureRepository) getComponents(ctx context.Context, structureID string) ([]payroll.SalaryComponent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, structure_id, name, type, is_percentage, value,
			is_taxable, is_gosi_applicable, sort_order, created_at, updated_at
		FROM salary_components
		WHERE structure_id = $1
		ORDER BY sort_order, name
	`

	rows, err := q.Query(ctx, query, structureID)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary components: %w", err)
	}
	defer rows.Close()

	var components []payroll.SalaryComponent
	for rows.Next() {
		var c payroll.SalaryComponent
		if err := rows.Scan(
			&c.ID, &c.StructureID, &c.Name, &c.Type, &c.IsPercentage, &c.Value,
			&c.IsTaxable, &c.IsGOSIApplicable, &c.SortOrder, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan salary component: %w", err)
		}
		components = append(components, c)
	}

	return components, nil
}
