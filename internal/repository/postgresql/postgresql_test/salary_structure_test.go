package postgresql_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ujoors/payroll-backend-go/internal/domain/payroll"
	"github.com/ujoors/payroll-backend-go/internal/repository/postgresql"
)

func buildTestStructure(companyID string) payroll.SalaryStructure {
	return payroll.SalaryStructure{
		CompanyID: companyID,
		Name:      fmt.Sprintf("Structure %d", time.Now().UnixNano()),
		IsActive:  true,
		Components: []payroll.SalaryComponent{
			{
				Name:             "Basic Salary",
				Type:             payroll.ComponentTypeBasic,
				IsPercentage:     false,
				Value:            decimal.RequireFromString("8000.00"),
				IsGOSIApplicable: true,
				SortOrder:        0,
			},
			{
				Name:             "Housing Allowance",
				Type:             payroll.ComponentTypeHousing,
				IsPercentage:     true,
				Value:            decimal.RequireFromString("25"),
				IsGOSIApplicable: true,
				SortOrder:        1,
			},
			{
				Name:         "Transport Allowance",
				Type:         payroll.ComponentTypeTransport,
				IsPercentage: false,
				Value:        decimal.RequireFromString("500.00"),
				SortOrder:    2,
			},
		},
	}
}

// ===== SALARY STRUCTURE REPOSITORY TESTS =====

func TestStructureRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	truncateTables(t, ctx)

	companyID := createTestCompany(t, ctx)
	structureRepo := postgresql.NewStructureRepository(testDB)

	created, err := structureRepo.Create(ctx, buildTestStructure(companyID))
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	retrieved, err := structureRepo.GetByID(ctx, created.ID, companyID)
	require.NoError(t, err)

	assert.True(t, retrieved.IsActive)
	require.Len(t, retrieved.Components, 3)
	// Components come back in declared order.
	assert.Equal(t, "Basic Salary", retrieved.Components[0].Name)
	assert.Equal(t, "Housing Allowance", retrieved.Components[1].Name)
	assert.True(t, retrieved.Components[1].IsPercentage)
	assert.Equal(t, "Transport Allowance", retrieved.Components[2].Name)
}

func TestStructureRepository_GetByEmployeeID(t *testing.T) {
	ctx := context.Background()
	truncateTables(t, ctx)

	companyID := createTestCompany(t, ctx)
	employeeID := createTestEmployee(t, ctx, companyID)

	structureRepo := postgresql.NewStructureRepository(testDB)
	created, err := structureRepo.Create(ctx, buildTestStructure(companyID))
	require.NoError(t, err)

	_, err = testDB.Exec(ctx, "UPDATE employees SET salary_structure_id = $1 WHERE id = $2", created.ID, employeeID)
	require.NoError(t, err)

	retrieved, err := structureRepo.GetByEmployeeID(ctx, employeeID, companyID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, retrieved.ID)
	assert.Len(t, retrieved.Components, 3)
}

func TestStructureRepository_ListByCompanyID_ActiveOnly(t *testing.T) {
	ctx := context.Background()
	truncateTables(t, ctx)

	companyID := createTestCompany(t, ctx)
	structureRepo := postgresql.NewStructureRepository(testDB)

	active, err := structureRepo.Create(ctx, buildTestStructure(companyID))
	require.NoError(t, err)

	inactive := buildTestStructure(companyID)
	inactive.IsActive = false
	_, err = structureRepo.Create(ctx, inactive)
	require.NoError(t, err)

	all, err := structureRepo.ListByCompanyID(ctx, companyID, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	activeOnly, err := structureRepo.ListByCompanyID(ctx, companyID, true)
	require.NoError(t, err)
	require.Len(t, activeOnly, 1)
	assert.Equal(t, active.ID, activeOnly[0].ID)
}

func TestStructureRepository_Delete_InUse(t *testing.T) {
	ctx := context.Background()
	truncateTables(t, ctx)

	companyID := createTestCompany(t, ctx)
	employeeID := createTestEmployee(t, ctx, companyID)

	structureRepo := postgresql.NewStructureRepository(testDB)
	created, err := structureRepo.Create(ctx, buildTestStructure(companyID))
	require.NoError(t, err)

	_, err = testDB.Exec(ctx, "UPDATE employees SET salary_structure_id = $1 WHERE id = $2", created.ID, employeeID)
	require.NoError(t, err)

	err = structureRepo.Delete(ctx, created.ID, companyID)
	assert.ErrorIs(t, err, payroll.ErrStructureInUse)
}

func TestStructureRepository_Delete_Success(t *testing.T) {
	ctx := context.Background()
	truncateTables(t, ctx)

	companyID := createTestCompany(t, ctx)
	structureRepo := postgresql.NewStructureRepository(testDB)

	created, err := structureRepo.Create(ctx, buildTestStructure(companyID))
	require.NoError(t, err)

	err = structureRepo.Delete(ctx, created.ID, companyID)
	require.NoError(t, err)

	_, err = structureRepo.GetByID(ctx, created.ID, companyID)
	assert.ErrorIs(t, err, payroll.ErrStructureNotFound)
}
