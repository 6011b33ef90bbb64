package postgresql_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ujoors/payroll-backend-go/internal/domain/employee"
	"github.com/ujoors/payroll-backend-go/internal/repository/postgresql"
)

// ===== EMPLOYEE REPOSITORY TESTS =====

func TestEmployeeRepository_GetByID_Success(t *testing.T) {
	ctx := context.Background()
	truncateTables(t, ctx)

	companyID := createTestCompany(t, ctx)
	employeeID := createTestEmployee(t, ctx, companyID)

	employeeRepo := postgresql.NewEmployeeRepository(testDB)
	retrieved, err := employeeRepo.GetByID(ctx, employeeID, companyID)

	require.NoError(t, err)
	assert.Equal(t, employeeID, retrieved.ID)
	assert.Equal(t, "Test Employee", retrieved.FullName)
	require.NotNil(t, retrieved.BasicSalary)
	assert.True(t, retrieved.BasicSalary.IsPositive())
}

func TestEmployeeRepository_GetByID_WrongCompany(t *testing.T) {
	ctx := context.Background()
	truncateTables(t, ctx)

	companyID := createTestCompany(t, ctx)
	otherCompanyID := createTestCompany(t, ctx)
	employeeID := createTestEmployee(t, ctx, companyID)

	employeeRepo := postgresql.NewEmployeeRepository(testDB)
	_, err := employeeRepo.GetByID(ctx, employeeID, otherCompanyID)

	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestEmployeeRepository_GetByEmployeeCode(t *testing.T) {
	ctx := context.Background()
	truncateTables(t, ctx)

	companyID := createTestCompany(t, ctx)
	employeeID := createTestEmployee(t, ctx, companyID)

	employeeRepo := postgresql.NewEmployeeRepository(testDB)
	byID, err := employeeRepo.GetByID(ctx, employeeID, companyID)
	require.NoError(t, err)

	byCode, err := employeeRepo.GetByEmployeeCode(ctx, companyID, byID.EmployeeCode)
	require.NoError(t, err)
	assert.Equal(t, employeeID, byCode.ID)

	_, err = employeeRepo.GetByEmployeeCode(ctx, companyID, "NO-SUCH-CODE")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestEmployeeRepository_GetActiveByCompanyID(t *testing.T) {
	ctx := context.Background()
	truncateTables(t, ctx)

	companyID := createTestCompany(t, ctx)
	first := createTestEmployee(t, ctx, companyID)
	second := createTestEmployee(t, ctx, companyID)
	resigned := createTestEmployee(t, ctx, companyID)

	_, err := testDB.Exec(ctx, "UPDATE employees SET employment_status = 'resigned' WHERE id = $1", resigned)
	require.NoError(t, err)

	employeeRepo := postgresql.NewEmployeeRepository(testDB)
	active, err := employeeRepo.GetActiveByCompanyID(ctx, companyID)

	require.NoError(t, err)
	require.Len(t, active, 2)
	ids := []string{active[0].ID, active[1].ID}
	assert.ElementsMatch(t, []string{first, second}, ids)
}

func TestEmployeeRepository_GetByIDs(t *testing.T) {
	ctx := context.Background()
	truncateTables(t, ctx)

	companyID := createTestCompany(t, ctx)
	first := createTestEmployee(t, ctx, companyID)
	createTestEmployee(t, ctx, companyID)

	employeeRepo := postgresql.NewEmployeeRepository(testDB)

	employees, err := employeeRepo.GetByIDs(ctx, companyID, []string{first})
	require.NoError(t, err)
	require.Len(t, employees, 1)
	assert.Equal(t, first, employees[0].ID)

	employees, err = employeeRepo.GetByIDs(ctx, companyID, nil)
	require.NoError(t, err)
	assert.Empty(t, employees)
}
