package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasPermission(t *testing.T) {
	// Owner is the only role that approves payroll.
	assert.True(t, HasPermission(RoleOwner, PermissionPayrollApprove))
	assert.False(t, HasPermission(RoleHR, PermissionPayrollApprove))
	assert.False(t, HasPermission(RoleEmployee, PermissionPayrollApprove))

	assert.True(t, HasPermission(RoleOwner, PermissionPayrollRun))
	assert.True(t, HasPermission(RoleHR, PermissionPayrollRun))
	assert.False(t, HasPermission(RoleEmployee, PermissionPayrollRun))

	assert.True(t, HasPermission(RoleEmployee, PermissionPayslipViewOwn))
	assert.True(t, HasPermission(RoleEmployee, PermissionLoanApply))
	assert.False(t, HasPermission(RoleEmployee, PermissionLoanApprove))

	assert.False(t, HasPermission(Role("unknown"), PermissionPayrollView))
}

func TestRole_Valid(t *testing.T) {
	assert.True(t, RoleOwner.Valid())
	assert.True(t, RoleHR.Valid())
	assert.True(t, RoleEmployee.Valid())

	assert.False(t, Role("superadmin").Valid())
	assert.False(t, Role("").Valid())
}

func TestUser_RoleHelpers(t *testing.T) {
	owner := User{Role: RoleOwner}
	hr := User{Role: RoleHR}
	emp := User{Role: RoleEmployee}

	assert.True(t, owner.IsOwner())
	assert.False(t, hr.IsOwner())

	assert.True(t, owner.CanRunPayroll())
	assert.True(t, hr.CanRunPayroll())
	assert.False(t, emp.CanRunPayroll())
}
