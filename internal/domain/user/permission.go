package user

type Permission string

const (
	// Payroll
	PermissionPayrollRun     Permission = "payroll.run"
	PermissionPayrollApprove Permission = "payroll.approve"
	PermissionPayrollView    Permission = "payroll.view"

	// Salary structures
	PermissionStructureManage Permission = "structure.manage"
	PermissionStructureView   Permission = "structure.view"

	// Payslips
	PermissionPayslipViewAll Permission = "payslip.view_all"
	PermissionPayslipViewOwn Permission = "payslip.view_own"

	// Loans
	PermissionLoanApprove Permission = "loan.approve"
	PermissionLoanViewAll Permission = "loan.view_all"
	PermissionLoanApply   Permission = "loan.apply"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleOwner: {
		PermissionPayrollRun,
		PermissionPayrollApprove,
		PermissionPayrollView,
		PermissionStructureManage,
		PermissionStructureView,
		PermissionPayslipViewAll,
		PermissionPayslipViewOwn,
		PermissionLoanApprove,
		PermissionLoanViewAll,
		PermissionLoanApply,
	},
	RoleHR: {
		PermissionPayrollRun,
		PermissionPayrollView,
		PermissionStructureManage,
		PermissionStructureView,
		PermissionPayslipViewAll,
		PermissionPayslipViewOwn,
		PermissionLoanApprove,
		PermissionLoanViewAll,
		PermissionLoanApply,
	},
	RoleEmployee: {
		PermissionPayslipViewOwn,
		PermissionLoanApply,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
