package response

import (
	"errors"
	"net/http"

	"github.com/ujoors/payroll-backend-go/internal/domain/auth"
	"github.com/ujoors/payroll-backend-go/internal/domain/employee"
	"github.com/ujoors/payroll-backend-go/internal/domain/loan"
	"github.com/ujoors/payroll-backend-go/internal/domain/payroll"
	"github.com/ujoors/payroll-backend-go/internal/domain/user"
	"github.com/ujoors/payroll-backend-go/internal/pkg/validator"
	"github.com/ujoors/payroll-backend-go/internal/service/settlement"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrUserNotFound):
		NotFound(w, "User not found")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, employee.ErrEmployeeHasNoSalary):
		BadRequest(w, "Employee has no basic salary configured", nil)
	case errors.Is(err, employee.ErrEmployeeHasNoStructure):
		BadRequest(w, "Employee has no salary structure assigned", nil)

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPeriodNotFound):
		NotFound(w, "Payroll period not found")
	case errors.Is(err, payroll.ErrPeriodAlreadyExists):
		Conflict(w, "Payroll period already exists for these dates")
	case errors.Is(err, payroll.ErrInvalidPeriodTransition):
		Conflict(w, err.Error())
	case errors.Is(err, payroll.ErrPeriodNotSettleable):
		Conflict(w, err.Error())
	case errors.Is(err, payroll.ErrStructureNotFound):
		NotFound(w, "Salary structure not found")
	case errors.Is(err, payroll.ErrStructureNameExists):
		Conflict(w, "Salary structure name already exists")
	case errors.Is(err, payroll.ErrStructureInUse):
		Conflict(w, "Salary structure is assigned to employees and cannot be deleted")
	case errors.Is(err, payroll.ErrPayslipNotFound):
		NotFound(w, "Payslip not found")
	case errors.Is(err, payroll.ErrPayslipAlreadyExists):
		Conflict(w, "Payslip already exists for this employee and period")
	case errors.Is(err, payroll.ErrInvalidPayslipStatus):
		Conflict(w, err.Error())

	// Settlement errors surface when a single employee is settled directly
	case errors.Is(err, settlement.ErrInvalidStructure),
		errors.Is(err, settlement.ErrInvalidInput),
		errors.Is(err, settlement.ErrInvalidPeriod),
		errors.Is(err, settlement.ErrNegativeNetPay):
		BadRequest(w, err.Error(), nil)

	// Loan domain errors
	case errors.Is(err, loan.ErrLoanNotFound):
		NotFound(w, "Loan not found")
	case errors.Is(err, loan.ErrInvalidLoanTransition):
		Conflict(w, err.Error())
	case errors.Is(err, loan.ErrLoanNotActive):
		Conflict(w, "Loan is not active")
	case errors.Is(err, loan.ErrEmployeeHasActiveLoan):
		Conflict(w, "Employee already has an active loan")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
