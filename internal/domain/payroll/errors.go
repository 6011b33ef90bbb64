package payroll

import "errors"

var (
	ErrPeriodNotFound          = errors.New("payroll period not found")
	ErrPeriodAlreadyExists     = errors.New("payroll period already exists for these dates")
	ErrInvalidPeriodTransition = errors.New("invalid payroll period status transition")
	ErrPeriodNotSettleable     = errors.New("payroll period does not accept settlement in its current status")
	ErrStructureNotFound       = errors.New("salary structure not found")
	ErrStructureNameExists     = errors.New("salary structure name already exists")
	ErrStructureInUse          = errors.New("salary structure is assigned to employees and cannot be deleted")
	ErrPayslipNotFound         = errors.New("payslip not found")
	ErrPayslipAlreadyExists    = errors.New("payslip already exists for this employee and period")
	ErrInvalidPayslipStatus    = errors.New("invalid payslip status transition")
)
