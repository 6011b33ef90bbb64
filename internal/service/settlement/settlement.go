// Package settlement computes one employee's payslip for one payroll
// period. It is a pure function of its inputs: no I/O, no shared state, no
// clock. That keeps payroll math auditable and exactly reproducible from an
// input snapshot, and lets the run orchestrator settle employees in
// parallel without coordination.
package settlement

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/ujoors/payroll-backend-go/internal/domain/loan"
	"github.com/ujoors/payroll-backend-go/internal/domain/payroll"
)

// Config carries the policy knobs the engine is parameterized with. All of
// them are company or jurisdiction policy, never compile-time constants.
type Config struct {
	StandardDailyHours decimal.Decimal
	OvertimeMultiplier decimal.Decimal // fallback when the employee has no override
	ClampExcessAbsence bool
}

// EmployeeInput is the slice of employee data settlement needs.
type EmployeeInput struct {
	BasicSalary        decimal.Decimal
	OvertimeMultiplier *decimal.Decimal
}

// Input is the full snapshot for one employee's settlement.
type Input struct {
	Employee           EmployeeInput
	Structure          payroll.SalaryStructure
	Attendance         payroll.AttendanceSummary
	Loans              []loan.Loan
	Rates              GOSIRates
	ExternalDeductions []payroll.PayslipLine
}

// Result is the in-memory settlement output. Persisting the payslip and the
// loan updates is the caller's job, inside its own transaction boundary;
// the engine never performs partial writes.
type Result struct {
	Payslip     payroll.Payslip
	LoanUpdates []loan.Update
}

// Settle computes the payslip: resolve the salary structure, apply
// attendance deltas, compute the GOSI split, allocate loan installments and
// assemble the totals. Any error aborts the whole computation for this
// employee; there is no partial result.
func Settle(in Input, cfg Config) (Result, error) {
	components, err := resolveStructure(in.Structure, in.Employee.BasicSalary)
	if err != nil {
		return Result{}, err
	}

	multiplier := cfg.OvertimeMultiplier
	if in.Employee.OvertimeMultiplier != nil {
		multiplier = *in.Employee.OvertimeMultiplier
	}
	adjustments, err := computeAdjustments(in.Attendance, in.Employee.BasicSalary, multiplier, cfg)
	if err != nil {
		return Result{}, err
	}

	gosi := computeGOSI(components, in.Rates)
	loanUpdates := AllocateInstallments(in.Loans)

	earnings := make([]payroll.PayslipLine, 0, len(components)+1)
	totalEarnings := decimal.Zero
	for _, c := range components {
		earnings = append(earnings, payroll.PayslipLine{Name: c.Name, Amount: c.Amount})
		totalEarnings = totalEarnings.Add(c.Amount)
	}
	if adjustments.OvertimePay.IsPositive() {
		earnings = append(earnings, payroll.PayslipLine{Name: "Overtime", Amount: adjustments.OvertimePay})
		totalEarnings = totalEarnings.Add(adjustments.OvertimePay)
	}

	deductions := []payroll.PayslipLine{
		{Name: "GOSI - Employee", Amount: gosi.Employee},
	}
	for _, u := range loanUpdates {
		deductions = append(deductions, payroll.PayslipLine{Name: "Loan: " + u.LoanID, Amount: u.InstallmentDue})
	}
	if adjustments.AbsenceDeduction.IsPositive() {
		deductions = append(deductions, payroll.PayslipLine{Name: "Absence", Amount: adjustments.AbsenceDeduction})
	}
	for _, d := range in.ExternalDeductions {
		if d.Amount.IsNegative() {
			return Result{}, fmt.Errorf("%w: external deduction %q is negative", ErrInvalidInput, d.Name)
		}
		deductions = append(deductions, d)
	}

	totalDeductions := decimal.Zero
	for _, d := range deductions {
		totalDeductions = totalDeductions.Add(d.Amount)
	}

	netSalary := round2(totalEarnings.Sub(totalDeductions))
	if netSalary.IsNegative() {
		// Surfaced for a human policy decision, never auto-clamped.
		return Result{}, fmt.Errorf("%w: earnings %s, deductions %s", ErrNegativeNetPay, totalEarnings, totalDeductions)
	}

	return Result{
		Payslip: payroll.Payslip{
			EmployeeID:      in.Attendance.EmployeeID,
			PayrollPeriodID: in.Attendance.PeriodID,
			Earnings:        earnings,
			Deductions:      deductions,
			TotalEarnings:   totalEarnings,
			TotalDeductions: totalDeductions,
			NetSalary:       netSalary,
			GOSIBase:        gosi.Base,
			GOSIEmployee:    gosi.Employee,
			GOSIEmployer:    gosi.Employer,
			Status:          payroll.PayslipStatusGenerated,
		},
		LoanUpdates: loanUpdates,
	}, nil
}

// round2 rounds a monetary amount to 2 decimal places, half up. Applied
// once at the end of each component's computation, never on intermediate
// terms.
func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
