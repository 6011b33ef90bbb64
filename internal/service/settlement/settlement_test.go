package settlement

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ujoors/payroll-backend-go/internal/domain/loan"
	"github.com/ujoors/payroll-backend-go/internal/domain/payroll"
)

func defaultConfig() Config {
	return Config{
		StandardDailyHours: decimal.NewFromInt(8),
		OvertimeMultiplier: decimal.RequireFromString("1.5"),
		ClampExcessAbsence: true,
	}
}

func defaultRates() GOSIRates {
	return GOSIRates{
		Employee: decimal.RequireFromString("0.0975"),
		Employer: decimal.RequireFromString("0.1175"),
	}
}

// basic 10,000 + housing 25% (taxable, GOSI) + transport 500 fixed (neither)
func defaultStructure() payroll.SalaryStructure {
	return payroll.SalaryStructure{
		ID: "structure-1",
		Components: []payroll.SalaryComponent{
			{Name: "Basic Salary", Type: payroll.ComponentTypeBasic, IsPercentage: false, Value: decimal.NewFromInt(10000), IsTaxable: true, IsGOSIApplicable: true},
			{Name: "Housing Allowance", Type: payroll.ComponentTypeHousing, IsPercentage: true, Value: decimal.NewFromInt(25), IsTaxable: true, IsGOSIApplicable: true},
			{Name: "Transport Allowance", Type: payroll.ComponentTypeTransport, IsPercentage: false, Value: decimal.NewFromInt(500)},
		},
	}
}

func defaultInput() Input {
	return Input{
		Employee: EmployeeInput{BasicSalary: decimal.NewFromInt(10000)},
		Structure: defaultStructure(),
		Attendance: payroll.AttendanceSummary{
			EmployeeID:     "emp-1",
			PeriodID:       "period-1",
			WorkingDays:    30,
			ActualWorkDays: 30,
		},
		Rates: defaultRates(),
	}
}

func TestSettle_FullMonthNoLoans(t *testing.T) {
	result, err := Settle(defaultInput(), defaultConfig())
	require.NoError(t, err)

	slip := result.Payslip
	assert.Equal(t, "12500.00", slip.GOSIBase.StringFixed(2))
	assert.Equal(t, "1218.75", slip.GOSIEmployee.StringFixed(2))
	assert.Equal(t, "1468.75", slip.GOSIEmployer.StringFixed(2))
	assert.Equal(t, "13000.00", slip.TotalEarnings.StringFixed(2))
	assert.Equal(t, "1218.75", slip.TotalDeductions.StringFixed(2))
	assert.Equal(t, "11781.25", slip.NetSalary.StringFixed(2))
	assert.Equal(t, payroll.PayslipStatusGenerated, slip.Status)
	assert.Empty(t, result.LoanUpdates)

	// Basic is always the first earnings line, in structure order after it.
	require.Len(t, slip.Earnings, 3)
	assert.Equal(t, "Basic Salary", slip.Earnings[0].Name)
	assert.Equal(t, "10000.00", slip.Earnings[0].Amount.StringFixed(2))
	assert.Equal(t, "Housing Allowance", slip.Earnings[1].Name)
	assert.Equal(t, "2500.00", slip.Earnings[1].Amount.StringFixed(2))
	assert.Equal(t, "Transport Allowance", slip.Earnings[2].Name)
}

func TestSettle_AbsenceDeduction(t *testing.T) {
	in := defaultInput()
	in.Attendance.ActualWorkDays = 27
	in.Attendance.AbsentDays = 3

	result, err := Settle(in, defaultConfig())
	require.NoError(t, err)

	slip := result.Payslip
	var absence *payroll.PayslipLine
	for i := range slip.Deductions {
		if slip.Deductions[i].Name == "Absence" {
			absence = &slip.Deductions[i]
		}
	}
	require.NotNil(t, absence)
	assert.Equal(t, "1000.00", absence.Amount.StringFixed(2))
	assert.Equal(t, "10781.25", slip.NetSalary.StringFixed(2))
}

func TestSettle_OvertimePay(t *testing.T) {
	in := defaultInput()
	in.Attendance.OvertimeHours = decimal.NewFromInt(12)

	result, err := Settle(in, defaultConfig())
	require.NoError(t, err)

	// hourly = 10000 / (30*8) = 41.666..., overtime = 41.666.. * 12 * 1.5 = 750.00
	slip := result.Payslip
	var overtime *payroll.PayslipLine
	for i := range slip.Earnings {
		if slip.Earnings[i].Name == "Overtime" {
			overtime = &slip.Earnings[i]
		}
	}
	require.NotNil(t, overtime)
	assert.Equal(t, "750.00", overtime.Amount.StringFixed(2))
	assert.Equal(t, "13750.00", slip.TotalEarnings.StringFixed(2))
}

func TestSettle_EmployeeOvertimeMultiplierOverride(t *testing.T) {
	double := decimal.NewFromInt(2)
	in := defaultInput()
	in.Employee.OvertimeMultiplier = &double
	in.Attendance.OvertimeHours = decimal.NewFromInt(12)

	result, err := Settle(in, defaultConfig())
	require.NoError(t, err)
	assert.Equal(t, "14000.00", result.Payslip.TotalEarnings.StringFixed(2))
}

func TestSettle_LoanInstallmentDeducted(t *testing.T) {
	in := defaultInput()
	in.Loans = []loan.Loan{{
		ID:                "loan-1",
		Status:            loan.StatusActive,
		Principal:         decimal.NewFromInt(6000),
		Installments:      3,
		InstallmentAmount: decimal.NewFromInt(2000),
		PaidInstallments:  1,
		RemainingAmount:   decimal.NewFromInt(4000),
	}}

	result, err := Settle(in, defaultConfig())
	require.NoError(t, err)

	require.Len(t, result.LoanUpdates, 1)
	u := result.LoanUpdates[0]
	assert.Equal(t, "2000.00", u.InstallmentDue.StringFixed(2))
	assert.Equal(t, "2000.00", u.NewRemainingAmount.StringFixed(2))
	assert.Equal(t, 2, u.NewPaidInstallments)
	assert.Equal(t, loan.StatusActive, u.NewStatus)

	assert.Equal(t, "9781.25", result.Payslip.NetSalary.StringFixed(2))
}

func TestSettle_FinalInstallmentCompletesLoan(t *testing.T) {
	in := defaultInput()
	in.Loans = []loan.Loan{{
		ID:                "loan-1",
		Status:            loan.StatusActive,
		Principal:         decimal.NewFromInt(6000),
		Installments:      3,
		InstallmentAmount: decimal.NewFromInt(2000),
		PaidInstallments:  2,
		RemainingAmount:   decimal.NewFromInt(2000),
	}}

	result, err := Settle(in, defaultConfig())
	require.NoError(t, err)

	require.Len(t, result.LoanUpdates, 1)
	u := result.LoanUpdates[0]
	assert.Equal(t, "2000.00", u.InstallmentDue.StringFixed(2))
	assert.True(t, u.NewRemainingAmount.IsZero())
	assert.Equal(t, loan.StatusCompleted, u.NewStatus)
}

func TestSettle_NegativeNetPay(t *testing.T) {
	in := defaultInput()
	in.Attendance.AbsentDays = 28
	in.Loans = []loan.Loan{{
		ID:                "loan-1",
		Status:            loan.StatusActive,
		InstallmentAmount: decimal.NewFromInt(4000),
		RemainingAmount:   decimal.NewFromInt(4000),
	}}

	_, err := Settle(in, defaultConfig())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNegativeNetPay)
}

func TestSettle_DuplicateBasicComponent(t *testing.T) {
	in := defaultInput()
	in.Structure.Components = append(in.Structure.Components, payroll.SalaryComponent{
		Name: "Second Basic", Type: payroll.ComponentTypeBasic, Value: decimal.NewFromInt(1),
	})

	_, err := Settle(in, defaultConfig())
	assert.ErrorIs(t, err, ErrInvalidStructure)
}

func TestSettle_MissingBasicComponent(t *testing.T) {
	in := defaultInput()
	in.Structure.Components = in.Structure.Components[1:]

	_, err := Settle(in, defaultConfig())
	assert.ErrorIs(t, err, ErrInvalidStructure)
}

func TestSettle_NonPositiveBasicSalary(t *testing.T) {
	in := defaultInput()
	in.Employee.BasicSalary = decimal.Zero

	_, err := Settle(in, defaultConfig())
	assert.ErrorIs(t, err, ErrInvalidInput)

	in.Employee.BasicSalary = decimal.NewFromInt(-100)
	_, err = Settle(in, defaultConfig())
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSettle_NegativeComponentValue(t *testing.T) {
	in := defaultInput()
	in.Structure.Components[2].Value = decimal.NewFromInt(-500)

	_, err := Settle(in, defaultConfig())
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSettle_ZeroWorkingDays(t *testing.T) {
	in := defaultInput()
	in.Attendance.WorkingDays = 0

	_, err := Settle(in, defaultConfig())
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestSettle_ExcessAbsenceClampPolicy(t *testing.T) {
	in := defaultInput()
	in.Attendance.AbsentDays = 45

	// Clamp enabled: deduct at most the whole period.
	result, err := Settle(in, defaultConfig())
	require.NoError(t, err)
	var absence decimal.Decimal
	for _, d := range result.Payslip.Deductions {
		if d.Name == "Absence" {
			absence = d.Amount
		}
	}
	assert.Equal(t, "10000.00", absence.StringFixed(2))

	// Clamp disabled: surface the bad data instead of deducting.
	cfg := defaultConfig()
	cfg.ClampExcessAbsence = false
	_, err = Settle(in, cfg)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSettle_ExternalDeductions(t *testing.T) {
	in := defaultInput()
	in.ExternalDeductions = []payroll.PayslipLine{
		{Name: "Parking Penalty", Amount: decimal.NewFromInt(150)},
	}

	result, err := Settle(in, defaultConfig())
	require.NoError(t, err)
	assert.Equal(t, "1368.75", result.Payslip.TotalDeductions.StringFixed(2))
	assert.Equal(t, "11631.25", result.Payslip.NetSalary.StringFixed(2))

	in.ExternalDeductions[0].Amount = decimal.NewFromInt(-1)
	_, err = Settle(in, defaultConfig())
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSettle_Deterministic(t *testing.T) {
	in := defaultInput()
	in.Attendance.AbsentDays = 2
	in.Attendance.OvertimeHours = decimal.RequireFromString("7.5")
	in.Loans = []loan.Loan{{
		ID:                "loan-1",
		Status:            loan.StatusActive,
		InstallmentAmount: decimal.RequireFromString("833.33"),
		RemainingAmount:   decimal.RequireFromString("1666.67"),
	}}

	first, err := Settle(in, defaultConfig())
	require.NoError(t, err)
	second, err := Settle(in, defaultConfig())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSettle_Conservation(t *testing.T) {
	cases := []struct {
		name       string
		absentDays int
		overtime   string
	}{
		{"full month", 0, "0"},
		{"with absences", 5, "0"},
		{"with overtime", 0, "13.25"},
		{"mixed", 3, "2.5"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			in := defaultInput()
			in.Attendance.AbsentDays = c.absentDays
			in.Attendance.OvertimeHours = decimal.RequireFromString(c.overtime)

			result, err := Settle(in, defaultConfig())
			require.NoError(t, err)

			slip := result.Payslip
			sumEarnings := decimal.Zero
			for _, e := range slip.Earnings {
				sumEarnings = sumEarnings.Add(e.Amount)
			}
			sumDeductions := decimal.Zero
			for _, d := range slip.Deductions {
				sumDeductions = sumDeductions.Add(d.Amount)
			}

			assert.True(t, slip.TotalEarnings.Equal(sumEarnings), "total earnings %s != line sum %s", slip.TotalEarnings, sumEarnings)
			assert.True(t, slip.TotalDeductions.Equal(sumDeductions), "total deductions %s != line sum %s", slip.TotalDeductions, sumDeductions)
			assert.True(t, slip.NetSalary.Equal(slip.TotalEarnings.Sub(slip.TotalDeductions)), "net %s != earnings - deductions", slip.NetSalary)
		})
	}
}

func TestSettle_GOSIProportionality(t *testing.T) {
	tolerance := decimal.RequireFromString("0.01")

	for _, basic := range []string{"3000", "7431.50", "10000", "24999.99"} {
		in := defaultInput()
		in.Employee.BasicSalary = decimal.RequireFromString(basic)

		result, err := Settle(in, defaultConfig())
		require.NoError(t, err)

		slip := result.Payslip
		require.True(t, slip.GOSIBase.IsPositive())
		expected := slip.GOSIBase.Mul(defaultRates().Employee)
		diff := slip.GOSIEmployee.Sub(expected).Abs()
		assert.True(t, diff.LessThanOrEqual(tolerance), "basic %s: employee contribution %s deviates %s from %s", basic, slip.GOSIEmployee, diff, expected)
	}
}

func TestSettle_ZeroGOSIBase(t *testing.T) {
	in := defaultInput()
	for i := range in.Structure.Components {
		in.Structure.Components[i].IsGOSIApplicable = false
	}

	result, err := Settle(in, defaultConfig())
	require.NoError(t, err)
	assert.True(t, result.Payslip.GOSIBase.IsZero())
	assert.True(t, result.Payslip.GOSIEmployee.IsZero())
	assert.True(t, result.Payslip.GOSIEmployer.IsZero())
}
