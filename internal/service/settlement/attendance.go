package settlement

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/ujoors/payroll-backend-go/internal/domain/payroll"
)

// Adjustments are the pay deltas derived from one period's attendance.
type Adjustments struct {
	AbsenceDeduction decimal.Decimal
	OvertimePay      decimal.Decimal
}

// computeAdjustments converts absence and overtime counts into pay deltas.
// Daily rate is basic/workingDays, hourly rate divides that further by the
// configured standard daily hours. Results are rounded once at the end;
// intermediate terms keep full precision to avoid compounding drift.
func computeAdjustments(att payroll.AttendanceSummary, basic decimal.Decimal, multiplier decimal.Decimal, cfg Config) (Adjustments, error) {
	if att.WorkingDays == 0 {
		return Adjustments{}, fmt.Errorf("%w: working days is zero", ErrInvalidPeriod)
	}
	if att.WorkingDays < 0 || att.AbsentDays < 0 {
		return Adjustments{}, fmt.Errorf("%w: negative attendance counts", ErrInvalidInput)
	}
	if att.OvertimeHours.IsNegative() {
		return Adjustments{}, fmt.Errorf("%w: negative overtime hours", ErrInvalidInput)
	}

	absentDays := att.AbsentDays
	if absentDays > att.WorkingDays {
		// More absences than the period holds is a data problem. Policy
		// decides between clamping and surfacing it for correction.
		if !cfg.ClampExcessAbsence {
			return Adjustments{}, fmt.Errorf("%w: absent days %d exceed working days %d", ErrInvalidInput, att.AbsentDays, att.WorkingDays)
		}
		absentDays = att.WorkingDays
	}

	workingDays := decimal.NewFromInt(int64(att.WorkingDays))
	dailyRate := basic.Div(workingDays)
	absenceDeduction := round2(dailyRate.Mul(decimal.NewFromInt(int64(absentDays))))

	hourlyRate := basic.Div(workingDays.Mul(cfg.StandardDailyHours))
	overtimePay := round2(hourlyRate.Mul(att.OvertimeHours).Mul(multiplier))

	return Adjustments{
		AbsenceDeduction: absenceDeduction,
		OvertimePay:      overtimePay,
	}, nil
}
