package postgresql

import (
	"context"
	"fmt"

	"github.com/ujoors/payroll-backend-go/internal/domain/payroll"
	"github.com/ujoors/payroll-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) payroll.AttendanceRepository {
	return &attendanceRepository{db: db}
}

// GetSummaries returns one aggregate row per employee that has attendance
// recorded for the period. Employees without a row default to full
// attendance at the service layer.
func (r *attendanceRepository) GetSummaries(ctx context.Context, companyID string, periodID string, employeeIDs []string) ([]payroll.AttendanceSummary, error) {
	if len(employeeIDs) == 0 {
		return nil, nil
	}

	q := GetQuerier(ctx, r.db)

	query := `
		SELECT employee_id, payroll_period_id, working_days, actual_work_days, absent_days, overtime_hours
		FROM attendance_summaries
		WHERE company_id = $1 AND payroll_period_id = $2 AND employee_id = ANY($3)
	`

	rows, err := q.Query(ctx, query, companyID, periodID, employeeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance summaries: %w", err)
	}
	defer rows.Close()

	var summaries []payroll.AttendanceSummary
	for rows.Next() {
		var s payroll.AttendanceSummary
		if err := rows.Scan(
			&s.EmployeeID, &s.PeriodID, &s.WorkingDays, &s.ActualWorkDays, &s.AbsentDays, &s.OvertimeHours,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance summary: %w", err)
		}
		summaries = append(summaries, s)
	}

	return summaries, nil
}
