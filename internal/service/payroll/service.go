package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/ujoors/payroll-backend-go/internal/config"
	"github.com/ujoors/payroll-backend-go/internal/domain/employee"
	"github.com/ujoors/payroll-backend-go/internal/domain/loan"
	"github.com/ujoors/payroll-backend-go/internal/domain/payroll"
	"github.com/ujoors/payroll-backend-go/internal/pkg/database"
	"github.com/ujoors/payroll-backend-go/internal/pkg/payslipdoc"
	"github.com/ujoors/payroll-backend-go/internal/pkg/validator"
	"github.com/ujoors/payroll-backend-go/internal/repository/postgresql"
	"github.com/ujoors/payroll-backend-go/internal/service/settlement"
	"golang.org/x/sync/errgroup"
)

type PayrollServiceImpl struct {
	db             *database.DB
	cfg            config.PayrollConfig
	periodRepo     payroll.PeriodRepository
	structureRepo  payroll.StructureRepository
	payslipRepo    payroll.PayslipRepository
	attendanceRepo payroll.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	loanRepo       loan.LoanRepository
	renderer       *payslipdoc.Renderer
}

func NewPayrollService(
	db *database.DB,
	cfg config.PayrollConfig,
	periodRepo payroll.PeriodRepository,
	structureRepo payroll.StructureRepository,
	payslipRepo payroll.PayslipRepository,
	attendanceRepo payroll.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	loanRepo loan.LoanRepository,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		db:             db,
		cfg:            cfg,
		periodRepo:     periodRepo,
		structureRepo:  structureRepo,
		payslipRepo:    payslipRepo,
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		loanRepo:       loanRepo,
		renderer:       payslipdoc.NewRenderer(cfg.PayslipStoragePath),
	}
}

// Helper to get company_id and user_id from JWT context
func getClaimsFromContext(ctx context.Context) (companyID, userID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", fmt.Errorf("company_id claim is missing or invalid")
	}

	userID, _ = claims["user_id"].(string)

	return companyID, userID, nil
}

// ========== PERIODS ==========

func (s *PayrollServiceImpl) CreatePeriod(ctx context.Context, req payroll.CreatePeriodRequest) (payroll.PeriodResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.PeriodResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return payroll.PeriodResponse{}, err
	}

	startDate, _ := validator.IsValidDate(req.StartDate)
	endDate, _ := validator.IsValidDate(req.EndDate)
	paymentDate, _ := validator.IsValidDate(req.PaymentDate)

	period, err := s.periodRepo.Create(ctx, payroll.PayrollPeriod{
		CompanyID:   companyID,
		StartDate:   startDate,
		EndDate:     endDate,
		PaymentDate: paymentDate,
		WorkingDays: req.WorkingDays,
		Status:      payroll.PeriodStatusDraft,
	})
	if err != nil {
		return payroll.PeriodResponse{}, err
	}

	return toPeriodResponse(period), nil
}

func (s *PayrollServiceImpl) GetPeriod(ctx context.Context, id string) (payroll.PeriodResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.PeriodResponse{}, err
	}

	period, err := s.periodRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return payroll.PeriodResponse{}, err
	}

	return toPeriodResponse(period), nil
}

func (s *PayrollServiceImpl) ListPeriods(ctx context.Context) ([]payroll.PeriodResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	periods, err := s.periodRepo.ListByCompanyID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	responses := make([]payroll.PeriodResponse, len(periods))
	for i, p := range periods {
		responses[i] = toPeriodResponse(p)
	}

	return responses, nil
}

func (s *PayrollServiceImpl) ApprovePeriod(ctx context.Context, id string) error {
	return s.transitionPeriod(ctx, id, payroll.PeriodStatusApproved)
}

func (s *PayrollServiceImpl) MarkPeriodPaid(ctx context.Context, id string) error {
	return s.transitionPeriod(ctx, id, payroll.PeriodStatusPaid)
}

func (s *PayrollServiceImpl) CancelPeriod(ctx context.Context, id string) error {
	return s.transitionPeriod(ctx, id, payroll.PeriodStatusCancelled)
}

func (s *PayrollServiceImpl) transitionPeriod(ctx context.Context, id string, next payroll.PeriodStatus) error {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return err
	}

	period, err := s.periodRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return err
	}

	if !period.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", payroll.ErrInvalidPeriodTransition, period.Status, next)
	}

	return s.periodRepo.UpdateStatus(ctx, id, companyID, next)
}

// ========== SETTLEMENT RUN ==========

func (s *PayrollServiceImpl) RunPeriod(ctx context.Context, periodID string, req payroll.RunPeriodRequest) (payroll.RunPeriodResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.RunPeriodResponse{}, err
	}

	period, err := s.periodRepo.GetByID(ctx, periodID, companyID)
	if err != nil {
		return payroll.RunPeriodResponse{}, err
	}
	if !period.Status.AllowsSettlement() {
		return payroll.RunPeriodResponse{}, fmt.Errorf("%w: status %s", payroll.ErrPeriodNotSettleable, period.Status)
	}

	if period.Status == payroll.PeriodStatusDraft {
		if err := s.periodRepo.UpdateStatus(ctx, periodID, companyID, payroll.PeriodStatusProcessing); err != nil {
			return payroll.RunPeriodResponse{}, err
		}
		period.Status = payroll.PeriodStatusProcessing
	}

	var employees []employee.Employee
	if len(req.EmployeeIDs) > 0 {
		employees, err = s.employeeRepo.GetByIDs(ctx, companyID, req.EmployeeIDs)
	} else {
		employees, err = s.employeeRepo.GetActiveByCompanyID(ctx, companyID)
	}
	if err != nil {
		return payroll.RunPeriodResponse{}, err
	}

	// Each run gets an ID so failures in the response can be correlated
	// with the structured logs.
	result := payroll.RunPeriodResponse{RunID: uuid.NewString(), PeriodID: periodID}

	// Requested employees that don't exist (or belong to another company)
	// are reported, not silently dropped.
	found := make(map[string]bool, len(employees))
	for _, e := range employees {
		found[e.ID] = true
	}
	for _, id := range req.EmployeeIDs {
		if !found[id] {
			result.Failures = append(result.Failures, payroll.RunFailure{
				EmployeeID: id,
				ErrorKind:  "not_found",
				Message:    employee.ErrEmployeeNotFound.Error(),
			})
		}
	}

	employeeIDs := make([]string, len(employees))
	for i, e := range employees {
		employeeIDs[i] = e.ID
	}
	summaries, err := s.attendanceRepo.GetSummaries(ctx, companyID, periodID, employeeIDs)
	if err != nil {
		return payroll.RunPeriodResponse{}, err
	}
	attendanceByEmployee := make(map[string]payroll.AttendanceSummary, len(summaries))
	for _, summary := range summaries {
		attendanceByEmployee[summary.EmployeeID] = summary
	}

	// Settlement is a pure computation, so employees settle in parallel.
	// Each one persists inside its own transaction; a failure is recorded
	// and never aborts the batch.
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.RunParallelism)

	for _, emp := range employees {
		emp := emp
		g.Go(func() error {
			settled, err := s.settleEmployee(gctx, companyID, period, emp, attendanceByEmployee[emp.ID])

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err != nil:
				result.Failures = append(result.Failures, payroll.RunFailure{
					EmployeeID: emp.ID,
					ErrorKind:  failureKind(err),
					Message:    err.Error(),
				})
			case settled:
				result.SettledCount++
			default:
				result.SkippedCount++
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return payroll.RunPeriodResponse{}, err
	}

	for _, failure := range result.Failures {
		slog.Warn("Employee settlement failed",
			"run_id", result.RunID,
			"period_id", periodID,
			"employee_id", failure.EmployeeID,
			"error_kind", failure.ErrorKind,
			"message", failure.Message,
		)
	}

	if len(result.Failures) == 0 {
		if err := s.periodRepo.UpdateStatus(ctx, periodID, companyID, payroll.PeriodStatusPendingApproval); err != nil {
			return payroll.RunPeriodResponse{}, err
		}
		period.Status = payroll.PeriodStatusPendingApproval
	}
	result.PeriodStatus = string(period.Status)

	return result, nil
}

// failureKind classifies a settlement failure for the run report.
func failureKind(err error) string {
	switch {
	case errors.Is(err, employee.ErrEmployeeHasNoStructure):
		return "no_structure"
	case errors.Is(err, employee.ErrEmployeeHasNoSalary):
		return "no_salary"
	case errors.Is(err, payroll.ErrStructureNotFound):
		return "invalid_structure"
	default:
		return settlement.Kind(err)
	}
}

// settleEmployee computes and persists one employee's payslip. Returns
// (false, nil) when the employee already has a payslip for the period,
// which makes re-runs idempotent.
func (s *PayrollServiceImpl) settleEmployee(
	ctx context.Context,
	companyID string,
	period payroll.PayrollPeriod,
	emp employee.Employee,
	attendance payroll.AttendanceSummary,
) (bool, error) {
	_, err := s.payslipRepo.GetByEmployeePeriod(ctx, emp.ID, period.ID, companyID)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, payroll.ErrPayslipNotFound) {
		return false, err
	}

	if emp.SalaryStructureID == nil {
		return false, employee.ErrEmployeeHasNoStructure
	}
	if emp.BasicSalary == nil || !emp.BasicSalary.IsPositive() {
		return false, employee.ErrEmployeeHasNoSalary
	}

	// Resolve through the employee join so a structure soft-deleted after
	// assignment surfaces as ErrStructureNotFound rather than settling
	// against stale components.
	structure, err := s.structureRepo.GetByEmployeeID(ctx, emp.ID, companyID)
	if err != nil {
		return false, err
	}

	// No attendance row means full attendance for the period.
	if attendance.EmployeeID == "" {
		attendance = payroll.AttendanceSummary{
			EmployeeID:     emp.ID,
			PeriodID:       period.ID,
			WorkingDays:    period.WorkingDays,
			ActualWorkDays: period.WorkingDays,
		}
	}

	loans, err := s.loanRepo.GetActiveByEmployeeID(ctx, emp.ID, companyID)
	if err != nil {
		return false, err
	}

	settled, err := settlement.Settle(settlement.Input{
		Employee: settlement.EmployeeInput{
			BasicSalary:        *emp.BasicSalary,
			OvertimeMultiplier: emp.OvertimeMultiplier,
		},
		Structure:  structure,
		Attendance: attendance,
		Loans:      loans,
		Rates: settlement.GOSIRates{
			Employee: s.cfg.GOSIEmployeeRate,
			Employer: s.cfg.GOSIEmployerRate,
		},
	}, settlement.Config{
		StandardDailyHours: s.cfg.StandardDailyHours,
		OvertimeMultiplier: s.cfg.OvertimeMultiplier,
		ClampExcessAbsence: s.cfg.ClampExcessAbsence,
	})
	if err != nil {
		return false, err
	}

	payslip := settled.Payslip
	payslip.CompanyID = companyID

	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := postgresql.ContextWithTx(ctx, tx)

		if _, err := s.payslipRepo.Create(txCtx, payslip); err != nil {
			return err
		}
		for _, update := range settled.LoanUpdates {
			if err := s.loanRepo.ApplyUpdate(txCtx, companyID, update); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		// Concurrent run generated this payslip first.
		if errors.Is(err, payroll.ErrPayslipAlreadyExists) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

// ========== SALARY STRUCTURES ==========

func (s *PayrollServiceImpl) CreateStructure(ctx context.Context, req payroll.CreateStructureRequest) (payroll.StructureResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.StructureResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return payroll.StructureResponse{}, err
	}

	structure := payroll.SalaryStructure{
		CompanyID: companyID,
		Name:      req.Name,
		IsActive:  true,
	}
	for i, c := range req.Components {
		structure.Components = append(structure.Components, payroll.SalaryComponent{
			Name:             c.Name,
			Type:             payroll.ComponentType(c.Type),
			IsPercentage:     c.IsPercentage,
			Value:            c.Value,
			IsTaxable:        c.IsTaxable,
			IsGOSIApplicable: c.IsGOSIApplicable,
			SortOrder:        i,
		})
	}

	created, err := s.structureRepo.Create(ctx, structure)
	if err != nil {
		return payroll.StructureResponse{}, err
	}

	return toStructureResponse(created), nil
}

func (s *PayrollServiceImpl) GetStructure(ctx context.Context, id string) (payroll.StructureResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.StructureResponse{}, err
	}

	structure, err := s.structureRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return payroll.StructureResponse{}, err
	}

	return toStructureResponse(structure), nil
}

func (s *PayrollServiceImpl) ListStructures(ctx context.Context, activeOnly bool) ([]payroll.StructureResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	structures, err := s.structureRepo.ListByCompanyID(ctx, companyID, activeOnly)
	if err != nil {
		return nil, err
	}

	responses := make([]payroll.StructureResponse, len(structures))
	for i, structure := range structures {
		responses[i] = toStructureResponse(structure)
	}

	return responses, nil
}

func (s *PayrollServiceImpl) DeleteStructure(ctx context.Context, id string) error {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return err
	}

	return s.structureRepo.Delete(ctx, id, companyID)
}

// ========== PAYSLIPS ==========

func (s *PayrollServiceImpl) GetPayslip(ctx context.Context, id string) (payroll.PayslipResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}

	payslip, err := s.payslipRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}

	return toPayslipResponse(payslip), nil
}

func (s *PayrollServiceImpl) ListPayslips(ctx context.Context, filter payroll.PayslipFilter) (payroll.ListPayslipResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.ListPayslipResponse{}, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	payslips, totalCount, err := s.payslipRepo.List(ctx, companyID, filter)
	if err != nil {
		return payroll.ListPayslipResponse{}, err
	}

	responses := make([]payroll.PayslipResponse, len(payslips))
	for i, p := range payslips {
		responses[i] = toPayslipResponse(p)
	}

	return payroll.ListPayslipResponse{
		Data:       responses,
		TotalCount: totalCount,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

func (s *PayrollServiceImpl) UpdatePayslipStatus(ctx context.Context, req payroll.UpdatePayslipStatusRequest) error {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		return err
	}

	payslip, err := s.payslipRepo.GetByID(ctx, req.ID, companyID)
	if err != nil {
		return err
	}

	next := payroll.PayslipStatus(req.Status)
	if !payslip.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", payroll.ErrInvalidPayslipStatus, payslip.Status, next)
	}

	return s.payslipRepo.UpdateStatus(ctx, req.ID, companyID, next)
}

func (s *PayrollServiceImpl) RenderPayslipPDF(ctx context.Context, id string) (string, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return "", err
	}

	payslip, err := s.payslipRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return "", err
	}

	period, err := s.periodRepo.GetByID(ctx, payslip.PayrollPeriodID, companyID)
	if err != nil {
		return "", err
	}

	return s.renderer.Render(payslip, period)
}

// ========== MAPPERS ==========

func toPeriodResponse(p payroll.PayrollPeriod) payroll.PeriodResponse {
	return payroll.PeriodResponse{
		ID:          p.ID,
		CompanyID:   p.CompanyID,
		StartDate:   p.StartDate.Format("2006-01-02"),
		EndDate:     p.EndDate.Format("2006-01-02"),
		PaymentDate: p.PaymentDate.Format("2006-01-02"),
		WorkingDays: p.WorkingDays,
		Status:      string(p.Status),
	}
}

func toStructureResponse(s payroll.SalaryStructure) payroll.StructureResponse {
	resp := payroll.StructureResponse{
		ID:        s.ID,
		CompanyID: s.CompanyID,
		Name:      s.Name,
		IsActive:  s.IsActive,
	}
	for _, c := range s.Components {
		resp.Components = append(resp.Components, payroll.ComponentResponse{
			ID:               c.ID,
			Name:             c.Name,
			Type:             string(c.Type),
			IsPercentage:     c.IsPercentage,
			Value:            c.Value,
			IsTaxable:        c.IsTaxable,
			IsGOSIApplicable: c.IsGOSIApplicable,
		})
	}
	return resp
}

func toPayslipResponse(p payroll.Payslip) payroll.PayslipResponse {
	resp := payroll.PayslipResponse{
		ID:              p.ID,
		EmployeeID:      p.EmployeeID,
		PayrollPeriodID: p.PayrollPeriodID,
		TotalEarnings:   p.TotalEarnings,
		TotalDeductions: p.TotalDeductions,
		NetSalary:       p.NetSalary,
		GOSIBase:        p.GOSIBase,
		GOSIEmployee:    p.GOSIEmployee,
		GOSIEmployer:    p.GOSIEmployer,
		Status:          string(p.Status),
	}
	if p.EmployeeName != nil {
		resp.EmployeeName = *p.EmployeeName
	}
	if p.EmployeeCode != nil {
		resp.EmployeeCode = *p.EmployeeCode
	}
	for _, line := range p.Earnings {
		resp.Earnings = append(resp.Earnings, payroll.PayslipLineResponse{Name: line.Name, Amount: line.Amount})
	}
	for _, line := range p.Deductions {
		resp.Deductions = append(resp.Deductions, payroll.PayslipLineResponse{Name: line.Name, Amount: line.Amount})
	}
	return resp
}
