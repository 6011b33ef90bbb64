package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/ujoors/payroll-backend-go/internal/domain/payroll"
	"github.com/ujoors/payroll-backend-go/internal/handler/http/response"
	"github.com/ujoors/payroll-backend-go/internal/pkg/validator"
)

type PayrollHandler interface {
	// Periods
	CreatePeriod(w http.ResponseWriter, r *http.Request)
	GetPeriod(w http.ResponseWriter, r *http.Request)
	ListPeriods(w http.ResponseWriter, r *http.Request)
	RunPeriod(w http.ResponseWriter, r *http.Request)
	ApprovePeriod(w http.ResponseWriter, r *http.Request)
	MarkPeriodPaid(w http.ResponseWriter, r *http.Request)
	CancelPeriod(w http.ResponseWriter, r *http.Request)

	// Salary structures
	CreateStructure(w http.ResponseWriter, r *http.Request)
	GetStructure(w http.ResponseWriter, r *http.Request)
	ListStructures(w http.ResponseWriter, r *http.Request)
	DeleteStructure(w http.ResponseWriter, r *http.Request)

	// Payslips
	GetPayslip(w http.ResponseWriter, r *http.Request)
	ListPayslips(w http.ResponseWriter, r *http.Request)
	UpdatePayslipStatus(w http.ResponseWriter, r *http.Request)
	DownloadPayslip(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

// pathID reads a URL parameter that must carry a UUID. Malformed IDs are
// rejected before they reach the database as lookups that can never match.
func pathID(w http.ResponseWriter, r *http.Request, param, label string) (string, bool) {
	id := chi.URLParam(r, param)
	if !validator.IsValidUUID(id) {
		response.BadRequest(w, label+" must be a valid UUID", nil)
		return "", false
	}
	return id, true
}

// ========== PERIODS ==========

func (h *payrollHandlerImpl) CreatePeriod(w http.ResponseWriter, r *http.Request) {
	var req payroll.CreatePeriodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.CreatePeriod(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll period created", result)
}

func (h *payrollHandlerImpl) GetPeriod(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "Period ID")
	if !ok {
		return
	}

	result, err := h.payrollService.GetPeriod(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) ListPeriods(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.ListPeriods(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) RunPeriod(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "Period ID")
	if !ok {
		return
	}

	var req payroll.RunPeriodRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request body", nil)
			return
		}
	}

	result, err := h.payrollService.RunPeriod(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll run completed", result)
}

func (h *payrollHandlerImpl) ApprovePeriod(w http.ResponseWriter, r *http.Request) {
	h.transitionPeriod(w, r, h.payrollService.ApprovePeriod, "Payroll period approved")
}

func (h *payrollHandlerImpl) MarkPeriodPaid(w http.ResponseWriter, r *http.Request) {
	h.transitionPeriod(w, r, h.payrollService.MarkPeriodPaid, "Payroll period marked as paid")
}

func (h *payrollHandlerImpl) CancelPeriod(w http.ResponseWriter, r *http.Request) {
	h.transitionPeriod(w, r, h.payrollService.CancelPeriod, "Payroll period cancelled")
}

func (h *payrollHandlerImpl) transitionPeriod(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, id string) error, message string) {
	id, ok := pathID(w, r, "id", "Period ID")
	if !ok {
		return
	}

	if err := fn(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, message, nil)
}

// ========== SALARY STRUCTURES ==========

func (h *payrollHandlerImpl) CreateStructure(w http.ResponseWriter, r *http.Request) {
	var req payroll.CreateStructureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.CreateStructure(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Salary structure created", result)
}

func (h *payrollHandlerImpl) GetStructure(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "Structure ID")
	if !ok {
		return
	}

	result, err := h.payrollService.GetStructure(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) ListStructures(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active_only") == "true"

	result, err := h.payrollService.ListStructures(r.Context(), activeOnly)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) DeleteStructure(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "Structure ID")
	if !ok {
		return
	}

	if err := h.payrollService.DeleteStructure(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary structure deleted", nil)
}

// ========== PAYSLIPS ==========

func (h *payrollHandlerImpl) GetPayslip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "Payslip ID")
	if !ok {
		return
	}

	result, err := h.payrollService.GetPayslip(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) ListPayslips(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := payroll.PayslipFilter{Page: 1, Limit: 20}
	if v := query.Get("period_id"); v != "" {
		filter.PeriodID = &v
	}
	if v := query.Get("employee_id"); v != "" {
		filter.EmployeeID = &v
	}
	if v := query.Get("status"); v != "" {
		filter.Status = &v
	}
	if v := query.Get("page"); v != "" {
		if page, err := strconv.Atoi(v); err == nil {
			filter.Page = page
		}
	}
	if v := query.Get("limit"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil {
			filter.Limit = limit
		}
	}

	result, err := h.payrollService.ListPayslips(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Paginated(w, result.Data, response.NewPagination(result.Page, result.Limit, result.TotalCount))
}

func (h *payrollHandlerImpl) UpdatePayslipStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "Payslip ID")
	if !ok {
		return
	}

	var req payroll.UpdatePayslipStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = id

	if err := h.payrollService.UpdatePayslipStatus(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payslip status updated", nil)
}

func (h *payrollHandlerImpl) DownloadPayslip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "Payslip ID")
	if !ok {
		return
	}

	filePath, err := h.payrollService.RenderPayslipPDF(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.PDFAttachment(w, r, "payslip-"+id+".pdf", filePath)
}
