package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/ujoors/payroll-backend-go/internal/domain/loan"
	"github.com/ujoors/payroll-backend-go/internal/handler/http/response"
)

type LoanHandler interface {
	Apply(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	ListByEmployee(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	Activate(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
}

type loanHandlerImpl struct {
	loanService loan.LoanService
}

func NewLoanHandler(loanService loan.LoanService) LoanHandler {
	return &loanHandlerImpl{loanService: loanService}
}

func (h *loanHandlerImpl) Apply(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := pathID(w, r, "employeeID", "Employee ID")
	if !ok {
		return
	}

	var req loan.ApplyLoanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.EmployeeID = employeeID

	result, err := h.loanService.Apply(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Loan application submitted", result)
}

func (h *loanHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "Loan ID")
	if !ok {
		return
	}

	result, err := h.loanService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *loanHandlerImpl) ListByEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := pathID(w, r, "employeeID", "Employee ID")
	if !ok {
		return
	}

	result, err := h.loanService.ListByEmployee(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *loanHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.loanService.Approve, "Loan approved")
}

func (h *loanHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.loanService.Reject, "Loan rejected")
}

func (h *loanHandlerImpl) Activate(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.loanService.Activate, "Loan activated")
}

func (h *loanHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.loanService.Cancel, "Loan cancelled")
}

func (h *loanHandlerImpl) transition(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, id string) error, message string) {
	id, ok := pathID(w, r, "id", "Loan ID")
	if !ok {
		return
	}

	if err := fn(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, message, nil)
}
