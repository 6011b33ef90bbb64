package response

import (
	"encoding/json"
	"net/http"
)

// Response is the envelope every JSON endpoint returns. Success responses
// carry Data, and Pagination when the endpoint returns a page of a larger
// set; failures carry Error instead.
type Response struct {
	Success    bool         `json:"success"`
	Message    string       `json:"message,omitempty"`
	Data       interface{}  `json:"data,omitempty"`
	Error      *ErrorDetail `json:"error,omitempty"`
	Pagination *Pagination  `json:"pagination,omitempty"`
}

type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// Pagination describes the window a list endpoint returned. Payslip
// listings are the main consumer; a month of payroll for a large company
// is too big for one response.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// NewPagination derives the page count from the total so every list
// endpoint reports it the same way.
func NewPagination(page, limit int, totalItems int64) *Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = int((totalItems + int64(limit) - 1) / int64(limit))
	}
	return &Pagination{
		Page:       page,
		Limit:      limit,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}
}

func writeJSON(w http.ResponseWriter, statusCode int, payload Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		_ = json.NewEncoder(w).Encode(Response{
			Success: false,
			Error:   &ErrorDetail{Code: "ENCODING_ERROR", Message: "Failed to encode response"},
		})
	}
}

func ok(w http.ResponseWriter, statusCode int, message string, data interface{}, p *Pagination) {
	writeJSON(w, statusCode, Response{
		Success:    true,
		Message:    message,
		Data:       data,
		Pagination: p,
	})
}

func fail(w http.ResponseWriter, statusCode int, code, message string, details map[string]string) {
	writeJSON(w, statusCode, Response{
		Success: false,
		Error:   &ErrorDetail{Code: code, Message: message, Details: details},
	})
}

func Success(w http.ResponseWriter, data interface{}) {
	ok(w, http.StatusOK, "", data, nil)
}

func SuccessWithMessage(w http.ResponseWriter, message string, data interface{}) {
	ok(w, http.StatusOK, message, data, nil)
}

func Created(w http.ResponseWriter, message string, data interface{}) {
	ok(w, http.StatusCreated, message, data, nil)
}

// Paginated returns one page of a list endpoint together with its window.
func Paginated(w http.ResponseWriter, data interface{}, p *Pagination) {
	ok(w, http.StatusOK, "", data, p)
}

// PDFAttachment streams a rendered document as a download. Payslip PDFs
// are the one binary artifact this API serves.
func PDFAttachment(w http.ResponseWriter, r *http.Request, filename, filePath string) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	http.ServeFile(w, r, filePath)
}

func BadRequest(w http.ResponseWriter, message string, details map[string]string) {
	fail(w, http.StatusBadRequest, "BAD_REQUEST", message, details)
}

func ValidationError(w http.ResponseWriter, details map[string]string) {
	fail(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Validation failed", details)
}

func Unauthorized(w http.ResponseWriter, message string) {
	fail(w, http.StatusUnauthorized, "UNAUTHORIZED", message, nil)
}

func Forbidden(w http.ResponseWriter, message string) {
	fail(w, http.StatusForbidden, "FORBIDDEN", message, nil)
}

func NotFound(w http.ResponseWriter, message string) {
	fail(w, http.StatusNotFound, "NOT_FOUND", message, nil)
}

func Conflict(w http.ResponseWriter, message string) {
	fail(w, http.StatusConflict, "CONFLICT", message, nil)
}

func InternalServerError(w http.ResponseWriter, message string) {
	fail(w, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", message, nil)
}
