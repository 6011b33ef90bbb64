package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

func requestWithPathID(id string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Malformed path IDs are rejected in the handler, before any service or
// database work happens. The nil service would panic if they got through.
func TestPayrollHandler_RejectsMalformedPathIDs(t *testing.T) {
	h := NewPayrollHandler(nil)

	endpoints := map[string]http.HandlerFunc{
		"GetPeriod":  h.GetPeriod,
		"GetPayslip": h.GetPayslip,
		"RunPeriod":  h.RunPeriod,
	}
	badIDs := []string{"", "not-a-uuid", "123", "0188d0f27b8c7b4a8a2b6b8b8b8b8b8b"}

	for name, endpoint := range endpoints {
		for _, id := range badIDs {
			rec := httptest.NewRecorder()
			endpoint(rec, requestWithPathID(id))
			assert.Equal(t, http.StatusBadRequest, rec.Code, "%s with id %q", name, id)
		}
	}
}

func TestPathID_AcceptsWellFormedUUID(t *testing.T) {
	rec := httptest.NewRecorder()

	id, ok := pathID(rec, requestWithPathID("123e4567-e89b-42d3-a456-426614174000"), "id", "Period ID")

	assert.True(t, ok)
	assert.Equal(t, "123e4567-e89b-42d3-a456-426614174000", id)
}
