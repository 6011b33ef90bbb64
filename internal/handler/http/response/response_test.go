package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPagination(t *testing.T) {
	cases := []struct {
		page, limit int
		totalItems  int64
		wantPages   int
	}{
		{1, 20, 0, 0},
		{1, 20, 1, 1},
		{1, 20, 20, 1},
		{2, 20, 45, 3},
		{1, 0, 45, 0}, // degenerate limit must not divide by zero
	}
	for _, c := range cases {
		p := NewPagination(c.page, c.limit, c.totalItems)
		assert.Equal(t, c.wantPages, p.TotalPages,
			"limit %d, total %d", c.limit, c.totalItems)
		assert.Equal(t, c.totalItems, p.TotalItems)
	}
}

func TestPaginated_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	Paginated(rec, []string{"slip-1", "slip-2"}, NewPagination(1, 20, 2))

	assert.Equal(t, http.StatusOK, rec.Code)

	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Nil(t, body.Error)
	require.NotNil(t, body.Pagination)
	assert.Equal(t, 1, body.Pagination.TotalPages)
	assert.Equal(t, int64(2), body.Pagination.TotalItems)
}

func TestBadRequest_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	BadRequest(rec, "Period ID must be a valid UUID", map[string]string{"id": "malformed"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	require.NotNil(t, body.Error)
	assert.Equal(t, "BAD_REQUEST", body.Error.Code)
	assert.Equal(t, "malformed", body.Error.Details["id"])
	assert.Nil(t, body.Pagination)
}
