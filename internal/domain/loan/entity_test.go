package loan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    Status
		to      Status
		allowed bool
	}{
		{"pending to approved", StatusPending, StatusApproved, true},
		{"pending to rejected", StatusPending, StatusRejected, true},
		{"pending to cancelled", StatusPending, StatusCancelled, true},
		{"pending to active", StatusPending, StatusActive, false},
		{"approved to active", StatusApproved, StatusActive, true},
		{"approved to cancelled", StatusApproved, StatusCancelled, true},
		{"approved to completed", StatusApproved, StatusCompleted, false},
		{"active to completed", StatusActive, StatusCompleted, true},
		{"active to cancelled", StatusActive, StatusCancelled, true},
		{"rejected is terminal", StatusRejected, StatusApproved, false},
		{"completed is terminal", StatusCompleted, StatusActive, false},
		{"cancelled is terminal", StatusCancelled, StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}
