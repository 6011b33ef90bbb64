package payroll

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPeriodStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    PeriodStatus
		to      PeriodStatus
		allowed bool
	}{
		{"draft to processing", PeriodStatusDraft, PeriodStatusProcessing, true},
		{"draft to cancelled", PeriodStatusDraft, PeriodStatusCancelled, true},
		{"draft to approved", PeriodStatusDraft, PeriodStatusApproved, false},
		{"processing to pending approval", PeriodStatusProcessing, PeriodStatusPendingApproval, true},
		{"processing to cancelled", PeriodStatusProcessing, PeriodStatusCancelled, false},
		{"pending approval to approved", PeriodStatusPendingApproval, PeriodStatusApproved, true},
		{"pending approval to cancelled", PeriodStatusPendingApproval, PeriodStatusCancelled, true},
		{"approved to paid", PeriodStatusApproved, PeriodStatusPaid, true},
		{"approved to cancelled", PeriodStatusApproved, PeriodStatusCancelled, false},
		{"paid is terminal", PeriodStatusPaid, PeriodStatusApproved, false},
		{"cancelled is terminal", PeriodStatusCancelled, PeriodStatusDraft, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestPeriodStatus_AllowsSettlement(t *testing.T) {
	assert.True(t, PeriodStatusDraft.AllowsSettlement())
	assert.True(t, PeriodStatusProcessing.AllowsSettlement())
	assert.False(t, PeriodStatusPendingApproval.AllowsSettlement())
	assert.False(t, PeriodStatusApproved.AllowsSettlement())
	assert.False(t, PeriodStatusPaid.AllowsSettlement())
	assert.False(t, PeriodStatusCancelled.AllowsSettlement())
}

func TestPayslipStatus_CanTransitionTo(t *testing.T) {
	assert.True(t, PayslipStatusGenerated.CanTransitionTo(PayslipStatusSent))
	assert.True(t, PayslipStatusSent.CanTransitionTo(PayslipStatusViewed))
	assert.False(t, PayslipStatusGenerated.CanTransitionTo(PayslipStatusViewed))
	assert.False(t, PayslipStatusViewed.CanTransitionTo(PayslipStatusSent))
	assert.False(t, PayslipStatusSent.CanTransitionTo(PayslipStatusGenerated))
}
