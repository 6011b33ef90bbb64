package settlement

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ujoors/payroll-backend-go/internal/domain/loan"
)

func activeLoan(id string, installment, remaining string, paid int) loan.Loan {
	return loan.Loan{
		ID:                id,
		Status:            loan.StatusActive,
		InstallmentAmount: decimal.RequireFromString(installment),
		RemainingAmount:   decimal.RequireFromString(remaining),
		PaidInstallments:  paid,
	}
}

func TestAllocateInstallments_NominalInstallment(t *testing.T) {
	updates := AllocateInstallments([]loan.Loan{activeLoan("loan-1", "500", "1500", 2)})

	require.Len(t, updates, 1)
	u := updates[0]
	assert.Equal(t, "500.00", u.InstallmentDue.StringFixed(2))
	assert.Equal(t, "1000.00", u.NewRemainingAmount.StringFixed(2))
	assert.Equal(t, 3, u.NewPaidInstallments)
	assert.Equal(t, loan.StatusActive, u.NewStatus)
}

func TestAllocateInstallments_FinalInstallmentSmaller(t *testing.T) {
	updates := AllocateInstallments([]loan.Loan{activeLoan("loan-1", "500", "150", 5)})

	require.Len(t, updates, 1)
	u := updates[0]
	assert.Equal(t, "150.00", u.InstallmentDue.StringFixed(2))
	assert.True(t, u.NewRemainingAmount.IsZero())
	assert.Equal(t, loan.StatusCompleted, u.NewStatus)
}

func TestAllocateInstallments_RoundingResidueCompletes(t *testing.T) {
	// 3 installments of 333.33 against 1000 leave 0.01 behind; the third
	// installment closes the loan instead of stranding a cent.
	updates := AllocateInstallments([]loan.Loan{activeLoan("loan-1", "333.33", "333.34", 2)})

	require.Len(t, updates, 1)
	u := updates[0]
	assert.Equal(t, "333.33", u.InstallmentDue.StringFixed(2))
	assert.True(t, u.NewRemainingAmount.IsZero())
	assert.Equal(t, loan.StatusCompleted, u.NewStatus)
}

func TestAllocateInstallments_SubCentInstallmentStaysConsistent(t *testing.T) {
	// An installment amount with more than two decimals must deduct the
	// same rounded figure from the balance that appears on the payslip.
	updates := AllocateInstallments([]loan.Loan{activeLoan("loan-1", "333.333", "1000.00", 0)})

	require.Len(t, updates, 1)
	u := updates[0]
	assert.Equal(t, "333.33", u.InstallmentDue.StringFixed(2))
	assert.True(t, u.NewRemainingAmount.Equal(decimal.RequireFromString("666.67")),
		"balance must drop by exactly the deducted amount, got %s", u.NewRemainingAmount)
	assert.True(t, u.NewRemainingAmount.Equal(decimal.RequireFromString("1000.00").Sub(u.InstallmentDue)))
}

func TestAllocateInstallments_SkipsNonActive(t *testing.T) {
	pending := activeLoan("loan-1", "500", "1000", 0)
	pending.Status = loan.StatusPending
	completed := activeLoan("loan-2", "500", "0", 2)
	completed.Status = loan.StatusCompleted

	updates := AllocateInstallments([]loan.Loan{pending, completed})
	assert.Empty(t, updates)
}

func TestAllocateInstallments_SkipsAlreadyRepaid(t *testing.T) {
	// Active loan with nothing left to collect is treated as already
	// completed rather than an error.
	updates := AllocateInstallments([]loan.Loan{activeLoan("loan-1", "500", "0", 4)})
	assert.Empty(t, updates)
}

func TestAllocateInstallments_Monotonicity(t *testing.T) {
	loans := []loan.Loan{
		activeLoan("loan-1", "500", "1500", 1),
		activeLoan("loan-2", "750.50", "750.50", 3),
		activeLoan("loan-3", "120.01", "0.01", 9),
	}

	updates := AllocateInstallments(loans)
	require.Len(t, updates, 3)

	byID := make(map[string]loan.Update, len(updates))
	for _, u := range updates {
		byID[u.LoanID] = u
	}
	for _, l := range loans {
		u, ok := byID[l.ID]
		require.True(t, ok)
		assert.True(t, u.NewRemainingAmount.LessThanOrEqual(l.RemainingAmount),
			"loan %s: remaining grew from %s to %s", l.ID, l.RemainingAmount, u.NewRemainingAmount)
		assert.Equal(t, u.NewRemainingAmount.IsZero(), u.NewStatus == loan.StatusCompleted,
			"loan %s: zero remaining and completed status must coincide", l.ID)
	}
}
