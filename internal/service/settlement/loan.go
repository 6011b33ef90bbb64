package settlement

import (
	"github.com/shopspring/decimal"
	"github.com/ujoors/payroll-backend-go/internal/domain/loan"
)

// completionTolerance absorbs residue left by installment rounding: a loan
// whose remainder after this installment is at or under it is closed out at
// exactly zero.
var completionTolerance = decimal.RequireFromString("0.01")

// AllocateInstallments determines the installment due this period for each
// active loan and the loan's updated repayment state. The final installment
// may be smaller than the nominal amount because of earlier rounding.
//
// At most one installment is allocated per loan per call. The function does
// not track period history, so invoking it twice for the same period would
// double-deduct; the caller must guarantee exactly-once invocation per
// (loan, period) pair.
func AllocateInstallments(loans []loan.Loan) []loan.Update {
	updates := make([]loan.Update, 0, len(loans))
	for _, l := range loans {
		if l.Status != loan.StatusActive {
			continue
		}
		// Already fully repaid; treat as completed rather than erroring.
		if !l.RemainingAmount.IsPositive() {
			continue
		}

		// Round the deduction once so the payslip line and the balance
		// delta are the same number even when InstallmentAmount carries
		// sub-cent precision.
		due := round2(decimal.Min(l.InstallmentAmount, l.RemainingAmount))
		remaining := l.RemainingAmount.Sub(due)
		status := loan.StatusActive
		if remaining.LessThanOrEqual(completionTolerance) {
			remaining = decimal.Zero
			status = loan.StatusCompleted
		}

		updates = append(updates, loan.Update{
			LoanID:              l.ID,
			InstallmentDue:      due,
			NewRemainingAmount:  remaining,
			NewPaidInstallments: l.PaidInstallments + 1,
			NewStatus:           status,
		})
	}
	return updates
}
