package settlement

import "errors"

// Settlement errors are terminal for a single employee's computation and
// are never retried here. The run orchestrator maps them to report kinds so
// one employee's bad data never aborts the batch.
var (
	ErrInvalidStructure = errors.New("invalid salary structure")
	ErrInvalidInput     = errors.New("invalid settlement input")
	ErrInvalidPeriod    = errors.New("invalid payroll period")
	ErrNegativeNetPay   = errors.New("computed net pay is negative")
)

// Kind returns a stable identifier for err, used in run failure reports.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrInvalidStructure):
		return "invalid_structure"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrInvalidPeriod):
		return "invalid_period"
	case errors.Is(err, ErrNegativeNetPay):
		return "negative_net_pay"
	default:
		return "internal"
	}
}
