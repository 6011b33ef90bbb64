package settlement

import (
	"github.com/shopspring/decimal"
)

// GOSIRates are the statutory contribution rates, supplied as fractions
// (e.g. 0.0975). They come from configuration so jurisdiction changes never
// require a code edit.
type GOSIRates struct {
	Employee decimal.Decimal
	Employer decimal.Decimal
}

// GOSIContribution is the statutory-insurance split for one payslip.
type GOSIContribution struct {
	Base     decimal.Decimal
	Employee decimal.Decimal
	Employer decimal.Decimal
}

// computeGOSI sums the GOSI-applicable component amounts and applies both
// rates. Pure; identical inputs always produce identical output.
func computeGOSI(components []ResolvedComponent, rates GOSIRates) GOSIContribution {
	base := decimal.Zero
	for _, c := range components {
		if c.IsGOSIApplicable {
			base = base.Add(c.Amount)
		}
	}

	return GOSIContribution{
		Base:     base,
		Employee: round2(base.Mul(rates.Employee)),
		Employer: round2(base.Mul(rates.Employer)),
	}
}
