package settlement

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/ujoors/payroll-backend-go/internal/domain/payroll"
)

// ResolvedComponent is one salary structure line with its percentage
// resolved into an absolute amount for a specific employee.
type ResolvedComponent struct {
	Name             string
	Amount           decimal.Decimal
	IsTaxable        bool
	IsGOSIApplicable bool
}

var oneHundred = decimal.NewFromInt(100)

// resolveStructure expands a salary structure against the employee's basic
// salary. The basic component is always emitted first with the basic amount
// itself; the remaining components keep their declared order. Amounts are
// rounded once, after each component's computation.
func resolveStructure(structure payroll.SalaryStructure, basic decimal.Decimal) ([]ResolvedComponent, error) {
	if !basic.IsPositive() {
		return nil, fmt.Errorf("%w: basic salary must be positive, got %s", ErrInvalidInput, basic)
	}

	var basicComponent *payroll.SalaryComponent
	for i := range structure.Components {
		c := &structure.Components[i]
		if c.Value.IsNegative() {
			return nil, fmt.Errorf("%w: component %q has negative value %s", ErrInvalidInput, c.Name, c.Value)
		}
		if c.Type != payroll.ComponentTypeBasic {
			continue
		}
		if basicComponent != nil {
			return nil, fmt.Errorf("%w: more than one basic component", ErrInvalidStructure)
		}
		if c.IsPercentage {
			return nil, fmt.Errorf("%w: basic component must be a fixed amount", ErrInvalidStructure)
		}
		basicComponent = c
	}
	if basicComponent == nil {
		return nil, fmt.Errorf("%w: no basic component", ErrInvalidStructure)
	}

	resolved := make([]ResolvedComponent, 0, len(structure.Components))
	resolved = append(resolved, ResolvedComponent{
		Name:             basicComponent.Name,
		Amount:           round2(basic),
		IsTaxable:        basicComponent.IsTaxable,
		IsGOSIApplicable: basicComponent.IsGOSIApplicable,
	})

	for _, c := range structure.Components {
		if c.Type == payroll.ComponentTypeBasic {
			continue
		}
		amount := c.Value
		if c.IsPercentage {
			amount = basic.Mul(c.Value).Div(oneHundred)
		}
		resolved = append(resolved, ResolvedComponent{
			Name:             c.Name,
			Amount:           round2(amount),
			IsTaxable:        c.IsTaxable,
			IsGOSIApplicable: c.IsGOSIApplicable,
		})
	}

	return resolved, nil
}
