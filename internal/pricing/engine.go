package pricing

import (
	"context"
	"fmt"
)

// Engine composes the outputs of a fixed set of calculators into one
// BookingAmount. The calculator list is supplied at construction time;
// there is no ambient global registry.
type Engine struct {
	calculators []Calculator
}

// NewEngine creates an engine over an explicit calculator list.
func NewEngine(calculators ...Calculator) *Engine {
	return &Engine{calculators: calculators}
}

// CalculateAmount runs every registered calculator against the context,
// sums the resulting items per category and derives the total as
// charge - discount + fee + tax. The call is deterministic for a given
// context and calculator set, has no side effects and is safe to repeat
// for repricing or audit.
func (e *Engine) CalculateAmount(ctx context.Context, bc *BookingContext) (*BookingAmount, error) {
	amount := &BookingAmount{Items: []AmountItem{}}

	for _, calc := range e.calculators {
		items, err := calc.Calculate(ctx, bc)
		if err != nil {
			// A failing calculator is fatal for this pricing call; partial
			// results are never returned.
			return nil, fmt.Errorf("calculator %s failed: %w", calc.Name(), err)
		}
		if len(items) == 0 {
			continue
		}
		amount.Items = append(amount.Items, items...)
	}

	for _, item := range amount.Items {
		switch item.Category {
		case CategoryCharge:
			amount.ChargeAmount += item.Amount
		case CategoryDiscount:
			amount.DiscountAmount += item.Amount
		case CategoryFee:
			amount.FeeAmount += item.Amount
		case CategoryTax:
			amount.TaxAmount += item.Amount
		}
	}

	amount.TotalAmount = amount.ChargeAmount - amount.DiscountAmount + amount.FeeAmount + amount.TaxAmount
	return amount, nil
}
