package pricing

import (
	"context"
	"fmt"
)

// Calculator contributes priced line items for a booking context.
// Implementations must be stateless, must not mutate the context, and may
// return an empty slice when they do not apply. Outputs are summed per
// category, so calculator order never affects the result.
type Calculator interface {
	Name() string
	Calculate(ctx context.Context, bc *BookingContext) ([]AmountItem, error)
}

// BaseRateCalculator charges each station's hourly rate for the booked window.
type BaseRateCalculator struct{}

func NewBaseRateCalculator() *BaseRateCalculator {
	return &BaseRateCalculator{}
}

func (c *BaseRateCalculator) Name() string { return "base_rate" }

func (c *BaseRateCalculator) Calculate(_ context.Context, bc *BookingContext) ([]AmountItem, error) {
	hours := bc.Hours()
	if hours <= 0 {
		return nil, fmt.Errorf("booking window has non-positive duration")
	}

	items := make([]AmountItem, 0, len(bc.Rates))
	for stationID, rate := range bc.Rates {
		items = append(items, AmountItem{
			Category:    CategoryCharge,
			Amount:      rate.HourlyRate * hours,
			Description: fmt.Sprintf("station %s: %.2f/hr x %.2fh", stationID, rate.HourlyRate, hours),
		})
	}
	return items, nil
}

// PromoDiscountCalculator applies a percentage discount on the base charge
// when the context carries an active promotion. No promotion, no items.
type PromoDiscountCalculator struct{}

func NewPromoDiscountCalculator() *PromoDiscountCalculator {
	return &PromoDiscountCalculator{}
}

func (c *PromoDiscountCalculator) Name() string { return "promo_discount" }

func (c *PromoDiscountCalculator) Calculate(_ context.Context, bc *BookingContext) ([]AmountItem, error) {
	if bc.Promotion == nil || bc.Promotion.DiscountPercent <= 0 {
		return nil, nil
	}

	charge := baseCharge(bc)
	if charge <= 0 {
		return nil, nil
	}

	return []AmountItem{{
		Category:    CategoryDiscount,
		Amount:      charge * bc.Promotion.DiscountPercent / 100,
		Description: fmt.Sprintf("promotion %s (%.1f%%)", bc.Promotion.Code, bc.Promotion.DiscountPercent),
	}}, nil
}

// PlatformFeeCalculator adds the platform's service fee as a percentage of
// the base charge.
type PlatformFeeCalculator struct {
	FeePercent float64
}

func NewPlatformFeeCalculator(feePercent float64) *PlatformFeeCalculator {
	return &PlatformFeeCalculator{FeePercent: feePercent}
}

func (c *PlatformFeeCalculator) Name() string { return "platform_fee" }

func (c *PlatformFeeCalculator) Calculate(_ context.Context, bc *BookingContext) ([]AmountItem, error) {
	if c.FeePercent <= 0 {
		return nil, nil
	}

	charge := baseCharge(bc)
	if charge <= 0 {
		return nil, nil
	}

	return []AmountItem{{
		Category:    CategoryFee,
		Amount:      charge * c.FeePercent / 100,
		Description: fmt.Sprintf("platform fee (%.1f%%)", c.FeePercent),
	}}, nil
}

// TaxCalculator applies tax on the net taxable amount: charge minus the
// promotional discount plus fees.
type TaxCalculator struct {
	TaxPercent      float64
	PlatformPercent float64
}

func NewTaxCalculator(taxPercent, platformPercent float64) *TaxCalculator {
	return &TaxCalculator{
		TaxPercent:      taxPercent,
		PlatformPercent: platformPercent,
	}
}

func (c *TaxCalculator) Name() string { return "tax" }

func (c *TaxCalculator) Calculate(_ context.Context, bc *BookingContext) ([]AmountItem, error) {
	if c.TaxPercent <= 0 {
		return nil, nil
	}

	charge := baseCharge(bc)
	if charge <= 0 {
		return nil, nil
	}

	// Recompute discount/fee from the same inputs the other calculators use
	// instead of chaining on their outputs, keeping calculators independent.
	discount := 0.0
	if bc.Promotion != nil && bc.Promotion.DiscountPercent > 0 {
		discount = charge * bc.Promotion.DiscountPercent / 100
	}
	fee := charge * c.PlatformPercent / 100

	taxable := charge - discount + fee
	if taxable <= 0 {
		return nil, nil
	}

	return []AmountItem{{
		Category:    CategoryTax,
		Amount:      taxable * c.TaxPercent / 100,
		Description: fmt.Sprintf("tax (%.1f%%)", c.TaxPercent),
	}}, nil
}

// baseCharge sums the per-station hourly charges for the booked window.
func baseCharge(bc *BookingContext) float64 {
	hours := bc.Hours()
	if hours <= 0 {
		return 0
	}
	var total float64
	for _, rate := range bc.Rates {
		total += rate.HourlyRate * hours
	}
	return total
}
