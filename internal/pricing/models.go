package pricing

import (
	"time"

	"github.com/google/uuid"
)

// Category classifies a priced line item.
type Category string

const (
	CategoryCharge   Category = "CHARGE"
	CategoryDiscount Category = "DISCOUNT"
	CategoryFee      Category = "FEE"
	CategoryTax      Category = "TAX"
)

// IsValid checks if the category is a known one
func (c Category) IsValid() bool {
	switch c {
	case CategoryCharge, CategoryDiscount, CategoryFee, CategoryTax:
		return true
	}
	return false
}

func (c Category) String() string {
	return string(c)
}

// AmountItem is a single priced line item emitted by a calculator.
type AmountItem struct {
	Category    Category `json:"category"`
	Amount      float64  `json:"amount"`
	Description string   `json:"description"`
}

// BookingAmount is the aggregated priced result for one intent/booking.
// It is recomputed as a whole, never partially mutated.
type BookingAmount struct {
	Items          []AmountItem `json:"items"`
	ChargeAmount   float64      `json:"charge_amount"`
	DiscountAmount float64      `json:"discount_amount"`
	FeeAmount      float64      `json:"fee_amount"`
	TaxAmount      float64      `json:"tax_amount"`
	TotalAmount    float64      `json:"total_amount"`
}

// StationRate is the resolved hourly rate for a single station.
type StationRate struct {
	StationID  uuid.UUID `json:"station_id"`
	HourlyRate float64   `json:"hourly_rate"`
	Currency   string    `json:"currency"`
}

// Promotion describes an active promotional discount, if any.
type Promotion struct {
	Code            string  `json:"code"`
	DiscountPercent float64 `json:"discount_percent"`
}

// BookingContext is the input bundle to pricing. It is transient, built
// per pricing call, and treated as read-only by every calculator.
type BookingContext struct {
	IntentID    uuid.UUID
	PlayerID    uuid.UUID
	ClubID      uuid.UUID
	BookingType string
	StartTime   time.Time
	EndTime     time.Time
	Rates       map[uuid.UUID]StationRate
	Promotion   *Promotion
}

// Duration returns the length of the booked window.
func (bc *BookingContext) Duration() time.Duration {
	return bc.EndTime.Sub(bc.StartTime)
}

// Hours returns the booked window length in fractional hours.
func (bc *BookingContext) Hours() float64 {
	return bc.Duration().Hours()
}
