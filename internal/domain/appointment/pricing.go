package appointment

import "github.com/shopspring/decimal"

const (
	// DefaultServiceDuration applies when a catalog entry carries no duration.
	DefaultServiceDuration = 30
	// DefaultAppointmentDuration applies when the services add up to zero minutes.
	DefaultAppointmentDuration = 60
)

var hundred = decimal.NewFromInt(100)

type Totals struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	TotalDuration  int             `json:"total_duration"`
}

// ComputeTotals derives the financial totals and the duration of a booking.
// Lines whose service is missing from the catalog contribute nothing. Products
// marked used are consumed during the service and never billed.
func ComputeTotals(
	services []ServiceLineItem,
	products []ProductLineItem,
	discountPercent decimal.Decimal,
	catalog ServiceIndex,
) Totals {
	subtotal := decimal.Zero
	duration := 0

	for _, line := range services {
		if line.ServiceID == 0 || line.Quantity <= 0 {
			continue
		}
		entry, ok := catalog[line.ServiceID]
		if !ok {
			continue
		}
		qty := decimal.NewFromInt(int64(line.Quantity))
		subtotal = subtotal.Add(entry.Price.Mul(qty))

		d := entry.Duration
		if d <= 0 {
			d = DefaultServiceDuration
		}
		duration += d * line.Quantity
	}

	for _, line := range products {
		if line.UsageType != UsageSold || line.Quantity <= 0 {
			continue
		}
		subtotal = subtotal.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	discount := subtotal.Mul(discountPercent).Div(hundred).Round(2)
	total := subtotal.Sub(discount).Round(2)
	if total.IsNegative() {
		total = decimal.Zero
	}

	return Totals{
		Subtotal:       subtotal.Round(2),
		DiscountAmount: discount,
		TotalAmount:    total,
		TotalDuration:  duration,
	}
}

// EffectiveDuration is the length actually booked for a total duration.
func EffectiveDuration(totalMinutes int) int {
	if totalMinutes <= 0 {
		return DefaultAppointmentDuration
	}
	return totalMinutes
}
