// Package pricing recomputes order totals server-side. Client-submitted
// totals are never trusted; the quote is a pure function of the normalized
// lines and the delivery selection.
package pricing

import (
	"github.com/charbelabdallah/bookstore-backend/internal/models"
	"github.com/shopspring/decimal"
)

// Delivery fees in USD. North Lebanon (and Batroun within it) ships for
// $3, every other governorate for $5, pickup is free.
var (
	reducedDeliveryFee = decimal.NewFromInt(3)
	defaultDeliveryFee = decimal.NewFromInt(5)

	reducedFeeGovernorates = map[string]bool{
		"North Lebanon": true,
		"Batroun":       true,
	}
)

// Totals are the server-derived monetary amounts for one order.
type Totals struct {
	Subtotal decimal.Decimal
	Delivery decimal.Decimal
	Total    decimal.Decimal
}

// Quote computes subtotal, delivery cost, and total for the given lines.
// Gift lines contribute nothing. Every multiplication and addition is
// rounded to cents before the next step; many small accessory and gift
// lines must not accumulate sub-cent drift.
func Quote(lines []models.OrderLine, deliveryMethod, governorate string) Totals {
	subtotal := decimal.Zero
	for _, line := range lines {
		if line.IsGift {
			continue
		}
		lineTotal := line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))).Round(2)
		subtotal = subtotal.Add(lineTotal).Round(2)
	}

	delivery := decimal.Zero
	if deliveryMethod == models.DeliveryShipping {
		delivery = deliveryFee(governorate)
	}

	return Totals{
		Subtotal: subtotal,
		Delivery: delivery,
		Total:    subtotal.Add(delivery).Round(2),
	}
}

func deliveryFee(governorate string) decimal.Decimal {
	if reducedFeeGovernorates[governorate] {
		return reducedDeliveryFee
	}
	return defaultDeliveryFee
}
