package checkout

import (
	"github.com/shopspring/decimal"
)

// totalTolerance absorbs benign floating-point rounding from discount
// arithmetic done client-side. Anything beyond it is treated as a
// tampered total.
var totalTolerance = decimal.NewFromFloat(0.01)

// RecomputeTotal sums unit price times quantity over all items using
// decimal arithmetic.
func RecomputeTotal(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		line := decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(line)
	}
	return total
}

// VerifyTotal recomputes the order total server-side and compares it to
// the client-claimed value. The returned total is the authoritative one
// that gets persisted; the claimed total is advisory only and is never
// stored.
func VerifyTotal(items []LineItem, claimed float64) (float64, error) {
	computed := RecomputeTotal(items)

	diff := computed.Sub(decimal.NewFromFloat(claimed)).Abs()
	if diff.GreaterThan(totalTolerance) {
		return 0, &PriceMismatchError{
			Claimed:  claimed,
			Computed: computed.InexactFloat64(),
		}
	}

	return computed.InexactFloat64(), nil
}
