// Package pricing computes the final price of a set of line items.
package pricing

// LineItem is the minimal shape pricing needs from a cart or order line.
type LineItem struct {
	Quantity     int
	PricePerItem float64
}

// Total computes the final total for the given line items:
// subtotal minus the discount, plus VAT on the discounted amount.
//
// When clampNegative is set, a discount larger than the subtotal floors the
// discounted amount at zero instead of producing a negative total.
func Total(items []LineItem, discountAmount, vatPercentage float64, clampNegative bool) float64 {
	var subtotal float64
	for _, item := range items {
		subtotal += float64(item.Quantity) * item.PricePerItem
	}

	discounted := subtotal - discountAmount
	if clampNegative && discounted < 0 {
		discounted = 0
	}

	vat := discounted * vatPercentage / 100
	return discounted + vat
}
