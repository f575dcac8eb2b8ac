package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotal(t *testing.T) {
	testCases := []struct {
		name     string
		items    []LineItem
		discount float64
		vat      float64
		clamp    bool
		expected float64
	}{
		{
			name:     "empty cart is zero",
			items:    nil,
			discount: 0,
			vat:      0,
			expected: 0,
		},
		{
			name: "subtotal with vat and no discount",
			items: []LineItem{
				{Quantity: 2, PricePerItem: 10},
				{Quantity: 1, PricePerItem: 5},
			},
			discount: 0,
			vat:      10,
			expected: 27.5,
		},
		{
			name: "discount applied before vat",
			items: []LineItem{
				{Quantity: 4, PricePerItem: 25},
			},
			discount: 20,
			vat:      21,
			expected: 96.8,
		},
		{
			name: "discount exceeding subtotal goes negative without clamp",
			items: []LineItem{
				{Quantity: 1, PricePerItem: 10},
			},
			discount: 25,
			vat:      0,
			clamp:    false,
			expected: -15,
		},
		{
			name: "discount exceeding subtotal floors at zero with clamp",
			items: []LineItem{
				{Quantity: 1, PricePerItem: 10},
			},
			discount: 25,
			vat:      10,
			clamp:    true,
			expected: 0,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			got := Total(tt.items, tt.discount, tt.vat, tt.clamp)
			assert.InDelta(t, tt.expected, got, 1e-9)
		})
	}
}

func TestTotalOrderInvariant(t *testing.T) {
	items := []LineItem{
		{Quantity: 3, PricePerItem: 7.25},
		{Quantity: 1, PricePerItem: 12},
		{Quantity: 5, PricePerItem: 2.4},
	}
	reversed := []LineItem{items[2], items[1], items[0]}

	assert.InDelta(t,
		Total(items, 5, 19, false),
		Total(reversed, 5, 19, false),
		1e-9)
}
