// Package pricing computes order totals from a customer's cart. It is
// pure: no I/O, no mutation of its inputs.
package pricing

import (
	"sort"

	"github.com/shopspring/decimal"
)

// CartLine is one purchasable unit in a customer's cart. Price and
// PackingCost are NUMERIC-safe decimals; VATRate is a fraction
// (0.075 = 7.5%) and only meaningful when VATEnabled is set, which the
// line inherits from its menu category.
type CartLine struct {
	ID          string          `json:"id"`
	Price       decimal.Decimal `json:"price"`
	Count       int             `json:"count"`
	PackingCost decimal.Decimal `json:"packingCost"`
	IsPacked    bool            `json:"isPacked"`
	IsVariety   bool            `json:"isVariety"`
	VATEnabled  bool            `json:"isVatEnabled"`
	VATRate     decimal.Decimal `json:"vatRate"`
}

// Totals is the derived pricing breakdown for a cart snapshot. All
// figures are rounded to 2 decimal places, half away from zero. Totals
// are recomputed from the cart on every mutation, never stored.
type Totals struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	PackingCost decimal.Decimal `json:"packingCost"`
	VAT         decimal.Decimal `json:"vat"`
	Total       decimal.Decimal `json:"total"`
}

// Price maps a cart to its totals. An empty cart yields all zeros.
// Packing cost applies only to packed lines and a negative packing cost
// counts as zero. VAT is charged on item + packing for lines whose
// category enables it, accumulated exactly and rounded once at the end.
func Price(lines []CartLine) Totals {
	subtotal := decimal.Zero
	packing := decimal.Zero
	vat := decimal.Zero

	for _, l := range lines {
		count := decimal.NewFromInt(int64(l.Count))
		itemTotal := l.Price.Mul(count)

		packTotal := decimal.Zero
		if l.IsPacked {
			cost := l.PackingCost
			if cost.IsNegative() {
				cost = decimal.Zero
			}
			packTotal = cost.Mul(count)
		}

		subtotal = subtotal.Add(itemTotal)
		packing = packing.Add(packTotal)

		if l.VATEnabled && l.VATRate.IsPositive() {
			vat = vat.Add(itemTotal.Add(packTotal).Mul(l.VATRate))
		}
	}

	vat = vat.Round(2)
	return Totals{
		Subtotal:    subtotal.Round(2),
		PackingCost: packing.Round(2),
		VAT:         vat,
		Total:       subtotal.Add(packing).Add(vat).Round(2),
	}
}

// VATRates returns the deduplicated set of VAT rates enabled across the
// cart, ascending. When lines carry different rates the display shows
// this set; the VAT figure itself is still the sum over all lines.
func VATRates(lines []CartLine) []decimal.Decimal {
	seen := make(map[string]decimal.Decimal)
	for _, l := range lines {
		if l.VATEnabled && l.VATRate.IsPositive() {
			seen[l.VATRate.String()] = l.VATRate
		}
	}
	out := make([]decimal.Decimal, 0, len(seen))
	for _, r := range seen {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LessThan(out[j]) })
	return out
}
