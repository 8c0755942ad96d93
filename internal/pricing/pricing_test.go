package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestPriceEmptyCart(t *testing.T) {
	got := Price(nil)
	for name, v := range map[string]decimal.Decimal{
		"subtotal": got.Subtotal,
		"packing":  got.PackingCost,
		"vat":      got.VAT,
		"total":    got.Total,
	} {
		if !v.IsZero() {
			t.Errorf("%s = %s, want 0", name, v)
		}
	}
}

func TestPriceTwoLineScenario(t *testing.T) {
	lines := []CartLine{
		{ID: "a", Price: d("1000"), Count: 2, VATEnabled: true, VATRate: d("0.075")},
		{ID: "b", Price: d("500"), Count: 1, PackingCost: d("100"), IsPacked: true},
	}
	got := Price(lines)

	if !got.Subtotal.Equal(d("2500")) {
		t.Errorf("subtotal = %s, want 2500", got.Subtotal)
	}
	if !got.PackingCost.Equal(d("100")) {
		t.Errorf("packing = %s, want 100", got.PackingCost)
	}
	if !got.VAT.Equal(d("150")) {
		t.Errorf("vat = %s, want 150", got.VAT)
	}
	if !got.Total.Equal(d("2750")) {
		t.Errorf("total = %s, want 2750", got.Total)
	}
}

func TestPriceOrderIndependent(t *testing.T) {
	lines := []CartLine{
		{ID: "a", Price: d("19.99"), Count: 3, VATEnabled: true, VATRate: d("0.075")},
		{ID: "b", Price: d("2.50"), Count: 1, PackingCost: d("0.75"), IsPacked: true},
		{ID: "c", Price: d("840"), Count: 2, PackingCost: d("50"), IsPacked: true, VATEnabled: true, VATRate: d("0.05")},
	}
	want := Price(lines)

	permuted := []CartLine{lines[2], lines[0], lines[1]}
	got := Price(permuted)

	if !got.Subtotal.Equal(want.Subtotal) || !got.PackingCost.Equal(want.PackingCost) ||
		!got.VAT.Equal(want.VAT) || !got.Total.Equal(want.Total) {
		t.Errorf("permuted totals %+v != original %+v", got, want)
	}
}

func TestPriceVATDisabledLinesContributeNothing(t *testing.T) {
	lines := []CartLine{
		{ID: "a", Price: d("1200"), Count: 4, VATRate: d("0.075")},
		{ID: "b", Price: d("90"), Count: 1, PackingCost: d("10"), IsPacked: true, VATRate: d("0.2")},
	}
	got := Price(lines)
	if !got.VAT.IsZero() {
		t.Errorf("vat = %s, want 0 when no line enables VAT", got.VAT)
	}
	if !got.Total.Equal(d("4900")) {
		t.Errorf("total = %s, want 4900", got.Total)
	}
}

func TestPriceNegativePackingCostClamped(t *testing.T) {
	lines := []CartLine{
		{ID: "a", Price: d("100"), Count: 2, PackingCost: d("-30"), IsPacked: true},
	}
	got := Price(lines)
	if !got.PackingCost.IsZero() {
		t.Errorf("packing = %s, want 0 after clamp", got.PackingCost)
	}
	if !got.Total.Equal(d("200")) {
		t.Errorf("total = %s, want 200", got.Total)
	}
}

func TestPriceDoesNotMutateInput(t *testing.T) {
	lines := []CartLine{
		{ID: "a", Price: d("100"), Count: 2, PackingCost: d("-30"), IsPacked: true},
	}
	_ = Price(lines)
	if !lines[0].PackingCost.Equal(d("-30")) {
		t.Errorf("input packingCost mutated to %s", lines[0].PackingCost)
	}
}

func TestVATRatesDeduplicated(t *testing.T) {
	lines := []CartLine{
		{ID: "a", VATEnabled: true, VATRate: d("0.075")},
		{ID: "b", VATEnabled: true, VATRate: d("0.075")},
		{ID: "c", VATEnabled: true, VATRate: d("0.05")},
		{ID: "d", VATEnabled: false, VATRate: d("0.2")},
	}
	got := VATRates(lines)
	if len(got) != 2 {
		t.Fatalf("got %d rates, want 2", len(got))
	}
	if !got[0].Equal(d("0.05")) || !got[1].Equal(d("0.075")) {
		t.Errorf("rates = %s, %s; want 0.05, 0.075", got[0], got[1])
	}
}
