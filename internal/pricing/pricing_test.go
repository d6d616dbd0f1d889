package pricing

import "testing"

func TestTotals(t *testing.T) {
	cases := []struct {
		photos             int
		amount, tax, total string
	}{
		{0, "0.00", "0.00", "0.00"},
		{1, "10.00", "0.50", "10.50"},
		{3, "30.00", "1.50", "31.50"},
		{7, "70.00", "3.50", "73.50"},
	}
	for _, tc := range cases {
		amount, tax, total := Totals(tc.photos)
		if amount.StringFixed(2) != tc.amount {
			t.Fatalf("photos=%d amount=%s want %s", tc.photos, amount.StringFixed(2), tc.amount)
		}
		if tax.StringFixed(2) != tc.tax {
			t.Fatalf("photos=%d tax=%s want %s", tc.photos, tax.StringFixed(2), tc.tax)
		}
		if total.StringFixed(2) != tc.total {
			t.Fatalf("photos=%d total=%s want %s", tc.photos, total.StringFixed(2), tc.total)
		}
	}
}
