package gateway

import "testing"

func TestScaleAmount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		amount  int64
		divisor int
		want    string
	}{
		{"cents round trip", 12345, 100, "123.45"},
		{"small amount", 250, 100, "2.50"},
		{"sub-unit amount", 7, 100, "0.07"},
		{"zero", 0, 100, "0.00"},
		{"negative", -150, 100, "-1.50"},
		{"no fraction divisor", 5, 1, "5"},
		{"three decimals", 12345, 1000, "12.345"},
		{"exact major units", 2000, 100, "20.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScaleAmount(tt.amount, tt.divisor); got != tt.want {
				t.Errorf("ScaleAmount(%d, %d) = %q, want %q", tt.amount, tt.divisor, got, tt.want)
			}
		})
	}
}
