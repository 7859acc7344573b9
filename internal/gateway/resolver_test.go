package gateway

import (
	"testing"

	"paybridge/internal/model"
)

func TestStaticResolvers(t *testing.T) {
	t.Parallel()

	r := 0.21
	item := model.OrderItem{TaxRate: &r}
	order := &model.Order{ShippingTaxRate: &r}

	if got := (StaticUnitItemResolver{}).Resolve(order, &item); got == nil || *got != 0.21 {
		t.Errorf("expected item rate 0.21, got %v", got)
	}
	if got := (StaticUnitItemResolver{}).Resolve(order, &model.OrderItem{}); got != nil {
		t.Errorf("expected nil for untaxed item, got %v", got)
	}
	if got := (StaticShipmentResolver{}).Resolve(order); got == nil || *got != 0.21 {
		t.Errorf("expected shipping rate 0.21, got %v", got)
	}
	if got := (StaticShipmentResolver{}).Resolve(&model.Order{}); got != nil {
		t.Errorf("expected nil for untaxed shipping, got %v", got)
	}
}

func TestFixedPointTaxCalculator(t *testing.T) {
	t.Parallel()

	calc := FixedPointTaxCalculator{Divisor: 100}

	tests := []struct {
		name string
		rate float64
		base int64
		want string
	}{
		{"standard rate", 0.21, 1000, "2.10"},
		{"reduced rate", 0.09, 500, "0.45"},
		{"zero rate", 0, 1000, "0.00"},
		{"rounds to nearest cent", 0.21, 333, "0.70"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := calc.Calculate(tt.rate, tt.base); got != tt.want {
				t.Errorf("Calculate(%v, %d) = %q, want %q", tt.rate, tt.base, got, tt.want)
			}
		})
	}
}

func TestFormatVatRate(t *testing.T) {
	t.Parallel()

	// The rate string is a plain cast of rate*100: no two-decimal
	// padding, matching what the gateway has always been sent.
	r21 := 0.21
	if got := formatVatRate(&r21); got != "21" {
		t.Errorf("expected \"21\", got %q", got)
	}
	r20 := 0.2
	if got := formatVatRate(&r20); got != "20" {
		t.Errorf("expected \"20\", got %q", got)
	}
	if got := formatVatRate(nil); got != "0.00" {
		t.Errorf("expected \"0.00\" for nil rate, got %q", got)
	}
}

func TestVoucherCategoryResolver(t *testing.T) {
	t.Parallel()

	item := model.OrderItem{ProductName: "Lunch"}
	if got := (VoucherCategoryResolver{}).Resolve(MethodConfig{VoucherEnabled: true}, &item); got != CategoryMealVoucher {
		t.Errorf("expected %q, got %q", CategoryMealVoucher, got)
	}
	if got := (VoucherCategoryResolver{}).Resolve(MethodConfig{}, &item); got != "" {
		t.Errorf("expected empty category, got %q", got)
	}
}
