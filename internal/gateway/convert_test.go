package gateway

import (
	"reflect"
	"testing"

	"paybridge/internal/model"
)

func newTestConverter() *OrderConverter {
	return NewOrderConverter(
		StaticUnitItemResolver{},
		StaticShipmentResolver{},
		FixedPointTaxCalculator{Divisor: 100},
		VoucherCategoryResolver{},
		DefaultSurchargeFeeTypes(),
	)
}

func rate(v float64) *float64 { return &v }

func baseOrder() *model.Order {
	return &model.Order{
		ID:           42,
		Number:       "ORD-42",
		Customer:     &model.Customer{Email: "jan@example.com"},
		CurrencyCode: "EUR",
		ShippingAddress: &model.Address{
			Street:      "Damrak 1",
			Postcode:    "1012 LG",
			City:        "Amsterdam",
			CountryCode: "NL",
			FirstName:   "Jan",
			LastName:    "Jansen",
		},
	}
}

func lines(t *testing.T, details map[string]any) []Line {
	t.Helper()
	got, ok := details["lines"].([]Line)
	if !ok {
		t.Fatalf("expected []Line under \"lines\", got %T", details["lines"])
	}
	return got
}

func TestConvert_ItemAndShipping(t *testing.T) {
	t.Parallel()

	order := baseOrder()
	order.Total = 2500
	order.ShippingTotal = 500
	order.Items = []model.OrderItem{
		{ID: 7, ProductName: "Stroopwafels", Quantity: 2, UnitPrice: 1000, Total: 2000, TaxRate: rate(0.21)},
	}
	order.Shipments = []model.Shipment{{ID: 1, Carrier: "postnl"}}

	details, err := newTestConverter().Convert(order, nil, 100, MethodConfig{Method: "ideal"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if details["orderNumber"] != "42" {
		t.Errorf("expected orderNumber \"42\", got %v", details["orderNumber"])
	}
	amount, ok := details["amount"].(Amount)
	if !ok || amount.Currency != "EUR" || amount.Value != "25.00" {
		t.Errorf("expected amount EUR 25.00, got %v", details["amount"])
	}

	got := lines(t, details)
	if len(got) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(got))
	}

	item := got[0]
	if item.Type != LineTypePhysical {
		t.Errorf("expected type physical, got %s", item.Type)
	}
	if item.Name != "Stroopwafels" || item.Quantity != 2 {
		t.Errorf("unexpected item line: %+v", item)
	}
	if item.VatRate != "21" {
		t.Errorf("expected vatRate \"21\" (unpadded), got %q", item.VatRate)
	}
	if item.UnitPrice.Value != "10.00" || item.TotalAmount.Value != "20.00" {
		t.Errorf("unexpected item amounts: unit %s total %s", item.UnitPrice.Value, item.TotalAmount.Value)
	}
	// 21% of the 1000 minor-unit unit price, not of the line total.
	if item.VatAmount.Value != "2.10" {
		t.Errorf("expected vatAmount 2.10, got %s", item.VatAmount.Value)
	}
	if item.Metadata == nil || item.Metadata.ItemID != "7" {
		t.Errorf("expected metadata item_id 7, got %+v", item.Metadata)
	}

	shipping := got[1]
	if shipping.Type != LineTypeShippingFee || shipping.Name != ShippingFeeName {
		t.Errorf("unexpected shipping line: %+v", shipping)
	}
	if shipping.Quantity != 1 {
		t.Errorf("expected quantity 1, got %d", shipping.Quantity)
	}
	if shipping.VatRate != "0.00" || shipping.VatAmount.Value != "0.00" {
		t.Errorf("expected zero VAT for unresolved shipping rate, got rate %s amount %s", shipping.VatRate, shipping.VatAmount.Value)
	}
	if shipping.UnitPrice.Value != "5.00" || shipping.TotalAmount.Value != "5.00" {
		t.Errorf("unexpected shipping amounts: unit %s total %s", shipping.UnitPrice.Value, shipping.TotalAmount.Value)
	}
}

func TestConvert_SurchargeOnly(t *testing.T) {
	t.Parallel()

	order := baseOrder()
	order.Total = 250
	order.Adjustments = []model.Adjustment{
		{Type: FeeTypeFixed, Amount: 250},
	}

	details, err := newTestConverter().Convert(order, nil, 100, MethodConfig{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	got := lines(t, details)
	if len(got) != 1 {
		t.Fatalf("expected 1 line, got %d", len(got))
	}
	fee := got[0]
	if fee.Type != LineTypeSurcharge || fee.Name != PaymentFeeName {
		t.Errorf("unexpected surcharge line: %+v", fee)
	}
	if fee.UnitPrice.Value != "2.50" || fee.TotalAmount.Value != "2.50" {
		t.Errorf("expected 2.50 amounts, got unit %s total %s", fee.UnitPrice.Value, fee.TotalAmount.Value)
	}
	if fee.VatRate != "0.00" || fee.VatAmount.Value != "0.00" {
		t.Errorf("expected zero VAT on surcharge, got rate %s amount %s", fee.VatRate, fee.VatAmount.Value)
	}
	if fee.Category != "" || fee.Metadata != nil {
		t.Errorf("surcharge lines carry no category or metadata: %+v", fee)
	}
}

func TestConvert_NoTaxMatch(t *testing.T) {
	t.Parallel()

	order := baseOrder()
	order.Total = 1000
	order.Items = []model.OrderItem{
		{ID: 1, ProductName: "Postcard", Quantity: 1, UnitPrice: 1000, Total: 1000},
	}

	details, err := newTestConverter().Convert(order, nil, 100, MethodConfig{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	got := lines(t, details)
	if len(got) != 1 {
		t.Fatalf("expected exactly 1 line, got %d", len(got))
	}
	if got[0].VatRate != "0.00" || got[0].VatAmount.Value != "0.00" {
		t.Errorf("expected all VAT fields 0.00, got rate %s amount %s", got[0].VatRate, got[0].VatAmount.Value)
	}
}

func TestConvert_LineOrdering(t *testing.T) {
	t.Parallel()

	order := baseOrder()
	order.Total = 5750
	order.ShippingTotal = 500
	order.Items = []model.OrderItem{
		{ID: 1, ProductName: "First", Quantity: 1, UnitPrice: 2000, Total: 2000},
		{ID: 2, ProductName: "Second", Quantity: 1, UnitPrice: 3000, Total: 3000},
	}
	order.Adjustments = []model.Adjustment{
		{Type: "promotion", Amount: -100},
		{Type: FeeTypePercentage, Amount: 250},
	}
	order.Shipments = []model.Shipment{{ID: 1}}

	details, err := newTestConverter().Convert(order, nil, 100, MethodConfig{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	got := lines(t, details)
	wantTypes := []string{LineTypePhysical, LineTypePhysical, LineTypeSurcharge, LineTypeShippingFee}
	if len(got) != len(wantTypes) {
		t.Fatalf("expected %d lines, got %d", len(wantTypes), len(got))
	}
	for i, want := range wantTypes {
		if got[i].Type != want {
			t.Errorf("line %d: expected type %s, got %s", i, want, got[i].Type)
		}
	}
	if got[0].Name != "First" || got[1].Name != "Second" {
		t.Errorf("item lines out of order: %s, %s", got[0].Name, got[1].Name)
	}
}

func TestConvert_BillingEqualsShipping(t *testing.T) {
	t.Parallel()

	order := baseOrder()
	details, err := newTestConverter().Convert(order, nil, 100, MethodConfig{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	shipping := details["shippingAddress"]
	billing := details["billingAddress"]
	if !reflect.DeepEqual(shipping, billing) {
		t.Errorf("billing address should mirror the shipping address:\nshipping %v\nbilling  %v", shipping, billing)
	}

	addr, ok := shipping.(map[string]any)
	if !ok {
		t.Fatalf("expected map address, got %T", shipping)
	}
	want := map[string]any{
		"streetAndNumber": "Damrak 1",
		"postalCode":      "1012 LG",
		"city":            "Amsterdam",
		"country":         "NL",
		"givenName":       "Jan",
		"familyName":      "Jansen",
		"email":           "jan@example.com",
	}
	if !reflect.DeepEqual(addr, want) {
		t.Errorf("unexpected address mapping:\ngot  %v\nwant %v", addr, want)
	}
}

func TestConvert_TemplatePreserved(t *testing.T) {
	t.Parallel()

	order := baseOrder()
	template := map[string]any{
		"method":      "ideal",
		"redirectUrl": "https://shop.example.com/return",
	}

	details, err := newTestConverter().Convert(order, template, 100, MethodConfig{Method: "ideal"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if details["method"] != "ideal" || details["redirectUrl"] != "https://shop.example.com/return" {
		t.Errorf("caller template keys must survive conversion: %v", details)
	}
}

func TestConvert_VoucherCategory(t *testing.T) {
	t.Parallel()

	order := baseOrder()
	order.Items = []model.OrderItem{
		{ID: 1, ProductName: "Lunch deal", Quantity: 1, UnitPrice: 900, Total: 900},
	}

	details, err := newTestConverter().Convert(order, nil, 100, MethodConfig{Method: "voucher", VoucherEnabled: true})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	got := lines(t, details)
	if got[0].Category != CategoryMealVoucher {
		t.Errorf("expected category %q, got %q", CategoryMealVoucher, got[0].Category)
	}
}

func TestConvert_Preconditions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*model.Order)
		divisor int
		wantErr error
	}{
		{
			name:    "missing customer",
			mutate:  func(o *model.Order) { o.Customer = nil },
			divisor: 100,
			wantErr: ErrNoCustomer,
		},
		{
			name:    "missing shipping address",
			mutate:  func(o *model.Order) { o.ShippingAddress = nil },
			divisor: 100,
			wantErr: ErrNoShippingAddress,
		},
		{
			name:    "zero divisor",
			mutate:  func(o *model.Order) {},
			divisor: 0,
			wantErr: ErrInvalidDivisor,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := baseOrder()
			tt.mutate(order)
			_, err := newTestConverter().Convert(order, nil, tt.divisor, MethodConfig{})
			if err != tt.wantErr {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}
