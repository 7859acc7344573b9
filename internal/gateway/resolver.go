package gateway

import (
	"math"

	"paybridge/internal/model"
)

// Tax and category resolution is pluggable: one interface per rule, with the
// implementation selected by gateway configuration upstream of the converter.
// All implementations must be stateless lookups.

// UnitItemTaxResolver yields the VAT rate for a single order item, or nil
// when no rate applies.
type UnitItemTaxResolver interface {
	Resolve(order *model.Order, item *model.OrderItem) *float64
}

// ShipmentTaxResolver yields the VAT rate for the order's shipping fee, or
// nil when no rate applies.
type ShipmentTaxResolver interface {
	Resolve(order *model.Order) *float64
}

// TaxAmountCalculator turns a rate and a minor-unit base amount into a
// decimal tax-amount string.
type TaxAmountCalculator interface {
	Calculate(rate float64, base int64) string
}

// CategoryResolver classifies an item for the configured payment method;
// an empty result means no category is sent on the line.
type CategoryResolver interface {
	Resolve(method MethodConfig, item *model.OrderItem) string
}

// StaticUnitItemResolver reads the rate the tax-zone machinery attached to
// the item during checkout.
type StaticUnitItemResolver struct{}

func (StaticUnitItemResolver) Resolve(_ *model.Order, item *model.OrderItem) *float64 {
	return item.TaxRate
}

// StaticShipmentResolver reads the shipping rate attached to the order
// during checkout.
type StaticShipmentResolver struct{}

func (StaticShipmentResolver) Resolve(order *model.Order) *float64 {
	return order.ShippingTaxRate
}

// FixedPointTaxCalculator computes the tax in minor units first and only
// then formats it, keeping currency math out of binary floating point.
type FixedPointTaxCalculator struct {
	Divisor int
}

func (c FixedPointTaxCalculator) Calculate(rate float64, base int64) string {
	tax := int64(math.Round(rate * float64(base)))
	return ScaleAmount(tax, c.Divisor)
}

// VoucherCategoryResolver tags every item as a meal voucher when the payment
// method supports vouchers, and leaves the category empty otherwise.
type VoucherCategoryResolver struct{}

func (VoucherCategoryResolver) Resolve(method MethodConfig, _ *model.OrderItem) string {
	if method.VoucherEnabled {
		return CategoryMealVoucher
	}
	return ""
}
