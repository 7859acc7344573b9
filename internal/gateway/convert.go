package gateway

import (
	"errors"
	"strconv"

	"paybridge/internal/model"
)

var (
	ErrNoCustomer        = errors.New("order has no customer")
	ErrNoShippingAddress = errors.New("order has no shipping address")
	ErrInvalidDivisor    = errors.New("divisor must be positive")
)

// OrderConverter turns a checkout order into the nested payload of the
// gateway's "create order" request. It holds only its collaborators; the
// order travels through every step as a parameter, so a single converter
// is safe to share across concurrent conversions.
type OrderConverter struct {
	itemTax     UnitItemTaxResolver
	shipmentTax ShipmentTaxResolver
	taxAmount   TaxAmountCalculator
	category    CategoryResolver
	surcharges  SurchargeRegistry
}

func NewOrderConverter(
	itemTax UnitItemTaxResolver,
	shipmentTax ShipmentTaxResolver,
	taxAmount TaxAmountCalculator,
	category CategoryResolver,
	surcharges SurchargeRegistry,
) *OrderConverter {
	return &OrderConverter{
		itemTax:     itemTax,
		shipmentTax: shipmentTax,
		taxAmount:   taxAmount,
		category:    category,
		surcharges:  surcharges,
	}
}

// Convert fills the gateway order fields into details on top of whatever the
// caller already put there (method, redirect URL, ...) and returns it. Lines
// are assembled in a fixed order: product lines, then surcharge lines, then
// at most one shipping line.
func (c *OrderConverter) Convert(order *model.Order, details map[string]any, divisor int, method MethodConfig) (map[string]any, error) {
	if divisor <= 0 {
		return nil, ErrInvalidDivisor
	}
	if order.Customer == nil {
		return nil, ErrNoCustomer
	}
	if order.ShippingAddress == nil {
		return nil, ErrNoShippingAddress
	}
	if details == nil {
		details = make(map[string]any)
	}

	details["amount"] = Amount{
		Currency: order.CurrencyCode,
		Value:    ScaleAmount(order.Total, divisor),
	}
	details["orderNumber"] = strconv.FormatInt(order.ID, 10)
	details["shippingAddress"] = mapAddress(order.ShippingAddress, order.Customer)
	// The order aggregate carries a single postal address, so billing
	// reuses the shipping address. Known limitation, kept deliberately.
	details["billingAddress"] = mapAddress(order.ShippingAddress, order.Customer)

	lines := c.itemLines(order, divisor, method)
	lines = append(lines, c.surchargeLines(order, divisor)...)
	lines = append(lines, c.shippingLines(order, divisor)...)
	details["lines"] = lines

	return details, nil
}

func mapAddress(addr *model.Address, customer *model.Customer) map[string]any {
	return map[string]any{
		"streetAndNumber": addr.Street,
		"postalCode":      addr.Postcode,
		"city":            addr.City,
		"country":         addr.CountryCode,
		"givenName":       addr.FirstName,
		"familyName":      addr.LastName,
		"email":           customer.Email,
	}
}
