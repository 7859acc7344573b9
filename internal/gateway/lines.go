package gateway

import (
	"strconv"

	"paybridge/internal/model"
)

const zeroDecimal = "0.00"

func (c *OrderConverter) itemLines(order *model.Order, divisor int, method MethodConfig) []Line {
	lines := make([]Line, 0, len(order.Items))
	for i := range order.Items {
		item := &order.Items[i]
		rate := c.itemTax.Resolve(order, item)
		lines = append(lines, Line{
			Category:    c.category.Resolve(method, item),
			Type:        LineTypePhysical,
			Name:        item.ProductName,
			Quantity:    item.Quantity,
			VatRate:     formatVatRate(rate),
			UnitPrice:   Amount{Currency: order.CurrencyCode, Value: ScaleAmount(item.UnitPrice, divisor)},
			TotalAmount: Amount{Currency: order.CurrencyCode, Value: ScaleAmount(item.Total, divisor)},
			// Tax is computed on the unit price, not the line total.
			VatAmount: Amount{Currency: order.CurrencyCode, Value: c.vatAmount(rate, item.UnitPrice)},
			Metadata:  &LineMetadata{ItemID: strconv.FormatInt(item.ID, 10)},
		})
	}
	return lines
}

func (c *OrderConverter) surchargeLines(order *model.Order, divisor int) []Line {
	var lines []Line
	for _, adj := range order.Adjustments {
		if !c.surcharges.Contains(adj.Type) {
			continue
		}
		value := ScaleAmount(adj.Amount, divisor)
		lines = append(lines, Line{
			Type:        LineTypeSurcharge,
			Name:        PaymentFeeName,
			Quantity:    1,
			VatRate:     zeroDecimal,
			UnitPrice:   Amount{Currency: order.CurrencyCode, Value: value},
			TotalAmount: Amount{Currency: order.CurrencyCode, Value: value},
			VatAmount:   Amount{Currency: order.CurrencyCode, Value: zeroDecimal},
		})
	}
	return lines
}

func (c *OrderConverter) shippingLines(order *model.Order, divisor int) []Line {
	if len(order.Shipments) == 0 {
		return nil
	}

	rate := c.shipmentTax.Resolve(order)
	value := ScaleAmount(order.ShippingTotal, divisor)
	return []Line{{
		Type:        LineTypeShippingFee,
		Name:        ShippingFeeName,
		Quantity:    1,
		VatRate:     formatVatRate(rate),
		UnitPrice:   Amount{Currency: order.CurrencyCode, Value: value},
		TotalAmount: Amount{Currency: order.CurrencyCode, Value: value},
		VatAmount:   Amount{Currency: order.CurrencyCode, Value: c.vatAmount(rate, order.ShippingTotal)},
	}}
}

// formatVatRate keeps the gateway's historical formatting: the rate is
// multiplied by 100 and stringified without padding, so 0.21 becomes "21"
// while an unresolved rate becomes "0.00".
func formatVatRate(rate *float64) string {
	if rate == nil {
		return zeroDecimal
	}
	return strconv.FormatFloat(*rate*100, 'f', -1, 64)
}

func (c *OrderConverter) vatAmount(rate *float64, base int64) string {
	if rate == nil {
		return zeroDecimal
	}
	return c.taxAmount.Calculate(*rate, base)
}
