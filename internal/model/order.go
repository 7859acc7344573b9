package model

import (
	"time"
)

// Order is the aggregate produced by the checkout flow. All monetary
// amounts are integer minor units (cents for a divisor of 100).
type Order struct {
	ID              int64        `json:"id"`
	Number          string       `json:"number"`
	Customer        *Customer    `json:"customer"`
	CurrencyCode    string       `json:"currency_code"`
	Total           int64        `json:"total"`
	ShippingTotal   int64        `json:"shipping_total"`
	ShippingTaxRate *float64     `json:"shipping_tax_rate,omitempty"`
	Items           []OrderItem  `json:"items"`
	Adjustments     []Adjustment `json:"adjustments,omitempty"`
	Shipments       []Shipment   `json:"shipments,omitempty"`
	ShippingAddress *Address     `json:"shipping_address"`
	Channel         *Channel     `json:"channel,omitempty"`
	PaymentStatus   string       `json:"payment_status"` // NEW, SUBMITTED, FAILED
	CreatedAt       time.Time    `json:"created_at"`
}

type OrderItem struct {
	ID          int64    `json:"id"`
	ProductName string   `json:"product_name"`
	Quantity    int      `json:"quantity"`
	UnitPrice   int64    `json:"unit_price"`
	Total       int64    `json:"total"`
	TaxRate     *float64 `json:"tax_rate,omitempty"`
}

// Adjustment is an order-level correction such as a payment fee or a
// promotion. Amount may be negative.
type Adjustment struct {
	Type   string `json:"type"`
	Amount int64  `json:"amount"`
}

type Shipment struct {
	ID      int64  `json:"id"`
	Carrier string `json:"carrier,omitempty"`
}

// Channel carries the sales-channel context; the payment core only ever
// reaches it for tax-zone information.
type Channel struct {
	Code           string `json:"code"`
	DefaultTaxZone string `json:"default_tax_zone,omitempty"`
}
