package gateway

// Line types and fixed labels used in the gateway "create order" payload.
const (
	LineTypePhysical    = "physical"
	LineTypeSurcharge   = "surcharge"
	LineTypeShippingFee = "shipping_fee"

	PaymentFeeName  = "payment fee"
	ShippingFeeName = "shipping fee"

	CategoryMealVoucher = "meal"
)

// Amount is a currency plus a decimal string, e.g. {"EUR", "12.50"}.
type Amount struct {
	Currency string `json:"currency"`
	Value    string `json:"value"`
}

// Line is one entry of the payload's "lines" array. Product, surcharge and
// shipping lines all share this shape; Category and Metadata are only set
// on product lines.
type Line struct {
	Category    string        `json:"category,omitempty"`
	Type        string        `json:"type"`
	Name        string        `json:"name"`
	Quantity    int           `json:"quantity"`
	VatRate     string        `json:"vatRate"`
	UnitPrice   Amount        `json:"unitPrice"`
	TotalAmount Amount        `json:"totalAmount"`
	VatAmount   Amount        `json:"vatAmount"`
	Metadata    *LineMetadata `json:"metadata,omitempty"`
}

type LineMetadata struct {
	ItemID string `json:"item_id"`
}

// MethodConfig is the slice of the gateway payment-method configuration the
// converter needs: the method name for the payload template and whether the
// method supports voucher categorization.
type MethodConfig struct {
	Method         string
	VoucherEnabled bool
}
