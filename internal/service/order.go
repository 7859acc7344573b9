package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"paybridge/internal/model"
)

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrOrderAlreadyExists = errors.New("order already exists")
)

// Payment submission states for an order.
const (
	PaymentStatusNew       = "NEW"
	PaymentStatusSubmitted = "SUBMITTED"
	PaymentStatusFailed    = "FAILED"
)

// PaymentInfo is the submission state the API reports for an order.
type PaymentInfo struct {
	OrderNumber    string `json:"orderNumber"`
	Status         string `json:"status"`
	GatewayOrderID string `json:"gatewayOrderId,omitempty"`
	CheckoutURL    string `json:"checkoutUrl,omitempty"`
}

type OrderService struct {
	db *sql.DB
}

func NewOrderService(db *sql.DB) *OrderService {
	return &OrderService{db: db}
}

// Create persists a checkout order aggregate in one transaction.
func (s *OrderService) Create(ctx context.Context, o *model.Order) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM orders WHERE number = $1)`, o.Number).Scan(&exists)
	if err != nil {
		return 0, fmt.Errorf("check order: %w", err)
	}
	if exists {
		return 0, ErrOrderAlreadyExists
	}

	var email sql.NullString
	if o.Customer != nil {
		email = sql.NullString{String: o.Customer.Email, Valid: true}
	}

	var street, postcode, city, country, firstName, lastName sql.NullString
	if a := o.ShippingAddress; a != nil {
		street = sql.NullString{String: a.Street, Valid: true}
		postcode = sql.NullString{String: a.Postcode, Valid: true}
		city = sql.NullString{String: a.City, Valid: true}
		country = sql.NullString{String: a.CountryCode, Valid: true}
		firstName = sql.NullString{String: a.FirstName, Valid: true}
		lastName = sql.NullString{String: a.LastName, Valid: true}
	}

	var channelCode, taxZone sql.NullString
	if o.Channel != nil {
		channelCode = sql.NullString{String: o.Channel.Code, Valid: true}
		taxZone = sql.NullString{String: o.Channel.DefaultTaxZone, Valid: true}
	}

	var orderID int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (number, currency_code, total, shipping_total, shipping_tax_rate,
			customer_email, street, postcode, city, country_code, first_name, last_name,
			channel_code, default_tax_zone, payment_status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id
	`, o.Number, o.CurrencyCode, o.Total, o.ShippingTotal, nullFloat(o.ShippingTaxRate),
		email, street, postcode, city, country, firstName, lastName,
		channelCode, taxZone, PaymentStatusNew, time.Now(),
	).Scan(&orderID)
	if err != nil {
		return 0, fmt.Errorf("insert order: %w", err)
	}

	for _, item := range o.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, product_name, quantity, unit_price, total, tax_rate)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, orderID, item.ProductName, item.Quantity, item.UnitPrice, item.Total, nullFloat(item.TaxRate))
		if err != nil {
			return 0, fmt.Errorf("insert order item: %w", err)
		}
	}

	for _, adj := range o.Adjustments {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO adjustments (order_id, type, amount) VALUES ($1, $2, $3)`,
			orderID, adj.Type, adj.Amount,
		)
		if err != nil {
			return 0, fmt.Errorf("insert adjustment: %w", err)
		}
	}

	for _, sh := range o.Shipments {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO shipments (order_id, carrier) VALUES ($1, $2)`,
			orderID, sh.Carrier,
		)
		if err != nil {
			return 0, fmt.Errorf("insert shipment: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit tx: %w", err)
	}

	return orderID, nil
}

// GetByNumber loads the full order aggregate: the order row plus its items,
// adjustments and shipments.
func (s *OrderService) GetByNumber(ctx context.Context, number string) (*model.Order, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, number, currency_code, total, shipping_total, shipping_tax_rate,
			customer_email, street, postcode, city, country_code, first_name, last_name,
			channel_code, default_tax_zone, payment_status, created_at
		FROM orders
		WHERE number = $1
	`, number)

	var (
		o               model.Order
		shippingTaxRate sql.NullFloat64
		email           sql.NullString
		street          sql.NullString
		postcode        sql.NullString
		city            sql.NullString
		country         sql.NullString
		firstName       sql.NullString
		lastName        sql.NullString
		channelCode     sql.NullString
		taxZone         sql.NullString
	)
	err := row.Scan(&o.ID, &o.Number, &o.CurrencyCode, &o.Total, &o.ShippingTotal, &shippingTaxRate,
		&email, &street, &postcode, &city, &country, &firstName, &lastName,
		&channelCode, &taxZone, &o.PaymentStatus, &o.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query order: %w", err)
	}

	if shippingTaxRate.Valid {
		o.ShippingTaxRate = &shippingTaxRate.Float64
	}
	if email.Valid {
		o.Customer = &model.Customer{Email: email.String}
	}
	if street.Valid {
		o.ShippingAddress = &model.Address{
			Street:      street.String,
			Postcode:    postcode.String,
			City:        city.String,
			CountryCode: country.String,
			FirstName:   firstName.String,
			LastName:    lastName.String,
		}
	}
	if channelCode.Valid {
		o.Channel = &model.Channel{Code: channelCode.String, DefaultTaxZone: taxZone.String}
	}

	if o.Items, err = s.loadItems(ctx, o.ID); err != nil {
		return nil, err
	}
	if o.Adjustments, err = s.loadAdjustments(ctx, o.ID); err != nil {
		return nil, err
	}
	if o.Shipments, err = s.loadShipments(ctx, o.ID); err != nil {
		return nil, err
	}

	return &o, nil
}

func (s *OrderService) loadItems(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, product_name, quantity, unit_price, total, tax_rate
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("query order items: %w", err)
	}
	defer rows.Close()

	var items []model.OrderItem
	for rows.Next() {
		var item model.OrderItem
		var taxRate sql.NullFloat64
		if err := rows.Scan(&item.ID, &item.ProductName, &item.Quantity, &item.UnitPrice, &item.Total, &taxRate); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		if taxRate.Valid {
			item.TaxRate = &taxRate.Float64
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return items, nil
}

func (s *OrderService) loadAdjustments(ctx context.Context, orderID int64) ([]model.Adjustment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT type, amount FROM adjustments WHERE order_id = $1 ORDER BY id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("query adjustments: %w", err)
	}
	defer rows.Close()

	var adjustments []model.Adjustment
	for rows.Next() {
		var adj model.Adjustment
		if err := rows.Scan(&adj.Type, &adj.Amount); err != nil {
			return nil, fmt.Errorf("scan adjustment: %w", err)
		}
		adjustments = append(adjustments, adj)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return adjustments, nil
}

func (s *OrderService) loadShipments(ctx context.Context, orderID int64) ([]model.Shipment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, COALESCE(carrier, '') FROM shipments WHERE order_id = $1 ORDER BY id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("query shipments: %w", err)
	}
	defer rows.Close()

	var shipments []model.Shipment
	for rows.Next() {
		var sh model.Shipment
		if err := rows.Scan(&sh.ID, &sh.Carrier); err != nil {
			return nil, fmt.Errorf("scan shipment: %w", err)
		}
		shipments = append(shipments, sh)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return shipments, nil
}

// MarkSubmitted records a successful gateway submission.
func (s *OrderService) MarkSubmitted(ctx context.Context, orderID int64, gatewayOrderID, checkoutURL string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE orders SET payment_status = $1, gateway_order_id = $2, checkout_url = $3 WHERE id = $4
	`, PaymentStatusSubmitted, gatewayOrderID, checkoutURL, orderID)
	if err != nil {
		return fmt.Errorf("mark submitted: %w", err)
	}
	return nil
}

// MarkFailed records a rejected or unconvertible order.
func (s *OrderService) MarkFailed(ctx context.Context, orderID int64) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE orders SET payment_status = $1 WHERE id = $2`, PaymentStatusFailed, orderID)
	if err != nil {
		return fmt.Errorf("mark failed: %w", err)
	}
	return nil
}

// PaymentStatus returns the submission state for an order number.
func (s *OrderService) PaymentStatus(ctx context.Context, number string) (*PaymentInfo, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT number, payment_status, COALESCE(gateway_order_id, ''), COALESCE(checkout_url, '')
		FROM orders
		WHERE number = $1
	`, number)

	var info PaymentInfo
	err := row.Scan(&info.OrderNumber, &info.Status, &info.GatewayOrderID, &info.CheckoutURL)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query payment status: %w", err)
	}

	return &info, nil
}

// PendingPayment lists order numbers still waiting for gateway submission.
func (s *OrderService) PendingPayment(ctx context.Context, limit int) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT number FROM orders WHERE payment_status = $1 ORDER BY created_at ASC LIMIT $2
	`, PaymentStatusNew, limit)
	if err != nil {
		return nil, fmt.Errorf("query pending: %w", err)
	}
	defer rows.Close()

	var numbers []string
	for rows.Next() {
		var number string
		if err := rows.Scan(&number); err != nil {
			return nil, fmt.Errorf("scan number: %w", err)
		}
		numbers = append(numbers, number)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return numbers, nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
