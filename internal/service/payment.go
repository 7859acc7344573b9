package service

import (
	"context"
	"errors"
	"fmt"

	"paybridge/internal/gateway"
	"paybridge/internal/model"
)

// OrderStore is the slice of OrderService the payment flow needs.
type OrderStore interface {
	GetByNumber(ctx context.Context, number string) (*model.Order, error)
	MarkSubmitted(ctx context.Context, orderID int64, gatewayOrderID, checkoutURL string) error
	MarkFailed(ctx context.Context, orderID int64) error
	PaymentStatus(ctx context.Context, number string) (*PaymentInfo, error)
}

// GatewayAPI is the slice of GatewayClient the payment flow needs.
type GatewayAPI interface {
	CreateOrder(ctx context.Context, payload map[string]any) (*GatewayOrder, error)
}

// PaymentOptions carries the gateway settings applied to every submission.
type PaymentOptions struct {
	Divisor     int
	Method      gateway.MethodConfig
	RedirectURL string
	WebhookURL  string
}

// PaymentService converts an order and submits it to the gateway. It is the
// single entry point for both the HTTP handler and the background worker.
type PaymentService struct {
	orders OrderStore
	gw     GatewayAPI
	conv   *gateway.OrderConverter
	opts   PaymentOptions
}

func NewPaymentService(orders OrderStore, gw GatewayAPI, conv *gateway.OrderConverter, opts PaymentOptions) *PaymentService {
	return &PaymentService{orders: orders, gw: gw, conv: conv, opts: opts}
}

// Submit loads the order aggregate, converts it into the gateway payload and
// creates the gateway order. Rate limiting leaves the order in NEW so a later
// attempt can retry; conversion failures and gateway rejections mark it
// FAILED.
func (s *PaymentService) Submit(ctx context.Context, number string) (*PaymentInfo, error) {
	order, err := s.orders.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}

	payload, err := s.conv.Convert(order, s.template(), s.opts.Divisor, s.opts.Method)
	if err != nil {
		if markErr := s.orders.MarkFailed(ctx, order.ID); markErr != nil {
			return nil, fmt.Errorf("mark failed after conversion error: %w", markErr)
		}
		return nil, fmt.Errorf("convert order %s: %w", number, err)
	}

	res, err := s.gw.CreateOrder(ctx, payload)
	if err != nil {
		if errors.Is(err, ErrGatewayRateLimited) {
			return nil, err
		}
		if markErr := s.orders.MarkFailed(ctx, order.ID); markErr != nil {
			return nil, fmt.Errorf("mark failed after gateway error: %w", markErr)
		}
		return nil, fmt.Errorf("submit order %s: %w", number, err)
	}

	checkoutURL := res.Links.Checkout.Href
	if err := s.orders.MarkSubmitted(ctx, order.ID, res.ID, checkoutURL); err != nil {
		return nil, fmt.Errorf("mark submitted: %w", err)
	}

	return &PaymentInfo{
		OrderNumber:    order.Number,
		Status:         PaymentStatusSubmitted,
		GatewayOrderID: res.ID,
		CheckoutURL:    checkoutURL,
	}, nil
}

// Status reports the current submission state for an order.
func (s *PaymentService) Status(ctx context.Context, number string) (*PaymentInfo, error) {
	return s.orders.PaymentStatus(ctx, number)
}

func (s *PaymentService) template() map[string]any {
	details := map[string]any{}
	if s.opts.Method.Method != "" {
		details["method"] = s.opts.Method.Method
	}
	if s.opts.RedirectURL != "" {
		details["redirectUrl"] = s.opts.RedirectURL
	}
	if s.opts.WebhookURL != "" {
		details["webhookUrl"] = s.opts.WebhookURL
	}
	return details
}
