package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"paybridge/internal/gateway"
	"paybridge/internal/service"
)

// PaymentSubmitter drives the convert-and-submit flow; implemented by
// service.PaymentService.
type PaymentSubmitter interface {
	Submit(ctx context.Context, number string) (*service.PaymentInfo, error)
	Status(ctx context.Context, number string) (*service.PaymentInfo, error)
}

// CreatePaymentHandler converts the order into the gateway payload, creates
// the gateway order and returns the checkout details.
func CreatePaymentHandler(payments PaymentSubmitter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		number := chi.URLParam(r, "number")
		if number == "" {
			http.Error(w, "order number required", http.StatusBadRequest)
			return
		}

		info, err := payments.Submit(r.Context(), number)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrOrderNotFound):
				http.Error(w, "order not found", http.StatusNotFound)
			case errors.Is(err, gateway.ErrNoCustomer), errors.Is(err, gateway.ErrNoShippingAddress):
				http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			case errors.Is(err, service.ErrGatewayRateLimited):
				http.Error(w, "gateway busy, retry later", http.StatusServiceUnavailable)
			case errors.Is(err, service.ErrPayloadRejected):
				http.Error(w, "payload rejected by gateway", http.StatusBadGateway)
			default:
				slog.Error("payment submission failed", "order", number, "error", err)
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(info); err != nil {
			http.Error(w, "encode error", http.StatusInternalServerError)
		}
	}
}

// PaymentStatusHandler reports the submission state for an order.
func PaymentStatusHandler(payments PaymentSubmitter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		number := chi.URLParam(r, "number")

		info, err := payments.Status(r.Context(), number)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrOrderNotFound):
				http.Error(w, "order not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(info); err != nil {
			http.Error(w, "encode error", http.StatusInternalServerError)
		}
	}
}
