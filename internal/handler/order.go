package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"paybridge/internal/model"
	"paybridge/internal/service"
)

// OrderCreator persists checkout orders; implemented by service.OrderService.
type OrderCreator interface {
	Create(ctx context.Context, o *model.Order) (int64, error)
}

type createOrderResponse struct {
	ID     int64  `json:"id"`
	Number string `json:"number"`
}

// CreateOrderHandler ingests an order aggregate from the checkout flow.
func CreateOrderHandler(orders OrderCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var order model.Order
		if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		if order.Number == "" || order.CurrencyCode == "" {
			http.Error(w, "number and currency_code required", http.StatusUnprocessableEntity)
			return
		}
		for _, item := range order.Items {
			if item.Quantity <= 0 {
				http.Error(w, "item quantity must be positive", http.StatusUnprocessableEntity)
				return
			}
		}

		id, err := orders.Create(r.Context(), &order)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrOrderAlreadyExists):
				http.Error(w, "order already exists", http.StatusConflict)
			default:
				slog.Error("order create failed", "number", order.Number, "error", err)
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(createOrderResponse{ID: id, Number: order.Number}); err != nil {
			http.Error(w, "encode error", http.StatusInternalServerError)
		}
	}
}
