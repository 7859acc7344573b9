package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"paybridge/internal/service"
)

// PendingLister yields order numbers still waiting for gateway submission;
// implemented by service.OrderService.
type PendingLister interface {
	PendingPayment(ctx context.Context, limit int) ([]string, error)
}

// Submitter runs one convert-and-submit attempt; implemented by
// service.PaymentService.
type Submitter interface {
	Submit(ctx context.Context, number string) (*service.PaymentInfo, error)
}

// PaymentWorker drains orders the API did not submit synchronously, for
// example after gateway rate limiting or a restart.
type PaymentWorker struct {
	pending   PendingLister
	payments  Submitter
	interval  time.Duration
	batchSize int
}

func NewPaymentWorker(pending PendingLister, payments Submitter) *PaymentWorker {
	return &PaymentWorker{
		pending:   pending,
		payments:  payments,
		interval:  10 * time.Second,
		batchSize: 5,
	}
}

func (w *PaymentWorker) Start(ctx context.Context) {
	slog.Info("starting payment worker")
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("payment worker stopped")
			return
		case <-ticker.C:
			if err := w.processBatch(ctx); err != nil {
				slog.Error("batch processing failed", "error", err)
			}
		}
	}
}

func (w *PaymentWorker) processBatch(ctx context.Context) error {
	numbers, err := w.pending.PendingPayment(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("list pending payments: %w", err)
	}

	for _, number := range numbers {
		info, err := w.payments.Submit(ctx, number)
		if err != nil {
			if errors.Is(err, service.ErrGatewayRateLimited) {
				slog.Warn("rate limited, deferring batch", "order", number)
				return nil
			}
			slog.Error("payment submission failed", "order", number, "error", err)
			continue
		}
		slog.Info("order submitted", "number", number, "gateway_order", info.GatewayOrderID)
	}

	return nil
}
