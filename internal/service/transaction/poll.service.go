package transaction

import (
	"context"
	"time"

	"storefront-checkout/internal/common/enum"
	"storefront-checkout/internal/pkg/logger"
)

const (
	// pollInterval paces the status checks for manual follow-up
	// payments (QR scans, bank redirects awaiting confirmation).
	pollInterval = 2 * time.Second

	// staleAfter is how long a pending order may wait for the payment
	// network before the reconciler expires it.
	staleAfter = 30 * time.Minute
)

// PollOrderStatus watches one order until it reaches a terminal status.
// Cancellation is explicit: callers cancel the context when the buyer
// leaves the follow-up view, and the poll stops on the next tick.
func (s *Service) PollOrderStatus(ctx context.Context, orderID string) (enum.OrderStatusEnum, error) {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		trx, err := s.rp.Transaction.FindByOrderID(ctx, orderID)
		if err != nil {
			return enum.ORDER_UNKNOWN, err
		}
		if trx.Status.IsTerminal() {
			return trx.Status, nil
		}

		select {
		case <-ctx.Done():
			return enum.ORDER_PENDING, ctx.Err()
		case <-ticker.C:
		}
	}
}

// ReconcileStale expires pending orders the payment network never
// confirmed, so polling clients reset instead of spinning forever.
// Returns how many orders were expired.
func (s *Service) ReconcileStale(ctx context.Context, batchSize int) (int, error) {
	stale, err := s.rp.Transaction.FindPendingOlderThan(ctx, staleAfter, batchSize)
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, trx := range stale {
		if err := s.rp.Transaction.UpdateStatus(ctx, trx.OrderID, map[string]any{"status": enum.ORDER_UNKNOWN}); err != nil {
			logger.Error.Printf("expire order %s: %v", trx.OrderID, err)
			continue
		}
		s.resetSessionForRetry(trx.CartKey)
		s.publisher.TryPublish("checkout.payment_timeout", map[string]any{
			"order_id":     trx.OrderID,
			"processor_id": trx.ProcessorID,
		})
		expired++
	}
	return expired, nil
}
