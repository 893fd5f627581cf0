package serverApp

import (
	"context"
	"fmt"
	"time"

	database "storefront-checkout/internal/pkg/db"
	"storefront-checkout/internal/pkg/logger"
	"storefront-checkout/internal/pkg/rabbitmq"
	"storefront-checkout/internal/pkg/redis"
	"storefront-checkout/internal/repository"
	cartRepo "storefront-checkout/internal/repository/cart"
	checkoutRepo "storefront-checkout/internal/repository/checkout"
	transactionRepo "storefront-checkout/internal/repository/transaction"
	cartService "storefront-checkout/internal/service/cart"
	checkoutService "storefront-checkout/internal/service/checkout"
	contactService "storefront-checkout/internal/service/contact"
	transactionService "storefront-checkout/internal/service/transaction"

	"github.com/panjf2000/ants/v2"
)

const (
	reconcileEvery     = time.Minute
	reconcileBatchSize = 100
)

// InitWorker starts the background workers: currently the stale-order
// reconciler that expires pending transactions the payment network never
// confirmed.
func InitWorker(
	ctx context.Context,
	redisClient redis.IRedis,
	db *database.Database,
	rb *rabbitmq.ConnectionManager,
	publisher *rabbitmq.Publisher,
	gateway transactionService.GatewayConfig,
) {
	poolOpts := ants.Options{
		ExpiryDuration: time.Hour,
		PreAlloc:       true,
		Nonblocking:    true,
		PanicHandler: func(i interface{}) {
			logger.Error.Printf("Worker panic: %v\n", i)
		},
	}

	pool, err := ants.NewPool(10, ants.WithOptions(poolOpts))
	if err != nil {
		panic(fmt.Errorf("failed to create worker pool: %w", err))
	}

	rp := repository.IRepository{
		Cart:        cartRepo.NewRepo(db),
		Checkout:    checkoutRepo.NewRepo(db),
		Transaction: transactionRepo.NewRepo(db),
	}
	CartService := cartService.NewService(ctx, rp, publisher)
	ContactService := contactService.NewService(ctx, rp, CartService, redisClient)
	CheckoutService := checkoutService.NewService(ctx, rp, CartService, ContactService, redisClient)
	dispatcher := transactionService.NewDefaultDispatcher(gateway)
	TransactionService := transactionService.NewService(ctx, rp, CartService, CheckoutService, publisher, dispatcher, gateway)

	err = pool.Submit(func() {
		defer pool.Release()
		runReconciler(ctx, TransactionService)
	})
	if err != nil {
		panic(fmt.Errorf("failed to submit task to pool: %w", err))
	}
}

func runReconciler(ctx context.Context, trxService transactionService.IService) {
	ticker := time.NewTicker(reconcileEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info.Println("Stale-order reconciler stopped")
			return
		case <-ticker.C:
			expired, err := trxService.ReconcileStale(ctx, reconcileBatchSize)
			if err != nil {
				logger.Error.Printf("Stale-order reconcile failed: %v", err)
				continue
			}
			if expired > 0 {
				logger.Info.Printf("Expired %d stale pending orders", expired)
			}
		}
	}
}
