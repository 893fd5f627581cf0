package serverApp

import (
	"context"
	"errors"
	"sync"

	database "storefront-checkout/internal/pkg/db"
	"storefront-checkout/internal/pkg/middleware"
	"storefront-checkout/internal/pkg/rabbitmq"
	"storefront-checkout/internal/pkg/redis"
	"storefront-checkout/internal/repository"
	cartRepo "storefront-checkout/internal/repository/cart"
	checkoutRepo "storefront-checkout/internal/repository/checkout"
	transactionRepo "storefront-checkout/internal/repository/transaction"

	cartHandler "storefront-checkout/internal/handler/cart"
	checkoutHandler "storefront-checkout/internal/handler/checkout"
	meHandler "storefront-checkout/internal/handler/me"
	transactionHandler "storefront-checkout/internal/handler/transaction"
	cartService "storefront-checkout/internal/service/cart"
	checkoutService "storefront-checkout/internal/service/checkout"
	contactService "storefront-checkout/internal/service/contact"
	transactionService "storefront-checkout/internal/service/transaction"

	"github.com/gin-gonic/gin"
)

// Setup initializes the HTTP server with middleware and routes
func Setup(
	engine *gin.Engine,
	ctx context.Context,
	wg *sync.WaitGroup,
	db *database.Database,
	redisClient redis.IRedis,
	rb *rabbitmq.ConnectionManager,
	publisher *rabbitmq.Publisher,
	gateway transactionService.GatewayConfig,
) {
	InitMiddleware(engine)

	// Health check endpoint
	engine.GET("/health", func(c *gin.Context) {
		rabbitmqHealth := "unhealthy"
		redisHealth := "unhealthy"
		databaseHealth := "unhealthy"
		rbCon := rb.GetConnection()

		if db != nil && !db.IsCloseConnection() {
			databaseHealth = "healthy"
		}
		if rbCon != nil && !rbCon.IsClosed() {
			rabbitmqHealth = "healthy"
		}
		if redisClient != nil {
			if _, err := redisClient.Get("health"); err == nil || errors.Is(err, redis.NilType) {
				redisHealth = "healthy"
			}
		}

		c.JSON(200, gin.H{
			"status": 200,
			"service": gin.H{
				"rabbitmq": gin.H{
					"status": rabbitmqHealth,
				},
				"redis": gin.H{
					"status": redisHealth,
				},
				"database": gin.H{
					"status": databaseHealth,
				},
			},
		})
	})

	e := engine.Group(BasePath())
	InitRoutes(e, ctx, wg, db, redisClient, publisher, gateway)
}

// BasePath returns the base API path
func BasePath() string {
	return "/api"
}

// InitMiddleware initializes global middleware
func InitMiddleware(e *gin.Engine) {
	e.Use(middleware.CorsMiddleware())
	e.Use(middleware.RequestInit())
	e.Use(middleware.ResponseInit())
}

func InitRoutes(
	e *gin.RouterGroup,
	ctx context.Context,
	wg *sync.WaitGroup,
	db *database.Database,
	redisClient redis.IRedis,
	publisher *rabbitmq.Publisher,
	gateway transactionService.GatewayConfig,
) {
	// setup repo
	rp := repository.IRepository{
		Cart:        cartRepo.NewRepo(db),
		Checkout:    checkoutRepo.NewRepo(db),
		Transaction: transactionRepo.NewRepo(db),
	}

	// === Cart ===
	CartService := cartService.NewService(ctx, rp, publisher)
	CartHandler := cartHandler.NewHandler(ctx, CartService)
	CartHandler.NewRoutes(e)

	// === Contact ===
	ContactService := contactService.NewService(ctx, rp, CartService, redisClient)
	MeHandler := meHandler.NewHandler(ctx, ContactService)
	MeHandler.NewRoutes(e)

	// === Checkout ===
	CheckoutService := checkoutService.NewService(ctx, rp, CartService, ContactService, redisClient)
	CheckoutHandler := checkoutHandler.NewHandler(ctx, CheckoutService, ContactService)
	CheckoutHandler.NewRoutes(e)

	// === Transaction ===
	dispatcher := transactionService.NewDefaultDispatcher(gateway)
	TransactionService := transactionService.NewService(ctx, rp, CartService, CheckoutService, publisher, dispatcher, gateway)
	TransactionHandler := transactionHandler.NewHandler(ctx, TransactionService)
	TransactionHandler.NewRoutes(e)
}
