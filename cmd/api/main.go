package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	config "storefront-checkout/configs"
	"storefront-checkout/internal/common/enum"
	database "storefront-checkout/internal/pkg/db"
	"storefront-checkout/internal/pkg/logger"
	"storefront-checkout/internal/pkg/rabbitmq"
	"storefront-checkout/internal/pkg/redis"
	"storefront-checkout/internal/pkg/validation"
	serverApp "storefront-checkout/internal/server"
	transactionService "storefront-checkout/internal/service/transaction"

	"github.com/gin-gonic/gin"
)

func main() {
	logger.Setup()

	env, err := config.GetEnv()
	if err != nil {
		logger.Error.Println("Error getting environment", err)
		panic(err)
	}

	var wg sync.WaitGroup
	ctx, cancel := context.WithCancel(context.Background())

	// Setup Redis
	redisClient, err := setupRedis(ctx, env)
	if err != nil {
		logger.Error.Println("Error setting up Redis", err)
		cancel()
		return
	}

	// Setup RabbitMQ
	rabbit, err := setupRabbitMQ(ctx, env)
	if err != nil {
		logger.Error.Println("Error setting up RabbitMQ", err)
		cancel()
		return
	}

	// Setup Database
	db, err := setupDB(env, redisClient)
	if err != nil {
		logger.Error.Println("Error setting up Database", err)
		cancel()
		return
	}

	// Setup Server
	setupServer(&config.SetupServerDto{
		Rds:    redisClient,
		Env:    env,
		Ctx:    &ctx,
		Cancel: cancel,
		Db:     db,
		Wg:     &wg,
		Rb:     rabbit,
	})
}

func setupRedis(ctx context.Context, env *config.Config) (*redis.Client, error) {
	return redis.Setup(ctx, &redis.Config{
		Host:     env.RedisHost,
		Username: env.RedisUser,
		Port:     env.RedisPort,
		Password: env.RedisPass,
		PoolSize: env.RedisPoolSize,
	})
}

func setupRabbitMQ(ctx context.Context, env *config.Config) (*rabbitmq.ConnectionManager, error) {
	return rabbitmq.NewConnectionManager(ctx, &rabbitmq.Config{
		Username: env.RabbitUser,
		Password: env.RabbitPass,
		Host:     env.RabbitHost,
		Port:     env.RabbitPort,
	})
}

func setupDB(env *config.Config, rds *redis.Client) (*database.Database, error) {
	return database.Setup(&database.Config{
		Host:      env.DBHost,
		Port:      env.DBPort,
		User:      env.DBUser,
		Password:  env.DBPass,
		Database:  env.DBName,
		SSLMode:   "disable",
		Driver:    "postgres",
		Cache:     true,
		Rds:       rds,
		CacheTime: time.Minute,
	})
}

func setupServer(payload *config.SetupServerDto) {
	rds := payload.Rds
	env := payload.Env
	ctx := payload.Ctx
	cancel := payload.Cancel
	wg := payload.Wg
	rb := payload.Rb
	db := payload.Db

	defer func() {
		if rds != nil {
			_ = rds.Close()
		}
		cancel()
		wg.Wait()
	}()

	err := validation.Setup()
	if err != nil {
		logger.Error.Println("Failed to setup validation")
		panic(err)
	}

	e := gin.Default()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", env.AppPort),
		Handler: e,
	}

	publisher, err := rabbitmq.NewPublisher(*ctx, rb)
	if err != nil {
		panic(err)
	}

	gateway := transactionService.GatewayConfig{
		BaseURL:        env.GatewayBaseURL,
		CallbackSecret: env.GatewaySecret,
	}

	serverApp.Setup(e, *ctx, wg, db, rds, rb, publisher, gateway)
	if env.AppEnv != enum.DEVELOPMENT {
		serverApp.InitWorker(*ctx, rds, db, rb, publisher, gateway)
	}

	go func() {
		logger.HTTP.Println("========= Server Started =========")
		logger.HTTP.Println("=========", env.AppPort, "=========")
		if err := server.ListenAndServe(); err != nil {
			logger.Error.Println("Server error:", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	<-sigChan
	logger.HTTP.Println("========= Server Shutting Down =========")
	_ = server.Shutdown(*ctx)
}
