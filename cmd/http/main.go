package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fekuna/omnipos-backoffice-service/config"
	"github.com/fekuna/omnipos-backoffice-service/internal/auth"
	"github.com/fekuna/omnipos-backoffice-service/pkg/broker"
	"github.com/fekuna/omnipos-backoffice-service/pkg/cache"
	"github.com/fekuna/omnipos-backoffice-service/pkg/database/postgres"
	"github.com/fekuna/omnipos-backoffice-service/pkg/logger"
	"github.com/fekuna/omnipos-backoffice-service/pkg/middleware"
	"github.com/fekuna/omnipos-backoffice-service/pkg/search"

	accessH "github.com/fekuna/omnipos-backoffice-service/internal/access/handler"
	accessRepoPkg "github.com/fekuna/omnipos-backoffice-service/internal/access/repository"
	accessUCPkg "github.com/fekuna/omnipos-backoffice-service/internal/access/usecase"

	backupRepoPkg "github.com/fekuna/omnipos-backoffice-service/internal/backup/repository"

	custH "github.com/fekuna/omnipos-backoffice-service/internal/customer/handler"
	custRepoPkg "github.com/fekuna/omnipos-backoffice-service/internal/customer/repository"
	custUCPkg "github.com/fekuna/omnipos-backoffice-service/internal/customer/usecase"

	"github.com/fekuna/omnipos-backoffice-service/internal/order"
	orderH "github.com/fekuna/omnipos-backoffice-service/internal/order/handler"
	orderPubPkg "github.com/fekuna/omnipos-backoffice-service/internal/order/publisher"
	orderRepoPkg "github.com/fekuna/omnipos-backoffice-service/internal/order/repository"
	orderUCPkg "github.com/fekuna/omnipos-backoffice-service/internal/order/usecase"

	pmH "github.com/fekuna/omnipos-backoffice-service/internal/paymentmethod/handler"
	pmRepoPkg "github.com/fekuna/omnipos-backoffice-service/internal/paymentmethod/repository"
	pmUCPkg "github.com/fekuna/omnipos-backoffice-service/internal/paymentmethod/usecase"

	prodH "github.com/fekuna/omnipos-backoffice-service/internal/product/handler"
	prodRepoPkg "github.com/fekuna/omnipos-backoffice-service/internal/product/repository"
	prodUCPkg "github.com/fekuna/omnipos-backoffice-service/internal/product/usecase"

	txH "github.com/fekuna/omnipos-backoffice-service/internal/transaction/handler"
	txRepoPkg "github.com/fekuna/omnipos-backoffice-service/internal/transaction/repository"
	txUCPkg "github.com/fekuna/omnipos-backoffice-service/internal/transaction/usecase"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	// Money goes over the wire as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          "json",
		Level:             "info",
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}

	if cfg.Server.AppEnv == "development" || cfg.Server.AppEnv == "dev" {
		logConfig.IsDevelopment = true
		logConfig.Encoding = cfg.Logger.Encoding
		logConfig.Level = cfg.Logger.Level
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 3. Connect to Database
	db, err := postgres.NewPostgres(&postgres.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	// 4. Initialize Repositories
	accessRepo := accessRepoPkg.NewPGRepository(db)
	backupRepo := backupRepoPkg.NewPGRepository(db)
	custRepo := custRepoPkg.NewPGRepository(db)
	orderRepo := orderRepoPkg.NewPGRepository(db)
	pmRepo := pmRepoPkg.NewPGRepository(db)
	prodRepo := prodRepoPkg.NewPGRepository(db)
	txRepo := txRepoPkg.NewPGRepository(db)

	// 5. Initialize Redis (optional)
	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Warn("Could not connect to Redis, product cache disabled", zap.Error(err))
		redisClient = nil
	} else {
		defer redisClient.Close()
		appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
	}

	// 6. Initialize Kafka Producer (optional)
	var orderEvents order.EventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		producer := broker.NewProducer(&broker.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.OrderTopic,
		})
		defer producer.Close()
		orderEvents = orderPubPkg.NewKafkaPublisher(producer)
		appLogger.Info("Kafka producer ready", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.OrderTopic))
	}

	// 7. Initialize Elasticsearch (optional)
	var esClient *search.Client
	if len(cfg.Elastic.Addresses) > 0 {
		esClient, err = search.NewClient(&search.Config{
			Addresses: cfg.Elastic.Addresses,
			Username:  cfg.Elastic.Username,
			Password:  cfg.Elastic.Password,
		})
		if err != nil {
			appLogger.Warn("Could not connect to Elasticsearch (Search features might be limited)", zap.Error(err))
			esClient = nil
		} else {
			appLogger.Info("Connected to Elasticsearch", zap.Strings("addresses", cfg.Elastic.Addresses))
		}
	}

	// 8. Initialize UseCases
	gate := accessUCPkg.NewAccessGate(accessRepo, appLogger)
	custUC := custUCPkg.NewCustomerUseCase(custRepo, appLogger)
	orderUC := orderUCPkg.NewOrderUseCase(orderRepo, txRepo, backupRepo, orderEvents, appLogger)
	pmUC := pmUCPkg.NewPaymentMethodUseCase(pmRepo)
	prodUC := prodUCPkg.NewProductUseCase(prodRepo, redisClient, cfg.Redis.ProductCacheTTL, esClient, appLogger)
	txUC := txUCPkg.NewTransactionUseCase(txRepo, appLogger)

	// 9. Initialize Router
	if !logConfig.IsDevelopment {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(appLogger),
		middleware.Recovery(appLogger),
		middleware.CORS(cfg.Server.AllowedOrigins),
	)
	router.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	api := router.Group("", auth.Middleware(auth.NewVerifier(cfg.JWT.SecretKey), appLogger))
	accessH.NewAccessHandler(gate, appLogger).RegisterRoutes(api)
	custH.NewCustomerHandler(custUC, gate, appLogger).RegisterRoutes(api)
	orderH.NewOrderHandler(orderUC, gate, appLogger).RegisterRoutes(api)
	pmH.NewPaymentMethodHandler(pmUC, gate, appLogger).RegisterRoutes(api)
	prodH.NewProductHandler(prodUC, gate, appLogger).RegisterRoutes(api)
	txH.NewTransactionHandler(txUC, gate, appLogger).RegisterRoutes(api)

	// 10. Start HTTP Server
	port := cfg.Server.HTTPPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:              port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	appLogger.Info("Starting HTTP server", zap.String("port", port))

	// Graceful Shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("server shutdown failed", zap.Error(err))
	}
	appLogger.Info("Server stopped")
}
