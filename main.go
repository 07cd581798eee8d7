package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"food-marketplace/cache"
	"food-marketplace/config"
	"food-marketplace/controllers"
	"food-marketplace/database"
	"food-marketplace/database/memstore"
	"food-marketplace/events"
	"food-marketplace/helpers"
	"food-marketplace/logger"
	"food-marketplace/metrics"
	"food-marketplace/middleware"
	"food-marketplace/notification"
	"food-marketplace/routes"
	"food-marketplace/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.New(logger.Config{}).Fatal("failed to load config", "error", err)
	}
	log := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Component: "api"})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal("server stopped", "error", err)
	}
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	stores, closeStores, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStores()

	hub := events.NewHub(nil, log)
	defer hub.Close()
	publisher, closeBrokers := openPublishers(ctx, cfg, hub, log)
	defer closeBrokers()

	tokens := helpers.NewTokenHelper(cfg.JWT.SecretKey, cfg.JWT.TTL)

	var throttle services.Throttle = cache.NewMemoryThrottle()
	if cfg.Redis.Addr != "" {
		rdb := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn("redis unreachable, OTP throttle stays in process", "addr", cfg.Redis.Addr, "error", err)
		} else {
			throttle = cache.NewRedisThrottle(rdb, "food_marketplace:")
		}
	}

	var sms services.OtpSender = notification.NewLogSender(log)
	if cfg.Twilio.AccountSID != "" && cfg.Twilio.AuthToken != "" {
		sms = notification.NewTwilioSender(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken, cfg.Twilio.PhoneNumber)
	}

	customerService := services.NewCustomerService(stores.Customers, tokens, sms, throttle, cfg.Redis.OtpCooldown, log)
	cartService := services.NewCartService(stores.Customers, stores.Foods, log)
	ledger := services.NewLedger(stores.Customers, stores.Transactions, stores.Offers, log)
	deliveryService := services.NewDeliveryService(stores.Couriers, stores.Vendors, stores.Orders, tokens, publisher, log)
	orderService := services.NewOrderService(stores, ledger, deliveryService, publisher, log)
	vendorService := services.NewVendorService(stores.Vendors, stores.Foods, stores.Offers, tokens, log)
	shoppingService := services.NewShoppingService(stores.Vendors, stores.Foods, stores.Offers)

	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(log))
	router.Use(metrics.Middleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowOrigins,
		AllowMethods:     []string{"POST", "GET", "PATCH", "DELETE", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "token", "X-API-KEY", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(middleware.Timeout(cfg.Server.RequestTimeout))

	routes.Register(router, routes.Handlers{
		Customer:    controllers.NewCustomerController(customerService, cartService, ledger, orderService, log),
		Vendor:      controllers.NewVendorController(vendorService, orderService, log),
		Delivery:    controllers.NewDeliveryController(deliveryService, log),
		Admin:       controllers.NewAdminController(vendorService, ledger, deliveryService, log),
		Shopping:    controllers.NewShoppingController(shoppingService, log),
		Hub:         hub,
		Tokens:      tokens,
		AdminAPIKey: cfg.Admin.APIKey,
		Log:         log,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "port", cfg.Server.Port, "db_driver", cfg.Database.Driver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func openStores(ctx context.Context, cfg *config.Config, log *logger.Logger) (services.Stores, func(), error) {
	if cfg.Database.Driver == "memory" {
		log.Warn("using in-memory store, data is lost on restart")
		return memstore.New(), func() {}, nil
	}

	client, err := database.DBinstance(ctx, cfg.Database.URL, cfg.Database.Timeout)
	if err != nil {
		return services.Stores{}, nil, err
	}
	db := client.Database(cfg.Database.Name)
	indexCtx, cancel := context.WithTimeout(ctx, cfg.Database.Timeout)
	defer cancel()
	if err := database.EnsureIndexes(indexCtx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return services.Stores{}, nil, err
	}
	log.Info("connected to mongo", "database", cfg.Database.Name)

	closeFn := func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warn("mongo disconnect", "error", err)
		}
	}
	return database.NewStores(client, cfg.Database.Name), closeFn, nil
}

// openPublishers always includes the websocket hub and adds each broker that
// is configured and reachable.
func openPublishers(ctx context.Context, cfg *config.Config, hub *events.Hub, log *logger.Logger) (services.Publisher, func()) {
	sinks := events.Multi{hub}
	var closers []func() error

	if len(cfg.Kafka.Brokers) > 0 {
		kafka, err := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			log.Warn("kafka disabled", "error", err)
		} else {
			sinks = append(sinks, kafka)
			closers = append(closers, kafka.Close)
		}
	}
	if cfg.RabbitMQ.URL != "" {
		rabbit, err := events.NewAMQPPublisher(ctx, cfg.RabbitMQ.URL, cfg.RabbitMQ.ExchangeName, log)
		if err != nil {
			log.Warn("rabbitmq disabled", "error", err)
		} else {
			sinks = append(sinks, rabbit)
			closers = append(closers, rabbit.Close)
		}
	}

	return sinks, func() {
		for _, closeFn := range closers {
			if err := closeFn(); err != nil {
				log.Warn("closing broker", "error", err)
			}
		}
	}
}
