package app

import (
	"context"
	"database/sql"
	"time"

	"github.com/KevinQuintanilla/ecommerce-aguas-flutter/configs"
	"github.com/KevinQuintanilla/ecommerce-aguas-flutter/internal/adapter/cache"
	httpadapter "github.com/KevinQuintanilla/ecommerce-aguas-flutter/internal/adapter/http"
	"github.com/KevinQuintanilla/ecommerce-aguas-flutter/internal/adapter/http/middleware"
	"github.com/KevinQuintanilla/ecommerce-aguas-flutter/internal/adapter/kafka"
	"github.com/KevinQuintanilla/ecommerce-aguas-flutter/internal/adapter/payment"
	"github.com/KevinQuintanilla/ecommerce-aguas-flutter/internal/adapter/queue"
	"github.com/KevinQuintanilla/ecommerce-aguas-flutter/internal/adapter/repo"
	"github.com/KevinQuintanilla/ecommerce-aguas-flutter/internal/logging"
	"github.com/KevinQuintanilla/ecommerce-aguas-flutter/internal/security"
	"github.com/KevinQuintanilla/ecommerce-aguas-flutter/internal/usecase"
	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	"github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
)

type App struct {
	Router *gin.Engine
}

func InitWithConfig(cfg configs.Config) (*App, func(), error) {
	l := logging.Init(cfg.App.Name, cfg.App.LogFile)

	// init database (pooled; one connection per request lifetime, not
	// one long-lived connection for the whole process)
	db, err := sql.Open("mysql", cfg.MySQL.DSN)
	if err != nil {
		return nil, nil, err
	}
	db.SetConnMaxLifetime(cfg.MySQL.ConnMaxLifetime)
	db.SetMaxOpenConns(cfg.MySQL.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MySQL.MaxIdleConns)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, nil, err
	}

	l.Info("shop-api: starting up")

	// init redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, nil, err
	}
	orderCache := cache.NewRedisCache(rdb, cfg.Redis.StatusTTL, cfg.Redis.EventTTL)

	// init rabbitmq producer
	conn, err := amqp091.Dial(cfg.Rabbit.URL)
	if err != nil {
		return nil, nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		return nil, nil, err
	}
	events, err := queue.NewRabbitProducer(ch, cfg.Rabbit.Exchange)
	if err != nil {
		return nil, nil, err
	}

	// init kafka producer (analytics)
	sp, err := kafka.NewSyncProducer(cfg.Kafka.Brokers)
	if err != nil {
		return nil, nil, err
	}
	status := kafka.NewStatusProducer(sp, cfg.Kafka.TopicEvents)

	// payment provider
	provider := payment.NewClient(cfg.Payment.APIURL, cfg.Payment.APIKey, cfg.Payment.Timeout)
	verifier := security.NewWebhookVerifier(cfg.Payment.WebhookSecret)

	// infra
	orderRepo := repo.NewMySQLOrderRepo(db)
	paymentRepo := repo.NewMySQLPaymentRepo(db)
	customerRepo := repo.NewMySQLCustomerRepo(db)
	catalogRepo := repo.NewMySQLCatalogRepo(db)
	addressRepo := repo.NewMySQLAddressRepo(db)

	// usecases
	createUC := usecase.NewCreateOrder(orderRepo, events, orderCache)
	changeUC := usecase.NewChangeOrderStatus(orderRepo, orderCache, status)
	checkoutUC := usecase.NewStartCheckout(orderRepo, customerRepo, provider,
		cfg.Payment.Currency, cfg.Payment.SuccessURL, cfg.Payment.CancelURL)
	applyUC := usecase.NewApplyPaymentEvent(orderRepo, paymentRepo, orderCache, events, status)

	// handlers + router + middleware
	oh := httpadapter.NewOrderHandler(createUC, changeUC, orderRepo, orderCache)
	ph := httpadapter.NewPaymentHandler(checkoutUC, applyUC, verifier)
	ah := httpadapter.NewAuthHandler(customerRepo, cfg)
	catalogHandler := httpadapter.NewCatalogHandler(catalogRepo)
	dh := httpadapter.NewAddressHandler(addressRepo)
	authz := middleware.NewAuthz(cfg)
	router := httpadapter.NewRouter(oh, ph, ah, catalogHandler, dh, authz)

	cleanup := func() {
		_ = db.Close()
		_ = rdb.Close()
		_ = ch.Close()
		_ = conn.Close()
		_ = sp.Close()
	}

	return &App{Router: router}, cleanup, nil
}
