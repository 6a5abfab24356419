package main

import (
	"context"
	"strings"

	coreport "github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/event"
	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/lock"
	notificationport "github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/notification"
	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/session"
	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/usecase"
	notificationUseCase "github.com/amirhossein-jamali/payment-reconciler/internal/domain/usecase/notification"
	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/usecase/reconciliation"
	"github.com/amirhossein-jamali/payment-reconciler/internal/infrastructure/adapter/broker"
	"github.com/amirhossein-jamali/payment-reconciler/internal/infrastructure/adapter/cache"
	"github.com/amirhossein-jamali/payment-reconciler/internal/infrastructure/adapter/notification"
	sessionstore "github.com/amirhossein-jamali/payment-reconciler/internal/infrastructure/adapter/session"
	"github.com/amirhossein-jamali/payment-reconciler/internal/infrastructure/adapter/xredis"
	"github.com/amirhossein-jamali/payment-reconciler/internal/infrastructure/config"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
)

// redisDeps are the components that use Redis when it is enabled
type redisDeps struct {
	enabled  bool
	client   *redis.Client
	settings persistence.SettingsRepository
	sessions session.Store
	locker   lock.Locker
}

func newRedisDeps(ctx context.Context, cfg *config.Config, settings persistence.SettingsRepository, log coreport.Logger) *redisDeps {
	deps := &redisDeps{
		settings: settings,
		sessions: sessionstore.DisabledStore{},
		locker:   xredis.NewLocalLocker(),
	}
	if !cfg.Redis.Enabled {
		return deps
	}

	rdb, err := xredis.NewClient(ctx, xredis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
	if err != nil {
		log.Warn("Redis unavailable, continuing without it", map[string]any{
			"addr":  cfg.Redis.Addr,
			"error": err.Error(),
		})
		return deps
	}

	xredis.ObservePoolStats(ctx, rdb, 0)

	deps.enabled = true
	deps.client = rdb
	deps.settings = cache.NewSettingsCache(cache.NewRedisSettingsStore(rdb), settings, cfg.Payment.BonusCacheTTL, log)
	deps.sessions = sessionstore.NewRedisStore(rdb)
	deps.locker = xredis.NewDistLocker(rdb)
	return deps
}

func (d *redisDeps) Close() {
	if d.client != nil {
		_ = d.client.Close()
	}
}

func newBroker(cfg config.BrokerConfig, log coreport.Logger) (broker.Broker, error) {
	if !strings.EqualFold(cfg.Type, "nats") {
		return broker.NewMemBroker(cfg.BufferSize), nil
	}

	nb, err := broker.NewNatsBroker(cfg.NatsURL, cfg.BufferSize,
		nats.Name("payment-reconciler"),
		nats.MaxReconnects(-1),
		nats.DisconnectHandler(func(nc *nats.Conn) {
			fields := map[string]any{}
			if err := nc.LastError(); err != nil {
				fields["error"] = err.Error()
			}
			log.Warn("NATS disconnected", fields)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info("NATS reconnected", map[string]any{"url": nc.ConnectedUrl()})
		}),
	)
	if err != nil {
		return nil, err
	}
	return nb, nil
}

func newNotificationConsumer(cfg config.NotificationConfig, subscriber event.Subscriber, log coreport.Logger) *notificationUseCase.Consumer {
	var notifier notificationport.Notifier = notification.NewLogNotifier(log)
	if cfg.Enabled && cfg.WebhookURL != "" {
		notifier = notification.NewWebhookNotifier(cfg.WebhookURL, cfg.Timeout, log)
	}
	return notificationUseCase.NewConsumer(subscriber, notifier, log)
}

func newPoller(
	cfg config.PollerConfig,
	uow persistence.UnitOfWork,
	reconciler usecase.PaymentVerificationUseCase,
	locker lock.Locker,
	tp coreport.TimeProvider,
	log coreport.Logger,
) *reconciliation.Poller {
	if !cfg.Enabled {
		return nil
	}
	return reconciliation.NewPoller(uow, reconciler, locker, tp, log, reconciliation.Config{
		Interval:  coreport.Duration(cfg.Interval),
		MinAge:    coreport.Duration(cfg.MinAge),
		MaxAge:    coreport.Duration(cfg.MaxAge),
		BatchSize: cfg.BatchSize,
		Workers:   cfg.Workers,
		LockTTL:   coreport.Duration(cfg.LockTTL),
	})
}
