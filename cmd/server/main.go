package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ShantamRU/extraordinary-bank/infra"
	"github.com/ShantamRU/extraordinary-bank/infra/cache"
	kafkabus "github.com/ShantamRU/extraordinary-bank/infra/eventbus/kafka"
	"github.com/ShantamRU/extraordinary-bank/infra/notifier"
	infraprovider "github.com/ShantamRU/extraordinary-bank/infra/provider"
	infrarepo "github.com/ShantamRU/extraordinary-bank/infra/repository"
	"github.com/ShantamRU/extraordinary-bank/infra/repository/model"
	"github.com/ShantamRU/extraordinary-bank/pkg/config"
	"github.com/ShantamRU/extraordinary-bank/pkg/eventbus"
	"github.com/ShantamRU/extraordinary-bank/pkg/provider"
	accountsvc "github.com/ShantamRU/extraordinary-bank/pkg/service/account"
	authsvc "github.com/ShantamRU/extraordinary-bank/pkg/service/auth"
	currencysvc "github.com/ShantamRU/extraordinary-bank/pkg/service/currency"
	ledgersvc "github.com/ShantamRU/extraordinary-bank/pkg/service/ledger"
	usersvc "github.com/ShantamRU/extraordinary-bank/pkg/service/user"
	"github.com/ShantamRU/extraordinary-bank/webapi"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load(logger)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	if err := model.Migrate(db); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	uow := infrarepo.NewUoW(db)

	// Rate provider: CBR feed behind a snapshot cache. Redis when configured,
	// in-process otherwise.
	var rateCache provider.RateCache
	if cfg.Redis.Addr != "" {
		rateCache = cache.NewRedisRateCache(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, "bank:", logger)
	} else {
		rateCache = cache.NewMemoryRateCache()
	}
	rates := infraprovider.NewCachedRateProvider(
		infraprovider.NewCBRProvider(cfg.Rates, logger),
		rateCache, cfg.Rates.CacheTTL, logger)

	var publisher eventbus.Publisher
	if len(cfg.Kafka.Brokers) > 0 {
		kp := kafkabus.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer kp.Close() //nolint:errcheck
		publisher = kp
	}

	svcs := webapi.Services{
		Account:  accountsvc.New(uow, logger),
		Auth:     authsvc.New(uow, cfg.Jwt, logger),
		Currency: currencysvc.New(uow, rates, logger),
		Ledger:   ledgersvc.New(uow, publisher, logger),
		User:     usersvc.New(uow, notifier.NewLogNotifier(logger), logger),
	}

	// Daily rate refresh on the configured cron spec.
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Rates.RefreshSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := svcs.Currency.Refresh(ctx); err != nil {
			logger.Error("scheduled rate refresh failed", "error", err)
		}
	}); err != nil {
		return fmt.Errorf("schedule rate refresh: %w", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	app := webapi.NewApp(svcs, cfg)

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port))
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
		return app.ShutdownWithTimeout(10 * time.Second)
	}
}
