package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/sercha-connect/internal/adapters/driven/httpclient"
	"github.com/custodia-labs/sercha-connect/internal/adapters/driven/settings"
	"github.com/custodia-labs/sercha-connect/internal/adapters/driven/settings/env"
	"github.com/custodia-labs/sercha-connect/internal/adapters/driven/settings/file"
	"github.com/custodia-labs/sercha-connect/internal/adapters/driven/storage/redis"
	"github.com/custodia-labs/sercha-connect/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/sercha-connect/internal/adapters/driving/cli"
	"github.com/custodia-labs/sercha-connect/internal/connectors"
	"github.com/custodia-labs/sercha-connect/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-connect/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-connect/internal/core/services"
	"github.com/custodia-labs/sercha-connect/internal/logger"
	"github.com/custodia-labs/sercha-connect/internal/tracing"
)

// Setting keys read at startup.
const (
	settingRedisURL    = "REDIS_URL"
	settingHTTPTimeout = "HTTP_TIMEOUT"
)

// historyKeep is how many status checks are kept per connector.
const historyKeep = 500

// bootstrap wires settings, stores, connectors and the gateway.
func bootstrap(ctx context.Context, opts cli.Options) (rt *cli.Runtime, err error) {
	var closers []func() error
	closeAll := func() error {
		var errs []error
		for i := len(closers) - 1; i >= 0; i-- {
			errs = append(errs, closers[i]())
		}
		return errors.Join(errs...)
	}
	defer func() {
		if err != nil {
			_ = closeAll()
		}
	}()

	envSettings, err := env.Load()
	if err != nil {
		return nil, err
	}
	fileStore, err := file.NewStore(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("opening settings file: %w", err)
	}
	chain := settings.Chain{envSettings, fileStore}

	watchCtx, stopWatch := context.WithCancel(context.Background())
	closers = append(closers, func() error { stopWatch(); return nil })
	if err := fileStore.Watch(watchCtx); err != nil {
		logger.Warn("settings file will not reload: %v", err)
	}

	shutdownTracing, err := tracing.Setup(ctx, chain)
	if err != nil {
		return nil, err
	}
	closers = append(closers, func() error {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return shutdownTracing(sctx)
	})

	timeout, err := parseTimeout(chain.Get(settingHTTPTimeout))
	if err != nil {
		return nil, err
	}
	deps := connectors.Deps{
		Settings:   chain,
		HTTPClient: httpclient.New(httpclient.Options{Timeout: timeout}),
	}

	registry := services.NewConnectorRegistry()
	services.RegisterBuiltinConnectors(registry, deps)

	store, err := sqlite.NewStore(opts.DataDir)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	closers = append(closers, store.Close)
	logger.Debug("database at %s", store.Path())

	var auth driven.AuthStore = store.AuthStore()
	redisURL := opts.RedisURL
	if redisURL == "" {
		redisURL = chain.Get(settingRedisURL)
	}
	if redisURL != "" {
		rs, err := redis.Connect(ctx, redisURL)
		if err != nil {
			return nil, err
		}
		closers = append(closers, rs.Close)
		auth = rs
	}

	history := store.StatusHistory()
	if err := history.Prune(ctx, historyKeep); err != nil {
		logger.Warn("pruning status history: %v", err)
	}

	gateway := services.NewGatewayService(registry, auth)
	gateway.SetStatusHistory(history)

	return &cli.Runtime{
		Gateway:  gateway,
		Settings: services.NewSettingsService(registry, chain, fileStore),
		Monitor: func(interval time.Duration) driving.StatusMonitor {
			m := services.NewMonitor(gateway, interval)
			m.SetPruning(history, historyKeep)
			return m
		},
		Close: closeAll,
	}, nil
}

// parseTimeout reads a Go duration such as "15s". Empty selects the
// client default.
func parseTimeout(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("invalid %s %q: expected a duration like 15s", settingHTTPTimeout, s)
	}
	return d, nil
}
