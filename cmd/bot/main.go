package main

import (
	"context"
	"log"

	"go.uber.org/fx"

	"stonks/internal/modules/alpaca"
	"stonks/internal/modules/config"
	"stonks/internal/modules/exits"
	"stonks/internal/modules/marketdata"
	"stonks/internal/modules/screener"
	"stonks/internal/modules/stream"
	"stonks/internal/notify"
	"stonks/internal/runner"
	"stonks/pkg/logger"
	"stonks/pkg/tracing"
)

func main() {
	if err := logger.Init(); err != nil {
		log.Fatal(err)
	}
	logger.SetServiceName("stonks")
	tracing.SetServiceName("stonks")

	app := fx.New(
		fx.Provide(
			func() context.Context {
				return context.Background()
			},
		),
		config.Module(),
		alpaca.Module(),
		marketdata.Module(),
		exits.Module(),
		screener.Module(),
		notify.Module(),
		stream.Module(),
		runner.Module(),
		fx.Invoke(initTracing),
	)
	app.Run()
}

// initTracing поднимает Jaeger-трейсер, если он сконфигурен.
// Без конфига остаётся глобальный noop-трейсер.
func initTracing(lc fx.Lifecycle, cfg *config.Config) {
	if cfg.Jaeger.Host == "" {
		return
	}
	_, closer, err := tracing.InitTracer(tracing.Config{
		Host: cfg.Jaeger.Host,
		Port: cfg.Jaeger.Port,
	})
	if err != nil {
		logger.Error("init tracer: %v", err)
		return
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			closer()
			return nil
		},
	})
}
