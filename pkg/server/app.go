package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"TradePulse/internal/domain/repository"
	"TradePulse/internal/usecase"
	"TradePulse/pkg/cache"
	pkgch "TradePulse/pkg/clickhouse"
	"TradePulse/pkg/config"
	xhttp "TradePulse/pkg/http"
	pkgkafka "TradePulse/pkg/kafka"
	applogger "TradePulse/pkg/logger"
)

// App owns the process lifecycle: HTTP server, tick collector and the
// optional candle consumer, plus graceful teardown of infrastructure.
type App struct {
	cfg       *config.Config
	l         *applogger.Logger
	handler   xhttp.Handler
	collector *usecase.TickCollector
	consumer  *pkgkafka.Consumer
	publisher repository.SignalPublisher
	ch        *pkgch.Client
	cache     cache.Store

	httpServer *xhttp.Server
}

// New assembles the app from wired dependencies. consumer may be nil.
func New(
	cfg *config.Config,
	l *applogger.Logger,
	handler xhttp.Handler,
	collector *usecase.TickCollector,
	consumer *pkgkafka.Consumer,
	publisher repository.SignalPublisher,
	ch *pkgch.Client,
	c cache.Store,
) *App {
	return &App{
		cfg:       cfg,
		l:         l,
		handler:   handler,
		collector: collector,
		consumer:  consumer,
		publisher: publisher,
		ch:        ch,
		cache:     c,
	}
}

// Run starts all components and blocks until an interrupt arrives.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)

	if err := a.collector.Start(ctx); err != nil {
		a.l.Error("tick collector start failed", applogger.Error(err))
		return err
	}
	a.l.Info("tick collector started", applogger.Strings("symbols", a.cfg.Exchange.Symbols))

	if a.consumer != nil {
		go func() {
			if err := a.consumer.Run(ctx); err != nil {
				a.l.Error("candle consumer stopped", applogger.Error(err))
			}
		}()
		a.l.Info("candle consumer started", applogger.String("topic", a.cfg.Kafka.CandlesTopic))
	}

	if err := a.httpServer.Start(); err != nil {
		a.l.Error("http server start failed", applogger.Error(err))
		return err
	}
	a.l.Info("http server started", applogger.Int("port", a.cfg.Server.Port))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.l.Info("shutdown signal received")
	cancel()
	return a.shutdown()
}

func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.collector.Shutdown(ctx); err != nil {
		a.l.Warn("tick collector stop error", applogger.Error(err))
	}

	if a.httpServer != nil {
		if err := a.httpServer.Stop(ctx); err != nil {
			a.l.Error("http shutdown error", applogger.Error(err))
		}
	}

	if a.consumer != nil {
		if err := a.consumer.Close(); err != nil {
			a.l.Warn("candle consumer close error", applogger.Error(err))
		}
	}

	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.l.Warn("signal publisher close error", applogger.Error(err))
		}
	}

	if a.ch != nil {
		if err := a.ch.Close(); err != nil {
			a.l.Warn("clickhouse close error", applogger.Error(err))
		}
	}

	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.l.Warn("cache close error", applogger.Error(err))
		}
	}

	a.l.Info("shutdown complete")
	return nil
}
