package di

import (
	"context"
	"fmt"
	"time"

	"TradePulse/internal/domain/repository"
	"TradePulse/internal/handler/api"
	mid "TradePulse/internal/middleware"
	internalrepo "TradePulse/internal/repository"
	"TradePulse/internal/service/exchange"
	"TradePulse/internal/usecase"
	"TradePulse/pkg/cache"
	pkgch "TradePulse/pkg/clickhouse"
	"TradePulse/pkg/config"
	xhttp "TradePulse/pkg/http"
	pkgkafka "TradePulse/pkg/kafka"
	applogger "TradePulse/pkg/logger"
	"TradePulse/pkg/metrics"
	"TradePulse/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	return applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
}

// ProvideMetrics creates the Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideClickHouseClient connects to ClickHouse and ensures the schema.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	client, err := pkgch.New(
		pkgch.WithAddr(cfg.ClickHouse.Host, cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithPool(10, 5),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stmts := append(internalrepo.CandleSchema(), internalrepo.SignalSchema()...)
	if err := client.InitSchema(ctx, stmts); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}
	return client, nil
}

// ProvideCache picks layered Redis+memory when Redis is enabled, plain
// memory otherwise.
func ProvideCache(cfg *config.Config) (cache.Store, error) {
	if !cfg.Redis.Enabled {
		return cache.NewMemory(), nil
	}

	redis, err := cache.NewRedis(
		cache.WithRedisAddr(cfg.Redis.Addr),
		cache.WithRedisAuth(cfg.Redis.Password, cfg.Redis.DB),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return cache.NewLayered(redis), nil
}

// ProvideKafkaProducer creates the signals producer.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers...),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithBatching(cfg.Kafka.Producer.BatchSize, cfg.Kafka.Producer.BatchBytes, cfg.Kafka.Producer.Linger),
		pkgkafka.WithWriteTimeout(cfg.Kafka.Producer.WriteTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideSignalPublisher wraps the producer as a domain publisher.
func ProvideSignalPublisher(producer *pkgkafka.Producer, cfg *config.Config, l *applogger.Logger) repository.SignalPublisher {
	return internalrepo.NewKafkaSignalPublisher(producer, cfg.Kafka.SignalsTopic, l)
}

// ProvideCandleStore creates the ClickHouse candle store.
func ProvideCandleStore(ch *pkgch.Client, l *applogger.Logger) repository.CandleStore {
	return internalrepo.NewCHCandleStore(ch, l)
}

// ProvideSignalHistory creates the ClickHouse signal history.
func ProvideSignalHistory(ch *pkgch.Client, l *applogger.Logger) repository.SignalHistory {
	return internalrepo.NewCHSignalHistory(ch, l)
}

// ProvideMarketData creates the exchange REST kline client.
func ProvideMarketData(cfg *config.Config) repository.MarketData {
	return exchange.NewRESTClient(cfg.Exchange.RESTBaseURL, cfg.Exchange.RequestTimeout, cfg.Exchange.MaxRPS)
}

// ProvideMarketStream creates the exchange WebSocket tick stream.
func ProvideMarketStream(cfg *config.Config) repository.MarketStream {
	return exchange.NewStream(
		cfg.Exchange.WebSocketURL,
		cfg.Exchange.Symbols,
		cfg.Exchange.ReconnectDelay,
		cfg.Exchange.PingInterval,
	)
}

// ProvideScanUseCase wires the scan pipeline.
func ProvideScanUseCase(
	market repository.MarketData,
	store repository.CandleStore,
	publisher repository.SignalPublisher,
	history repository.SignalHistory,
	c cache.Store,
	m repository.Metrics,
	l *applogger.Logger,
	cfg *config.Config,
) *usecase.SignalScanUseCase {
	return usecase.NewSignalScanUseCase(market, store, publisher, history, c, m, l,
		usecase.WithCandleCount(cfg.Scan.CandleCount),
		usecase.WithScanTimeout(cfg.Scan.Timeout),
		usecase.WithScanWorkers(cfg.Scan.Workers),
		usecase.WithCacheTTL(cfg.Scan.CacheTTL),
	)
}

// ProvideTickProcessor creates the live tick processor.
func ProvideTickProcessor(c cache.Store, m repository.Metrics) *usecase.TickProcessor {
	return usecase.NewTickProcessor(c, m)
}

// ProvideTickCollector wires the stream through the tick pipeline.
func ProvideTickCollector(stream repository.MarketStream, proc *usecase.TickProcessor, m repository.Metrics, l *applogger.Logger) *usecase.TickCollector {
	pipe := mid.NewTickPipeline(proc, m,
		mid.WithMaxRPS(50),
		mid.WithBufferSize(2000),
	)
	return usecase.NewTickCollector(stream, pipe, m, l)
}

// ProvideCandleConsumer creates the optional candle ingest consumer.
// Returns nil when no candles topic is configured.
func ProvideCandleConsumer(store repository.CandleStore, cfg *config.Config, l *applogger.Logger) (*pkgkafka.Consumer, error) {
	if cfg.Kafka.CandlesTopic == "" {
		return nil, nil
	}
	ingest := usecase.NewCandleIngest(store, l)
	consumer, err := pkgkafka.NewConsumer(ingest.Handle,
		pkgkafka.WithConsumerBrokers(cfg.Kafka.Brokers...),
		pkgkafka.WithConsumerGroup(cfg.Kafka.ConsumerGroup, cfg.Kafka.CandlesTopic),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	return consumer, nil
}

// ProvideHTTPHandler creates the API handler.
func ProvideHTTPHandler(l *applogger.Logger, scan *usecase.SignalScanUseCase, ticks *usecase.TickProcessor, candles repository.CandleStore, cfg *config.Config) xhttp.Handler {
	return api.NewSignalsHandler(l, scan, ticks, candles, cfg.Exchange.Symbols)
}

// ProvideApp assembles the application.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	handler xhttp.Handler,
	collector *usecase.TickCollector,
	consumer *pkgkafka.Consumer,
	publisher repository.SignalPublisher,
	ch *pkgch.Client,
	c cache.Store,
) *server.App {
	return server.New(cfg, l, handler, collector, consumer, publisher, ch, c)
}
