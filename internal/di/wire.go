//go:build wireinject
// +build wireinject

package di

import (
	"TradePulse/pkg/config"
	"TradePulse/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires all dependencies and returns the application.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// infrastructure clients
		ProvideClickHouseClient,
		ProvideCache,
		ProvideKafkaProducer,

		// repositories
		ProvideSignalPublisher,
		ProvideCandleStore,
		ProvideSignalHistory,
		ProvideMarketData,
		ProvideMarketStream,

		// use cases
		ProvideScanUseCase,
		ProvideTickProcessor,
		ProvideTickCollector,
		ProvideCandleConsumer,

		// delivery
		ProvideHTTPHandler,
		ProvideApp,
	)
	return &server.App{}, nil
}
