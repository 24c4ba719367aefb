//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"github.com/google/wire"

	"stellium-backend/infrastructure/config"
)

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideDomainConfig,
	ProvideAWSConfig,
	ProvideDynamoDBClient,
	ProvideEventBridgeClient,
	ProvideCloudWatchClient,
	ProvideCheckInRepository,
	ProvideJournalEntryRepository,
	ProvideProfileRepository,
	ProvideInsightCacheStore,
	ProvideBundleCache,
	ProvideChartGenerator,
	ProvideNlpEnricher,
	ProvideEventBus,
	ProvideMetrics,
	ProvideRateLimiter,
	ProvideJWTValidator,
	ProvideInsightPipeline,
	ProvideHandlers,
	ProvideCommandBus,
	ProvideQueryBus,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}
