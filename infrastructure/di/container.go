package di

import (
	"go.uber.org/zap"

	commandbus "stellium-backend/application/commands/bus"
	"stellium-backend/application/ports"
	querybus "stellium-backend/application/queries/bus"
	"stellium-backend/application/services"
	domainconfig "stellium-backend/domain/config"
	"stellium-backend/infrastructure/config"
	"stellium-backend/pkg/auth"
	"stellium-backend/pkg/observability"
)

// Container holds all application dependencies
type Container struct {
	Config       *config.Config
	DomainConfig *domainconfig.DomainConfig
	Logger       *zap.Logger
	CheckInRepo  ports.CheckInRepository
	JournalRepo  ports.JournalEntryRepository
	ProfileRepo  ports.ProfileRepository
	CacheStore   ports.InsightCacheStore
	BundleCache  ports.BundleCache
	ChartGen     ports.ChartGenerator
	Enricher     ports.NlpEnricher
	EventBus     ports.EventBus
	Pipeline     *services.InsightPipeline
	Handlers     *Handlers
	CommandBus   *commandbus.CommandBus
	QueryBus     *querybus.QueryBus
	Metrics      *observability.Metrics
	RateLimiter  *auth.RateLimiter
	JWTValidator *auth.JWTValidator
}
