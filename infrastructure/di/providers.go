package di

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"go.uber.org/zap"

	"stellium-backend/application/commands"
	commandbus "stellium-backend/application/commands/bus"
	"stellium-backend/application/ports"
	"stellium-backend/application/queries"
	querybus "stellium-backend/application/queries/bus"
	"stellium-backend/application/services"
	domainconfig "stellium-backend/domain/config"
	"stellium-backend/infrastructure/config"
	"stellium-backend/infrastructure/external/astro"
	"stellium-backend/infrastructure/external/nlp"
	"stellium-backend/infrastructure/messaging/eventbridge"
	"stellium-backend/infrastructure/persistence/dynamodb"
	"stellium-backend/infrastructure/persistence/memory"
	"stellium-backend/pkg/auth"
	"stellium-backend/pkg/observability"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideDomainConfig creates the insight computation thresholds
func ProvideDomainConfig() *domainconfig.DomainConfig {
	return domainconfig.DefaultDomainConfig()
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideEventBridgeClient creates an EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideCloudWatchClient creates a CloudWatch client
func ProvideCloudWatchClient(awsCfg aws.Config) *awscloudwatch.Client {
	return awscloudwatch.NewFromConfig(awsCfg)
}

// ProvideCheckInRepository creates a check-in repository
func ProvideCheckInRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.CheckInRepository {
	return dynamodb.NewCheckInRepository(client, cfg.DynamoDBTable, logger)
}

// ProvideJournalEntryRepository creates a journal entry repository
func ProvideJournalEntryRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.JournalEntryRepository {
	return dynamodb.NewJournalEntryRepository(client, cfg.DynamoDBTable, logger)
}

// ProvideProfileRepository creates a profile repository
func ProvideProfileRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.ProfileRepository {
	return dynamodb.NewProfileRepository(client, cfg.DynamoDBTable, logger)
}

// ProvideInsightCacheStore creates the persisted insight cache tier
func ProvideInsightCacheStore(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.InsightCacheStore {
	return dynamodb.NewInsightCacheStore(client, cfg.DynamoDBTable, logger)
}

// ProvideBundleCache creates the in-memory insight cache tier
func ProvideBundleCache(cfg *config.Config) ports.BundleCache {
	return memory.NewLRUBundleCache(cfg.BundleCacheSize)
}

// ProvideChartGenerator creates the astro service client
func ProvideChartGenerator(cfg *config.Config, logger *zap.Logger) ports.ChartGenerator {
	return astro.NewChartClient(cfg.AstroServiceURL, cfg.AstroTimeout, logger)
}

// ProvideNlpEnricher creates the NLP service client
func ProvideNlpEnricher(cfg *config.Config, logger *zap.Logger) ports.NlpEnricher {
	return nlp.NewEnricher(cfg.NlpServiceURL, cfg.NlpTimeout, logger)
}

// ProvideEventBus creates an event bus
func ProvideEventBus(client *awseventbridge.Client, cfg *config.Config, logger *zap.Logger) ports.EventBus {
	return eventbridge.NewEventBridgeBus(client, cfg.EventBusName, logger)
}

// ProvideMetrics creates metrics instance
func ProvideMetrics(client *awscloudwatch.Client, cfg *config.Config, logger *zap.Logger) *observability.Metrics {
	namespace := fmt.Sprintf("Stellium/%s", cfg.Environment)
	if !cfg.EnableMetrics {
		client = nil
	}
	return observability.NewMetrics(namespace, client, logger)
}

// ProvideRateLimiter creates the per-user rate limiter
func ProvideRateLimiter() *auth.RateLimiter {
	return auth.NewUserRateLimiter(120)
}

// ProvideJWTValidator creates the JWT validator; nil in development
// when no secret is configured
func ProvideJWTValidator(cfg *config.Config) (*auth.JWTValidator, error) {
	if cfg.JWTSecret == "" {
		if cfg.IsProduction() {
			return nil, fmt.Errorf("JWT_SECRET is required in production")
		}
		return nil, nil
	}
	return auth.NewJWTValidator(auth.JWTConfig{
		SigningMethod: "HS256",
		SecretKey:     cfg.JWTSecret,
		Issuer:        cfg.JWTIssuer,
	})
}

// ProvideInsightPipeline creates the insight computation pipeline
func ProvideInsightPipeline(
	checkInRepo ports.CheckInRepository,
	journalRepo ports.JournalEntryRepository,
	profileRepo ports.ProfileRepository,
	chartGen ports.ChartGenerator,
	enricher ports.NlpEnricher,
	bundleCache ports.BundleCache,
	cacheStore ports.InsightCacheStore,
	eventBus ports.EventBus,
	metrics *observability.Metrics,
	domainCfg *domainconfig.DomainConfig,
	logger *zap.Logger,
) *services.InsightPipeline {
	return services.NewInsightPipeline(
		checkInRepo,
		journalRepo,
		profileRepo,
		chartGen,
		enricher,
		bundleCache,
		cacheStore,
		eventBus,
		metrics,
		domainCfg,
		logger,
	)
}

// Handlers groups the typed command handlers the REST layer invokes
// directly when it needs the created entity back
type Handlers struct {
	LogCheckIn   *commands.LogCheckInHandler
	WriteJournal *commands.WriteJournalEntryHandler
	SaveProfile  *commands.SaveProfileHandler
}

// ProvideHandlers creates the typed command handlers
func ProvideHandlers(
	checkInRepo ports.CheckInRepository,
	journalRepo ports.JournalEntryRepository,
	profileRepo ports.ProfileRepository,
	enricher ports.NlpEnricher,
	eventBus ports.EventBus,
	domainCfg *domainconfig.DomainConfig,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		LogCheckIn:   commands.NewLogCheckInHandler(checkInRepo, eventBus, domainCfg, logger),
		WriteJournal: commands.NewWriteJournalEntryHandler(journalRepo, enricher, eventBus, domainCfg, logger),
		SaveProfile:  commands.NewSaveProfileHandler(profileRepo, logger),
	}
}

// ProvideCommandBus creates a command bus with registered handlers
func ProvideCommandBus(
	checkInRepo ports.CheckInRepository,
	journalRepo ports.JournalEntryRepository,
	enricher ports.NlpEnricher,
	eventBus ports.EventBus,
	domainCfg *domainconfig.DomainConfig,
	logger *zap.Logger,
) (*commandbus.CommandBus, error) {
	commandBus := commandbus.NewCommandBus()
	logging := commandbus.LoggingMiddleware(logger)

	deleteCheckIn := commands.NewDeleteCheckInHandler(checkInRepo, eventBus, logger)
	if err := commandBus.Register(commands.DeleteCheckInCommand{}, commandbus.Chain(
		commandbus.CommandHandlerFunc(func(ctx context.Context, cmd commandbus.Command) error {
			deleteCmd, ok := cmd.(commands.DeleteCheckInCommand)
			if !ok {
				return fmt.Errorf("invalid command type")
			}
			return deleteCheckIn.Handle(ctx, deleteCmd)
		}), logging)); err != nil {
		return nil, err
	}

	updateJournal := commands.NewUpdateJournalEntryHandler(journalRepo, enricher, eventBus, domainCfg, logger)
	if err := commandBus.Register(commands.UpdateJournalEntryCommand{}, commandbus.Chain(
		commandbus.CommandHandlerFunc(func(ctx context.Context, cmd commandbus.Command) error {
			updateCmd, ok := cmd.(commands.UpdateJournalEntryCommand)
			if !ok {
				return fmt.Errorf("invalid command type")
			}
			_, err := updateJournal.Handle(ctx, updateCmd)
			return err
		}), logging)); err != nil {
		return nil, err
	}

	deleteJournal := commands.NewDeleteJournalEntryHandler(journalRepo, eventBus, logger)
	if err := commandBus.Register(commands.DeleteJournalEntryCommand{}, commandbus.Chain(
		commandbus.CommandHandlerFunc(func(ctx context.Context, cmd commandbus.Command) error {
			deleteCmd, ok := cmd.(commands.DeleteJournalEntryCommand)
			if !ok {
				return fmt.Errorf("invalid command type")
			}
			return deleteJournal.Handle(ctx, deleteCmd)
		}), logging)); err != nil {
		return nil, err
	}

	return commandBus, nil
}

// ProvideQueryBus creates a query bus with registered handlers
func ProvideQueryBus(
	checkInRepo ports.CheckInRepository,
	journalRepo ports.JournalEntryRepository,
	profileRepo ports.ProfileRepository,
	pipeline *services.InsightPipeline,
	logger *zap.Logger,
) (*querybus.QueryBus, error) {
	queryBus := querybus.NewQueryBus()
	logging := querybus.LoggingMiddleware(logger)

	getInsights := queries.NewGetInsightsHandler(pipeline)
	if err := queryBus.Register(queries.GetInsightsQuery{}, chainQuery(
		func(ctx context.Context, query querybus.Query) (interface{}, error) {
			getQuery, ok := query.(queries.GetInsightsQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return getInsights.Handle(ctx, getQuery)
		}, logging)); err != nil {
		return nil, err
	}

	listCheckIns := queries.NewListCheckInsHandler(checkInRepo)
	if err := queryBus.Register(queries.ListCheckInsQuery{}, chainQuery(
		func(ctx context.Context, query querybus.Query) (interface{}, error) {
			listQuery, ok := query.(queries.ListCheckInsQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return listCheckIns.Handle(ctx, listQuery)
		}, logging)); err != nil {
		return nil, err
	}

	listEntries := queries.NewListJournalEntriesHandler(journalRepo)
	if err := queryBus.Register(queries.ListJournalEntriesQuery{}, chainQuery(
		func(ctx context.Context, query querybus.Query) (interface{}, error) {
			listQuery, ok := query.(queries.ListJournalEntriesQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return listEntries.Handle(ctx, listQuery)
		}, logging)); err != nil {
		return nil, err
	}

	getProfile := queries.NewGetProfileHandler(profileRepo)
	if err := queryBus.Register(queries.GetProfileQuery{}, chainQuery(
		func(ctx context.Context, query querybus.Query) (interface{}, error) {
			getQuery, ok := query.(queries.GetProfileQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return getProfile.Handle(ctx, getQuery)
		}, logging)); err != nil {
		return nil, err
	}

	return queryBus, nil
}

// chainQuery wraps a handler func with middleware
func chainQuery(handler querybus.QueryHandlerFunc, middleware ...querybus.Middleware) querybus.QueryHandler {
	var h querybus.QueryHandler = handler
	for i := len(middleware) - 1; i >= 0; i-- {
		h = middleware[i](h)
	}
	return h
}
