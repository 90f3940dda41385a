package bootstrap

import (
	"log"
	"runtime"

	"ai-legalassist-core/internal/client"
	"ai-legalassist-core/internal/config"
	"ai-legalassist-core/internal/pkg/logger"
	"ai-legalassist-core/internal/platform"
	"ai-legalassist-core/internal/repository/implementation"
	"ai-legalassist-core/internal/service"
	"ai-legalassist-core/pkg/llm/factory"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Foreground API (exposed for the UI layer / cmd to query)
	ContextService   service.IContextService
	ObserverService  service.IObserverService
	ClipboardService service.IClipboardService
	CatalogService   service.ICatalogService
	AnalyzerService  service.IAnalyzerService
	ExecutionService service.IExecutionService
	SyncService      service.ISyncService

	// Background Services (Exposed for main.go to run)
	ReachabilityService service.IReachabilityService

	PubSub *gochannel.GoChannel
	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Platform accessors. Off macOS every probe degrades to "nothing
	// observed" instead of failing, so the rest of the pipeline still runs.
	var sysAccessor platform.SystemAccessor
	var clipAccessor platform.ClipboardAccessor
	if runtime.GOOS == "darwin" {
		darwin := platform.NewDarwinAccessor()
		sysAccessor = darwin
		clipAccessor = darwin
	} else {
		noop := platform.NewNoopAccessor()
		sysAccessor = noop
		clipAccessor = noop
		log.Printf("[WARN] No system accessor for %s, observation disabled", runtime.GOOS)
	}

	// 4. Repositories
	queueRepo := implementation.NewQueueRepository(db)
	cacheRepo := implementation.NewCacheRepository(db)

	// 5. Backend + LLM
	backendClient := client.NewBackendClient(cfg.Backend.BaseURL, cfg.Backend.APIKey, cfg.Backend.Timeout)

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 6. Services
	publisherService := service.NewPublisherService(pubSub)
	cacheService := service.NewCacheService(cacheRepo)
	analyzerService := service.NewAnalyzerService()

	prober := service.NewDialProber(cfg.Backend.BaseURL, cfg.Sync.ReachabilityDialTimeout)
	reachabilityService := service.NewReachabilityService(
		prober,
		publisherService,
		cfg.Sync.ReachabilityProbe,
		sysLogger,
	)

	resolver := service.NewConflictResolver(service.ConflictStrategy(cfg.Sync.ConflictStrategy), nil)
	syncService := service.NewSyncService(
		queueRepo,
		backendClient,
		reachabilityService,
		resolver,
		cacheService,
		pubSub,
		cfg.Sync.MaxRetries,
		cfg.Sync.BackoffBase,
		sysLogger,
	)

	catalogService := service.NewCatalogService(
		backendClient,
		cacheService,
		syncService,
		cfg.Backend.CatalogCacheTTL,
		sysLogger,
	)

	observerService := service.NewObserverService(sysAccessor, cfg.Detection.AccessibilityTimeout, sysLogger)
	clipboardService := service.NewClipboardService(
		clipAccessor,
		analyzerService,
		publisherService,
		cfg.Detection.ClipboardPollInterval,
		cfg.Detection.ClipboardHistoryCap,
		sysLogger,
	)

	contextService := service.NewContextService(
		observerService,
		analyzerService,
		catalogService,
		publisherService,
		syncService,
		service.ContextEngineConfig{
			TickInterval:        cfg.Detection.TickInterval,
			DebounceInterval:    cfg.Detection.DebounceInterval,
			WatchInterval:       cfg.Detection.WatchInterval,
			SelectionTimeout:    cfg.Detection.AccessibilityTimeout,
			SelectionDelta:      cfg.Detection.SelectionDelta,
			MaxSuggestedTools:   cfg.Detection.MaxSuggestedTools,
			MaxQuickActions:     cfg.Detection.MaxQuickActions,
			SummaryMaxSentences: cfg.Detection.SummaryMaxSentences,
		},
		sysLogger,
	)

	executionService := service.NewExecutionService(catalogService, llmProvider, syncService, sysLogger)

	return &Container{
		ContextService:      contextService,
		ObserverService:     observerService,
		ClipboardService:    clipboardService,
		CatalogService:      catalogService,
		AnalyzerService:     analyzerService,
		ExecutionService:    executionService,
		SyncService:         syncService,
		ReachabilityService: reachabilityService,
		PubSub:              pubSub,
		Logger:              sysLogger,
	}
}
