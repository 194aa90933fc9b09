package api

import (
	"encoding/json"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/veracityhq/veracity/internal/api/handlers"
	mw "github.com/veracityhq/veracity/internal/api/middleware"
	"github.com/veracityhq/veracity/internal/buildconfig"
	"github.com/veracityhq/veracity/internal/cache"
	"github.com/veracityhq/veracity/internal/config"
	"github.com/veracityhq/veracity/internal/domain"
	"github.com/veracityhq/veracity/internal/embedding"
	"github.com/veracityhq/veracity/internal/llm"
	"github.com/veracityhq/veracity/internal/service"
	"github.com/veracityhq/veracity/internal/source"
	"github.com/veracityhq/veracity/internal/store"
	"github.com/veracityhq/veracity/internal/webpage"
)

// App holds the router and the digest scheduler for lifecycle management.
type App struct {
	Router       *chi.Mux
	Scheduler    *service.DigestScheduler
	startTime    time.Time
	requestCount atomic.Int64
	errorCount   atomic.Int64
}

func NewApp(db *pgxpool.Pool, c *cache.Cache, logger *zap.Logger) *App {
	// Stores
	verdictStore := store.NewVerdictStore(db)
	analysisStore := store.NewAnalysisStore(db)
	digestStore := store.NewDigestStore(db)

	// External clients via provider factory
	var embeddingClient domain.EmbeddingClient
	var llmClient domain.LLMClient

	llmProvider := config.LLMProvider()
	embeddingProvider := config.EmbeddingProvider()

	var err error
	llmClient, err = llm.NewClient(llmProvider, config.LLMAPIKey())
	if err != nil {
		logger.Warn("LLM client initialization failed", zap.String("provider", llmProvider), zap.Error(err))
	} else {
		logger.Info("LLM client initialized", zap.String("provider", llmProvider))
	}

	embeddingClient, err = embedding.NewClient(embeddingProvider, config.EmbeddingAPIKey())
	if err != nil {
		logger.Warn("Embedding client initialization failed", zap.String("provider", embeddingProvider), zap.Error(err))
	} else {
		logger.Info("Embedding client initialized", zap.String("provider", embeddingProvider))
	}

	// Source adapters and the evidence pipeline
	registry := source.NewRegistry(config.SourceTimeout(), config.PandaScoreToken(), config.EDGARUserAgent())
	collector := service.NewCollector(registry, config.SourceTimeout(), config.CollectorConcurrency(), logger)
	synthesizer := service.NewSynthesizer(llmClient, logger)
	fetcher := webpage.NewFetcher(0)

	// Services
	verifierSvc := service.NewVerifierService(verdictStore, collector, synthesizer, logger)
	analyzerSvc := service.NewAnalyzerService(analysisStore, fetcher, verifierSvc, llmClient, logger)
	digestSvc := service.NewDigestService(digestStore, verdictStore, analysisStore, llmClient, logger)

	// Wire optional embedding recall and the cache layer
	if embeddingClient != nil {
		verifierSvc.SetEmbeddingClient(embeddingClient)
	}
	verifierSvc.SetCache(c)
	analyzerSvc.SetCache(c)
	digestSvc.SetCache(c)

	scheduler := service.NewDigestScheduler(digestSvc, config.DigestCronSpec(), logger)

	// Handlers
	verifyHandler := handlers.NewVerifyHandler(verifierSvc)
	analyzeHandler := handlers.NewAnalyzeHandler(analyzerSvc)
	digestHandler := handlers.NewDigestHandler(digestSvc)
	verdictsHandler := handlers.NewVerdictsHandler(verdictStore)

	r := chi.NewRouter()

	app := &App{
		Router:    r,
		Scheduler: scheduler,
		startTime: time.Now(),
	}

	// Global middleware (order matters)
	r.Use(mw.RequestID)                                                 // Generate/extract request ID first
	r.Use(middleware.RealIP)                                            // Extract real IP
	r.Use(mw.Metrics(&app.requestCount, &app.errorCount))               // Collect metrics
	r.Use(mw.Logging(logger))                                           // Log all requests
	r.Use(middleware.Recoverer)                                         // Recover from panics
	r.Use(mw.RateLimit(config.RateLimitRPS(), config.RateLimitBurst())) // Rate limiting

	// Health (no auth)
	r.Get("/health", healthHandler(db))

	// Metrics (no auth)
	r.Get("/metrics", app.metricsHandler())

	// Authenticated routes
	r.Route("/v1", func(r chi.Router) {
		r.Use(mw.APIKeyAuth(config.APIKey()))

		r.Post("/verify", verifyHandler.Verify)
		r.Post("/analyze", analyzeHandler.Analyze)

		r.Post("/digest", digestHandler.Generate)
		r.Get("/digest/{date}", digestHandler.GetByDate)

		r.Get("/verdicts", verdictsHandler.List)
	})

	return app
}

func healthHandler(db *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(r.Context()); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "error", "error": err.Error()})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok", "version": buildconfig.Version()})
	}
}

func (app *App) metricsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var memStats runtime.MemStats
		runtime.ReadMemStats(&memStats)

		uptime := time.Since(app.startTime)

		response := map[string]any{
			"uptime_seconds": uptime.Seconds(),
			"uptime_human":   uptime.Round(time.Second).String(),
			"request_count":  app.requestCount.Load(),
			"error_count":    app.errorCount.Load(),
			"goroutines":     runtime.NumGoroutine(),
			"memory": map[string]any{
				"alloc_mb":       float64(memStats.Alloc) / 1024 / 1024,
				"total_alloc_mb": float64(memStats.TotalAlloc) / 1024 / 1024,
				"sys_mb":         float64(memStats.Sys) / 1024 / 1024,
				"num_gc":         memStats.NumGC,
			},
			"go_version": runtime.Version(),
			"version":    buildconfig.Version(),
			"commit":     buildconfig.Commit(),
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}

// Ensure stores and clients satisfy interfaces at compile time.
var (
	_ domain.VerdictStore    = (*store.VerdictStore)(nil)
	_ domain.AnalysisStore   = (*store.AnalysisStore)(nil)
	_ domain.DigestStore     = (*store.DigestStore)(nil)
	_ domain.WebpageFetcher  = (*webpage.Fetcher)(nil)
	_ domain.EmbeddingClient = (*embedding.OpenAIClient)(nil)
	_ domain.EmbeddingClient = (*embedding.MockClient)(nil)
	_ domain.LLMClient       = (*llm.OpenAIClient)(nil)
	_ domain.LLMClient       = (*llm.AnthropicClient)(nil)
	_ domain.LLMClient       = (*llm.GeminiClient)(nil)
	_ domain.LLMClient       = (*llm.CerebrasClient)(nil)
	_ domain.LLMClient       = (*llm.MockClient)(nil)
)
