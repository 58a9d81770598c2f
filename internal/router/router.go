package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/myrteametrics/goldenbatch-api/internal/handler"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// Config wraps the settings of the HTTP router
type Config struct {
	EnableCORS     bool
	RequestTimeout time.Duration
	RateLimit      RateLimitConfig
	LogLevel       zap.AtomicLevel
}

// NewChiRouter initialize a chi.Mux router with all required default middleware (logger, cors, recover, timeout...)
// and every route of the API
func NewChiRouter(config Config) *chi.Mux {
	r := chi.NewRouter()

	if config.EnableCORS {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
			ExposedHeaders:   []string{"Link"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(CustomZapLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.StripSlashes)

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)
	r.Method(http.MethodGet, "/log_level", config.LogLevel)
	r.Method(http.MethodPut, "/log_level", config.LogLevel)

	limiter := NewRateLimiter(config.RateLimit)
	handler.ReplaceViewerLimiter(limiter)

	r.Route("/api/v1", func(rg chi.Router) {
		rg.Get("/isalive", handler.IsAlive)

		// long lived streams are kept out of the request timeout
		rg.Get("/simulation/ws", handler.SimulationWebsocket)
		rg.Get("/simulation/stream", handler.SimulationSSE)

		rg.Group(func(rg chi.Router) {
			if config.RequestTimeout > 0 {
				rg.Use(chimiddleware.Timeout(config.RequestTimeout))
			}
			rg.Group(simulationRoutes(limiter))
			rg.Group(tagRoutes)
			rg.Group(batchConfigRoutes)
			rg.Group(batchRoutes(limiter))
			rg.Group(modelRoutes)
		})
	})

	return r
}

func simulationRoutes(limiter *RateLimiter) func(chi.Router) {
	return func(r chi.Router) {
		r.Get("/simulation", handler.GetSimulation)
		r.Get("/simulation/window", handler.GetSimulationWindow)
		r.Get("/simulation/health", handler.GetSimulationHealth)
		r.Get("/simulation/prediction", handler.GetSimulationPrediction)
		r.Get("/simulation/baseline", handler.GetSimulationBaseline)
		r.Get("/simulation/limits", handler.GetSimulationLimits)

		r.Group(func(r chi.Router) {
			r.Use(limiter.Handler)
			r.Post("/simulation/play", handler.PostSimulationPlay)
			r.Post("/simulation/pause", handler.PostSimulationPause)
			r.Post("/simulation/toggle", handler.PostSimulationToggle)
			r.Post("/simulation/reset", handler.PostSimulationReset)
			r.Put("/simulation/offsets/value", handler.PutSimulationValueOffset)
			r.Put("/simulation/offsets/bound", handler.PutSimulationBoundOffset)
		})
	}
}

func tagRoutes(r chi.Router) {
	r.Get("/tags", handler.GetTags)
	r.Post("/tags", handler.PostTag)
	r.Post("/tags/validate", handler.ValidateTag)
	r.Get("/tags/deploy", handler.GetTagDeployment)
	r.Get("/tags/{id}", handler.GetTag)
	r.Put("/tags/{id}", handler.PutTag)
	r.Delete("/tags/{id}", handler.DeleteTag)
}

func batchConfigRoutes(r chi.Router) {
	r.Get("/batchconfig", handler.GetBatchConfig)
	r.Put("/batchconfig", handler.PutBatchConfig)
	r.Get("/batchconfig/nextid", handler.GetNextBatchID)
}

func batchRoutes(limiter *RateLimiter) func(chi.Router) {
	return func(r chi.Router) {
		r.Get("/batches", handler.GetBatches)
		r.Get("/batches/selection", handler.GetBatchSelection)
		r.Delete("/batches/selection", handler.DeleteBatchSelection)
		r.Get("/batches/{id}", handler.GetBatch)
		r.Post("/batches/{id}/toggle", handler.PostBatchToggle)
		r.With(limiter.Handler).Post("/batches/train", handler.PostTrainModel)
	}
}

func modelRoutes(r chi.Router) {
	r.Get("/models", handler.GetModels)
	r.Get("/models/{id}", handler.GetModel)
	r.Put("/models/{id}/status", handler.PutModelStatus)
	r.Delete("/models/{id}", handler.DeleteModel)
}
