// Package api serves the round, answer and stats operations as a JSON API
package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/KirkDiggler/closest/internal/common/uuid"
	"github.com/KirkDiggler/closest/internal/metrics"
	answerService "github.com/KirkDiggler/closest/internal/services/answer"
	roundService "github.com/KirkDiggler/closest/internal/services/round"
	statsService "github.com/KirkDiggler/closest/internal/services/stats"
)

// Config holds configuration for the API handler
type Config struct {
	RoundService  roundService.Service
	AnswerService answerService.Service
	StatsService  statsService.Service

	// UUID generates request ids, defaults to random UUIDs
	UUID uuid.UUID

	// Metrics is optional
	Metrics metrics.Recorder

	// Gatherer backs /metrics, which is not mounted when nil
	Gatherer prometheus.Gatherer

	// SubmitRate is submissions per second per client address, zero disables limiting
	SubmitRate  float64
	SubmitBurst int

	// Logger is optional, defaults to slog.Default()
	Logger *slog.Logger
}

// Handler routes HTTP requests to the services
type Handler struct {
	rounds   roundService.Service
	answers  answerService.Service
	stats    statsService.Service
	uuid     uuid.UUID
	metrics  metrics.Recorder
	gatherer prometheus.Gatherer
	limiter  *SubmitLimiter
	logger   *slog.Logger
}

// New creates a new API handler
func New(cfg *Config) (*Handler, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RoundService == nil {
		return nil, errors.New("round service cannot be nil")
	}

	if cfg.AnswerService == nil {
		return nil, errors.New("answer service cannot be nil")
	}

	if cfg.StatsService == nil {
		return nil, errors.New("stats service cannot be nil")
	}

	if cfg.SubmitRate < 0 {
		return nil, errors.New("submit rate cannot be negative")
	}

	h := &Handler{
		rounds:   cfg.RoundService,
		answers:  cfg.AnswerService,
		stats:    cfg.StatsService,
		uuid:     cfg.UUID,
		metrics:  cfg.Metrics,
		gatherer: cfg.Gatherer,
		logger:   cfg.Logger,
	}

	if h.uuid == nil {
		h.uuid = uuid.New()
	}
	if h.metrics == nil {
		h.metrics = metrics.Noop{}
	}
	if h.logger == nil {
		h.logger = slog.Default()
	}
	h.logger = h.logger.With("component", "api")

	if cfg.SubmitRate > 0 {
		burst := cfg.SubmitBurst
		if burst < 1 {
			burst = 1
		}
		h.limiter = NewSubmitLimiter(rate.Limit(cfg.SubmitRate), burst)
	}

	return h, nil
}

// Routes builds the router
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(h.requestID)
	r.Use(middleware.Recoverer)
	r.Use(h.observe)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	if h.gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/rounds", func(r chi.Router) {
		r.Get("/", h.listRounds)
		r.Post("/", h.createRound)

		r.Route("/{roundID}", func(r chi.Router) {
			r.Get("/", h.getRound)
			r.Patch("/", h.setRoundStatus)
			r.Delete("/", h.deleteRound)
			r.Get("/view", h.getRoundView)
			r.Get("/stats", h.getRoundStats)
			r.Get("/winners", h.getRoundWinners)
			r.Get("/distribution", h.getRoundDistribution)
			r.Get("/distribution.png", h.getRoundDistributionChart)

			r.Group(func(r chi.Router) {
				if h.limiter != nil {
					r.Use(h.limitSubmissions)
				}
				r.Post("/answers", h.submitAnswer)
				r.Post("/answers/batch", h.submitAnswers)
			})
		})
	})

	r.Route("/answers", func(r chi.Router) {
		r.Get("/", h.listAnswers)
		r.Get("/{answerID}", h.getAnswer)
		r.Patch("/{answerID}", h.updateAnswer)
		r.Delete("/{answerID}", h.deleteAnswer)
	})

	r.Route("/general", func(r chi.Router) {
		r.Get("/", h.getGeneralView)
		r.Get("/stats", h.getGeneralStats)
		r.Get("/distribution", h.getGeneralDistribution)
		r.Get("/distribution.png", h.getGeneralDistributionChart)
	})

	return r
}
