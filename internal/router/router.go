package router

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/spendtrace/api/internal/logger"
	"github.com/spendtrace/api/internal/service"
	"github.com/spendtrace/api/internal/storage"
)

const requestTimeout = 30 * time.Second

type router struct {
	service *service.Service
	storage storage.Storage
	logger  *logger.Logger
}

func New(svc *service.Service, stor storage.Storage, log *logger.Logger) http.Handler {
	rt := &router{
		service: svc,
		storage: stor,
		logger:  log,
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(rt.loggingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", rt.healthHandler)
		r.Route("/expenses", func(r chi.Router) {
			r.Post("/", rt.createExpenseHandler)
			r.Get("/", rt.expensesHandler)
		})
	})

	return r
}

func (rt *router) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		rt.logger.Error("Failed to encode response", "error", err)
	}
}

func (rt *router) writeError(w http.ResponseWriter, status int, msg string) {
	rt.writeJSON(w, status, errorResponse{Error: msg})
}
