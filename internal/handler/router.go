package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

const requestTimeout = 10 * time.Second

// NewRouter builds the chi router with the global middleware stack and all
// API routes.
func NewRouter(h *BookingHandler, log *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer) // recover from panics, return 500
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(Logger(log))
	r.Use(CORS)
	r.Use(chimiddleware.Timeout(requestTimeout))

	r.Get("/health", HealthCheck)

	r.Get("/classes", h.ListClasses)
	r.Post("/book", h.Book)
	r.Get("/bookings", h.ListBookings)

	return r
}
