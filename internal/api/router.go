package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	redisclient "github.com/Tejax-v2/Mediversal-Appointment-API/internal/redis"
)

type RouterConfig struct {
	Service Service
	PgPool  *pgxpool.Pool
	Redis   *redis.Client
	Limiter redisclient.Limiter
	Logger  *zap.Logger
	Env     string
	Version string
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(cfg.Logger))
	if cfg.Limiter != nil {
		r.Use(RateLimitMiddleware(cfg.Limiter, cfg.Logger))
	}

	// Health endpoints
	health := NewHealthHandler(cfg.PgPool, cfg.Redis, cfg.Env, cfg.Version)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)

	// Appointment endpoints
	r.Get("/appointments/user/{userID}", listUserAppointmentsHandler(cfg.Service))
	r.Get("/appointments/doctor/{doctorID}", listDoctorAppointmentsHandler(cfg.Service))
	r.Post("/appointments", createAppointmentHandler(cfg.Service))
	r.Put("/appointments/{aptID}", updateAppointmentHandler(cfg.Service))
	r.Delete("/appointments/{aptID}", deleteAppointmentHandler(cfg.Service))

	// User and doctor endpoints
	r.Post("/users", createUserHandler(cfg.Service))
	r.Get("/users/{userID}", getUserHandler(cfg.Service))
	r.Delete("/users/{userID}", deleteUserHandler(cfg.Service))
	r.Post("/doctors", createDoctorHandler(cfg.Service))
	r.Get("/doctors/{doctorID}", getDoctorHandler(cfg.Service))
	r.Delete("/doctors/{doctorID}", deleteDoctorHandler(cfg.Service))

	return r
}
