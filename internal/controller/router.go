package controller

import (
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/cassiomorais/upi-registry/internal/infrastructure/config"
	"github.com/cassiomorais/upi-registry/internal/infrastructure/observability"
	customMW "github.com/cassiomorais/upi-registry/internal/middleware"
	"github.com/cassiomorais/upi-registry/internal/repository/postgres"
	"github.com/cassiomorais/upi-registry/internal/service"
)

type RouterDeps struct {
	Pool            *pgxpool.Pool
	RedisClient     *redis.Client
	UserService     *service.UserService
	BankService     *service.BankService
	AccountService  *service.AccountService
	PspService      *service.PspService
	VpaService      *service.VpaService
	IdempotencyRepo *postgres.IdempotencyRepository
	IdempotencyTTL  time.Duration
	Metrics         *observability.Metrics
	ServerConfig    config.ServerConfig
}

func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(customMW.Tracing())
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.ServerConfig.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Idempotency-Key"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: deps.ServerConfig.CORS.AllowCredentials,
		MaxAge:           300,
	}))
	if deps.ServerConfig.RateLimitPerMin > 0 {
		r.Use(customMW.RateLimit(deps.ServerConfig.RateLimitPerMin))
	}
	r.Use(customMW.Metrics(deps.Metrics))

	healthH := NewHealthController(deps.Pool, deps.RedisClient)
	userH := NewUserController(deps.UserService)
	bankH := NewBankController(deps.BankService)
	accountH := NewAccountController(deps.AccountService)
	pspH := NewPspController(deps.PspService)
	vpaH := NewVpaController(deps.VpaService)

	r.Get("/health", healthH.Health)
	r.Get("/health/live", healthH.Liveness)
	r.Get("/health/ready", healthH.Readiness)

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		// Replay protection for the money-mutating endpoints.
		idempotencyMW := customMW.Idempotency(deps.IdempotencyRepo, deps.IdempotencyTTL)

		// Users
		r.Post("/users/register", userH.Register)
		r.Get("/users/{userID}", userH.Get)
		r.Get("/users/phone/{phone}", userH.GetByPhone)
		r.Put("/users/{userID}", userH.Update)
		r.Put("/users/{userID}/change-password", userH.ChangePassword)
		r.Post("/users/verify-password", userH.VerifyPassword)
		r.Get("/users/check-phone/{phone}", userH.CheckPhone)
		r.Put("/users/{userID}/kyc", userH.UpdateKyc)
		r.Put("/users/{userID}/login", userH.RecordLogin)
		r.Delete("/users/{userID}", userH.Delete)

		// Banks
		r.Post("/banks", bankH.Register)
		r.Get("/banks", bankH.List)
		r.Get("/banks/upi-enabled", bankH.ListUpiEnabled)
		r.Get("/banks/code/{bankCode}", bankH.GetByCode)
		r.Get("/banks/{bankID}", bankH.Get)

		// Bank accounts
		r.Post("/accounts/link", accountH.Link)
		r.Get("/accounts/user/{userID}/primary", accountH.GetPrimary)
		r.Get("/accounts/user/{userID}", accountH.ListByUser)
		r.Get("/accounts/{accountID}", accountH.Get)
		r.Get("/accounts/{accountID}/balance", accountH.GetBalance)
		r.Put("/accounts/{accountID}/set-primary", accountH.SetPrimary)
		r.With(idempotencyMW).Post("/accounts/{accountID}/credit", accountH.Credit)
		r.With(idempotencyMW).Post("/accounts/{accountID}/debit", accountH.Debit)
		r.Put("/accounts/{accountID}/verify", accountH.Verify)
		r.Delete("/accounts/{accountID}", accountH.Delete)

		// PSPs
		r.Post("/psps", pspH.Register)
		r.Get("/psps", pspH.List)
		r.Get("/psps/handle/{pspHandle}", pspH.GetByHandle)
		r.Get("/psps/{pspID}", pspH.Get)

		// VPAs
		r.Post("/vpas", vpaH.Create)
		r.Post("/vpas/verify", vpaH.Verify)
		r.Get("/vpas/check-availability/{vpaAddress}", vpaH.CheckAvailability)
		r.Get("/vpas/address/{vpaAddress}", vpaH.GetByAddress)
		r.Get("/vpas/user/{userID}/primary", vpaH.GetPrimary)
		r.Get("/vpas/user/{userID}", vpaH.ListByUser)
		r.Get("/vpas/{vpaID}", vpaH.Get)
		r.Put("/vpas/{vpaID}/set-primary", vpaH.SetPrimary)
		r.Put("/vpas/{vpaID}/link-account", vpaH.LinkAccount)
		r.Put("/vpas/{vpaID}/verify", vpaH.MarkVerified)
		r.Delete("/vpas/{vpaID}", vpaH.Delete)
	})

	return r
}
