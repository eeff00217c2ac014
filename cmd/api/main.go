package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/cassiomorais/upi-registry/internal/bootstrap"
	"github.com/cassiomorais/upi-registry/internal/controller"
	"github.com/cassiomorais/upi-registry/internal/idgen"
	infraRedis "github.com/cassiomorais/upi-registry/internal/infrastructure/redis"
	"github.com/cassiomorais/upi-registry/internal/repository/postgres"
	"github.com/cassiomorais/upi-registry/internal/service"
)

func main() {
	ctx := context.Background()

	app, err := bootstrap.New(ctx, "upi-registry-api", "upi_registry")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bootstrap: %v\n", err)
		os.Exit(1)
	}
	defer app.Close()

	// --- Repositories ---
	userRepo := postgres.NewUserRepository(app.Pool)
	bankRepo := postgres.NewBankRepository(app.Pool)
	accountRepo := postgres.NewAccountRepository(app.Pool)
	pspRepo := postgres.NewPspRepository(app.Pool)
	vpaRepo := postgres.NewVpaRepository(app.Pool)
	seqRepo := postgres.NewSequenceRepository(app.Pool)
	idempotencyRepo := postgres.NewIdempotencyRepository(app.Pool)
	txManager := postgres.NewTxManager(app.Pool)

	// --- Infrastructure ---
	gen := idgen.New(seqRepo)
	locker := infraRedis.NewLockManager(app.Redis, app.Config.Registry.PrimaryLockTTL)
	vpaCache := infraRedis.NewCache(app.Redis, "vpa-verify", app.Config.Registry.VpaCacheTTL)

	// --- Services ---
	userService := service.NewUserService(userRepo, gen, txManager,
		app.Config.Registry.BcryptCost, app.Metrics, app.Logger)
	bankService := service.NewBankService(bankRepo, gen, txManager, app.Metrics, app.Logger)
	accountService := service.NewAccountService(accountRepo, bankRepo, userRepo,
		txManager, locker, app.Config.Registry.MaxAccountsPerUser, app.Metrics, app.Logger)
	pspService := service.NewPspService(pspRepo, gen, txManager, app.Metrics, app.Logger)
	vpaService := service.NewVpaService(vpaRepo, pspRepo, accountRepo, userRepo,
		gen, txManager, locker, vpaCache, app.Metrics, app.Logger)

	// --- Build router ---
	router := controller.NewRouter(controller.RouterDeps{
		Pool:            app.Pool,
		RedisClient:     app.Redis,
		UserService:     userService,
		BankService:     bankService,
		AccountService:  accountService,
		PspService:      pspService,
		VpaService:      vpaService,
		IdempotencyRepo: idempotencyRepo,
		IdempotencyTTL:  app.Config.Registry.IdempotencyTTL,
		Metrics:         app.Metrics,
		ServerConfig:    app.Config.Server,
	})

	// --- HTTP server ---
	addr := fmt.Sprintf(":%d", app.Config.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  app.Config.Server.ReadTimeout,
		WriteTimeout: app.Config.Server.WriteTimeout,
		IdleTimeout:  app.Config.Server.IdleTimeout,
	}

	go func() {
		app.Logger.Info().Str("addr", addr).Msg("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.Logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	app.Logger.Info().Msg("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		app.Logger.Error().Err(err).Msg("Server forced to shutdown")
	}
	app.Logger.Info().Msg("Server exited")
}
