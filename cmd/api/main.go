package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/01moynul/fashionhub/internal/assets"
	"github.com/01moynul/fashionhub/internal/auth"
	"github.com/01moynul/fashionhub/internal/config"
	"github.com/01moynul/fashionhub/internal/database"
	"github.com/01moynul/fashionhub/internal/email"
	"github.com/01moynul/fashionhub/internal/handlers"
	"github.com/01moynul/fashionhub/internal/middleware"
	"github.com/01moynul/fashionhub/internal/orders"
	"github.com/01moynul/fashionhub/internal/routes"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	// 0. --- Load Environment Variables (.env) ---
	if err := godotenv.Load(); err != nil {
		logger.Warn().Msg("could not load .env file, relying on system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		logger = logger.Level(lvl)
	}
	if cfg.JWTSecret == config.DevJWTSecret {
		logger.Warn().Msg("JWT_SECRET not set, using the development key")
	}
	if os.Getenv(gin.EnvGinMode) == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 1. --- Database ---
	dsn, err := cfg.DSN()
	if err != nil {
		logger.Fatal().Err(err).Msg("database settings")
	}
	if err := database.Migrate(dsn); err != nil {
		logger.Fatal().Err(err).Msg("database migration failed")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := database.Open(ctx, dsn)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()
	logger.Info().Msg("database connected")

	if cfg.AdminUsername != "" && cfg.AdminPassword != "" {
		if err := database.SeedAdmin(ctx, db, cfg.AdminUsername, cfg.AdminPassword, cfg.Email.AdminEmail); err != nil {
			logger.Fatal().Err(err).Msg("failed to seed admin user")
		}
		logger.Info().Str("username", cfg.AdminUsername).Msg("admin user ready")
	}

	// 2. --- Services ---
	tokens := auth.NewIssuer(cfg.JWTSecret, cfg.JWTTTL)
	images := assets.NewStore(cfg.UploadDir)
	app := &handlers.Handlers{
		DB:     db,
		Orders: orders.NewService(orders.NewMySQLStore(db), logger, cfg.OrderTimeout),
		Tokens: tokens,
		Images: images,
		Mailer: email.NewNotifier(cfg.Email, logger),
		Log:    logger,
	}

	// 3. --- Router ---
	router := routes.SetupRouter(app, routes.Options{
		Logger:      logger,
		Tokens:      tokens,
		Limiter:     middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		UploadDir:   images.Root(),
		FrontendDir: cfg.FrontendDir,

		TrustedProxies: cfg.TrustedProxies,
	})

	// 4. --- HTTP Server ---
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("FashionHub API listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("listen")
		}
	}()

	// wait signal
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	logger.Info().Msg("shutting down...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}
	if err := app.Wait(shutdownCtx); err != nil {
		logger.Warn().Err(err).Msg("gave up waiting for pending emails")
	}
}
