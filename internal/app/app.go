// Package app assembles the stores, services and HTTP router.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Kumarvenka/ship-app/internal/config"
	"github.com/Kumarvenka/ship-app/internal/modules/assignment"
	"github.com/Kumarvenka/ship-app/internal/modules/auth"
	"github.com/Kumarvenka/ship-app/internal/modules/cab"
	"github.com/Kumarvenka/ship-app/internal/modules/item"
	"github.com/Kumarvenka/ship-app/internal/modules/user"
	"github.com/Kumarvenka/ship-app/internal/platform/database"
	"github.com/Kumarvenka/ship-app/internal/platform/web"
)

const welcomeMessage = "Welcome to OneMarineX Backend API"

// Stores groups the repositories of every module.
type Stores struct {
	Users user.Repository
	Cabs  cab.Repository
	Items item.Repository
}

// MemoryStores returns process-local stores.
func MemoryStores() Stores {
	return Stores{
		Users: user.NewMemoryRepository(),
		Cabs:  cab.NewMemoryRepository(),
		Items: item.NewMemoryRepository(),
	}
}

// PostgresStores returns stores backed by db.
func PostgresStores(db *sql.DB) Stores {
	return Stores{
		Users: user.NewPostgresRepository(db),
		Cabs:  cab.NewPostgresRepository(db),
		Items: item.NewPostgresRepository(db),
	}
}

// App is the assembled API.
type App struct {
	Router http.Handler
	db     *sql.DB
}

// New opens the configured store and builds the router. Close releases the store.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var (
		stores Stores
		db     *sql.DB
	)
	switch cfg.StoreDriver {
	case config.DriverMemory:
		logger.Warn("using in-memory store, data is lost on restart")
		stores = MemoryStores()
	default:
		var err error
		db, err = database.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if cfg.AutoMigrate {
			if err := database.RunMigrations(db); err != nil {
				db.Close()
				return nil, fmt.Errorf("migrate: %w", err)
			}
		}
		logger.Info("connected to database")
		stores = PostgresStores(db)
	}

	router, err := NewRouter(cfg, stores, logger)
	if err != nil {
		if db != nil {
			db.Close()
		}
		return nil, err
	}
	return &App{Router: router, db: db}, nil
}

// Close releases the database connection, if any.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

// NewRouter wires every module onto a chi router over the given stores.
func NewRouter(cfg *config.Config, stores Stores, logger *slog.Logger) (*chi.Mux, error) {
	tokens, err := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return nil, err
	}

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	// No RealIP: the /auth limiter must key on the TCP peer, not on a header.
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		web.Respond(w, http.StatusOK, web.Message{Message: welcomeMessage})
	})

	// ── Identity ────────────────────────────────────────────
	userService := user.NewService(stores.Users, cfg.BcryptCost)
	authService := auth.NewService(userService, stores.Users, tokens, logger)
	limiter := web.RateLimiter(web.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		Burst:             cfg.RateLimitBurst,
	})
	auth.NewHandler(authService, limiter).RegisterRoutes(router)
	gate := auth.NewGate(authService)

	// ── Workflows ───────────────────────────────────────────
	resolver := assignment.NewResolver(stores.Users)

	cabService := cab.NewService(stores.Cabs, stores.Users, resolver, cab.Options{
		VerifyAssignees: cfg.VerifyAssignees,
		Logger:          logger,
	})
	cab.NewHandler(cabService, gate).RegisterRoutes(router)

	itemService := item.NewService(stores.Items, stores.Users, resolver, item.Options{
		VerifyAssignees: cfg.VerifyAssignees,
		Logger:          logger,
	})
	item.NewHandler(itemService, gate).RegisterRoutes(router)

	return router, nil
}
