package app

import (
	"context"
	"fmt"
	"time"

	"github.com/phonestore/backend/auth"
	"github.com/phonestore/backend/config"
	"github.com/phonestore/backend/googleauth"
	"github.com/phonestore/backend/handlers"
	"github.com/phonestore/backend/middleware"
	"github.com/phonestore/backend/repositories"
	"github.com/phonestore/backend/repositories/postgres"
	"github.com/phonestore/backend/services"
	"github.com/phonestore/backend/tokencache"
	"go.uber.org/zap"
)

// Dependencies holds all application dependencies.
// This is the central wiring point for dependency injection.
type Dependencies struct {
	// Infrastructure
	Config *config.Config
	DB     *postgres.DB
	Logger *zap.Logger

	// Repository Factory
	RepoFactory *postgres.RepositoryFactory

	// Repositories
	Users    repositories.UserRepository
	Products repositories.ProductRepository
	Orders   repositories.OrderRepository

	// Services
	AuthService    *services.AuthService
	ProductService *services.ProductService
	OrderService   *services.OrderService

	// Handlers
	AuthHandler    *handlers.AuthHandler
	UserHandler    *handlers.UserHandler
	ProductHandler *handlers.ProductHandler
	OrderHandler   *handlers.OrderHandler
	HealthHandler  *handlers.HealthHandler
	OAuthHandler   *auth.Handler

	// Auth
	AuthMiddleware *middleware.AuthMiddleware

	tokenStore *tokencache.RedisStore
}

// NewDependencies creates and wires up all application dependencies
func NewDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	if err := deps.initDatabase(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	deps.initRepositories()
	deps.initAuth(ctx, cfg)
	deps.initServices()
	deps.initHandlers(cfg)

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

// initDatabase initializes the PostgreSQL connection, factory, and schema
func (d *Dependencies) initDatabase(ctx context.Context, cfg *config.Config) error {
	factory, err := postgres.NewRepositoryFactory(cfg, d.Logger)
	if err != nil {
		return fmt.Errorf("failed to create repository factory: %w", err)
	}

	d.RepoFactory = factory
	d.DB = factory.GetDB()

	if err := factory.InitSchema(ctx); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	d.Logger.Info("database connection established",
		zap.String("connection", cfg.Database.LogString()))

	return nil
}

// initRepositories initializes all repository instances
func (d *Dependencies) initRepositories() {
	repos := d.RepoFactory.NewRepositories()

	d.Users = repos.Users
	d.Products = repos.Products
	d.Orders = repos.Orders

	d.Logger.Info("repositories initialized")
}

// initAuth wires the Google ID token validator, the optional Redis-backed
// identity cache, and the request authentication middleware
func (d *Dependencies) initAuth(ctx context.Context, cfg *config.Config) {
	validator := googleauth.NewValidator(googleauth.Config{
		ClientID:    cfg.Google.ClientID,
		CacheTTL:    time.Hour,
		HTTPTimeout: 10 * time.Second,
	})

	var tokenValidator middleware.TokenValidator = validator
	if cfg.Redis.Enabled() {
		store, err := tokencache.NewRedisStore(ctx, cfg.Redis)
		if err != nil {
			d.Logger.Warn("redis unavailable, token caching disabled", zap.Error(err))
		} else {
			d.tokenStore = store
			tokenValidator = tokencache.NewCachingValidator(validator, store, 5*time.Minute, d.Logger)
			d.Logger.Info("token cache enabled", zap.String("addr", cfg.Redis.Addr))
		}
	}

	d.AuthService = services.NewAuthService(validator, d.Users, d.Logger)
	d.AuthMiddleware = middleware.NewAuthMiddleware(tokenValidator, d.AuthService, d.Logger)
}

// initServices initializes the domain services
func (d *Dependencies) initServices() {
	d.ProductService = services.NewProductService(d.Products, d.Logger)
	d.OrderService = services.NewOrderService(d.Orders, d.Logger)
}

// initHandlers initializes the HTTP handlers
func (d *Dependencies) initHandlers(cfg *config.Config) {
	d.AuthHandler = handlers.NewAuthHandler(d.AuthService, d.Logger)
	d.UserHandler = handlers.NewUserHandler(d.AuthService, d.Logger)
	d.ProductHandler = handlers.NewProductHandler(d.ProductService, d.Logger)
	d.OrderHandler = handlers.NewOrderHandler(d.OrderService, d.Logger)
	d.HealthHandler = handlers.NewHealthHandler(d.DB.DB, d.Logger)

	exchanger := auth.NewGoogleTokenExchanger(cfg.Google)
	d.OAuthHandler = auth.NewHandler(cfg.Google, exchanger, d.AuthService, d.Logger)
}

// Close gracefully shuts down all dependencies
func (d *Dependencies) Close(ctx context.Context) error {
	d.Logger.Info("shutting down dependencies")

	var errs []error

	if d.tokenStore != nil {
		if err := d.tokenStore.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close token store: %w", err))
		}
	}

	if d.RepoFactory != nil {
		if err := d.RepoFactory.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		} else {
			d.Logger.Info("database connection closed")
		}
	}

	if d.Logger != nil {
		_ = d.Logger.Sync()
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors during shutdown: %v", errs)
	}

	return nil
}
