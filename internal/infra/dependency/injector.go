// Package dependency provides dependency injection for the application.
package dependency

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/finance-tracker/dashboard/config"
	"github.com/finance-tracker/dashboard/internal/application/adapter"
	"github.com/finance-tracker/dashboard/internal/application/usecase/dashboard"
	"github.com/finance-tracker/dashboard/internal/infra/cache"
	"github.com/finance-tracker/dashboard/internal/infra/server/router"
	"github.com/finance-tracker/dashboard/internal/integration/adapters"
	"github.com/finance-tracker/dashboard/internal/integration/entrypoint/controller"
	"github.com/finance-tracker/dashboard/internal/integration/entrypoint/middleware"
	"github.com/finance-tracker/dashboard/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config       *config.Config
	DB           *gorm.DB
	Router       *router.Router
	TokenService adapter.TokenService

	GetTransactionOverview *dashboard.GetTransactionOverviewUseCase
	GetExpenseBreakdown    *dashboard.GetExpenseBreakdownUseCase
}

// Options carries optional collaborators of the injector.
type Options struct {
	// Redis enables summary memoization and shared rate limiting when set.
	Redis *redis.Client
	// Clock overrides time.Now for the dashboard use cases.
	Clock func() time.Time
	// DBHealthChecker overrides the default ping of db.
	DBHealthChecker func() bool
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB, opts Options) (*Injector, error) {
	location, err := cfg.Dashboard.Location()
	if err != nil {
		return nil, err
	}

	// Create repositories
	dashboardRepo := persistence.NewDashboardRepository(db)

	// Create adapters/services
	tokenService := adapters.NewTokenService(cfg.JWT.Secret)

	var summaryCache adapter.SummaryCache
	var cacheHealthChecker func() bool
	if opts.Redis != nil {
		summaryCache = adapters.NewRedisSummaryCache(opts.Redis)
		cacheHealthChecker = cache.NewRedisFromClient(opts.Redis).HealthCheck
	}

	// Create dashboard use cases
	useCaseOptions := dashboard.Options{
		Clock:       opts.Clock,
		Location:    location,
		CacheTTL:    cfg.Dashboard.SummaryCacheTTL,
		RecentLimit: cfg.Dashboard.RecentLimit,
	}
	getTransactionOverviewUseCase := dashboard.NewGetTransactionOverviewUseCase(dashboardRepo, summaryCache, useCaseOptions)
	getExpenseBreakdownUseCase := dashboard.NewGetExpenseBreakdownUseCase(dashboardRepo, summaryCache, useCaseOptions)
	previewTimeSeriesUseCase := dashboard.NewPreviewTimeSeriesUseCase(useCaseOptions)

	// Create controllers
	dbHealthChecker := opts.DBHealthChecker
	if dbHealthChecker == nil {
		dbHealthChecker = func() bool {
			sqlDB, err := db.DB()
			if err != nil {
				return false
			}
			return sqlDB.Ping() == nil
		}
	}
	healthController := controller.NewHealthController(dbHealthChecker, cacheHealthChecker)

	dashboardController := controller.NewDashboardController(
		getTransactionOverviewUseCase,
		getExpenseBreakdownUseCase,
		previewTimeSeriesUseCase,
		location,
	)

	// Create middleware
	previewRateLimiter := middleware.NewRateLimiterWithConfig(
		opts.Redis,
		cfg.Dashboard.PreviewRateLimit,
		cfg.Dashboard.PreviewRateWindow,
	)
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Create router
	r := router.NewRouter(healthController, dashboardController, previewRateLimiter, authMiddleware)

	return &Injector{
		Config:                 cfg,
		DB:                     db,
		Router:                 r,
		TokenService:           tokenService,
		GetTransactionOverview: getTransactionOverviewUseCase,
		GetExpenseBreakdown:    getExpenseBreakdownUseCase,
	}, nil
}
