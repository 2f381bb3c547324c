// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/field-console/backend/config"
	"github.com/field-console/backend/internal/application/usecase/auth"
	"github.com/field-console/backend/internal/application/usecase/collection"
	"github.com/field-console/backend/internal/application/usecase/dashboard"
	"github.com/field-console/backend/internal/application/usecase/member"
	"github.com/field-console/backend/internal/application/usecase/reconciliation"
	"github.com/field-console/backend/internal/application/usecase/sale"
	"github.com/field-console/backend/internal/application/usecase/sheet"
	"github.com/field-console/backend/internal/domain/valueobject"
	"github.com/field-console/backend/internal/infra/server/router"
	"github.com/field-console/backend/internal/integration/adapters"
	"github.com/field-console/backend/internal/integration/entrypoint/controller"
	"github.com/field-console/backend/internal/integration/entrypoint/middleware"
	"github.com/field-console/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Redis  *redis.Client
	Router *router.Router
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Injector {
	// Create repositories
	collectorRepo := persistence.NewCollectorRepository(db)
	tokenRepo := persistence.NewTokenRepository(db)
	memberRepo := persistence.NewMemberRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)
	saleRepo := persistence.NewSaleRepository(db)

	// Create adapters/services
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, tokenRepo)
	summaryCache := adapters.NewSummaryCache(redisClient)

	// Create the reconciliation engine from the configured policy
	classifierConfig := valueobject.DefaultClassifierConfig()
	attributionConfig := valueobject.AttributionConfig{
		ToleranceFraction:      decimal.NewFromFloat(cfg.Attribution.ToleranceFraction),
		ToleranceFloor:         decimal.NewFromInt(int64(cfg.Attribution.ToleranceFloor)),
		SheetDateToleranceDays: cfg.Attribution.SheetDateToleranceDays,
		MinNameKeywordLength:   valueobject.DefaultAttributionConfig().MinNameKeywordLength,
	}
	classifier := reconciliation.NewClassifier(classifierConfig)
	aggregator := reconciliation.NewAggregator(classifierConfig, attributionConfig)

	// Create auth use cases
	registerUseCase := auth.NewRegisterCollectorUseCase(collectorRepo, passwordService, tokenService)
	loginUseCase := auth.NewLoginCollectorUseCase(collectorRepo, passwordService, tokenService)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(tokenService)
	logoutUseCase := auth.NewLogoutCollectorUseCase(tokenService)

	// Create member use cases
	listMembersUseCase := member.NewListMembersUseCase(memberRepo)
	createMemberUseCase := member.NewCreateMemberUseCase(memberRepo)
	memberLedgerUseCase := member.NewGetMemberLedgerUseCase(memberRepo, transactionRepo, saleRepo, aggregator)

	// Create sheet, collection and sale use cases
	buildSheetUseCase := sheet.NewBuildCollectionSheetUseCase(memberRepo, transactionRepo, saleRepo, aggregator)
	recordCollectionUseCase := collection.NewRecordCollectionUseCase(memberRepo, transactionRepo, summaryCache)
	registerSaleUseCase := sale.NewRegisterSaleUseCase(memberRepo, saleRepo, transactionRepo)

	// Create dashboard use cases
	cacheTTL := cfg.Attribution.DashboardCacheTTL
	dailyCollectionUseCase := dashboard.NewGetDailyCollectionUseCase(transactionRepo, summaryCache, cacheTTL)
	dailySavingsUseCase := dashboard.NewGetDailySavingsUseCase(transactionRepo, classifier, summaryCache, cacheTTL)
	outstandingUseCase := dashboard.NewGetOutstandingUseCase(saleRepo, summaryCache, cacheTTL)

	// Create controllers
	healthController := controller.NewHealthController(
		func() bool {
			sqlDB, err := db.DB()
			if err != nil {
				return false
			}
			return sqlDB.Ping() == nil
		},
		func() bool {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return redisClient.Ping(ctx).Err() == nil
		},
	)

	authController := controller.NewAuthController(
		registerUseCase,
		loginUseCase,
		refreshTokenUseCase,
		logoutUseCase,
	)

	memberController := controller.NewMemberController(
		listMembersUseCase,
		createMemberUseCase,
		memberLedgerUseCase,
	)

	sheetController := controller.NewSheetController(buildSheetUseCase)
	collectionController := controller.NewCollectionController(recordCollectionUseCase)
	saleController := controller.NewSaleController(registerSaleUseCase)

	dashboardController := controller.NewDashboardController(
		dailyCollectionUseCase,
		dailySavingsUseCase,
		outstandingUseCase,
	)

	// Create middleware
	// Use higher rate limits for E2E/test environments to prevent flaky tests
	var loginRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		loginRateLimiter = middleware.NewRateLimiterWithConfig(1000, 1*time.Minute)
	} else {
		loginRateLimiter = middleware.NewRateLimiter()
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Create router
	r := router.NewRouter(
		healthController,
		authController,
		memberController,
		sheetController,
		collectionController,
		saleController,
		dashboardController,
		loginRateLimiter,
		authMiddleware,
	)

	return &Injector{
		Config: cfg,
		DB:     db,
		Redis:  redisClient,
		Router: r,
	}
}
