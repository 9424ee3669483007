package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	"cloud.google.com/go/datastore"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/procurehub/procurement-gateway/internal/config"
	"github.com/procurehub/procurement-gateway/internal/database"
	"github.com/procurehub/procurement-gateway/internal/handler"
	"github.com/procurehub/procurement-gateway/internal/logger"
	"github.com/procurehub/procurement-gateway/internal/repository"
	"github.com/procurehub/procurement-gateway/internal/service"
	"github.com/procurehub/procurement-gateway/pkg/poexcel"
)

type App struct {
	Echo *echo.Echo
	DB   *sql.DB
}

func NewApp() *App {
	return &App{
		Echo: echo.New(),
	}
}

func (a *App) Initialize(ctx context.Context) error {
	// Load environment configuration
	if err := config.LoadEnvConfig(); err != nil {
		return fmt.Errorf("failed to load env config: %w", err)
	}

	// Refuse to start with an empty signing key; every token would
	// otherwise verify against an empty HMAC secret.
	if config.DefaultEnvConfig.AUTH_JWT_SECRET == "" {
		return fmt.Errorf("AUTH_JWT_SECRET must be set")
	}

	// Initialize logging
	logger.InitLogging(config.DefaultEnvConfig.LOG_FILE_PATH)
	logger.InfoLog(ctx, "Environment variables loaded successfully")

	// Initialize database connection
	dbConfig := database.Config{
		Host:            config.DefaultEnvConfig.DB_HOST,
		Port:            config.DefaultEnvConfig.DB_PORT,
		User:            config.DefaultEnvConfig.DB_USER,
		Password:        config.DefaultEnvConfig.DB_PASSWORD,
		DBName:          config.DefaultEnvConfig.DB_NAME,
		SSLMode:         config.DefaultEnvConfig.DB_SSL_MODE,
		MaxOpenConns:    config.DefaultEnvConfig.DB_MAX_OPEN_CONNS,
		MaxIdleConns:    config.DefaultEnvConfig.DB_MAX_IDLE_CONNS,
		ConnMaxLifetime: config.DefaultEnvConfig.DB_CONN_MAX_LIFETIME,
	}

	db, err := database.NewPostgresDB(ctx, dbConfig)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	a.DB = db

	// Optional logo asset store; exports fall back to a placeholder cell
	// when the store is unreachable or unconfigured.
	var logoStore *database.LogoStore
	if projectID := config.DefaultEnvConfig.GCP_PROJECT_ID; projectID != "" {
		dsClient, err := datastore.NewClient(ctx, projectID)
		if err != nil {
			logger.WarnLog(ctx, "logo store unavailable, using placeholders: %v", err)
		} else {
			logoStore = database.WrapLogoStore(dsClient)
		}
	}

	// Optional search mirror of the export-history ledger
	var indexer *database.HistoryIndexer
	if url := config.DefaultEnvConfig.ELASTIC_URL; url != "" {
		ix, err := database.NewHistoryIndexer(url)
		if err != nil {
			logger.WarnLog(ctx, "history indexer unavailable: %v", err)
		} else {
			indexer = ix
		}
	}
	var searcher service.HistorySearcher
	var search handler.HistorySearch
	if indexer != nil {
		searcher = indexer
		search = indexer
	}

	// Initialize dependencies
	orderRepo := repository.NewOrderRepository(db)
	historyRepo := repository.NewHistoryRepository(db)
	logos := poexcel.NewLogoCache(logoSource(logoStore))
	issuer := poexcel.IssuerInfo{
		Name:    config.DefaultEnvConfig.ISSUER_NAME,
		Address: config.DefaultEnvConfig.ISSUER_ADDRESS,
		Email:   config.DefaultEnvConfig.ISSUER_EMAIL,
		Phone:   config.DefaultEnvConfig.ISSUER_PHONE,
	}
	exportSvc := service.NewExportService(orderRepo, historyRepo, searcher, logos, issuer, config.DefaultEnvConfig.EXPORT_MAX_BATCH)
	exportHandler := handler.NewExportHandler(exportSvc)
	historyHandler := handler.NewHistoryHandler(historyRepo, search)

	// Register Middlewares
	a.RegisterMiddlewares()

	// Register Routes
	a.RegisterRoutes(exportHandler, historyHandler, []byte(config.DefaultEnvConfig.AUTH_JWT_SECRET))

	return nil
}

// logoSource avoids handing a typed-nil *LogoStore to the cache
func logoSource(store *database.LogoStore) poexcel.LogoSource {
	if store == nil {
		return nil
	}
	return store
}

func (a *App) RegisterMiddlewares() {
	a.Echo.Use(middleware.Logger())
	a.Echo.Use(middleware.Recover())
	a.Echo.Use(middleware.CORS())
}

func (a *App) RegisterRoutes(exportHandler *handler.ExportHandler, historyHandler *handler.HistoryHandler, jwtSecret []byte) {
	orders := a.Echo.Group("/orders", handler.BearerAuth(jwtSecret))
	orders.POST("/export", exportHandler.ExportOrders)
	orders.GET("/:id/exports", historyHandler.GetOrderExports)
}

func (a *App) Run() error {
	defer a.DB.Close()
	return a.Echo.Start(":" + config.DefaultEnvConfig.APP_PORT)
}
