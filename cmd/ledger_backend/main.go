package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"time"

	portsrepo "github.com/corebank/ledger/internal/core/ports/repositories"
	"github.com/corebank/ledger/internal/core/services"
	"github.com/corebank/ledger/internal/handlers"
	"github.com/corebank/ledger/internal/middleware"
	"github.com/corebank/ledger/internal/repositories/database/pgsql"
	"github.com/corebank/ledger/pkg/config"
	"github.com/corebank/ledger/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	setupAPIV1Routes(r, dbPool)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies all pending "up" migrations over a temporary
// database/sql connection using the pgx stdlib driver.
func runMigrations(databaseURL string, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	upErr := m.Up()
	if upErr != nil && upErr != migrate.ErrNoChange {
		return upErr
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if upErr == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}

func setupAPIV1Routes(r *gin.Engine, dbPool *pgxpool.Pool) {
	v1 := r.Group("/api/v1")

	repos := pgsql.NewRepositoryProvider(dbPool)

	addAccountAPI(v1, repos)
	addTransactionAPI(v1, repos)
	addLedgerAPI(v1, repos)
}

func addAccountAPI(v1 *gin.RouterGroup, repos portsrepo.RepositoryProvider) {
	accountService := services.NewAccountService(repos.AccountRepo)
	accountHandler := handlers.NewAccountHandler(accountService)

	accounts := v1.Group("/accounts")
	{
		accounts.POST("/", accountHandler.OpenAccount)
		accounts.GET("/", accountHandler.ListAccounts)
		accounts.GET("/:accountID", accountHandler.GetAccount)
		accounts.POST("/:accountID/freeze", accountHandler.FreezeAccount)
		accounts.POST("/:accountID/unfreeze", accountHandler.UnfreezeAccount)
		accounts.POST("/:accountID/close", accountHandler.CloseAccount)
	}
}

func addTransactionAPI(v1 *gin.RouterGroup, repos portsrepo.RepositoryProvider) {
	transactionService := services.NewTransactionService(repos.TransactionRepo, repos.AccountRepo)
	transactionHandler := handlers.NewTransactionHandler(transactionService)

	transactions := v1.Group("/transactions")
	{
		transactions.POST("/", transactionHandler.CreateTransaction)
		transactions.GET("/:transactionID", transactionHandler.GetTransaction)
		transactions.POST("/:transactionID/authorize", transactionHandler.AuthorizeTransaction)
		transactions.POST("/:transactionID/reject", transactionHandler.RejectTransaction)
	}

	accounts := v1.Group("/accounts")
	{
		accounts.GET("/:accountID/transactions", transactionHandler.ListTransactionsByAccount)
		accounts.GET("/:accountID/transactions/stats", transactionHandler.GetTransactionStats)
	}
}

func addLedgerAPI(v1 *gin.RouterGroup, repos portsrepo.RepositoryProvider) {
	ledgerService := services.NewLedgerService(repos.JournalRepo, repos.AccountRepo)
	ledgerHandler := handlers.NewLedgerHandler(ledgerService)

	ledger := v1.Group("/ledger")
	{
		ledger.POST("/", ledgerHandler.PostToLedger)
	}

	accounts := v1.Group("/accounts")
	{
		accounts.GET("/:accountID/ledger", ledgerHandler.ListEntriesByAccount)
		accounts.GET("/:accountID/ledger/balance", ledgerHandler.CalculateAccountBalance)
		accounts.GET("/:accountID/ledger/reconciliation", ledgerHandler.ReconcileAccount)
	}
}
