package app

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/haguru/resumatch/config"
	"github.com/haguru/resumatch/internal/analysis"
	"github.com/haguru/resumatch/internal/auth"
	memoryCredentialRepo "github.com/haguru/resumatch/internal/credentialrepo/memory"
	mongoCredentialRepo "github.com/haguru/resumatch/internal/credentialrepo/mongo"
	"github.com/haguru/resumatch/internal/credentialrepo/sqlrepo"
	"github.com/haguru/resumatch/internal/credentialservice"
	"github.com/haguru/resumatch/internal/interfaces"
	"github.com/haguru/resumatch/internal/middleware"
	"github.com/haguru/resumatch/internal/report"
	"github.com/haguru/resumatch/internal/revocation"
	"github.com/haguru/resumatch/internal/routes"
	"github.com/haguru/resumatch/internal/server"
	"github.com/haguru/resumatch/internal/session"
	"github.com/haguru/resumatch/internal/skills"
	"github.com/haguru/resumatch/internal/textnorm"
	"github.com/haguru/resumatch/internal/upload"
	"github.com/haguru/resumatch/pkg/databases/mongo"
	"github.com/haguru/resumatch/pkg/databases/sqldb"
	"github.com/haguru/resumatch/pkg/metrics"
	"github.com/haguru/resumatch/pkg/zerolog"

	structValidator "github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	StartupTimeout  = 30 * time.Second
	ShutdownTimeout = 10 * time.Second
)

// App represents the main application, containing server and configuration.
// It initializes with a config file, validates settings, and manages routes.
type App struct {
	Server     interfaces.Server
	Config     *config.ServiceConfig
	Logger     interfaces.Logger
	Metrics    interfaces.Metrics
	repo       interfaces.CredentialRepository
	revoked    interfaces.RevocationStore
	privateKey *ecdsa.PrivateKey
}

// NewApp reads the config file and builds the application from it.
func NewApp(configPath string) (*App, error) {
	cfg, err := config.ReadLocalConfig(configPath)
	if err != nil {
		return nil, err
	}
	return NewAppFromConfig(cfg, zerolog.NewZerologLogger(cfg.ServiceName))
}

// NewAppFromConfig validates cfg and wires every component of the service.
// Resources opened before a failure are released.
func NewAppFromConfig(cfg *config.ServiceConfig, logger interfaces.Logger) (*App, error) {
	validator := structValidator.New()
	if err := validator.Struct(cfg); err != nil {
		var validationErrors structValidator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return nil, fmt.Errorf("validation error: %s", validationErrors)
		}
		return nil, fmt.Errorf("validation error: %w", err)
	}

	logger.SetLevel(cfg.LogLevel)
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	ctx, cancel := context.WithTimeout(context.Background(), StartupTimeout)
	defer cancel()

	if err := app.initialize(ctx, validator); err != nil {
		app.Close(context.Background())
		return nil, err
	}
	return app, nil
}

func (app *App) initialize(ctx context.Context, validator *structValidator.Validate) error {
	cfg := app.Config
	app.Server = server.NewServer(cfg.Host, cfg.Port, app.Logger)
	app.Metrics = app.initializeMetrics()

	if err := app.initializePrivateKey(); err != nil {
		return fmt.Errorf("failed to initialize private key: %w", err)
	}

	dbClient, err := app.initializeDBClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize database client: %w", err)
	}

	app.repo, err = app.initializeCredentialRepo(ctx, dbClient)
	if err != nil {
		if dbClient != nil {
			_ = dbClient.Disconnect(context.Background())
		}
		return fmt.Errorf("failed to initialize credential repository: %w", err)
	}

	app.revoked, err = app.initializeRevocationStore(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize revocation store: %w", err)
	}

	sessions, err := session.NewManager(app.privateKey, app.revoked, cfg.Session, app.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize session manager: %w", err)
	}

	renderer, err := report.NewRenderer()
	if err != nil {
		return err
	}

	vocabulary := skills.NewVocabulary(cfg.Analysis.Skills)
	if unmatchable := vocabulary.Unmatchable(); len(unmatchable) > 0 {
		app.Logger.Warn("Skills that can never match normalized text", "skills", unmatchable)
	}
	engine := analysis.NewEngine(textnorm.NewNormalizer(cfg.Analysis.Stopwords), vocabulary)

	credentialService := credentialservice.NewCredentialService(app.repo, app.Logger, cfg.Security.BcryptCost)
	route := routes.NewRoute(app.Metrics, credentialService, sessions, engine,
		upload.NewReader(cfg.Upload.MaxFileBytes), renderer, app.Logger, validator)

	metricsHandler := promhttp.HandlerFor(
		app.Metrics.GetRegistry(),
		promhttp.HandlerOpts{})
	if err := app.Server.AddHandler(routes.MetricsRouteAPI, metricsHandler); err != nil {
		return fmt.Errorf("failed to add metrics route: %w", err)
	}

	handlers := []struct {
		path    string
		handler func(w http.ResponseWriter, r *http.Request)
	}{
		{routes.RegisterRouteAPI, route.Register},
		{routes.LoginRouteAPI, route.Login},
		{routes.LogoutRouteAPI, route.Logout},
		{routes.MenuRouteAPI, route.Menu},
		{routes.AnalyzeRouteAPI, middleware.RequireSession(route.Analyze)},
	}
	for _, h := range handlers {
		if err := app.Server.AddRoute(h.path, h.handler); err != nil {
			return fmt.Errorf("failed to add route %s: %w", h.path, err)
		}
	}

	app.Server.Use(
		middleware.AccessLog(app.Logger, app.Metrics,
			routes.RegisterRouteAPI, routes.LoginRouteAPI, routes.LogoutRouteAPI,
			routes.MenuRouteAPI, routes.AnalyzeRouteAPI, routes.MetricsRouteAPI),
		middleware.Session(sessions),
	)

	return nil
}

// Run serves until the server fails or the process receives SIGINT or SIGTERM,
// then shuts down gracefully and releases the database and revocation store.
func (app *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- app.Server.ListenAndServe()
	}()

	var runErr error
	select {
	case err := <-serveErr:
		runErr = err
	case <-ctx.Done():
		app.Logger.Info("Shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		if err := app.Server.Shutdown(shutdownCtx); err != nil {
			runErr = err
		}
		if err := <-serveErr; err != nil && runErr == nil {
			runErr = err
		}
	}

	app.Close(context.Background())
	return runErr
}

// Close releases the credential store and the revocation store.
func (app *App) Close(ctx context.Context) {
	if app.repo != nil {
		if err := app.repo.Close(ctx); err != nil {
			app.Logger.Error("Failed to close credential repository", "error", err)
		}
	}
	if app.revoked != nil {
		if err := app.revoked.Close(); err != nil {
			app.Logger.Error("Failed to close revocation store", "error", err)
		}
	}
}

func (app *App) initializeMetrics() interfaces.Metrics {
	appMetrics := metrics.NewMetrics(app.Config.ServiceName)
	routes.RegisterMetrics(appMetrics)
	return appMetrics
}

// initializeDBClient connects the configured database. The memory store has no client.
func (app *App) initializeDBClient(ctx context.Context) (interfaces.DBClient, error) {
	dbConfig := app.Config.Database

	switch dbConfig.Type {
	case "sqlite":
		dbClient := sqldb.NewSQLiteDatabaseClient(dbConfig.SQLite, app.Logger)
		if err := dbClient.Connect(ctx, dbConfig.SQLite.Path); err != nil {
			return nil, fmt.Errorf("failed to open SQLite database: %w", err)
		}
		return dbClient, nil

	case "postgres":
		dbClient := sqldb.NewPostgresDatabaseClient(dbConfig.Postgres, app.Logger)
		if err := dbClient.Connect(ctx, dbConfig.Postgres.DSN); err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		return dbClient, nil

	case "mongo":
		dbClient, err := mongo.NewMongoDB(dbConfig.MongoDB, app.Logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize MongoDB client: %w", err)
		}
		if err := dbClient.Connect(ctx, dbConfig.MongoDB.DSN); err != nil {
			return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
		}
		return dbClient, nil

	case "memory":
		return nil, nil

	default:
		return nil, fmt.Errorf("unsupported database type: %s", dbConfig.Type)
	}
}

func (app *App) initializeCredentialRepo(ctx context.Context, dbClient interfaces.DBClient) (interfaces.CredentialRepository, error) {
	var repo interfaces.CredentialRepository
	var err error

	switch app.Config.Database.Type {
	case "sqlite", "postgres":
		sqlClient, ok := dbClient.(*sqldb.SQLDatabaseClient)
		if !ok {
			return nil, fmt.Errorf("expected a SQL client for %s", app.Config.Database.Type)
		}
		repo, err = sqlrepo.NewSQLCredentialRepository(sqlClient)
	case "mongo":
		repo, err = mongoCredentialRepo.NewMongoCredentialRepository(dbClient)
	case "memory":
		app.Logger.Warn("Using the in-memory credential store, accounts are lost on restart")
		repo = memoryCredentialRepo.NewCredentialRepository()
	default:
		return nil, fmt.Errorf("unsupported database type: %s", app.Config.Database.Type)
	}
	if err != nil {
		return nil, err
	}

	if err = repo.EnsureIndices(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure indices: %w", err)
	}

	return repo, nil
}

func (app *App) initializeRevocationStore(ctx context.Context) (interfaces.RevocationStore, error) {
	revocationConfig := app.Config.Session.Revocation
	switch revocationConfig.Type {
	case "redis":
		return revocation.NewRedisStore(ctx, revocationConfig.Redis)
	case "memory":
		return revocation.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported revocation store: %s", revocationConfig.Type)
	}
}

func (app *App) initializePrivateKey() error {
	if app.Config.PrivateKeyPath == "" {
		return fmt.Errorf("private key path is not provided in the configuration")
	}

	privateKey, err := auth.LoadECDSAPrivateKey(app.Config.PrivateKeyPath)
	if err != nil {
		return fmt.Errorf("failed to load private key: %w", err)
	}

	app.privateKey = privateKey
	return nil
}
