// Package bootstrap wires configuration into stores, collaborator
// clients, services, handlers and the HTTP router.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"

	"salaryscope/internal/accounts"
	"salaryscope/internal/analyzer"
	"salaryscope/internal/geocode"
	"salaryscope/internal/jobsearch"
	"salaryscope/internal/ledger"
	"salaryscope/internal/profile"
	"salaryscope/internal/resume"
	"salaryscope/internal/salary"
	"salaryscope/internal/search"
	"salaryscope/internal/session"
	"salaryscope/internal/shared/config"
	"salaryscope/internal/shared/server"
	"salaryscope/internal/shared/storage/db"
	"salaryscope/internal/shared/storage/object"
	localstore "salaryscope/internal/shared/storage/object/local"
	s3store "salaryscope/internal/shared/storage/object/s3"
	"salaryscope/internal/shared/telemetry"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore

	Sessions      *session.Manager
	Ledger        *ledger.Service
	Accounts      *accounts.Service
	Salary        *salary.Service
	Analyzer      *analyzer.Flow
	Jobs          *jobsearch.Client
	Geocoder      *geocode.Client
	ResumeCache   *resume.Cache
	AccountsAPI   *accounts.Handler
	SearchAPI     *search.Handler
	SessionSweeps *cron.Cron
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	ctx := context.Background()

	sessionStore, sqlDB, err := buildSessionStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	store, err := buildObjectStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	timeout := cfg.CollaboratorTimeout
	profileClient := profile.NewClient(cfg.ProfileServiceURL, timeout)
	salaryClient := salary.NewClient(cfg.SalaryServiceURL, timeout)
	analyzerClient := analyzer.NewClient(cfg.AnalyzerServiceURL, timeout)

	app := &App{
		Config:      cfg,
		DB:          sqlDB,
		Store:       store,
		Sessions:    session.NewManager(sessionStore, cfg.SessionTTL, cfg.Env == "production"),
		Ledger:      ledger.NewService(buildLedgerStore(cfg), timeout),
		Accounts:    accounts.NewService(profileClient),
		Salary:      salary.NewService(salaryClient),
		Analyzer:    analyzer.NewFlow(analyzerClient),
		Jobs:        jobsearch.NewClient(cfg.JobSearchURL, timeout),
		Geocoder:    geocode.NewClient(cfg.GeocodeURL, timeout),
		ResumeCache: resume.NewCache(store),
	}

	app.AccountsAPI = accounts.NewHandler(app.Accounts, app.Sessions)
	app.SearchAPI = &search.Handler{
		Ledger:    app.Ledger,
		Resumes:   app.ResumeCache,
		Salary:    app.Salary,
		Analyzer:  app.Analyzer,
		Jobs:      app.Jobs,
		Locations: app.Geocoder,
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          cfg,
		Sessions:        app.Sessions,
		AccountsHandler: app.AccountsAPI,
		SearchHandler:   app.SearchAPI,
	})

	app.SessionSweeps = buildSessionSweeper(cfg, sessionStore)

	return app, nil
}

// Close releases held resources and waits for in-flight ledger updates.
func (a *App) Close() {
	if a.SessionSweeps != nil {
		a.SessionSweeps.Stop()
	}
	if a.Ledger != nil {
		a.Ledger.Flush()
	}
	if a.DB != nil {
		_ = a.DB.Close()
	}
}

// buildSessionStore picks the session backend. Redis and postgres
// failures fall back to memory in dev-like environments and are fatal
// otherwise.
func buildSessionStore(ctx context.Context, cfg config.Config) (session.Store, *sql.DB, error) {
	switch cfg.SessionStoreType {
	case "redis":
		store, err := session.NewRedisStore(ctx, cfg.RedisURL)
		if err != nil {
			if isDevLike(cfg.Env) {
				log.Printf("bootstrap: redis unavailable, using in-memory sessions: %v", err)
				return session.NewMemoryStore(), nil, nil
			}
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		return store, nil, nil
	case "postgres":
		if strings.TrimSpace(cfg.DatabaseURL) == "" {
			if isDevLike(cfg.Env) {
				log.Printf("bootstrap: DATABASE_URL empty, using in-memory sessions")
				return session.NewMemoryStore(), nil, nil
			}
			return nil, nil, fmt.Errorf("SESSION_STORE=postgres requires DATABASE_URL")
		}
		sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
		if err == nil {
			err = db.RunMigrations(ctx, sqlDB)
		}
		if err != nil {
			if isDevLike(cfg.Env) {
				log.Printf("bootstrap: database unavailable, using in-memory sessions: %v", err)
				return session.NewMemoryStore(), nil, nil
			}
			return nil, nil, err
		}
		return &session.PGStore{DB: sqlDB}, sqlDB, nil
	default:
		return session.NewMemoryStore(), nil, nil
	}
}

func buildObjectStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

// buildLedgerStore uses the profile service as the source of truth for
// recent searches. Without a profile URL the ledger degrades to a
// process-local copy.
func buildLedgerStore(cfg config.Config) ledger.Store {
	if strings.TrimSpace(cfg.ProfileServiceURL) == "" {
		log.Printf("bootstrap: PROFILE_SERVICE_URL empty, recent searches are process-local")
		return ledger.NewMemoryStore()
	}
	return ledger.NewRemoteStore(cfg.ProfileServiceURL, cfg.CollaboratorTimeout)
}

// buildSessionSweeper schedules expired-slot purges. Redis expires
// slots natively, so its purge is a no-op and the schedule is harmless.
func buildSessionSweeper(cfg config.Config, store session.Store) *cron.Cron {
	c := cron.New()
	_, err := c.AddFunc(cfg.SessionSweepSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.CollaboratorTimeout)
		defer cancel()
		purged, err := store.PurgeExpired(ctx)
		if err != nil {
			telemetry.Warn("session.sweep_failed", map[string]any{"err": err.Error()})
			return
		}
		if purged > 0 {
			telemetry.Info("session.sweep", map[string]any{"purged": purged})
		}
	})
	if err != nil {
		log.Printf("bootstrap: invalid SESSION_SWEEP_SPEC %q, sweeper disabled: %v", cfg.SessionSweepSpec, err)
		return nil
	}
	c.Start()
	return c
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
