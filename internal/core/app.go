package core

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/tmalloy/bindery/internal/assets"
	"github.com/tmalloy/bindery/internal/config"
	"github.com/tmalloy/bindery/internal/db"
	"github.com/tmalloy/bindery/internal/jobs"
	"github.com/tmalloy/bindery/internal/websocket"
)

// App holds the core components of the application that are shared
// between the server and the CLI. It implements jobs.JobContext.
type App struct {
	config     *config.Config
	db         *sql.DB
	wsHub      *websocket.Hub
	jobManager *jobs.JobManager
	version    string
}

// New sets up and returns a new App instance. It handles loading the
// configuration, initializing the database connection, and running migrations.
func New(version string) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	database, err := db.InitDB(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := db.RunMigrations(database, assets.MigrationsFS); err != nil {
		// We can't proceed without a valid database schema.
		database.Close()
		return nil, fmt.Errorf("failed to run database migrations: %w", err)
	}

	hub := websocket.NewHub()
	go hub.Run()

	log.Println("Core application setup complete.")
	return &App{
		config:     cfg,
		db:         database,
		wsHub:      hub,
		jobManager: jobs.NewManager(),
		version:    version,
	}, nil
}

// NewFromParts assembles an App from preconstructed components. Tests
// use it to inject in-memory databases and hubs they control.
func NewFromParts(cfg *config.Config, database *sql.DB, hub *websocket.Hub, version string) *App {
	return &App{
		config:     cfg,
		db:         database,
		wsHub:      hub,
		jobManager: jobs.NewManager(),
		version:    version,
	}
}

func (a *App) Config() *config.Config       { return a.config }
func (a *App) DB() *sql.DB                  { return a.db }
func (a *App) WsHub() *websocket.Hub        { return a.wsHub }
func (a *App) JobManager() *jobs.JobManager { return a.jobManager }
func (a *App) Version() string              { return a.version }

// Close gracefully closes the application's resources, like the DB connection.
func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
	}
}
