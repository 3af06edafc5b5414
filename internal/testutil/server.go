// A NEW file to hold a shared test server setup utility, which simplifies all API tests.

package testutil

import (
	"database/sql"
	"testing"

	"github.com/tmalloy/bindery/internal/api"
	"github.com/tmalloy/bindery/internal/config"
	"github.com/tmalloy/bindery/internal/core"
	"github.com/tmalloy/bindery/internal/websocket"
)

// SetupTestApp initializes a core.App backed by an in-memory database
// and a running websocket hub.
func SetupTestApp(t *testing.T) *core.App {
	t.Helper()
	db := SetupTestDB(t)

	cfg := &config.Config{}
	cfg.Library.Path = t.TempDir()
	hub := websocket.NewHub()
	go hub.Run()

	return core.NewFromParts(cfg, db, hub, "test")
}

// SetupTestServer initializes a full core.App and api.Server for integration testing.
func SetupTestServer(t *testing.T) (*api.Server, *sql.DB) {
	t.Helper()
	app := SetupTestApp(t)
	return api.NewServer(app), app.DB()
}
