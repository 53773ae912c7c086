// Package testdb provides a real Postgres for repository tests.
//
// A postgres:16-alpine testcontainer is started once per test binary and
// migrated with the bun migrations. Every New call truncates all tables,
// so tests using it must not run in parallel with each other.
//
// Usage:
//
//	func TestMain(m *testing.M) {
//	    code := m.Run()
//	    testdb.Terminate()
//	    os.Exit(code)
//	}
//
//	func TestSomething(t *testing.T) {
//	    tdb := testdb.New(t) // skipped with -short or without Docker
//	    repo := repository.NewUserRepository(tdb.DB)
//	}
package testdb

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/forgo/clubhub/api/internal/database"
	"github.com/forgo/clubhub/api/internal/database/migrations"
)

const (
	imageName = "postgres:16-alpine"
	dbName    = "clubhub_test"
	dbUser    = "clubhub"
	dbPass    = "clubhub"
)

// TestDB provides a migrated, emptied database for one test.
type TestDB struct {
	DB  *database.Postgres
	URL string
}

var (
	startOnce sync.Once
	startErr  error
	container *postgres.PostgresContainer
	connURL   string
)

// start runs the container and applies migrations once per binary
func start() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	c, err := postgres.Run(ctx, imageName,
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPass),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		if c != nil {
			_ = c.Terminate(ctx)
		}
		startErr = fmt.Errorf("start postgres container: %w", err)
		return
	}
	container = c

	url, err := c.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		startErr = fmt.Errorf("connection string: %w", err)
		return
	}
	connURL = url

	bunDB := migrations.Open(url)
	defer bunDB.Close()
	if _, err := migrations.Up(ctx, bunDB); err != nil {
		startErr = err
	}
}

// New returns a connection to the shared container with every table emptied.
func New(t *testing.T) *TestDB {
	t.Helper()

	if testing.Short() {
		t.Skip("testdb: skipping database test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	startOnce.Do(start)
	if startErr != nil {
		t.Fatalf("testdb: %v", startErr)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := database.NewPostgres(database.Config{URL: connURL, MaxConns: 4})
	if err := db.Connect(ctx); err != nil {
		t.Fatalf("testdb: failed to connect: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if _, err := db.Execute(ctx, `TRUNCATE users, clubs, club_members, general_announcements,
		club_announcements, events RESTART IDENTITY CASCADE`); err != nil {
		t.Fatalf("testdb: failed to truncate: %v", err)
	}

	return &TestDB{DB: db, URL: connURL}
}

// Context returns a context with a 30 second timeout
func (tdb *TestDB) Context(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// Terminate stops the shared container, if one was started.
func Terminate() {
	if container == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	_ = container.Terminate(ctx)
}
