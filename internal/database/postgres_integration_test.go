package database_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/forgo/clubhub/api/internal/database"
	"github.com/forgo/clubhub/api/internal/testing/testdb"
)

func TestMain(m *testing.M) {
	code := m.Run()
	testdb.Terminate()
	os.Exit(code)
}

func TestPostgres_DuplicateInsertTracedAsError(t *testing.T) {
	tdb := testdb.New(t)

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := database.NewPostgres(database.Config{URL: tdb.URL, MaxConns: 2, MinConns: 1, TracerProvider: tp})
	require.NoError(t, db.Connect(ctx))
	t.Cleanup(func() { _ = db.Close() })

	const insert = `INSERT INTO users (email, password_hash, role) VALUES ($1, 'x', 'Member')`
	_, err := db.Execute(ctx, insert, "trace@example.com")
	require.NoError(t, err)

	_, err = db.Execute(ctx, insert, "trace@example.com")
	require.True(t, errors.Is(err, database.ErrDuplicate), "got %v", err)
	assert.Equal(t, "users_email_key", database.ConstraintName(err))

	spans := sr.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, codes.Unset, spans[0].Status().Code)
	assert.Equal(t, codes.Error, spans[1].Status().Code)
	assert.Equal(t, "database.Execute", spans[1].Name())
}
