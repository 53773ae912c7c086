package database

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func recordingPostgres(t *testing.T) (*Postgres, *tracetest.SpanRecorder) {
	t.Helper()

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	return NewPostgres(Config{TracerProvider: tp}), sr
}

func attr(span sdktrace.ReadOnlySpan, key attribute.Key) (attribute.Value, bool) {
	for _, kv := range span.Attributes() {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestTranslateError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		want       error
		constraint string
	}{
		{"unique", &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "users_email_key"}, ErrDuplicate, "users_email_key"},
		{"foreign key", &pgconn.PgError{Code: pgForeignKeyViolation, ConstraintName: "club_members_user_id_fkey"}, ErrForeignKey, "club_members_user_id_fkey"},
		{"other server error", &pgconn.PgError{Code: "42601", Message: "syntax error"}, ErrQuery, ""},
		{"cancelled", context.Canceled, context.Canceled, ""},
		{"unknown", errors.New("boom"), ErrQuery, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := translateError(tt.err)
			if !errors.Is(got, tt.want) {
				t.Fatalf("translateError() = %v, want %v", got, tt.want)
			}
			if c := ConstraintName(got); c != tt.constraint {
				t.Errorf("ConstraintName() = %q, want %q", c, tt.constraint)
			}
		})
	}
}

func TestPostgres_ConstraintViolationRecordsErrorSpan(t *testing.T) {
	t.Parallel()
	p, sr := recordingPostgres(t)

	const stmt = `INSERT INTO users (email, password_hash, role) VALUES ($1, $2, $3)`
	_, span := p.startSpan(context.Background(), "database.Execute", stmt)
	err := recordError(span, translateError(&pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "users_email_key"}))
	span.End()

	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	spans := sr.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	got := spans[0]

	if got.Name() != "database.Execute" {
		t.Errorf("unexpected span name %q", got.Name())
	}
	if got.SpanKind() != trace.SpanKindClient {
		t.Errorf("expected client span, got %v", got.SpanKind())
	}
	if got.Status().Code != codes.Error {
		t.Errorf("expected error status, got %v", got.Status())
	}
	if v, ok := attr(got, "db.statement"); !ok || v.AsString() != stmt {
		t.Errorf("expected db.statement attribute, got %v", v)
	}
	if v, ok := attr(got, "db.system"); !ok || v.AsString() != "postgresql" {
		t.Errorf("expected db.system attribute, got %v", v)
	}

	var recorded bool
	for _, ev := range got.Events() {
		if ev.Name == "exception" {
			recorded = true
		}
	}
	if !recorded {
		t.Error("expected the error to be recorded as an exception event")
	}
}

func TestPostgres_UnconnectedReturnsConnectionError(t *testing.T) {
	t.Parallel()
	p, sr := recordingPostgres(t)

	if _, err := p.Query(context.Background(), "SELECT 1"); !errors.Is(err, ErrConnection) {
		t.Errorf("Query: expected ErrConnection, got %v", err)
	}
	if _, err := p.Execute(context.Background(), "SELECT 1"); !errors.Is(err, ErrConnection) {
		t.Errorf("Execute: expected ErrConnection, got %v", err)
	}
	if err := p.Ping(context.Background()); !errors.Is(err, ErrConnection) {
		t.Errorf("Ping: expected ErrConnection, got %v", err)
	}
	if n := len(sr.Ended()); n != 0 {
		t.Errorf("expected no spans before connecting, got %d", n)
	}
}
