package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Postgres error codes the store translates into sentinel errors.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

const tracerName = "github.com/forgo/clubhub/api/internal/database"

// Postgres implements the Database interface on a pgx connection pool
type Postgres struct {
	pool   *pgxpool.Pool
	config Config
	tracer trace.Tracer
}

// NewPostgres creates a new Postgres instance
func NewPostgres(cfg Config) *Postgres {
	tp := cfg.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return &Postgres{
		config: cfg,
		tracer: tp.Tracer(tracerName),
	}
}

// Connect opens the pool and verifies the server is reachable
func (p *Postgres) Connect(ctx context.Context) error {
	poolCfg, err := pgxpool.ParseConfig(p.config.URL)
	if err != nil {
		return fmt.Errorf("%w: invalid url: %v", ErrConnection, err)
	}
	if p.config.MaxConns > 0 {
		poolCfg.MaxConns = p.config.MaxConns
	}
	if p.config.MinConns > 0 {
		poolCfg.MinConns = p.config.MinConns
	}
	if p.config.ConnectTimeout > 0 {
		poolCfg.ConnConfig.ConnectTimeout = p.config.ConnectTimeout
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("%w: ping failed: %v", ErrConnection, err)
	}

	p.pool = pool
	return nil
}

// Close closes the connection pool
func (p *Postgres) Close() error {
	if p.pool != nil {
		p.pool.Close()
	}
	return nil
}

// Ping checks the database connection
func (p *Postgres) Ping(ctx context.Context) error {
	if p.pool == nil {
		return ErrConnection
	}
	if err := p.pool.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	return nil
}

// Query executes a query and returns results
func (p *Postgres) Query(ctx context.Context, query string, args ...any) ([]Row, error) {
	if p.pool == nil {
		return nil, ErrConnection
	}

	ctx, span := p.startSpan(ctx, "database.Query", query)
	defer span.End()

	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, recordError(span, translateError(err))
	}
	maps, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, recordError(span, translateError(err))
	}

	out := make([]Row, len(maps))
	for i, m := range maps {
		out[i] = Row(m)
	}
	span.SetAttributes(attribute.Int("db.rows", len(out)))
	return out, nil
}

// QueryOne executes a query and returns a single result
func (p *Postgres) QueryOne(ctx context.Context, query string, args ...any) (Row, error) {
	rows, err := p.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return rows[0], nil
}

// Execute runs a statement without returning rows
func (p *Postgres) Execute(ctx context.Context, query string, args ...any) (int64, error) {
	if p.pool == nil {
		return 0, ErrConnection
	}

	ctx, span := p.startSpan(ctx, "database.Execute", query)
	defer span.End()

	tag, err := p.pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, recordError(span, translateError(err))
	}
	span.SetAttributes(attribute.Int64("db.rows_affected", tag.RowsAffected()))
	return tag.RowsAffected(), nil
}

func (p *Postgres) startSpan(ctx context.Context, name, query string) (context.Context, trace.Span) {
	return p.tracer.Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "postgresql"),
			attribute.String("db.statement", query),
		),
	)
}

func recordError(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

// translateError maps driver errors onto the package sentinels
func translateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return &ConstraintError{Kind: ErrDuplicate, Constraint: pgErr.ConstraintName, Err: err}
		case pgForeignKeyViolation:
			return &ConstraintError{Kind: ErrForeignKey, Constraint: pgErr.ConstraintName, Err: err}
		}
		return fmt.Errorf("%w: %s", ErrQuery, pgErr.Message)
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) || pgconn.Timeout(err) {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	return fmt.Errorf("%w: %v", ErrQuery, err)
}
