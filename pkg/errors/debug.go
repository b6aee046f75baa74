package errors

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
)

// Failure sources reported by Dump.
const (
	SourceTimeout  = "timeout"
	SourceCanceled = "canceled"
	SourcePostgres = "postgres"
	SourceRedis    = "redis"
)

// PostgresDetail is the part of a server error worth logging for state_blobs
// writes.
type PostgresDetail struct {
	Code       string `json:"code"`
	Constraint string `json:"constraint,omitempty"`
	Message    string `json:"message"`
}

// Failure is the loggable shape of an error that crossed a state backend or a
// handler.
type Failure struct {
	Message  string          `json:"message"`
	Code     Code            `json:"code,omitempty"`
	Types    []string        `json:"types,omitempty"`
	Source   string          `json:"source,omitempty"`
	Postgres *PostgresDetail `json:"postgres,omitempty"`
	Redis    string          `json:"redis,omitempty"`
}

// Dump classifies err by the backend that raised it.
func Dump(err error) Failure {
	if err == nil {
		return Failure{}
	}
	f := Failure{Message: err.Error()}
	if te := As(err); te != nil {
		f.Code = te.Code()
	}
	for e := err; e != nil; e = errors.Unwrap(e) {
		f.Types = append(f.Types, fmt.Sprintf("%T", e))
	}

	var (
		pgErr    *pgconn.PgError
		redisErr redis.Error
	)
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		f.Source = SourceTimeout
	case errors.Is(err, context.Canceled):
		f.Source = SourceCanceled
	case errors.As(err, &pgErr):
		f.Source = SourcePostgres
		f.Postgres = &PostgresDetail{Code: pgErr.Code, Constraint: pgErr.ConstraintName, Message: pgErr.Message}
	case errors.As(err, &redisErr):
		f.Source = SourceRedis
		f.Redis = redisErr.Error()
	}
	return f
}

// Fields renders the failure as structured log fields.
func (f Failure) Fields() map[string]any {
	fields := map[string]any{"error": f.Message}
	if f.Code != "" {
		fields["error_code"] = f.Code
	}
	if len(f.Types) > 0 {
		fields["error_types"] = f.Types
	}
	if f.Source != "" {
		fields["error_source"] = f.Source
	}
	if f.Postgres != nil {
		fields["pg_code"] = f.Postgres.Code
		fields["pg_message"] = f.Postgres.Message
		if f.Postgres.Constraint != "" {
			fields["pg_constraint"] = f.Postgres.Constraint
		}
	}
	if f.Redis != "" {
		fields["redis_reply"] = f.Redis
	}
	return fields
}
