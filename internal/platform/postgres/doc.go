// Package postgres provides PostgreSQL implementations of the interfaces in
// internal/store, backed by database/sql and the pgx stdlib driver, together
// with the embedded goose migrations that create the schema.
package postgres
