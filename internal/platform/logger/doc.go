// Package logger provides structured logging functionality for the application.
//
// It builds on log/slog: JSON output for deployed environments and colored
// tint output for local development. Request-scoped loggers travel in the
// context via WithLogger and FromContext.
package logger
