/*
SPDX-License-Identifier: Apache-2.0
*/

// Package logger builds the structured logger shared by the chaincode process.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Log level string values.
const (
	LevelDebug   = "debug"
	LevelInfo    = "info"
	LevelWarn    = "warn"
	LevelWarning = "warning"
	LevelError   = "error"
)

// Attribute keys.
const (
	AttrService  = "service"
	AttrTxID     = "tx_id"
	AttrFunction = "function"
)

// ServiceName identifies this chaincode in log output.
const ServiceName = "herbtrace"

// ParseLevel converts a level name to slog.Level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn, LevelWarning:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New returns a JSON logger on stdout. Peers collect chaincode stdout, so JSON
// keeps the lines machine readable.
func New(level string) *slog.Logger {
	return NewWithWriter(os.Stdout, level)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(w io.Writer, level string) *slog.Logger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)})
	return slog.New(h).With(AttrService, ServiceName)
}

// WithTx scopes l to one transaction.
func WithTx(l *slog.Logger, txID, function string) *slog.Logger {
	if l == nil {
		l = slog.Default()
	}
	return l.With(AttrTxID, txID, AttrFunction, function)
}
