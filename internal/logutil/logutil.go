// Package logutil provides shared logging defaults.
package logutil

import (
	"context"
	"log/slog"
)

// Discard returns a logger that drops every record. It is the default
// everywhere a logger is optional.
func Discard() *slog.Logger {
	return slog.New(discardHandler{})
}

// discardHandler is a slog.Handler that discards all log records.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return discardHandler{} }
func (discardHandler) WithGroup(string) slog.Handler             { return discardHandler{} }
