// Package handlers is the HTTP surface over the store and report engine.
package handlers

import (
	"log/slog"

	"homefood-api/reports"
	"homefood-api/store"
)

var (
	Store   *store.Store
	Reports *reports.Service
	Log     *slog.Logger
)

// Init wires the handlers to their collaborators; called once from main
// (and from handler tests with in-memory stores).
func Init(s *store.Store, r *reports.Service, log *slog.Logger) {
	Store = s
	Reports = r
	Log = log.With("component", "handlers")
}
