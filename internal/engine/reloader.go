package engine

import (
	"github.com/swasthyasetu/health-assistant/internal/symptoms"
)

// Reloader re-reads symptom tables from disk and swaps them into a running
// engine.
type Reloader struct {
	loader *symptoms.Loader
	engine *Engine
}

// NewReloader wires a loader to an engine.
func NewReloader(loader *symptoms.Loader, eng *Engine) *Reloader {
	if loader == nil {
		panic("engine: loader cannot be nil")
	}
	if eng == nil {
		panic("engine: engine cannot be nil")
	}
	return &Reloader{loader: loader, engine: eng}
}

// Reload loads fresh tables and installs them, reporting entry counts per
// language. Languages whose files are missing or malformed keep their
// built-in tables, so Reload never leaves the engine without answers.
func (r *Reloader) Reload() (map[string]int, error) {
	catalog := r.loader.Load()
	r.engine.SwapCatalog(catalog)
	counts := map[string]int{}
	for lang, n := range catalog.Counts() {
		counts[string(lang)] = n
	}
	return counts, nil
}
