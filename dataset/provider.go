package dataset

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"
)

// ErrNotLoaded is reported until the first load attempt finishes.
var ErrNotLoaded = errors.New("dataset not loaded")

type snapshot struct {
	table    *Table
	err      error
	loadedAt time.Time
}

// Provider publishes the current base table. Readers never block: a reload
// builds a new Table and swaps it in.
type Provider struct {
	source Source
	logger *slog.Logger
	state  atomic.Pointer[snapshot]
}

func NewProvider(source Source, logger *slog.Logger) *Provider {
	p := &Provider{source: source, logger: logger}
	p.state.Store(&snapshot{err: ErrNotLoaded})
	return p
}

// Reload re-reads the source. A failed load replaces the current table with
// the error, so no dashboard is rendered from stale data.
func (p *Provider) Reload(ctx context.Context) error {
	start := time.Now()
	table, err := p.source.Load(ctx)
	if err != nil {
		p.state.Store(&snapshot{err: err, loadedAt: time.Now()})
		p.logger.Error("dataset load failed", "source", p.source.Describe(), "error", err)
		return err
	}

	p.state.Store(&snapshot{table: table, loadedAt: time.Now()})
	p.logger.Info("dataset loaded",
		"source", p.source.Describe(),
		"rows", table.Len(),
		"duration", time.Since(start))
	return nil
}

// Current returns the base table or the error of the last load.
func (p *Provider) Current() (*Table, error) {
	s := p.state.Load()
	return s.table, s.err
}

// Ready reports whether a base table is available.
func (p *Provider) Ready() bool {
	return p.state.Load().table != nil
}

// LoadedAt is the time of the last load attempt; zero before the first one.
func (p *Provider) LoadedAt() time.Time {
	return p.state.Load().loadedAt
}
