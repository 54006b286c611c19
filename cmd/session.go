package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/ramanasai/fitlog/internal/activity"
	"github.com/ramanasai/fitlog/internal/db"
	"github.com/ramanasai/fitlog/internal/observability"
	"github.com/ramanasai/fitlog/internal/seed"
)

// session is one process worth of ledger: the store behind it, the metrics
// registry it reports to and whatever needs closing on exit.
type session struct {
	ledger   *activity.Ledger
	registry *prometheus.Registry
	closers  []io.Closer
}

// openSession builds the ledger from the loaded config and seeds it.
func openSession(ctx context.Context, log *slog.Logger) (*session, error) {
	calc, err := cfg.Calculator()
	if err != nil {
		return nil, err
	}

	s := &session{registry: prometheus.NewRegistry()}
	s.registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	var store activity.Store
	switch cfg.Store.Driver {
	case "sqlite":
		st, err := db.OpenStore(ctx)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, st)
		store = st
	case "", "memory":
		store = activity.NewMemoryStore()
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}

	s.ledger = activity.NewLedger(store, calc,
		activity.WithLogger(log),
		activity.WithObserver(observability.NewLedgerMetrics(s.registry)),
	)

	records, err := seed.Load(cfg.SeedFile, gpxFiles)
	if err != nil {
		return nil, errors.Join(err, s.Close())
	}
	totals, err := s.ledger.Seed(ctx, records...)
	if err != nil {
		return nil, errors.Join(err, s.Close())
	}
	log.Debug("ledger seeded",
		slog.Int("records", len(records)),
		slog.Int("minutes", totals.Minutes),
	)
	return s, nil
}

func (s *session) Close() error {
	var errs []error
	for _, c := range s.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
