// Package activity holds the workout ledger and the calculations behind its
// totals. It has no knowledge of any user interface.
package activity

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Op names a ledger mutation.
type Op string

const (
	OpAdd    Op = "add"
	OpRemove Op = "remove"
	OpSeed   Op = "seed"
)

// Fallback names a default substituted during measurement.
type Fallback string

const (
	FallbackUnknownActivity  Fallback = "unknown_activity"
	FallbackUnparsedDuration Fallback = "unparsed_duration"
)

// Observer is notified of ledger changes. Implementations must not call back
// into the ledger.
type Observer interface {
	ObserveMutation(op Op, r Record)
	ObserveFallback(kind Fallback, r Record)
	ObserveTotals(t Totals)
}

// Ledger is the ordered list of logged activities. Every mutation is followed
// by a full recomputation of the totals.
type Ledger struct {
	mu        sync.Mutex
	store     Store
	calc      Calculator
	logger    *slog.Logger
	observers []Observer
	summary   Summary
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithLogger sets the logger used for fallback warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Ledger) { l.logger = logger }
}

// WithObserver registers an observer.
func WithObserver(o Observer) Option {
	return func(l *Ledger) { l.observers = append(l.observers, o) }
}

// NewLedger returns an empty ledger over store.
func NewLedger(store Store, calc Calculator, opts ...Option) *Ledger {
	l := &Ledger{
		store:  store,
		calc:   calc,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Calculator returns the calculator the ledger measures records with.
func (l *Ledger) Calculator() Calculator {
	return l.calc
}

// Seed loads the initial records, given newest first, and recomputes once.
func (l *Ledger) Seed(ctx context.Context, records ...Record) (Totals, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := len(records) - 1; i >= 0; i-- {
		r := records[i]
		if r.ID == "" {
			r.ID = uuid.NewString()
		}
		if err := l.store.Prepend(ctx, r); err != nil {
			// totals still cover whatever made it into the store
			totals, rerr := l.recompute(ctx)
			return totals, errors.Join(fmt.Errorf("seed %q: %w", r.Name, err), rerr)
		}
		l.notifyMutation(OpSeed, r)
		l.checkFallbacks(r)
	}
	return l.recompute(ctx)
}

// Add prepends a new record and returns the recomputed totals. When name or
// durationText is blank nothing happens and ok is false.
func (l *Ledger) Add(ctx context.Context, name, durationText string) (rec Record, totals Totals, ok bool, err error) {
	name = strings.TrimSpace(name)
	durationText = strings.TrimSpace(durationText)

	l.mu.Lock()
	defer l.mu.Unlock()

	if name == "" || durationText == "" {
		return Record{}, l.summary.Totals, false, nil
	}

	rec = Record{ID: uuid.NewString(), Name: name, DurationText: durationText}
	if err = l.store.Prepend(ctx, rec); err != nil {
		return Record{}, l.summary.Totals, false, fmt.Errorf("add activity: %w", err)
	}
	l.notifyMutation(OpAdd, rec)
	l.checkFallbacks(rec)

	totals, err = l.recompute(ctx)
	return rec, totals, true, err
}

// Remove deletes the record with the given id and returns the recomputed totals.
func (l *Ledger) Remove(ctx context.Context, id string) (Totals, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec, err := l.store.Remove(ctx, id)
	if err != nil {
		return l.summary.Totals, fmt.Errorf("remove activity %s: %w", id, err)
	}
	l.notifyMutation(OpRemove, rec)
	return l.recompute(ctx)
}

// Recompute re-derives all totals from the current records.
func (l *Ledger) Recompute(ctx context.Context) (Totals, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.recompute(ctx)
}

// Records returns the current records, newest first.
func (l *Ledger) Records(ctx context.Context) ([]Record, error) {
	return l.store.List(ctx)
}

// Totals returns the totals from the last recomputation.
func (l *Ledger) Totals() Totals {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.summary.Totals
}

// Summary returns the full result of the last recomputation.
func (l *Ledger) Summary() Summary {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.summary
}

func (l *Ledger) recompute(ctx context.Context) (Totals, error) {
	records, err := l.store.List(ctx)
	if err != nil {
		return l.summary.Totals, fmt.Errorf("list activities: %w", err)
	}
	l.summary = l.calc.Summarize(records)
	l.logger.Debug("totals recomputed",
		slog.Int("records", len(records)),
		slog.Int("minutes", l.summary.Totals.Minutes),
		slog.Int("calories", l.summary.Totals.Calories),
		slog.Int("steps", l.summary.Totals.Steps),
	)
	for _, o := range l.observers {
		o.ObserveTotals(l.summary.Totals)
	}
	return l.summary.Totals, nil
}

func (l *Ledger) checkFallbacks(r Record) {
	m := l.calc.Measure(r)
	if !m.KnownKey {
		l.logger.Warn("unknown activity, using default MET",
			slog.String("name", r.Name),
			slog.String("key", m.Key),
			slog.Float64("met", DefaultMET),
		)
		for _, o := range l.observers {
			o.ObserveFallback(FallbackUnknownActivity, r)
		}
	}
	if !m.Parsed {
		l.logger.Warn("unrecognised duration, counting 0 minutes",
			slog.String("name", r.Name),
			slog.String("duration", r.DurationText),
		)
		for _, o := range l.observers {
			o.ObserveFallback(FallbackUnparsedDuration, r)
		}
	}
}

func (l *Ledger) notifyMutation(op Op, r Record) {
	l.logger.Debug("ledger mutation", slog.String("op", string(op)), slog.String("id", r.ID), slog.String("name", r.Name))
	for _, o := range l.observers {
		o.ObserveMutation(op, r)
	}
}
