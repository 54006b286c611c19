package activity

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	mutations []Op
	fallbacks []Fallback
	totals    []Totals
}

func (o *recordingObserver) ObserveMutation(op Op, _ Record) { o.mutations = append(o.mutations, op) }
func (o *recordingObserver) ObserveFallback(kind Fallback, _ Record) { o.fallbacks = append(o.fallbacks, kind) }
func (o *recordingObserver) ObserveTotals(t Totals) { o.totals = append(o.totals, t) }

// flakyStore fails every Prepend after the first okPrepends.
type flakyStore struct {
	*MemoryStore
	okPrepends int
}

var errDiskFull = errors.New("disk full")

func (s *flakyStore) Prepend(ctx context.Context, r Record) error {
	if s.okPrepends == 0 {
		return errDiskFull
	}
	s.okPrepends--
	return s.MemoryStore.Prepend(ctx, r)
}

func newTestLedger(opts ...Option) *Ledger {
	return NewLedger(NewMemoryStore(), NewCalculator(DefaultTables()), opts...)
}

func TestLedger_AddThenRemove(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger()

	running, _, ok, err := l.Add(ctx, "Running", "30 mins")
	require.NoError(t, err)
	require.True(t, ok)

	_, totals, ok, err := l.Add(ctx, "Walking", "1 hr")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, Totals{Minutes: 90, Calories: 609, Steps: 9900}, totals)

	totals, err = l.Remove(ctx, running.ID)
	require.NoError(t, err)
	assert.Equal(t, Totals{Minutes: 60, Calories: 266, Steps: 6000}, totals)
	assert.Equal(t, totals, l.Totals())
}

func TestLedger_NewestFirst(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger()

	_, _, _, err := l.Add(ctx, "Running", "30 mins")
	require.NoError(t, err)
	_, _, _, err = l.Add(ctx, "Walking", "1 hr")
	require.NoError(t, err)

	records, err := l.Records(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Walking", records[0].Name)
	assert.Equal(t, "Running", records[1].Name)
}

func TestLedger_BlankInputIsIgnored(t *testing.T) {
	ctx := context.Background()
	obs := &recordingObserver{}
	l := newTestLedger(WithObserver(obs))

	for _, in := range [][2]string{{"", "30 mins"}, {"Running", "   "}, {"  ", ""}} {
		_, _, ok, err := l.Add(ctx, in[0], in[1])
		require.NoError(t, err)
		assert.False(t, ok)
	}

	records, err := l.Records(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Empty(t, obs.mutations)
}

func TestLedger_AddTrimsFields(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger()

	rec, _, ok, err := l.Add(ctx, "  Yoga ", " 20 mins ")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Yoga", rec.Name)
	assert.Equal(t, "20 mins", rec.DurationText)
	assert.NotEmpty(t, rec.ID)
}

func TestLedger_DuplicatesRemovedIndividually(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger()

	first, _, _, err := l.Add(ctx, "Running", "10 mins")
	require.NoError(t, err)
	_, _, _, err = l.Add(ctx, "Running", "10 mins")
	require.NoError(t, err)

	totals, err := l.Remove(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, totals.Minutes)

	records, err := l.Records(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.NotEqual(t, first.ID, records[0].ID)
}

func TestLedger_RemoveUnknown(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger()
	_, before, _, err := l.Add(ctx, "Running", "30 mins")
	require.NoError(t, err)

	after, err := l.Remove(ctx, "missing")
	assert.ErrorIs(t, err, ErrRecordNotFound)
	assert.Equal(t, before, after)
}

func TestLedger_RecomputeIsIdempotent(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger()
	_, _, _, err := l.Add(ctx, "Cycling", "45 mins")
	require.NoError(t, err)

	first, err := l.Recompute(ctx)
	require.NoError(t, err)
	second, err := l.Recompute(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestLedger_SeedKeepsOrderAndRecomputes(t *testing.T) {
	ctx := context.Background()
	obs := &recordingObserver{}
	l := newTestLedger(WithObserver(obs))

	totals, err := l.Seed(ctx,
		Record{Name: "🏃 Evening Running", DurationText: "30 mins"},
		Record{Name: "🚶 Walking", DurationText: "1 hr"},
	)
	require.NoError(t, err)
	assert.Equal(t, Totals{Minutes: 90, Calories: 609, Steps: 9900}, totals)

	records, err := l.Records(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "🏃 Evening Running", records[0].Name)
	assert.NotEmpty(t, records[0].ID)
	assert.Equal(t, []Op{OpSeed, OpSeed}, obs.mutations)
	assert.Len(t, obs.totals, 1, "seeding recomputes once")
}

func TestLedger_SeedFailureKeepsTotalsInStep(t *testing.T) {
	ctx := context.Background()
	obs := &recordingObserver{}
	l := NewLedger(&flakyStore{MemoryStore: NewMemoryStore(), okPrepends: 1},
		NewCalculator(DefaultTables()), WithObserver(obs))

	totals, err := l.Seed(ctx,
		Record{Name: "Running", DurationText: "30 mins"},
		Record{Name: "Walking", DurationText: "1 hr"},
	)
	require.ErrorIs(t, err, errDiskFull)

	// walking is seeded first and stays in the store
	records, err := l.Records(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Walking", records[0].Name)

	want := Totals{Minutes: 60, Calories: 266, Steps: 6000}
	assert.Equal(t, want, totals)
	assert.Equal(t, want, l.Totals())
	assert.Equal(t, []Totals{want}, obs.totals)
}

func TestLedger_FallbacksAreReportedButDoNotChangeTotals(t *testing.T) {
	ctx := context.Background()
	obs := &recordingObserver{}
	l := newTestLedger(WithObserver(obs))

	_, totals, ok, err := l.Add(ctx, "Morning Run", "forever")
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, Totals{}, totals)
	assert.Equal(t, []Fallback{FallbackUnknownActivity, FallbackUnparsedDuration}, obs.fallbacks)
	assert.Equal(t, []Op{OpAdd}, obs.mutations)
}

func TestLedger_BareMinutesMode(t *testing.T) {
	ctx := context.Background()
	calc := NewCalculator(DefaultTables())
	calc.Parser = Parser{BareMinutes: false}
	l := NewLedger(NewMemoryStore(), calc)

	_, totals, _, err := l.Add(ctx, "Walking", "45")
	require.NoError(t, err)
	assert.Zero(t, totals.Minutes)
}
