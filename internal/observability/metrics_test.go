package observability

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramanasai/fitlog/internal/activity"
)

func TestLedgerMetrics_TracksLedger(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	m := NewLedgerMetrics(reg)
	l := activity.NewLedger(activity.NewMemoryStore(), activity.NewCalculator(activity.DefaultTables()), activity.WithObserver(m))

	running, _, _, err := l.Add(ctx, "Running", "30 mins")
	require.NoError(t, err)
	_, _, _, err = l.Add(ctx, "Walking", "1 hr")
	require.NoError(t, err)

	assert.Equal(t, 90.0, testutil.ToFloat64(m.minutes))
	assert.Equal(t, 609.0, testutil.ToFloat64(m.calories))
	assert.Equal(t, 9900.0, testutil.ToFloat64(m.steps))

	_, err = l.Remove(ctx, running.ID)
	require.NoError(t, err)
	assert.Equal(t, 6000.0, testutil.ToFloat64(m.steps))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.mutations.WithLabelValues("add")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.mutations.WithLabelValues("remove")))
}

func TestLedgerMetrics_CountsFallbacks(t *testing.T) {
	ctx := context.Background()
	m := NewLedgerMetrics(prometheus.NewRegistry())
	l := activity.NewLedger(activity.NewMemoryStore(), activity.NewCalculator(activity.DefaultTables()), activity.WithObserver(m))

	_, _, _, err := l.Add(ctx, "Chess", "a while")
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.fallbacks.WithLabelValues("unknown_activity")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.fallbacks.WithLabelValues("unparsed_duration")))
}
