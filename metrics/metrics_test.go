package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	langmatch "github.com/goliatone/go-langmatch"
)

func TestHookCountsOutcomes(t *testing.T) {
	hook := NewHook()

	registry := prometheus.NewPedanticRegistry()
	require.NoError(t, registry.Register(hook))

	matcher, err := langmatch.NewMatcher(langmatch.WithHooks(hook))
	require.NoError(t, err)

	_, ok, err := matcher.BestMatch("en-US", []string{"en-GB", "fr"})
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = matcher.BestMatch("de", []string{"ja"})
	require.NoError(t, err)
	require.False(t, ok)

	_, _, err = matcher.BestMatch("de", []string{"not a locale!"})
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(hook.selections.WithLabelValues(langmatch.OutcomeMatched)))
	assert.Equal(t, 1.0, testutil.ToFloat64(hook.selections.WithLabelValues(langmatch.OutcomeNoMatch)))
	assert.Equal(t, 1.0, testutil.ToFloat64(hook.selections.WithLabelValues(langmatch.OutcomeError)))

	expected := `
# HELP langmatch_selection_score Score of the selected candidate (distance plus position)
# TYPE langmatch_selection_score histogram
langmatch_selection_score_bucket{le="0"} 0
langmatch_selection_score_bucket{le="10"} 0
langmatch_selection_score_bucket{le="50"} 1
langmatch_selection_score_bucket{le="100"} 1
langmatch_selection_score_bucket{le="250"} 1
langmatch_selection_score_bucket{le="500"} 1
langmatch_selection_score_bucket{le="840"} 1
langmatch_selection_score_bucket{le="+Inf"} 1
langmatch_selection_score_sum 50
langmatch_selection_score_count 1
`
	require.NoError(t, testutil.GatherAndCompare(registry, strings.NewReader(expected), "langmatch_selection_score"))

	count, err := testutil.GatherAndCount(registry, "langmatch_selection_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestHookObservesDuration(t *testing.T) {
	hook := NewHook()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	calls := 0
	hook.now = func() time.Time {
		calls++
		return start.Add(time.Duration(calls-1) * 2 * time.Millisecond)
	}

	ctx := &langmatch.MatchHookContext{Desired: "en"}
	hook.BeforeMatch(ctx)
	hook.AfterMatch(ctx)

	value, ok := ctx.MetadataValue(startedAtKey)
	require.True(t, ok)
	assert.Equal(t, start, value)

	registry := prometheus.NewRegistry()
	require.NoError(t, registry.Register(hook))

	families, err := registry.Gather()
	require.NoError(t, err)

	var sum float64
	for _, family := range families {
		if family.GetName() == namespace+"_"+durationKey {
			sum = family.GetMetric()[0].GetHistogram().GetSampleSum()
		}
	}
	assert.InDelta(t, 0.002, sum, 1e-9)
}

func TestHookWithoutStartTime(t *testing.T) {
	hook := NewHook()

	hook.AfterMatch(&langmatch.MatchHookContext{Matched: true, Score: 12})

	assert.Equal(t, 1.0, testutil.ToFloat64(hook.selections.WithLabelValues(langmatch.OutcomeMatched)))
	assert.Equal(t, 1, testutil.CollectAndCount(hook.score))
}
