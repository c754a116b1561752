package core

import (
	"github.com/averykuo/ghpulse/schema"
)

// BuildMetricChanges computes first-vs-last change summaries for every
// tracked metric. The snapshot sequence must be ordered by date ascending;
// an empty sequence yields no changes.
func BuildMetricChanges(snapshots []schema.Snapshot) []schema.MetricChange {
	if len(snapshots) == 0 {
		return []schema.MetricChange{}
	}

	first := snapshots[0]
	last := snapshots[len(snapshots)-1]

	changes := make([]schema.MetricChange, 0, len(schema.SummaryMetrics))
	for _, metric := range schema.SummaryMetrics {
		baseline := first.MetricValue(metric)
		current := last.MetricValue(metric)
		delta := current - baseline

		changes = append(changes, schema.MetricChange{
			Metric:       metric,
			Baseline:     baseline,
			Current:      current,
			Delta:        delta,
			PercentDelta: percentDelta(delta, baseline),
			Direction:    directionOf(delta),
		})
	}
	return changes
}

// percentDelta converts an absolute delta into a percentage of the baseline.
// A non-positive baseline yields zero rather than a division blowup; the
// caller still sees the absolute delta.
func percentDelta(delta, baseline int) float64 {
	if baseline <= 0 {
		return 0
	}
	return float64(delta) / float64(baseline) * 100
}

// directionOf classifies a delta by sign.
func directionOf(delta int) schema.Direction {
	switch {
	case delta > 0:
		return schema.PositiveDirection
	case delta < 0:
		return schema.NegativeDirection
	default:
		return schema.NeutralDirection
	}
}
