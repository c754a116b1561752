package core

import (
	"fmt"
	"sort"

	"github.com/averykuo/ghpulse/internal/contract"
	"github.com/averykuo/ghpulse/schema"
)

// BuildSeries constructs the chart series for a metric view from an ordered
// snapshot sequence. Date-keyed views share one label axis per snapshot date;
// the languages view is categorical and derived from the latest snapshot only.
func BuildSeries(metric schema.MetricKey, snapshots []schema.Snapshot) (schema.ChartSeries, error) {
	switch metric {
	case schema.MetricLanguages:
		return BuildLanguageSeries(snapshots)
	case schema.MetricFollowers:
		return BuildFollowerSeries(snapshots), nil
	default:
		if _, ok := schema.ValidSeriesMetrics[metric]; !ok {
			return schema.ChartSeries{}, fmt.Errorf("unknown metric view: %s", metric)
		}
		return buildSingleSeries(metric, snapshots), nil
	}
}

// buildSingleSeries builds a one-sequence series keyed by snapshot date.
func buildSingleSeries(metric schema.MetricKey, snapshots []schema.Snapshot) schema.ChartSeries {
	labels := make([]string, 0, len(snapshots))
	values := make([]float64, 0, len(snapshots))
	for _, snap := range snapshots {
		labels = append(labels, snap.Date.String())
		values = append(values, float64(snap.MetricValue(metric)))
	}
	return schema.ChartSeries{
		Metric: metric,
		Labels: labels,
		Values: []schema.SeriesValues{
			{Name: metric.DisplayName(), Values: values},
		},
	}
}

// BuildFollowerSeries builds the two-sequence followers view. Both sequences
// share the label axis, so Values[j].Values[i] always belongs to Labels[i].
func BuildFollowerSeries(snapshots []schema.Snapshot) schema.ChartSeries {
	labels := make([]string, 0, len(snapshots))
	followers := make([]float64, 0, len(snapshots))
	following := make([]float64, 0, len(snapshots))
	for _, snap := range snapshots {
		labels = append(labels, snap.Date.String())
		followers = append(followers, float64(snap.Followers))
		following = append(following, float64(snap.Following))
	}
	return schema.ChartSeries{
		Metric: schema.MetricFollowers,
		Labels: labels,
		Values: []schema.SeriesValues{
			{Name: "Followers", Values: followers},
			{Name: "Following", Values: following},
		},
	}
}

// BuildLanguageSeries builds the categorical language view from the latest
// snapshot in range. Earlier snapshots never contribute; the view answers
// "what does the account look like now", not "how did languages trend".
// Returns ErrEmptyLanguages when the range has snapshots but the latest one
// carries no language data.
func BuildLanguageSeries(snapshots []schema.Snapshot) (schema.ChartSeries, error) {
	if len(snapshots) == 0 {
		return schema.ChartSeries{
			Metric: schema.MetricLanguages,
			Labels: []string{},
			Values: []schema.SeriesValues{{Name: "Bytes", Values: []float64{}}},
		}, nil
	}

	latest := snapshots[len(snapshots)-1]
	if len(latest.LanguageStats) == 0 {
		return schema.ChartSeries{}, contract.ErrEmptyLanguages
	}

	type langWeight struct {
		name   string
		weight int64
	}
	langs := make([]langWeight, 0, len(latest.LanguageStats))
	for name, weight := range latest.LanguageStats {
		langs = append(langs, langWeight{name: name, weight: weight})
	}
	// Heaviest first; name breaks ties so output is deterministic.
	sort.Slice(langs, func(i, j int) bool {
		if langs[i].weight != langs[j].weight {
			return langs[i].weight > langs[j].weight
		}
		return langs[i].name < langs[j].name
	})

	labels := make([]string, 0, len(langs))
	values := make([]float64, 0, len(langs))
	for _, lw := range langs {
		labels = append(labels, lw.name)
		values = append(values, float64(lw.weight))
	}
	return schema.ChartSeries{
		Metric: schema.MetricLanguages,
		Labels: labels,
		Values: []schema.SeriesValues{
			{Name: "Bytes", Values: values},
		},
	}, nil
}

// BuildAllSeries builds every date-keyed series view plus the language view.
// A language view that fails with ErrEmptyLanguages is skipped; the other
// views are unaffected.
func BuildAllSeries(snapshots []schema.Snapshot) map[schema.MetricKey]schema.ChartSeries {
	views := make(map[schema.MetricKey]schema.ChartSeries, len(schema.SeriesMetrics)+1)
	for _, metric := range schema.SeriesMetrics {
		series, err := BuildSeries(metric, snapshots)
		if err != nil {
			continue
		}
		views[metric] = series
	}
	if series, err := BuildLanguageSeries(snapshots); err == nil {
		views[schema.MetricLanguages] = series
	}
	return views
}
