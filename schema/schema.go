// Package schema has value types, enums and shared helpers for all parts of ghpulse.
package schema

import (
	"fmt"
	"strings"
	"time"
)

// CalDate is a calendar date with no time-of-day component.
// It serializes as YYYY-MM-DD, matching the analytics API wire format.
type CalDate struct {
	t time.Time
}

// NewCalDate builds a CalDate from year, month and day in UTC.
func NewCalDate(year int, month time.Month, day int) CalDate {
	return CalDate{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a time.Time to its calendar date in UTC.
func DateOf(t time.Time) CalDate {
	u := t.UTC()
	return NewCalDate(u.Year(), u.Month(), u.Day())
}

// ParseCalDate parses a YYYY-MM-DD string.
func ParseCalDate(s string) (CalDate, error) {
	t, err := time.Parse(time.DateOnly, strings.TrimSpace(s))
	if err != nil {
		return CalDate{}, fmt.Errorf("invalid calendar date %q: %w", s, err)
	}
	return CalDate{t: t.UTC()}, nil
}

// String renders the date as YYYY-MM-DD.
func (d CalDate) String() string {
	return d.t.Format(time.DateOnly)
}

// Time returns the date as a time.Time at midnight UTC.
func (d CalDate) Time() time.Time {
	return d.t
}

// IsZero reports whether the date is unset.
func (d CalDate) IsZero() bool {
	return d.t.IsZero()
}

// After reports whether d is after other.
func (d CalDate) After(other CalDate) bool {
	return d.t.After(other.t)
}

// Before reports whether d is before other.
func (d CalDate) Before(other CalDate) bool {
	return d.t.Before(other.t)
}

// MarshalJSON encodes the date as a YYYY-MM-DD string.
func (d CalDate) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON decodes a YYYY-MM-DD string.
func (d *CalDate) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := ParseCalDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Snapshot is one point-in-time observation of an account's metrics.
// Within a loaded sequence, snapshots are ordered by Date ascending.
// The sequence may be empty (no data in range) but is never nil.
type Snapshot struct {
	Date              CalDate          `json:"date"`
	Stars             int              `json:"stars"`
	Followers         int              `json:"followers"`
	Following         int              `json:"following"`
	PublicRepos       int              `json:"publicRepos"`
	TotalCommits      int              `json:"totalCommits"`
	ContributionCount int              `json:"contributionCount"` // optional on the wire, zero when absent
	LanguageStats     map[string]int64 `json:"languageStats,omitempty"`
}

// MetricValue returns the snapshot's value for a date-keyed metric view.
func (s Snapshot) MetricValue(metric MetricKey) int {
	switch metric {
	case MetricStars:
		return s.Stars
	case MetricFollowers:
		return s.Followers
	case MetricRepos:
		return s.PublicRepos
	case MetricCommits:
		return s.TotalCommits
	case MetricContributions:
		return s.ContributionCount
	default:
		return 0
	}
}

// MetricChange is the first-vs-last change summary for one tracked metric.
// It is derived on every load and never persisted.
type MetricChange struct {
	Metric       MetricKey `json:"metric"`
	Baseline     int       `json:"baseline"`
	Current      int       `json:"current"`
	Delta        int       `json:"delta"`
	PercentDelta float64   `json:"percent_delta"`
	Direction    Direction `json:"direction"`
}

// SeriesValues is one named value sequence of a chart series.
type SeriesValues struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// ChartSeries is a label-aligned set of value sequences prepared for charting.
// Labels[i] corresponds to the i-th entry of every value sequence.
type ChartSeries struct {
	Metric MetricKey      `json:"metric"`
	Labels []string       `json:"labels"`
	Values []SeriesValues `json:"values"`
}

// Profile is the identity of the authenticated account.
type Profile struct {
	Login string `json:"login"`
	Name  string `json:"name"`
	Plan  string `json:"plan"`
}

// SnapshotEnvelope is the wire shape of the snapshot range endpoint.
type SnapshotEnvelope struct {
	Snapshots []Snapshot `json:"snapshots"`
}
