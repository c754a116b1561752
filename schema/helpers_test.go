package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayName(t *testing.T) {
	tests := []struct {
		metric   MetricKey
		expected string
	}{
		{MetricStars, "Stars"},
		{MetricFollowers, "Followers"},
		{MetricRepos, "Public Repos"},
		{MetricCommits, "Total Commits"},
		{MetricContributions, "Contributions"},
		{MetricLanguages, "Languages"},
		{MetricKey("custom"), "Custom"},
		{MetricKey(""), ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.metric.DisplayName())
	}
}

func TestGroupInt(t *testing.T) {
	tests := []struct {
		value    int
		expected string
	}{
		{0, "0"},
		{7, "7"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-42, "-42"},
		{-1234567, "-1,234,567"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, GroupInt(tt.value))
	}
}
