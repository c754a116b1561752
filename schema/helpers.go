package schema

import "strings"

// metricDisplayNames maps metric keys to their human-readable names.
var metricDisplayNames = map[MetricKey]string{
	MetricStars:         "Stars",
	MetricFollowers:     "Followers",
	MetricRepos:         "Public Repos",
	MetricCommits:       "Total Commits",
	MetricContributions: "Contributions",
	MetricLanguages:     "Languages",
}

// DisplayName returns the human-readable name for a metric key.
// Unknown keys fall back to the capitalized raw key.
func (m MetricKey) DisplayName() string {
	if name, ok := metricDisplayNames[m]; ok {
		return name
	}
	if m == "" {
		return ""
	}
	return strings.ToUpper(string(m[:1])) + string(m[1:])
}

// GroupInt formats an integer with comma thousands separators, e.g. 1234567
// becomes "1,234,567". Formatting snapshot values for display is a
// presentation concern; the aggregation pipeline only ever sees raw integers.
func GroupInt(v int) string {
	neg := v < 0
	if neg {
		v = -v
	}

	digits := []byte{}
	if v == 0 {
		digits = append(digits, '0')
	}
	for v > 0 {
		digits = append(digits, byte('0'+v%10))
		v /= 10
	}

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	n := len(digits)
	for i := n - 1; i >= 0; i-- {
		b.WriteByte(digits[i])
		if i > 0 && i%3 == 0 {
			b.WriteByte(',')
		}
	}
	return b.String()
}
