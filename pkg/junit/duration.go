package junit

import (
	"strconv"
	"strings"
	"time"
)

// sumDurations adds up the durations of step and hook results.
// Results without a measured duration contribute zero.
func sumDurations(stepResults, hookResults []Result) time.Duration {
	var total time.Duration
	for _, r := range stepResults {
		if r.Duration > 0 {
			total += r.Duration
		}
	}
	for _, r := range hookResults {
		if r.Duration > 0 {
			total += r.Duration
		}
	}
	return total
}

// formatSeconds renders a seconds value with the 0.###### pattern:
// a plain decimal point, at most six fractional digits, no grouping and
// no trailing zeros.
func formatSeconds(seconds float64) string {
	s := strconv.FormatFloat(seconds, 'f', 6, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	return s
}

// formatDuration renders a nanosecond duration as seconds, see formatSeconds.
func formatDuration(d time.Duration) string {
	return formatSeconds(d.Seconds())
}
