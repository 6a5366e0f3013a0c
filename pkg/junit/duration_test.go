package junit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func Test_sumDurations(t *testing.T) {
	t.Run("should add step and hook durations", func(t *testing.T) {
		steps := []Result{
			{Status: StatusPassed, Duration: 1500 * time.Millisecond},
			{Status: StatusPassed, Duration: 200 * time.Millisecond},
		}
		hooks := []Result{{Status: StatusPassed, Duration: 300 * time.Millisecond}}

		require.Equal(t, 2*time.Second, sumDurations(steps, hooks))
	})

	t.Run("should treat absent durations as zero", func(t *testing.T) {
		steps := []Result{{Status: StatusPassed}, {Status: StatusPassed, Duration: time.Second}}

		require.Equal(t, time.Second, sumDurations(steps, nil))
	})

	t.Run("should ignore negative durations", func(t *testing.T) {
		steps := []Result{{Status: StatusPassed, Duration: -time.Second}}

		require.Equal(t, time.Duration(0), sumDurations(steps, nil))
	})
}

func Test_formatSeconds(t *testing.T) {
	t.Run("should drop trailing zeros", func(t *testing.T) {
		require.Equal(t, "1.5", formatSeconds(1.5))
	})

	t.Run("should render whole seconds without a decimal point", func(t *testing.T) {
		require.Equal(t, "2", formatSeconds(2.0))
		require.Equal(t, "0", formatSeconds(0))
	})

	t.Run("should keep at most six fractional digits", func(t *testing.T) {
		require.Equal(t, "0.123457", formatSeconds(0.123456789))
	})

	t.Run("should collapse sub-microsecond values to zero", func(t *testing.T) {
		require.Equal(t, "0", formatSeconds(1e-9))
	})
}

func Test_formatDuration(t *testing.T) {
	t.Run("should render nanosecond durations as seconds", func(t *testing.T) {
		require.Equal(t, "1.2345", formatDuration(1234500*time.Microsecond))
	})
}
