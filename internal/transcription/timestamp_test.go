package transcription

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatTimestamp(t *testing.T) {
	require.Equal(t, "00:00:00", FormatTimestamp(0, false))

	require.Equal(t, "00:01:10", FormatTimestamp(70, false))

	require.Equal(t, "02:00:00", FormatTimestamp(7200, false))

	require.Equal(t, "00:00:00.000", FormatTimestamp(0, true))

	require.Equal(t, "00:00:01.500", FormatTimestamp(1.5, true))

	require.Equal(t, "00:00:59.900", FormatTimestamp(59.9, true))

	require.Equal(t, "00:01:02.200", FormatTimestamp(62.2, true))

	require.Equal(t, "01:45:45.045", FormatTimestamp(6345.045, true))

	require.Equal(t, "00:00:00.000", FormatTimestamp(-1, true))
}

func TestFormatInterval(t *testing.T) {
	require.Equal(t, "[00:00:01.000 - 00:00:02.500]", FormatInterval(1, 2.5))
	require.Equal(t, "[01:00:00.000 - 01:00:01.250]", FormatInterval(3600, 3601.25))
}
