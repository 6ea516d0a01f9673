package logtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeIsMonotoneAcrossSeconds(t *testing.T) {
	a, ok := Decode("7/20/2025 19:32:01.000")
	require.True(t, ok)
	b, ok := Decode("7/20/2025 19:32:02.500")
	require.True(t, ok)
	assert.Greater(t, b, a)
	assert.InDelta(t, 1.5, b-a, 0.0001)
}

func TestDecodeHandlesMissingFraction(t *testing.T) {
	v, ok := Decode("7/20/2025 19:32:01")
	require.True(t, ok)
	assert.Greater(t, v, 0.0)
}

func TestDecodeRejectsMalformedText(t *testing.T) {
	_, ok := Decode("not a timestamp")
	assert.False(t, ok)

	_, ok = Decode("7/20/2025")
	assert.False(t, ok)
}

func TestDecodeHandlesShortAndLongFractions(t *testing.T) {
	a, ok := Decode("1/1/2025 00:00:00.5")
	require.True(t, ok)
	b, ok := Decode("1/1/2025 00:00:00.5000")
	require.True(t, ok)
	assert.InDelta(t, a, b, 0.0001)
}

func TestFormatRendersClockString(t *testing.T) {
	seconds, ok := Decode("7/20/2025 19:32:01.250")
	require.True(t, ok)
	s := Format(seconds)
	assert.Contains(t, s, ":")
}

func TestFormatNeverPanicsOnNegative(t *testing.T) {
	assert.NotPanics(t, func() { Format(-5) })
}
