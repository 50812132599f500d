package timecode

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromFrame(t *testing.T) {
	tests := []struct {
		name  string
		frame int
		fps   float64
		want  string
	}{
		{"zero", 0, 30, "00:00:00"},
		{"ten seconds", 300, 30, "00:00:10"},
		{"three minutes", 5400, 30, "00:03:00"},
		{"goal example", 1950, 30, "00:01:05"},
		{"truncates partial second", 29, 30, "00:00:00"},
		{"one hour", 108000, 30, "01:00:00"},
		{"ntsc rate", 30000, 29.97, "00:16:41"},
		{"beyond a day", 25 * 3600 * 25, 25, "25:00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromFrame(tt.frame, tt.fps)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFromFrame_Deterministic(t *testing.T) {
	first, err := FromFrame(123456, 59.94)
	require.NoError(t, err)
	for i := 0; i < 100; i++ {
		got, err := FromFrame(123456, 59.94)
		require.NoError(t, err)
		assert.Equal(t, first, got)
	}
}

func TestFromFrame_InvalidFrameRate(t *testing.T) {
	for _, fps := range []float64{0, -30, math.NaN(), math.Inf(1)} {
		_, err := FromFrame(100, fps)
		assert.ErrorIs(t, err, ErrInvalidFrameRate, "fps=%v", fps)
	}
}

func TestFromFrame_NegativeFrame(t *testing.T) {
	_, err := FromFrame(-1, 30)
	assert.ErrorIs(t, err, ErrNegativeFrame)
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"00:01:05", 65},
		{"01:00:00", 3600},
		{"03:00", 180},
		{"42", 42},
		{" 00:00:10 ", 10},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, in := range []string{"", "aa:bb", "00:61:00", "1:2:3:4", "-1", "00:00:60"} {
		_, err := Parse(in)
		assert.ErrorIs(t, err, ErrInvalidTimeCode, in)
	}
}

func TestToFrame_RoundTrip(t *testing.T) {
	for _, fps := range []float64{24, 25, 30, 50, 60} {
		for _, sec := range []int{0, 1, 65, 3599, 7200} {
			frame, err := ToFrame(sec, fps)
			require.NoError(t, err)

			tc, err := FromFrame(frame, fps)
			require.NoError(t, err)
			assert.Equal(t, Format(sec), tc, "fps=%v sec=%d", fps, sec)
		}
	}
}

func TestToFrame_InvalidFrameRate(t *testing.T) {
	_, err := ToFrame(10, 0)
	assert.ErrorIs(t, err, ErrInvalidFrameRate)
}
