package geo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDistanceKM(t *testing.T) {
	t.Parallel()

	campus := Point{Lat: 45.0875, Lng: -64.3665}
	require.Zero(t, DistanceKM(campus, campus))

	// Wolfville to Halifax is about 79 km in a straight line.
	halifax := Point{Lat: 44.6488, Lng: -63.5752}
	d := DistanceKM(campus, halifax)
	require.InDelta(t, 78, d, 8)
	require.InDelta(t, d, DistanceKM(halifax, campus), 1e-9)
}

func TestFormatDistance(t *testing.T) {
	t.Parallel()

	tests := []struct {
		km   float64
		want string
	}{
		{0, "0m"},
		{0.85, "850m"},
		{0.9996, "1000m"},
		{1, "1.0km"},
		{1.24, "1.2km"},
		{12.34, "12.3km"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, FormatDistance(tt.km), "km=%v", tt.km)
	}
}
