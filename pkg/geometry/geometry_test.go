package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDirection(t *testing.T) {
	cw, err := ParseDirection("+")
	require.NoError(t, err)
	assert.Equal(t, Clockwise, cw)

	ccw, err := ParseDirection("-")
	require.NoError(t, err)
	assert.Equal(t, CounterClockwise, ccw)

	_, err = ParseDirection("cw")
	assert.Error(t, err)
	_, err = ParseDirection("")
	assert.Error(t, err)

	assert.Equal(t, "+", Clockwise.String())
	assert.Equal(t, "-", CounterClockwise.String())
}

func TestDistNM(t *testing.T) {
	tests := []struct {
		label string
		a, b  Coord
		want  float64
	}{
		{"same point", Coord{Lat: 47, Lng: 8}, Coord{Lat: 47, Lng: 8}, 0},
		{"one degree of latitude", Coord{}, Coord{Lat: 1}, 60.04},
		{"one degree of longitude at equator", Coord{}, Coord{Lng: 1}, 60.04},
		{"across the dateline", Coord{Lng: 179.5}, Coord{Lng: -179.5}, 60.04},
	}

	for _, test := range tests {
		t.Run(test.label, func(t *testing.T) {
			assert.InDelta(t, test.want, DistNM(test.a, test.b), 0.1)
		})
	}
}

func TestBoundsOfCircle(t *testing.T) {
	circle := &Circle{Centerpoint: Coord{Lat: 47, Lng: 8}, Radius: 6}
	bounds := BoundsOf(circle)
	assert.InDelta(t, 46.9, bounds.MinLat, 1e-9)
	assert.InDelta(t, 47.1, bounds.MaxLat, 1e-9)
	assert.InDelta(t, 7.9, bounds.MinLng, 1e-9)
	assert.InDelta(t, 8.1, bounds.MaxLng, 1e-9)
}

func TestBoundsOfPolygon(t *testing.T) {
	polygon := &Polygon{Segments: []PolygonSegment{
		Point{Coord{Lat: 46, Lng: 8}},
		Point{Coord{Lat: 47, Lng: 9}},
		Point{Coord{Lat: 46.5, Lng: 8.5}},
	}}
	bounds := BoundsOf(polygon)
	assert.Equal(t, Bounds{MinLat: 46, MaxLat: 47, MinLng: 8, MaxLng: 9}, bounds)
}

// A boundary straddling the dateline must not report a box spanning the
// whole map; min and max swap so that MinLng is the smallest eastern
// longitude.
func TestBoundsOfPolygonDateline(t *testing.T) {
	polygon := &Polygon{Segments: []PolygonSegment{
		Point{Coord{Lat: -10, Lng: 175}},
		Point{Coord{Lat: 10, Lng: -178}},
	}}
	bounds := BoundsOf(polygon)
	assert.Equal(t, 175.0, bounds.MinLng)
	assert.Equal(t, -178.0, bounds.MaxLng)
}

func TestRoughArea(t *testing.T) {
	square := &Polygon{Segments: []PolygonSegment{
		Point{Coord{Lat: 0, Lng: 0}},
		Point{Coord{Lat: 0, Lng: 1}},
		Point{Coord{Lat: 1, Lng: 1}},
		Point{Coord{Lat: 1, Lng: 0}},
	}}
	assert.InDelta(t, 1.0, RoughArea(square), 1e-9)

	circle := &Circle{Centerpoint: Coord{Lat: 47, Lng: 8}, Radius: 60}
	assert.InDelta(t, 3.14159, RoughArea(circle), 1e-4)

	degenerate := &Polygon{Segments: []PolygonSegment{Point{Coord{Lat: 1, Lng: 1}}}}
	assert.Equal(t, 0.0, RoughArea(degenerate))
}

func TestContainsPoint(t *testing.T) {
	circle := &Circle{Centerpoint: Coord{Lat: 47, Lng: 8}, Radius: 5}
	assert.True(t, ContainsPoint(circle, Coord{Lat: 47, Lng: 8}))
	assert.True(t, ContainsPoint(circle, Coord{Lat: 47.05, Lng: 8}))
	assert.False(t, ContainsPoint(circle, Coord{Lat: 48, Lng: 8}))

	square := &Polygon{Segments: []PolygonSegment{
		Point{Coord{Lat: 46, Lng: 8}},
		Point{Coord{Lat: 46, Lng: 9}},
		Point{Coord{Lat: 47, Lng: 9}},
		Point{Coord{Lat: 47, Lng: 8}},
	}}
	assert.True(t, ContainsPoint(square, Coord{Lat: 46.5, Lng: 8.5}))
	assert.False(t, ContainsPoint(square, Coord{Lat: 45.5, Lng: 8.5}))
	assert.False(t, ContainsPoint(square, Coord{Lat: 46.5, Lng: 9.5}))
}
