package openair

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curbz/openair/pkg/geometry"
)

func TestWriteCircle(t *testing.T) {
	airspace := Airspace{
		Name:       "Test Zone",
		Class:      ClassD,
		LowerBound: Gnd(),
		UpperBound: FlightLevel(100),
		Geom:       &geometry.Circle{Centerpoint: geometry.Coord{Lat: 47, Lng: 8}, Radius: 5},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, []Airspace{airspace}))

	want := strings.Join([]string{
		"AC D",
		"AN Test Zone",
		"AL GND",
		"AH FL100",
		"V X=47:00:00 N 008:00:00 E",
		"DC 5",
		"",
	}, "\r\n")
	assert.Equal(t, want, buf.String())
}

func TestWriteExtensionRecords(t *testing.T) {
	typ := "TMZ"
	frequency := "128.505"
	callSign := "Zurich Information"
	code := uint16(7000)
	start := time.Date(2023, 4, 1, 8, 0, 0, 0, time.UTC)

	airspace := Airspace{
		Name:            "Lorem Ipsum",
		Class:           ClassTransponderMandatoryZone,
		Type:            &typ,
		LowerBound:      FeetAmsl(4500),
		UpperBound:      Unlimited(),
		Geom:            &geometry.Circle{Centerpoint: geometry.Coord{Lat: 47, Lng: 8}, Radius: 2.5},
		Frequency:       &frequency,
		CallSign:        &callSign,
		TransponderCode: &code,
		ActivationTimes: &ActivationTimes{Start: &start},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, []Airspace{airspace}))

	want := strings.Join([]string{
		"AC TMZ",
		"AY TMZ",
		"AN Lorem Ipsum",
		"AL 4500ft AMSL",
		"AH UNLIM",
		"AF 128.505",
		"AG Zurich Information",
		"AX 7000",
		"AA 2023-04-01T08:00:00Z/NONE",
		"V X=47:00:00 N 008:00:00 E",
		"DC 2.5",
		"",
	}, "\r\n")
	assert.Equal(t, want, buf.String())
}

func TestWritePolygon(t *testing.T) {
	center, err := geometry.ParseCoord("46:30:00 N 008:30:00 E")
	require.NoError(t, err)

	airspace := Airspace{
		Name:       "Polygon Zone",
		Class:      ClassRestricted,
		LowerBound: FeetAgl(2000),
		UpperBound: FlightLevel(195),
		Geom: &geometry.Polygon{Segments: []geometry.PolygonSegment{
			geometry.Point{Coord: geometry.Coord{Lat: 46, Lng: 8}},
			geometry.ArcSegment{
				Centerpoint: center,
				Radius:      10,
				AngleStart:  270,
				AngleEnd:    290,
				Direction:   geometry.CounterClockwise,
			},
			geometry.Arc{
				Centerpoint: center,
				Start:       geometry.Coord{Lat: 46.5, Lng: 8},
				End:         geometry.Coord{Lat: 46.5, Lng: 9},
				Direction:   geometry.Clockwise,
			},
			geometry.Point{Coord: geometry.Coord{Lat: 47, Lng: 8}},
		}},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, []Airspace{airspace}))

	want := strings.Join([]string{
		"AC R",
		"AN Polygon Zone",
		"AL 2000ft AGL",
		"AH FL195",
		"DP 46:00:00 N 008:00:00 E",
		"V X=46:30:00 N 008:30:00 E",
		"V D=-",
		"DA 10, 270, 290",
		"V X=46:30:00 N 008:30:00 E",
		"V D=+",
		"DB 46:30:00 N 008:00:00 E, 46:30:00 N 009:00:00 E",
		"DP 47:00:00 N 008:00:00 E",
		"",
	}, "\r\n")
	assert.Equal(t, want, buf.String())
}

// Consecutive airspaces are separated by exactly one blank line; writing
// nothing produces nothing.
func TestWriteSeparation(t *testing.T) {
	a := Airspace{
		Name:       "First",
		Class:      ClassD,
		LowerBound: Gnd(),
		UpperBound: FlightLevel(100),
		Geom:       &geometry.Circle{Centerpoint: geometry.Coord{Lat: 47, Lng: 8}, Radius: 5},
	}
	b := a
	b.Name = "Second"

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, []Airspace{a, b}))

	out := buf.String()
	assert.Contains(t, out, "DC 5\r\n\r\nAC D\r\nAN Second\r\n")
	assert.True(t, strings.HasSuffix(out, "DC 5\r\n"))
	assert.False(t, strings.HasSuffix(out, "\r\n\r\n"))

	buf.Reset()
	require.NoError(t, Write(&buf, nil))
	assert.Zero(t, buf.Len())
}

// Parsing canonical output must reproduce the same airspaces, and writing
// them again the same bytes.
func TestWriteParseRoundTrip(t *testing.T) {
	input := strings.Join([]string{
		"AC D",
		"AN Test Zone",
		"AL GND",
		"AH FL100",
		"V X=47:00:00 N 008:00:00 E",
		"DC 5",
		"",
		"AC R",
		"AN Polygon Zone",
		"AL 2000ft AGL",
		"AH UNLIM",
		"DP 46:00:00 N 008:00:00 E",
		"V X=46:30:00 N 008:30:00 E",
		"V D=-",
		"DA 10, 270, 290",
		"DP 47:00:00 N 008:00:00 E",
		"",
	}, "\r\n")

	airspaces, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, airspaces, 2)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, airspaces))
	assert.Equal(t, input, buf.String())

	again, err := Parse(&buf)
	require.NoError(t, err)
	assert.Equal(t, airspaces, again)
}
