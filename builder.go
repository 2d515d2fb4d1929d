package openair

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/curbz/openair/pkg/geometry"
)

// airspaceBuilder accumulates records for one airspace until the decoder
// finishes it. The carry-over variables (varX, varD) are ambient state
// consumed by later geometry records; they never appear on the finished
// airspace and die with the builder.
type airspaceBuilder struct {
	empty bool

	// Base records
	name       *string
	class      *Class
	lowerBound *Altitude
	upperBound *Altitude
	geom       geometry.Geometry

	// Extension records
	typ             *string
	frequency       *string
	callSign        *string
	transponderCode *uint16
	activationTimes *ActivationTimes

	// Variables
	varX *geometry.Coord
	varD *geometry.Direction
}

func newAirspaceBuilder() *airspaceBuilder {
	return &airspaceBuilder{empty: true}
}

// setOnce assigns a once-only field, rejecting a second assignment.
func setOnce[T any](b *airspaceBuilder, field **T, name string, val T) error {
	b.empty = false
	if *field != nil {
		return fmt.Errorf("could not set %s (already defined)", name)
	}
	*field = &val
	return nil
}

// setVar assigns a carry-over variable; overwriting is allowed.
func setVar[T any](b *airspaceBuilder, field **T, val T) {
	b.empty = false
	*field = &val
}

// addSegment appends a segment to the polygon geometry, initializing it if
// needed.
func (b *airspaceBuilder) addSegment(seg geometry.PolygonSegment) error {
	b.empty = false
	switch geom := b.geom.(type) {
	case nil:
		b.geom = &geometry.Polygon{Segments: []geometry.PolygonSegment{seg}}
	case *geometry.Polygon:
		geom.Segments = append(geom.Segments, seg)
	case *geometry.Circle:
		return errors.New("cannot add a point to a circle")
	}
	return nil
}

// setCircleRadius turns the builder into a circle geometry around the
// centerpoint currently in scope.
func (b *airspaceBuilder) setCircleRadius(radius float64) error {
	b.empty = false
	if b.geom != nil {
		return errors.New("geometry already set")
	}
	if b.varX == nil {
		return errors.New("centerpoint missing")
	}
	b.geom = &geometry.Circle{Centerpoint: *b.varX, Radius: radius}
	return nil
}

// direction returns the direction currently in scope, defaulting to
// clockwise.
func (b *airspaceBuilder) direction() geometry.Direction {
	if b.varD != nil {
		return *b.varD
	}
	return geometry.Clockwise
}

// process consumes one record.
func (b *airspaceBuilder) process(rec record) error {
	switch rec.kind {
	case recEmpty, recComment, recLabelPlacement, recPen, recBrush, recUnknownExtension:
		// No state change.
		return nil
	case recClass:
		return setOnce(b, &b.class, "class", rec.class)
	case recName:
		return setOnce(b, &b.name, "name", rec.text)
	case recLowerBound:
		return setOnce(b, &b.lowerBound, "lower bound", rec.altitude)
	case recUpperBound:
		return setOnce(b, &b.upperBound, "upper bound", rec.altitude)
	case recType:
		return setOnce(b, &b.typ, "type", rec.text)
	case recFrequency:
		return setOnce(b, &b.frequency, "frequency", rec.text)
	case recCallSign:
		return setOnce(b, &b.callSign, "call sign", rec.text)
	case recTransponderCode:
		return setOnce(b, &b.transponderCode, "transponder code", rec.transponderCode)
	case recActivationTimes:
		return setOnce(b, &b.activationTimes, "activation times", rec.activationTimes)
	case recVarX:
		setVar(b, &b.varX, rec.coord)
		return nil
	case recVarD:
		setVar(b, &b.varD, rec.direction)
		return nil
	case recPoint:
		return b.addSegment(geometry.Point{Coord: rec.coord})
	case recCircleRadius:
		return b.setCircleRadius(rec.radius)
	case recArcSegment:
		if b.varX == nil {
			return errors.New("centerpoint missing")
		}
		return b.addSegment(geometry.ArcSegment{
			Centerpoint: *b.varX,
			Radius:      rec.radius,
			AngleStart:  rec.angleStart,
			AngleEnd:    rec.angleEnd,
			Direction:   b.direction(),
		})
	case recArc:
		if b.varX == nil {
			return errors.New("centerpoint missing")
		}
		return b.addSegment(geometry.Arc{
			Centerpoint: *b.varX,
			Start:       rec.arcStart,
			End:         rec.arcEnd,
			Direction:   b.direction(),
		})
	}
	return fmt.Errorf("unhandled record kind %d", rec.kind)
}

// finish converts the accumulated records into an immutable airspace. All
// required fields must be present.
func (b *airspaceBuilder) finish() (*Airspace, error) {
	if b.name == nil {
		return nil, errors.New("missing name")
	}
	log.Debugf("Finish %q", *b.name)
	if b.class == nil {
		return nil, fmt.Errorf("missing class for '%s'", *b.name)
	}
	if b.lowerBound == nil {
		return nil, fmt.Errorf("missing lower bound for '%s'", *b.name)
	}
	if b.upperBound == nil {
		return nil, fmt.Errorf("missing upper bound for '%s'", *b.name)
	}
	if b.geom == nil {
		return nil, fmt.Errorf("missing geometry for '%s'", *b.name)
	}
	return &Airspace{
		Name:            *b.name,
		Class:           *b.class,
		Type:            b.typ,
		LowerBound:      *b.lowerBound,
		UpperBound:      *b.upperBound,
		Geom:            b.geom,
		Frequency:       b.frequency,
		CallSign:        b.callSign,
		TransponderCode: b.transponderCode,
		ActivationTimes: b.activationTimes,
	}, nil
}
