// Package geometry holds the geometric building blocks of an airspace
// boundary: coordinates, arc directions, polygon segments and the geometry
// variants themselves, plus a few rough helpers for working with parsed
// boundaries (distance, bounding box, area, point containment).
package geometry

import (
	"fmt"
	"math"
)

// Direction is the direction of an arc, either clockwise or
// counterclockwise. The zero value is clockwise, which is also the default
// when a file does not specify one.
type Direction int

const (
	Clockwise Direction = iota
	CounterClockwise
)

// ParseDirection decodes a direction assignment payload ("+" or "-").
func ParseDirection(data string) (Direction, error) {
	switch data {
	case "+":
		return Clockwise, nil
	case "-":
		return CounterClockwise, nil
	}
	return 0, fmt.Errorf("invalid direction: %s", data)
}

// String returns the OpenAir notation for the direction.
func (d Direction) String() string {
	if d == CounterClockwise {
		return "-"
	}
	return "+"
}

// MarshalText renders the direction for the JSON projection.
func (d Direction) MarshalText() ([]byte, error) {
	if d == CounterClockwise {
		return []byte("ccw"), nil
	}
	return []byte("cw"), nil
}

// PolygonSegment is one element of a polygon boundary: a Point, an Arc or
// an ArcSegment.
type PolygonSegment interface {
	polygonSegment()
}

// Point is a plain polygon vertex (DP record).
type Point struct {
	Coord Coord `json:"coord"`
}

// Arc is an arc between two boundary points around a centerpoint
// (DB record).
type Arc struct {
	Centerpoint Coord     `json:"centerpoint"`
	Start       Coord     `json:"start"`
	End         Coord     `json:"end"`
	Direction   Direction `json:"direction"`
}

// ArcSegment is an arc described by a radius in nautical miles and a start
// and end angle in degrees (DA record).
type ArcSegment struct {
	Centerpoint Coord     `json:"centerpoint"`
	Radius      float64   `json:"radius"`
	AngleStart  float64   `json:"angleStart"`
	AngleEnd    float64   `json:"angleEnd"`
	Direction   Direction `json:"direction"`
}

func (Point) polygonSegment()      {}
func (Arc) polygonSegment()        {}
func (ArcSegment) polygonSegment() {}

// Geometry is the boundary of an airspace, exclusively either a *Polygon
// or a *Circle.
type Geometry interface {
	geometry()
	fmt.Stringer
}

// Polygon is a sequence of segments. It may be open or closed.
type Polygon struct {
	Segments []PolygonSegment `json:"segments"`
}

// Circle is a circular boundary around a centerpoint, with the radius in
// nautical miles (1 NM = 1852 m).
type Circle struct {
	Centerpoint Coord   `json:"centerpoint"`
	Radius      float64 `json:"radius"`
}

func (*Polygon) geometry() {}
func (*Circle) geometry()  {}

func (p *Polygon) String() string {
	return fmt.Sprintf("Polygon[%d]", len(p.Segments))
}

func (c *Circle) String() string {
	return fmt.Sprintf("Circle[r=%vNM]", c.Radius)
}

// DistNM returns the great-circle distance between two coordinates in
// nautical miles.
func DistNM(a, b Coord) float64 {
	const earthRadiusNM = 3440.06
	r1 := a.Lat * math.Pi / 180
	r2 := b.Lat * math.Pi / 180

	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	// Handle dateline crossing.
	for dLng > math.Pi {
		dLng -= 2 * math.Pi
	}
	for dLng < -math.Pi {
		dLng += 2 * math.Pi
	}

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(r1)*math.Cos(r2)*math.Sin(dLng/2)*math.Sin(dLng/2)

	return earthRadiusNM * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// vertices flattens a polygon into plain coordinates. Arcs contribute
// their endpoints, arc segments their centerpoint. All consumers of this
// approximation (bounds, area, containment) are explicitly rough.
func (p *Polygon) vertices() []Coord {
	var vs []Coord
	for _, seg := range p.Segments {
		switch s := seg.(type) {
		case Point:
			vs = append(vs, s.Coord)
		case Arc:
			vs = append(vs, s.Start, s.End)
		case ArcSegment:
			vs = append(vs, s.Centerpoint)
		}
	}
	return vs
}

// Bounds is a latitude/longitude bounding box. For boxes crossing the
// dateline, MinLng is east of MaxLng (e.g. 165 to -140).
type Bounds struct {
	MinLat float64 `json:"minLat"`
	MaxLat float64 `json:"maxLat"`
	MinLng float64 `json:"minLng"`
	MaxLng float64 `json:"maxLng"`
}

// BoundsOf computes a rough bounding box for a geometry using flat degree
// arithmetic. Circles and arc segments are expanded by their radius at 60
// NM per degree.
func BoundsOf(g Geometry) Bounds {
	switch g := g.(type) {
	case *Circle:
		r := g.Radius / 60
		return Bounds{
			MinLat: g.Centerpoint.Lat - r,
			MaxLat: g.Centerpoint.Lat + r,
			MinLng: g.Centerpoint.Lng - r,
			MaxLng: g.Centerpoint.Lng + r,
		}
	case *Polygon:
		var pts []Coord
		for _, seg := range g.Segments {
			switch s := seg.(type) {
			case Point:
				pts = append(pts, s.Coord)
			case Arc:
				pts = append(pts, s.Start, s.End, s.Centerpoint)
			case ArcSegment:
				r := s.Radius / 60
				pts = append(pts,
					Coord{Lat: s.Centerpoint.Lat - r, Lng: s.Centerpoint.Lng - r},
					Coord{Lat: s.Centerpoint.Lat + r, Lng: s.Centerpoint.Lng + r})
			}
		}
		return boundsOfPoints(pts)
	}
	return Bounds{}
}

func boundsOfPoints(pts []Coord) Bounds {
	if len(pts) == 0 {
		return Bounds{}
	}

	minLat, maxLat := 90.0, -90.0
	for _, p := range pts {
		minLat = math.Min(minLat, p.Lat)
		maxLat = math.Max(maxLat, p.Lat)
	}

	// Longitude needs care: a boundary with points on both sides of the
	// dateline spanning more than 180 degrees wraps around the back of the
	// map, so min/max swap roles.
	actualMin, actualMax := 180.0, -180.0
	hasEast, hasWest := false, false
	for _, p := range pts {
		if p.Lng > 0 {
			hasEast = true
		}
		if p.Lng < 0 {
			hasWest = true
		}
		actualMin = math.Min(actualMin, p.Lng)
		actualMax = math.Max(actualMax, p.Lng)
	}

	minLng, maxLng := actualMin, actualMax
	if hasEast && hasWest && actualMax-actualMin > 180 {
		minLng, maxLng = 180.0, -180.0
		for _, p := range pts {
			if p.Lng > 0 && p.Lng < minLng {
				minLng = p.Lng // smallest eastern longitude
			}
			if p.Lng < 0 && p.Lng > maxLng {
				maxLng = p.Lng // largest western longitude
			}
		}
	}

	return Bounds{MinLat: minLat, MaxLat: maxLat, MinLng: minLng, MaxLng: maxLng}
}

// RoughArea approximates the area enclosed by a geometry in square
// degrees, treating latitude/longitude as planar coordinates. Useful for
// ordering airspaces by specificity, nothing more.
func RoughArea(g Geometry) float64 {
	switch g := g.(type) {
	case *Circle:
		r := g.Radius / 60
		return math.Pi * r * r
	case *Polygon:
		return shoelace(g.vertices())
	}
	return 0
}

func shoelace(polygon []Coord) float64 {
	if len(polygon) < 3 {
		return 0
	}

	var area float64
	j := len(polygon) - 1
	for i := 0; i < len(polygon); i++ {
		latI, lngI := polygon[i].Lat, polygon[i].Lng
		latJ, lngJ := polygon[j].Lat, polygon[j].Lng

		// Normalize point j relative to point i so dateline-crossing edges
		// stay continuous.
		if d := lngJ - lngI; d > 180 {
			lngJ -= 360
		} else if d < -180 {
			lngJ += 360
		}

		area += latI*lngJ - latJ*lngI
		j = i
	}

	return math.Abs(area / 2)
}

// ContainsPoint reports whether a coordinate lies within a geometry.
// Circles use great-circle distance; polygons use ray casting over the
// flattened vertices, so arcs are approximated by their endpoints.
func ContainsPoint(g Geometry, c Coord) bool {
	switch g := g.(type) {
	case *Circle:
		return DistNM(g.Centerpoint, c) <= g.Radius
	case *Polygon:
		return pointInPolygon(c, g.vertices())
	}
	return false
}

func pointInPolygon(c Coord, polygon []Coord) bool {
	if len(polygon) < 3 {
		return false
	}

	inside := false
	j := len(polygon) - 1
	for i := 0; i < len(polygon); i++ {
		latI, lngI := polygon[i].Lat, polygon[i].Lng
		latJ, lngJ := polygon[j].Lat, polygon[j].Lng

		// Shift edge endpoints so edges crossing the dateline are
		// continuous relative to the probe point.
		if lngI-c.Lng > 180 {
			lngI -= 360
		} else if lngI-c.Lng < -180 {
			lngI += 360
		}
		if lngJ-c.Lng > 180 {
			lngJ -= 360
		} else if lngJ-c.Lng < -180 {
			lngJ += 360
		}

		if (lngI > c.Lng) != (lngJ > c.Lng) &&
			c.Lat < (latJ-latI)*(c.Lng-lngI)/(lngJ-lngI)+latI {
			inside = !inside
		}
		j = i
	}

	return inside
}
