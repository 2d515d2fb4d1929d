package openair

import (
	"fmt"
	"io"
	"strconv"

	"github.com/curbz/openair/pkg/geometry"
)

// Record lines end with the format's two-byte CRLF terminator.
const lineTerminator = "\r\n"

// Encoder serializes airspaces to an OpenAir stream, one at a time.
// Consecutive airspaces are separated by a single blank line.
type Encoder struct {
	w     io.Writer
	count int
}

func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// Encode writes one airspace.
func (e *Encoder) Encode(a *Airspace) error {
	if e.count > 0 {
		if _, err := io.WriteString(e.w, lineTerminator); err != nil {
			return err
		}
	}
	e.count++
	return writeAirspace(e.w, a)
}

// lineWriter emits record lines, latching the first write error.
type lineWriter struct {
	w   io.Writer
	err error
}

func (lw *lineWriter) recordf(format string, args ...any) {
	if lw.err != nil {
		return
	}
	_, lw.err = fmt.Fprintf(lw.w, format+lineTerminator, args...)
}

// fmtFloat renders a float with the fewest digits that round-trip, so a
// radius of 5 serializes as "5", not "5.000000".
func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// writeAirspace emits the records of one airspace in fixed order: class,
// optional type, name, bounds, optional extensions, then geometry. The
// carry-over variable lines a polygon's arcs rely on (centerpoint,
// direction) are re-derived from the segments at write time.
func writeAirspace(w io.Writer, a *Airspace) error {
	lw := &lineWriter{w: w}

	lw.recordf("AC %s", a.Class.Code())
	if a.Type != nil {
		lw.recordf("AY %s", *a.Type)
	}
	lw.recordf("AN %s", a.Name)
	lw.recordf("AL %s", a.LowerBound.encode())
	lw.recordf("AH %s", a.UpperBound.encode())
	if a.Frequency != nil {
		lw.recordf("AF %s", *a.Frequency)
	}
	if a.CallSign != nil {
		lw.recordf("AG %s", *a.CallSign)
	}
	if a.TransponderCode != nil {
		lw.recordf("AX %d", *a.TransponderCode)
	}
	if a.ActivationTimes != nil {
		lw.recordf("AA %s", a.ActivationTimes.encode())
	}

	switch geom := a.Geom.(type) {
	case *geometry.Circle:
		lw.recordf("V X=%s", geom.Centerpoint)
		lw.recordf("DC %s", fmtFloat(geom.Radius))
	case *geometry.Polygon:
		for _, seg := range geom.Segments {
			switch s := seg.(type) {
			case geometry.Point:
				lw.recordf("DP %s", s.Coord)
			case geometry.ArcSegment:
				lw.recordf("V X=%s", s.Centerpoint)
				lw.recordf("V D=%s", s.Direction)
				lw.recordf("DA %s, %s, %s",
					fmtFloat(s.Radius), fmtFloat(s.AngleStart), fmtFloat(s.AngleEnd))
			case geometry.Arc:
				lw.recordf("V X=%s", s.Centerpoint)
				lw.recordf("V D=%s", s.Direction)
				lw.recordf("DB %s, %s", s.Start, s.End)
			}
		}
	}

	return lw.err
}
