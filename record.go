package openair

import (
	"fmt"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/curbz/openair/pkg/geometry"
)

// recordKind discriminates the record variants.
type recordKind int

const (
	// Ignored records (no payload kept)
	recEmpty recordKind = iota
	recComment
	recLabelPlacement
	recPen
	recBrush
	recUnknownExtension

	// Airspace base records
	recClass
	recName
	recLowerBound
	recUpperBound

	// Extension records
	recType
	recFrequency
	recCallSign
	recTransponderCode
	recActivationTimes

	// Variable records: these only update ambient assembler state, they
	// never contribute a segment themselves.
	recVarX
	recVarD

	// Geometry records
	recPoint
	recCircleRadius
	recArcSegment
	recArc
)

// record is one decoded line. It is created per line by the decoder and
// never outlives the line it came from.
type record struct {
	kind recordKind

	text            string // name, type, frequency, call sign, or verbatim unknown extension
	class           Class
	altitude        Altitude
	activationTimes ActivationTimes
	transponderCode uint16

	coord      geometry.Coord     // V X= and DP
	direction  geometry.Direction // V D=
	radius     float64            // DC and DA
	angleStart float64            // DA
	angleEnd   float64            // DA
	arcStart   geometry.Coord     // DB
	arcEnd     geometry.Coord     // DB
}

// validateAngle checks an arc segment angle is within 0..360 degrees.
func validateAngle(val float64) (float64, error) {
	if val > 360 {
		return 0, fmt.Errorf("angle %v too large", val)
	}
	if val < 0 {
		return 0, fmt.Errorf("angle %v is negative", val)
	}
	return val, nil
}

// parseRecord classifies one line into a typed record.
//
// A leading '*' marks a comment regardless of the two-letter scheme.
// Otherwise the first two non-whitespace characters form the tag and
// everything after the first space is the payload. Unknown tags starting
// with 'A' are extension records and kept verbatim; any other unknown tag
// is an error.
func parseRecord(line string) (record, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return record{kind: recEmpty}, nil
	}

	t1 := trimmed[0]
	t2 := byte(' ')
	for i := 1; i < len(trimmed); i++ {
		if c := trimmed[i]; c != ' ' && c != '\t' {
			t2 = c
			break
		}
	}

	data := ""
	if i := strings.IndexByte(trimmed, ' '); i != -1 {
		data = strings.TrimSpace(trimmed[i+1:])
	}

	if t1 == '*' {
		return record{kind: recComment}, nil
	}

	tag := string([]byte{t1, t2})
	log.Tracef("record %s", tag)
	switch tag {
	case "AC":
		class, err := ParseClass(data)
		if err != nil {
			return record{}, err
		}
		return record{kind: recClass, class: class}, nil
	case "AN":
		return record{kind: recName, text: data}, nil
	case "AL":
		altitude, err := ParseAltitude(data)
		if err != nil {
			return record{}, err
		}
		return record{kind: recLowerBound, altitude: altitude}, nil
	case "AH":
		altitude, err := ParseAltitude(data)
		if err != nil {
			return record{}, err
		}
		return record{kind: recUpperBound, altitude: altitude}, nil
	case "AT":
		// Label placement hint, ignored.
		return record{kind: recLabelPlacement}, nil
	case "AY":
		return record{kind: recType, text: data}, nil
	case "AF":
		return record{kind: recFrequency, text: data}, nil
	case "AG":
		return record{kind: recCallSign, text: data}, nil
	case "AX":
		code, err := strconv.ParseUint(data, 10, 16)
		if err != nil {
			return record{}, fmt.Errorf("invalid transponder code: %s", data)
		}
		return record{kind: recTransponderCode, transponderCode: uint16(code)}, nil
	case "AA":
		times, err := ParseActivationTimes(data)
		if err != nil {
			return record{}, err
		}
		return record{kind: recActivationTimes, activationTimes: times}, nil
	case "SP":
		return record{kind: recPen}, nil
	case "SB":
		return record{kind: recBrush}, nil
	case "VX":
		// "V X=<coord>": the payload starts after the "X=" assignment.
		coord, err := geometry.ParseCoord(payloadAfterAssignment(data))
		if err != nil {
			return record{}, err
		}
		return record{kind: recVarX, coord: coord}, nil
	case "VD":
		direction, err := geometry.ParseDirection(payloadAfterAssignment(data))
		if err != nil {
			return record{}, err
		}
		return record{kind: recVarD, direction: direction}, nil
	case "DP":
		coord, err := geometry.ParseCoord(data)
		if err != nil {
			return record{}, err
		}
		return record{kind: recPoint, coord: coord}, nil
	case "DC":
		radius, err := strconv.ParseFloat(data, 64)
		if err != nil {
			return record{}, fmt.Errorf("invalid radius: %s", data)
		}
		return record{kind: recCircleRadius, radius: radius}, nil
	case "DA":
		parts := strings.Split(data, ",")
		if len(parts) != 3 {
			return record{}, fmt.Errorf("invalid arc segment data: %s", data)
		}
		vals := make([]float64, 3)
		for i, part := range parts {
			val, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
			if err != nil {
				return record{}, fmt.Errorf("invalid arc segment data: %s", data)
			}
			vals[i] = val
		}
		angleStart, err := validateAngle(vals[1])
		if err != nil {
			return record{}, err
		}
		angleEnd, err := validateAngle(vals[2])
		if err != nil {
			return record{}, err
		}
		return record{kind: recArcSegment, radius: vals[0], angleStart: angleStart, angleEnd: angleEnd}, nil
	case "DB":
		parts := strings.Split(data, ",")
		if len(parts) != 2 {
			return record{}, fmt.Errorf("invalid arc data: %s", data)
		}
		start, err := geometry.ParseCoord(strings.TrimSpace(parts[0]))
		if err != nil {
			return record{}, fmt.Errorf("invalid arc data: %s", data)
		}
		end, err := geometry.ParseCoord(strings.TrimSpace(parts[1]))
		if err != nil {
			return record{}, fmt.Errorf("invalid arc data: %s", data)
		}
		return record{kind: recArc, arcStart: start, arcEnd: end}, nil
	}

	if t1 == 'A' {
		// Unknown extension record, kept verbatim.
		return record{kind: recUnknownExtension, text: trimmed}, nil
	}
	return record{}, fmt.Errorf("parse error (unexpected %q)", tag)
}

// payloadAfterAssignment strips the leading "X=" / "D=" from a variable
// record payload.
func payloadAfterAssignment(data string) string {
	if len(data) < 2 {
		return ""
	}
	return data[2:]
}
