package openair

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// AltitudeKind discriminates the altitude variants.
type AltitudeKind int

const (
	AltGnd         AltitudeKind = iota // ground/surface level
	AltFeetAmsl                        // feet above mean sea level
	AltFeetAgl                         // feet above ground level
	AltFlightLevel                     // flight level (hundreds of feet)
	AltUnlimited                       // unlimited
	AltOther                           // unrecognized notation, kept verbatim
)

// Altitude is a vertical bound of an airspace.
//
// Real-world files are wildly inconsistent about altitude notation, so
// anything that cannot be classified is kept as AltOther with the original
// text rather than rejected. That leniency is specific to altitudes;
// coordinates and geometry stay strict.
type Altitude struct {
	Kind AltitudeKind
	Val  int    // feet for AltFeetAmsl/AltFeetAgl, level for AltFlightLevel
	Text string // original notation for AltOther
}

// Gnd returns the ground/surface level altitude.
func Gnd() Altitude { return Altitude{Kind: AltGnd} }

// FeetAmsl returns an altitude in feet above mean sea level.
func FeetAmsl(ft int) Altitude { return Altitude{Kind: AltFeetAmsl, Val: ft} }

// FeetAgl returns an altitude in feet above ground level.
func FeetAgl(ft int) Altitude { return Altitude{Kind: AltFeetAgl, Val: ft} }

// FlightLevel returns a flight level altitude.
func FlightLevel(level int) Altitude { return Altitude{Kind: AltFlightLevel, Val: level} }

// Unlimited returns the unlimited altitude.
func Unlimited() Altitude { return Altitude{Kind: AltUnlimited} }

func otherAltitude(data string) Altitude {
	return Altitude{Kind: AltOther, Text: data}
}

// isAmslSuffix reports whether a suffix means above mean sea level. An
// empty suffix defaults to AMSL; altitudes without a reference are feet
// above mean sea level.
func isAmslSuffix(s string) bool {
	return s == "" || strings.EqualFold(s, "amsl") || strings.EqualFold(s, "msl")
}

// isAglSuffix reports whether a suffix means above ground level.
func isAglSuffix(s string) bool {
	return strings.EqualFold(s, "agl") || strings.EqualFold(s, "gnd") || strings.EqualFold(s, "sfc")
}

// metersToFeet converts meters to feet, rounded to the nearest foot. Meter
// values whose conversion would not fit a signed 32 bit foot count are
// rejected.
func metersToFeet(val int) (int, error) {
	if val > 654_553_015 {
		return 0, fmt.Errorf("meter value out of bounds (too large)")
	}
	if val < -654_553_016 {
		return 0, fmt.Errorf("meter value out of bounds (too small)")
	}
	return int(math.Round(float64(val) / 0.3048)), nil
}

// ParseAltitude decodes an AL/AH record payload.
//
// Recognized, case-insensitively: GND/SFC/0, UNL/UNLIM/UNLTD/UNLIMITED,
// FL<level>, and <digits><suffix> where the suffix may carry a unit (ft or
// m, meters are converted to feet) and a reference level (AMSL/MSL or
// AGL/GND/SFC). Unclassifiable notation becomes AltOther, not an error;
// only a meter value too large to convert is rejected.
func ParseAltitude(data string) (Altitude, error) {
	eq := strings.EqualFold

	// SFC (surface) is another abbreviation for GND.
	if eq(data, "gnd") || eq(data, "sfc") || data == "0" {
		return Gnd(), nil
	}

	if eq(data, "unl") || eq(data, "unlim") || eq(data, "unltd") || eq(data, "unlimited") {
		return Unlimited(), nil
	}

	if len(data) >= 2 && eq(data[:2], "fl") {
		level, err := strconv.ParseUint(strings.TrimSpace(data[2:]), 10, 16)
		if err != nil {
			return otherAltitude(data), nil
		}
		return FlightLevel(int(level)), nil
	}

	// Split the leading run of digits (the magnitude) from the suffix.
	pos := strings.IndexFunc(data, func(c rune) bool { return c < '0' || c > '9' })
	if pos == -1 {
		pos = len(data)
	}
	number, rest := data[:pos], strings.TrimSpace(data[pos:])

	v, err := strconv.ParseInt(number, 10, 32)
	if err != nil {
		return otherAltitude(data), nil
	}
	val := int(v)

	// Bare reference suffixes first ("1000 MSL", "1000 AGL").
	if isAmslSuffix(rest) {
		return FeetAmsl(val), nil
	}
	if isAglSuffix(rest) {
		return FeetAgl(val), nil
	}

	// Otherwise "unit [reference]" ("ft AMSL", "m AGL", "ft", "m").
	spacePos := strings.IndexFunc(rest, unicode.IsSpace)
	if spacePos == -1 {
		spacePos = len(rest)
	}
	unit, reference := rest[:spacePos], strings.TrimSpace(rest[spacePos:])

	if eq(unit, "m") {
		if val, err = metersToFeet(val); err != nil {
			return Altitude{}, err
		}
	} else if !eq(unit, "ft") {
		return otherAltitude(data), nil
	}

	if isAmslSuffix(reference) {
		return FeetAmsl(val), nil
	}
	if isAglSuffix(reference) {
		return FeetAgl(val), nil
	}

	return otherAltitude(data), nil
}

// encode returns the canonical OpenAir notation for the altitude.
func (a Altitude) encode() string {
	switch a.Kind {
	case AltGnd:
		return "GND"
	case AltFeetAmsl:
		return fmt.Sprintf("%dft AMSL", a.Val)
	case AltFeetAgl:
		return fmt.Sprintf("%dft AGL", a.Val)
	case AltFlightLevel:
		return fmt.Sprintf("FL%d", a.Val)
	case AltUnlimited:
		return "UNLIM"
	default:
		return a.Text
	}
}

func (a Altitude) String() string {
	switch a.Kind {
	case AltGnd:
		return "GND"
	case AltFeetAmsl:
		return fmt.Sprintf("%d ft AMSL", a.Val)
	case AltFeetAgl:
		return fmt.Sprintf("%d ft AGL", a.Val)
	case AltFlightLevel:
		return fmt.Sprintf("FL%d", a.Val)
	case AltUnlimited:
		return "Unlimited"
	default:
		return fmt.Sprintf("?(%s)", a.Text)
	}
}

// MarshalJSON renders the altitude as a tagged value for the JSON
// projection, e.g. {"type":"FeetAmsl","val":4500}.
func (a Altitude) MarshalJSON() ([]byte, error) {
	type tagged struct {
		Type string `json:"type"`
		Val  any    `json:"val,omitempty"`
	}
	switch a.Kind {
	case AltGnd:
		return json.Marshal(tagged{Type: "Gnd"})
	case AltFeetAmsl:
		return json.Marshal(tagged{Type: "FeetAmsl", Val: a.Val})
	case AltFeetAgl:
		return json.Marshal(tagged{Type: "FeetAgl", Val: a.Val})
	case AltFlightLevel:
		return json.Marshal(tagged{Type: "FlightLevel", Val: a.Val})
	case AltUnlimited:
		return json.Marshal(tagged{Type: "Unlimited"})
	default:
		return json.Marshal(tagged{Type: "Other", Val: a.Text})
	}
}
