package geometry

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	log "github.com/sirupsen/logrus"
)

// Coord is a WGS84 coordinate pair in signed decimal degrees. Southern
// latitudes and western longitudes are negative.
type Coord struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// ParseCoord decodes a coordinate pair like "46:51:44 N 009:19:42 E".
//
// Both the DMS form (deg:min:sec, with optional fractional seconds) and the
// DDM form (deg:min.fraction) are accepted, the direction letters are case
// insensitive, and a comma between the two halves is allowed. Latitude
// degrees are limited to two digits and 90, longitude degrees to three
// digits and 180. Minutes or seconds of 60 and above occur in real files;
// they are logged and accepted.
func ParseCoord(data string) (Coord, error) {
	input := strings.TrimSpace(data)

	lat, rest, err := parseComponent(input, true)
	if err != nil {
		return Coord{}, fmt.Errorf("invalid coord: %q", data)
	}
	latNegative, rest, err := parseDirectionLetter(rest, true)
	if err != nil {
		return Coord{}, fmt.Errorf("invalid coord: %q", data)
	}
	if latNegative {
		lat = -lat
	}

	// Skip whitespace and an optional comma between the halves.
	rest = strings.TrimLeftFunc(rest, unicode.IsSpace)
	rest = strings.TrimPrefix(rest, ",")
	rest = strings.TrimLeftFunc(rest, unicode.IsSpace)

	lng, rest, err := parseComponent(rest, false)
	if err != nil {
		return Coord{}, fmt.Errorf("invalid coord: %q", data)
	}
	lngNegative, _, err := parseDirectionLetter(rest, false)
	if err != nil {
		return Coord{}, fmt.Errorf("invalid coord: %q", data)
	}
	if lngNegative {
		lng = -lng
	}

	return Coord{Lat: lat, Lng: lng}, nil
}

// indexNonDigit returns the index of the first byte that is not an ASCII
// digit, or -1 if there is none.
func indexNonDigit(s string) int {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return i
		}
	}
	return -1
}

// indexNonNumber is like indexNonDigit but also accepts '.', so it finds
// the end of a decimal number.
func indexNonNumber(s string) int {
	for i := 0; i < len(s); i++ {
		if (s[i] < '0' || s[i] > '9') && s[i] != '.' {
			return i
		}
	}
	return len(s)
}

// parseComponent parses one half of a coordinate pair (everything up to the
// direction letter) and returns the unsigned decimal degrees plus the
// remaining input.
func parseComponent(input string, isLat bool) (float64, string, error) {
	// Degrees
	pos := indexNonDigit(input)
	if pos == -1 {
		return 0, "", fmt.Errorf("missing separator after degrees")
	}
	maxDigits := 2
	if !isLat {
		maxDigits = 3
	}
	if pos > maxDigits {
		return 0, "", fmt.Errorf("too many degree digits")
	}
	deg, err := strconv.ParseUint(input[:pos], 10, 8)
	if err != nil {
		return 0, "", err
	}
	degrees := float64(deg)
	if (isLat && degrees > 90) || (!isLat && degrees > 180) {
		return 0, "", fmt.Errorf("degrees out of range")
	}
	rest, ok := strings.CutPrefix(input[pos:], ":")
	if !ok {
		return 0, "", fmt.Errorf("missing colon after degrees")
	}

	// Minutes
	pos = indexNonDigit(rest)
	if pos == -1 {
		return 0, "", fmt.Errorf("missing separator after minutes")
	}
	if pos > 2 {
		return 0, "", fmt.Errorf("too many minute digits")
	}
	min, err := strconv.ParseUint(rest[:pos], 10, 8)
	if err != nil {
		return 0, "", err
	}
	minutes := float64(min)
	if minutes >= 60 {
		log.Debugf("Minutes >= 60 in coordinate: %s", input)
	}
	rest = rest[pos:]

	// A decimal point directly after the minutes means DDM notation.
	if strings.HasPrefix(rest, ".") {
		pos = indexNonNumber(rest)
		frac, err := strconv.ParseFloat(rest[:pos], 64)
		if err != nil {
			return 0, "", err
		}
		return degrees + (minutes+frac)/60, rest[pos:], nil
	}

	// DMS notation: colon, then seconds with an optional fractional part.
	rest, ok = strings.CutPrefix(rest, ":")
	if !ok {
		return 0, "", fmt.Errorf("missing colon after minutes")
	}
	intLen := indexNonDigit(rest)
	if intLen == -1 {
		intLen = len(rest)
	}
	if intLen > 2 {
		return 0, "", fmt.Errorf("too many second digits")
	}
	pos = indexNonNumber(rest)
	seconds, err := strconv.ParseFloat(rest[:pos], 64)
	if err != nil {
		return 0, "", err
	}
	if seconds >= 60 {
		log.Debugf("Seconds >= 60 in coordinate: %s", input)
	}

	return degrees + minutes/60 + seconds/3600, rest[pos:], nil
}

// parseDirectionLetter consumes the N/S (latitude) or E/W (longitude)
// letter, possibly preceded by whitespace, and reports whether the value is
// negative (south or west).
func parseDirectionLetter(input string, isLat bool) (bool, string, error) {
	input = strings.TrimLeftFunc(input, unicode.IsSpace)
	if input == "" {
		return false, "", fmt.Errorf("missing direction letter")
	}
	if isLat {
		switch input[0] {
		case 'N', 'n':
			return false, input[1:], nil
		case 'S', 's':
			return true, input[1:], nil
		}
	} else {
		switch input[0] {
		case 'E', 'e':
			return false, input[1:], nil
		case 'W', 'w':
			return true, input[1:], nil
		}
	}
	return false, "", fmt.Errorf("bad direction letter %q", input[0])
}

// String renders the coordinate in canonical DMS notation, rounded to the
// nearest arc second, e.g. "46:51:44 N 009:19:42 E".
func (c Coord) String() string {
	return formatComponent(c.Lat, true) + " " + formatComponent(c.Lng, false)
}

func formatComponent(value float64, isLat bool) string {
	var letter byte
	if isLat {
		letter = 'N'
		if value < 0 {
			letter = 'S'
		}
	} else {
		letter = 'E'
		if value < 0 {
			letter = 'W'
		}
	}

	// Round to whole arc seconds; the integer decomposition below carries
	// 60 seconds into a minute and 60 minutes into a degree.
	total := int64(math.Round(math.Abs(value) * 3600))
	deg := total / 3600
	min := total / 60 % 60
	sec := total % 60

	if isLat {
		return fmt.Sprintf("%02d:%02d:%02d %c", deg, min, sec, letter)
	}
	return fmt.Sprintf("%03d:%02d:%02d %c", deg, min, sec, letter)
}
