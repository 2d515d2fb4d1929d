package openair

import "fmt"

// Class is the airspace class.
type Class int

const (
	ClassA Class = iota
	ClassB
	ClassC
	ClassD
	ClassE
	ClassF
	ClassG
	ClassCTR                      // Controlled traffic region
	ClassRestricted               // Restricted area
	ClassDanger                   // Danger area
	ClassProhibited               // Prohibited area
	ClassGliderProhibited         // Prohibited for gliders
	ClassWaveWindow               // Wave window
	ClassRadioMandatoryZone       // Radio mandatory zone
	ClassTransponderMandatoryZone // Transponder mandatory zone
	ClassUnclassified             // Unclassified
)

var classCodes = [...]string{
	"A", "B", "C", "D", "E", "F", "G",
	"CTR", "R", "Q", "P", "GP", "W", "RMZ", "TMZ", "UNC",
}

var classNames = [...]string{
	"A", "B", "C", "D", "E", "F", "G",
	"CTR", "Restricted", "Danger", "Prohibited", "GliderProhibited",
	"WaveWindow", "RadioMandatoryZone", "TransponderMandatoryZone",
	"Unclassified",
}

// ParseClass decodes an AC record payload. The mapping is exact; anything
// outside the known codes is an error.
func ParseClass(data string) (Class, error) {
	for i, code := range classCodes {
		if data == code {
			return Class(i), nil
		}
	}
	return 0, fmt.Errorf("invalid class: %s", data)
}

// Code returns the OpenAir code for the class, e.g. "R" for
// ClassRestricted.
func (c Class) Code() string {
	if c < 0 || int(c) >= len(classCodes) {
		return fmt.Sprintf("Class(%d)", int(c))
	}
	return classCodes[c]
}

func (c Class) String() string {
	if c < 0 || int(c) >= len(classNames) {
		return fmt.Sprintf("Class(%d)", int(c))
	}
	return classNames[c]
}

// MarshalText renders the class code for the JSON projection.
func (c Class) MarshalText() ([]byte, error) {
	return []byte(c.Code()), nil
}
