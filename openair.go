// Package openair parses and serializes airspace files in OpenAir format,
// as used by flight instruments to describe airspace boundaries, vertical
// extents, classes and related metadata.
//
// The format is line oriented and badly underspecified: every device uses
// varying conventions, there is no reliable delimiter between airspaces,
// and real files are inconsistent about whitespace, case, units and
// coordinate notation. This parser is deliberately lenient where real
// files demand it (altitude notation, minutes/seconds of 60 and above) and
// strict everywhere else. An airspace ends where the next one begins (an
// AC record) or at the end of the file.
//
// Use Parse to read a whole stream, or a Decoder to pull airspaces one at
// a time. Write and Encoder are the inverse.
//
// AT records (label placement hints) are ignored.
package openair

import (
	"fmt"
	"io"

	"github.com/mohae/deepcopy"

	"github.com/curbz/openair/pkg/geometry"
)

// Airspace is one complete airspace.
type Airspace struct {
	// Name is the name / description of the airspace.
	Name string `json:"name"`
	// Class is the airspace class.
	Class Class `json:"class"`
	// Type is the free-text airspace type (AY extension record).
	Type *string `json:"type,omitempty"`
	// LowerBound is the lower vertical bound.
	LowerBound Altitude `json:"lowerBound"`
	// UpperBound is the upper vertical bound.
	UpperBound Altitude `json:"upperBound"`
	// Geom is the airspace boundary.
	Geom geometry.Geometry `json:"geom"`
	// Frequency of the controlling ATC station or other authority
	// (AF extension record).
	Frequency *string `json:"frequency,omitempty"`
	// CallSign of that station (AG extension record).
	CallSign *string `json:"callSign,omitempty"`
	// TransponderCode associated with this airspace (AX extension record).
	TransponderCode *uint16 `json:"transponderCode,omitempty"`
	// ActivationTimes is the activation window (AA extension record).
	ActivationTimes *ActivationTimes `json:"activationTimes,omitempty"`
}

func (a *Airspace) String() string {
	return fmt.Sprintf("%s [%s] (%s → %s) {%s}",
		a.Name, a.Class, a.LowerBound, a.UpperBound, a.Geom)
}

// Clone returns a deep copy of the airspace, including its geometry tree.
func (a *Airspace) Clone() *Airspace {
	return deepcopy.Copy(a).(*Airspace)
}

// Parse reads an OpenAir stream until EOF and returns all airspaces in
// input order. An empty input yields no airspaces and no error.
func Parse(r io.Reader) ([]Airspace, error) {
	dec := NewDecoder(r)
	var airspaces []Airspace
	for {
		airspace, err := dec.Next()
		if err == io.EOF {
			return airspaces, nil
		}
		if err != nil {
			return nil, err
		}
		airspaces = append(airspaces, *airspace)
	}
}

// Write serializes airspaces to an OpenAir stream, separated by a single
// blank line. Writing zero airspaces produces zero bytes.
func Write(w io.Writer, airspaces []Airspace) error {
	enc := NewEncoder(w)
	for i := range airspaces {
		if err := enc.Encode(&airspaces[i]); err != nil {
			return err
		}
	}
	return nil
}
