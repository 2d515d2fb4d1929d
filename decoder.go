package openair

import (
	"bufio"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Decoder reads an OpenAir stream and produces airspaces lazily, one per
// call to Next. The sequence is forward-only and single-pass: no airspace
// is observable until every record belonging to it has been consumed.
//
// The only reliable airspace boundary is the start of the next AC record,
// so the decoder holds that record back when it arrives, finishes the
// airspace in progress, and replays the held record as the first one of
// the next accumulation.
type Decoder struct {
	scanner *bufio.Scanner
	builder *airspaceBuilder
	pending *record // class record buffered across the airspace boundary
	err     error
}

// NewDecoder returns a decoder reading from r. A UTF-8 byte order mark at
// the start of the stream is stripped.
func NewDecoder(r io.Reader) *Decoder {
	bomFree := transform.NewReader(r, unicode.UTF8BOM.NewDecoder())
	return &Decoder{
		scanner: bufio.NewScanner(bomFree),
		builder: newAirspaceBuilder(),
	}
}

// Next returns the next complete airspace. It returns io.EOF once the
// input is exhausted. Any other error is fatal and sticky: the input
// cannot be partially recovered, the caller must correct it and parse
// again.
func (d *Decoder) Next() (*Airspace, error) {
	if d.err != nil {
		return nil, d.err
	}

	if d.pending != nil {
		rec := *d.pending
		d.pending = nil
		if err := d.builder.process(rec); err != nil {
			return nil, d.fail(err)
		}
	}

	for d.scanner.Scan() {
		rec, err := parseRecord(d.scanner.Text())
		if err != nil {
			return nil, d.fail(err)
		}

		// A class record while accumulation is in progress starts the
		// next airspace: finish the current one and buffer the record for
		// the next accumulation so the line is neither dropped nor
		// reprocessed.
		if rec.kind == recClass && !d.builder.empty {
			done := d.builder
			d.builder = newAirspaceBuilder()
			d.pending = &rec
			airspace, err := done.finish()
			if err != nil {
				return nil, d.fail(err)
			}
			return airspace, nil
		}

		if err := d.builder.process(rec); err != nil {
			return nil, d.fail(err)
		}
	}
	if err := d.scanner.Err(); err != nil {
		return nil, d.fail(fmt.Errorf("could not read line: %w", err))
	}

	log.Trace("Reached EOF")
	if d.builder.empty {
		d.err = io.EOF
		return nil, io.EOF
	}
	done := d.builder
	d.builder = newAirspaceBuilder()
	airspace, err := done.finish()
	if err != nil {
		return nil, d.fail(err)
	}
	return airspace, nil
}

// fail records a fatal error, adding the name of the airspace under
// assembly when it is known.
func (d *Decoder) fail(err error) error {
	if d.builder != nil && d.builder.name != nil {
		err = fmt.Errorf("airspace '%s': %w", *d.builder.name, err)
	}
	d.err = err
	return err
}
