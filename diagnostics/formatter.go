// Package diagnostics provides a reference MalformedValueSink that prints
// malformed configuration values to a terminal with colorized severity
// markers.
package diagnostics

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"

	"github.com/autonomous-bits/configfed"
)

// Formatter is a configfed.MalformedValueSink that writes one colorized
// line per malformed value to the writer given to New. The zero value is not usable; use New.
type Formatter struct {
	out io.Writer
	mu  sync.Mutex

	warn *color.Color
	dim  *color.Color
}

// New builds a Formatter writing to out.
func New(out io.Writer) *Formatter {
	return &Formatter{
		out:  out,
		warn: color.New(color.FgYellow, color.Bold),
		dim:  color.New(color.FgHiBlack),
	}
}

// HandleMalformed implements configfed.MalformedValueSink.
func (f *Formatter) HandleMalformed(_ context.Context, malformed []configfed.MalformedValue) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, m := range malformed {
		f.warn.Fprintf(f.out, "malformed value for %q", m.Name)
		fmt.Fprint(f.out, " ")
		f.dim.Fprintf(f.out, "(%s) source=%s coordinates=%s caller=%s\n",
			reasonText(m.Reason), sourceName(m.Value), m.Value.Coordinates, m.CallerCoordinates)
	}
}

func sourceName(v configfed.ConfigurationValue) string {
	if v.Source == nil {
		return "<unknown>"
	}
	return v.Source.Name()
}

func reasonText(r configfed.MalformedReason) string {
	switch r {
	case configfed.MalformedNameMismatch:
		return "name mismatch"
	case configfed.MalformedMoreSpecificThanCaller:
		return "more specific than caller"
	case configfed.MalformedDisjointSameArity:
		return "disjoint coordinates of the same arity"
	case configfed.MalformedNotASubset:
		return "not a subset of caller coordinates"
	default:
		return string(r)
	}
}
