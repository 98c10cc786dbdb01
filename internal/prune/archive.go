// Package prune decides which remote backup archives to delete under a
// tiered daily/weekly/monthly/yearly retention policy. The whole package is
// a pure computation over filenames: no I/O, no remote calls, and no reads
// of the wall clock. Recency is always relative to the newest timestamps
// present in the input, so the same listing and policy always produce the
// same plan.
package prune

import (
	"fmt"
	"strings"
	"time"
)

// Archive is a single remote backup file with the timestamp extracted from
// its name. Two archives are distinct whenever their names differ, even if
// they carry the same timestamp.
type Archive struct {
	Name string
	Time time.Time
}

// ParseError reports a filename that does not match the configured format.
// It is per-file and non-fatal: the file is excluded from both the retained
// and the prune set, so a name we cannot attribute a timestamp to is never
// deleted.
type ParseError struct {
	Name   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse archive name %q: %s", e.Name, e.Reason)
}

// Format describes how archive names are built: a literal prefix, a Go time
// layout, and a literal extension. Prefix and Ext may be empty, in which
// case TimeLayout is matched against the whole name; literal characters
// inside a Go layout must match byte for byte, so a full template such as
// "backup_2006-01-02.zip" works as a layout on its own.
type Format struct {
	Prefix     string
	TimeLayout string
	Ext        string
}

// Validate reports whether the format can possibly match anything.
func (f Format) Validate() error {
	if strings.TrimSpace(f.TimeLayout) == "" {
		return fmt.Errorf("archive format: empty datetime layout")
	}
	return nil
}

// Parse extracts the timestamp from name. A prefix or extension mismatch,
// layout mismatch, or impossible calendar date yields a *ParseError.
func (f Format) Parse(name string) (Archive, error) {
	rest, ok := strings.CutPrefix(name, f.Prefix)
	if !ok {
		return Archive{}, &ParseError{Name: name, Reason: fmt.Sprintf("missing prefix %q", f.Prefix)}
	}
	rest, ok = strings.CutSuffix(rest, f.Ext)
	if !ok {
		return Archive{}, &ParseError{Name: name, Reason: fmt.Sprintf("missing extension %q", f.Ext)}
	}
	t, err := time.Parse(f.TimeLayout, rest)
	if err != nil {
		return Archive{}, &ParseError{Name: name, Reason: err.Error()}
	}
	return Archive{Name: name, Time: t}, nil
}

// Render builds the archive name for a timestamp, the inverse of Parse.
func (f Format) Render(t time.Time) string {
	return f.Prefix + t.Format(f.TimeLayout) + f.Ext
}
