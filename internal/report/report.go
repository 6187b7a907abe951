// Package report renders findings as human-readable diagnostics.
package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/phobologic/namecheck/internal/check"
	"github.com/phobologic/namecheck/internal/model"
)

// Options controls text rendering.
type Options struct {
	Color bool
}

type palette struct {
	location *color.Color
	severity *color.Color
	fix      *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		location: color.New(color.Bold),
		severity: color.New(color.FgYellow, color.Bold),
		fix:      color.New(color.FgGreen),
	}
	for _, c := range []*color.Color{p.location, p.severity, p.fix} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Text writes one line per finding in the form
//
//	path:line:col: warning: The field myValue does not follow naming conventions. Should be MyValue.
//
// followed by a summary line.
func Text(w io.Writer, r *model.Report, opts Options) error {
	p := newPalette(opts.Color)
	for i := range r.Files {
		fr := &r.Files[i]
		for _, f := range fr.Findings {
			loc := fmt.Sprintf("%s:%d:%d:", fr.Path, f.Location.Line, f.Location.Column)
			if _, err := fmt.Fprintf(w, "%s %s %s\n", p.location.Sprint(loc), p.severity.Sprint("warning:"), check.Message(f)); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintln(w, Summary(r))
	return err
}

// Summary returns a one-line count of findings and files.
func Summary(r *model.Report) string {
	n := r.Count()
	files := 0
	for i := range r.Files {
		if len(r.Files[i].Findings) > 0 {
			files++
		}
	}
	return fmt.Sprintf("%d %s in %d %s (%d checked)", n, plural(n, "finding"), files, plural(files, "file"), r.Checked)
}

// Applied writes one line per applied rename.
func Applied(w io.Writer, path string, applied []model.Finding, opts Options) error {
	p := newPalette(opts.Color)
	for _, f := range applied {
		loc := fmt.Sprintf("%s:%d:%d:", path, f.Location.Line, f.Location.Column)
		if _, err := fmt.Fprintf(w, "%s renamed %s %s -> %s\n", p.location.Sprint(loc), f.Kind, f.Original, p.fix.Sprint(f.Corrected)); err != nil {
			return err
		}
	}
	return nil
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
