// Package diagfmt renders diagnostic bags for terminal output.
package diagfmt

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"passlens/internal/diag"
)

// PrettyOpts controls diagnostic rendering.
type PrettyOpts struct {
	Color bool
}

var (
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow, color.Bold)
	infoColor = color.New(color.FgCyan)
)

// Pretty writes one line per diagnostic:
// <locus>: <SEVERITY> <Code>: <message>, followed by indented notes.
// Callers usually bag.Sort() first for a deterministic report.
func Pretty(w io.Writer, bag *diag.Bag, opts PrettyOpts) {
	for _, d := range bag.Items() {
		sev := d.Severity.String()
		if opts.Color {
			sev = severityColor(d.Severity).Sprint(sev)
		}
		fmt.Fprintf(w, "%s: %s %s: %s\n", d.Primary, sev, d.Code, d.Message)
		for _, n := range d.Notes {
			fmt.Fprintf(w, "  note: %s: %s\n", n.Locus, n.Msg)
		}
	}
}

func severityColor(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return errColor
	case diag.SevWarning:
		return warnColor
	}
	return infoColor
}
