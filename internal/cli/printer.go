package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Printer writes human-facing diagnostics, usually to stderr.
type Printer struct {
	out *termenv.Output
}

// NewPrinter creates a Printer on w. Colors are used only when color is true.
func NewPrinter(w io.Writer, color bool) *Printer {
	profile := termenv.Ascii
	if color {
		profile = termenv.ANSI
	}
	return &Printer{out: termenv.NewOutput(w, termenv.WithProfile(profile))}
}

// ColorEnabled reports whether f is an interactive terminal that accepts colors.
func ColorEnabled(f *os.File) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// OK reports a document that passed validation.
func (p *Printer) OK(name string) {
	fmt.Fprintf(p.out, "%s: %s\n", name, p.out.String("OK").Foreground(p.out.Color("2")).Bold())
}

// Fail reports a document-level failure, e.g. a validation message.
func (p *Printer) Fail(name, message string) {
	fmt.Fprintf(p.out, "%s: %s\n", name, p.out.String(message).Foreground(p.out.Color("1")))
}

// Error reports a command failure without a document context.
func (p *Printer) Error(err error) {
	fmt.Fprintf(p.out, "%s %v\n", p.out.String("error:").Foreground(p.out.Color("1")).Bold(), err)
}

// Message prints err verbatim, colored as a failure.
func (p *Printer) Message(err error) {
	fmt.Fprintln(p.out, p.out.String(err.Error()).Foreground(p.out.Color("1")))
}
