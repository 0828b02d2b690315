// Package report renders the human-facing console output of the binaries:
// section headers, rules and thousands-separated counts.
package report

import (
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Width of the horizontal rules.
const Width = 70

// Printer writes formatted lines to an io.Writer. Integers passed through
// Printf are grouped with the English thousands separator.
type Printer struct {
	p *message.Printer
	w io.Writer
}

// New returns a Printer writing to w.
func New(w io.Writer) *Printer {
	return &Printer{p: message.NewPrinter(language.English), w: w}
}

// Printf formats like fmt.Printf with locale-aware number grouping.
func (r *Printer) Printf(format string, args ...any) {
	r.p.Fprintf(r.w, format, args...)
}

// Println writes a line.
func (r *Printer) Println(s string) {
	r.p.Fprintln(r.w, s)
}

// Rule writes a line of '='.
func (r *Printer) Rule() {
	r.Println(strings.Repeat("=", Width))
}

// Header writes a title framed by rules, followed by a blank line.
func (r *Printer) Header(title string) {
	r.Rule()
	r.Println(title)
	r.Rule()
	r.Println("")
}

// Section writes a title underlined with '-'.
func (r *Printer) Section(title string) {
	r.Println(title)
	r.Println(strings.Repeat("-", Width))
}

// Banner writes lines between two rules.
func (r *Printer) Banner(lines ...string) {
	r.Rule()
	for _, l := range lines {
		r.Println(l)
	}
	r.Rule()
}

// Count formats n with thousands separators, e.g. 24648499 -> "24,648,499".
func Count(n int64) string {
	return message.NewPrinter(language.English).Sprintf("%d", n)
}
