package report

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"sysoverview/sysinfo"
)

// ColorMode selects whether section headers, the banner and the attribution are colored.
type ColorMode int

const (
	// ColorAuto colors output only when stdout is a terminal.
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

// labelPad is how far the dash field extends past the longest label of a group.
const labelPad = 8

// SeparatorWidth is the width of the line printed between sections.
const SeparatorWidth = 60

// ansiRegex matches ANSI escape codes for removal/measurement purposes
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// Renderer writes report elements to an io.Writer. The first write error is
// kept and every later write is skipped.
type Renderer struct {
	out         io.Writer
	err         error
	header      *color.Color
	banner      *color.Color
	attribution *color.Color
}

// NewRenderer returns a Renderer writing to out.
func NewRenderer(out io.Writer, mode ColorMode) *Renderer {
	r := &Renderer{
		out:         out,
		header:      color.New(color.FgGreen),
		banner:      color.New(color.FgCyan),
		attribution: color.New(color.FgMagenta),
	}
	for _, c := range []*color.Color{r.header, r.banner, r.attribution} {
		switch mode {
		case ColorAlways:
			c.EnableColor()
		case ColorNever:
			c.DisableColor()
		}
	}
	return r
}

// Err returns the first write error, if any.
func (r *Renderer) Err() error {
	return r.err
}

func (r *Renderer) println(s string) {
	if r.err != nil {
		return
	}
	_, r.err = fmt.Fprintln(r.out, s)
}

// Banner prints the title art followed by a blank line.
func (r *Renderer) Banner(lines []string) {
	for _, line := range lines {
		r.println(r.banner.Sprint(line))
	}
	r.println("")
}

// Separator prints the fixed-width rule between sections.
func (r *Renderer) Separator() {
	r.println(strings.Repeat("=", SeparatorWidth))
}

// Header prints a section title, e.g. "** CPU INFORMATION:".
func (r *Renderer) Header(title string) {
	r.println(r.header.Sprintf("** %s:", title))
}

// HeaderValue prints a section title carrying its single value inline.
func (r *Renderer) HeaderValue(title, value string) {
	r.println(r.header.Sprintf("** %s:-------- %s", title, value))
}

// Subsection prints a sub-heading inside a section, e.g. " * Disk I/O:".
func (r *Renderer) Subsection(name string) {
	r.println(fmt.Sprintf(" * %s:", name))
}

// Item prints the heading of one listed entity, with dashes dashes between
// the label and the value.
func (r *Renderer) Item(label string, dashes int, value string) {
	r.println(fmt.Sprintf("  - %s:%s %s", label, strings.Repeat("-", dashes), value))
}

// Attribution prints the closing line after a blank line.
func (r *Renderer) Attribution(text string) {
	r.println("")
	r.println(r.attribution.Sprint(text))
}

// Group prints one line per pair, dash-padded so that the values of the group
// line up. Alignment is computed per group. An empty group prints nothing.
//
// Multi-line values continue on the next lines, indented to the value column.
func (r *Renderer) Group(g *sysinfo.MetricGroup) {
	pairs := g.Pairs()
	if len(pairs) == 0 {
		return
	}

	maxLen := 0
	for _, p := range pairs {
		if w := getVisibleWidth(p.Label); w > maxLen {
			maxLen = w
		}
	}
	pad := maxLen + labelPad

	for _, p := range pairs {
		key := capitalize(p.Label) + ":"
		dashes := strings.Repeat("-", pad-getVisibleWidth(key))
		lines := strings.Split(p.Value, "\n")
		r.println(fmt.Sprintf("\t%s%s %s", key, dashes, lines[0]))
		for _, cont := range lines[1:] {
			r.println(fmt.Sprintf("\t%s %s", strings.Repeat(" ", pad), cont))
		}
	}
}

// getVisibleWidth calculates the visible width of a string excluding ANSI escape codes.
func getVisibleWidth(s string) int {
	// Use runewidth to count display width (handles wide runes)
	return runewidth.StringWidth(ansiRegex.ReplaceAllString(s, ""))
}

func capitalize(s string) string {
	first, size := utf8.DecodeRuneInString(s)
	if first == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(first)) + s[size:]
}
