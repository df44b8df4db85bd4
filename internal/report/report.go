// Package report renders closure results for people (aligned, optionally
// coloured text) and for tools (JSON).
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/gookit/color"
	"github.com/mattn/go-runewidth"

	"github.com/dbsmedya/apideps/internal/closure"
	"github.com/dbsmedya/apideps/internal/typesys"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// predeclaredNamespace is shown for types outside any namespace.
const predeclaredNamespace = "(predeclared)"

// Options selects what a Renderer prints.
type Options struct {
	Format  string
	Color   bool
	Members bool // list the members of the closure
	Cycles  bool // analyse the dependency graph for cycles
	Order   bool // list the types in dependency order
}

// Renderer writes closure results to an output stream.
type Renderer struct {
	w    io.Writer
	opts Options

	title   color.Style
	section color.Style
	seed    color.Style
	warn    color.Style
}

// New returns a Renderer writing to w. An empty format means text.
func New(w io.Writer, opts Options) (*Renderer, error) {
	switch opts.Format {
	case "":
		opts.Format = FormatText
	case FormatText, FormatJSON:
	default:
		return nil, fmt.Errorf("unknown report format %q (expected %s or %s)", opts.Format, FormatText, FormatJSON)
	}
	return &Renderer{
		w:       w,
		opts:    opts,
		title:   color.New(color.FgCyan, color.OpBold),
		section: color.New(color.FgYellow),
		seed:    color.New(color.FgGreen),
		warn:    color.New(color.FgRed, color.OpBold),
	}, nil
}

// paint applies style when colour output is enabled.
func (r *Renderer) paint(style color.Style, s string) string {
	if !r.opts.Color {
		return s
	}
	return style.Sprint(s)
}

// Closure prints the result of a closure computation.
func (r *Renderer) Closure(api *closure.API) error {
	s := Summarize(api, r.opts)
	if r.opts.Format == FormatJSON {
		return writeJSON(r.w, s)
	}

	r.header("API closure of %d seed type(s)", s.Counts.Seeds)
	fmt.Fprintln(r.w)

	r.sectionTitle("Summary")
	r.table([][]string{
		{"Seed types:", fmt.Sprint(s.Counts.Seeds)},
		{"Types:", fmt.Sprint(s.Counts.Types)},
		{"Namespaces:", fmt.Sprint(s.Counts.Namespaces)},
		{"Members:", fmt.Sprint(s.Counts.Members)},
		{"Dependencies:", fmt.Sprint(s.Counts.Dependencies)},
	})

	fmt.Fprintln(r.w)
	r.sectionTitle(fmt.Sprintf("Namespaces (%d)", len(s.Namespaces)))
	for _, ns := range s.Namespaces {
		fmt.Fprintf(r.w, "  %s\n", ns)
	}

	fmt.Fprintln(r.w)
	r.sectionTitle(fmt.Sprintf("Types (%d)", len(s.Types)))
	rows := make([][]string, len(s.Types))
	for i, t := range s.Types {
		mark := ""
		if t.Seed {
			mark = r.paint(r.seed, "seed")
		}
		rows[i] = []string{t.Name, mark}
	}
	r.table(rows)

	if r.opts.Members {
		fmt.Fprintln(r.w)
		r.sectionTitle(fmt.Sprintf("Members (%d)", len(s.Members)))
		rows := make([][]string, len(s.Members))
		for i, m := range s.Members {
			rows[i] = []string{m.Kind, m.Name, m.Visibility}
		}
		r.table(rows)
	}

	if s.Cycles != nil {
		fmt.Fprintln(r.w)
		r.sectionTitle("Cycles")
		r.cycles(s.Cycles)
	}

	if s.Order != nil {
		fmt.Fprintln(r.w)
		r.sectionTitle("Dependency order")
		r.order(s.Order)
	}
	return nil
}

func (r *Renderer) order(o *OrderSummary) {
	if o.Unordered > 0 {
		fmt.Fprintf(r.w, "  %s %d type(s) lie on or behind a cycle\n", r.paint(r.warn, "unavailable:"), o.Unordered)
	}
	for i, t := range o.Types {
		fmt.Fprintf(r.w, "  %d. %s\n", i+1, t)
	}
	if len(o.Leaves) > 0 {
		fmt.Fprintf(r.w, "  leaves: %s\n", strings.Join(o.Leaves, ", "))
	}
}

func (r *Renderer) cycles(c *CycleSummary) {
	if !c.Cyclic {
		fmt.Fprintln(r.w, "  none: the dependency graph is acyclic")
		return
	}
	fmt.Fprintf(r.w, "  %s %d of %d type(s) lie on a cycle\n",
		r.paint(r.warn, "cyclic:"), len(c.Participants), c.Total)
	if len(c.Path) > 0 {
		fmt.Fprintf(r.w, "  e.g. %s\n", strings.Join(c.Path, " -> "))
	}
}

// Why prints why target is part of the closure: the discovery chain from a
// seed, one hop per line, followed by the types that depend on it directly.
func (r *Renderer) Why(api *closure.API, target typesys.TypeID) error {
	p, err := whySummary(api, target)
	if err != nil {
		return err
	}
	if r.opts.Format == FormatJSON {
		return writeJSON(r.w, p)
	}

	r.header("Why %s", target)
	fmt.Fprintln(r.w)
	for i, step := range p.Steps {
		if i == 0 {
			fmt.Fprintf(r.w, "  %s %s\n", step.Type, r.paint(r.seed, "(seed)"))
			continue
		}
		indent := strings.Repeat("   ", i-1)
		line := fmt.Sprintf("  %s└─ %s %s", indent, step.Via, step.Type)
		if step.Member != "" {
			line += fmt.Sprintf("  [%s]", step.Member)
		}
		fmt.Fprintln(r.w, line)
	}

	fmt.Fprintln(r.w)
	r.sectionTitle(fmt.Sprintf("Depended on by (%d)", len(p.Dependents)))
	rows := make([][]string, len(p.Dependents))
	for i, e := range p.Dependents {
		rows[i] = []string{e.From, strings.Join(e.Relations, ","), strings.Join(e.Members, ", ")}
	}
	r.table(rows)
	fmt.Fprintf(r.w, "\n%s depends on %d type(s)\n", target, p.DependsOn)
	return nil
}

// header prints a framed title.
func (r *Renderer) header(format string, args ...interface{}) {
	title := fmt.Sprintf(format, args...)
	rule := strings.Repeat("=", runewidth.StringWidth(title)+4)
	fmt.Fprintln(r.w, rule)
	fmt.Fprintf(r.w, "  %s\n", r.paint(r.title, title))
	fmt.Fprintln(r.w, rule)
}

// sectionTitle prints a section header.
func (r *Renderer) sectionTitle(title string) {
	fmt.Fprintf(r.w, "[%s]\n", r.paint(r.section, title))
	fmt.Fprintln(r.w, strings.Repeat("-", runewidth.StringWidth(title)+2))
}

// table prints rows indented by two spaces with every column but the last
// padded to its widest cell. Widths ignore colour codes.
func (r *Renderer) table(rows [][]string) {
	var widths []int
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			if w := visualWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	for _, row := range rows {
		var b strings.Builder
		b.WriteString("  ")
		for i, cell := range row {
			b.WriteString(cell)
			if i < len(row)-1 {
				b.WriteString(strings.Repeat(" ", widths[i]-visualWidth(cell)+2))
			}
		}
		fmt.Fprintln(r.w, strings.TrimRight(b.String(), " "))
	}
}

// visualWidth returns the terminal width of s, accounting for wide
// characters and ignoring colour escape sequences.
func visualWidth(s string) int {
	return runewidth.StringWidth(color.ClearCode(s))
}

func sortedNamespaces(nss []typesys.Namespace) []string {
	out := make([]string, len(nss))
	for i, ns := range nss {
		if ns == "" {
			out[i] = predeclaredNamespace
		} else {
			out[i] = string(ns)
		}
	}
	sort.Strings(out)
	return out
}
