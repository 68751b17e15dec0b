package validate

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// DefaultThreshold is the share of checks that must pass.
const DefaultThreshold = 0.8

type Report struct {
	Title  string
	Groups []GroupResult
}

func (r Report) Passed() int {
	n := 0
	for _, g := range r.Groups {
		n += g.Passed()
	}
	return n
}

func (r Report) Total() int {
	n := 0
	for _, g := range r.Groups {
		n += g.Total()
	}
	return n
}

func (r Report) Ratio() float64 {
	total := r.Total()
	if total == 0 {
		return 0
	}
	return float64(r.Passed()) / float64(total)
}

func (r Report) Percent() float64 {
	return r.Ratio() * 100
}

// OK reports whether at least threshold of the checks passed.
func (r Report) OK(threshold float64) bool {
	return float64(r.Passed()) >= threshold*float64(r.Total())-1e-9
}

func (r Report) ExitCode(threshold float64) int {
	if r.OK(threshold) {
		return 0
	}
	return 1
}

type Theme struct {
	Title lipgloss.Style
	Head  lipgloss.Style
	Pass  lipgloss.Style
	Fail  lipgloss.Style
	Dim   lipgloss.Style
}

// NewTheme builds styles for w. With color false every style renders plain
// text.
func NewTheme(w io.Writer, color bool) Theme {
	if !color {
		plain := lipgloss.NewStyle()
		return Theme{Title: plain, Head: plain, Pass: plain, Fail: plain, Dim: plain}
	}
	re := lipgloss.NewRenderer(w)
	return Theme{
		Title: re.NewStyle().Bold(true),
		Head:  re.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Pass:  re.NewStyle().Foreground(lipgloss.Color("10")),
		Fail:  re.NewStyle().Foreground(lipgloss.Color("9")),
		Dim:   re.NewStyle().Faint(true),
	}
}

// Render writes the per-check lines, the per-group summary and the overall
// verdict.
func (r Report) Render(w io.Writer, theme Theme, threshold float64) error {
	var b strings.Builder
	title := r.Title
	if title == "" {
		title = "Validation"
	}
	fmt.Fprintln(&b, theme.Title.Render("=== "+title+" ==="))

	for _, g := range r.Groups {
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, theme.Head.Render("--- Checking "+g.Group.Name+" ---"))
		for _, c := range g.Checks {
			for _, line := range checkLines(g.Group.Kind, c) {
				if strings.HasPrefix(line, "✓") {
					fmt.Fprintln(&b, theme.Pass.Render(line))
				} else {
					fmt.Fprintln(&b, theme.Fail.Render(line))
				}
			}
		}
	}

	fmt.Fprintln(&b)
	fmt.Fprintln(&b, theme.Title.Render("=== VALIDATION SUMMARY ==="))
	for _, g := range r.Groups {
		fmt.Fprintf(&b, "%s: %d/%d passed\n", g.Group.SummaryLabel(), g.Passed(), g.Total())
	}

	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "OVERALL: %d/%d checks passed (%.1f%%)\n", r.Passed(), r.Total(), r.Percent())
	if r.OK(threshold) {
		fmt.Fprintln(&b, theme.Pass.Render(fmt.Sprintf("✓ %s PASSED", title)))
	} else {
		fmt.Fprintln(&b, theme.Fail.Render(fmt.Sprintf("✗ %s FAILED", title)))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func checkLines(kind Kind, c CheckResult) []string {
	if kind == KindMethods {
		switch {
		case c.Err != nil:
			return []string{fmt.Sprintf("✗ Error reading %s: %v", c.Path, c.Err)}
		case !c.Exists:
			return []string{fmt.Sprintf("✗ %s method not found in %s (file missing)", c.Symbol, c.Path)}
		case c.Found:
			return []string{fmt.Sprintf("✓ %s method found in %s", c.Symbol, c.Path)}
		default:
			return []string{fmt.Sprintf("✗ %s method not found in %s", c.Symbol, c.Path)}
		}
	}

	if !c.Exists {
		return []string{fmt.Sprintf("✗ %s missing", c.Path)}
	}
	lines := []string{fmt.Sprintf("✓ %s exists", c.Path)}
	switch {
	case c.Err != nil:
		lines = append(lines, fmt.Sprintf("✗ Error reading %s: %v", c.Path, c.Err))
	case c.Found:
		lines = append(lines, fmt.Sprintf("✓ %s %s found in %s", c.Symbol, c.Kind, c.Path))
	default:
		lines = append(lines, fmt.Sprintf("✗ %s not found in %s", c.Symbol, c.Path))
	}
	return lines
}
