// ABOUTME: Semantic theme types: Palette maps prompt roles to lipgloss colors, Styles holds built styles
// ABOUTME: Plain() yields unstyled output for --no-color and dumb terminals

package theme

import "github.com/charmbracelet/lipgloss"

// Palette holds a color per semantic role. Values are lipgloss color
// specs: an ANSI index ("1", "208") or a hex string ("#7dcfff"). An
// empty value leaves the role uncolored.
type Palette struct {
	Prompt string `yaml:"prompt"`
	Cwd    string `yaml:"cwd"`
	Error  string `yaml:"error"`
	Hint   string `yaml:"hint"`
	Banner string `yaml:"banner"`
}

// Merge returns p with every non-empty field of o laid over it.
func (p Palette) Merge(o Palette) Palette {
	pick := func(base, over string) string {
		if over != "" {
			return over
		}
		return base
	}
	return Palette{
		Prompt: pick(p.Prompt, o.Prompt),
		Cwd:    pick(p.Cwd, o.Cwd),
		Error:  pick(p.Error, o.Error),
		Hint:   pick(p.Hint, o.Hint),
		Banner: pick(p.Banner, o.Banner),
	}
}

// Theme holds a named palette.
type Theme struct {
	Name    string  `yaml:"name"`
	Palette Palette `yaml:"palette"`
}

// Styles holds the lipgloss styles the shell renders with.
type Styles struct {
	Prompt lipgloss.Style
	Cwd    lipgloss.Style
	Error  lipgloss.Style
	Hint   lipgloss.Style
	Banner lipgloss.Style
}

// Styles builds the lipgloss styles for t.
func (t *Theme) Styles() Styles {
	p := t.Palette
	return Styles{
		Prompt: colored(p.Prompt).Bold(true),
		Cwd:    colored(p.Cwd),
		Error:  colored(p.Error).Bold(true),
		Hint:   colored(p.Hint).Faint(true),
		Banner: colored(p.Banner).Bold(true),
	}
}

// Plain returns styles that render text unchanged.
func Plain() Styles {
	s := lipgloss.NewStyle()
	return Styles{Prompt: s, Cwd: s, Error: s, Hint: s, Banner: s}
}

func colored(c string) lipgloss.Style {
	s := lipgloss.NewStyle()
	if c != "" {
		s = s.Foreground(lipgloss.Color(c))
	}
	return s
}
