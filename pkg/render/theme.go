// Package render formats classified edit scripts and annotations for
// terminal output.
package render

import "github.com/charmbracelet/lipgloss"

// Colors is a foreground/background pair of hex colors.
type Colors struct {
	Foreground string `yaml:"foreground"`
	Background string `yaml:"background"`
}

// Palette assigns colors to each kind of output.
type Palette struct {
	Equal     Colors `yaml:"equal"`
	Insert    Colors `yaml:"insert"`
	Delete    Colors `yaml:"delete"`
	Highlight Colors `yaml:"highlight"`
}

// DefaultPalette is tuned for dark terminals.
func DefaultPalette() Palette {
	return Palette{
		Equal:     Colors{Foreground: "#DCDCDC", Background: "#000000"},
		Delete:    Colors{Foreground: "#FF5A5A", Background: "#641414"},
		Insert:    Colors{Foreground: "#64FF64", Background: "#144614"},
		Highlight: Colors{Foreground: "#000000", Background: "#FFD75F"},
	}
}

// Theme holds the lipgloss styles derived from a Palette.
type Theme struct {
	Equal     lipgloss.Style
	Insert    lipgloss.Style
	Delete    lipgloss.Style
	Highlight lipgloss.Style
}

// NewTheme builds a Theme for r. A nil renderer means the default renderer.
func NewTheme(p Palette, r *lipgloss.Renderer) Theme {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	style := func(c Colors) lipgloss.Style {
		s := r.NewStyle()
		if c.Foreground != "" {
			s = s.Foreground(lipgloss.Color(c.Foreground))
		}
		if c.Background != "" {
			s = s.Background(lipgloss.Color(c.Background))
		}
		return s
	}
	return Theme{
		Equal:     style(p.Equal),
		Insert:    style(p.Insert),
		Delete:    style(p.Delete),
		Highlight: style(p.Highlight).Bold(true),
	}
}
