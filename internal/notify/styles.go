package notify

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}
	colorDim     = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#626262"}
	colorAccent  = lipgloss.AdaptiveColor{Light: "#F25D94", Dark: "#F25D94"}
	colorGreen   = lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#25D366"}
	colorBody    = lipgloss.AdaptiveColor{Light: "#3D3D3D", Dark: "#ABABAB"}
)

type styles struct {
	heading lipgloss.Style
	label   lipgloss.Style
	title   lipgloss.Style
	body    lipgloss.Style
	link    lipgloss.Style
	rule    lipgloss.Style
	warn    lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		heading: r.NewStyle().
			Bold(true).
			Foreground(colorAccent),
		label: r.NewStyle().
			Foreground(colorGreen),
		title: r.NewStyle().
			Bold(true).
			Foreground(colorPrimary),
		body: r.NewStyle().
			Foreground(colorBody),
		link: r.NewStyle().
			Foreground(colorDim).
			Italic(true),
		rule: r.NewStyle().
			Foreground(colorDim),
		warn: r.NewStyle().
			Foreground(colorAccent),
	}
}
