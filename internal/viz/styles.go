package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Styles are the lipgloss styles of one theme.
type Styles struct {
	Theme Theme

	Canvas    lipgloss.Style
	Panel     lipgloss.Style
	Label     lipgloss.Style
	Value     lipgloss.Style
	Graph     lipgloss.Style
	Running   lipgloss.Style
	Paused    lipgloss.Style
	Recording lipgloss.Style
	Notice    lipgloss.Style
	Help      lipgloss.Style
}

func NewStyles(t Theme) Styles {
	return Styles{
		Theme:  t,
		Canvas: lipgloss.NewStyle().Padding(1, 2),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Walls).
			Padding(1, 2).
			Width(45),
		Label:     lipgloss.NewStyle().Foreground(t.Label).Width(12),
		Value:     lipgloss.NewStyle().Foreground(t.Value).Bold(true),
		Graph:     lipgloss.NewStyle().Foreground(t.Graph).Padding(1, 0),
		Running:   lipgloss.NewStyle().Foreground(t.Running).Bold(true),
		Paused:    lipgloss.NewStyle().Foreground(t.Paused).Bold(true),
		Recording: lipgloss.NewStyle().Foreground(t.Alert).Bold(true).Blink(true),
		Notice:    lipgloss.NewStyle().Foreground(t.Alert),
		Help:      lipgloss.NewStyle().Foreground(t.Label).Italic(true).MarginTop(2),
	}
}

// Gradient blends the title colours across text, one rune at a time.
func (s Styles) Gradient(text string) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}
	from, err1 := colorful.Hex(string(s.Theme.TitleFrom))
	to, err2 := colorful.Hex(string(s.Theme.TitleTo))
	if err1 != nil || err2 != nil || len(runes) == 1 {
		return lipgloss.NewStyle().Foreground(s.Theme.TitleFrom).Render(text)
	}

	var b strings.Builder
	for i, r := range runes {
		c := from.BlendLab(to, float64(i)/float64(len(runes)-1)).Clamped()
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render(string(r)))
	}
	return b.String()
}

var spinner = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

func spinnerFrame(frame int) string {
	return spinner[frame%len(spinner)]
}

// Containment draws the share of bodies inside the walls. A full bar is in
// the running colour; anything less is an alert.
func (s Styles) Containment(fraction float64, width int) string {
	filled := int(fraction * float64(width))
	filled = max(0, min(filled, width))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	if filled == width {
		return lipgloss.NewStyle().Foreground(s.Theme.Running).Render(bar)
	}
	return lipgloss.NewStyle().Foreground(s.Theme.Alert).Render(bar)
}

var sparkChars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline draws values as block heights scaled between their min and max.
func (s Styles) Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	var b strings.Builder
	for _, v := range values {
		idx := int((v - lo) / span * float64(len(sparkChars)-1))
		b.WriteRune(sparkChars[max(0, min(idx, len(sparkChars)-1))])
	}
	return lipgloss.NewStyle().Foreground(s.Theme.Graph).Render(b.String())
}
