package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme colours the live view. Bodies always keep their own colours.
type Theme struct {
	Name string

	// title gradient
	TitleFrom lipgloss.Color
	TitleTo   lipgloss.Color

	Walls   lipgloss.Color // canvas border and panel divider
	Graph   lipgloss.Color // energy chart and height sparkline
	Label   lipgloss.Color
	Value   lipgloss.Color
	Running lipgloss.Color
	Paused  lipgloss.Color
	Alert   lipgloss.Color // recording, failed saves, bodies past a wall
}

var themes = []Theme{
	{
		Name:      "cyberpunk",
		TitleFrom: "#ff00ff",
		TitleTo:   "#00ffff",
		Walls:     "#5f5f87",
		Graph:     "#00ffff",
		Label:     "#8a8aa0",
		Value:     "#f0f0ff",
		Running:   "#00ff88",
		Paused:    "#ffaa00",
		Alert:     "#ff3366",
	},
	{
		Name:      "retro",
		TitleFrom: "#00ff00",
		TitleTo:   "#88ff88",
		Walls:     "#007700",
		Graph:     "#33ff33",
		Label:     "#00aa00",
		Value:     "#aaffaa",
		Running:   "#00ff00",
		Paused:    "#cccc00",
		Alert:     "#ff5500",
	},
	{
		Name:      "minimal",
		TitleFrom: "#ffffff",
		TitleTo:   "#9a9a9a",
		Walls:     "#6c6c6c",
		Graph:     "#d0d0d0",
		Label:     "#8a8a8a",
		Value:     "#ffffff",
		Running:   "#ffffff",
		Paused:    "#8a8a8a",
		Alert:     "#ff4444",
	},
	{
		Name:      "ocean",
		TitleFrom: "#0077be",
		TitleTo:   "#7fdbff",
		Walls:     "#2f6f8f",
		Graph:     "#00a8cc",
		Label:     "#5f9fbf",
		Value:     "#e0f0ff",
		Running:   "#00e0b0",
		Paused:    "#ffd700",
		Alert:     "#ff6f61",
	},
	{
		Name:      "sunset",
		TitleFrom: "#ff6b6b",
		TitleTo:   "#feca57",
		Walls:     "#8b6b8c",
		Graph:     "#ff9ff3",
		Label:     "#b08fb0",
		Value:     "#fff5f5",
		Running:   "#5fd068",
		Paused:    "#ffc048",
		Alert:     "#ff4757",
	},
}

// CurrentTheme is read on every render.
var CurrentTheme = themes[0]

// SetTheme switches to the named theme. An empty name selects the first one.
func SetTheme(name string) error {
	if name == "" {
		CurrentTheme = themes[0]
		return nil
	}
	for _, t := range themes {
		if t.Name == name {
			CurrentTheme = t
			return nil
		}
	}
	return fmt.Errorf("unknown theme: %s (available: %s)", name, strings.Join(ThemeNames(), ", "))
}

// NextTheme cycles to the theme after the current one.
func NextTheme() {
	for i, t := range themes {
		if t.Name == CurrentTheme.Name {
			CurrentTheme = themes[(i+1)%len(themes)]
			return
		}
	}
	CurrentTheme = themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}
