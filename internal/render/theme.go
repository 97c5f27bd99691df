package render

// Theme is a card color palette.
type Theme struct {
	Name       string
	Background string
	Title      string
	Text       string
	Accent     string
	Border     string
}

const DefaultTheme = "default"

var themes = map[string]Theme{
	"default": {
		Name:       "default",
		Background: "#fffefe",
		Title:      "#2f80ed",
		Text:       "#434d58",
		Accent:     "#4c71f2",
		Border:     "#e4e2e2",
	},
	"dark": {
		Name:       "dark",
		Background: "#151515",
		Title:      "#fff",
		Text:       "#9f9f9f",
		Accent:     "#79ff97",
		Border:     "#e4e2e2",
	},
	"radical": {
		Name:       "radical",
		Background: "#141321",
		Title:      "#fe428e",
		Text:       "#a9fef7",
		Accent:     "#f8d847",
		Border:     "#e4e2e2",
	},
	"gruvbox": {
		Name:       "gruvbox",
		Background: "#282828",
		Title:      "#fabd2f",
		Text:       "#8ec07c",
		Accent:     "#fe8019",
		Border:     "#e4e2e2",
	},
	"tokyonight": {
		Name:       "tokyonight",
		Background: "#1a1b27",
		Title:      "#70a5fd",
		Text:       "#38bdae",
		Accent:     "#bf91f3",
		Border:     "#e4e2e2",
	},
}

// NormalizeTheme maps an arbitrary theme name to a known one, falling
// back to the default silently. Unknown themes are never an error.
func NormalizeTheme(name string) string {
	if _, ok := themes[name]; ok {
		return name
	}
	return DefaultTheme
}

// ThemeByName returns the palette for a normalized theme name.
func ThemeByName(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes[DefaultTheme]
}
