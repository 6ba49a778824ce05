package config

// ThemeName selects a palette
type ThemeName string

const (
	Dark  ThemeName = "dark"
	Light ThemeName = "light"
	// Auto picks dark or light from the terminal background at startup
	Auto ThemeName = "auto"
)

// ParseThemeName accepts "dark", "light" or "auto"
func ParseThemeName(s string) (ThemeName, bool) {
	switch ThemeName(s) {
	case Dark, Light, Auto:
		return ThemeName(s), true
	}
	return "", false
}

// Resolve turns Auto into a concrete theme using hasDarkBackground
func (t ThemeName) Resolve(hasDarkBackground func() bool) ThemeName {
	if t != Auto {
		return t
	}
	if hasDarkBackground() {
		return Dark
	}
	return Light
}

// Toggle returns the other theme
func (t ThemeName) Toggle() ThemeName {
	if t == Light {
		return Dark
	}
	return Light
}

// Themes holds both palettes
type Themes struct {
	Dark  Palette `toml:"dark"`
	Light Palette `toml:"light"`
}

// Get returns the palette for name, falling back to dark
func (t Themes) Get(name ThemeName) Palette {
	if name == Light {
		return t.Light
	}
	return t.Dark
}

// Palette defines the colors of one theme
type Palette struct {
	Text       string `toml:"text"`
	TextFaint  string `toml:"text_faint"`
	Accent     string `toml:"accent"`
	Success    string `toml:"success"`
	Error      string `toml:"error"`
	Highlight  string `toml:"highlight"`
	UserBubble string `toml:"user_bubble"`
	BotBubble  string `toml:"bot_bubble"`
	Background string `toml:"background"`
	PanelBg    string `toml:"panel_bg"`
	Border     string `toml:"border"`
}

// DefaultThemes returns Nord-based dark and light palettes
func DefaultThemes() Themes {
	return Themes{
		Dark: Palette{
			Text:       "#D8DEE9",
			TextFaint:  "#4C566A",
			Accent:     "#88C0D0",
			Success:    "#A3BE8C",
			Error:      "#BF616A",
			Highlight:  "#8FBCBB",
			UserBubble: "#5E81AC",
			BotBubble:  "#3B4252",
			Background: "#2E3440",
			PanelBg:    "#434C5E",
			Border:     "#81A1C1",
		},
		Light: Palette{
			Text:       "#2E3440",
			TextFaint:  "#7B88A1",
			Accent:     "#5E81AC",
			Success:    "#4C7A3D",
			Error:      "#B23A48",
			Highlight:  "#3B6E8F",
			UserBubble: "#81A1C1",
			BotBubble:  "#E5E9F0",
			Background: "#ECEFF4",
			PanelBg:    "#D8DEE9",
			Border:     "#4C566A",
		},
	}
}
