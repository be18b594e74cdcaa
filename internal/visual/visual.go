// Package visual holds the theme catalog and the persisted visual
// configuration.
package visual

import (
	"fmt"
	"os"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// Palette is the set of colors a theme contributes to the TUI.
type Palette struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Error     lipgloss.Color
	Muted     lipgloss.Color
}

// DefaultTheme is used when no visual config has been saved yet.
const DefaultTheme = "dark"

var themes = map[string]Palette{
	"dark": {
		Primary:   lipgloss.Color("15"),
		Secondary: lipgloss.Color("11"),
		Accent:    lipgloss.Color("12"),
		Error:     lipgloss.Color("9"),
		Muted:     lipgloss.Color("8"),
	},
	"light": {
		Primary:   lipgloss.Color("0"),
		Secondary: lipgloss.Color("3"),
		Accent:    lipgloss.Color("4"),
		Error:     lipgloss.Color("1"),
		Muted:     lipgloss.Color("7"),
	},
	"nord": {
		Primary:   lipgloss.Color("#eceff4"),
		Secondary: lipgloss.Color("#ebcb8b"),
		Accent:    lipgloss.Color("#88c0d0"),
		Error:     lipgloss.Color("#bf616a"),
		Muted:     lipgloss.Color("#4c566a"),
	},
	"gruvbox": {
		Primary:   lipgloss.Color("#ebdbb2"),
		Secondary: lipgloss.Color("#fabd2f"),
		Accent:    lipgloss.Color("#83a598"),
		Error:     lipgloss.Color("#fb4934"),
		Muted:     lipgloss.Color("#928374"),
	},
	"catppuccin-mocha": {
		Primary:   lipgloss.Color("#cdd6f4"),
		Secondary: lipgloss.Color("#f9e2af"),
		Accent:    lipgloss.Color("#89b4fa"),
		Error:     lipgloss.Color("#f38ba8"),
		Muted:     lipgloss.Color("#6c7086"),
	},
	"catppuccin-latte": {
		Primary:   lipgloss.Color("#4c4f69"),
		Secondary: lipgloss.Color("#df8e1d"),
		Accent:    lipgloss.Color("#1e66f5"),
		Error:     lipgloss.Color("#d20f39"),
		Muted:     lipgloss.Color("#9ca0b0"),
	},
	"solarized-light": {
		Primary:   lipgloss.Color("#657b83"),
		Secondary: lipgloss.Color("#b58900"),
		Accent:    lipgloss.Color("#268bd2"),
		Error:     lipgloss.Color("#dc322f"),
		Muted:     lipgloss.Color("#93a1a1"),
	},
	"dracula": {
		Primary:   lipgloss.Color("#f8f8f2"),
		Secondary: lipgloss.Color("#f1fa8c"),
		Accent:    lipgloss.Color("#bd93f9"),
		Error:     lipgloss.Color("#ff5555"),
		Muted:     lipgloss.Color("#6272a4"),
	},
	"tokyo-night": {
		Primary:   lipgloss.Color("#c0caf5"),
		Secondary: lipgloss.Color("#e0af68"),
		Accent:    lipgloss.Color("#7aa2f7"),
		Error:     lipgloss.Color("#f7768e"),
		Muted:     lipgloss.Color("#565f89"),
	},
	"monokai": {
		Primary:   lipgloss.Color("#f8f8f2"),
		Secondary: lipgloss.Color("#e6db74"),
		Accent:    lipgloss.Color("#66d9ef"),
		Error:     lipgloss.Color("#f92672"),
		Muted:     lipgloss.Color("#75715e"),
	},
	"flexokai": {
		Primary:   lipgloss.Color("#fffcf0"),
		Secondary: lipgloss.Color("#d0a215"),
		Accent:    lipgloss.Color("#205ea6"),
		Error:     lipgloss.Color("#af3029"),
		Muted:     lipgloss.Color("#6f6e69"),
	},
}

// ThemeNames lists all selectable themes in display order.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Theme looks up a palette by name.
func Theme(name string) (Palette, bool) {
	p, ok := themes[name]
	return p, ok
}

// Config is the persisted visual customization.
type Config struct {
	Theme string `yaml:"theme"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{Theme: DefaultTheme}
}

// LoadConfig reads the visual config from path. A missing file yields the
// defaults with no error; an unknown theme falls back to the default.
func LoadConfig(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse visual config: %w", err)
	}
	if _, ok := themes[cfg.Theme]; !ok {
		cfg.Theme = DefaultTheme
	}
	return &cfg, nil
}

// SaveConfig validates and writes the visual config to path.
func SaveConfig(path string, cfg *Config) error {
	if _, ok := themes[cfg.Theme]; !ok {
		return fmt.Errorf("unknown theme %q", cfg.Theme)
	}

	content, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, content, 0644)
}
