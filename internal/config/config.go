// internal/config/config.go
package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
	"github.com/mitchellh/go-homedir"

	"github.com/nhath/ezchat/internal/applog"
)

const (
	DefaultServerURL = "http://127.0.0.1:5000"
	EnvServerURL     = "EZCHAT_SERVER_URL"
)

// Config represents the application configuration
type Config struct {
	Server           Server    `toml:"server"`
	History          History   `toml:"history"`
	Chat             Chat      `toml:"chat"`
	Theme            string    `toml:"theme"` // dark, light or auto
	Themes           Themes    `toml:"themes"`
	Keys             KeyMap    `toml:"keys"`
	RememberProfiles bool      `toml:"remember_profiles"`
	DefaultProfile   string    `toml:"default_profile"`
	Profiles         []Profile `toml:"profiles"`

	path string
	mu   sync.Mutex // guards Profiles while a save runs off the UI loop
}

// Server locates the assistant backend
type Server struct {
	URL     string   `toml:"url"`
	Timeout Duration `toml:"timeout"` // 0 leaves requests unbounded
}

// History configures the suggestion history store
type History struct {
	Backend   string `toml:"backend"` // sqlite, redis, memory
	Path      string `toml:"path,omitempty"`
	RedisURL  string `toml:"redis_url,omitempty"`
	Namespace string `toml:"namespace,omitempty"`
	Limit     int    `toml:"limit"`
}

// Chat configures transcript rendering
type Chat struct {
	Sanitize bool `toml:"sanitize"`
}

// Duration is a time.Duration written as "30s" in toml
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// KeyMap defines key bindings
type KeyMap struct {
	Submit         []string `toml:"submit"`
	NextField      []string `toml:"next_field"`
	PrevField      []string `toml:"prev_field"`
	Suggest        []string `toml:"suggest"`
	Up             []string `toml:"up"`
	Down           []string `toml:"down"`
	Dismiss        []string `toml:"dismiss"`
	OpenConnection []string `toml:"open_connection"`
	ToggleTheme    []string `toml:"toggle_theme"`
	Browse         []string `toml:"browse"`
	Copy           []string `toml:"copy"`
	EnginePrev     []string `toml:"engine_prev"`
	EngineNext     []string `toml:"engine_next"`
	Help           []string `toml:"help"`
	Quit           []string `toml:"quit"`
}

// DefaultConfig returns a config with default values
func DefaultConfig() *Config {
	return &Config{
		Server: Server{
			URL: DefaultServerURL,
		},
		History: History{
			Backend: "sqlite",
			Limit:   20,
		},
		Theme:    string(Dark),
		Themes:   DefaultThemes(),
		Keys:     DefaultKeys(),
		Profiles: []Profile{},
	}
}

// DefaultKeys returns the stock key bindings
func DefaultKeys() KeyMap {
	return KeyMap{
		Submit:         []string{"enter"},
		NextField:      []string{"tab"},
		PrevField:      []string{"shift+tab"},
		Suggest:        []string{"ctrl+@", "ctrl+space"},
		Up:             []string{"up"},
		Down:           []string{"down"},
		Dismiss:        []string{"esc"},
		OpenConnection: []string{"ctrl+o"},
		ToggleTheme:    []string{"ctrl+t"},
		Browse:         []string{"ctrl+b"},
		Copy:           []string{"y"},
		EnginePrev:     []string{"left"},
		EngineNext:     []string{"right"},
		Help:           []string{"f1"},
		Quit:           []string{"ctrl+c"},
	}
}

// ConfigPath returns the XDG-compliant config file path
func ConfigPath() (string, error) {
	return xdg.ConfigFile("ezchat/config.toml")
}

// Load reads the config at path, or the default path when empty.
// A missing file is created with defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	path, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := DefaultConfig()
		cfg.path = path
		if err := cfg.Save(); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}
	cfg.path = path

	if cfg.backfill(DefaultConfig()) {
		// Persist defaults so the user can see and edit them
		if err := cfg.Save(); err != nil {
			applog.Error("save migrated config: %v", err)
		}
	}

	cfg.openProfiles()
	return &cfg, nil
}

// backfill fills sections missing from an older config file
func (c *Config) backfill(defaults *Config) bool {
	updated := false

	if c.Server.URL == "" {
		c.Server.URL = defaults.Server.URL
		updated = true
	}
	if c.History.Backend == "" {
		c.History.Backend = defaults.History.Backend
		updated = true
	}
	if c.History.Limit < 1 {
		c.History.Limit = defaults.History.Limit
		updated = true
	}
	if _, ok := ParseThemeName(c.Theme); !ok {
		c.Theme = defaults.Theme
		updated = true
	}
	if c.Themes.Dark.Text == "" {
		c.Themes.Dark = defaults.Themes.Dark
		updated = true
	}
	if c.Themes.Light.Text == "" {
		c.Themes.Light = defaults.Themes.Light
		updated = true
	}
	if len(c.Keys.Submit) == 0 {
		c.Keys = defaults.Keys
		updated = true
	}
	if c.Profiles == nil {
		c.Profiles = []Profile{}
	}
	return updated
}

// ApplyEnv overrides values from the environment
func (c *Config) ApplyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvServerURL)); v != "" {
		c.Server.URL = v
	}
}

// Path returns where the config is saved
func (c *Config) Path() string { return c.path }

// Save writes the config to disk
func (c *Config) Save() error {
	path := c.path
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return err
		}
		path = p
		c.path = p
	}

	// Ensure directory exists with secure permissions
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	// Owner read/write only
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	c.sealProfiles()
	return toml.NewEncoder(f).Encode(c)
}
