// internal/config/profiles.go
package config

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/nhath/ezchat/internal/connect"
)

// Profile is a saved connection. Only the sealed password is written to disk.
type Profile struct {
	Name     string `toml:"name"`
	Engine   string `toml:"engine"` // mysql, postgresql, sqlite
	Host     string `toml:"host,omitempty"`
	Port     string `toml:"port,omitempty"`
	Username string `toml:"username,omitempty"`
	Database string `toml:"database"`
	// Password is kept in memory for usage
	Password string `toml:"-"`
	// EncryptedPassword is the one persisted in the config file
	EncryptedPassword string `toml:"password,omitempty"`
}

// GetProfile retrieves a profile by name
func (c *Config) GetProfile(name string) (*Profile, error) {
	for i := range c.Profiles {
		if c.Profiles[i].Name == name {
			return &c.Profiles[i], nil
		}
	}
	return nil, fmt.Errorf("profile not found: %s", name)
}

// UpsertProfile adds p or replaces the profile with the same name, then saves
func (c *Config) UpsertProfile(p Profile) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.Profiles {
		if c.Profiles[i].Name == p.Name {
			c.Profiles[i] = p
			return c.Save()
		}
	}
	c.Profiles = append(c.Profiles, p)
	return c.Save()
}

// DeleteProfile removes a profile from the config
func (c *Config) DeleteProfile(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.Profiles {
		if c.Profiles[i].Name == name {
			c.Profiles = append(c.Profiles[:i], c.Profiles[i+1:]...)
			return c.Save()
		}
	}
	return fmt.Errorf("profile not found: %s", name)
}

// ListProfiles returns all profile names
func (c *Config) ListProfiles() []string {
	names := make([]string, len(c.Profiles))
	for i, p := range c.Profiles {
		names[i] = p.Name
	}
	return names
}

// RememberConnection stores cfg as a profile when remember_profiles is on.
// It returns the profile name, or "" when remembering is disabled.
func (c *Config) RememberConnection(cfg connect.Config) (string, error) {
	if !c.RememberProfiles {
		return "", nil
	}
	p := ProfileFromConnect(cfg)
	if err := c.UpsertProfile(p); err != nil {
		return p.Name, fmt.Errorf("save profile %s: %w", p.Name, err)
	}
	return p.Name, nil
}

// ConnectConfig converts the profile into form values
func (p *Profile) ConnectConfig() (connect.Config, error) {
	e, err := connect.ParseEngine(p.Engine)
	if err != nil {
		return connect.Config{}, err
	}
	return connect.Config{
		Engine:   e,
		Host:     p.Host,
		Port:     p.Port,
		Username: p.Username,
		Password: p.Password,
		Database: p.Database,
	}, nil
}

// ProfileFromConnect builds a profile named after its target
func ProfileFromConnect(cfg connect.Config) Profile {
	return Profile{
		Name:     profileName(cfg),
		Engine:   string(cfg.Engine),
		Host:     cfg.Host,
		Port:     cfg.Port,
		Username: cfg.Username,
		Password: cfg.Password,
		Database: cfg.Database,
	}
}

func profileName(cfg connect.Config) string {
	if cfg.Engine.FileBased() {
		return filepath.Base(cfg.Database)
	}
	if cfg.Username != "" {
		return fmt.Sprintf("%s@%s/%s", cfg.Username, cfg.Host, cfg.Database)
	}
	return fmt.Sprintf("%s/%s", cfg.Host, cfg.Database)
}

// URI renders the profile without its password,
// e.g. postgresql://alice@db:5432/sales or sqlite:///tmp/a.db
func (p *Profile) URI() string {
	switch p.Engine {
	case string(connect.SQLite):
		return "sqlite://" + p.Database
	case string(connect.MySQL), string(connect.PostgreSQL):
		host := p.Host
		if p.Port != "" {
			host += ":" + p.Port
		}
		if p.Username != "" {
			return fmt.Sprintf("%s://%s@%s/%s", p.Engine, p.Username, host, p.Database)
		}
		return fmt.Sprintf("%s://%s/%s", p.Engine, host, p.Database)
	default:
		return ""
	}
}

// ParseDSN parses a connection string into a Profile.
// Networked engines omit the port to get the engine default.
func ParseDSN(name, dsn string) (Profile, error) {
	p := Profile{Name: name}

	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"),
		strings.HasPrefix(dsn, "mysql://"):
		u, err := url.Parse(dsn)
		if err != nil {
			return p, err
		}
		e, err := connect.ParseEngine(u.Scheme)
		if err != nil {
			return p, err
		}
		spec, _ := e.Spec()
		p.Engine = string(e)
		p.Host = u.Hostname()
		p.Port = u.Port()
		if p.Port == "" {
			p.Port = spec.DefaultPort
		}
		p.Username = u.User.Username()
		p.Password, _ = u.User.Password()
		p.Database = strings.TrimPrefix(u.Path, "/")
	case strings.HasPrefix(dsn, "sqlite://"), strings.HasPrefix(dsn, "file:"):
		p.Engine = string(connect.SQLite)
		path := strings.TrimPrefix(dsn, "sqlite://")
		p.Database = strings.TrimPrefix(path, "file:")
	default:
		// Assume SQLite file path if no scheme match
		p.Engine = string(connect.SQLite)
		p.Database = dsn
	}

	if p.Name == "" {
		cfg, err := p.ConnectConfig()
		if err != nil {
			return p, err
		}
		p.Name = profileName(cfg)
	}
	return p, nil
}
