package connect

import "fmt"

// Engine is the database type selected in the form
type Engine string

const (
	MySQL      Engine = "mysql"
	PostgreSQL Engine = "postgresql"
	SQLite     Engine = "sqlite"
)

// Kind groups engines by how they are addressed
type Kind int

const (
	// Networked engines are reached over host and port
	Networked Kind = iota
	// FileBased engines are a path on disk; host and port do not apply
	FileBased
)

// EngineSpec holds the per-engine defaults
type EngineSpec struct {
	Kind        Kind
	DefaultPort string
	Label       string
}

var engines = map[Engine]EngineSpec{
	MySQL:      {Kind: Networked, DefaultPort: "3306", Label: "MySQL"},
	PostgreSQL: {Kind: Networked, DefaultPort: "5432", Label: "PostgreSQL"},
	SQLite:     {Kind: FileBased, Label: "SQLite"},
}

// Engines lists the selectable engines in display order
func Engines() []Engine {
	return []Engine{MySQL, PostgreSQL, SQLite}
}

// Spec returns the defaults for e
func (e Engine) Spec() (EngineSpec, bool) {
	s, ok := engines[e]
	return s, ok
}

// FileBased reports whether e is addressed by a file path
func (e Engine) FileBased() bool {
	s, ok := engines[e]
	return ok && s.Kind == FileBased
}

// ParseEngine accepts the wire names plus the common "postgres" alias
func ParseEngine(s string) (Engine, error) {
	if s == "postgres" {
		return PostgreSQL, nil
	}
	e := Engine(s)
	if _, ok := engines[e]; !ok {
		return "", fmt.Errorf("unknown database type: %s", s)
	}
	return e, nil
}
