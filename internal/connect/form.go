// Package connect holds the connection form state machine.
//
// The form is keyed on the selected engine. Networked engines get a default
// host and port; file-based engines have both fields cleared and disabled.
// A successful connect unlocks chat for the rest of the process lifetime.
package connect

import (
	"errors"
	"fmt"

	"github.com/nhath/ezchat/internal/applog"
	"github.com/nhath/ezchat/internal/history"
)

// Phase is where the form is in its submit cycle
type Phase int

const (
	Editing Phase = iota
	Connecting
	Closed
)

const (
	DefaultHost = "localhost"

	PlaceholderDatabase = "Database Name"
	PlaceholderFilePath = "Database File Path"

	StatusConnecting = "Connecting..."
	StatusUnexpected = "An unexpected error occurred."
)

var (
	// ErrInFlight is returned when submitting while a connect is pending
	ErrInFlight = errors.New("connection attempt already in progress")
	// ErrFieldDisabled is returned when editing host or port of a file-based engine
	ErrFieldDisabled = errors.New("field is disabled for this database type")
)

// Config is what gets forwarded to the collaborator
type Config struct {
	Engine   Engine `json:"db_type"`
	Host     string `json:"host"`
	Port     string `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
	Database string `json:"db_name"`
}

// Outcome classifies a finished connect request
type Outcome int

const (
	Succeeded Outcome = iota
	Rejected
	TransportFailed
)

// Result is the finished connect request as seen by the form
type Result struct {
	Outcome Outcome
	Message string // server-provided error text when Rejected
}

// Effects tells the caller what to show after a successful connect
type Effects struct {
	Confirmation string
	Config       Config
}

// Form is the connection form controller
type Form struct {
	engine   Engine
	host     string
	port     string
	username string
	password string
	database string

	status  string
	visible bool
	pending bool
	ready   bool
	// submitted is the config of the in-flight attempt
	submitted Config

	store history.Recorder
}

// NewForm starts hidden on engine e with its defaults applied.
// Successful connects record username and database into store.
func NewForm(e Engine, store history.Recorder) (*Form, error) {
	f := &Form{store: store}
	if err := f.SelectEngine(e); err != nil {
		return nil, err
	}
	return f, nil
}

// SelectEngine applies the engine transition
func (f *Form) SelectEngine(e Engine) error {
	spec, ok := e.Spec()
	if !ok {
		return fmt.Errorf("unknown database type: %s", e)
	}
	f.engine = e
	if spec.Kind == FileBased {
		f.host = ""
		f.port = ""
		return nil
	}
	f.host = DefaultHost
	f.port = spec.DefaultPort
	return nil
}

// CycleEngine moves to the next (or previous) engine in display order
func (f *Form) CycleEngine(step int) {
	list := Engines()
	idx := 0
	for i, e := range list {
		if e == f.engine {
			idx = i
			break
		}
	}
	idx = ((idx+step)%len(list) + len(list)) % len(list)
	f.SelectEngine(list[idx]) //nolint:errcheck
}

// Open shows the form with the current engine's defaults re-applied.
// A stale status is cleared unless an attempt is still pending.
func (f *Form) Open() {
	f.visible = true
	if !f.pending {
		f.status = ""
	}
	f.SelectEngine(f.engine) //nolint:errcheck
}

// Close hides the form. A pending attempt still resolves.
func (f *Form) Close() {
	f.visible = false
}

// Visible reports whether the form is shown
func (f *Form) Visible() bool { return f.visible }

func (f *Form) Engine() Engine   { return f.engine }
func (f *Form) Host() string     { return f.host }
func (f *Form) Port() string     { return f.port }
func (f *Form) Username() string { return f.username }
func (f *Form) Password() string { return f.password }
func (f *Form) Database() string { return f.database }
func (f *Form) Status() string   { return f.status }

// Phase derives the submit-cycle phase
func (f *Form) Phase() Phase {
	switch {
	case f.pending:
		return Connecting
	case f.visible:
		return Editing
	default:
		return Closed
	}
}

// Ready reports whether chat is unlocked
func (f *Form) Ready() bool { return f.ready }

// HostPortEnabled reports whether host and port accept input
func (f *Form) HostPortEnabled() bool {
	return !f.engine.FileBased()
}

// DatabasePlaceholder is the hint shown in the database field
func (f *Form) DatabasePlaceholder() string {
	if f.engine.FileBased() {
		return PlaceholderFilePath
	}
	return PlaceholderDatabase
}

// SetHost edits the host field
func (f *Form) SetHost(v string) error {
	if !f.HostPortEnabled() {
		return ErrFieldDisabled
	}
	f.host = v
	return nil
}

// SetPort edits the port field
func (f *Form) SetPort(v string) error {
	if !f.HostPortEnabled() {
		return ErrFieldDisabled
	}
	f.port = v
	return nil
}

func (f *Form) SetUsername(v string) { f.username = v }
func (f *Form) SetPassword(v string) { f.password = v }
func (f *Form) SetDatabase(v string) { f.database = v }

// Submit assembles the config and moves to Connecting
func (f *Form) Submit() (Config, error) {
	if f.pending {
		return Config{}, ErrInFlight
	}
	cfg := Config{
		Engine:   f.engine,
		Host:     f.host,
		Port:     f.port,
		Username: f.username,
		Password: f.password,
		Database: f.database,
	}
	if f.engine.FileBased() {
		cfg.Host = ""
		cfg.Port = ""
	}
	f.submitted = cfg
	f.status = StatusConnecting
	f.pending = true
	return cfg, nil
}

// Resolve applies the outcome of the pending submit. Effects is non-nil only on success.
// History is written only here, after the collaborator confirmed the connection.
func (f *Form) Resolve(r Result) *Effects {
	cfg := f.submitted
	f.pending = false

	switch r.Outcome {
	case Succeeded:
		f.visible = false
		f.ready = true
		f.status = ""
		f.record(history.Usernames, cfg.Username)
		f.record(history.DBNames, cfg.Database)
		return &Effects{
			Confirmation: fmt.Sprintf("Successfully connected to '%s'. You can start asking questions now.", cfg.Database),
			Config:       cfg,
		}
	case Rejected:
		f.status = r.Message
	default:
		f.status = StatusUnexpected
	}
	return nil
}

func (f *Form) record(cat history.Category, value string) {
	if f.store == nil {
		return
	}
	if err := f.store.Record(cat, value); err != nil {
		applog.Error("record %s: %v", cat, err)
	}
}

// Prefill loads saved values into the fields. Empty host or port keep the engine defaults.
func (f *Form) Prefill(cfg Config) error {
	if err := f.SelectEngine(cfg.Engine); err != nil {
		return err
	}
	if f.HostPortEnabled() {
		if cfg.Host != "" {
			f.host = cfg.Host
		}
		if cfg.Port != "" {
			f.port = cfg.Port
		}
	}
	f.username = cfg.Username
	f.password = cfg.Password
	f.database = cfg.Database
	return nil
}
