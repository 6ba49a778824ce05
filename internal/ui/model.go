// internal/ui/model.go
// Root Model struct, constructor, and Init
package ui

import (
	"errors"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"

	"github.com/nhath/ezchat/internal/chat"
	"github.com/nhath/ezchat/internal/config"
	"github.com/nhath/ezchat/internal/connect"
	"github.com/nhath/ezchat/internal/history"
	"github.com/nhath/ezchat/internal/markup"
	"github.com/nhath/ezchat/internal/suggest"
	"github.com/nhath/ezchat/internal/ui/components/suggestions"
)

// Options wires the model to its collaborators
type Options struct {
	Config    *config.Config
	Backend   Backend
	History   history.Recorder
	Clipboard ClipboardWriter
	// Prefill opens the form with these values, e.g. from --profile
	Prefill *connect.Config
	// ServerURL is shown in the header
	ServerURL string
}

// Model is the root Bubble Tea model
type Model struct {
	// Core state
	mode          Mode
	width, height int
	config        *config.Config
	keys          config.KeyMap
	theme         config.ThemeName
	serverURL     string

	// Collaborators
	backend   Backend
	clipboard ClipboardWriter

	// Controllers
	form       *connect.Form
	session    *chat.Session
	coord      *suggest.Coordinator
	suggesters map[Field]*suggest.Controller

	// Components
	inputs    map[Field]textinput.Model
	chatInput textinput.Model
	formFocus Field
	viewport  viewport.Model
	renderer  *markup.Renderer
	spinner   spinner.Model
	panel     suggestions.Model

	// Transcript
	browseIdx int   // selected message in browse mode
	offsets   []int // first transcript line of each message
	lastEdits int   // session edit count at the last viewport refresh

	// Popup state
	popupStack    *PopupStack
	showHelpPopup bool

	// Status
	statusMsg   string
	errorMsg    string
	connectedTo string
}

// NewModel creates a new UI model
func NewModel(opts Options) (Model, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if opts.Backend == nil {
		return Model{}, errors.New("ui: backend is required")
	}
	if opts.History == nil {
		opts.History = history.NewStore(history.NewMemoryBackend(), cfg.History.Limit)
	}
	if opts.Clipboard == nil {
		opts.Clipboard = SystemClipboard
	}

	theme, ok := config.ParseThemeName(cfg.Theme)
	if !ok {
		theme = config.Dark
	}
	theme = theme.Resolve(termenv.HasDarkBackground)
	InitStyles(cfg.Themes.Get(theme))

	form, err := connect.NewForm(connect.MySQL, opts.History)
	if err != nil {
		return Model{}, err
	}

	coord := suggest.NewCoordinator()
	suggesters := map[Field]*suggest.Controller{
		FieldUsername: suggest.New(string(FieldUsername), history.Usernames, suggest.Hover, opts.History, coord),
		FieldDatabase: suggest.New(string(FieldDatabase), history.DBNames, suggest.Hover, opts.History, coord),
		FieldChat:     suggest.New(string(FieldChat), history.Queries, suggest.LiveFilter, opts.History, coord),
	}

	ci := textinput.New()
	ci.Prompt = "› "
	ci.Placeholder = "Press ctrl+o to connect to a database first"
	ci.CharLimit = 2000

	vp := viewport.New(80, 10)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		mode:       ChatMode,
		config:     cfg,
		keys:       cfg.Keys,
		theme:      theme,
		serverURL:  opts.ServerURL,
		backend:    opts.Backend,
		clipboard:  opts.Clipboard,
		form:       form,
		session:    chat.NewSession(opts.History),
		coord:      coord,
		suggesters: suggesters,
		inputs:     newFormInputs(),
		chatInput:  ci,
		formFocus:  FieldEngine,
		viewport:   vp,
		renderer: markup.New(markup.Options{
			Style:    string(theme),
			Sanitize: cfg.Chat.Sanitize,
		}),
		spinner:    sp,
		panel:      suggestions.New(),
		popupStack: NewPopupStack(),
	}
	m.applyPanelStyles()

	if opts.Prefill != nil {
		m = m.openForm()
		if err := form.Prefill(*opts.Prefill); err != nil {
			return Model{}, err
		}
		m.syncFormInputs()
	}
	m = m.refreshTranscript()
	return m, nil
}

func newFormInputs() map[Field]textinput.Model {
	inputs := make(map[Field]textinput.Model)
	for _, f := range formFields {
		if f == FieldEngine {
			continue
		}
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 256
		ti.Width = 36
		switch f {
		case FieldPassword:
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '•'
		case FieldUsername:
			ti.Placeholder = "Username"
		case FieldHost:
			ti.Placeholder = "Host"
		case FieldPort:
			ti.Placeholder = "Port"
		}
		inputs[f] = ti
	}
	return inputs
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Form exposes the connection controller
func (m Model) Form() *connect.Form { return m.form }

// Session exposes the chat controller
func (m Model) Session() *chat.Session { return m.session }

// Mode returns the current key mode
func (m Model) Mode() Mode { return m.mode }

// Theme returns the active theme
func (m Model) Theme() config.ThemeName { return m.theme }

// StatusMessage returns the status bar notice
func (m Model) StatusMessage() string { return m.statusMsg }

// ErrorMessage returns the status bar error
func (m Model) ErrorMessage() string { return m.errorMsg }
