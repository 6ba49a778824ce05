package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nhath/ezchat/internal/applog"
	"github.com/nhath/ezchat/internal/client"
	"github.com/nhath/ezchat/internal/config"
	"github.com/nhath/ezchat/internal/connect"
	"github.com/nhath/ezchat/internal/history"
	"github.com/nhath/ezchat/internal/ui"
)

type flags struct {
	server     string
	configPath string
	profile    string
	dsn        string
	ephemeral  bool
	debug      bool
}

var opts flags

var rootCmd = &cobra.Command{
	Use:   "ezchat",
	Short: "Chat with your database from the terminal",
	Long: `ezchat is a terminal client for a conversational data assistant.

Open a connection with ctrl+o, then ask questions in plain language.
The assistant backend is reached at server.url in the config file,
EZCHAT_SERVER_URL, or --server.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context(), opts)
	},
}

func init() {
	f := rootCmd.Flags()
	f.StringVar(&opts.server, "server", "", "assistant backend URL (overrides config and "+config.EnvServerURL+")")
	f.StringVar(&opts.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/ezchat/config.toml)")
	f.StringVarP(&opts.profile, "profile", "p", "", "prefill the connection form from a saved profile")
	f.StringVar(&opts.dsn, "dsn", "", "prefill the connection form from a URI, e.g. postgres://user@host/db")
	f.BoolVar(&opts.ephemeral, "ephemeral", false, "keep suggestion history in memory only")
	f.BoolVar(&opts.debug, "debug", false, "enable debug logging to debug.log")
}

func run(ctx context.Context, o flags) error {
	if ctx == nil {
		ctx = context.Background()
	}

	if o.debug {
		f, err := tea.LogToFile("debug.log", "debug")
		if err != nil {
			return fmt.Errorf("could not open debug log: %w", err)
		}
		defer f.Close()
	}

	if err := applog.Init(""); err != nil {
		log.Printf("event log disabled: %v", err)
	}
	defer applog.Close()

	cfg, err := config.Load(o.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg.ApplyEnv()
	if o.server != "" {
		cfg.Server.URL = o.server
	}

	prefill, err := prefillFrom(cfg, o)
	if err != nil {
		return err
	}

	historyOpts := history.Options{
		Backend:   history.BackendType(cfg.History.Backend),
		Path:      cfg.History.Path,
		RedisURL:  cfg.History.RedisURL,
		Namespace: cfg.History.Namespace,
		Limit:     cfg.History.Limit,
	}
	if o.ephemeral {
		historyOpts.Backend = history.BackendMemory
	}
	store, err := history.Open(ctx, historyOpts)
	if err != nil {
		return fmt.Errorf("failed to initialize history: %w", err)
	}
	defer store.Close()

	backend, err := client.New(cfg.Server.URL, client.WithTimeout(cfg.Server.Timeout.Duration))
	if err != nil {
		return err
	}
	applog.Info("starting against %s", backend.BaseURL())

	model, err := ui.NewModel(ui.Options{
		Config:    cfg,
		Backend:   backend,
		History:   store,
		Clipboard: ui.SystemClipboard,
		Prefill:   prefill,
		ServerURL: backend.BaseURL(),
	})
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}

// prefillFrom resolves --profile, --dsn or default_profile into form values
func prefillFrom(cfg *config.Config, o flags) (*connect.Config, error) {
	var p *config.Profile
	switch {
	case o.dsn != "":
		parsed, err := config.ParseDSN("", o.dsn)
		if err != nil {
			return nil, fmt.Errorf("invalid --dsn: %w", err)
		}
		p = &parsed
	case o.profile != "":
		found, err := cfg.GetProfile(o.profile)
		if err != nil {
			return nil, fmt.Errorf("%w (saved: %s)", err, strings.Join(cfg.ListProfiles(), ", "))
		}
		p = found
	case cfg.DefaultProfile != "":
		found, err := cfg.GetProfile(cfg.DefaultProfile)
		if err != nil {
			applog.Error("default_profile: %v", err)
			return nil, nil
		}
		p = found
	default:
		return nil, nil
	}

	c, err := p.ConnectConfig()
	if err != nil {
		return nil, err
	}
	return &c, nil
}
