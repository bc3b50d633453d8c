package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/userdeck/userdeck/internal/app"
	"github.com/userdeck/userdeck/internal/client"
	"github.com/userdeck/userdeck/internal/config"
	"github.com/userdeck/userdeck/internal/logging"
	"github.com/userdeck/userdeck/internal/mock"
	"github.com/userdeck/userdeck/internal/user"
	"github.com/userdeck/userdeck/internal/views/detail"
)

type options struct {
	configPath string
	endpoint   string
	results    int
	verbose    bool
}

// env is what every subcommand needs once flags are resolved.
type env struct {
	cfg    *config.Config
	logger *zap.Logger
}

func (o *options) load() (*env, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.endpoint != "" {
		cfg.API.Endpoint = o.endpoint
	}
	if o.results > 0 {
		cfg.API.Results = o.results
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Log, o.verbose)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, logger: logger}, nil
}

func (e *env) newStore() *user.Store {
	hc := client.NewHTTPClient(
		client.WithTimeout(e.cfg.API.Timeout),
		client.WithToken(e.cfg.API.Token),
	)
	return user.NewStore(hc, user.WithLogger(e.logger.Named("store")))
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "userdeck",
		Short: "Browse a remote user directory in the terminal",
		Long: `userdeck fetches a user list from a randomuser.me-compatible endpoint
and shows one card per user. Press r to reload, enter to show a user's email.

Logs are written as JSON to the file configured under log.file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := opts.load()
			if err != nil {
				return err
			}
			defer func() { _ = e.logger.Sync() }()
			return runTUI(e)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "userdeck.yaml", "Path to config file (optional)")
	pf.StringVar(&opts.endpoint, "endpoint", "", "User API endpoint (overrides api.endpoint)")
	pf.IntVar(&opts.results, "results", 0, "Number of users to request (overrides api.results)")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "Log at debug level")

	root.AddCommand(newFetchCmd(opts), newMockCmd(opts))
	return root
}

func runTUI(e *env) error {
	url := e.cfg.UserURL()
	store := e.newStore()
	e.logger.Info("starting TUI", zap.String("url", url))

	// Probe the background before the program owns the terminal.
	style := "light"
	if lipgloss.HasDarkBackground() {
		style = "dark"
	}

	m := app.New(store, url, e.logger.Named("app"), app.WithDetailOptions(detail.WithStyle(style)))
	defer m.Close()

	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("run TUI: %w", err)
	}
	return nil
}

func newFetchCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Load the user list once and print it as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := opts.load()
			if err != nil {
				return err
			}
			defer func() { _ = e.logger.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return fetch(ctx, e.newStore(), e.cfg.UserURL(), cmd.OutOrStdout())
		},
	}
}

// fetch runs one load and prints the resulting users. On failure the store
// is unchanged, so nothing is printed and the error is returned.
func fetch(ctx context.Context, store *user.Store, url string, out io.Writer) error {
	if err := store.Run(ctx, user.Load(url)); err != nil {
		return err
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(store.State().Users())
}

func newMockCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "mock",
		Short: "Serve a local randomuser.me-compatible API",
		Long: `Serves generated users at /api in the randomuser.me response shape.
Point userdeck at it with --endpoint http://HOST:PORT/api.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := opts.load()
			if err != nil {
				return err
			}
			defer func() { _ = e.logger.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := mock.NewServer(mock.NewGenerator(e.cfg.Mock.Seed), e.logger.Named("mock"),
				mock.WithDefaultResults(e.cfg.Mock.Results))
			fmt.Fprintf(cmd.OutOrStdout(), "mock user API on http://%s/api\n", e.cfg.MockAddr())
			return mock.ListenAndServe(ctx, e.cfg.MockAddr(), srv.Router(), e.logger.Named("mock"))
		},
	}
}
