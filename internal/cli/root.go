package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/tasklist/internal/config"
	"github.com/sandeepkv93/tasklist/internal/controller"
	"github.com/sandeepkv93/tasklist/internal/storage"
	"github.com/sandeepkv93/tasklist/internal/update"
	"github.com/spf13/cobra"
)

type App struct {
	ConfigPath string
	Store      string
	DBPath     string
	StateFile  string

	cfg config.Config
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "tasklist",
		Short:        "A small task list for the terminal",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive list
  tasklist

  # Scriptable commands
  tasklist add "Buy milk"
  tasklist list --filter pending
  tasklist toggle 3f2a
  tasklist clear-completed --yes
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, app)
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.loadConfig(cmd)
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", config.DefaultPath(), "Path to the YAML config file")
	cmd.PersistentFlags().StringVar(&app.Store, "store", "", "Storage backend (sqlite|file|memory)")
	cmd.PersistentFlags().StringVar(&app.DBPath, "db", "", "SQLite database path")
	cmd.PersistentFlags().StringVar(&app.StateFile, "state-file", "", "JSON state file path for the file backend")

	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newToggleCmd(app))
	cmd.AddCommand(newEditCmd(app))
	cmd.AddCommand(newRmCmd(app))
	cmd.AddCommand(newClearCompletedCmd(app))
	cmd.AddCommand(newStatsCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newResetCmd(app))

	return cmd
}

// loadConfig resolves the config, then applies any flags the user set
// explicitly.
func (app *App) loadConfig(cmd *cobra.Command) error {
	flags := cmd.Flags()
	cfg, err := config.Load(app.ConfigPath, func(c *config.Config) {
		if flags.Changed("store") {
			c.Store = strings.ToLower(strings.TrimSpace(app.Store))
		}
		if flags.Changed("db") {
			c.DBPath = app.DBPath
		}
		if flags.Changed("state-file") {
			c.StateFile = app.StateFile
		}
	})
	if err != nil {
		return err
	}
	app.cfg = cfg
	return nil
}

type session struct {
	ctl     *controller.Controller
	backend storage.Backend
}

func (s *session) Close() error {
	return s.backend.Close()
}

func (app *App) open(ctx context.Context, logger *log.Logger, opts ...controller.Option) (*session, error) {
	backend, err := storage.Open(app.cfg.StorageOptions())
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", app.cfg.Store, err)
	}
	opts = append([]controller.Option{
		controller.WithSeed(app.cfg.SeedExamples),
		controller.WithLogger(logger),
	}, opts...)
	ctl, err := controller.New(ctx, backend, opts...)
	if err != nil {
		_ = backend.Close()
		return nil, err
	}
	return &session{ctl: ctl, backend: backend}, nil
}

// openForCommand opens the store for a one-shot command. Warnings go to
// stderr.
func (app *App) openForCommand(cmd *cobra.Command, opts ...controller.Option) (*session, error) {
	logger := log.New(cmd.ErrOrStderr(), "tasklist: ", 0)
	return app.open(cmd.Context(), logger, opts...)
}

func runTUI(cmd *cobra.Command, app *App) error {
	// stdout belongs to the terminal UI, so logs only go to a file.
	logger := log.New(io.Discard, "", 0)
	if app.cfg.LogFile != "" {
		f, err := tea.LogToFile(app.cfg.LogFile, "tasklist")
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logger = log.Default()
	}

	s, err := app.open(cmd.Context(), logger)
	if err != nil {
		return err
	}
	defer s.Close()

	program := tea.NewProgram(
		update.NewModel(cmd.Context(), s.ctl, logger),
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	_, err = program.Run()
	return err
}
