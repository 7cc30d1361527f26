package cli

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/artpar/filetree/internal/app"
	"github.com/artpar/filetree/internal/config"
	"github.com/artpar/filetree/internal/core"
	"github.com/artpar/filetree/internal/logging"
	"github.com/artpar/filetree/internal/storage/filesystem"
	"github.com/artpar/filetree/internal/tui/views"
)

// rootOptions holds the flags shared by every command.
type rootOptions struct {
	ConfigPath string
	Seed       string
	LogFile    string
	Debug      bool
}

// NewRootCommand creates the root command.
func NewRootCommand(version string) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "filetree",
		Short:        "filetree - an editable file tree in the terminal",
		Long:         "filetree shows a tree of files and folders that can be added, renamed, deleted and rearranged by drag and drop.",
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, closeLog, err := buildApp(opts)
			if err != nil {
				return err
			}
			defer closeLog()
			return runTUI(application)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "Config file (default ~/.config/filetree/config.yaml)")
	cmd.PersistentFlags().StringVarP(&opts.Seed, "seed", "s", "", "Load the initial tree from a YAML or JSON file")
	cmd.PersistentFlags().StringVar(&opts.LogFile, "log-file", "", "Append logs to this file")
	cmd.PersistentFlags().BoolVar(&opts.Debug, "debug", false, "Log at debug level")

	// Add subcommands
	cmd.AddCommand(NewShowCommand(opts))

	return cmd
}

// buildApp loads config, logging and the seed tree. The returned function
// closes the log file.
func buildApp(opts *rootOptions) (*app.App, func() error, error) {
	path := opts.ConfigPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}

	logFile := cfg.Log.File
	if opts.LogFile != "" {
		logFile = opts.LogFile
	}
	level, err := config.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}
	if opts.Debug {
		level = slog.LevelDebug
	}
	logger, closeLog, err := logging.OpenFile(logFile, level)
	if err != nil {
		return nil, nil, err
	}

	appOpts := []app.Option{
		app.WithConfig(cfg),
		app.WithLogger(logger),
	}
	if opts.Seed != "" {
		tree, err := filesystem.NewTreeLoader(cfg.IDGenerator()).LoadFile(opts.Seed)
		if err != nil {
			closeLog()
			return nil, nil, fmt.Errorf("failed to load seed: %w", err)
		}
		appOpts = append(appOpts, app.WithTree(tree))
	}

	application := app.New(appOpts...)
	logger.Info("filetree started", "config", path, "seed", opts.Seed, "nodes", core.Count(application.Tree()))
	return application, closeLog, nil
}

// tuiModel wraps the MainView for bubbletea
type tuiModel struct {
	view *views.MainView
}

func (m tuiModel) Init() tea.Cmd {
	return m.view.Init()
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := m.view.Update(msg)
	m.view = updated.(*views.MainView)
	return m, cmd
}

func (m tuiModel) View() string {
	return m.view.View()
}

// runTUI starts the TUI application
func runTUI(application *app.App) error {
	model := tuiModel{
		view: views.NewMainView(application),
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		return err
	}
	return nil
}
