package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/journal/pkg/analysis"
	"tableflip.dev/journal/pkg/app"
	"tableflip.dev/journal/pkg/commands/options"
	"tableflip.dev/journal/pkg/config"
	"tableflip.dev/journal/pkg/journal"
	"tableflip.dev/journal/pkg/runner/home"
	"tableflip.dev/journal/pkg/store"
)

var (
	cfg     *config.Config
	logger  = zap.NewNop()
	verbose bool
)

func New() *cobra.Command {
	ido := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "journal",
		Short: base.Wrap80("A personal journal with AI reflections on what you write."),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			logger, err = newLogger(cfg.Log.Level)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			logger.Debug("config loaded",
				zap.String("file", cfg.File),
				zap.String("backend", cfg.Backend),
				zap.String("path", cfg.BasePath()))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			d, err := open()
			if err != nil {
				return err
			}
			defer d.Close()
			h := home.Home{
				Service: d.service,
				ShowID:  ido.ShowID,
				Log:     logger,
				Out:     outFor(cmd),
			}
			return h.Do(cmd.Context())
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log at debug level.")
	options.AddShowIDArgs(cmd, ido)

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addName(topLevel)
	addAdd(topLevel)
	addList(topLevel)
	addShow(topLevel)
	addDelete(topLevel)
	addAnalyze(topLevel)
	addOps(topLevel)
	addClear(topLevel)
	addInfo(topLevel)
	addMCP(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}

func newLogger(level string) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if level != "" {
		lvl, err := zap.ParseAtomicLevel(level)
		if err != nil {
			return nil, err
		}
		config.Level = lvl
	}
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return config.Build()
}

// deps is what a command needs to reach the journal.
type deps struct {
	backend store.Backend
	journal *journal.Store
	service *app.Service
}

func open() (*deps, error) {
	if cfg == nil {
		var err error
		if cfg, err = config.Load(); err != nil {
			return nil, err
		}
	}
	b, err := store.Open(cfg.Backend, cfg.BasePath())
	if err != nil {
		return nil, err
	}
	j := journal.New(b,
		journal.WithLogger(logger.Named("journal")),
		journal.WithTimestampLayout(cfg.TimestampLayout))
	a := analysis.New(analysis.Config{
		APIKey:  cfg.Gemini.APIKey,
		Model:   cfg.Gemini.Model,
		BaseURL: cfg.Gemini.BaseURL,
		Timeout: cfg.Gemini.Timeout,
	}, analysis.WithLogger(logger.Named("analysis")))

	return &deps{
		backend: b,
		journal: j,
		service: &app.Service{Journal: j, Analyzer: a},
	}, nil
}

func (d *deps) Close() {
	if err := d.backend.Close(); err != nil {
		logger.Warn("closing store failed", zap.Error(err))
	}
}

// watcher is the backend when it can report changes.
func (d *deps) watcher() *store.Diskv {
	if w, ok := d.backend.(*store.Diskv); ok {
		return w
	}
	return nil
}

// outFor keeps color.Output for the terminal and honors cmd.SetOut.
func outFor(cmd *cobra.Command) io.Writer {
	if w := cmd.OutOrStdout(); w != os.Stdout {
		return w
	}
	return color.Output
}
