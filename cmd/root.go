// Package cmd wires the CLI: flag parsing, logger setup, label table
// loading, and launching the interactive editor.
package cmd

import (
	"context"
	"fmt"
	"os"
	"runtime"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/oakwood-commons/prcx/internal/hash40"
	"github.com/oakwood-commons/prcx/internal/ui"
	"github.com/oakwood-commons/prcx/pkg/loader"
	"github.com/oakwood-commons/prcx/pkg/logger"
	"github.com/oakwood-commons/prcx/pkg/settings"
)

var (
	labelsPath string
	keyMode    string
	noColor    bool
	debug      bool
)

var rootCtx = context.Background()

var rootCmd = &cobra.Command{
	Use:   settings.CliBinaryName + " [file]",
	Short: "Interactive editor for hashed parameter documents",
	Long: settings.CliBinaryName + ` is a terminal editor for hierarchical parameter documents
whose keys are 40-bit label hashes. Supply a label table (ParamLabels.csv
format) to see human-readable names; without one, keys display as hex
literals and remain fully editable.`,
	Example: "\n  " + settings.CliBinaryName + " fighter.yaml\n  " + settings.CliBinaryName + " --labels ParamLabels.csv fighter.yaml\n  " + settings.CliBinaryName + " --key-mode vim fighter.yaml\n",
	Args:    cobra.MaximumNArgs(1),
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		var level int8 = 0
		if debug {
			level = -1
		}
		lgr := logger.Get(level)
		lgr = logger.WithValues(lgr, "command", cmd.Name())
		rootCtx = logger.WithLogger(context.Background(), lgr)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := settings.NewCliParams()
		cfg.NoColor = noColor
		cfg.LabelsPath = labelsPath
		cfg.KeyMode = settings.KeyMode(keyMode)
		if debug {
			cfg.MinLogLevel = -1
		}
		if !cfg.KeyMode.Valid() {
			return fmt.Errorf("invalid --key-mode %q (expected %q or %q)",
				keyMode, settings.KeyModeDefault, settings.KeyModeVim)
		}
		if len(args) > 0 {
			cfg.DocumentPath = args[0]
		}

		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return fmt.Errorf("%s is interactive and needs a terminal on stdout", settings.CliBinaryName)
		}

		return runEditor(cmd.Context(), cfg)
	},
}

// runEditor builds the resolver and model, then runs the Bubble Tea program.
func runEditor(ctx context.Context, cfg *settings.Run) error {
	if ctx == nil {
		ctx = rootCtx
	}
	ctx = settings.IntoContext(ctx, cfg)
	lgr := logger.FromContext(rootCtx)

	res, labelCount, err := buildResolver(cfg.LabelsPath)
	if err != nil {
		// A broken label table degrades the display, it never blocks editing.
		lgr.Info("label table unavailable, showing hex literals", "path", cfg.LabelsPath, "reason", err.Error())
	} else if cfg.LabelsPath != "" {
		lgr.V(1).Info("label table loaded", "path", cfg.LabelsPath, "labels", labelCount)
	}

	model := ui.NewModel(res, cfg, lgr)
	if cfg.DocumentPath != "" {
		if err := model.OpenDocument(cfg.DocumentPath); err != nil {
			return fmt.Errorf("opening %s: %w", cfg.DocumentPath, err)
		}
	}

	prog := tea.NewProgram(model, tea.WithContext(ctx))
	_, err = prog.Run()
	return err
}

// buildResolver loads the label table when a path is given. On any failure it
// returns a resolver without labels plus the error for logging.
func buildResolver(path string) (*hash40.Resolver, int, error) {
	if path == "" {
		return hash40.NewResolver(nil), 0, nil
	}
	labels, err := loader.LoadLabelsFile(path)
	if err != nil {
		return hash40.NewResolver(nil), 0, err
	}
	corpus := hash40.NewCorpus(labels)
	return hash40.NewResolver(corpus), corpus.Len(), nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print " + settings.CliBinaryName + " version",
	RunE: func(_ *cobra.Command, _ []string) error {
		fmt.Println(cliVersionString()) //nolint:forbidigo
		return nil
	},
}

func cliVersionString() string {
	info := settings.VersionInformation
	return fmt.Sprintf("%s %s (commit %s, built %s, %s)",
		settings.CliBinaryName, info.BuildVersion, info.Commit, info.BuildTime, runtime.Version())
}

func init() {
	rootCmd.Flags().StringVarP(&labelsPath, "labels", "l", "", "path to a ParamLabels.csv label table")
	rootCmd.Flags().StringVar(&keyMode, "key-mode", string(settings.KeyModeDefault), "key layout: default or vim")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "enable debug logging on stderr")

	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
