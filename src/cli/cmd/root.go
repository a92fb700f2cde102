package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/sofmeright/tailor/src/config"
	"github.com/sofmeright/tailor/src/output"

	// Registers the built-in style rules.
	_ "github.com/sofmeright/tailor/src/lint/rules"
)

var (
	cfgFile string
	verbose bool
	cfg     *config.Config
	logger  zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "tailor [flags] <project_dir>",
	Short: "Ruby style checker",
	Long: `tailor walks a project directory and checks every Ruby source file
for style problems: hard tabs, camel-cased method names, class names
that are not camel case, trailing whitespace and long lines.`,
	Args: cobra.ExactArgs(1),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = output.NewLogger(os.Stderr, verbose, output.UseColor(os.Stderr))

		// Skip config loading for commands that don't need it.
		if cmd.Name() == "version" {
			return nil
		}

		rootDir := "."
		if cmd == cmd.Root() && len(args) > 0 {
			rootDir = args[0]
		}

		var err error
		cfg, err = config.Load(cfgFile, rootDir)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if cfg.Path != "" {
			logger.Info().Str("path", cfg.Path).Msg("loaded config")
		}

		warnings, err := config.Validate(cfg)
		for _, w := range warnings {
			logger.Warn().Msg(w)
		}
		if err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		return nil
	},
	RunE:          runCheck,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: <project_dir>/.tailor.yml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// Execute runs the root command. An interrupt cancels the scan in progress.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return nil
}
