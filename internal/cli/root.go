package cli

import (
	"context"

	"github.com/gdscaffold/gdscaffold/internal/branding"
	"github.com/gdscaffold/gdscaffold/internal/config"
	"github.com/gdscaffold/gdscaffold/internal/telemetry"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	verbose bool

	// logger is replaced in PersistentPreRunE once flags are parsed.
	logger = zap.NewNop()

	shutdownTracing = func(context.Context) error { return nil }
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging on stderr")
}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` materialises a Godot 4 project from a manifest: project.godot,
one .tscn scene descriptor per node of the scene tree (children written before
their parents), copied asset folders and extra files, and an optional hand-off
to the Godot editor.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.Load()

		l, err := newLogger(verbose)
		if err != nil {
			return err
		}
		logger = l

		shutdown, err := telemetry.Setup(cmd.Context(), buildVersion)
		if err != nil {
			logger.Warn("tracing disabled", zap.Error(err))
			return nil
		}
		shutdownTracing = shutdown
		return nil
	},
}

// newLogger builds the stderr logger. Only warnings and errors are shown
// unless verbose is set.
func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.DisableStacktrace = true
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}

// Execute runs the root command with build info injected via ldflags.
func Execute(ctx context.Context, version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	defer func() {
		_ = shutdownTracing(context.Background())
		_ = logger.Sync()
	}()
	return rootCmd.ExecuteContext(ctx)
}
