package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdscaffold/gdscaffold/internal/faults"
	"github.com/gdscaffold/gdscaffold/internal/generate"
	"github.com/gdscaffold/gdscaffold/internal/manifest"
	"github.com/gdscaffold/gdscaffold/internal/watch"
	"github.com/spf13/cobra"
)

var (
	watchManifest string
	watchOutput   string
	watchDebounce time.Duration
)

func init() {
	watchCmd.Flags().StringVarP(&watchManifest, "manifest", "m", "", "Manifest file (default: search upward for gdscaffold.yaml)")
	watchCmd.Flags().StringVarP(&watchOutput, "output", "o", "", "Project directory (overrides the manifest's output)")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", watch.DefaultDebounce, "Quiet period before regenerating")
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate the project whenever the manifest changes",
	Long: `Generate the project once, then regenerate it every time the manifest file
changes. The editor is never started in watch mode. Stop with Ctrl-C.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := findManifest(watchManifest)
		if err != nil {
			return err
		}
		if src.Default {
			return faults.Configuration("", "no manifest to watch; pass --manifest or run 'init'")
		}

		out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
		pass := func(ctx context.Context) error {
			m, err := manifest.Load(src.Path)
			if err != nil {
				fmt.Fprintf(errOut, "Error: %v\n", err)
				return err
			}
			_, err = runGenerate(ctx, out, errOut, m, generate.Plan{
				Manifest:   m,
				OutputDir:  watchOutput,
				SkipEditor: true,
			}, "")
			if err != nil {
				fmt.Fprintf(errOut, "Error: %v\n", err)
			}
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		// A broken manifest at startup is reported; watching continues so
		// the next save can fix it.
		_ = pass(ctx)

		w, err := watch.New(src.Path, pass, watch.WithDebounce(watchDebounce), watch.WithLogger(logger.Named("watch")))
		if err != nil {
			return err
		}
		if err := w.Start(ctx); err != nil {
			w.Stop()
			return err
		}
		fmt.Fprintf(out, "Watching %s (Ctrl-C to stop)\n", src.Path)

		<-ctx.Done()
		w.Stop()
		fmt.Fprintf(out, "Stopped after %d regeneration(s)\n", w.Passes())
		return nil
	},
}
