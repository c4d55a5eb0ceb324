package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/gdscaffold/gdscaffold/internal/generate"
	"github.com/gdscaffold/gdscaffold/internal/manifest"
	"github.com/gdscaffold/gdscaffold/internal/telemetry"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	generateManifest   string
	generateOutput     string
	generateSkipEditor bool
	generateEditor     string
)

func init() {
	generateCmd.Flags().StringVarP(&generateManifest, "manifest", "m", "", "Manifest file (default: search upward for gdscaffold.yaml)")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Project directory (overrides the manifest's output)")
	generateCmd.Flags().BoolVar(&generateSkipEditor, "skip-editor", false, "Do not open the generated project in the editor")
	generateCmd.Flags().StringVar(&generateEditor, "editor", "", "Editor executable (overrides manifest and user config)")
	rootCmd.AddCommand(generateCmd)
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the Godot project",
	Long: `Generate the Godot project described by the manifest.

Steps, in order: create the project directory, write project.godot, copy
asset folders, copy extra files, write one .tscn per scene node (children
before parents), then open the project in the editor. Missing asset folders
and a missing editor are reported as warnings; write failures abort.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, src, err := loadManifest(generateManifest)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Using %s\n", src.describe())

		_, err = runGenerate(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), m, generate.Plan{
			Manifest:   m,
			OutputDir:  generateOutput,
			SkipEditor: generateSkipEditor,
		}, generateEditor)
		return err
	},
}

// runGenerate executes one pass against the OS filesystem and prints the
// report to out.
func runGenerate(ctx context.Context, out, errOut io.Writer, m *manifest.Manifest, plan generate.Plan, editorFlag string) (*generate.Report, error) {
	applyEditorDefaults(m)
	if plan.OutputDir != "" {
		abs, err := filepath.Abs(plan.OutputDir)
		if err != nil {
			return nil, fmt.Errorf("resolving output directory: %w", err)
		}
		plan.OutputDir = abs
	}

	g := generate.New(afero.NewOsFs(),
		generate.WithEditor(newEditorRunner(editorExecutable(editorFlag, m), out, errOut)),
		generate.WithLogger(logger.Named("generate")),
		generate.WithTracer(telemetry.Tracer("generate")),
	)

	report, err := g.Run(ctx, plan)
	if report != nil {
		printReport(out, report)
	}
	if err != nil {
		return report, fmt.Errorf("generating %s: %w", m.Name, err)
	}
	return report, nil
}

func printReport(w io.Writer, r *generate.Report) {
	if r.ProjectFile != "" {
		fmt.Fprintf(w, "Wrote %s\n", r.ProjectFile)
	}
	if r.AssetsCopied > 0 || r.AssetsSkipped > 0 {
		fmt.Fprintf(w, "Copied %d asset(s), skipped %d\n", r.AssetsCopied, r.AssetsSkipped)
	}
	if r.ExtrasCopied > 0 {
		fmt.Fprintf(w, "Copied %d extra file(s)\n", r.ExtrasCopied)
	}
	for _, d := range r.Descriptors {
		rel, err := filepath.Rel(r.ProjectDir, d)
		if err != nil {
			rel = d
		}
		fmt.Fprintf(w, "  scene %s\n", filepath.ToSlash(rel))
	}
	if len(r.Descriptors) > 0 {
		fmt.Fprintf(w, "Wrote %d scene descriptor(s) to %s (main scene %s)\n", len(r.Descriptors), r.ProjectDir, r.MainScene)
	}
	if r.EditorRan {
		fmt.Fprintf(w, "Editor exited with status %d\n", r.EditorExit)
	}
	for _, warning := range r.Warnings {
		fmt.Fprintf(w, "Warning: %s\n", warning)
	}
}
