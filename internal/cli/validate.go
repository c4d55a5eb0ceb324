package cli

import (
	"fmt"

	"github.com/gdscaffold/gdscaffold/internal/faults"
	"github.com/gdscaffold/gdscaffold/internal/manifest"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a manifest against the schema",
	Long: `Validate a manifest against the JSON schema and check that its scene tree
can be built. Without an argument the manifest is searched for upward from the
current directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		explicit := ""
		if len(args) == 1 {
			explicit = args[0]
		}
		src, err := findManifest(explicit)
		if err != nil {
			return err
		}
		if src.Default {
			return faults.Configuration("", "no manifest found; pass a file or run 'init'")
		}

		out := cmd.OutOrStdout()
		result, err := manifest.ValidateFile(src.Path)
		if err != nil {
			return err
		}
		if !result.Valid {
			fmt.Fprintf(out, "[FAIL] %s\n", src.Path)
			for _, issue := range result.Issues {
				path := issue.Path
				if path == "" {
					path = "(root)"
				}
				fmt.Fprintf(out, "  %s: %s\n", path, issue.Message)
			}
			return fmt.Errorf("%s has %d issue(s)", src.Path, len(result.Issues))
		}

		m, err := manifest.Parse(src.Path)
		if err != nil {
			return err
		}
		t, err := m.Tree()
		if err != nil {
			fmt.Fprintf(out, "[FAIL] %s\n  scenes: %v\n", src.Path, err)
			return fmt.Errorf("%s: invalid scene tree: %w", src.Path, err)
		}

		fmt.Fprintf(out, "[ OK ] %s (%d scene nodes)\n", src.Path, t.Len())
		return nil
	},
}
