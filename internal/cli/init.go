package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gdscaffold/gdscaffold/internal/branding"
	"github.com/gdscaffold/gdscaffold/internal/manifest"
	"github.com/spf13/cobra"
)

var initForce bool

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing manifest")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter manifest in the current directory",
	Long: `Write a starter gdscaffold.yaml in the current directory.

The starter manifest describes the stock four-node scene tree (Node4D with
Node2D/Control and Node3D), a GameFiles/Models asset folder filtered to .blend
files, and the default editor settings.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting current directory: %w", err)
		}

		path := filepath.Join(cwd, branding.ManifestFile())
		if _, err := os.Stat(path); err == nil && !initForce {
			return fmt.Errorf("%s already exists; use --force to overwrite", path)
		}

		if err := os.WriteFile(path, manifest.DefaultBytes(), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
		fmt.Fprintf(cmd.OutOrStdout(), "Run '%s generate' to build the project.\n", branding.CLIName())
		return nil
	},
}
