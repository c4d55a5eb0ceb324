package cli

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/gdscaffold/gdscaffold/internal/branding"
	"github.com/gdscaffold/gdscaffold/internal/project"
	"github.com/spf13/cobra"
)

var (
	versionShort bool
	versionJSON  bool
)

// buildInfo is what `version --json` prints.
type buildInfo struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuiltAt   string `json:"built_at"`
	GoVersion string `json:"go_version"`
	Engines   string `json:"engines"` // Godot versions the scaffolder writes for
}

func currentBuild() buildInfo {
	return buildInfo{
		Name:      branding.DisplayName(),
		Version:   buildVersion,
		Commit:    buildCommit,
		BuiltAt:   buildDate,
		GoVersion: runtime.Version(),
		Engines:   project.SupportedEngines(),
	}
}

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print only the version number")
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Print build information as JSON")
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show build information and supported Godot versions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := currentBuild()
		out := cmd.OutOrStdout()

		switch {
		case versionShort:
			fmt.Fprintln(out, info.Version)
		case versionJSON:
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(info); err != nil {
				return fmt.Errorf("encoding build info: %w", err)
			}
		default:
			fmt.Fprintf(out, "%s %s\n", info.Name, info.Version)
			fmt.Fprintf(out, "  commit:  %s\n", info.Commit)
			fmt.Fprintf(out, "  built:   %s\n", info.BuiltAt)
			fmt.Fprintf(out, "  go:      %s\n", info.GoVersion)
			fmt.Fprintf(out, "  engines: godot %s\n", info.Engines)
		}
		return nil
	},
}
