package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/gdscaffold/gdscaffold/internal/branding"
	"github.com/gdscaffold/gdscaffold/internal/editor"
	"github.com/gdscaffold/gdscaffold/internal/manifest"
	"github.com/gdscaffold/gdscaffold/internal/platform"
	"github.com/spf13/cobra"
)

var (
	doctorManifest string
	doctorEditor   string
)

const versionTimeout = 15 * time.Second

func init() {
	doctorCmd.Flags().StringVarP(&doctorManifest, "manifest", "m", "", "Manifest file (default: search upward for gdscaffold.yaml)")
	doctorCmd.Flags().StringVar(&doctorEditor, "editor", "", "Editor executable to check")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the manifest, editor and output directory",
	Long: `Run diagnostic checks before generating: the manifest validates, the editor
executable is found and its version is supported, and the project directory
can be written.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d := &doctor{out: cmd.OutOrStdout()}

		fmt.Fprintln(d.out, "Manifest check:")
		m, src, err := loadManifest(doctorManifest)
		if err != nil {
			d.fail("%v", err)
		} else {
			d.ok("%s", src.describe())
			if t, err := m.Tree(); err != nil {
				d.fail("scene tree: %v", err)
			} else {
				d.ok("scene tree has %d node(s), main scene %s", t.Len(), t.Root.ResPath())
			}
		}

		fmt.Fprintln(d.out, "Editor check:")
		d.checkEditor(cmd.Context(), editorExecutable(doctorEditor, m))

		if m != nil {
			fmt.Fprintln(d.out, "Output check:")
			d.checkOutput(m)
		}

		if d.failures > 0 {
			return fmt.Errorf("doctor found %d problem(s)", d.failures)
		}
		return nil
	},
}

type doctor struct {
	out      io.Writer
	failures int
}

func (d *doctor) ok(format string, args ...any) {
	fmt.Fprintf(d.out, "  [ OK ] "+format+"\n", args...)
}

func (d *doctor) warn(format string, args ...any) {
	fmt.Fprintf(d.out, "  [WARN] "+format+"\n", args...)
}

func (d *doctor) fail(format string, args ...any) {
	d.failures++
	fmt.Fprintf(d.out, "  [FAIL] "+format+"\n", args...)
}

// checkEditor treats a missing editor as a warning since generation works
// without one.
func (d *doctor) checkEditor(ctx context.Context, exe string) {
	r := newEditorRunner(exe, io.Discard, io.Discard)
	path, err := r.Resolve()
	if err != nil {
		d.warn("%s not found; the editor step will be skipped (set --editor or %s)", exe, branding.EnvVar("EDITOR_EXECUTABLE"))
		return
	}
	d.ok("%s found at %s", exe, path)

	ctx, cancel := context.WithTimeout(ctx, versionTimeout)
	defer cancel()

	v, err := r.Version(ctx)
	if err != nil {
		d.warn("could not determine version: %v", err)
		return
	}
	supported, err := editor.CheckVersion(v, editor.SupportedVersions)
	if err != nil {
		d.fail("%v", err)
		return
	}
	if !supported {
		d.fail("version %s is not supported (want %s)", v, editor.SupportedVersions)
		return
	}
	d.ok("version %s", v)
}

func (d *doctor) checkOutput(m *manifest.Manifest) {
	dir := m.ProjectDir()
	probed, err := platform.CheckWritable(dir)
	if err != nil {
		d.fail("%v", err)
		return
	}
	if probed == dir {
		d.ok("%s is writable", dir)
		return
	}
	d.ok("%s will be created in %s", dir, probed)
}
