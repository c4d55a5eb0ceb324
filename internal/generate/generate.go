package generate

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gdscaffold/gdscaffold/internal/assets"
	"github.com/gdscaffold/gdscaffold/internal/editor"
	"github.com/gdscaffold/gdscaffold/internal/faults"
	"github.com/gdscaffold/gdscaffold/internal/manifest"
	"github.com/gdscaffold/gdscaffold/internal/project"
	"github.com/gdscaffold/gdscaffold/internal/scenetree"
	"github.com/spf13/afero"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
)

// EditorRunner opens a project in the editor. *editor.Runner implements it.
type EditorRunner interface {
	Run(ctx context.Context, projectDir string, opts editor.Options) (*editor.Output, error)
}

// Plan is the input of one pass.
type Plan struct {
	Manifest *manifest.Manifest
	// OutputDir overrides the manifest's output directory when set.
	OutputDir string
	// SkipEditor suppresses the editor hand-off regardless of the manifest.
	SkipEditor bool
}

// Report describes what a pass did.
type Report struct {
	ProjectDir    string
	ProjectFile   string   // path of project.godot
	MainScene     string   // res:// path of the root descriptor
	Descriptors   []string // written in emission order
	AssetsCopied  int
	AssetsSkipped int // files filtered out by extension
	ExtrasCopied  int
	Warnings      []string
	EditorRan     bool
	EditorExit    int
}

// Generator runs passes against a filesystem.
type Generator struct {
	fs     afero.Fs
	editor EditorRunner
	logger *zap.Logger
	tracer trace.Tracer
}

// Option configures a Generator.
type Option func(*Generator)

// WithEditor sets the editor runner. Without one the editor step is skipped.
func WithEditor(r EditorRunner) Option {
	return func(g *Generator) { g.editor = r }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithTracer sets the tracer for per-step spans.
func WithTracer(t trace.Tracer) Option {
	return func(g *Generator) {
		if t != nil {
			g.tracer = t
		}
	}
}

// New returns a Generator writing through fs, or the OS filesystem when fs
// is nil.
func New(fs afero.Fs, opts ...Option) *Generator {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	g := &Generator{
		fs:     fs,
		logger: zap.NewNop(),
		tracer: noop.NewTracerProvider().Tracer("generate"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Run executes one pass. The scene tree and the engine settings are
// validated before anything is written.
func (g *Generator) Run(ctx context.Context, plan Plan) (*Report, error) {
	m := plan.Manifest
	if m == nil {
		return nil, faults.Configuration("", "no manifest")
	}

	ctx, span := g.tracer.Start(ctx, "generate.Run", trace.WithAttributes(attribute.String("project.name", m.Name)))
	defer span.End()

	report, err := g.run(ctx, plan)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return report, err
	}
	span.SetAttributes(
		attribute.Int("generate.descriptors", len(report.Descriptors)),
		attribute.Int("generate.warnings", len(report.Warnings)))
	return report, nil
}

func (g *Generator) run(ctx context.Context, plan Plan) (*Report, error) {
	m := plan.Manifest

	projectDir := m.ProjectDir()
	if plan.OutputDir != "" {
		projectDir = plan.OutputDir
	}
	if projectDir == "" {
		return nil, faults.Configuration("", "no output directory")
	}

	tree, err := m.Tree()
	if err != nil {
		return nil, faults.Configuration("", "scene tree: %v", err)
	}

	settings := project.Settings{
		Name:          m.Name,
		EngineVersion: m.Engine.Version,
		Renderer:      m.Engine.Renderer,
		MainScene:     tree.Root.ResPath(),
		Icon:          m.Engine.Icon,
		DotNet:        m.Engine.DotNet,
	}
	if _, err := project.Render(settings); err != nil {
		return nil, err
	}
	for i, a := range m.Assets {
		if err := validateDest(a.Dest); err != nil {
			return nil, faults.Configuration(a.Dest, "assets[%d].dest: %v", i, err)
		}
	}
	for i, x := range m.Extras {
		if err := validateDest(x.Dest); err != nil {
			return nil, faults.Configuration(x.Dest, "extras[%d].dest: %v", i, err)
		}
	}

	report := &Report{ProjectDir: projectDir, MainScene: settings.MainScene}
	copier := assets.NewCopier(g.fs, g.logger)

	err = g.step(ctx, "mkdir", func(context.Context) error {
		if err := g.fs.MkdirAll(projectDir, 0755); err != nil {
			return faults.IO("mkdir", projectDir, err)
		}
		return nil
	})
	if err != nil {
		return report, err
	}

	err = g.step(ctx, "project", func(context.Context) error {
		path, err := project.Write(g.fs, projectDir, settings)
		report.ProjectFile = path
		return err
	})
	if err != nil {
		return report, err
	}

	err = g.step(ctx, "assets", func(context.Context) error {
		for _, a := range m.Assets {
			res, err := copier.Copy(assets.Source{
				Dir:        m.Resolve(a.Source),
				Dest:       a.Dest,
				Extensions: a.Extensions,
			}, projectDir)
			if faults.IsConfiguration(err) {
				report.warn(g.logger, err)
				continue
			}
			if err != nil {
				return err
			}
			report.AssetsCopied += res.Copied
			report.AssetsSkipped += res.Skipped
		}
		return nil
	})
	if err != nil {
		return report, err
	}

	err = g.step(ctx, "extras", func(context.Context) error {
		for _, x := range m.Extras {
			src := m.Resolve(x.Source)
			dest := x.Dest
			if dest == "" {
				dest = filepath.Base(src)
			}
			err := copier.CopyFile(src, filepath.Join(projectDir, filepath.FromSlash(dest)))
			if faults.IsConfiguration(err) {
				report.warn(g.logger, err)
				continue
			}
			if err != nil {
				return err
			}
			report.ExtrasCopied++
		}
		return nil
	})
	if err != nil {
		return report, err
	}

	err = g.step(ctx, "scenes", func(ctx context.Context) error {
		emitter := scenetree.NewEmitter(g.fs,
			scenetree.WithUIDs(m.Scenes.UIDs),
			scenetree.WithLogger(g.logger),
			scenetree.WithTracer(g.tracer))
		written, err := emitter.EmitTree(ctx, projectDir, tree)
		report.Descriptors = written
		return err
	})
	if err != nil {
		return report, err
	}

	if plan.SkipEditor || m.Editor.Skip || g.editor == nil {
		g.logger.Debug("editor step skipped")
		return report, nil
	}

	err = g.step(ctx, "editor", func(ctx context.Context) error {
		return g.runEditor(ctx, m, projectDir, report)
	})
	return report, err
}

// runEditor records editor problems as warnings. Only an unexpected failure
// to start the process is returned.
func (g *Generator) runEditor(ctx context.Context, m *manifest.Manifest, projectDir string, report *Report) error {
	if m.Editor.Script != "" {
		script := filepath.Join(projectDir, filepath.FromSlash(m.Editor.Script))
		if _, err := g.fs.Stat(script); os.IsNotExist(err) {
			report.warn(g.logger, faults.Configuration(script, "editor script does not exist; editor not started"))
			return nil
		}
	}

	out, err := g.editor.Run(ctx, projectDir, editor.Options{
		Headless:       m.Editor.Headless,
		BuildSolutions: m.Editor.BuildSolutions,
		Script:         m.Editor.Script,
		ExtraArgs:      m.Editor.Args,
	})
	if faults.IsConfiguration(err) {
		report.warn(g.logger, err)
		return nil
	}
	if err != nil {
		return err
	}

	report.EditorRan = true
	report.EditorExit = out.ExitCode
	if out.ExitCode != 0 {
		report.Warnings = append(report.Warnings, fmt.Sprintf("editor exited with status %d", out.ExitCode))
	}
	return nil
}

// validateDest accepts an empty or "." destination and otherwise only clean
// slash-separated paths that stay below the project directory.
func validateDest(dest string) error {
	if dest == "" || dest == "." {
		return nil
	}
	if strings.Contains(dest, `\`) {
		return fmt.Errorf("%q uses a backslash; separate segments with /", dest)
	}
	if path.IsAbs(dest) || filepath.IsAbs(dest) || filepath.VolumeName(dest) != "" {
		return fmt.Errorf("%q is absolute; it must be relative to the project", dest)
	}
	if path.Clean(dest) != dest {
		return fmt.Errorf("%q is not a clean path", dest)
	}
	for _, seg := range strings.Split(dest, "/") {
		if seg == ".." {
			return fmt.Errorf("%q leaves the project directory", dest)
		}
	}
	return nil
}

// step runs fn inside a span named after the step.
func (g *Generator) step(ctx context.Context, name string, fn func(context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ctx, span := g.tracer.Start(ctx, "generate."+name)
	defer span.End()

	if err := fn(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		g.logger.Error("generation step failed", zap.String("step", name), zap.Error(err))
		return err
	}
	g.logger.Debug("generation step done", zap.String("step", name))
	return nil
}

func (r *Report) warn(logger *zap.Logger, err error) {
	r.Warnings = append(r.Warnings, err.Error())
	logger.Warn("skipped", zap.Error(err))
}
