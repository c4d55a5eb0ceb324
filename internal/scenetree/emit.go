package scenetree

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gdscaffold/gdscaffold/internal/faults"
	"github.com/spf13/afero"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
)

const (
	dirPerm  os.FileMode = 0755
	filePerm os.FileMode = 0644
)

// ErrChildNotWritten is returned by EmitNode when a child descriptor does
// not exist yet. Parents must be emitted after all of their children.
var ErrChildNotWritten = errors.New("child descriptor not written yet")

// Emitter writes scene descriptors to a filesystem.
type Emitter struct {
	fs     afero.Fs
	opts   RenderOptions
	logger *zap.Logger
	tracer trace.Tracer
}

// Option configures an Emitter.
type Option func(*Emitter)

// WithUIDs enables uid:// identifiers in the descriptors.
func WithUIDs(enabled bool) Option {
	return func(e *Emitter) { e.opts.UIDs = enabled }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(e *Emitter) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithTracer sets the tracer used for per-node spans.
func WithTracer(t trace.Tracer) Option {
	return func(e *Emitter) {
		if t != nil {
			e.tracer = t
		}
	}
}

// NewEmitter returns an Emitter writing through fs. A nil fs means the OS
// filesystem.
func NewEmitter(fs afero.Fs, opts ...Option) *Emitter {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	e := &Emitter{
		fs:     fs,
		logger: zap.NewNop(),
		tracer: noop.NewTracerProvider().Tracer("scenetree"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// DescriptorPath returns the on-disk location of n's descriptor under projectDir.
func DescriptorPath(projectDir string, n *Node) string {
	return filepath.Join(projectDir, filepath.FromSlash(n.FilePath()))
}

// EmitNode writes n's descriptor under projectDir, creating missing parent
// directories and overwriting any existing file. Every child of n must
// already have been written. It returns the path written.
func (e *Emitter) EmitNode(ctx context.Context, projectDir string, n *Node) (string, error) {
	_, span := e.tracer.Start(ctx, "scenetree.EmitNode",
		trace.WithAttributes(
			attribute.String("scene.name", n.Name),
			attribute.String("scene.path", n.FilePath()),
			attribute.Int("scene.children", len(n.Children)),
		))
	defer span.End()

	for _, c := range n.Children {
		childPath := DescriptorPath(projectDir, c)
		if _, err := e.fs.Stat(childPath); err != nil {
			err = fmt.Errorf("emitting %s: %w: %s", n.Name, ErrChildNotWritten, c.FilePath())
			span.RecordError(err)
			return "", err
		}
	}

	target := DescriptorPath(projectDir, n)

	if err := e.fs.MkdirAll(filepath.Dir(target), dirPerm); err != nil {
		err = faults.IO("mkdir", filepath.Dir(target), err)
		span.RecordError(err)
		return "", err
	}

	content, err := Render(n, e.opts)
	if err != nil {
		span.RecordError(err)
		return "", err
	}

	if err := afero.WriteFile(e.fs, target, content, filePerm); err != nil {
		err = faults.IO("write", target, err)
		span.RecordError(err)
		return "", err
	}

	e.logger.Debug("scene written",
		zap.String("node", n.Name),
		zap.String("kind", n.Kind.String()),
		zap.String("path", target),
		zap.Int("children", len(n.Children)))
	return target, nil
}

// EmitTree writes every node of t exactly once, children before parents.
// The first failure aborts the pass; files already written stay on disk.
// It returns the written paths in emission order.
func (e *Emitter) EmitTree(ctx context.Context, projectDir string, t *Tree) ([]string, error) {
	ctx, span := e.tracer.Start(ctx, "scenetree.EmitTree",
		trace.WithAttributes(attribute.Int("scene.nodes", t.Len())))
	defer span.End()

	written := make([]string, 0, t.Len())
	err := t.Walk(func(n *Node) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		p, err := e.EmitNode(ctx, projectDir, n)
		if err != nil {
			return err
		}
		written = append(written, p)
		return nil
	})
	if err != nil {
		span.RecordError(err)
		return written, err
	}

	e.logger.Info("scene tree written",
		zap.String("project", projectDir),
		zap.String("root", t.Root.ResPath()),
		zap.Int("files", len(written)))
	return written, nil
}
