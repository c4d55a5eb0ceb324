package editor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/gdscaffold/gdscaffold/internal/faults"
	"go.uber.org/zap"
)

// DefaultExecutable is looked up on PATH when nothing else is configured.
const DefaultExecutable = "godot"

// Options selects the optional editor flags.
type Options struct {
	Headless       bool
	BuildSolutions bool     // build C# solutions before opening
	Script         string   // script to run, relative to the project root
	ExtraArgs      []string // appended verbatim
}

// Output captures the result of an editor run.
type Output struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Runner invokes the editor executable.
type Runner struct {
	Executable string
	// Stdout and Stderr receive the editor's output as it runs; they default
	// to os.Stdout and os.Stderr.
	Stdout io.Writer
	Stderr io.Writer
	Logger *zap.Logger
}

// Args returns the editor command line for projectDir, without the executable.
func Args(projectDir string, opts Options) []string {
	var args []string
	if opts.Headless {
		args = append(args, "--headless")
	}
	args = append(args, "--editor", "--path", projectDir)
	if opts.BuildSolutions {
		args = append(args, "--build-solutions")
	}
	if opts.Script != "" {
		args = append(args, "--script", opts.Script)
	}
	return append(args, opts.ExtraArgs...)
}

// Resolve finds the executable on disk or on PATH. A missing executable is
// a ConfigurationError.
func (r *Runner) Resolve() (string, error) {
	exe := r.Executable
	if exe == "" {
		exe = DefaultExecutable
	}
	path, err := exec.LookPath(exe)
	if err != nil {
		return "", faults.Configuration(exe, "editor executable not found: %v", err)
	}
	return path, nil
}

// Run opens projectDir in the editor and waits for it to exit. A non-zero
// exit code is returned in Output with a nil error; only failures to start
// the process are errors.
func (r *Runner) Run(ctx context.Context, projectDir string, opts Options) (*Output, error) {
	exe, err := r.Resolve()
	if err != nil {
		return nil, err
	}

	if info, err := os.Stat(projectDir); err != nil || !info.IsDir() {
		return nil, faults.Configuration(projectDir, "project directory does not exist")
	}

	args := Args(projectDir, opts)
	cmd := exec.CommandContext(ctx, exe, args...)
	cmd.Dir = projectDir

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = io.MultiWriter(r.stdout(), &stdoutBuf)
	cmd.Stderr = io.MultiWriter(r.stderr(), &stderrBuf)

	r.logger().Info("starting editor", zap.String("executable", exe), zap.Strings("args", args))

	err = cmd.Run()
	output := &Output{
		Stdout: stdoutBuf.String(),
		Stderr: stderrBuf.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			output.ExitCode = exitErr.ExitCode()
			r.logger().Warn("editor exited with non-zero status", zap.Int("exit_code", output.ExitCode))
			return output, nil
		}
		return output, fmt.Errorf("running editor %s: %w", exe, err)
	}

	r.logger().Info("editor finished", zap.Int("exit_code", 0))
	return output, nil
}

func (r *Runner) stdout() io.Writer {
	if r.Stdout != nil {
		return r.Stdout
	}
	return os.Stdout
}

func (r *Runner) stderr() io.Writer {
	if r.Stderr != nil {
		return r.Stderr
	}
	return os.Stderr
}

func (r *Runner) logger() *zap.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return zap.NewNop()
}
