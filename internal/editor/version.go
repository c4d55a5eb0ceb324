package editor

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// SupportedVersions is the editor range whose project format is generated.
const SupportedVersions = ">= 4.0.0-0, < 5.0.0-0"

// versionPrefix matches the numeric head of "4.4.1.stable.mono.official.49a5bc7b6".
var versionPrefix = regexp.MustCompile(`^v?(\d+)\.(\d+)(?:\.(\d+))?`)

// ParseVersion extracts the semantic version from the editor's --version
// output. Build metadata such as ".stable.mono" is dropped.
func ParseVersion(out string) (*semver.Version, error) {
	line := strings.TrimSpace(out)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = strings.TrimSpace(line[:i])
	}

	m := versionPrefix.FindStringSubmatch(line)
	if m == nil {
		return nil, fmt.Errorf("no version found in %q", line)
	}
	patch := m[3]
	if patch == "" {
		patch = "0"
	}
	return semver.NewVersion(fmt.Sprintf("%s.%s.%s", m[1], m[2], patch))
}

// CheckVersion reports whether v satisfies constraint.
func CheckVersion(v *semver.Version, constraint string) (bool, error) {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, fmt.Errorf("parsing constraint %q: %w", constraint, err)
	}
	return c.Check(v), nil
}

// Version runs the executable with --version and parses the result.
func (r *Runner) Version(ctx context.Context) (*semver.Version, error) {
	exe, err := r.Resolve()
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, exe, "--version")
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("running %s --version: %w", exe, err)
	}
	return ParseVersion(out.String())
}
