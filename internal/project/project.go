package project

import (
	"bytes"
	_ "embed"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"text/template"

	"github.com/Masterminds/semver/v3"
	"github.com/gdscaffold/gdscaffold/internal/branding"
	"github.com/gdscaffold/gdscaffold/internal/faults"
	"github.com/spf13/afero"
)

// FileName is the manifest file name the editor looks for.
const FileName = "project.godot"

// DefaultRenderer is the rendering method written when none is configured.
const DefaultRenderer = "Forward Plus"

// supportedEngines lists the engine versions whose project format is written
// here. Scenes use format=3, which only Godot 4 reads.
const supportedEngines = ">= 4.0.0-0, < 5.0.0-0"

// SupportedEngines returns the engine version constraint that Render accepts.
func SupportedEngines() string { return supportedEngines }

//go:embed templates/project.godot.tmpl
var projectTemplate string

var (
	parsed    *template.Template
	parseOnce sync.Once
	parseErr  error
)

var quoter = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// Settings describes one project.godot file.
type Settings struct {
	Name          string // config/name
	EngineVersion string // e.g. "4.3"
	Renderer      string // e.g. "Forward Plus"
	MainScene     string // res:// path of the root descriptor
	Icon          string // optional res:// path
	DotNet        bool   // add the [dotnet] section for C# projects
}

type templateData struct {
	Generator     string
	ConfigVersion int
	Name          string
	MainScene     string
	Feature       string
	Renderer      string
	Icon          string
	DotNet        bool
	AssemblyName  string
}

// ConfigVersion returns the config_version matching an engine version.
func ConfigVersion(engineVersion string) (int, error) {
	v, err := semver.NewVersion(engineVersion)
	if err != nil {
		return 0, faults.Configuration("", "engine version %q is not a version: %v", engineVersion, err)
	}
	c, err := semver.NewConstraint(supportedEngines)
	if err != nil {
		return 0, fmt.Errorf("parsing engine constraint: %w", err)
	}
	if !c.Check(v) {
		return 0, faults.Configuration("", "engine version %s is not supported (want %s)", v, supportedEngines)
	}
	return 5, nil
}

// Feature returns the "major.minor" feature tag for an engine version.
func Feature(engineVersion string) (string, error) {
	v, err := semver.NewVersion(engineVersion)
	if err != nil {
		return "", faults.Configuration("", "engine version %q is not a version: %v", engineVersion, err)
	}
	return fmt.Sprintf("%d.%d", v.Major(), v.Minor()), nil
}

// Render returns the project.godot content for s.
func Render(s Settings) ([]byte, error) {
	if s.Name == "" {
		return nil, faults.Configuration("", "project name is empty")
	}
	if !strings.HasPrefix(s.MainScene, "res://") {
		return nil, faults.Configuration("", "main scene %q is not a res:// path", s.MainScene)
	}

	configVersion, err := ConfigVersion(s.EngineVersion)
	if err != nil {
		return nil, err
	}
	feature, err := Feature(s.EngineVersion)
	if err != nil {
		return nil, err
	}

	renderer := s.Renderer
	if renderer == "" {
		renderer = DefaultRenderer
	}

	tmpl, err := getTemplate()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, templateData{
		Generator:     branding.CLIName(),
		ConfigVersion: configVersion,
		Name:          s.Name,
		MainScene:     s.MainScene,
		Feature:       feature,
		Renderer:      renderer,
		Icon:          s.Icon,
		DotNet:        s.DotNet,
		AssemblyName:  assemblyName(s.Name),
	})
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", FileName, err)
	}
	return buf.Bytes(), nil
}

// Write renders s into projectDir/project.godot, replacing any existing
// file. projectDir must already exist.
func Write(fs afero.Fs, projectDir string, s Settings) (string, error) {
	content, err := Render(s)
	if err != nil {
		return "", err
	}

	target := filepath.Join(projectDir, FileName)
	if err := afero.WriteFile(fs, target, content, 0644); err != nil {
		return "", faults.IO("write", target, err)
	}
	return target, nil
}

// assemblyName strips characters the C# build rejects in assembly names.
func assemblyName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '.':
			b.WriteRune(r)
		case r == ' ' || r == '-':
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "Game"
	}
	return b.String()
}

func getTemplate() (*template.Template, error) {
	parseOnce.Do(func() {
		parsed, parseErr = template.New(FileName).Funcs(template.FuncMap{
			"quote": func(s string) string { return `"` + quoter.Replace(s) + `"` },
		}).Parse(projectTemplate)
		if parseErr != nil {
			parseErr = fmt.Errorf("parsing %s template: %w", FileName, parseErr)
		}
	})
	return parsed, parseErr
}
