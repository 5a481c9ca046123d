package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/goccy/go-yaml"

	"github.com/byte4ever/scaffolder/render"
	"github.com/byte4ever/scaffolder/templates"
)

// DefaultFile is the config file looked up when none is
// given on the command line.
const DefaultFile = "scaffold.json"

// Config is a validated scaffold run configuration. All
// paths are absolute.
type Config struct {
	// Path is the config file location.
	Path string

	// BaseDir is the directory relative paths are
	// resolved against.
	BaseDir string

	// OutputPath is the configured output root before
	// placeholder translation.
	OutputPath string

	// TemplatesPath is the directory holding template
	// trees. Empty for built-in templates.
	TemplatesPath string

	// TemplateName selects the template tree.
	TemplateName string

	// Variables are the values placeholders expand to.
	Variables map[string]interface{}

	// Builtin selects an embedded template instead of
	// one under TemplatesPath.
	Builtin bool

	// TrimSuffix is removed from generated file names.
	TrimSuffix string

	// rawOutput is output_path as written in the file.
	rawOutput string
}

// fileConfig mirrors the on-disk layout. Pointer fields
// distinguish a missing key from an empty value.
type fileConfig struct {
	OutputPath    *string                `json:"output_path"    yaml:"output_path"`
	TemplatesPath *string                `json:"templates_path" yaml:"templates_path"`
	TemplateName  *string                `json:"template_name"  yaml:"template_name"`
	Variables     map[string]interface{} `json:"variables"      yaml:"variables"`
	Builtin       bool                   `json:"builtin"        yaml:"builtin"`
	TrimSuffix    string                 `json:"trim_suffix"    yaml:"trim_suffix"`
}

// Load reads, validates and resolves the config file at
// path.
func Load(path string) (*Config, error) {
	const errCtx = "loading config"

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf(
			"%s: config does not exist [%s]", errCtx, path,
		)
	}

	raw, err := os.ReadFile(path) //nolint:gosec // path from CLI argument
	if err != nil {
		return nil, fmt.Errorf("%s [%s]: %w", errCtx, path, err)
	}

	fc, err := decode(path, raw)
	if err != nil {
		return nil, fmt.Errorf("%s [%s]: %w", errCtx, path, err)
	}

	if err := fc.validate(); err != nil {
		return nil, fmt.Errorf("%s [%s]: %w", errCtx, path, err)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	if resolved, err := filepath.EvalSymlinks(absPath); err == nil {
		absPath = resolved
	}

	base := filepath.Dir(absPath)

	cfg := &Config{
		Path:         absPath,
		BaseDir:      base,
		OutputPath:   resolve(base, *fc.OutputPath),
		TemplateName: *fc.TemplateName,
		Variables:    fc.Variables,
		Builtin:      fc.Builtin,
		TrimSuffix:   fc.TrimSuffix,
		rawOutput:    *fc.OutputPath,
	}

	if fc.TemplatesPath != nil && *fc.TemplatesPath != "" {
		cfg.TemplatesPath = resolve(base, *fc.TemplatesPath)
	}

	return cfg, nil
}

// TemplateRoot returns the directory of the selected
// template tree and checks that it exists. It must not be
// called for built-in templates.
func (c *Config) TemplateRoot() (string, error) {
	const errCtx = "locating template"

	if c.Builtin {
		return "", fmt.Errorf(
			"%s: %s is a built-in template",
			errCtx, c.TemplateName,
		)
	}

	if !isDir(c.TemplatesPath) {
		return "", fmt.Errorf(
			"%s: templates path does not exist [%s]",
			errCtx, c.TemplatesPath,
		)
	}

	root := filepath.Join(c.TemplatesPath, c.TemplateName)
	if !isDir(root) {
		return "", fmt.Errorf(
			"%s: template path does not exist [%s]",
			errCtx, root,
		)
	}

	return root, nil
}

// OutputRoot translates __name__ tokens in the
// configured output_path against vars and resolves the
// result against BaseDir. Directories above the
// configured value are never translated.
func (c *Config) OutputRoot(
	en *render.Engine,
	vars map[string]interface{},
) (string, error) {
	const errCtx = "resolving output root"

	raw := c.rawOutput
	if raw == "" {
		raw = c.OutputPath
	}

	out, err := en.TranslatePath(raw, vars)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	return resolve(c.BaseDir, out), nil
}

// Source returns the template tree selected by the
// config and the suffix to strip from generated file
// names. A non-empty trimOverride wins over trim_suffix;
// built-in templates default to templates.Suffix.
func (c *Config) Source(trimOverride string) (fs.FS, string, error) {
	const errCtx = "opening template source"

	suffix := c.TrimSuffix

	var src fs.FS

	if c.Builtin {
		tree, err := templates.Open(c.TemplateName)
		if err != nil {
			return nil, "", fmt.Errorf("%s: %w", errCtx, err)
		}

		src = tree

		if suffix == "" {
			suffix = templates.Suffix
		}
	} else {
		root, err := c.TemplateRoot()
		if err != nil {
			return nil, "", fmt.Errorf("%s: %w", errCtx, err)
		}

		src = os.DirFS(root)
	}

	if trimOverride != "" {
		suffix = trimOverride
	}

	return src, suffix, nil
}

func decode(path string, raw []byte) (*fileConfig, error) {
	var fc fileConfig

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &fc); err != nil {
			return nil, fmt.Errorf("YAML error: %w", err)
		}
	default:
		if err := json.Unmarshal(raw, &fc); err != nil {
			return nil, fmt.Errorf("JSON error: %w", err)
		}
	}

	return &fc, nil
}

func (fc *fileConfig) validate() error {
	if fc.OutputPath == nil {
		return errors.New("no output_path in config")
	}

	if fc.TemplatesPath == nil && !fc.Builtin {
		return errors.New("no templates_path in config")
	}

	if fc.TemplateName == nil {
		return errors.New("no template_name in config")
	}

	if fc.Variables == nil {
		return errors.New("no variables in config")
	}

	return nil
}

func resolve(base string, pa string) string {
	if filepath.IsAbs(pa) {
		return filepath.Clean(pa)
	}

	return filepath.Join(base, pa)
}

func isDir(pa string) bool {
	if pa == "" {
		return false
	}

	fi, err := os.Stat(pa)

	return err == nil && fi.IsDir()
}
