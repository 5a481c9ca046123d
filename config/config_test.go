package config_test

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/scaffolder/config"
	"github.com/byte4ever/scaffolder/render"
	"github.com/byte4ever/scaffolder/templates"
)

func writeTemp(
	tb testing.TB,
	dir string,
	name string,
	content string,
) string {
	tb.Helper()

	pa := filepath.Join(dir, name)
	require.NoError(tb, os.MkdirAll(filepath.Dir(pa), 0o700))
	require.NoError(tb, os.WriteFile(pa, []byte(content), 0o600))

	return pa
}

func TestLoad_json_resolves_relative_paths(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	pa := writeTemp(t, dir, "scaffold.json", `{
  "output_path": "out",
  "templates_path": "templates",
  "template_name": "SpringBoot",
  "variables": {"application": "Demo", "port": 8080}
}`)

	cfg, err := config.Load(pa)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(cfg.BaseDir, "out"), cfg.OutputPath)
	assert.Equal(
		t, filepath.Join(cfg.BaseDir, "templates"), cfg.TemplatesPath,
	)
	assert.Equal(t, "SpringBoot", cfg.TemplateName)
	assert.Equal(t, "Demo", cfg.Variables["application"])
	assert.False(t, cfg.Builtin)
}

func TestLoad_yaml(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	pa := writeTemp(t, dir, "scaffold.yaml", `
output_path: /abs/out
template_name: GoWeb
builtin: true
trim_suffix: .tmpl
variables:
  application: Demo
`)

	cfg, err := config.Load(pa)
	require.NoError(t, err)

	assert.Equal(t, filepath.Clean("/abs/out"), cfg.OutputPath)
	assert.Empty(t, cfg.TemplatesPath)
	assert.True(t, cfg.Builtin)
	assert.Equal(t, ".tmpl", cfg.TrimSuffix)
	assert.Equal(t, "Demo", cfg.Variables["application"])
}

func TestLoad_missing_keys(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "output_path",
			content: `{"templates_path": "t", "template_name": "n", "variables": {}}`,
			wantErr: "no output_path in config",
		},
		{
			name:    "templates_path",
			content: `{"output_path": "o", "template_name": "n", "variables": {}}`,
			wantErr: "no templates_path in config",
		},
		{
			name:    "template_name",
			content: `{"output_path": "o", "templates_path": "t", "variables": {}}`,
			wantErr: "no template_name in config",
		},
		{
			name:    "variables",
			content: `{"output_path": "o", "templates_path": "t", "template_name": "n"}`,
			wantErr: "no variables in config",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			pa := writeTemp(t, t.TempDir(), "cfg.json", tc.content)

			cfg, err := config.Load(pa)
			assert.Nil(t, cfg)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestLoad_missing_file(t *testing.T) {
	t.Parallel()

	_, err := config.Load("/nonexistent/scaffold.json")
	assert.ErrorContains(t, err, "config does not exist")
}

func TestLoad_invalid_json(t *testing.T) {
	t.Parallel()

	pa := writeTemp(t, t.TempDir(), "cfg.json", "{not json")

	_, err := config.Load(pa)
	assert.ErrorContains(t, err, "JSON error")
}

func TestTemplateRoot(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	writeTemp(t, dir, "templates/Web/readme.txt", "hi")
	pa := writeTemp(t, dir, "cfg.json", `{
  "output_path": "out",
  "templates_path": "templates",
  "template_name": "Web",
  "variables": {}
}`)

	cfg, err := config.Load(pa)
	require.NoError(t, err)

	root, err := cfg.TemplateRoot()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cfg.BaseDir, "templates", "Web"), root)

	cfg.TemplateName = "Missing"

	_, err = cfg.TemplateRoot()
	assert.ErrorContains(t, err, "template path does not exist")

	cfg.TemplatesPath = filepath.Join(dir, "nowhere")

	_, err = cfg.TemplateRoot()
	assert.ErrorContains(t, err, "templates path does not exist")
}

func TestTemplateRoot_builtin(t *testing.T) {
	t.Parallel()

	cfg := config.Config{Builtin: true, TemplateName: "GoWeb"}

	_, err := cfg.TemplateRoot()
	assert.ErrorContains(t, err, "GoWeb is a built-in template")
}

func TestLoad_bundled_examples(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load(filepath.Join("..", "examples", "library.json"))
	require.NoError(t, err)

	root, err := cfg.TemplateRoot()
	require.NoError(t, err)
	assert.Equal(t, "Library", filepath.Base(root))

	for _, name := range []string{"springboot.json", "goweb.yaml"} {
		cfg, err := config.Load(filepath.Join("..", "examples", name))
		require.NoError(t, err, name)
		assert.True(t, cfg.Builtin, name)
		assert.Equal(t, "Demo", cfg.Variables["application"], name)
	}
}

func TestSource_suffix_precedence(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	writeTemp(t, dir, "templates/Web/main.go.tpl", "package main")

	tests := []struct {
		name       string
		cfg        config.Config
		override   string
		wantSuffix string
		wantFile   string
	}{
		{
			name:       "builtin defaults to tmpl",
			cfg:        config.Config{Builtin: true, TemplateName: "GoWeb"},
			wantSuffix: templates.Suffix,
			wantFile:   "__lower application__/main.go.tmpl",
		},
		{
			name: "builtin keeps configured suffix",
			cfg: config.Config{
				Builtin: true, TemplateName: "GoWeb", TrimSuffix: ".go.tmpl",
			},
			wantSuffix: ".go.tmpl",
			wantFile:   "__lower application__/main.go.tmpl",
		},
		{
			name:       "override wins over builtin default",
			cfg:        config.Config{Builtin: true, TemplateName: "GoWeb"},
			override:   ".x",
			wantSuffix: ".x",
			wantFile:   "__lower application__/go.mod.tmpl",
		},
		{
			name: "on-disk template keeps configured suffix",
			cfg: config.Config{
				TemplatesPath: filepath.Join(dir, "templates"),
				TemplateName:  "Web",
				TrimSuffix:    ".tpl",
			},
			wantSuffix: ".tpl",
			wantFile:   "main.go.tpl",
		},
		{
			name: "override wins over configured suffix",
			cfg: config.Config{
				TemplatesPath: filepath.Join(dir, "templates"),
				TemplateName:  "Web",
				TrimSuffix:    ".tpl",
			},
			override:   ".go.tpl",
			wantSuffix: ".go.tpl",
			wantFile:   "main.go.tpl",
		},
		{
			name: "on-disk template has no default suffix",
			cfg: config.Config{
				TemplatesPath: filepath.Join(dir, "templates"),
				TemplateName:  "Web",
			},
			wantFile: "main.go.tpl",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			src, suffix, err := tc.cfg.Source(tc.override)
			require.NoError(t, err)

			assert.Equal(t, tc.wantSuffix, suffix)

			_, err = fs.Stat(src, tc.wantFile)
			assert.NoError(t, err)
		})
	}
}

func TestSource_errors(t *testing.T) {
	t.Parallel()

	cfg := config.Config{Builtin: true, TemplateName: "Rails"}

	_, _, err := cfg.Source("")
	assert.ErrorContains(t, err, `unknown template "Rails"`)

	cfg = config.Config{
		TemplatesPath: t.TempDir(),
		TemplateName:  "Missing",
	}

	_, _, err = cfg.Source("")
	assert.ErrorContains(t, err, "template path does not exist")
}

func TestOutputRoot_translates_configured_value_only(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "my__work__dir")

	pa := writeTemp(t, dir, "cfg.json", `{
  "output_path": "out/__lower application__",
  "templates_path": "templates",
  "template_name": "Web",
  "variables": {"application": "Demo"}
}`)

	cfg, err := config.Load(pa)
	require.NoError(t, err)

	assert.Equal(
		t,
		filepath.Join(cfg.BaseDir, "out", "__lower application__"),
		cfg.OutputPath,
	)

	out, err := cfg.OutputRoot(&render.Engine{}, cfg.Variables)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(cfg.BaseDir, "out", "demo"), out)
	assert.Contains(t, out, "my__work__dir")
}

func TestOutputRoot_unknown_helper(t *testing.T) {
	t.Parallel()

	pa := writeTemp(t, t.TempDir(), "cfg.json", `{
  "output_path": "__camel application__",
  "templates_path": "templates",
  "template_name": "Web",
  "variables": {}
}`)

	cfg, err := config.Load(pa)
	require.NoError(t, err)

	_, err = cfg.OutputRoot(&render.Engine{}, cfg.Variables)
	assert.ErrorContains(t, err, "resolving output root")
}
