package scaffold

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/byte4ever/scaffolder/digester"
	"github.com/byte4ever/scaffolder/render"
)

// Generator expands template trees. The zero value
// renders with default "{{" "}}" tags and no variables.
type Generator struct {
	// Engine renders paths and file contents.
	Engine render.Engine

	// Variables are the values placeholders expand to.
	Variables map[string]interface{}

	// TrimSuffix is removed from the end of generated
	// file names when present.
	TrimSuffix string

	// DryRun reports what would be generated without
	// touching the file system.
	DryRun bool
}

// Result summarizes one Generate call. Paths are
// slash-separated and relative to OutputPath.
type Result struct {
	OutputPath       string        `json:"output_path"`
	CreatedDirs      []string      `json:"created_dirs,omitempty"`
	ExistingDirs     []string      `json:"existing_dirs,omitempty"`
	CreatedFiles     []string      `json:"created_files,omitempty"`
	OverwrittenFiles []string      `json:"overwritten_files,omitempty"`
	UnchangedFiles   []string      `json:"unchanged_files,omitempty"`
	DryRun           bool          `json:"dry_run"`
	Elapsed          time.Duration `json:"elapsed_ns"`
}

// templateFile is a file found while walking the tree.
type templateFile struct {
	rel  string
	mode fs.FileMode
}

// Generate expands the tree in src under outRoot. The
// root of src maps to outRoot itself, which is created
// when missing but never listed in the result. outRoot
// is used as given; config.Config.OutputRoot translates
// the configured value.
func (gn *Generator) Generate(
	ctx context.Context,
	src fs.FS,
	outRoot string,
) (*Result, error) {
	const errCtx = "generating scaffold"

	start := time.Now()

	out := filepath.Clean(outRoot)
	res := &Result{OutputPath: out, DryRun: gn.DryRun}

	dirs, files, err := scan(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	if !gn.DryRun {
		if err := os.MkdirAll(out, 0o755); err != nil { //nolint:gosec // generated project root
			return nil, fmt.Errorf("%s: %w", errCtx, err)
		}
	}

	slog.Info("creating directories", "count", len(dirs))

	for _, dir := range dirs {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%s: %w", errCtx, err)
		}

		if err := gn.createDir(out, dir, res); err != nil {
			return nil, fmt.Errorf("%s: %w", errCtx, err)
		}
	}

	slog.Info("creating files", "count", len(files))

	for _, tf := range files {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%s: %w", errCtx, err)
		}

		if err := gn.createFile(src, out, tf, res); err != nil {
			return nil, fmt.Errorf("%s: %w", errCtx, err)
		}
	}

	res.Elapsed = time.Since(start)

	slog.Info("all done", "elapsed", res.Elapsed.String())

	return res, nil
}

// scan lists directories and files of src in lexical
// walk order. The root itself is not listed.
func scan(
	ctx context.Context,
	src fs.FS,
) ([]string, []templateFile, error) {
	const errCtx = "reading template folder"

	slog.Info(errCtx)

	var (
		dirs  []string
		files []templateFile
	)

	err := fs.WalkDir(
		src, ".",
		func(pa string, de fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if err := ctx.Err(); err != nil {
				return err
			}

			if pa == "." {
				return nil
			}

			if de.IsDir() {
				dirs = append(dirs, pa)

				return nil
			}

			fi, err := de.Info()
			if err != nil {
				return err
			}

			files = append(files, templateFile{
				rel:  pa,
				mode: fi.Mode(),
			})

			return nil
		},
	)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return dirs, files, nil
}

func (gn *Generator) createDir(
	out string,
	dir string,
	res *Result,
) error {
	const errCtx = "creating directory"

	rel, err := gn.Engine.TranslatePath(dir, gn.Variables)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := checkLocal(rel); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	target := filepath.Join(out, filepath.FromSlash(rel))

	if fi, err := os.Stat(target); err == nil && fi.IsDir() {
		slog.Warn("path exist", "path", target)

		res.ExistingDirs = append(res.ExistingDirs, rel)

		return nil
	}

	slog.Info("creating path", "path", target)

	res.CreatedDirs = append(res.CreatedDirs, rel)

	if gn.DryRun {
		return nil
	}

	if err := os.MkdirAll(target, 0o755); err != nil { //nolint:gosec // generated project directories
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

func (gn *Generator) createFile(
	src fs.FS,
	out string,
	tf templateFile,
	res *Result,
) error {
	const errCtx = "creating file"

	rel, err := gn.Engine.TranslatePath(tf.rel, gn.Variables)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	rel = gn.trimSuffix(rel)

	if err := checkLocal(rel); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	target := filepath.Join(out, filepath.FromSlash(rel))

	content, err := gn.renderFile(src, tf.rel)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	_, statErr := os.Stat(target)
	exists := statErr == nil

	if statErr != nil && !errors.Is(statErr, os.ErrNotExist) {
		return fmt.Errorf("%s: %w", errCtx, statErr)
	}

	if exists {
		same, err := digester.Matches(target, content)
		if err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}

		if same {
			slog.Info("file unchanged", "path", target)

			res.UnchangedFiles = append(res.UnchangedFiles, rel)

			return nil
		}
	}

	if !gn.DryRun {
		if err := os.WriteFile( //nolint:gosec // generated project files
			target, content, filePerm(tf.mode),
		); err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}
	}

	if exists {
		slog.Warn("file overwritten", "path", target)

		res.OverwrittenFiles = append(res.OverwrittenFiles, rel)

		return nil
	}

	slog.Info("file created", "path", target)

	res.CreatedFiles = append(res.CreatedFiles, rel)

	return nil
}

// renderFile expands a template file. Content that is
// not valid UTF-8 is treated as binary and copied as is.
func (gn *Generator) renderFile(
	src fs.FS,
	rel string,
) ([]byte, error) {
	raw, err := fs.ReadFile(src, rel)
	if err != nil {
		return nil, err
	}

	if !utf8.Valid(raw) {
		return raw, nil
	}

	text, err := gn.Engine.Render(string(raw), gn.Variables)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", rel, err)
	}

	return []byte(text), nil
}

func (gn *Generator) trimSuffix(rel string) string {
	if gn.TrimSuffix == "" {
		return rel
	}

	dir, base := path.Split(rel)

	trimmed := strings.TrimSuffix(base, gn.TrimSuffix)
	if trimmed == "" {
		return rel
	}

	return dir + trimmed
}

// checkLocal rejects translated paths that would land
// outside the output root.
func checkLocal(rel string) error {
	if rel == "" || filepath.IsLocal(filepath.FromSlash(rel)) {
		return nil
	}

	return fmt.Errorf("path %q escapes the output root", rel)
}

// filePerm keeps the executable bit of template scripts.
func filePerm(mode fs.FileMode) fs.FileMode {
	if mode&0o111 != 0 {
		return 0o755
	}

	return 0o644
}
