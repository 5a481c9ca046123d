// Package templates embeds the built-in scaffold templates. SpringBoot
// renders a minimal Spring Boot application whose "/" route returns
// "Hello from <application>!". GoWeb renders the same service as a
// standalone Go module.
package templates

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

// Suffix marks built-in template files that would
// otherwise be picked up by the Go toolchain. The
// generator strips it from output names.
const Suffix = ".tmpl"

const root = "builtin"

//go:embed all:builtin
var builtin embed.FS

// Names lists the built-in templates in lexical order.
func Names() []string {
	entries, err := fs.ReadDir(builtin, root)
	if err != nil {
		return nil
	}

	var names []string

	for _, en := range entries {
		if en.IsDir() {
			names = append(names, en.Name())
		}
	}

	sort.Strings(names)

	return names
}

// Open returns the file tree of the named built-in
// template.
func Open(name string) (fs.FS, error) {
	const errCtx = "opening built-in template"

	if !fs.ValidPath(name) || name == "." || strings.Contains(name, "/") {
		return nil, fmt.Errorf("%s: invalid name %q", errCtx, name)
	}

	fi, err := fs.Stat(builtin, path.Join(root, name))
	if err != nil || !fi.IsDir() {
		return nil, fmt.Errorf(
			"%s: unknown template %q (available: %s)",
			errCtx, name, strings.Join(Names(), ", "),
		)
	}

	sub, err := fs.Sub(builtin, path.Join(root, name))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return sub, nil
}
