// Package render expands handlebars-style placeholders in scaffold
// templates. It understands plain variables ({{name}}) and single-argument
// helpers ({{lower name}}, {{upper name}}), and rewrites __name__ tokens in
// file system paths into the same placeholder form before expanding them.
//
// The Engine type is built on valyala/fasttemplate with configurable
// delimiters (default "{{" and "}}").
package render
