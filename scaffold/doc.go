// Package scaffold expands a template tree into a new project skeleton. It
// walks the tree, creates every directory with __name__ tokens in its path
// translated, then renders every file's {{placeholders}} and writes it to
// the translated location under the output root.
//
// Generate is the entry point. It reports which directories and files were
// created, which already existed, and which were left untouched because the
// rendered content matched what was on disk.
package scaffold
