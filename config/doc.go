// Package config loads scaffold run configuration. A config file is JSON or
// YAML (chosen by extension) and names the output directory, the template
// collection and template to expand, and the variables to expand it with.
// Relative paths are resolved against the directory holding the config file.
package config
