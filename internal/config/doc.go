// Package config loads passdig options from local and global YAML files and
// from the plain-text list files (keywords, suppression patterns, globs) that
// the CLI accepts. CLI code maps flags and files into engine configuration.
package config
