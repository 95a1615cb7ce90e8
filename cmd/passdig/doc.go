// Package passdig provides the command-line interface for the passdig
// credential scanner. It configures subcommands (scan, keywords, config,
// version), parses flags, and executes the selected command.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/passdig/passdig/cmd/passdig"
//	func main() { passdig.Execute() }
package passdig
