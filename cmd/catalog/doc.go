// Package main hosts the catalog CLI entrypoint and command graph.
//
// The Cobra command tree resolves configuration, opens the store and maps
// each subcommand onto one service.VideoService operation. Output is a table
// by default or JSON with --json.
package main
