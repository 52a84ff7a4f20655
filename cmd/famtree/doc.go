// Package main hosts the famtree CLI entrypoint and command graph.
//
// The Cobra-based command tree loads configuration once, then hands off to
// the internal packages: generate runs the site generator, show inspects one
// person without writing, check verifies a generated tree, history and drift
// read the run database, and serve starts the preview server.
//
// Keep this package lean: add functionality to the internal packages first,
// then surface it through a command or flag here.
package main
