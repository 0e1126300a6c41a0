// Package main hosts the creditmarker CLI entrypoint and command graph.
//
// The Cobra-based command tree loads hashed episodes, runs comparisons,
// manages the result history and scaffolds configuration. It centralizes
// configuration resolution and logger setup so subcommands can focus on
// output instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
