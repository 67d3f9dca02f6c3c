// Package scribe is a synchronous, in-process diagnostic logging
// engine with signed verbosity levels, a fan-out sink registry and a
// stack-trace-capturing fatal path.
//
// Overview:
// Scribe is built for instrumenting code line by line: a disabled log
// call costs one atomic load and an integer comparison, while an
// accepted message is rendered once with a fixed-column preamble and
// delivered synchronously to the console streams and to every
// registered sink, in registration order, exactly once. Assertion
// failures capture a symbolicated stack trace, dispatch it through
// the same path, and terminate the process.
//
// Key Features:
// - Signed verbosity scale: Fatal(-3), Error(-2), Warning(-1) always
//   emitted to the alert stream; Info(0) up to Max(9) filtered by a
//   runtime-adjustable threshold on the normal stream
// - Fixed-column preamble: timestamp, uptime, goroutine name or hex
//   id, right-aligned file:line, level tag
// - Ordered sink registry with per-sink verbosity cutoffs and close
//   hooks; file sinks with directory creation and header lines
// - Scope logging: paired entry/exit messages with shared visual
//   indentation and elapsed-time reporting
// - Check/Abort helpers routing through a fatal path with stack
//   trace capture, prettification and a configurable pre-abort hook
// - Colored console output on terminals, rate limiting, YAML/env and
//   JSON configuration
// - Thread-safe: one re-entrant dispatch lock, so sink callbacks may
//   themselves log
//
// Getting Started:
//
//	package main
//
//	import "github.com/scribelog/scribe"
//
//	func main() {
//	    args := scribe.Init(os.Args) // consumes -v flags
//
//	    scribe.AddFile("logs/everything.log", scribe.Append, scribe.Max)
//
//	    defer scribe.BeginScopef(scribe.Info, "startup").End()
//	    scribe.Infof("%d arguments left", len(args))
//	    scribe.Logf(2, "only shown at verbosity 2 or higher")
//
//	    f, err := os.Open(path)
//	    scribe.CheckNoErr(err)
//	    scribe.CheckNotNil(f, "f")
//	}
//
// Separate engines with their own streams, threshold and sinks are
// built with New:
//
//	cfg := scribe.DefaultConfig()
//	cfg.Verbosity = 2
//	cfg.MaxLogRate = 1000
//	log, err := scribe.New(cfg)
//
// Configuration can also come from JSON (FromJSONConfig), or from a
// YAML file layered with SCRIBE_* environment variables (LoadConfig).
//
// Delivery Semantics:
// Dispatch is synchronous and serialized: the calling goroutine writes
// the console line and runs every eligible sink callback while holding
// the engine lock, so lines never tear and two concurrent emits never
// interleave their traversals. A slow sink blocks its caller; that is
// the intended cost model. Sink callbacks may log re-entrantly but
// must not add or remove sinks.
package scribe
