package scribe

// Message is the per-call record handed to every eligible sink. A full
// log line is the concatenation Preamble + Indentation + Prefix + Body
// with no extra spacing; a sink may also ignore the preamble and
// indentation and render the rest its own way.
//
// A Message is only valid for the duration of the sink callback. Sinks
// that need the data afterwards must copy the fields out.
type Message struct {
	Verbosity   Verbosity // already rendered into Preamble
	Filename    string    // already rendered into Preamble
	Line        int       // already rendered into Preamble
	Preamble    string    // date, time, uptime, goroutine, file:line, level
	Indentation string    // current scope indentation
	Prefix      string    // assertion-failure info, or ""
	Body        string    // the user-formatted message
}

// Handler is a sink callback. It receives the context the sink was
// registered with and the message record. Handlers must not panic,
// must not block indefinitely, and may themselves log (the dispatch
// lock is re-entrant), but must not add or remove sinks.
type Handler func(ctx any, msg *Message)

// CloseHandler is invoked exactly once when a sink is removed, with
// the sink's registration context. Sinks owning a resource release it
// here.
type CloseHandler func(ctx any)
