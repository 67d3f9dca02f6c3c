package scribe

import "fmt"

// sinkEntry is one registered sink. Entries are kept in registration
// order; ids are a convenience key and need not be unique.
type sinkEntry struct {
	id      string
	handler Handler
	ctx     any
	cutoff  Verbosity
	close   CloseHandler
}

// AddSink appends a sink to the registry. Every eligible message (one
// that passed the global threshold and whose verbosity is at most
// cutoff) is delivered to handler together with ctx, in registration
// order relative to the other sinks. closeHandler, if non-nil, runs
// exactly once when the sink is removed.
//
// Duplicate ids are permitted; RemoveSink removes the first match.
func (l *Logger) AddSink(id string, handler Handler, ctx any, cutoff Verbosity, closeHandler CloseHandler) {
	if handler == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed.Load() {
		return
	}
	l.sinks = append(l.sinks, sinkEntry{
		id:      id,
		handler: handler,
		ctx:     ctx,
		cutoff:  cutoff,
		close:   closeHandler,
	})
}

// RemoveSink removes the first sink registered under id, invoking its
// close hook before the entry is discarded. An unknown id is reported
// at Error and returned as an error; other sinks are unaffected.
func (l *Logger) RemoveSink(id string) error {
	l.mu.Lock()
	for i, s := range l.sinks {
		if s.id == id {
			if s.close != nil {
				s.close(s.ctx)
			}
			l.sinks = append(l.sinks[:i], l.sinks[i+1:]...)
			l.mu.Unlock()
			return nil
		}
	}
	l.mu.Unlock()

	err := fmt.Errorf("no sink with id %q", id)
	l.Errorf("Failed to locate sink with id %q", id)
	return err
}
