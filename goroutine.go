package scribe

import (
	"bytes"
	"runtime"
	"strconv"
	"sync"
)

// goroutineID parses the current goroutine's id out of the runtime
// stack header ("goroutine 123 [running]:"). The runtime exposes no
// cheaper portable handle, and the id is needed both for the preamble
// and for re-entrant lock ownership.
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	fields := bytes.Fields(buf[:n])
	if len(fields) < 2 {
		return 0
	}
	id, err := strconv.ParseUint(string(fields[1]), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

var goroutineNames sync.Map // uint64 -> string

// SetGoroutineName registers a human-readable name for the calling
// goroutine, shown in the preamble instead of the hex id. Names are
// process-wide and never expire; long-lived workers should set one
// once at startup.
func SetGoroutineName(name string) {
	goroutineNames.Store(goroutineID(), name)
}

// goroutineLabel returns the registered name for the given goroutine,
// or its id rendered in hexadecimal.
func goroutineLabel(id uint64) string {
	if name, ok := goroutineNames.Load(id); ok {
		return name.(string)
	}
	return strconv.FormatUint(id, 16)
}
