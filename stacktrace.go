package scribe

import (
	"fmt"
	"regexp"
	"runtime"
	"strings"
)

// maxStackDepth caps how many return addresses a capture walks.
const maxStackDepth = 128

// StackFrame is one entry of a captured trace.
type StackFrame struct {
	PC     uintptr // raw return address
	Name   string  // resolved function name, or hex PC if unresolved
	Offset uintptr // byte offset from the function entry
}

// CaptureStack records up to maxStackDepth frames of the calling
// goroutine, skipping the innermost skip frames so the capturing code
// itself never appears. Frames come back newest-first, the order the
// runtime yields them; renderTrace reverses them for output. The
// second result reports whether the capture hit the depth cap.
func CaptureStack(skip int) ([]StackFrame, bool) {
	pcs := make([]uintptr, maxStackDepth)
	n := runtime.Callers(skip+2, pcs)
	if n == 0 {
		return nil, false
	}

	frames := make([]StackFrame, 0, n)
	iter := runtime.CallersFrames(pcs[:n])
	for {
		fr, more := iter.Next()
		f := StackFrame{PC: fr.PC, Name: fr.Function}
		switch {
		case f.Name == "":
			// No symbol for this address (stripped or non-Go code);
			// fall back to the bare address.
			f.Name = fmt.Sprintf("0x%x", fr.PC)
		case looksMangled(f.Name):
			// Mangled name from linked foreign code: no in-process
			// decoder, so keep the raw symbol. Prettify tidies the
			// demangled text the platform hands back elsewhere.
		case fr.Entry != 0:
			f.Offset = fr.PC - fr.Entry
		}
		frames = append(frames, f)
		if !more {
			break
		}
	}
	return frames, n == maxStackDepth
}

// Stacktrace captures the current call stack and renders it as a
// newline-joined, frame-numbered string, oldest caller first so the
// most actionable frame sits closest to the error text printed after
// it. skip is the number of innermost frames to drop (0 keeps the
// caller of Stacktrace as frame 0). Returns "" when nothing could be
// captured.
func Stacktrace(skip int) string {
	frames, truncated := CaptureStack(skip + 1)
	return renderTrace(frames, truncated)
}

func renderTrace(frames []StackFrame, truncated bool) string {
	if len(frames) == 0 {
		return ""
	}
	var b strings.Builder
	if truncated {
		b.WriteString("[truncated]\n")
	}
	for i := len(frames) - 1; i >= 0; i-- {
		f := frames[i]
		fmt.Fprintf(&b, "%-3d 0x%016x %s + %d", i, uint64(f.PC), f.Name, f.Offset)
		if i > 0 {
			b.WriteByte('\n')
		}
	}
	return Prettify(b.String())
}

// looksMangled reports whether a symbol name came out of a non-Go
// toolchain's name mangler (Itanium-style _Z prefix, seen in frames
// from linked C++ code). The Go runtime cannot decode those, so such
// frames keep their raw name and rely on Prettify for cleanup of the
// already-demangled text around them.
func looksMangled(name string) bool {
	return strings.HasPrefix(name, "_Z") || strings.HasPrefix(name, "__Z")
}

// Textual cleanup applied to rendered traces. The replacement list
// collapses the verbose spellings of well-known generic string types
// and strips no-op calling-convention decorations; the expressions
// below then drop allocator template arguments and normalize
// whitespace inside single-item angle-bracket lists.
var prettifyReplacements = [...]struct{ from, to string }{
	{"std::__1::basic_string<char, std::char_traits<char>, std::allocator<char> >", "std::string"},
	{"std::__cxx11::basic_string<char, std::char_traits<char>, std::allocator<char> >", "std::string"},
	{"std::basic_string<char, std::char_traits<char>, std::allocator<char> >", "std::string"},
	{"std::basic_string<wchar_t, std::char_traits<wchar_t>, std::allocator<wchar_t> >", "std::wstring"},
	{"std::basic_string<char16_t, std::char_traits<char16_t>, std::allocator<char16_t> >", "std::u16string"},
	{"std::basic_string<char32_t, std::char_traits<char32_t>, std::allocator<char32_t> >", "std::u32string"},
	{"std::__1::", "std::"},
	{"__thiscall ", ""},
	{"__cdecl ", ""},
}

var (
	allocatorRe      = regexp.MustCompile(`,\s*std::allocator<[^<>]+>`)
	templateSpacesRe = regexp.MustCompile(`<\s*([^<> ]+)\s*>`)
)

// Prettify performs best-effort cosmetic normalization of raw trace
// text. It is idempotent: running it on its own output changes
// nothing. It never removes the frame numbers, addresses or offsets
// needed to identify the failing frame.
func Prettify(trace string) string {
	for _, r := range prettifyReplacements {
		trace = strings.ReplaceAll(trace, r.from, r.to)
	}
	trace = allocatorRe.ReplaceAllString(trace, "")
	trace = templateSpacesRe.ReplaceAllString(trace, "<$1>")
	return trace
}
