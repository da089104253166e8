package feedback

import (
	"fmt"
	"io"
	"strings"
)

type (
	// Level is the verbosity threshold of a session.
	Level int

	// Priority is the weight of a single message.
	Priority int

	// Filter writes messages to a sink when their priority passes the current
	// level. The zero value is not usable, create one with New.
	Filter struct {
		level Level
		out   io.Writer
	}
)

const (
	All     Level = 0
	Minimal Level = 50
	Silent  Level = 100
)

const (
	Info      Priority = 25
	Important Priority = 75
	Critical  Priority = 1000
)

// Feedback selector tokens accepted by SetLevel and ParseLevel.
const (
	TokenAll     = "-all"
	TokenMinimal = "-minimal"
	TokenSilent  = "-silent"
)

// New creates a Filter writing to out at level All.
func New(out io.Writer) *Filter {
	return &Filter{level: All, out: out}
}

// ParseLevel maps a feedback token to its Level, ignoring case. The boolean is
// false when token is not a feedback parameter.
func ParseLevel(token string) (Level, bool) {
	switch {
	case strings.EqualFold(token, TokenAll):
		return All, true
	case strings.EqualFold(token, TokenMinimal):
		return Minimal, true
	case strings.EqualFold(token, TokenSilent):
		return Silent, true
	default:
		return All, false
	}
}

func (l Level) String() string {
	switch l {
	case All:
		return "all"
	case Minimal:
		return "minimal"
	case Silent:
		return "silent"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// Level returns the current level.
func (f *Filter) Level() Level {
	return f.level
}

// SetLevel applies a feedback token such as "-minimal". It returns false, and
// leaves the level alone, when token is not one of the feedback tokens.
func (f *Filter) SetLevel(token string) bool {
	level, ok := ParseLevel(token)
	if ok {
		f.level = level
	}

	return ok
}

// Reset puts the level back to All.
func (f *Filter) Reset() {
	f.level = All
}

// Emit writes msg followed by a newline when p is at or above the current level.
// It reports whether the message was written.
func (f *Filter) Emit(msg string, p Priority) bool {
	if p != Critical && int(p) < int(f.level) {
		return false
	}

	_, _ = io.WriteString(f.out, msg+"\n")
	return true
}

// Emitf is Emit with fmt.Sprintf formatting.
func (f *Filter) Emitf(p Priority, format string, args ...any) bool {
	return f.Emit(fmt.Sprintf(format, args...), p)
}

// Critical writes msg regardless of the current level.
func (f *Filter) Critical(msg string) {
	f.Emit(msg, Critical)
}
