package logger

import (
	"sync"

	"github.com/ideamans/go-l10n"
	"github.com/user/framemark/pkg/ports"
)

// Entry is one message captured by a BufferLogger.
type Entry struct {
	Level     ports.LogLevel
	Component string
	Message   string
}

// BufferLogger keeps the most recent messages in memory. The terminal UI
// reads them for its status line because it owns stdout while running.
type BufferLogger struct {
	level     ports.LogLevel
	component string
	ring      *ring
}

type ring struct {
	mu      sync.Mutex
	limit   int
	entries []Entry
}

// NewBuffer creates a BufferLogger holding at most limit entries.
func NewBuffer(level ports.LogLevel, limit int) *BufferLogger {
	if limit <= 0 {
		limit = 1
	}
	return &BufferLogger{level: level, ring: &ring{limit: limit}}
}

func (l *BufferLogger) Debug(msg string, args ...interface{}) {
	l.log(ports.LevelDebug, msg, args...)
}

func (l *BufferLogger) Info(msg string, args ...interface{}) {
	l.log(ports.LevelInfo, msg, args...)
}

func (l *BufferLogger) Warn(msg string, args ...interface{}) {
	l.log(ports.LevelWarn, msg, args...)
}

func (l *BufferLogger) Error(msg string, args ...interface{}) {
	l.log(ports.LevelError, msg, args...)
}

// WithComponent returns a logger sharing the same buffer.
func (l *BufferLogger) WithComponent(component string) ports.Logger {
	return &BufferLogger{level: l.level, component: component, ring: l.ring}
}

// Entries returns a copy of the buffered entries, oldest first.
func (l *BufferLogger) Entries() []Entry {
	l.ring.mu.Lock()
	defer l.ring.mu.Unlock()
	return append([]Entry(nil), l.ring.entries...)
}

// Last returns the newest entry.
func (l *BufferLogger) Last() (Entry, bool) {
	l.ring.mu.Lock()
	defer l.ring.mu.Unlock()
	if len(l.ring.entries) == 0 {
		return Entry{}, false
	}
	return l.ring.entries[len(l.ring.entries)-1], true
}

func (l *BufferLogger) log(level ports.LogLevel, msg string, args ...interface{}) {
	if level < l.level {
		return
	}
	e := Entry{Level: level, Component: l.component, Message: l10n.F(msg, args...)}

	l.ring.mu.Lock()
	defer l.ring.mu.Unlock()
	l.ring.entries = append(l.ring.entries, e)
	if over := len(l.ring.entries) - l.ring.limit; over > 0 {
		l.ring.entries = append(l.ring.entries[:0], l.ring.entries[over:]...)
	}
}

var _ ports.Logger = (*BufferLogger)(nil)
