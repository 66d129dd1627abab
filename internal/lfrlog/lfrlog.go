// Package lfrlog provides lfr's per-subsystem logging wrapper around the
// standard log package. Library code (core, model, vm, builtin, runtime,
// serialize) never calls log.Fatal or os.Exit directly — only cmd/ entry
// points do — so a Logger here only ever writes, it never terminates.
package lfrlog

import (
	"log"
	"os"
)

// Logger prefixes every message with a subsystem tag, matching the
// "[subsystem] message" convention the rest of lfr's diagnostics use.
type Logger struct {
	std *log.Logger
	tag string
}

// New builds a Logger writing to std with the given subsystem tag (e.g.
// "graph", "sched", "serialize", "registry").
func New(std *log.Logger, tag string) *Logger {
	if std == nil {
		std = log.Default()
	}
	return &Logger{std: std, tag: tag}
}

// Default builds a Logger writing to stderr with the given tag.
func Default(tag string) *Logger {
	return New(log.New(os.Stderr, "", log.LstdFlags), tag)
}

// Warnf logs a recoverable-condition message: a registry miss, a skipped
// malformed save-file line, a full scheduling queue.
func (l *Logger) Warnf(format string, args ...any) {
	l.std.Printf("[%s] warn: "+format, prepend(l.tag, args)...)
}

// Printf logs an informational message at the same tag.
func (l *Logger) Printf(format string, args ...any) {
	l.std.Printf("[%s] "+format, prepend(l.tag, args)...)
}

// Func adapts Warnf to the onWarn(format string, args ...any) shape that
// vm.New, runtime.Step, and serialize.Load all accept.
func (l *Logger) Func() func(string, ...any) {
	return l.Warnf
}

func prepend(tag string, args []any) []any {
	out := make([]any, 0, len(args)+1)
	out = append(out, tag)
	out = append(out, args...)
	return out
}
