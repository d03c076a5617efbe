// Package log is a thin compatibility layer over github.com/luxfi/log,
// exposing package-level, go-ethereum-style structured logging for the
// rest of yulc.
package log

import (
	luxlog "github.com/luxfi/log"
)

// Logger is re-exported so callers that need a scoped logger (e.g. one
// tagged with the contract path currently being compiled) don't have to
// import luxfi/log directly.
type Logger = luxlog.Logger

var root = luxlog.Root()

// New returns a logger with the given key-value context attached to
// every record, mirroring luxlog.New.
func New(ctx ...any) Logger {
	return luxlog.New(ctx...)
}

func Trace(msg string, ctx ...any) { root.Trace(msg, ctx...) }
func Debug(msg string, ctx ...any) { root.Debug(msg, ctx...) }
func Info(msg string, ctx ...any)  { root.Info(msg, ctx...) }
func Warn(msg string, ctx ...any)  { root.Warn(msg, ctx...) }
func Error(msg string, ctx ...any) { root.Error(msg, ctx...) }
func Crit(msg string, ctx ...any)  { root.Crit(msg, ctx...) }

// FileSink returns a rotating writer (backed by lumberjack) rooted at
// outputDir. Nothing in cmd/yulc calls it.
func FileSink(outputDir, name string) *rotatingFile {
	return newRotatingFile(outputDir, name)
}
