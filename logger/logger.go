// SPDX-License-Identifier: GPL-3.0-or-later

// Package logger is the process-wide structured logging front end: slog with
// a colored terminal handler on interactive runs, plain text otherwise, and
// journal-aware output on systemd.
package logger

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"

	"github.com/mattn/go-isatty"
)

var (
	isTerm    = isatty.IsTerminal(os.Stderr.Fd())
	isJournal = isStderrConnectedToJournal()
)

var defaultLogger = New()

func Error(a ...any)                   { defaultLogger.Error(a...) }
func Warning(a ...any)                 { defaultLogger.Warning(a...) }
func Info(a ...any)                    { defaultLogger.Info(a...) }
func Debug(a ...any)                   { defaultLogger.Debug(a...) }
func Errorf(format string, a ...any)   { defaultLogger.Errorf(format, a...) }
func Warningf(format string, a ...any) { defaultLogger.Warningf(format, a...) }
func Infof(format string, a ...any)    { defaultLogger.Infof(format, a...) }
func Debugf(format string, a ...any)   { defaultLogger.Debugf(format, a...) }
func With(args ...any) *Logger         { return defaultLogger.With(args...) }

// Logger is a leveled logger. The zero value and nil are usable and log
// through the default logger.
type Logger struct {
	muted atomic.Bool
	sl    *slog.Logger
}

func New() *Logger {
	return &Logger{sl: slog.New(withCallDepth(4, newHandler()))}
}

func newHandler() slog.Handler {
	if isTerm && !isJournal {
		return newTerminalHandler()
	}
	return newTextHandler()
}

// With returns a logger that includes the given attributes in each output.
func (l *Logger) With(args ...any) *Logger {
	if l == nil || l.sl == nil {
		return defaultLogger.With(args...)
	}
	ll := &Logger{sl: l.sl.With(args...)}
	ll.muted.Store(l.muted.Load())
	return ll
}

// Mute suppresses output until Unmute. Muting is per-instance; loggers
// derived earlier via With are unaffected.
func (l *Logger) Mute() { l.mute(true) }

// Unmute restores output.
func (l *Logger) Unmute() { l.mute(false) }

func (l *Logger) mute(v bool) {
	if l == nil || l.sl == nil {
		return
	}
	l.muted.Store(v)
}

func (l *Logger) Error(a ...any)   { l.log(slog.LevelError, fmt.Sprint(a...)) }
func (l *Logger) Warning(a ...any) { l.log(slog.LevelWarn, fmt.Sprint(a...)) }
func (l *Logger) Notice(a ...any)  { l.log(levelNotice, fmt.Sprint(a...)) }
func (l *Logger) Info(a ...any)    { l.log(slog.LevelInfo, fmt.Sprint(a...)) }
func (l *Logger) Debug(a ...any)   { l.log(slog.LevelDebug, fmt.Sprint(a...)) }

func (l *Logger) Errorf(format string, a ...any)   { l.log(slog.LevelError, fmt.Sprintf(format, a...)) }
func (l *Logger) Warningf(format string, a ...any) { l.log(slog.LevelWarn, fmt.Sprintf(format, a...)) }
func (l *Logger) Noticef(format string, a ...any)  { l.log(levelNotice, fmt.Sprintf(format, a...)) }
func (l *Logger) Infof(format string, a ...any)    { l.log(slog.LevelInfo, fmt.Sprintf(format, a...)) }
func (l *Logger) Debugf(format string, a ...any)   { l.log(slog.LevelDebug, fmt.Sprintf(format, a...)) }

func (l *Logger) log(level slog.Level, msg string) {
	if l == nil || l.sl == nil {
		defaultLogger.log(level, msg)
		return
	}
	if l.muted.Load() {
		return
	}
	l.sl.Log(context.Background(), level, msg)
}
