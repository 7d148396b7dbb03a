package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/natefinch/lumberjack.v2"
)

// kindKey tags each record with what produced it so the console can render
// commands and their output differently from messages.
const kindKey = "kind"

const (
	kindCommand = "command"
	kindOutput  = "output"
	kindTip     = "tip"
)

// consoleHandler writes bare messages without timestamps or level names.
// Debug records, which include command output, only show when verbose.
type consoleHandler struct {
	writer  io.Writer
	verbose *bool
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level > slog.LevelDebug || *h.verbose
}

func (h *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	var kind string
	record.Attrs(func(a slog.Attr) bool {
		if a.Key == kindKey {
			kind = a.Value.String()
			return false
		}
		return true
	})

	msg := record.Message
	switch {
	case kind == kindCommand:
		msg = ColorDim("$ " + msg)
	case kind == kindOutput:
		msg = ColorDim(msg)
	case kind == kindTip:
		msg = "💡 " + msg
	case record.Level >= slog.LevelError:
		msg = "❌ " + msg
	case record.Level >= slog.LevelWarn:
		msg = "⚠️  " + msg
	}
	_, err := fmt.Fprintln(h.writer, msg)
	return err
}

func (h *consoleHandler) WithAttrs(_ []slog.Attr) slog.Handler {
	return h
}

func (h *consoleHandler) WithGroup(_ string) slog.Handler {
	return h
}

// fanoutHandler sends each record to every handler that accepts its level
type fanoutHandler []slog.Handler

func (h fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h fanoutHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, handler := range h {
		if !handler.Enabled(ctx, record.Level) {
			continue
		}
		if err := handler.Handle(ctx, record.Clone()); err != nil {
			return err
		}
	}
	return nil
}

func (h fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanoutHandler, len(h))
	for i, handler := range h {
		out[i] = handler.WithAttrs(attrs)
	}
	return out
}

func (h fanoutHandler) WithGroup(name string) slog.Handler {
	out := make(fanoutHandler, len(h))
	for i, handler := range h {
		out[i] = handler.WithGroup(name)
	}
	return out
}

// createLumberjackLogger returns a rotating log file writer. Size, backup
// count and age come from GITX_LOG_MAX_SIZE (MB), GITX_LOG_MAX_BACKUPS and
// GITX_LOG_MAX_AGE (days).
func createLumberjackLogger(logFilePath string) *lumberjack.Logger {
	logger := &lumberjack.Logger{
		Filename:   logFilePath,
		MaxSize:    1,
		MaxBackups: 2,
		MaxAge:     30,
	}
	if n, ok := envInt("GITX_LOG_MAX_SIZE"); ok && n > 0 {
		logger.MaxSize = n
	}
	if n, ok := envInt("GITX_LOG_MAX_BACKUPS"); ok && n >= 0 {
		logger.MaxBackups = n
	}
	if n, ok := envInt("GITX_LOG_MAX_AGE"); ok && n > 0 {
		logger.MaxAge = n
	}
	return logger
}

func envInt(key string) (int, bool) {
	n, err := strconv.Atoi(os.Getenv(key))
	return n, err == nil
}

// Splog is the user facing log. Messages go to the console writer and,
// when a log file is configured, to a rotating file with timestamps and a
// kind attribute.
type Splog struct {
	logger    *slog.Logger
	logWriter io.WriteCloser
	verbose   bool
}

// NewSplog creates a console-only Splog on stdout
func NewSplog() *Splog {
	splog, _ := NewSplogWithConfig(os.Stdout, "")
	return splog
}

// NewSplogWithConfig creates a Splog writing to writer, and to logFilePath
// when it is not empty. Verbose output starts enabled when GITX_DEBUG or
// DEBUG is set.
func NewSplogWithConfig(writer io.Writer, logFilePath string) (*Splog, error) {
	splog := &Splog{
		verbose: os.Getenv("GITX_DEBUG") != "" || os.Getenv("DEBUG") != "",
	}
	handlers := fanoutHandler{&consoleHandler{writer: writer, verbose: &splog.verbose}}

	if logFilePath != "" {
		if err := os.MkdirAll(filepath.Dir(logFilePath), 0o750); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		file := createLumberjackLogger(logFilePath)
		splog.logWriter = file
		handlers = append(handlers, slog.NewTextHandler(file, &slog.HandlerOptions{
			Level: slog.LevelDebug,
			ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey {
					return slog.String(a.Key, a.Value.Time().Format("2006-01-02 15:04:05.000"))
				}
				return a
			},
		}))
	}

	splog.logger = slog.New(handlers)
	return splog, nil
}

// SetVerbose shows debug messages and command output on the console
func (s *Splog) SetVerbose(verbose bool) {
	s.verbose = verbose
}

func (s *Splog) log(level slog.Level, kind, msg string, args []any) {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	if kind == "" {
		s.logger.Log(context.Background(), level, msg)
		return
	}
	s.logger.Log(context.Background(), level, msg, slog.String(kindKey, kind))
}

// Info writes an info message
func (s *Splog) Info(msg string, args ...any) {
	s.log(slog.LevelInfo, "", msg, args)
}

// Warn writes a warning
func (s *Splog) Warn(msg string, args ...any) {
	s.log(slog.LevelWarn, "", msg, args)
}

// Error writes an error
func (s *Splog) Error(msg string, args ...any) {
	s.log(slog.LevelError, "", msg, args)
}

// Debug writes a message shown only when verbose
func (s *Splog) Debug(msg string, args ...any) {
	s.log(slog.LevelDebug, "", msg, args)
}

// Tip writes a hint for what to do next
func (s *Splog) Tip(msg string, args ...any) {
	s.log(slog.LevelInfo, kindTip, msg, args)
}

// Command logs a command line about to run. It is the runner's tracer.
func (s *Splog) Command(commandLine string) {
	s.log(slog.LevelInfo, kindCommand, commandLine, nil)
}

// Line records one line of command output. It is the runner's observer.
func (s *Splog) Line(line string) {
	s.log(slog.LevelDebug, kindOutput, line, nil)
}

// Close closes the log file if one was opened
func (s *Splog) Close() error {
	if s.logWriter != nil {
		return s.logWriter.Close()
	}
	return nil
}
