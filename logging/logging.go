// Package logging provides *slog.Logger functionality to pdfgen: a
// process-wide logger singleton for debug output during generation, and a
// BufferedLogHandler for tests that want to assert on what was logged
// rather than send it to stderr.
package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// logger holds the package-level logger instance for debug output.
// Defaults to nil, which causes Logger() to return a discard logger.
var logger atomic.Pointer[slog.Logger]

// newDiscardLogger creates a logger that discards all output.
func newDiscardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// SetLogger configures the package-level logger for debug output.
// Pass nil to disable logging (will use slog.DiscardHandler).
// Pass a configured *slog.Logger to capture debug output.
//
// SetLogger is safe for concurrent use.
//
// Example enabling debug output to stderr:
//
//	logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
//
// Example capturing logs in tests:
//
//	handler := logging.NewBufferedLogHandler(nil)
//	logging.SetLogger(slog.New(handler))
//	// ... generate a document ...
//	fmt.Println(handler.String()) // inspect captured logs
func SetLogger(sl *slog.Logger) {
	if sl == nil {
		logger.Store(newDiscardLogger())
	} else {
		logger.Store(sl)
	}
}

// Logger returns the package-level logger.
// If no logger has been set via SetLogger, returns a discard logger
// that discards all output.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	l := logger.Load()
	if l == nil {
		l = newDiscardLogger()
		logger.Store(l)
	}
	return l
}

// BufferedLogHandler implements slog.Handler and captures log records in
// memory as JSON lines, for tests that assert on pdfgen's debug output
// instead of sending it to stderr.
//
// Example usage:
//
//	handler := logging.NewBufferedLogHandler(nil)
//	logging.SetLogger(slog.New(handler))
//
//	// ... generate a document ...
//
//	// Inspect captured logs
//	fmt.Println(handler.String())
//
//	// Or check for specific content
//	if handler.Contains("font registered") {
//	    fmt.Println("a font was written")
//	}
//
// To filter by level:
//
//	handler := logging.NewBufferedLogHandler(&slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})
type BufferedLogHandler struct {
	level      slog.Leveler
	buffer     *bytes.Buffer
	mu         sync.Mutex
	preAttrs   []slog.Attr
	groupNames []string
}

// bufferedLogEntry is the JSON shape one captured log record is written as.
type bufferedLogEntry struct {
	Level    string   `json:"level"`
	Message  string   `json:"message"`
	DateTime string   `json:"datetime"`
	Attrs    []string `json:"attrs,omitempty"`
}

// NewBufferedLogHandler creates a new BufferedLogHandler with an empty
// buffer. Pass nil for opts to capture all log levels, or provide
// HandlerOptions to filter by level.
func NewBufferedLogHandler(opts *slog.HandlerOptions) *BufferedLogHandler {
	h := &BufferedLogHandler{
		buffer: &bytes.Buffer{},
	}
	if opts != nil && opts.Level != nil {
		h.level = opts.Level
	}
	return h
}

// Enabled implements slog.Handler. Returns true if the given level is at or
// above the configured minimum level. If no level was configured, returns
// true for all levels.
func (h *BufferedLogHandler) Enabled(_ context.Context, level slog.Level) bool {
	if h.level == nil {
		return true
	}
	return level >= h.level.Level()
}

// Handle implements slog.Handler. Writes log records as JSON lines to the
// buffer, applying any pre-set attributes (WithAttrs) and group prefixes
// (WithGroup) ahead of the record's own attributes.
func (h *BufferedLogHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	entry := bufferedLogEntry{
		Level:    r.Level.String(),
		Message:  r.Message,
		DateTime: r.Time.Format(time.DateTime),
	}

	for _, attr := range h.preAttrs {
		entry.Attrs = append(entry.Attrs, h.prefixedAttr(attr))
	}
	r.Attrs(func(attr slog.Attr) bool {
		entry.Attrs = append(entry.Attrs, h.prefixedAttr(attr))
		return true
	})

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	h.buffer.Write(data)
	h.buffer.WriteByte('\n')
	return nil
}

// prefixedAttr returns the string representation of an attribute with its
// group name prefixes (if any) applied.
func (h *BufferedLogHandler) prefixedAttr(attr slog.Attr) string {
	if len(h.groupNames) == 0 {
		return attr.String()
	}
	return strings.Join(h.groupNames, ".") + "." + attr.String()
}

// WithAttrs implements slog.Handler. Returns a new handler sharing this
// one's buffer that includes the given attributes in all subsequent log
// records.
func (h *BufferedLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h.mu.Lock()
	defer h.mu.Unlock()

	newAttrs := make([]slog.Attr, len(h.preAttrs), len(h.preAttrs)+len(attrs))
	copy(newAttrs, h.preAttrs)
	newAttrs = append(newAttrs, attrs...)

	return &BufferedLogHandler{
		level:      h.level,
		buffer:     h.buffer,
		preAttrs:   newAttrs,
		groupNames: h.groupNames,
	}
}

// WithGroup implements slog.Handler. Returns a new handler sharing this
// one's buffer that prefixes all subsequent attributes with name.
func (h *BufferedLogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	newGroups := make([]string, len(h.groupNames), len(h.groupNames)+1)
	copy(newGroups, h.groupNames)
	newGroups = append(newGroups, name)

	return &BufferedLogHandler{
		level:      h.level,
		buffer:     h.buffer,
		preAttrs:   h.preAttrs,
		groupNames: newGroups,
	}
}

// String returns all captured log output as a string.
func (h *BufferedLogHandler) String() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.buffer.String()
}

// Reset clears all captured log output.
func (h *BufferedLogHandler) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.buffer.Reset()
}

// Contains returns true if the captured output contains the given substring.
func (h *BufferedLogHandler) Contains(s string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return bytes.Contains(h.buffer.Bytes(), []byte(s))
}

// Len returns the number of bytes captured so far.
func (h *BufferedLogHandler) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.buffer.Len()
}
