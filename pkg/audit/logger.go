package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/hazyhaar/pkg/idgen"
)

// FileLogger appends one JSON line per entry to a file. When no path is set,
// or when the append fails, the line goes to the console writer instead.
type FileLogger struct {
	path    string
	console io.Writer
	mu      sync.Mutex
}

// NewFileLogger logs to path, falling back to stdout. An empty path logs to
// stdout only.
func NewFileLogger(path string) *FileLogger {
	return &FileLogger{path: path, console: os.Stdout}
}

// WithConsole replaces the fallback writer.
func (l *FileLogger) WithConsole(w io.Writer) *FileLogger {
	l.console = w
	return l
}

func (l *FileLogger) Log(_ context.Context, entry *Entry) error {
	fillDefaults(entry)
	line, err := json.Marshal(entry)
	if err != nil {
		// args that cannot be encoded still deserve a record of the call
		entry.Args = fmt.Sprintf("%v", entry.Args)
		if line, err = json.Marshal(entry); err != nil {
			return fmt.Errorf("encoding entry: %w", err)
		}
	}
	line = append(line, '\n')

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.path != "" {
		err := appendLine(l.path, line)
		if err == nil {
			return nil
		}
		slog.Warn("call log append failed, using console", "path", l.path, "error", err)
	}
	_, err = l.console.Write(line)
	return err
}

func appendLine(path string, line []byte) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(line); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func fillDefaults(e *Entry) {
	if e.CallID == "" {
		e.CallID = "call_" + idgen.New()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	if e.Status == "" {
		if e.Error != "" {
			e.Status = StatusError
		} else {
			e.Status = StatusOK
		}
	}
}
