package utils

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync" // For thread-safe initialization

	"gopkg.in/natefinch/lumberjack.v2"
)

// DefaultLogFile is where the logger writes unless PROMPTLINE_LOG_FILE is set
const DefaultLogFile = ".promptline/promptline.log"

// Logger writes diagnostics to a rotating file. It never writes to stdout:
// the console owns the terminal while input is enabled.
type Logger struct {
	logger        *log.Logger
	closer        io.Closer
	jsonMode      bool
	correlationID string
}

var (
	globalLogger *Logger
	once         sync.Once
)

// GetLogger returns the singleton instance of Logger.
// It initializes the logger with a file handler that rotates logs.
func GetLogger() *Logger {
	once.Do(func() {
		filename := os.Getenv("PROMPTLINE_LOG_FILE")
		if filename == "" {
			filename = DefaultLogFile
		}
		globalLogger = NewFileLogger(filename)
	})
	return globalLogger
}

// NewFileLogger creates a logger writing to a lumberjack-rotated file
func NewFileLogger(filename string) *Logger {
	logFile := rotatingFile(filename)
	l := NewLogger(logFile)
	l.closer = logFile
	return l
}

func rotatingFile(filename string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    15, // megabytes
		MaxBackups: 3,
		MaxAge:     28,   // days
		Compress:   true, // disabled by default
	}
}

// SetOutputFile moves the logger to a different rotated file, closing the
// previous one. It must not race with concurrent logging.
func (w *Logger) SetOutputFile(filename string) error {
	if lj, ok := w.closer.(*lumberjack.Logger); ok && lj.Filename == filename {
		return nil
	}
	var err error
	if w.closer != nil {
		err = w.closer.Close()
	}
	logFile := rotatingFile(filename)
	w.logger.SetOutput(logFile)
	w.closer = logFile
	return err
}

// NewLogger creates a logger writing to w. JSON mode and the correlation id
// come from PROMPTLINE_JSON_LOGS and PROMPTLINE_CORRELATION_ID.
func NewLogger(w io.Writer) *Logger {
	l := &Logger{logger: log.New(w, "", log.LstdFlags)}
	if os.Getenv("PROMPTLINE_JSON_LOGS") == "1" {
		l.jsonMode = true
	}
	if cid := os.Getenv("PROMPTLINE_CORRELATION_ID"); cid != "" {
		l.correlationID = cid
	}
	return l
}

// Close closes the logger resources.
func (w *Logger) Close() error {
	if w.closer != nil {
		return w.closer.Close()
	}
	return nil
}

// Log logs a general message only to the log file.
func (w *Logger) Log(message string) {
	if w.jsonMode {
		_ = json.NewEncoder(w.logger.Writer()).Encode(map[string]any{"level": "info", "msg": message, "cid": w.correlationID})
		return
	}
	w.logger.Print(message)
}

// Logf logs a formatted general message only to the log file.
func (w *Logger) Logf(format string, v ...interface{}) {
	if w.jsonMode {
		w.Log(fmt.Sprintf(format, v...))
		return
	}
	w.logger.Printf(format, v...)
}

func (w *Logger) LogError(err error) {
	if w.jsonMode {
		_ = json.NewEncoder(w.logger.Writer()).Encode(map[string]any{"level": "error", "error": err.Error(), "cid": w.correlationID})
		return
	}
	w.logger.Printf("Error: %s", err)
}

// LogPath returns the absolute path of the active log file, if known
func (w *Logger) LogPath() string {
	if lj, ok := w.closer.(*lumberjack.Logger); ok {
		if abs, err := filepath.Abs(lj.Filename); err == nil {
			return abs
		}
		return lj.Filename
	}
	return ""
}
