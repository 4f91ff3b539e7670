// Package logger builds the zap loggers used across designlint.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogFormat selects the encoder.
type LogFormat string

const (
	// FormatConsole is human-readable, colored output.
	FormatConsole LogFormat = "CONSOLE"
	// FormatJSON is structured JSON output.
	FormatJSON LogFormat = "JSON"
	// FormatPretty is accepted as an alias of FormatConsole.
	FormatPretty LogFormat = "PRETTY"
)

// Component names for named loggers.
const (
	ComponentController = "Controller"
	ComponentTransport  = "Transport"
	ComponentStorage    = "Storage"
	ComponentDocument   = "Document"
	ComponentMCP        = "MCP"
	ComponentCLI        = "CLI"
)

var (
	initOnce sync.Once
	mu       sync.Mutex
	base     *zap.Logger
)

func parseLevel(level string) zapcore.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return zapcore.DebugLevel
	case "WARN":
		return zapcore.WarnLevel
	case "ERROR":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func parseFormat(format string) LogFormat {
	switch LogFormat(strings.ToUpper(strings.TrimSpace(format))) {
	case FormatJSON:
		return FormatJSON
	default:
		return FormatConsole
	}
}

func timeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("2006-01-02 15:04:05 MST"))
}

// New creates a logger writing to w. Stdout is left to command output and the
// stdio MCP transport, so callers normally pass os.Stderr.
func New(level, format string, w io.Writer) *zap.Logger {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "component",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	var encoder zapcore.Encoder
	if parseFormat(format) == FormatJSON {
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoderConfig.EncodeTime = timeEncoder
		encoderConfig.ConsoleSeparator = " | "
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(w), zap.NewAtomicLevelAt(parseLevel(level)))
	return zap.New(core, zap.AddCaller())
}

// Initialize configures the global logger from LOGGING_LEVEL and
// LOGGING_FORMAT, falling back to the given defaults. Only the first call
// has an effect.
func Initialize(defaultLevel, defaultFormat string) {
	initOnce.Do(func() {
		level := getEnv("LOGGING_LEVEL", defaultLevel)
		format := getEnv("LOGGING_FORMAT", defaultFormat)
		l := New(level, format, os.Stderr)

		mu.Lock()
		base = l
		mu.Unlock()
		zap.ReplaceGlobals(l)
	})
}

// For returns a named logger for a component.
func For(component string) *zap.SugaredLogger {
	Initialize("", "")
	mu.Lock()
	defer mu.Unlock()
	return base.Sugar().Named(component)
}

// Nop returns a logger that discards everything, for tests and library use.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

// Sync flushes buffered log entries.
func Sync() error {
	mu.Lock()
	defer mu.Unlock()
	if base == nil {
		return nil
	}
	return base.Sync()
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
