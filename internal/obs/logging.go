package obs

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// FileSink configures an optional rotating log file.
type FileSink struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// NewLogger configures a zerolog logger using the provided format and level.
// When sink.Path is set, logs are duplicated into a rotating file.
func NewLogger(format, level string, sink FileSink) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	var out io.Writer = os.Stdout
	if f := strings.ToLower(strings.TrimSpace(format)); f == "console" || f == "text" {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}
	if strings.TrimSpace(sink.Path) != "" {
		rotator := &lumberjack.Logger{
			Filename:   sink.Path,
			MaxSize:    valueOrDefault(sink.MaxSizeMB, 20),
			MaxBackups: valueOrDefault(sink.MaxBackups, 5),
			MaxAge:     valueOrDefault(sink.MaxAgeDays, 30),
		}
		out = zerolog.MultiLevelWriter(out, rotator)
	}
	return zerolog.New(out).With().Timestamp().Logger()
}

func valueOrDefault(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}
