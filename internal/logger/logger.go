package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/example/sms-notifier/internal/config"
)

const simpleTimeFormat = "02-01-2006 15:04:05"

// New builds the process logger from the application config. Development
// environments get human readable console output, everything else emits JSON.
// Writers, when supplied, replace stdout.
func New(app config.AppConfig, service string, writers ...io.Writer) (zerolog.Logger, error) {
	lvl, err := parseLevel(app.LogLevel)
	if err != nil {
		return zerolog.Nop(), err
	}
	zerolog.SetGlobalLevel(lvl)
	zerolog.TimeFieldFormat = simpleTimeFormat
	zerolog.DurationFieldUnit = time.Millisecond

	ctx := zerolog.New(output(app.Env, writers)).With().Timestamp()
	if service = strings.TrimSpace(service); service != "" {
		ctx = ctx.Str("service", service)
	}
	return ctx.Logger().Level(lvl), nil
}

func output(env string, writers []io.Writer) io.Writer {
	switch {
	case len(writers) > 0:
		return io.MultiWriter(writers...)
	case isDevelopment(env):
		return zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: simpleTimeFormat}
	default:
		return os.Stdout
	}
}

func isDevelopment(env string) bool {
	return strings.EqualFold(env, "development") || strings.EqualFold(env, "dev")
}

func parseLevel(level string) (zerolog.Level, error) {
	level = strings.TrimSpace(level)
	if level == "" {
		return zerolog.InfoLevel, nil
	}
	return zerolog.ParseLevel(strings.ToLower(level))
}
