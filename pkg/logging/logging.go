package logging

import (
	"errors"
	"io"
	"log/slog"
	"os"
)

// Name is the name of the application that the logger is for.
type Name string

// Config is the configuration for a logger.
type Config struct {
	// name is the application name appended to every log line.
	name Name

	// w is the destination for log output.
	w io.Writer
}

// NewConfig creates a logging configuration for the named application.
func NewConfig(name Name) *Config {
	return &Config{
		name: name,
		w:    os.Stdout,
	}
}

// CommonLogger creates the common logger for the application. All
// applications should use this logger unless there is a good reason not to.
func CommonLogger(c *Config) (*slog.Logger, error) {
	if c == nil {
		return nil, errors.New("no logging config provided")
	} else if c.name == "" {
		return nil, errors.New("no application name provided")
	}

	h := slog.NewJSONHandler(c.w, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})

	l := slog.New(h).With(slog.String(KeyAppName, string(c.name)))
	slog.SetDefault(l)
	return l, nil
}
