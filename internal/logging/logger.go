// Package logging configures the process-wide logrus logger shared by all
// three services.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// Setup applies level and format ("json" or "text") to the standard logger.
func Setup(level, format string, out io.Writer) error {
	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	case "text":
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return fmt.Errorf("log format %q: must be json or text", format)
	}

	logrus.SetLevel(lvl)
	if out != nil {
		logrus.SetOutput(out)
	}
	return nil
}
