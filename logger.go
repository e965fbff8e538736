package main

import (
	"io"
	"os"

	"schoolPortal/internal/logging"
)

// AppLogger is the process-wide logger. It discards everything until
// InitializeLogger runs.
var AppLogger = logging.NewNop()

// InitializeLogger points AppLogger at stdout, or at logs/app.log in
// production.
func InitializeLogger(config *Config) {
	var output io.Writer = os.Stdout

	if config.Environment == "production" {
		if err := os.MkdirAll("logs", 0755); err == nil {
			if file, err := os.OpenFile("logs/app.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666); err == nil {
				output = file
			}
		}
	}

	AppLogger = logging.NewLogger(config.LogLevel, output)
}
