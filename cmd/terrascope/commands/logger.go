package commands

import (
	"os"

	"github.com/rs/zerolog"
)

// zerologLogger adapts zerolog to the SDK Logger interface.
type zerologLogger struct {
	log zerolog.Logger
}

func newZerologLogger() *zerologLogger {
	writer := zerolog.ConsoleWriter{Out: os.Stderr}

	return &zerologLogger{
		log: zerolog.New(writer).With().Timestamp().Logger(),
	}
}

func (l *zerologLogger) Debug(msg string, fields map[string]interface{}) {
	l.log.Debug().Fields(fields).Msg(msg)
}

func (l *zerologLogger) Info(msg string, fields map[string]interface{}) {
	l.log.Info().Fields(fields).Msg(msg)
}

func (l *zerologLogger) Warn(msg string, fields map[string]interface{}) {
	l.log.Warn().Fields(fields).Msg(msg)
}

func (l *zerologLogger) Error(msg string, fields map[string]interface{}) {
	l.log.Error().Fields(fields).Msg(msg)
}
