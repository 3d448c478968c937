package logging

import (
	"io"

	"github.com/sirupsen/logrus"

	"botics.dev/cli/internal/application/ports"
)

// LogrusGateway implements ports.LoggingGateway on top of logrus
type LogrusGateway struct {
	logger *logrus.Logger
	level  ports.LogLevel
	base   logrus.Fields
}

// NewLogrusGateway creates a gateway writing text logs to out
func NewLogrusGateway(out io.Writer, level ports.LogLevel) *LogrusGateway {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		DisableQuote:     true,
	})

	g := &LogrusGateway{logger: logger, base: logrus.Fields{}}
	g.SetLogLevel(level)
	return g
}

// WithRunID adds run=<id> to every subsequent line
func (g *LogrusGateway) WithRunID(id string) *LogrusGateway {
	g.base["run"] = id
	return g
}

// Log logs a message with the specified level
func (g *LogrusGateway) Log(level ports.LogLevel, message string, fields map[string]interface{}) {
	g.entry(fields).Log(toLogrusLevel(level), message)
}

// LogError logs an error
func (g *LogrusGateway) LogError(err error, message string, fields map[string]interface{}) {
	g.entry(fields).WithError(err).Error(message)
}

func (g *LogrusGateway) entry(fields map[string]interface{}) *logrus.Entry {
	return g.logger.WithFields(g.base).WithFields(logrus.Fields(fields))
}

// SetLogLevel sets the logging level
func (g *LogrusGateway) SetLogLevel(level ports.LogLevel) {
	g.level = level
	g.logger.SetLevel(toLogrusLevel(level))
}

// GetLogLevel returns the current logging level
func (g *LogrusGateway) GetLogLevel() ports.LogLevel {
	return g.level
}

func toLogrusLevel(level ports.LogLevel) logrus.Level {
	switch level {
	case ports.LogLevelDebug:
		return logrus.DebugLevel
	case ports.LogLevelInfo:
		return logrus.InfoLevel
	case ports.LogLevelError:
		return logrus.ErrorLevel
	default:
		return logrus.WarnLevel
	}
}
