package logging

import (
	"io"
	"os"
	"strconv"

	log "github.com/sirupsen/logrus"

	"github.com/amterp/kanboard/internal/config"
)

// New builds the process logger. KANBOARD_DEBUG=true forces debug level;
// otherwise level is parsed from settings, falling back to info.
func New(level string, out io.Writer) *log.Logger {
	logger := log.New()
	logger.SetOutput(out)
	logger.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05",
	})
	logger.SetLevel(ResolveLevel(level))
	return logger
}

// ResolveLevel picks the effective level.
func ResolveLevel(level string) log.Level {
	if dbg, err := strconv.ParseBool(os.Getenv(config.DebugEnvVar)); err == nil && dbg {
		return log.DebugLevel
	}
	parsed, err := log.ParseLevel(level)
	if err != nil {
		return log.InfoLevel
	}
	return parsed
}
