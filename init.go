package plotkit

import (
	"os"
	"strconv"

	"github.com/raykavin/plotkit/pkg/logger"
	"github.com/raykavin/plotkit/pkg/logger/zerolog"
)

const (
	defaultLogLevel      = "info"
	defaultLogTimeFormat = "2006-01-02 15:04:05"
	defaultLogColored    = "true"
	defaultLogJSON       = "false"
)

const (
	envLogLevel      = "PLOTKIT_LOG_LEVEL"
	envLogTimeFormat = "PLOTKIT_LOG_TIME_FORMAT"
	envLogColor      = "PLOTKIT_LOG_COLOR"
	envLogJSON       = "PLOTKIT_LOG_JSON"
)

// DefaultLog is the process-wide logger, configured from PLOTKIT_LOG_* variables
var DefaultLog logger.Logger

func init() {
	config, err := logConfigFromEnv()
	if err != nil {
		panic(err)
	}

	log, err := zerolog.New(config)
	if err != nil {
		panic(err)
	}

	DefaultLog = zerolog.NewAdapter(log)
}

func logConfigFromEnv() (logger.Config, error) {
	colored, err := parseBoolEnv(envLogColor, defaultLogColored)
	if err != nil {
		return logger.Config{}, err
	}

	jsonFormat, err := parseBoolEnv(envLogJSON, defaultLogJSON)
	if err != nil {
		return logger.Config{}, err
	}

	return logger.Config{
		Level:      getEnvWithDefault(envLogLevel, defaultLogLevel),
		TimeFormat: getEnvWithDefault(envLogTimeFormat, defaultLogTimeFormat),
		Colored:    colored,
		JSON:       jsonFormat,
	}, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseBoolEnv(key, defaultValue string) (bool, error) {
	return strconv.ParseBool(getEnvWithDefault(key, defaultValue))
}
