package zerolog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/goterm/term"
	"github.com/raykavin/plotkit/pkg/logger"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

const (
	messageWidth = 72
	fileWidth    = 16
	lineWidth    = 4
)

// New builds a zerolog logger writing to stdout
func New(config logger.Config) (*zerolog.Logger, error) {
	return NewWithWriter(os.Stdout, config)
}

// NewWithWriter builds a zerolog logger writing to out. JSON mode writes
// raw zerolog events, otherwise entries go through a console writer.
func NewWithWriter(out io.Writer, config logger.Config) (*zerolog.Logger, error) {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	level, err := zerolog.ParseLevel(config.Level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", config.Level, err)
	}
	zerolog.SetGlobalLevel(level)

	if config.JSON {
		log := zerolog.New(out).With().Timestamp().Stack().Logger()
		return &log, nil
	}

	console := zerolog.ConsoleWriter{
		Out:           out,
		NoColor:       !config.Colored,
		TimeFormat:    config.TimeFormat,
		FormatLevel:   formatLevel,
		FormatMessage: formatMessage,
		FormatCaller:  formatCaller,
		FormatTimestamp: func(i any) string {
			return formatTimestamp(i, config.TimeFormat)
		},
	}

	log := zerolog.New(console).
		With().
		Timestamp().
		CallerWithSkipFrameCount(3).
		Logger()
	return &log, nil
}

func formatLevel(i any) string {
	level, _ := i.(string)
	switch level {
	case zerolog.LevelTraceValue:
		return term.Cyanf("[TRC]")
	case zerolog.LevelDebugValue:
		return term.Cyanf("[DBG]")
	case zerolog.LevelInfoValue:
		return term.Greenf("[INF]")
	case zerolog.LevelWarnValue:
		return term.Yellowf("[WAR]")
	case zerolog.LevelErrorValue:
		return term.Redf("[ERR]")
	case zerolog.LevelFatalValue:
		return term.Redf("[FTL]")
	case zerolog.LevelPanicValue:
		return term.Redf("[PAN]")
	default:
		return term.Whitef("[UNK]")
	}
}

// formatMessage pads or cuts the message so fields line up
func formatMessage(i any) string {
	msg, _ := i.(string)
	if msg == "" {
		return ">"
	}

	if len(msg) > messageWidth {
		msg = msg[:messageWidth]
	}
	return term.Whitef("> %-*s", messageWidth, msg)
}

func formatCaller(i any) string {
	name, _ := i.(string)
	if name == "" {
		return ""
	}

	file, line, ok := strings.Cut(filepath.Base(name), ":")
	if !ok {
		return filepath.Base(name)
	}

	if len(file) > fileWidth {
		file = file[:fileWidth]
	}
	if len(line) > lineWidth {
		line = line[len(line)-lineWidth:]
	}
	return term.Yellowf("[%-*s:%*s]", fileWidth, file, lineWidth, line)
}

func formatTimestamp(i any, layout string) string {
	raw, ok := i.(string)
	if !ok {
		return term.Cyanf("[%v]", i)
	}

	if ts, err := time.Parse(time.RFC3339, raw); err == nil && layout != "" {
		raw = ts.In(time.Local).Format(layout)
	}
	return term.Cyanf("[%s]", raw)
}
