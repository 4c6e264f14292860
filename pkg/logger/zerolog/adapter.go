package zerolog

import (
	"fmt"

	"github.com/raykavin/plotkit/pkg/logger"
	"github.com/rs/zerolog"
)

// Adapter exposes a zerolog logger as a logger.Logger
type Adapter struct {
	*zerolog.Logger
}

func NewAdapter(log *zerolog.Logger) *Adapter {
	return &Adapter{log}
}

var toLevel = map[zerolog.Level]logger.Level{
	zerolog.Disabled:   logger.Disabled,
	zerolog.NoLevel:    logger.NoLevel,
	zerolog.TraceLevel: logger.TraceLevel,
	zerolog.DebugLevel: logger.DebugLevel,
	zerolog.InfoLevel:  logger.InfoLevel,
	zerolog.WarnLevel:  logger.WarnLevel,
	zerolog.ErrorLevel: logger.ErrorLevel,
	zerolog.FatalLevel: logger.FatalLevel,
	zerolog.PanicLevel: logger.PanicLevel,
}

var fromLevel = func() map[logger.Level]zerolog.Level {
	out := make(map[logger.Level]zerolog.Level, len(toLevel))
	for z, l := range toLevel {
		out[l] = z
	}
	return out
}()

// GetLevel reports the effective level of this logger
func (a *Adapter) GetLevel() logger.Level {
	if level, ok := toLevel[a.Logger.GetLevel()]; ok {
		return level
	}
	return logger.NoLevel
}

// SetLevel changes the level of this logger only
func (a *Adapter) SetLevel(level logger.Level) {
	zl, ok := fromLevel[level]
	if !ok {
		zl = zerolog.NoLevel
	}
	updated := a.Logger.Level(zl)
	a.Logger = &updated
}

func (a *Adapter) Trace(args ...any) { a.Logger.Trace().Msg(fmt.Sprint(args...)) }
func (a *Adapter) Debug(args ...any) { a.Logger.Debug().Msg(fmt.Sprint(args...)) }
func (a *Adapter) Info(args ...any)  { a.Logger.Info().Msg(fmt.Sprint(args...)) }
func (a *Adapter) Warn(args ...any)  { a.Logger.Warn().Msg(fmt.Sprint(args...)) }
func (a *Adapter) Error(args ...any) { a.Logger.Error().Msg(fmt.Sprint(args...)) }
func (a *Adapter) Fatal(args ...any) { a.Logger.Fatal().Msg(fmt.Sprint(args...)) }

func (a *Adapter) Tracef(format string, args ...any) { a.Logger.Trace().Msgf(format, args...) }
func (a *Adapter) Debugf(format string, args ...any) { a.Logger.Debug().Msgf(format, args...) }
func (a *Adapter) Infof(format string, args ...any)  { a.Logger.Info().Msgf(format, args...) }
func (a *Adapter) Warnf(format string, args ...any)  { a.Logger.Warn().Msgf(format, args...) }
func (a *Adapter) Errorf(format string, args ...any) { a.Logger.Error().Msgf(format, args...) }
func (a *Adapter) Fatalf(format string, args ...any) { a.Logger.Fatal().Msgf(format, args...) }

func (a *Adapter) WithError(err error) logger.Logger {
	log := a.Logger.With().Err(err).Logger()
	return &Adapter{&log}
}

func (a *Adapter) WithField(key string, value any) logger.Logger {
	log := a.Logger.With().Interface(key, value).Logger()
	return &Adapter{&log}
}

func (a *Adapter) WithFields(fields map[string]any) logger.Logger {
	log := a.Logger.With().Fields(fields).Logger()
	return &Adapter{&log}
}
