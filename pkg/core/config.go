package core

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// IndexKey is the logical key of the timestamp column
const IndexKey = "index"

// SeriesConfig declares one overlay instance on a chart pane
type SeriesConfig struct {
	ID            string            `mapstructure:"id" json:"id"`
	Kind          OverlayKind       `mapstructure:"type" json:"type"`
	Name          string            `mapstructure:"name" json:"name"`
	DataMapping   map[string]string `mapstructure:"dataMapping" json:"dataMapping"`
	YAxis         int               `mapstructure:"yAxis" json:"yAxis"`
	ZIndex        int               `mapstructure:"zIndex" json:"zIndex"`
	LinkedTo      string            `mapstructure:"linkedTo" json:"linkedTo,omitempty"`
	ConfigOptions map[string]any    `mapstructure:"configOptions" json:"configOptions,omitempty"`
}

// Column returns the physical column mapped to a logical key
func (c SeriesConfig) Column(key string) (string, bool) {
	name, ok := c.DataMapping[key]
	if !ok || name == "" {
		return "", false
	}
	return name, true
}

// ColumnOr returns the physical column mapped to key, or fallback when unmapped
func (c SeriesConfig) ColumnOr(key, fallback string) string {
	if name, ok := c.Column(key); ok {
		return name
	}
	return fallback
}

// ThresholdOptions configures reference levels of bounded oscillators
type ThresholdOptions struct {
	Overbought *float64 `mapstructure:"overbought"`
	Oversold   *float64 `mapstructure:"oversold"`
	Midline    *float64 `mapstructure:"midline"`
}

// ZoneOptions configures zone construction
type ZoneOptions struct {
	Lookahead *int `mapstructure:"lookahead"`
}

// LineOptions configures generic line overlays.
// Dash is a CSS dash array, e.g. "5,5".
type LineOptions struct {
	Color string   `mapstructure:"color"`
	Dash  string   `mapstructure:"dash"`
	Width *float64 `mapstructure:"width"`
}

// ClockTime is a UTC wall-clock time
type ClockTime struct {
	Hour   int `mapstructure:"hour"`
	Minute int `mapstructure:"minute"`
}

// SessionRange is an explicit trading-session window
type SessionRange struct {
	Start *ClockTime `mapstructure:"start"`
	End   *ClockTime `mapstructure:"end"`
}

// SessionSpec is either a named session or an explicit range.
// Both empty means the option was absent or had an unsupported shape.
type SessionSpec struct {
	Name  string
	Range *SessionRange
}

// SessionOptions configures the sessions overlay
type SessionOptions struct {
	Session SessionSpec `mapstructure:"session"`
}

// DecodeOptions decodes the raw option bag of a config into T
func DecodeOptions[T any](config SeriesConfig) (T, error) {
	var options T
	if len(config.ConfigOptions) == 0 {
		return options, nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       sessionSpecHook,
		WeaklyTypedInput: true,
		Result:           &options,
	})
	if err != nil {
		return options, err
	}

	if err := decoder.Decode(config.ConfigOptions); err != nil {
		return options, fmt.Errorf("decode %s options of %q: %w", config.Kind, config.ID, err)
	}
	return options, nil
}

var sessionSpecType = reflect.TypeOf(SessionSpec{})

func sessionSpecHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != sessionSpecType {
		return data, nil
	}

	if name, ok := data.(string); ok {
		return SessionSpec{Name: name}, nil
	}

	if data != nil && reflect.ValueOf(data).Kind() == reflect.Map {
		var sessionRange SessionRange
		if err := mapstructure.WeakDecode(data, &sessionRange); err != nil {
			return SessionSpec{Range: &SessionRange{}}, nil
		}
		return SessionSpec{Range: &sessionRange}, nil
	}

	return SessionSpec{}, nil
}
