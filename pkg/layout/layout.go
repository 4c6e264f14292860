package layout

import (
	"errors"
	"fmt"

	"github.com/fsnotify/fsnotify"
	"github.com/raykavin/plotkit/pkg/core"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

const envPrefix = "PLOTKIT"

var (
	ErrNoSeries  = errors.New("layout has no series")
	ErrMissingID = errors.New("series without id")
	ErrBadAxis   = errors.New("series axis outside panes")
)

// Pane is one vertically stacked chart area. Series select it by index
// through their yAxis.
type Pane struct {
	ID     string  `mapstructure:"id" json:"id"`
	Title  string  `mapstructure:"title" json:"title,omitempty"`
	Height float64 `mapstructure:"height" json:"height,omitempty"`
}

// Layout describes a chart: its panes and the overlays drawn on them
type Layout struct {
	Title  string              `mapstructure:"title" json:"title"`
	Panes  []Pane              `mapstructure:"panes" json:"panes"`
	Series []core.SeriesConfig `mapstructure:"series" json:"series"`
}

// Load reads a layout file. The format follows the file extension
// (yaml, json or toml). PLOTKIT_* environment variables override top-level keys.
func Load(path string) (*Layout, error) {
	v := newViper(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read layout %s: %w", path, err)
	}
	return decode(v, path)
}

// Watch loads the layout like Load, then calls onChange with a fresh
// layout, or the error that prevented it, every time the file is written.
// Watching stops with the process.
func Watch(path string, onChange func(*Layout, error)) (*Layout, error) {
	v := newViper(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read layout %s: %w", path, err)
	}

	layout, err := decode(v, path)
	if err != nil {
		return nil, err
	}

	v.OnConfigChange(func(fsnotify.Event) {
		onChange(decode(v, path))
	})
	v.WatchConfig()

	return layout, nil
}

func newViper(path string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetDefault("title", "plotkit")
	return v
}

func decode(v *viper.Viper, path string) (*Layout, error) {
	var layout Layout
	if err := v.Unmarshal(&layout); err != nil {
		return nil, fmt.Errorf("decode layout %s: %w", path, err)
	}

	layout.normalize()
	if err := layout.Validate(); err != nil {
		return nil, fmt.Errorf("layout %s: %w", path, err)
	}
	return &layout, nil
}

func (l *Layout) normalize() {
	if len(l.Panes) == 0 {
		l.Panes = []Pane{{ID: "main", Height: 100}}
	}

	for i := range l.Series {
		if l.Series[i].Name == "" {
			l.Series[i].Name = l.Series[i].ID
		}
	}
}

// Validate reports every structural problem of the layout at once.
// Overlays that can still be drawn partially, or skipped alone, are
// reported by Warnings instead.
func (l Layout) Validate() error {
	if len(l.Series) == 0 {
		return ErrNoSeries
	}

	var errs []error
	seen := make(map[string]bool, len(l.Series))
	for i, series := range l.Series {
		if series.ID == "" {
			errs = append(errs, fmt.Errorf("series #%d: %w", i, ErrMissingID))
			continue
		}

		if seen[series.ID] {
			errs = append(errs, fmt.Errorf("%w: %s", core.ErrDuplicateID, series.ID))
		}
		seen[series.ID] = true

		if len(l.Panes) > 0 && (series.YAxis < 0 || series.YAxis >= len(l.Panes)) {
			errs = append(errs, fmt.Errorf("%s: %w: %d", series.ID, ErrBadAxis, series.YAxis))
		}
	}

	return errors.Join(errs...)
}

// Warnings lists the overlays that load but will not render fully: an
// unknown kind renders nothing, a series without index mapping has no
// timestamped rows.
func (l Layout) Warnings() []error {
	var warnings []error
	for _, series := range l.Series {
		if !series.Kind.Valid() {
			warnings = append(warnings, fmt.Errorf("%s: %w %q", series.ID, core.ErrUnknownKind, series.Kind))
		}
		if _, ok := series.Column(core.IndexKey); !ok {
			warnings = append(warnings, fmt.Errorf("%s: %w", series.ID, core.ErrMissingIndex))
		}
	}
	return warnings
}

// Kinds lists the distinct overlay kinds used by the layout
func (l Layout) Kinds() []core.OverlayKind {
	return lo.Uniq(lo.Map(l.Series, func(series core.SeriesConfig, _ int) core.OverlayKind {
		return series.Kind
	}))
}
