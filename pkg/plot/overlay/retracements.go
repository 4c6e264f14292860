package overlay

import (
	"fmt"

	"github.com/raykavin/plotkit/pkg/core"
)

// retracements labels the end of each swing leg with its current and
// deepest retracement. Labels sit above the high of bearish legs (-1)
// and below the low of the others.
func retracements(config core.SeriesConfig, table core.Table) core.PlotElements {
	const textColor = "rgba(255, 255, 255, 0.8)"

	rows := Extract(config, table)
	highs := column(table, config.ColumnOr("high", "h"))
	lows := column(table, config.ColumnOr("low", "l"))

	var labels []core.Label
	for i, row := range rows {
		ts, ok := row.Time()
		direction := row[1]
		if !ok || !core.Truthy(direction) {
			continue
		}

		last := i == len(rows)-1
		if !last {
			next := rows[i+1][1]
			if core.Valid(next) && (next.Unwrap() == direction.Unwrap() || next.Unwrap() == 0) {
				continue
			}
		}

		price := at(lows, i)
		if direction.Unwrap() == -1 {
			price = at(highs, i)
		}
		if !core.Valid(price) {
			continue
		}

		labels = append(labels, core.Label{
			Point: anchor(ts, price.Unwrap(), config.YAxis),
			Text:  fmt.Sprintf("C:%s%%\nD:%s%%", percentText(row[2]), percentText(row[3])),
			Style: core.LabelStyle{Color: textColor, FontSize: "20px", FontWeight: "bold"},
		})
	}

	elements := core.PlotElements{Series: []core.RenderableSeries{legendSeries(config, textColor)}}
	if len(labels) > 0 {
		elements.Annotations = []core.AnnotationLayer{{
			Labels: labels,
			ZIndex: 3,
			LabelOptions: &core.LabelOptions{
				BackgroundColor: "transparent",
				BorderColor:     "transparent",
				Style:           core.LabelStyle{Color: textColor},
			},
		}}
	}
	return elements
}

func percentText(v core.Value) string {
	if !core.Valid(v) {
		return "-"
	}
	return formatNumber(v.Unwrap())
}
