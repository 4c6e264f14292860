package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/raykavin/plotkit"
	"github.com/raykavin/plotkit/pkg/core"
	"github.com/raykavin/plotkit/pkg/feed"
	"github.com/raykavin/plotkit/pkg/indicator"
	"github.com/raykavin/plotkit/pkg/layout"
	"github.com/raykavin/plotkit/pkg/plot"
	"github.com/spf13/cobra"
)

const (
	formatJSON  = "json"
	formatTable = "table"
)

// Command line flags
var (
	// Table flags, shared by every command
	dataFile    string
	indexColumn string
	lastWindow  string
	tailRows    int
	derive      []string

	// Chart flags
	layoutFile string
	tripsFile  string
	format     string
	outputFile string
	port       int
	debug      bool
	watch      bool

	// Inspect flags
	bins      int
	bootstrap int
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "plotkit",
		Short:        "Render trading chart overlays from tabular data",
		Version:      "1.0.0",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&dataFile, "data", "d", "", "CSV table (e.g. ./btc.csv)")
	rootCmd.PersistentFlags().StringVarP(&indexColumn, "index", "i", "", "Timestamp column (default: first of index, time, timestamp, date)")
	rootCmd.PersistentFlags().StringVar(&lastWindow, "last", "", "Keep only a trailing window (e.g. 30d, 12h)")
	rootCmd.PersistentFlags().IntVar(&tailRows, "rows", 0, "Keep only the last N rows, after --last (0 keeps all)")
	rootCmd.PersistentFlags().StringSliceVar(&derive, "derive", nil,
		fmt.Sprintf("Indicators computed from OHLC columns (%s)", strings.Join(indicator.Names(), ", ")))
	rootCmd.MarkPersistentFlagRequired("data")

	rootCmd.AddCommand(buildRenderCmd(), buildServeCmd(), buildInspectCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func addChartFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&layoutFile, "layout", "l", "", "Chart layout (yaml, json or toml)")
	cmd.Flags().StringVarP(&tripsFile, "trips", "r", "", "Round trips (json or csv) drawn over candlesticks")
	cmd.MarkFlagRequired("layout")
}

func buildRenderCmd() *cobra.Command {
	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "Render a chart layout to JSON or an overlay summary",
		RunE:  runRender,
	}

	addChartFlags(renderCmd)
	renderCmd.Flags().StringVarP(&format, "format", "f", formatJSON, "Output format (json or table)")
	renderCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file path (default stdout)")

	return renderCmd
}

func buildServeCmd() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Render a chart layout and serve it over HTTP",
		RunE:  runServe,
	}

	addChartFlags(serveCmd)
	serveCmd.Flags().IntVarP(&port, "port", "p", 8080, "HTTP port")
	serveCmd.Flags().BoolVar(&debug, "debug", false, "Serve unminified chart script")
	serveCmd.Flags().BoolVarP(&watch, "watch", "w", false, "Re-render when the layout file changes")

	return serveCmd
}

func runRender(_ *cobra.Command, _ []string) error {
	if format != formatJSON && format != formatTable {
		return fmt.Errorf("unknown format %q, expected %s or %s", format, formatJSON, formatTable)
	}

	chartLayout, err := layout.Load(layoutFile)
	if err != nil {
		return err
	}
	warnLayout(chartLayout)

	table, chart, err := prepareChart()
	if err != nil {
		return err
	}
	elements := chart.Render(chartLayout, table)

	out := io.Writer(os.Stdout)
	if outputFile != "" {
		file, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer file.Close()
		out = file
	}

	if format == formatTable {
		writeSummary(out, elements.Overlays)
		return nil
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(elements)
}

func runServe(_ *cobra.Command, _ []string) error {
	table, chart, err := prepareChart(plot.WithPort(port))
	if err != nil {
		return err
	}

	var chartLayout *layout.Layout
	if watch {
		chartLayout, err = layout.Watch(layoutFile, func(updated *layout.Layout, err error) {
			if err != nil {
				plotkit.DefaultLog.WithError(err).Error("layout reload failed, keeping the previous chart")
				return
			}
			plotkit.DefaultLog.Info("layout changed, rendering again")
			warnLayout(updated)
			chart.Render(updated, table)
		})
	} else {
		chartLayout, err = layout.Load(layoutFile)
	}
	if err != nil {
		return err
	}
	warnLayout(chartLayout)

	elements := chart.Render(chartLayout, table)
	plotkit.DefaultLog.Infof("%d overlays, %d series", len(elements.Overlays), len(elements.Series))

	return chart.Start()
}

// warnLayout logs the overlays that will render partially or not at all
func warnLayout(l *layout.Layout) {
	for _, warning := range l.Warnings() {
		plotkit.DefaultLog.Warnf("layout %s: %v", layoutFile, warning)
	}
}

// loadTable reads the data file and derives the requested indicators
func loadTable() (*core.Frame, error) {
	var options []feed.Option
	if indexColumn != "" {
		options = append(options, feed.WithIndexColumn(indexColumn))
	}
	if lastWindow != "" {
		options = append(options, feed.WithLast(lastWindow))
	}
	if tailRows > 0 {
		options = append(options, feed.WithTail(tailRows))
	}

	frame, err := feed.LoadCSV(dataFile, options...)
	if err != nil {
		return nil, err
	}

	if err := indicator.Derive(frame, derive...); err != nil {
		return nil, fmt.Errorf("derive indicators: %w", err)
	}

	plotkit.DefaultLog.WithFields(map[string]any{
		"rows":    frame.NumRows(),
		"columns": len(frame.Columns()),
	}).Debug("table loaded")

	return frame, nil
}

func prepareChart(options ...plot.Option) (*core.Frame, *plot.Chart, error) {
	table, err := loadTable()
	if err != nil {
		return nil, nil, err
	}

	if tripsFile != "" {
		trips, err := layout.LoadRoundTrips(tripsFile)
		if err != nil {
			return nil, nil, err
		}
		options = append(options, plot.WithRoundTrips(trips...))
	}
	if debug {
		options = append(options, plot.WithDebug())
	}

	chart, err := plot.NewChart(plotkit.DefaultLog, options...)
	if err != nil {
		return nil, nil, err
	}
	return table, chart, nil
}

// writeSummary prints one row per overlay and the totals as footer
func writeSummary(out io.Writer, overlays []plot.OverlaySummary) {
	table := tablewriter.NewWriter(out)
	table.SetHeader(plot.SummaryHeader)
	table.SetFooterAlignment(tablewriter.ALIGN_RIGHT)

	var total plot.OverlaySummary
	rendered := 0
	for _, summary := range overlays {
		table.Append(summary.Row())
		if summary.Status == plot.StatusRendered {
			rendered++
		}
		total.Series += summary.Series
		total.Points += summary.Points
		total.PlotBands += summary.PlotBands
		total.PlotLines += summary.PlotLines
		total.Shapes += summary.Shapes
		total.Labels += summary.Labels
	}

	table.SetFooter([]string{
		"TOTAL",
		strconv.Itoa(len(overlays)),
		fmt.Sprintf("%d rendered", rendered),
		strconv.Itoa(total.Series),
		strconv.Itoa(total.Points),
		strconv.Itoa(total.PlotBands),
		strconv.Itoa(total.PlotLines),
		strconv.Itoa(total.Shapes),
		strconv.Itoa(total.Labels),
		"",
	})
	table.Render()
}
