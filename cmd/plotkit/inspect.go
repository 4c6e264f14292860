package main

import (
	"fmt"
	"io"
	"os"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/olekukonko/tablewriter"
	"github.com/raykavin/plotkit/pkg/core"
	"github.com/raykavin/plotkit/pkg/metric"
	"github.com/spf13/cobra"
)

func buildInspectCmd() *cobra.Command {
	inspectCmd := &cobra.Command{
		Use:   "inspect [columns...]",
		Short: "Describe table columns with statistics and histograms",
		RunE:  runInspect,
	}

	inspectCmd.Flags().IntVarP(&bins, "bins", "b", 15, "Histogram bins")
	inspectCmd.Flags().IntVar(&bootstrap, "bootstrap", 0, "Bootstrap samples for a 95% interval of the mean (0 disables)")

	return inspectCmd
}

func runInspect(_ *cobra.Command, args []string) error {
	frame, err := loadTable()
	if err != nil {
		return err
	}

	names, err := inspectedColumns(frame, args)
	if err != nil {
		return err
	}

	return inspect(os.Stdout, frame, names)
}

// inspectedColumns returns the requested columns, or every non-time
// column when none is requested
func inspectedColumns(frame *core.Frame, requested []string) ([]string, error) {
	if len(requested) > 0 {
		for _, name := range requested {
			if _, ok := frame.Column(name); !ok {
				return nil, fmt.Errorf("column %q not found", name)
			}
		}
		return requested, nil
	}

	names := make([]string, 0, len(frame.Columns()))
	for _, name := range frame.Columns() {
		column, _ := frame.Column(name)
		if _, isTime := column.(core.TimeColumn); isTime {
			continue
		}
		names = append(names, name)
	}
	return names, nil
}

func inspect(out io.Writer, frame *core.Frame, names []string) error {
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Column", "Count", "Missing", "Mean", "StdDev", "Min", "P05", "Median", "P95", "Max", "Last"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)

	for _, name := range names {
		column, _ := frame.Column(name)
		stats := metric.Describe(column)
		table.Append([]string{
			name,
			fmt.Sprintf("%d", stats.Count),
			fmt.Sprintf("%d", stats.Missing),
			fmt.Sprintf("%.4f", stats.Mean),
			fmt.Sprintf("%.4f", stats.StdDev),
			fmt.Sprintf("%.4f", stats.Min),
			fmt.Sprintf("%.4f", stats.P05),
			fmt.Sprintf("%.4f", stats.Median),
			fmt.Sprintf("%.4f", stats.P95),
			fmt.Sprintf("%.4f", stats.Max),
			fmt.Sprintf("%.4f", stats.Last),
		})
	}
	table.Render()

	for _, name := range names {
		column, _ := frame.Column(name)
		values := core.Present(column)
		if len(values) == 0 {
			continue
		}

		fmt.Fprintf(out, "\n------ %s -------\n", name)
		if err := histogram.Fprint(out, histogram.Hist(bins, values), histogram.Linear(10)); err != nil {
			return fmt.Errorf("histogram %s: %w", name, err)
		}

		if bootstrap > 0 {
			interval := metric.Bootstrap(values, metric.Mean, bootstrap, 0.95)
			fmt.Fprintf(out, "MEAN (95%%): %.4f (%.4f ~ %.4f)\n", interval.Mean, interval.Lower, interval.Upper)
		}
	}
	return nil
}
