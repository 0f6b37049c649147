package cli

import (
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/scmclient/internal/client/api"
	"github.com/shopspring/decimal"
)

const chartWidth = 40

func newTable(w io.Writer, header ...string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	return tw
}

func row(tw *tabwriter.Writer, cols ...any) {
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = fmt.Sprint(c)
	}
	fmt.Fprintln(tw, strings.Join(parts, "\t"))
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

func formatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func pageFooter(p api.Pagination) string {
	if p.Pages <= 1 {
		return fmt.Sprintf("%d total", p.Total)
	}
	return fmt.Sprintf("Page %d of %d (%d total)", p.CurrentPage, p.Pages, p.Total)
}

// renderChart draws the forecast series as horizontal bars scaled to the
// largest upper bound.
func renderChart(w io.Writer, points []api.ForecastPoint) {
	if len(points) == 0 {
		fmt.Fprintln(w, "No forecast data.")
		return
	}

	peak := 0.0
	for _, p := range points {
		peak = math.Max(peak, math.Max(p.PredictedDemand, p.UpperBound))
	}

	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	for _, p := range points {
		n := 0
		if peak > 0 {
			n = int(math.Round(p.PredictedDemand / peak * chartWidth))
		}
		fmt.Fprintf(tw, "%s\t|%s\t%.1f (%.1f-%.1f)\n", p.Date, strings.Repeat("#", n), p.PredictedDemand, p.LowerBound, p.UpperBound)
	}
	tw.Flush()
}
