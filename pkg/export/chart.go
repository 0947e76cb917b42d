package export

import (
	"fmt"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/routeopt/fleetsim/core/report"
)

// WriteUtilizationHTML renders a bar chart of block and duty hours per tail.
func WriteUtilizationHTML(w io.Writer, res report.Result) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: "Tail utilization",
			Subtitle: fmt.Sprintf("%d/%d flights scheduled, coverage %.1f%%",
				res.Summary.ScheduledFlights, res.Summary.TotalFlights, res.Summary.Coverage*100),
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Tail"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Hours"}),
	)

	tails := make([]string, 0, len(res.TailLogs))
	block := make([]opts.BarData, 0, len(res.TailLogs))
	duty := make([]opts.BarData, 0, len(res.TailLogs))
	for _, l := range res.TailLogs {
		tails = append(tails, l.TailID)
		block = append(block, opts.BarData{Value: round2(l.BlockHours)})
		duty = append(duty, opts.BarData{Value: round2(l.DutyHours)})
	}
	bar.SetXAxis(tails).
		AddSeries("Block hours", block).
		AddSeries("Duty hours", duty)

	if err := bar.Render(w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}

func round2(f float64) float64 { return math.Round(f*100) / 100 }
