// Package viz renders coefficient-growth and Bailey-chain-depth charts
// to standalone HTML, the same go-echarts idiom the teacher's
// Additionnals/plot_pacs_sweep.go and cmd/analysis use for its
// histogram/scatter reports, adapted here from proof-size sweeps to
// q-series growth curves.
package viz

import (
	"io"
	"math/big"
	"os"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"qkangaroo/internal/bigrat"
	"qkangaroo/internal/mocktheta"
	"qkangaroo/internal/qseries"
)

// zToFloat approximates a Z as float64 for display only; the kernel
// never uses this conversion for arithmetic.
func zToFloat(z bigrat.Z) float64 {
	f, _ := new(big.Float).SetInt(z.BigInt()).Float64()
	return f
}

// PartitionGrowth renders p(0..n) as a line chart, the coefficient
// growth curve spec §4.12's `--plot` flag exposes off numbpart.
func PartitionGrowth(n int) *charts.Line {
	xLabels := make([]string, n+1)
	values := make([]opts.LineData, n+1)
	for k := 0; k <= n; k++ {
		xLabels[k] = strconv.Itoa(k)
		values[k] = opts.LineData{Value: zToFloat(qseries.PartitionCount(k))}
	}
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Partition growth", Subtitle: "p(0)..p(n)"}),
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "p(n) growth", Width: "1100px", Height: "550px"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "inside"}, opts.DataZoom{Type: "slider"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	line.SetXAxis(xLabels).
		AddSeries("p(n)", values).
		SetSeriesOptions(charts.WithLabelOpts(opts.Label{Show: opts.Bool(false)}))
	return line
}

// BaileyChainDepth renders, as a bar chart over the three database
// pairs, how many chain steps mocktheta.Discover needed to connect a
// pair to lhsTarget/rhsTarget. Only the pair Discover returns (the first
// in database order that matches) gets a nonzero bar; the other bars,
// and all bars when no chain matched within maxDepth, are zero.
func BaileyChainDepth(lhsTarget, rhsTarget, a, q bigrat.Q, maxDepth, size int) *charts.Bar {
	names := []string{"unit", "rogers-ramanujan", "q-binomial"}
	depths := make([]opts.BarData, len(names))
	idx, chain, ok, err := mocktheta.Discover(lhsTarget, rhsTarget, a, q, maxDepth, size)
	for i := range names {
		if err != nil || !ok || i != idx {
			depths[i] = opts.BarData{Value: 0}
			continue
		}
		depths[i] = opts.BarData{Value: len(chain)}
	}
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Bailey chain depth", Subtitle: "steps to match target identity"}),
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Bailey chains", Width: "900px", Height: "500px"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(names).
		AddSeries("depth", depths).
		SetSeriesOptions(charts.WithLabelOpts(opts.Label{Show: opts.Bool(true)}))
	return bar
}

// renderable is satisfied by both *charts.Line and *charts.Bar.
type renderable interface {
	Render(w ...io.Writer) error
}

// RenderToFile writes a chart's HTML page to path, the `--plot out.html`
// CLI contract. Charts needing more than one renderable are wrapped in
// a components.Page first.
func RenderToFile(path string, chart renderable) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return chart.Render(f)
}

// RenderPageToFile writes a multi-chart components.Page to path.
func RenderPageToFile(path string, page *components.Page) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return page.Render(f)
}
