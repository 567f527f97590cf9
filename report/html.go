package report

import (
	"io"

	"numdiffbench/types"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	etypes "github.com/go-echarts/go-echarts/v2/types"
)

// HTML 把所有分组渲染为一个交互式页面，每个分组一张折线图
func HTML(w io.Writer, groups []*types.Group, sizes []int) error {
	page := components.NewPage()
	page.SetPageTitle("numdiffbench")
	for _, g := range groups {
		if len(g.Series) != len(g.Labels) {
			return &types.ShapeError{What: g.Title + " labels", Want: len(g.Series), Got: len(g.Labels)}
		}
		for _, s := range g.Series {
			if len(s) != len(sizes) {
				return &types.ShapeError{What: g.Title + " series", Want: len(sizes), Got: len(s)}
			}
		}
		page.AddCharts(lineChart(g, sizes))
	}
	return page.Render(w)
}

func lineChart(g *types.Group, sizes []int) *charts.Line {
	xType := "value"
	if logX(g.Metric) {
		xType = "log"
	}
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme: etypes.ThemeWesteros,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    g.Title,
			Subtitle: yLabel(g.Metric),
		}),
		charts.WithLegendOpts(opts.Legend{
			Type:   "scroll",
			Orient: "vertical",
			Right:  "10",
			Top:    "20",
			Bottom: "20",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "N",
			Type: xType,
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type:  "log",
			Scale: opts.Bool(true),
		}),
	)
	for i, s := range g.Series {
		items := make([]opts.LineData, len(s))
		for j, v := range s {
			items[j].Value = []float64{float64(sizes[j]), v}
		}
		line.AddSeries(g.Labels[i], items,
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(true)}))
	}
	return line
}
