// Package report 把聚合后的分组渲染为对数坐标图表、HTML 页面和 JSON 记录。
package report

import (
	"math"
	"os"
	"path/filepath"
	"strings"

	"numdiffbench/types"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Border 坐标范围两端的对数留白比例
const Border = 0.05

// Corner 图例位置
type Corner uint8

const (
	TopLeft Corner = iota // 左上
	TopRight              // 右上
	BottomLeft            // 左下
	BottomRight           // 右下
	CenterRight           // 右侧居中
)

var cornerNames = [...]string{"top-left", "top-right", "bottom-left", "bottom-right", "center-right"}

func (c Corner) String() string {
	if int(c) < len(cornerNames) {
		return cornerNames[c]
	}
	return "unknown"
}

// ParseCorner 解析图例位置名称，如 "top-left"
func ParseCorner(name string) (Corner, error) {
	for i, n := range cornerNames {
		if n == name {
			return Corner(i), nil
		}
	}
	return 0, errors.Errorf("unknown legend corner %q", name)
}

// Style 图表样式
type Style struct {
	Dir    string    // 输出目录，空为当前目录
	Legend Corner    // 图例位置
	Width  vg.Length // 图片宽度
	Height vg.Length // 图片高度
}

// DefaultStyle 默认样式
func DefaultStyle(corner Corner) Style {
	return Style{Legend: corner, Width: 6 * vg.Inch, Height: 4.5 * vg.Inch}
}

// FileName 由标题生成文件名，如 "Jacobian run times" -> "jacobian_run_times.png"
func FileName(title string) string {
	return strings.ReplaceAll(strings.ToLower(title), " ", "_") + ".png"
}

// LogLimits 返回 [min/s, max·s]，s = (max/min)^Border。
// 所有值相等时按一个数量级的 Border 留白。
func LogLimits(values []float64) (lo, hi float64, err error) {
	if len(values) == 0 {
		return 0, 0, errors.New("log limits: no values")
	}
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if !(v > 0) || math.IsInf(v, 0) {
			return 0, 0, errors.Errorf("log limits: value %g is not positive and finite", v)
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	scale := math.Pow(hi/lo, Border)
	if hi == lo {
		scale = math.Pow(10, Border)
	}
	return lo / scale, hi * scale, nil
}

// Plot 为每个分组渲染一张 PNG 图表。
// 所有分组先校验符号数量，任何文件写入前报告 LabelSymbolMismatchError。
func Plot(groups []*types.Group, sizes []int, symbols []Symbol, style Style) error {
	for _, g := range groups {
		if len(g.Labels) != len(symbols) || len(g.Series) != len(symbols) {
			return &types.LabelSymbolMismatchError{Title: g.Title, Labels: len(g.Labels), Symbols: len(symbols)}
		}
		for _, s := range g.Series {
			if len(s) != len(sizes) {
				return &types.ShapeError{What: g.Title + " series", Want: len(sizes), Got: len(s)}
			}
		}
	}
	if style.Width == 0 || style.Height == 0 {
		def := DefaultStyle(style.Legend)
		style.Width, style.Height = def.Width, def.Height
	}
	for _, g := range groups {
		file := filepath.Join(style.Dir, FileName(g.Title))
		p, err := newPlot(g, sizes, symbols, style.Legend)
		if err != nil {
			return &types.RenderError{Title: g.Title, File: file, Err: err}
		}
		if style.Dir != "" {
			if err := os.MkdirAll(style.Dir, 0o755); err != nil {
				return &types.RenderError{Title: g.Title, File: file, Err: err}
			}
		}
		if err := p.Save(style.Width, style.Height, file); err != nil {
			return &types.RenderError{Title: g.Title, File: file, Err: err}
		}
		log.WithFields(log.Fields{"title": g.Title, "file": file}).Info("chart written")
	}
	return nil
}

// logX 运行时间使用双对数坐标，误差只对 y 取对数
func logX(m types.Metric) bool { return m != types.RelativeError }

// yLabel 纵轴标签
func yLabel(m types.Metric) string {
	if m == types.RelativeError {
		return "relative error ||g_ref - g|| / ||g_ref||"
	}
	return "time t [s]"
}

func newPlot(g *types.Group, sizes []int, symbols []Symbol, corner Corner) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = g.Title
	p.X.Label.Text = "problem size N"
	p.Y.Label.Text = yLabel(g.Metric)
	p.Add(plotter.NewGrid())

	var all []float64
	for _, s := range g.Series {
		all = append(all, s...)
	}
	lo, hi, err := LogLimits(all)
	if err != nil {
		return nil, err
	}
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Y.Min, p.Y.Max = lo, hi

	xs := make([]float64, len(sizes))
	for i, n := range sizes {
		xs[i] = float64(n)
	}
	if logX(g.Metric) {
		lo, hi, err := LogLimits(xs)
		if err != nil {
			return nil, err
		}
		p.X.Scale = plot.LogScale{}
		p.X.Tick.Marker = plot.LogTicks{Prec: -1}
		p.X.Min, p.X.Max = lo, hi
	}

	for i, s := range g.Series {
		pts := make(plotter.XYs, len(s))
		for j, v := range s {
			pts[j].X, pts[j].Y = xs[j], v
		}
		thumbs, err := addSeries(p, pts, symbols[i])
		if err != nil {
			return nil, err
		}
		p.Legend.Add(g.Labels[i], thumbs...)
	}
	if corner == CenterRight {
		p.Add(&centerLegend{Legend: p.Legend})
		p.Legend = plot.NewLegend()
		return p, nil
	}
	p.Legend.Top = corner == TopLeft || corner == TopRight
	p.Legend.Left = corner == TopLeft || corner == BottomLeft
	return p, nil
}

// centerLegend 贴右侧、垂直居中的图例，在数据区内绘制
type centerLegend struct {
	plot.Legend
}

// Plot implements the plot.Plotter interface.
func (l *centerLegend) Plot(c draw.Canvas, _ *plot.Plot) {
	l.Top, l.Left = true, false
	l.YOffs = -(c.Size().Y - l.Rectangle(c).Size().Y) / 2
	l.Draw(c)
}

// addSeries 按符号添加折线与标记，返回图例缩略图
func addSeries(p *plot.Plot, pts plotter.XYs, sym Symbol) ([]plot.Thumbnailer, error) {
	var thumbs []plot.Thumbnailer
	line, scatter, err := plotter.NewLinePoints(pts)
	if err != nil {
		return nil, err
	}
	if sym.Line {
		line.LineStyle.Color = sym.Color
		line.LineStyle.Dashes = sym.Dashes
		p.Add(line)
		thumbs = append(thumbs, line)
	}
	if sym.Marker != nil {
		scatter.GlyphStyle = draw.GlyphStyle{Color: sym.Color, Radius: vg.Points(3), Shape: sym.Marker}
		p.Add(scatter)
		thumbs = append(thumbs, scatter)
	}
	return thumbs, nil
}
