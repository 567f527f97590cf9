package report

import (
	"image/color"
	"math"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Symbol 绘图符号：线型、颜色与标记
type Symbol struct {
	Code   string           // 原始代码，如 "--k^"
	Line   bool             // 是否连线
	Dashes []vg.Length      // 虚线模式，空为实线
	Color  color.Color      // 线与标记颜色
	Marker draw.GlyphDrawer // 数据点标记，nil 为不绘制
}

// DefaultSymbols 默认符号表，按位置与方法配对
var DefaultSymbols = mustSymbols(
	"-kx", ":k>", ":k<", "--k^", "--kv", "-kp", "-ks", "b", "--b", "-k+",
)

type lineStyle struct {
	code   string
	dashes []vg.Length
}

// lineStyles 线型代码，双字符在前
var lineStyles = []lineStyle{
	{"--", plotutil.Dashes(1)},
	{"-.", plotutil.Dashes(4)},
	{"-", plotutil.Dashes(0)},
	{":", plotutil.Dashes(2)},
}

var colors = map[byte]color.Color{
	'b': color.RGBA{B: 255, A: 255},
	'g': color.RGBA{G: 128, A: 255},
	'r': color.RGBA{R: 255, A: 255},
	'c': color.RGBA{G: 191, B: 191, A: 255},
	'm': color.RGBA{R: 191, B: 191, A: 255},
	'y': color.RGBA{R: 191, G: 191, A: 255},
	'k': color.Black,
	'w': color.White,
}

var markers = map[byte]draw.GlyphDrawer{
	'x': draw.CrossGlyph{},
	'+': draw.PlusGlyph{},
	'o': draw.RingGlyph{},
	'.': draw.CircleGlyph{},
	's': draw.SquareGlyph{},
	'^': draw.TriangleGlyph{},
	'v': polygonGlyph{sides: 3, rotation: -math.Pi / 2},
	'<': polygonGlyph{sides: 3, rotation: math.Pi},
	'>': polygonGlyph{sides: 3, rotation: 0},
	'p': polygonGlyph{sides: 5, rotation: math.Pi / 2},
	'd': polygonGlyph{sides: 4, rotation: math.Pi / 2},
}

// ParseSymbol 解析 matplotlib 风格的格式代码，线型、颜色、标记各至多一个且顺序任意。
// 只给出标记时不连线；未给出颜色时使用默认调色板中的蓝色。
func ParseSymbol(code string) (Symbol, error) {
	s := Symbol{Code: code}
	var hasLine bool
	for rest := code; rest != ""; {
		if ls, ok := matchLineStyle(rest); ok {
			if hasLine {
				return Symbol{}, errors.Errorf("symbol %q: duplicate line style", code)
			}
			hasLine = true
			s.Dashes = ls.dashes
			rest = rest[len(ls.code):]
			continue
		}
		c := rest[0]
		rest = rest[1:]
		if clr, ok := colors[c]; ok {
			if s.Color != nil {
				return Symbol{}, errors.Errorf("symbol %q: duplicate color", code)
			}
			s.Color = clr
			continue
		}
		if m, ok := markers[c]; ok {
			if s.Marker != nil {
				return Symbol{}, errors.Errorf("symbol %q: duplicate marker", code)
			}
			s.Marker = m
			continue
		}
		return Symbol{}, errors.Errorf("symbol %q: unknown code %q", code, c)
	}
	s.Line = hasLine || s.Marker == nil
	if s.Color == nil {
		s.Color = plotutil.Color(2)
	}
	return s, nil
}

func matchLineStyle(s string) (lineStyle, bool) {
	for _, ls := range lineStyles {
		if strings.HasPrefix(s, ls.code) {
			return ls, true
		}
	}
	return lineStyle{}, false
}

// Symbols 取前 n 个默认符号
func Symbols(n int) ([]Symbol, error) {
	if n > len(DefaultSymbols) {
		return nil, errors.Errorf("only %d default symbols, %d requested", len(DefaultSymbols), n)
	}
	return append([]Symbol(nil), DefaultSymbols[:n]...), nil
}

func mustSymbols(codes ...string) []Symbol {
	out := make([]Symbol, len(codes))
	for i, c := range codes {
		s, err := ParseSymbol(c)
		if err != nil {
			panic(err)
		}
		out[i] = s
	}
	return out
}

// polygonGlyph 正多边形轮廓标记，rotation 为第一个顶点的方向角
type polygonGlyph struct {
	sides    int
	rotation float64
}

// DrawGlyph implements the draw.GlyphDrawer interface.
func (g polygonGlyph) DrawGlyph(c *draw.Canvas, sty draw.GlyphStyle, pt vg.Point) {
	c.SetLineStyle(draw.LineStyle{Color: sty.Color, Width: vg.Points(0.5)})
	p := make(vg.Path, 0, g.sides+1)
	for i := 0; i < g.sides; i++ {
		a := g.rotation + 2*math.Pi*float64(i)/float64(g.sides)
		q := vg.Point{
			X: pt.X + sty.Radius*vg.Length(math.Cos(a)),
			Y: pt.Y + sty.Radius*vg.Length(math.Sin(a)),
		}
		if i == 0 {
			p.Move(q)
		} else {
			p.Line(q)
		}
	}
	p.Close()
	c.Stroke(p)
}
