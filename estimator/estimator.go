// Package estimator 提供可互换的导数估计器。
//
// 估计器先通过 Bind 绑定目标函数得到求值器，再在给定点求梯度或海森对角线。
// 绑定与求值分离，便于分别计时，也避免在共享对象上修改“当前函数”。
package estimator

import (
	"fmt"
	"math"

	"numdiffbench/maths"
	"numdiffbench/types"

	"github.com/pkg/errors"
)

// Evaluator 绑定函数后的求值器
type Evaluator interface {
	// Evaluate 在 x 处求梯度或海森对角线，返回长度与 x 相同
	Evaluate(x []float64) ([]float64, error)
}

// Estimator 导数估计器
type Estimator interface {
	Kind() types.Kind
	Bind(fn types.Function) (Evaluator, error)
}

// Method 差分方法族
type Method uint8

const (
	Forward Method = iota // 前向差分
	Central               // 中心差分
	Complex               // 复步长
)

var methodNames = map[Method]string{
	Forward: "forward",
	Central: "central",
	Complex: "complex",
}

// Methods 按注册顺序列出的差分方法族
var Methods = []Method{Forward, Central, Complex}

// String 返回方法名称
func (m Method) String() string {
	if s, ok := methodNames[m]; ok {
		return s
	}
	return fmt.Sprintf("Method(%d)", uint8(m))
}

// ParseMethod 通过名称获取方法
func ParseMethod(name string) (Method, error) {
	for m, s := range methodNames {
		if s == name {
			return m, nil
		}
	}
	return 0, errors.Errorf("unknown difference method %q", name)
}

// Steps 步长策略
// 步长序列为 h_i = Base·max(1,|x|)·Ratio^-(i+Offset)，i = 0..Num-1。
type Steps struct {
	Num    int     // 步长数量，1 为固定步长
	Ratio  float64 // 相邻步长比例
	Offset int     // 指数偏移
	Base   float64 // 基础步长，0 表示自动选择
	Exact  bool    // 使用精确可表示的步长
}

// MaxBaseStep 自适应步长序列的默认最大基础步长
var MaxBaseStep = 2.0

// FixedSteps 单步、精确步长、零偏移
func FixedSteps() Steps {
	return Steps{Num: 1, Ratio: 2, Exact: true}
}

// AdaptiveSteps 多步外推步长序列
func AdaptiveSteps(num int, ratio float64, offset int) Steps {
	return Steps{Num: num, Ratio: ratio, Offset: offset, Base: MaxBaseStep, Exact: true}
}

// Fixed 是否为固定步长
func (s Steps) Fixed() bool { return s.Num == 1 }

func (s Steps) validate() error {
	switch {
	case s.Num < 1:
		return errors.Errorf("step count must be positive, got %d", s.Num)
	case !s.Fixed() && !(s.Ratio > 1):
		return errors.Errorf("step ratio must be greater than 1, got %g", s.Ratio)
	case s.Base < 0:
		return errors.Errorf("base step must not be negative, got %g", s.Base)
	case s.Base > 0 && s.Num < 2:
		return errors.Errorf("adaptive steps need at least 2 steps to extrapolate, got %d", s.Num)
	}
	return nil
}

// Sequence 生成 x 处按递减排列的步长序列
func (s Steps) Sequence(x, base float64) []float64 {
	if s.Base > 0 {
		base = s.Base
	}
	scale := math.Max(1, math.Abs(x))
	hs := make([]float64, s.Num)
	for i := range hs {
		h := base * scale * math.Pow(s.Ratio, -float64(i+s.Offset))
		if s.Exact {
			h = maths.ExactStep(x, h)
		}
		hs[i] = h
	}
	return hs
}

func checkFinite(v []float64) error {
	for i, d := range v {
		if math.IsNaN(d) || math.IsInf(d, 0) {
			return errors.Errorf("non-finite derivative estimate at component %d", i)
		}
	}
	return nil
}

func checkDim(fn types.Function, x []float64) error {
	if len(x) != fn.Dim() {
		return &types.ShapeError{What: "evaluation point", Want: fn.Dim(), Got: len(x)}
	}
	return nil
}
