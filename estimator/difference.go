package estimator

import (
	"math"

	"numdiffbench/maths"
	"numdiffbench/types"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/diff/fd"
)

// Difference 有限差分估计器（前向、中心或复步长）
type Difference struct {
	kind    types.Kind
	method  Method
	order   int
	steps   Steps
	formula fd.Formula
}

// NewDifference 创建有限差分估计器
func NewDifference(kind types.Kind, method Method, order int, steps Steps) (*Difference, error) {
	if err := steps.validate(); err != nil {
		return nil, err
	}
	formula, err := lookupFormula(method, kind, order)
	if err != nil {
		return nil, err
	}
	return &Difference{
		kind:    kind,
		method:  method,
		order:   order,
		steps:   steps,
		formula: formula,
	}, nil
}

// Kind 估计目标
func (d *Difference) Kind() types.Kind { return d.kind }

// Method 差分方法族
func (d *Difference) Method() Method { return d.method }

// Steps 步长策略
func (d *Difference) Steps() Steps { return d.steps }

// Bind 绑定目标函数
func (d *Difference) Bind(fn types.Function) (Evaluator, error) {
	if fn == nil {
		return nil, errors.New("bind: nil function")
	}
	e := &differenceEvaluator{
		Difference: d,
		fn:         fn,
		base:       maths.BaseStep(d.order, derivativeOrder(d.kind)),
		extrap: richardson{
			ratio: d.steps.Ratio,
			order: d.order,
			deriv: derivativeOrder(d.kind),
		},
	}
	if d.method == Complex {
		cf, ok := fn.(types.ComplexFunction)
		if !ok {
			return nil, errors.Errorf("bind: %T does not support complex evaluation", fn)
		}
		e.cfn = cf
	}
	return e, nil
}

// differenceEvaluator 有限差分求值器，非并发安全
type differenceEvaluator struct {
	*Difference
	fn     types.Function
	cfn    types.ComplexFunction
	base   float64
	extrap richardson
	err    error // 求值过程中的第一个错误
}

// eval 供 gonum fd 调用的实数函数，错误暂存到 e.err
func (e *differenceEvaluator) eval(x []float64) float64 {
	v, err := e.fn.Eval(x)
	if err != nil && e.err == nil {
		e.err = err
	}
	return v
}

// Evaluate 求梯度或海森对角线
func (e *differenceEvaluator) Evaluate(x []float64) ([]float64, error) {
	if err := checkDim(e.fn, x); err != nil {
		return nil, err
	}
	e.err = nil
	f0 := e.eval(x)
	if e.err != nil {
		return nil, e.err
	}

	var out []float64
	switch {
	case e.method == Complex:
		out = e.complexStep(x, f0)
	case e.kind == types.Gradient && e.steps.Fixed():
		h := e.steps.Sequence(maths.MaxAbs(x), e.base)[0]
		out = fd.Gradient(nil, e.eval, x, &fd.Settings{
			Formula:     e.formula,
			Step:        h,
			OriginKnown: true,
			OriginValue: f0,
		})
	default:
		out = e.partials(x, f0)
	}
	if e.err != nil {
		return nil, e.err
	}
	if err := checkFinite(out); err != nil {
		return nil, err
	}
	return out, nil
}

// partials 逐分量沿坐标方向求导，多步长时外推
func (e *differenceEvaluator) partials(x []float64, f0 float64) []float64 {
	xs := append([]float64(nil), x...)
	out := make([]float64, len(x))
	for k := range x {
		section := func(t float64) float64 {
			xs[k] = t
			v := e.eval(xs)
			xs[k] = x[k]
			return v
		}
		hs := e.steps.Sequence(x[k], e.base)
		d := make([]float64, len(hs))
		for i, h := range hs {
			d[i] = fd.Derivative(section, x[k], &fd.Settings{
				Formula:     e.formula,
				Step:        h,
				OriginKnown: true,
				OriginValue: f0,
			})
		}
		out[k] = e.extrap.extrapolate(d, hs, math.Abs(f0))
	}
	return out
}

// complexStep 复步长求导
//
//	f'(x)  ≈ Im f(x+ih) / h
//	f''(x) ≈ 2 (f(x) - Re f(x+ih)) / h²
func (e *differenceEvaluator) complexStep(x []float64, f0 float64) []float64 {
	z := maths.Lift(x)
	out := make([]float64, len(x))
	for k := range x {
		hs := e.steps.Sequence(x[k], e.base)
		d := make([]float64, len(hs))
		for i, h := range hs {
			z[k] = complex(x[k], h)
			v, err := e.cfn.EvalComplex(z)
			if err != nil && e.err == nil {
				e.err = err
			}
			if e.kind == types.HessianDiag {
				d[i] = 2 * (f0 - real(v)) / (h * h)
			} else {
				d[i] = imag(v) / h
			}
		}
		z[k] = complex(x[k], 0)
		out[k] = e.extrap.extrapolate(d, hs, math.Abs(f0))
	}
	return out
}
