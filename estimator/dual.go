package estimator

import (
	"numdiffbench/types"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/num/dual"
	"gonum.org/v1/gonum/num/hyperdual"
)

// Dual 前向模式自动微分估计器
// 梯度使用对偶数，海森对角线使用超对偶数，每个分量一次前向传播。
type Dual struct {
	kind types.Kind
}

// NewDual 创建自动微分估计器
func NewDual(kind types.Kind) *Dual {
	return &Dual{kind: kind}
}

// Kind 估计目标
func (d *Dual) Kind() types.Kind { return d.kind }

// Bind 绑定目标函数
func (d *Dual) Bind(fn types.Function) (Evaluator, error) {
	if fn == nil {
		return nil, errors.New("bind: nil function")
	}
	switch d.kind {
	case types.Gradient:
		df, ok := fn.(types.DualFunction)
		if !ok {
			return nil, errors.Errorf("bind: %T does not support dual evaluation", fn)
		}
		return &dualEvaluator{fn: df}, nil
	case types.HessianDiag:
		hf, ok := fn.(types.HyperDualFunction)
		if !ok {
			return nil, errors.Errorf("bind: %T does not support hyper-dual evaluation", fn)
		}
		return &hyperDualEvaluator{fn: hf}, nil
	}
	return nil, errors.Errorf("bind: unknown kind %s", d.kind)
}

type dualEvaluator struct {
	fn types.DualFunction
}

func (e *dualEvaluator) Evaluate(x []float64) ([]float64, error) {
	if err := checkDim(e.fn, x); err != nil {
		return nil, err
	}
	xd := make([]dual.Number, len(x))
	for i, v := range x {
		xd[i] = dual.Number{Real: v}
	}
	out := make([]float64, len(x))
	for k := range x {
		xd[k].Emag = 1
		v, err := e.fn.EvalDual(xd)
		if err != nil {
			return nil, err
		}
		xd[k].Emag = 0
		out[k] = v.Emag
	}
	return out, checkFinite(out)
}

type hyperDualEvaluator struct {
	fn types.HyperDualFunction
}

func (e *hyperDualEvaluator) Evaluate(x []float64) ([]float64, error) {
	if err := checkDim(e.fn, x); err != nil {
		return nil, err
	}
	xh := make([]hyperdual.Number, len(x))
	for i, v := range x {
		xh[i] = hyperdual.Number{Real: v}
	}
	out := make([]float64, len(x))
	for k := range x {
		xh[k].E1mag, xh[k].E2mag = 1, 1
		v, err := e.fn.EvalHyperDual(xh)
		if err != nil {
			return nil, err
		}
		xh[k].E1mag, xh[k].E2mag = 0, 0
		out[k] = v.E1E2mag
	}
	return out, checkFinite(out)
}
