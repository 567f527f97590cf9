package estimator

import (
	"numdiffbench/types"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/diff/fd"
)

type stencilKey struct {
	method Method
	kind   types.Kind
	order  int
}

// 二阶精度的单侧一阶导数
var forwardOrder2 = fd.Formula{
	Stencil:    []fd.Point{{Loc: 0, Coeff: -1.5}, {Loc: 1, Coeff: 2}, {Loc: 2, Coeff: -0.5}},
	Derivative: 1,
	Step:       1e-5,
}

// 四阶精度的单侧一阶导数
var forwardOrder4 = fd.Formula{
	Stencil: []fd.Point{
		{Loc: 0, Coeff: -25.0 / 12}, {Loc: 1, Coeff: 4}, {Loc: 2, Coeff: -3},
		{Loc: 3, Coeff: 4.0 / 3}, {Loc: 4, Coeff: -1.0 / 4},
	},
	Derivative: 1,
	Step:       1e-3,
}

// 四阶精度的中心一阶导数
var centralOrder4 = fd.Formula{
	Stencil: []fd.Point{
		{Loc: -2, Coeff: 1.0 / 12}, {Loc: -1, Coeff: -2.0 / 3},
		{Loc: 1, Coeff: 2.0 / 3}, {Loc: 2, Coeff: -1.0 / 12},
	},
	Derivative: 1,
	Step:       1e-3,
}

// 二阶精度的单侧二阶导数
var forward2ndOrder2 = fd.Formula{
	Stencil: []fd.Point{
		{Loc: 0, Coeff: 2}, {Loc: 1, Coeff: -5},
		{Loc: 2, Coeff: 4}, {Loc: 3, Coeff: -1},
	},
	Derivative: 2,
	Step:       1e-4,
}

// 四阶精度的单侧二阶导数
var forward2ndOrder4 = fd.Formula{
	Stencil: []fd.Point{
		{Loc: 0, Coeff: 15.0 / 4}, {Loc: 1, Coeff: -77.0 / 6}, {Loc: 2, Coeff: 107.0 / 6},
		{Loc: 3, Coeff: -13}, {Loc: 4, Coeff: 61.0 / 12}, {Loc: 5, Coeff: -5.0 / 6},
	},
	Derivative: 2,
	Step:       1e-2,
}

// 四阶精度的中心二阶导数
var central2ndOrder4 = fd.Formula{
	Stencil: []fd.Point{
		{Loc: -2, Coeff: -1.0 / 12}, {Loc: -1, Coeff: 4.0 / 3}, {Loc: 0, Coeff: -5.0 / 2},
		{Loc: 1, Coeff: 4.0 / 3}, {Loc: 2, Coeff: -1.0 / 12},
	},
	Derivative: 2,
	Step:       1e-3,
}

// stencils 按方法、目标与误差阶索引的差分公式
var stencils = map[stencilKey]fd.Formula{
	{Forward, types.Gradient, 1}:    fd.Forward,
	{Forward, types.Gradient, 2}:    forwardOrder2,
	{Forward, types.Gradient, 4}:    forwardOrder4,
	{Central, types.Gradient, 2}:    fd.Central,
	{Central, types.Gradient, 4}:    centralOrder4,
	{Forward, types.HessianDiag, 1}: fd.Forward2nd,
	{Forward, types.HessianDiag, 2}: forward2ndOrder2,
	{Forward, types.HessianDiag, 4}: forward2ndOrder4,
	{Central, types.HessianDiag, 2}: fd.Central2nd,
	{Central, types.HessianDiag, 4}: central2ndOrder4,
}

// complexOrder 复步长的误差阶
const complexOrder = 2

func lookupFormula(method Method, kind types.Kind, order int) (fd.Formula, error) {
	if method == Complex {
		if order != complexOrder {
			return fd.Formula{}, errors.Errorf("complex step: unsupported order %d", order)
		}
		return fd.Formula{}, nil
	}
	f, ok := stencils[stencilKey{method, kind, order}]
	if !ok {
		return fd.Formula{}, errors.Errorf("%s %s: unsupported order %d", method, kind, order)
	}
	return f, nil
}

// NormalizeOrder 返回方法支持的不小于 order 的最小误差阶。
// 中心差分只有偶数阶，例如 central 的 1 阶会提升为 2 阶；复步长只有 2 阶，忽略 order。
func NormalizeOrder(method Method, kind types.Kind, order int) (int, error) {
	if order < 1 {
		return 0, errors.Errorf("%s %s: order %d is not positive", method, kind, order)
	}
	if method == Complex {
		return complexOrder, nil
	}
	best := 0
	for key := range stencils {
		if key.method == method && key.kind == kind && key.order >= order && (best == 0 || key.order < best) {
			best = key.order
		}
	}
	if best == 0 {
		return 0, errors.Errorf("%s %s: no stencil of order %d or higher", method, kind, order)
	}
	return best, nil
}

func derivativeOrder(kind types.Kind) int {
	if kind == types.HessianDiag {
		return 2
	}
	return 1
}
