package types

import (
	"gonum.org/v1/gonum/num/dual"
	"gonum.org/v1/gonum/num/hyperdual"
)

// Function 标量目标函数
type Function interface {
	Dim() int                          // 输入维度
	Eval(x []float64) (float64, error) // 实数求值
}

// ComplexFunction 支持复步长求值的函数
type ComplexFunction interface {
	Function
	EvalComplex(x []complex128) (complex128, error)
}

// DualFunction 支持对偶数求值的函数（前向自动微分）
type DualFunction interface {
	Function
	EvalDual(x []dual.Number) (dual.Number, error)
}

// HyperDualFunction 支持超对偶数求值的函数（二阶前向自动微分）
type HyperDualFunction interface {
	Function
	EvalHyperDual(x []hyperdual.Number) (hyperdual.Number, error)
}
