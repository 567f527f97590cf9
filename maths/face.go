package maths

import (
	"math"
	"math/cmplx"
)

// Epsilon 双精度机器精度
var Epsilon = math.Nextafter(1, 2) - 1

// Number 是一个约束，允许任何浮点或复数类型
type Number interface {
	~float32 | ~float64 | ~complex64 | ~complex128
}

// Abs 是一个泛型函数，返回任何支持的 Number 类型的绝对值。
func Abs[T Number](v T) float64 {
	// 通过类型断言检查具体类型
	switch x := any(v).(type) {
	case float32:
		return math.Abs(float64(x))
	case float64:
		return math.Abs(x)
	case complex64:
		return cmplx.Abs(complex128(x))
	case complex128:
		return cmplx.Abs(x)
	}
	return 0
}

// BaseStep 差分基础步长 eps^(1/(order+derivative))
func BaseStep(order, derivative int) float64 {
	return math.Pow(Epsilon, 1/float64(order+derivative))
}

// ExactStep 返回 x+h-x，使步长在浮点下精确可表示
func ExactStep(x, h float64) float64 {
	t := x + h
	return t - x
}
