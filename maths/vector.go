package maths

import "fmt"

// MulVec 计算方阵（行优先）与向量的乘积 dst = A*x
// dst 为 nil 时分配新切片。
func MulVec[T Number](dst []T, a []T, n int, x []T) []T {
	if len(a) != n*n || len(x) != n {
		panic(fmt.Sprintf("dimension mismatch: matrix %d for n=%d, vector %d", len(a), n, len(x)))
	}
	if dst == nil {
		dst = make([]T, n)
	} else if len(dst) != n {
		panic(fmt.Sprintf("dimension mismatch: dst %d, n=%d", len(dst), n))
	}
	for i := 0; i < n; i++ {
		row := a[i*n : (i+1)*n]
		var sum T
		for j, v := range row {
			sum += v * x[j]
		}
		dst[i] = sum
	}
	return dst
}

// Dot 计算两个向量的点积
func Dot[T Number](x, y []T) T {
	if len(x) != len(y) {
		panic("vector dimension mismatch")
	}
	var sum T
	for i, v := range x {
		sum += v * y[i]
	}
	return sum
}

// Square 逐元素平方 dst = x∘x
func Square[T Number](dst, x []T) []T {
	if dst == nil {
		dst = make([]T, len(x))
	} else if len(dst) != len(x) {
		panic("vector dimension mismatch")
	}
	for i, v := range x {
		dst[i] = v * v
	}
	return dst
}

// MaxAbs 获取向量中绝对值最大的元素的绝对值
func MaxAbs[T Number](x []T) float64 {
	m := 0.0
	for _, v := range x {
		if a := Abs(v); a > m {
			m = a
		}
	}
	return m
}

// Lift 将实数切片转换为复数切片
func Lift(x []float64) []complex128 {
	z := make([]complex128, len(x))
	for i, v := range x {
		z[i] = complex(v, 0)
	}
	return z
}
