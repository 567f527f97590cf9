// Package bench 提供基准测试函数 F(x) = 0.5 * (x∘x)ᵀ(A·x)。
//
// A = MᵀM，M 为按行填充 0..N²-1 的 N×N 矩阵。同一 N 构造的函数逐位一致，
// 可在实数、复数、对偶数与超对偶数上求值，供各类导数估计器使用。
package bench

import (
	"numdiffbench/maths"
	"numdiffbench/types"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/dual"
	"gonum.org/v1/gonum/num/hyperdual"
)

// Function 基准函数
type Function struct {
	n  int
	a  *mat.SymDense // A = MᵀM
	ar []float64     // A 的行优先展开，用于对偶数求值
	ac []complex128  // A 的复数展开，用于复步长求值
}

// New 创建维度为 n 的基准函数
func New(n int) (*Function, error) {
	if n <= 0 {
		return nil, &types.ShapeError{What: "problem size", Want: 1, Got: n}
	}
	data := make([]float64, n*n)
	for i := range data {
		data[i] = float64(i)
	}
	m := mat.NewDense(n, n, data)
	a := mat.NewSymDense(n, nil)
	a.SymOuterK(1, m.T())

	ar := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			ar[i*n+j] = a.At(i, j)
		}
	}
	return &Function{n: n, a: a, ar: ar, ac: maths.Lift(ar)}, nil
}

// Dim 返回输入维度
func (f *Function) Dim() int { return f.n }

// Matrix 返回系数矩阵 A 的副本
func (f *Function) Matrix() *mat.SymDense {
	a := mat.NewSymDense(f.n, nil)
	a.CopySym(f.a)
	return a
}

func (f *Function) check(got int) error {
	if got != f.n {
		return &types.ShapeError{What: "function input", Want: f.n, Got: got}
	}
	return nil
}

// mulVec 返回 A·x
func (f *Function) mulVec(x []float64) *mat.VecDense {
	ax := mat.NewVecDense(f.n, nil)
	ax.MulVec(f.a, mat.NewVecDense(f.n, x))
	return ax
}

// Eval 实数求值
func (f *Function) Eval(x []float64) (float64, error) {
	if err := f.check(len(x)); err != nil {
		return 0, err
	}
	sq := mat.NewVecDense(f.n, maths.Square(nil, x))
	return 0.5 * mat.Dot(sq, f.mulVec(x)), nil
}

// EvalComplex 复数求值
func (f *Function) EvalComplex(x []complex128) (complex128, error) {
	if err := f.check(len(x)); err != nil {
		return 0, err
	}
	ax := maths.MulVec(nil, f.ac, f.n, x)
	return 0.5 * maths.Dot(maths.Square(nil, x), ax), nil
}

// EvalDual 对偶数求值
func (f *Function) EvalDual(x []dual.Number) (dual.Number, error) {
	if err := f.check(len(x)); err != nil {
		return dual.Number{}, err
	}
	var sum dual.Number
	for i := 0; i < f.n; i++ {
		var axi dual.Number
		for j, v := range f.ar[i*f.n : (i+1)*f.n] {
			axi = dual.Add(axi, dual.Scale(v, x[j]))
		}
		sum = dual.Add(sum, dual.Mul(dual.Mul(x[i], x[i]), axi))
	}
	return dual.Scale(0.5, sum), nil
}

// EvalHyperDual 超对偶数求值
func (f *Function) EvalHyperDual(x []hyperdual.Number) (hyperdual.Number, error) {
	if err := f.check(len(x)); err != nil {
		return hyperdual.Number{}, err
	}
	var sum hyperdual.Number
	for i := 0; i < f.n; i++ {
		var axi hyperdual.Number
		for j, v := range f.ar[i*f.n : (i+1)*f.n] {
			axi = hyperdual.Add(axi, hyperdual.Scale(v, x[j]))
		}
		sum = hyperdual.Add(sum, hyperdual.Mul(hyperdual.Mul(x[i], x[i]), axi))
	}
	return hyperdual.Scale(0.5, sum), nil
}

// Gradient 解析梯度 ∂F/∂x_k = x_k(Ax)_k + 0.5(A(x∘x))_k
func (f *Function) Gradient(x []float64) ([]float64, error) {
	if err := f.check(len(x)); err != nil {
		return nil, err
	}
	ax := f.mulVec(x)
	axx := f.mulVec(maths.Square(nil, x))
	g := make([]float64, f.n)
	for k := range g {
		g[k] = x[k]*ax.AtVec(k) + 0.5*axx.AtVec(k)
	}
	return g, nil
}

// HessianDiag 解析海森对角线 ∂²F/∂x_k² = (Ax)_k + 2x_k A_kk
func (f *Function) HessianDiag(x []float64) ([]float64, error) {
	if err := f.check(len(x)); err != nil {
		return nil, err
	}
	ax := f.mulVec(x)
	h := make([]float64, f.n)
	for k := range h {
		h[k] = ax.AtVec(k) + 2*x[k]*f.a.At(k, k)
	}
	return h, nil
}

var (
	_ types.ComplexFunction   = (*Function)(nil)
	_ types.DualFunction      = (*Function)(nil)
	_ types.HyperDualFunction = (*Function)(nil)
)
