package estimator

import (
	"math"

	"numdiffbench/maths"

	"gonum.org/v1/gonum/floats"
)

// richardson 相邻步长之间的 Richardson 外推
type richardson struct {
	ratio float64 // 相邻步长比例
	order int     // 截断误差阶
	deriv int     // 导数阶，用于估计舍入误差
}

// extrapolate 对按步长递减排列的估计值外推，返回误差估计最小的值。
// scale 为函数值量级，用于估计舍入误差 eps·|f|/h^deriv。
func (r richardson) extrapolate(d, hs []float64, scale float64) float64 {
	if len(d) == 1 {
		return d[0]
	}
	c := math.Pow(r.ratio, float64(r.order)) - 1
	ext := make([]float64, len(d)-1)
	for i := range ext {
		ext[i] = d[i+1] + (d[i+1]-d[i])/c
	}
	if len(ext) == 1 {
		return ext[0]
	}
	errs := make([]float64, len(ext))
	for i := range ext {
		j := i - 1
		if i == 0 {
			j = 1
		}
		rounding := maths.Epsilon * scale / math.Pow(hs[i+1], float64(r.deriv))
		errs[i] = math.Abs(ext[i]-ext[j]) + rounding
		if math.IsNaN(errs[i]) {
			errs[i] = math.Inf(1)
		}
	}
	return ext[floats.MinIdx(errs)]
}
