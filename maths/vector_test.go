package maths

import (
	"math"
	"testing"
)

// TestMulVec 验证实数与复数矩阵向量乘法
func TestMulVec(t *testing.T) {
	// A = [[1, 2],
	//      [3, 4]]
	a := []float64{1, 2, 3, 4}
	got := MulVec(nil, a, 2, []float64{1, 1})
	if got[0] != 3 || got[1] != 7 {
		t.Errorf("MulVec failed. Got [%f, %f]", got[0], got[1])
	}

	// 复数输入：虚部应按相同系数传播
	z := MulVec(nil, Lift(a), 2, []complex128{complex(1, 1), complex(0, 2)})
	if z[0] != complex(1, 5) || z[1] != complex(3, 11) {
		t.Errorf("complex MulVec failed. Got [%v, %v]", z[0], z[1])
	}
}

// TestMulVecPanicsOnShape 维度不匹配时应 panic
func TestMulVecPanicsOnShape(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic on dimension mismatch")
		}
	}()
	MulVec(nil, []float64{1, 2, 3, 4}, 2, []float64{1})
}

// TestDotSquare 测试点积与逐元素平方
func TestDotSquare(t *testing.T) {
	x := []float64{1, 2, 3}
	sq := Square(nil, x)
	if sq[2] != 9 {
		t.Errorf("Expected 9, got %f", sq[2])
	}
	if d := Dot(x, sq); d != 1+8+27 {
		t.Errorf("Expected dot 36, got %f", d)
	}
	if m := MaxAbs([]float64{-4, 2, 3}); m != 4 {
		t.Errorf("Expected MaxAbs 4, got %f", m)
	}
	if m := MaxAbs([]complex128{complex(3, 4)}); m != 5 {
		t.Errorf("Expected complex MaxAbs 5, got %f", m)
	}
}

// TestSteps 测试基础步长与精确步长
func TestSteps(t *testing.T) {
	h := BaseStep(1, 1)
	if math.Abs(h-math.Sqrt(Epsilon)) > 1e-20 {
		t.Errorf("BaseStep(1,1) = %g, want sqrt(eps)", h)
	}
	x := 3.0
	e := ExactStep(x, 0.1)
	if (x+e)-x != e {
		t.Errorf("ExactStep not exactly representable: %g", e)
	}
}
