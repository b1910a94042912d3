package maths

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		v, lo, hi, want float64
	}{
		{0.5, 0, 1, 0.5},
		{-2, 0, 1, 0},
		{3, 0, 1, 1},
		{1e-12, 1e-9, 1, 1e-9},
	}
	for _, tt := range tests {
		if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.want {
			t.Errorf("Clamp(%g, %g, %g) = %g, 期望 %g", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}
	if got := Clamp(7, 1, 5); got != 5 {
		t.Errorf("整数钳位错误: %d", got)
	}
}

func TestMaxAbs(t *testing.T) {
	if got := MaxAbs([]float64{}); got != 0 {
		t.Errorf("空切片应返回 0, 实际 %g", got)
	}
	if got := MaxAbs([]float64{0.5, -3, 2}); got != 3 {
		t.Errorf("期望 3, 实际 %g", got)
	}
	if got := MaxAbs([]float32{-0.25, 0.125}); got != 0.25 {
		t.Errorf("期望 0.25, 实际 %g", got)
	}
}

func TestFinite(t *testing.T) {
	if !IsFinite(1.0) || IsFinite(math.NaN()) || IsFinite(math.Inf(-1)) {
		t.Error("IsFinite 判断错误")
	}
	if !AllFinite([]float64{0, -1, 1e300}) {
		t.Error("有限切片被判定为非有限")
	}
	if AllFinite([]float64{0, math.Inf(1)}) {
		t.Error("含无穷值的切片被判定为有限")
	}
}
