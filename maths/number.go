package maths

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Clamp 将 v 限制在 [lo, hi] 区间内
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// MaxAbs 返回切片中绝对值最大的元素的绝对值，空切片返回 0
func MaxAbs[T constraints.Float](s []T) T {
	var m T
	for _, v := range s {
		if v < 0 {
			v = -v
		}
		if v > m {
			m = v
		}
	}
	return m
}

// IsFinite 判断是否为有限值
func IsFinite[T constraints.Float](v T) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// AllFinite 判断切片元素是否全部为有限值
func AllFinite[T constraints.Float](s []T) bool {
	for _, v := range s {
		if !IsFinite(v) {
			return false
		}
	}
	return true
}
