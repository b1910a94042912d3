// Package reference 使用节点导纳矩阵与牛顿迭代求解直流工作点，用于校验电荷扩散结果。
package reference

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"vcid/element"
	"vcid/graph"
	"vcid/maths"
)

var (
	// ErrSingular 导纳矩阵奇异(存在浮空节点)
	ErrSingular = errors.New("导纳矩阵奇异")
	// ErrNotConverged 牛顿迭代未收敛
	ErrNotConverged = errors.New("牛顿迭代未收敛")
)

// Config 牛顿迭代配置
type Config struct {
	MaxIterations int     // 最大迭代次数
	Tolerance     float64 // 电压修正量收敛阈值 (V)
	MaxStep       float64 // 二极管结电压进入正向区后单步最大增量 (V)
	Gmin          float64 // 二极管并联最小电导 (S)
}

// DefaultConfig 默认配置
func DefaultConfig() Config {
	return Config{
		MaxIterations: 200,
		Tolerance:     1e-10,
		MaxStep:       0.5,
		Gmin:          1e-12,
	}
}

// Solution 求解结果
type Solution struct {
	Voltages   []float64 // 节点电压
	Iterations int       // 牛顿迭代次数
	Residual   float64   // 最大节点电流不平衡量 (A)
}

// stamper 只包含非固定节点的导纳矩阵与注入电流
type stamper struct {
	index []int // 节点在矩阵中的行号，固定节点为 -1
	J     *mat.Dense
	B     []float64
}

// StampConductance 加盖电导元件
func (s *stamper) StampConductance(n1, n2 int, g float64) {
	i, j := s.index[n1], s.index[n2]
	if i >= 0 {
		s.J.Set(i, i, s.J.At(i, i)+g)
	}
	if j >= 0 {
		s.J.Set(j, j, s.J.At(j, j)+g)
	}
	if i >= 0 && j >= 0 {
		s.J.Set(i, j, s.J.At(i, j)-g)
		s.J.Set(j, i, s.J.At(j, i)-g)
	}
}

// StampCurrent 流入 n1 的电流 i，n2 为其相反数
func (s *stamper) StampCurrent(n1, n2 int, i float64) {
	if k := s.index[n1]; k >= 0 {
		s.B[k] += i
	}
	if k := s.index[n2]; k >= 0 {
		s.B[k] -= i
	}
}

// delta 节点的牛顿修正量，固定节点为 0
func (s *stamper) delta(step []float64, n int) float64 {
	if k := s.index[n]; k >= 0 {
		return step[k]
	}
	return 0
}

// limit 整步缩放系数，使每个二极管结电压越过 0 V 之后的增量不超过 maxStep
// 结电压下降与线性元件不受限制
func (s *stamper) limit(g *graph.Graph, v, step []float64, maxStep float64) float64 {
	scale := 1.0
	for k, c := range g.Components {
		if _, ok := c.(element.Diode); !ok {
			continue
		}
		p := g.Pins[k]
		if p[0] == p[1] {
			continue
		}
		vd := v[p[0]] - v[p[1]]
		dvd := s.delta(step, p[0]) - s.delta(step, p[1])
		allowed := max(0, -vd) + maxStep
		if dvd > allowed {
			scale = min(scale, allowed/dvd)
		}
	}
	return scale
}

// KCL 每个节点流入电流之和，固定节点为 0
func KCL(g *graph.Graph, v []float64) []float64 {
	sum := make([]float64, g.NodeCount)
	for k, c := range g.Components {
		p := g.Pins[k]
		if p[0] == p[1] {
			continue
		}
		i := c.CurrentInto(v[p[0]], v[p[1]])
		sum[p[0]] += i
		sum[p[1]] -= i
	}
	for n, fixed := range g.Fixed {
		if fixed {
			sum[n] = 0
		}
	}
	return sum
}

// Solve 牛顿迭代求解直流工作点
func Solve(g *graph.Graph, cfgs ...func(*Config)) (*Solution, error) {
	cfg := DefaultConfig()
	for _, f := range cfgs {
		f(&cfg)
	}
	s := &stamper{index: make([]int, g.NodeCount)}
	n := 0
	for i, fixed := range g.Fixed {
		if fixed {
			s.index[i] = -1
			continue
		}
		s.index[i] = n
		n++
	}
	v := make([]float64, g.NodeCount)
	sol := &Solution{Voltages: v}
	if n == 0 {
		return sol, nil
	}
	s.J, s.B = mat.NewDense(n, n, nil), make([]float64, n)
	var dx mat.VecDense
	for sol.Iterations < cfg.MaxIterations {
		sol.Iterations++
		s.J.Zero()
		clear(s.B)
		for k, c := range g.Components {
			p := g.Pins[k]
			if p[0] == p[1] {
				continue
			}
			v1, v2 := v[p[0]], v[p[1]]
			s.StampCurrent(p[0], p[1], c.CurrentInto(v1, v2))
			switch e := c.(type) {
			case element.Resistor:
				s.StampConductance(p[0], p[1], e.Conductance())
			case element.Diode:
				s.StampConductance(p[0], p[1], e.DynamicConductance(v1-v2)+cfg.Gmin)
			}
		}
		if err := dx.SolveVec(s.J, mat.NewVecDense(n, s.B)); err != nil {
			var cond mat.Condition
			if !errors.As(err, &cond) || math.IsInf(float64(cond), 1) {
				return sol, fmt.Errorf("%w: %v", ErrSingular, err)
			}
		}
		step := dx.RawVector().Data
		m, scale := maths.MaxAbs(step), s.limit(g, v, step, cfg.MaxStep)
		for i, k := range s.index {
			if k >= 0 {
				v[i] += scale * step[k]
			}
		}
		if m < cfg.Tolerance {
			sol.Residual = maths.MaxAbs(KCL(g, v))
			return sol, nil
		}
	}
	sol.Residual = maths.MaxAbs(KCL(g, v))
	return sol, fmt.Errorf("%w: %d 次迭代后残差 %g", ErrNotConverged, sol.Iterations, sol.Residual)
}
