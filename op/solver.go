package op

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"vcid/graph"
	"vcid/maths"
)

// point 一组节点电压及其电荷、扩散量
type point struct {
	V        []float64 // 节点电压
	Q        []float64 // 节点虚拟电荷
	Delta    []float64 // 电荷扩散得到的电压修正
	Merit    float64   // sum(Q*Delta)
	Residual float64   // max|Delta|
}

func newPoint(n int) *point {
	return &point{V: make([]float64, n), Q: make([]float64, n), Delta: make([]float64, n)}
}

// state 单次求解的工作区
type state struct {
	g       *graph.Graph
	tau     float64
	workers int
	branch  []float64 // 元件电流，流入第一个引脚为正
}

// parallel 将 [0,n) 分块执行，每个下标只由一个分块处理
func (s *state) parallel(n int, fn func(lo, hi int)) {
	if s.workers <= 1 || n <= 1 {
		fn(0, n)
		return
	}
	var eg errgroup.Group
	eg.SetLimit(s.workers)
	chunk := (n + s.workers - 1) / s.workers
	for lo := 0; lo < n; lo += chunk {
		lo := lo
		hi := min(lo+chunk, n)
		eg.Go(func() error {
			fn(lo, hi)
			return nil
		})
	}
	eg.Wait()
}

// eval 由 p.V 计算电荷、扩散量、评价值与残差
func (s *state) eval(p *point) {
	g := s.g
	// 元件电流，同一快照只计算一次
	s.parallel(len(g.Components), func(lo, hi int) {
		for k := lo; k < hi; k++ {
			pin := g.Pins[k]
			if pin[0] == pin[1] {
				s.branch[k] = 0
				continue
			}
			s.branch[k] = g.Components[k].CurrentInto(p.V[pin[0]], p.V[pin[1]])
		}
	})
	// 节点电荷，按元件顺序求和
	s.parallel(g.NodeCount, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			if g.Fixed[i] {
				p.Q[i] = 0
				continue
			}
			var sum float64
			for _, b := range g.Branches[i] {
				sum += b.Sign * s.branch[b.Component]
			}
			p.Q[i] = s.tau * sum
		}
	})
	// 电荷扩散
	s.parallel(g.NodeCount, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			if g.Fixed[i] {
				p.Delta[i] = 0
				continue
			}
			var sum float64
			for _, e := range g.Neighbors[i] {
				sum += e.Elastance * (p.Q[i] - p.Q[e.Node])
			}
			p.Delta[i] = sum
		}
	})
	p.Merit = floats.Dot(p.Q, p.Delta)
	p.Residual = floats.Norm(p.Delta, math.Inf(1))
}

// Run 虚拟电荷扩散求解直流工作点
// 每次试探步 V' = V + alpha*Delta，评价值不增大时接受并放大阻尼系数，否则拒绝并缩小。
// 达到上限返回 ErrNotConverged，上下文取消返回 ctx.Err()，两种情况都返回当前最优结果。
func Run(ctx context.Context, g *graph.Graph, tau, tol float64, cfg Config) (*Result, error) {
	if !(tau > 0) || !maths.IsFinite(tau) {
		return nil, fmt.Errorf("%w: 虚拟时间必须为有限正数: %g", ErrInvalidArgument, tau)
	}
	if !(tol > 0) || !maths.IsFinite(tol) {
		return nil, fmt.Errorf("%w: 容差必须为有限正数: %g", ErrInvalidArgument, tol)
	}
	if err := cfg.Validate(g.NodeCount); err != nil {
		return nil, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)}))
	}
	obs := cfg.Observer
	if obs == nil {
		obs = nopObserver{}
	}
	s := &state{g: g, tau: tau, workers: cfg.Workers, branch: make([]float64, len(g.Components))}
	cur, next := newPoint(g.NodeCount), newPoint(g.NodeCount)
	if cfg.InitialVoltages != nil {
		copy(cur.V, cfg.InitialVoltages)
	}
	for i, fixed := range g.Fixed {
		if fixed {
			cur.V[i] = 0
		}
	}
	logger.Debug("开始求解", "nodes", g.NodeCount, "free", g.FreeNodes(), "links", len(g.Links), "tau", tau, "tol", tol)
	if isolated := g.Isolated(); len(isolated) > 0 {
		logger.Warn("存在没有扩散路径的节点，电压不会被修正", "nodes", isolated)
	}
	s.eval(cur)
	obs.Init(g)

	limit := cfg.limit()
	alpha := cfg.AlphaMax
	res := &Result{}
	var err error
	for {
		if cur.Residual < tol {
			res.Status, res.Converged = StatusConverged, true
			break
		}
		if res.Iterations >= limit {
			res.Status = StatusExhausted
			err = fmt.Errorf("%w: %d 次迭代后残差 %g 仍不小于容差 %g", ErrNotConverged, res.Iterations, cur.Residual, tol)
			break
		}
		if err = ctx.Err(); err != nil {
			res.Status = StatusCanceled
			break
		}
		res.Iterations++
		for i := range cur.V {
			next.V[i] = cur.V[i] + alpha*cur.Delta[i]
		}
		s.eval(next)
		tried := alpha
		accepted := maths.IsFinite(next.Merit) && (next.Merit <= cur.Merit || alpha <= cfg.AlphaMin)
		if accepted {
			cur, next = next, cur
			alpha = maths.Clamp(alpha*cfg.AlphaGrow, cfg.AlphaMin, cfg.AlphaMax)
		} else {
			res.Rejected++
			alpha = maths.Clamp(alpha*cfg.AlphaShrink, cfg.AlphaMin, cfg.AlphaMax)
			logger.Debug("试探步被拒绝", "iteration", res.Iterations, "alpha", tried, "merit", cur.Merit, "trial", next.Merit)
		}
		obs.Update(Iteration{
			Index:    res.Iterations,
			Accepted: accepted,
			Alpha:    tried,
			Residual: cur.Residual,
			Merit:    cur.Merit,
			Voltages: cur.V,
		})
	}
	res.Voltages = append([]float64(nil), cur.V...)
	res.Residual, res.Merit, res.Alpha = cur.Residual, cur.Merit, alpha
	switch res.Status {
	case StatusConverged:
		logger.Info("工作点收敛", "iterations", res.Iterations, "rejected", res.Rejected, "residual", res.Residual, "alpha", alpha)
	case StatusExhausted:
		logger.Warn("达到最大迭代次数", "iterations", res.Iterations, "rejected", res.Rejected, "residual", res.Residual, "alpha", alpha)
	case StatusCanceled:
		logger.Warn("求解被取消", "iterations", res.Iterations, "error", err)
	}
	obs.Finish(res)
	return res, err
}
