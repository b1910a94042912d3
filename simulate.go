package vcid

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"vcid/element"
	"vcid/graph"
	"vcid/op"
)

// SimulateOP 求解直流工作点，返回每个节点的电压
// maxIterations <= 0 时使用默认上限 types.MaxIterations，未收敛时返回最后接受的电压。
// 参数无效(tau/tol 非正、电路无效)时 panic。
func SimulateOP(c *Circuit, tau, tol float64, maxIterations int) []float64 {
	res, err := Simulate(c, tau, tol, maxIterations)
	if err != nil && !errors.Is(err, op.ErrNotConverged) {
		panic(err)
	}
	return res.Voltages
}

// Simulate 求解直流工作点，cfgs 依次修改默认配置
func Simulate(c *Circuit, tau, tol float64, maxIterations int, cfgs ...func(*op.Config)) (*op.Result, error) {
	return SimulateContext(context.Background(), c, tau, tol, maxIterations, cfgs...)
}

// SimulateContext 同 Simulate，每次迭代检查 ctx
func SimulateContext(ctx context.Context, c *Circuit, tau, tol float64, maxIterations int, cfgs ...func(*op.Config)) (*op.Result, error) {
	cfg := op.DefaultConfig()
	for _, f := range cfgs {
		f(&cfg)
	}
	if maxIterations > 0 {
		cfg.MaxIterations = maxIterations
	}
	g, err := c.Graph(cfg.Elastance)
	if errors.Is(err, graph.ErrElastance) {
		return nil, fmt.Errorf("%w: %w", op.ErrInvalidArgument, err)
	}
	if err != nil {
		return nil, err
	}
	return op.Run(ctx, g, tau, tol, cfg)
}

// WithLogger 设置日志
func WithLogger(logger *slog.Logger) func(*op.Config) {
	return func(cfg *op.Config) { cfg.Logger = logger }
}

// WithObserver 追加过程观察者
func WithObserver(obs ...op.Observer) func(*op.Config) {
	return func(cfg *op.Config) {
		list := op.Observers{}
		if cfg.Observer != nil {
			list = append(list, cfg.Observer)
		}
		cfg.Observer = append(list, obs...)
	}
}

// WithWorkers 设置并行数量
func WithWorkers(n int) func(*op.Config) {
	return func(cfg *op.Config) { cfg.Workers = n }
}

// WithElastance 设置虚拟倒电容策略
func WithElastance(e element.Elastance) func(*op.Config) {
	return func(cfg *op.Config) { cfg.Elastance = e }
}

// WithInitialVoltages 设置初始节点电压
func WithInitialVoltages(v []float64) func(*op.Config) {
	return func(cfg *op.Config) { cfg.InitialVoltages = v }
}
