package op

import (
	"fmt"
	"log/slog"

	"vcid/element"
	"vcid/maths"
	"vcid/types"
)

// Config 求解配置
type Config struct {
	MaxIterations   int               // 试探步上限，<=0 使用 types.MaxIterations
	AlphaMax        float64           // 阻尼系数上限，也是初始值
	AlphaMin        float64           // 阻尼系数下限
	AlphaGrow       float64           // 接受后的放大倍数
	AlphaShrink     float64           // 拒绝后的缩小倍数
	Elastance       element.Elastance // 虚拟倒电容策略，nil 使用名义值
	InitialVoltages []float64         // 初始节点电压，nil 表示全 0
	Workers         int               // 并行计算数量，<=1 串行
	Logger          *slog.Logger      // 日志，nil 不输出
	Observer        Observer          // 过程观察者
}

// DefaultConfig 默认配置
func DefaultConfig() Config {
	return Config{
		AlphaMax:    types.AlphaMax,
		AlphaMin:    types.AlphaMin,
		AlphaGrow:   types.AlphaGrow,
		AlphaShrink: types.AlphaShrink,
		Elastance:   element.NominalElastance,
	}
}

// Validate 检查配置，nodeCount 用于检查初始电压长度
func (c *Config) Validate(nodeCount int) error {
	switch {
	case !(c.AlphaMin > 0) || !maths.IsFinite(c.AlphaMin):
		return fmt.Errorf("%w: 阻尼下限必须为正: %g", ErrInvalidArgument, c.AlphaMin)
	case !(c.AlphaMax >= c.AlphaMin) || !maths.IsFinite(c.AlphaMax):
		return fmt.Errorf("%w: 阻尼上限 %g 小于下限 %g", ErrInvalidArgument, c.AlphaMax, c.AlphaMin)
	case !(c.AlphaGrow >= 1) || !maths.IsFinite(c.AlphaGrow):
		return fmt.Errorf("%w: 阻尼放大倍数必须不小于 1: %g", ErrInvalidArgument, c.AlphaGrow)
	case !(c.AlphaShrink > 0 && c.AlphaShrink < 1):
		return fmt.Errorf("%w: 阻尼缩小倍数必须在 (0,1) 内: %g", ErrInvalidArgument, c.AlphaShrink)
	case c.Workers < 0:
		return fmt.Errorf("%w: 并行数量不能为负: %d", ErrInvalidArgument, c.Workers)
	}
	if c.InitialVoltages != nil {
		if len(c.InitialVoltages) != nodeCount {
			return fmt.Errorf("%w: 初始电压长度 %d 与节点数量 %d 不一致", ErrInvalidArgument, len(c.InitialVoltages), nodeCount)
		}
		if !maths.AllFinite(c.InitialVoltages) {
			return fmt.Errorf("%w: 初始电压包含非有限值", ErrInvalidArgument)
		}
	}
	return nil
}

// limit 实际使用的试探步上限
func (c *Config) limit() int {
	if c.MaxIterations <= 0 {
		return types.MaxIterations
	}
	return c.MaxIterations
}
