package types

// 物理常量定义
const (
	ThermalVoltage = 0.025852 // 室温热电压 Vt (V)
	ExpLimit       = 40.0     // 二极管指数项 vd/(N*Vt) 的钳位上限
)

// 默认参数常量定义
var (
	Tolerance     = 1e-3   // 收敛容差
	VirtualTime   = 0.05   // 虚拟时间步长 tau
	MaxIterations = 100000 // 未指定上限时的最大迭代次数
	Elastance     = 1.0    // 名义虚拟倒电容 (1/F)
	AlphaMax      = 1.0    // 阻尼系数上限，同时也是初始值
	AlphaMin      = 1e-9   // 阻尼系数下限
	AlphaGrow     = 1.1    // 残差下降时的阻尼放大倍数
	AlphaShrink   = 0.5    // 残差上升时的阻尼缩小倍数
)
