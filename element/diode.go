package element

import (
	"fmt"
	"math"

	"vcid/types"
)

// Diode 理想二极管(肖克利方程)
type Diode struct {
	Anode, Cathode int     // 阳极、阴极节点
	Is             float64 // 反向饱和电流 (A)
	N              float64 // 发射系数
}

func (Diode) component() {}

// Type 类型
func (Diode) Type() Type { return TypeDiode }

// Pins 引脚节点
func (d Diode) Pins() (int, int) { return d.Anode, d.Cathode }

// exponent 指数项 vd/(N*Vt)，钳位在 types.ExpLimit 以内防止溢出
func (d Diode) exponent(vd float64) (x float64, clamped bool) {
	x = vd / (d.N * types.ThermalVoltage)
	if x > types.ExpLimit {
		return types.ExpLimit, true
	}
	return x, false
}

// ForwardCurrent 正向电流 Id = Is*(exp(vd/(N*Vt))-1)，vd 为阳极减阴极电压
func (d Diode) ForwardCurrent(vd float64) float64 {
	x, _ := d.exponent(vd)
	return d.Is * math.Expm1(x)
}

// DynamicConductance 小信号电导 dId/dvd，超出钳位区间后电流恒定，电导为 0
func (d Diode) DynamicConductance(vd float64) float64 {
	x, clamped := d.exponent(vd)
	if clamped {
		return 0
	}
	return d.Is / (d.N * types.ThermalVoltage) * math.Exp(x)
}

// CurrentInto 正向偏置时电流从阳极节点流出、流入阴极节点
func (d Diode) CurrentInto(v1, v2 float64) float64 {
	return -d.ForwardCurrent(v1 - v2)
}

// Validate 饱和电流与发射系数必须为有限正数
func (d Diode) Validate() error {
	if !(d.Is > 0) || math.IsInf(d.Is, 1) {
		return fmt.Errorf("%w: 饱和电流必须为正: %g", ErrInvalidParameter, d.Is)
	}
	if !(d.N > 0) || math.IsInf(d.N, 1) {
		return fmt.Errorf("%w: 发射系数必须为正: %g", ErrInvalidParameter, d.N)
	}
	return nil
}

func (d Diode) String() string {
	return fmt.Sprintf("D[%d,%d](Is=%g N=%g)", d.Anode, d.Cathode, d.Is, d.N)
}
