package element

import (
	"fmt"
	"math"
)

// Resistor 电阻
type Resistor struct {
	Pin1, Pin2 int     // 引脚节点
	R          float64 // 阻值 (Ω)
}

func (Resistor) component() {}

// Type 类型
func (Resistor) Type() Type { return TypeResistor }

// Pins 引脚节点
func (r Resistor) Pins() (int, int) { return r.Pin1, r.Pin2 }

// CurrentInto 欧姆定律，v2 > v1 时电流流入 Pin1
func (r Resistor) CurrentInto(v1, v2 float64) float64 {
	return (v2 - v1) / r.R
}

// Conductance 电导 (S)
func (r Resistor) Conductance() float64 { return 1 / r.R }

// Validate 阻值必须为有限正数
func (r Resistor) Validate() error {
	if !(r.R > 0) || math.IsInf(r.R, 1) {
		return fmt.Errorf("%w: 电阻值必须为正: %g", ErrInvalidParameter, r.R)
	}
	return nil
}

func (r Resistor) String() string {
	return fmt.Sprintf("R[%d,%d](%gΩ)", r.Pin1, r.Pin2, r.R)
}
