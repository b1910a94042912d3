package element

import (
	"fmt"
	"math"
)

// CurrentDc 直流电流源，电流在内部由阴极流向阳极
type CurrentDc struct {
	Anode, Cathode int     // 注入节点、抽出节点
	Current        float64 // 电流 (A)，可为负
}

func (CurrentDc) component() {}

// Type 类型
func (CurrentDc) Type() Type { return TypeCurrentDc }

// Pins 引脚节点
func (s CurrentDc) Pins() (int, int) { return s.Anode, s.Cathode }

// CurrentInto 与电压无关，恒定注入阳极节点
func (s CurrentDc) CurrentInto(_, _ float64) float64 { return s.Current }

// Validate 电流必须为有限值
func (s CurrentDc) Validate() error {
	if math.IsNaN(s.Current) || math.IsInf(s.Current, 0) {
		return fmt.Errorf("%w: 电流必须为有限值: %g", ErrInvalidParameter, s.Current)
	}
	return nil
}

func (s CurrentDc) String() string {
	return fmt.Sprintf("I[%d,%d](%gA)", s.Anode, s.Cathode, s.Current)
}
