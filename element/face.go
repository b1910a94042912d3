package element

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter 元件参数无效
var ErrInvalidParameter = errors.New("元件参数无效")

// Type 元件类型
type Type uint8

// 元件类型常量定义
const (
	TypeUnknown   Type = iota // 未知类型
	TypeResistor              // 电阻
	TypeDiode                 // 二极管
	TypeCurrentDc             // 直流电流源
)

// typeName 元件名称映射
var typeName = map[Type]string{
	TypeUnknown:   "Unknown",
	TypeResistor:  "Resistor",
	TypeDiode:     "Diode",
	TypeCurrentDc: "CurrentDc",
}

// String 返回元件类型的字符串表示
func (t Type) String() string {
	if name, ok := typeName[t]; ok {
		return name
	}
	return fmt.Sprintf("Type(%d)", uint8(t))
}

// Component 二端元件接口
// 元件集合是封闭的，只有本包中的 Resistor、Diode、CurrentDc 实现该接口。
type Component interface {
	Type() Type                         // 元件类型
	Pins() (p1, p2 int)                 // 两个引脚对应的节点索引(pin1/pin2 或 anode/cathode)
	CurrentInto(v1, v2 float64) float64 // 由两引脚电压得到流入第一个引脚所在节点的电流，第二个引脚为其相反数
	Validate() error                    // 检查元件参数
	component()
}
