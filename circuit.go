package vcid

import (
	"errors"
	"fmt"
	"strings"

	"vcid/element"
	"vcid/graph"
)

var (
	// ErrInvalidCircuit 节点数量或地节点无效
	ErrInvalidCircuit = errors.New("电路定义无效")
	// ErrPinOutOfRange 元件引脚节点越界
	ErrPinOutOfRange = errors.New("元件引脚节点越界")
)

// PinError 元件引脚越界错误
type PinError struct {
	Component int // 元件序号
	Pin       int // 引脚序号，从 1 开始
	Node      int // 引脚节点
	NodeCount int // 节点数量
}

func (e *PinError) Error() string {
	return fmt.Sprintf("%s: 元件 %d 引脚 %d 节点 %d 不在 [0,%d) 内", ErrPinOutOfRange, e.Component, e.Pin, e.Node, e.NodeCount)
}

func (e *PinError) Unwrap() error { return ErrPinOutOfRange }

// Circuit 电路
// 节点由 0..NodeCount-1 编号，Ground 为电压恒为 0 的参考节点。
type Circuit struct {
	NodeCount  int                 // 节点数量(含地)
	Ground     int                 // 地节点
	Components []element.Component // 元件列表，按添加顺序
}

// NewCircuit 初始化
func NewCircuit(nodeCount, ground int) (*Circuit, error) {
	if nodeCount <= 0 {
		return nil, fmt.Errorf("%w: 节点数量必须为正: %d", ErrInvalidCircuit, nodeCount)
	}
	if ground < 0 || ground >= nodeCount {
		return nil, fmt.Errorf("%w: 地节点 %d 不在 [0,%d) 内", ErrInvalidCircuit, ground, nodeCount)
	}
	return &Circuit{NodeCount: nodeCount, Ground: ground}, nil
}

// check 检查元件引脚与参数，id 为元件序号
func (c *Circuit) check(id int, comp element.Component) error {
	if comp == nil {
		return fmt.Errorf("元件 %d: %w: 元件为空", id, element.ErrInvalidParameter)
	}
	p1, p2 := comp.Pins()
	for pin, n := range [2]int{p1, p2} {
		if n < 0 || n >= c.NodeCount {
			return &PinError{Component: id, Pin: pin + 1, Node: n, NodeCount: c.NodeCount}
		}
	}
	if err := comp.Validate(); err != nil {
		return fmt.Errorf("元件 %d(%s): %w", id, comp.Type(), err)
	}
	return nil
}

// AddComponent 添加元件，引脚越界或参数无效时返回错误且不添加
func (c *Circuit) AddComponent(comp element.Component) error {
	if err := c.check(len(c.Components), comp); err != nil {
		return err
	}
	c.Components = append(c.Components, comp)
	return nil
}

// MustAddComponent 添加元件，失败时 panic
func (c *Circuit) MustAddComponent(comp ...element.Component) *Circuit {
	for _, v := range comp {
		if err := c.AddComponent(v); err != nil {
			panic(err)
		}
	}
	return c
}

// Validate 检查整个电路，用于字面量构造的电路
func (c *Circuit) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: 电路为空", ErrInvalidCircuit)
	}
	if c.NodeCount <= 0 {
		return fmt.Errorf("%w: 节点数量必须为正: %d", ErrInvalidCircuit, c.NodeCount)
	}
	if c.Ground < 0 || c.Ground >= c.NodeCount {
		return fmt.Errorf("%w: 地节点 %d 不在 [0,%d) 内", ErrInvalidCircuit, c.Ground, c.NodeCount)
	}
	for id, comp := range c.Components {
		if err := c.check(id, comp); err != nil {
			return err
		}
	}
	return nil
}

// Graph 得到电荷扩散图
func (c *Circuit) Graph(elastance element.Elastance) (*graph.Graph, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return graph.New(c.NodeCount, c.Ground, c.Components, elastance)
}

func (c *Circuit) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "nodes=%d ground=%d\n", c.NodeCount, c.Ground)
	for id, comp := range c.Components {
		fmt.Fprintf(&b, "%d: %v\n", id, comp)
	}
	return b.String()
}
