package graph

import (
	"errors"
	"fmt"
	"math"

	"vcid/element"
)

var (
	// ErrNodeRange 节点索引越界
	ErrNodeRange = errors.New("节点索引越界")
	// ErrElastance 倒电容策略返回了无效值
	ErrElastance = errors.New("虚拟倒电容无效")
)

// Branch 节点与元件的关联，Sign 为 +1 表示节点接在元件第一个引脚上，-1 为第二个引脚
type Branch struct {
	Component int
	Sign      float64
}

// Edge 邻接节点及其扩散权重
type Edge struct {
	Node      int
	Elastance float64
}

// Link 两节点之间合并后的扩散连接
type Link struct {
	A, B      int     // A < B
	Elastance float64 // 所有并联元件倒电容之和
}

// Graph 电荷扩散图
type Graph struct {
	NodeCount  int                 // 节点数量(含地)
	Ground     int                 // 地节点
	Fixed      []bool              // 固定电压节点
	Components []element.Component // 元件列表
	Pins       [][2]int            // 元件引脚节点
	Branches   [][]Branch          // 节点关联的元件，按元件顺序
	Neighbors  [][]Edge            // 节点的扩散邻居，按连接顺序
	Links      []Link              // 扩散连接列表
}

// New 创建扩散图
func New(nodeCount, ground int, components []element.Component, elastance element.Elastance) (*Graph, error) {
	if nodeCount <= 0 {
		return nil, fmt.Errorf("%w: 节点数量必须为正: %d", ErrNodeRange, nodeCount)
	}
	if ground < 0 || ground >= nodeCount {
		return nil, fmt.Errorf("%w: 地节点 %d 不在 [0,%d) 内", ErrNodeRange, ground, nodeCount)
	}
	if elastance == nil {
		elastance = element.NominalElastance
	}
	g := &Graph{
		NodeCount:  nodeCount,
		Ground:     ground,
		Fixed:      make([]bool, nodeCount),
		Components: components,
		Pins:       make([][2]int, len(components)),
		Branches:   make([][]Branch, nodeCount),
		Neighbors:  make([][]Edge, nodeCount),
	}
	g.Fixed[ground] = true
	if err := g.init(elastance); err != nil {
		return nil, err
	}
	return g, nil
}

// init 建立关联列表与扩散连接
func (g *Graph) init(elastance element.Elastance) error {
	linkID := map[[2]int]int{}
	for id, c := range g.Components {
		if c == nil {
			return fmt.Errorf("%w: 元件 %d 为空", ErrNodeRange, id)
		}
		p1, p2 := c.Pins()
		for _, n := range [2]int{p1, p2} {
			if n < 0 || n >= g.NodeCount {
				return fmt.Errorf("%w: 元件 %d(%s) 引脚节点 %d 不在 [0,%d) 内", ErrNodeRange, id, c.Type(), n, g.NodeCount)
			}
		}
		g.Pins[id] = [2]int{p1, p2}
		// 自环元件两端电流相互抵消
		if p1 == p2 {
			continue
		}
		g.Branches[p1] = append(g.Branches[p1], Branch{Component: id, Sign: 1})
		g.Branches[p2] = append(g.Branches[p2], Branch{Component: id, Sign: -1})
		s := elastance(c)
		if math.IsNaN(s) || math.IsInf(s, 0) || s < 0 {
			return fmt.Errorf("%w: 元件 %d(%s): %g", ErrElastance, id, c.Type(), s)
		}
		if s == 0 {
			continue
		}
		key := [2]int{min(p1, p2), max(p1, p2)}
		if l, ok := linkID[key]; ok {
			g.Links[l].Elastance += s
			continue
		}
		linkID[key] = len(g.Links)
		g.Links = append(g.Links, Link{A: key[0], B: key[1], Elastance: s})
	}
	for _, l := range g.Links {
		g.Neighbors[l.A] = append(g.Neighbors[l.A], Edge{Node: l.B, Elastance: l.Elastance})
		g.Neighbors[l.B] = append(g.Neighbors[l.B], Edge{Node: l.A, Elastance: l.Elastance})
	}
	return nil
}

// FreeNodes 非固定节点数量
func (g *Graph) FreeNodes() int {
	n := 0
	for _, f := range g.Fixed {
		if !f {
			n++
		}
	}
	return n
}

// Isolated 有元件电流流入但没有扩散路径的非固定节点，这些节点的电压不会被修正
func (g *Graph) Isolated() []int {
	var list []int
	for i := 0; i < g.NodeCount; i++ {
		if !g.Fixed[i] && len(g.Branches[i]) > 0 && len(g.Neighbors[i]) == 0 {
			list = append(list, i)
		}
	}
	return list
}
