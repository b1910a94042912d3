package graph

import (
	"errors"
	"math"
	"testing"

	"vcid/element"
)

func exampleComponents() []element.Component {
	return []element.Component{
		element.CurrentDc{Anode: 2, Cathode: 0, Current: 1},
		element.Resistor{Pin1: 1, Pin2: 0, R: 5},
		element.Diode{Anode: 2, Cathode: 1, Is: 1e-9, N: 2},
	}
}

func TestNew(t *testing.T) {
	g, err := New(3, 0, exampleComponents(), nil)
	if err != nil {
		t.Fatalf("创建扩散图失败: %v", err)
	}
	if !g.Fixed[0] || g.Fixed[1] || g.Fixed[2] {
		t.Errorf("固定节点不正确: %v", g.Fixed)
	}
	if n := g.FreeNodes(); n != 2 {
		t.Errorf("自由节点数量不正确: %d", n)
	}
	// 节点2 关联电流源(阳极)与二极管(阳极)
	want := []Branch{{Component: 0, Sign: 1}, {Component: 2, Sign: 1}}
	if len(g.Branches[2]) != len(want) {
		t.Fatalf("节点2关联数量不正确: %v", g.Branches[2])
	}
	for i, b := range want {
		if g.Branches[2][i] != b {
			t.Errorf("节点2关联 %d 不正确: 期望 %v, 实际 %v", i, b, g.Branches[2][i])
		}
	}
	if len(g.Links) != 3 {
		t.Fatalf("扩散连接数量不正确: %v", g.Links)
	}
	if l := g.Links[2]; l.A != 1 || l.B != 2 || l.Elastance != 1 {
		t.Errorf("二极管连接不正确: %+v", l)
	}
	if len(g.Isolated()) != 0 {
		t.Errorf("不应存在孤立节点: %v", g.Isolated())
	}
}

func TestParallelMerge(t *testing.T) {
	comps := []element.Component{
		element.Resistor{Pin1: 1, Pin2: 0, R: 2},
		element.Resistor{Pin1: 0, Pin2: 1, R: 4},
		element.Resistor{Pin1: 1, Pin2: 1, R: 1},
	}
	g, err := New(2, 0, comps, element.ConductanceElastance(1))
	if err != nil {
		t.Fatalf("创建扩散图失败: %v", err)
	}
	if len(g.Links) != 1 {
		t.Fatalf("并联元件应合并为一条连接: %v", g.Links)
	}
	l := g.Links[0]
	if l.A != 0 || l.B != 1 || math.Abs(l.Elastance-0.75) > 1e-15 {
		t.Errorf("合并连接不正确: %+v", l)
	}
	// 自环元件不参与关联
	if len(g.Branches[1]) != 2 {
		t.Errorf("自环元件不应加入关联列表: %v", g.Branches[1])
	}
	if g.Pins[2] != [2]int{1, 1} {
		t.Errorf("自环元件引脚不正确: %v", g.Pins[2])
	}
}

func TestIsolated(t *testing.T) {
	comps := []element.Component{element.CurrentDc{Anode: 1, Cathode: 2, Current: 1}}
	g, err := New(3, 0, comps, func(element.Component) float64 { return 0 })
	if err != nil {
		t.Fatalf("创建扩散图失败: %v", err)
	}
	got := g.Isolated()
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("孤立节点不正确: %v", got)
	}
}

func TestNewErrors(t *testing.T) {
	tests := []struct {
		name   string
		n, gnd int
		comps  []element.Component
		e      element.Elastance
		want   error
	}{
		{"零节点", 0, 0, nil, nil, ErrNodeRange},
		{"地节点越界", 2, 2, nil, nil, ErrNodeRange},
		{"负地节点", 2, -1, nil, nil, ErrNodeRange},
		{"引脚越界", 2, 0, []element.Component{element.Resistor{Pin1: 0, Pin2: 2, R: 1}}, nil, ErrNodeRange},
		{"负引脚", 2, 0, []element.Component{element.Resistor{Pin1: -1, Pin2: 1, R: 1}}, nil, ErrNodeRange},
		{"空元件", 2, 0, []element.Component{nil}, nil, ErrNodeRange},
		{"负倒电容", 2, 0, []element.Component{element.Resistor{Pin1: 0, Pin2: 1, R: 1}},
			func(element.Component) float64 { return -1 }, ErrElastance},
		{"NaN倒电容", 2, 0, []element.Component{element.Resistor{Pin1: 0, Pin2: 1, R: 1}},
			func(element.Component) float64 { return math.NaN() }, ErrElastance},
	}
	for _, tt := range tests {
		if _, err := New(tt.n, tt.gnd, tt.comps, tt.e); !errors.Is(err, tt.want) {
			t.Errorf("%s: 期望 %v, 实际 %v", tt.name, tt.want, err)
		}
	}
}
