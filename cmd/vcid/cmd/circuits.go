package cmd

import (
	"fmt"
	"sort"

	"vcid"
	"vcid/element"
	"vcid/types"
)

// builtin 内置电路
type builtin struct {
	Description string
	Tau, Tol    float64 // 推荐的虚拟时间与容差
	Build       func() (*vcid.Circuit, error)
}

// build 依次添加元件
func build(nodeCount, ground int, comps ...element.Component) (*vcid.Circuit, error) {
	c, err := vcid.NewCircuit(nodeCount, ground)
	if err != nil {
		return nil, err
	}
	for _, comp := range comps {
		if err := c.AddComponent(comp); err != nil {
			return nil, err
		}
	}
	return c, nil
}

var circuits = map[string]builtin{
	"example": {
		Description: "1A source into a diode feeding two 5Ω loads",
		Tau:         types.VirtualTime,
		Tol:         types.Tolerance,
		Build: func() (*vcid.Circuit, error) {
			return build(3, 0,
				element.CurrentDc{Anode: 2, Cathode: 0, Current: 1},
				element.Resistor{Pin1: 0, Pin2: 1, R: 5},
				element.Diode{Anode: 2, Cathode: 1, Is: 170e-9, N: 2},
				element.Resistor{Pin1: 0, Pin2: 2, R: 5},
			)
		},
	},
	"divider": {
		Description: "1A source into 2Ω+3Ω in parallel with 6Ω",
		Tau:         types.VirtualTime,
		Tol:         1e-7,
		Build: func() (*vcid.Circuit, error) {
			return build(3, 0,
				element.CurrentDc{Anode: 1, Cathode: 0, Current: 1},
				element.Resistor{Pin1: 1, Pin2: 2, R: 2},
				element.Resistor{Pin1: 2, Pin2: 0, R: 3},
				element.Resistor{Pin1: 1, Pin2: 0, R: 6},
			)
		},
	},
	"ladder": {
		Description: "1mA into a four section 1kΩ/2kΩ ladder",
		Tau:         1000,
		Tol:         1e-9,
		Build: func() (*vcid.Circuit, error) {
			comps := []element.Component{element.CurrentDc{Anode: 4, Cathode: 0, Current: 1e-3}}
			for k := 0; k < 4; k++ {
				comps = append(comps, element.Resistor{Pin1: k, Pin2: k + 1, R: 1e3})
			}
			for k := 1; k <= 4; k++ {
				comps = append(comps, element.Resistor{Pin1: k, Pin2: 0, R: 2e3})
			}
			return build(5, 0, comps...)
		},
	},
	"clipper": {
		Description: "1A source into 5Ω shunted by two series diodes",
		Tau:         types.VirtualTime,
		Tol:         1e-6,
		Build: func() (*vcid.Circuit, error) {
			return build(3, 0,
				element.CurrentDc{Anode: 1, Cathode: 0, Current: 1},
				element.Resistor{Pin1: 1, Pin2: 0, R: 5},
				element.Diode{Anode: 1, Cathode: 2, Is: 1e-9, N: 1.5},
				element.Diode{Anode: 2, Cathode: 0, Is: 1e-9, N: 1.5},
			)
		},
	},
	"island": {
		Description: "source into a node with no DC return, never converges",
		Tau:         types.VirtualTime,
		Tol:         1e-3,
		Build: func() (*vcid.Circuit, error) {
			return build(3, 0,
				element.CurrentDc{Anode: 1, Cathode: 0, Current: 1},
				element.Resistor{Pin1: 1, Pin2: 2, R: 1},
			)
		},
	},
}

// circuitNames 排序后的内置电路名称
func circuitNames() []string {
	names := make([]string, 0, len(circuits))
	for name := range circuits {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// lookup 查找内置电路并构建
func lookup(name string) (builtin, *vcid.Circuit, error) {
	b, ok := circuits[name]
	if !ok {
		return b, nil, fmt.Errorf("unknown circuit %q, run `vcid examples` for the list", name)
	}
	c, err := b.Build()
	return b, c, err
}
