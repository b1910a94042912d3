package debug

import (
	"encoding/json"
	"fmt"
	"io"

	"vcid/graph"
	"vcid/op"
)

// Record 记录求解过程
type Record struct {
	Nodes      []string    // 节点名称
	Elements   []string    // 元件列表
	Pins       [][2]int    // 元件引脚节点
	Ground     int         // 地节点
	Index      []int       // 试探步序号
	Accepted   []bool      // 是否被接受
	Alpha      []float64   // 阻尼系数列
	Residual   []float64   // 残差列
	Merit      []float64   // 评价值列
	Voltage    [][]float64 // 电压列
	Status     string      // 结束状态
	Iterations int         // 试探步数量
	Rejected   int         // 拒绝数量
}

// Init 初始化
func (list *Record) Init(g *graph.Graph) {
	*list = Record{Ground: g.Ground, Pins: append([][2]int(nil), g.Pins...)}
	for i := 0; i < g.NodeCount; i++ {
		if i == g.Ground {
			list.Nodes = append(list.Nodes, "Gnd")
			continue
		}
		list.Nodes = append(list.Nodes, fmt.Sprintf("Node(%d)", i))
	}
	for i, c := range g.Components {
		list.Elements = append(list.Elements, fmt.Sprintf("%s(%d)", c.Type(), i))
	}
}

// Update 记录数据
func (list *Record) Update(it op.Iteration) {
	list.Index = append(list.Index, it.Index)
	list.Accepted = append(list.Accepted, it.Accepted)
	list.Alpha = append(list.Alpha, it.Alpha)
	list.Residual = append(list.Residual, it.Residual)
	list.Merit = append(list.Merit, it.Merit)
	list.Voltage = append(list.Voltage, append([]float64{}, it.Voltages...))
}

// Finish 记录结束状态
func (list *Record) Finish(res *op.Result) {
	list.Status = res.Status.String()
	list.Iterations = res.Iterations
	list.Rejected = res.Rejected
}

// Render 格式和输出内容
func (list *Record) Render(w io.Writer) error { return json.NewEncoder(w).Encode(list) }
