package debug

import (
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// Charts 曲线绘制
type Charts struct {
	Record
}

// lineChart 按试探步绘制的曲线
func lineChart(title, subtitle, yType string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: subtitle,
		}),
		charts.WithLegendOpts(opts.Legend{
			Type:   "scroll",
			Orient: "vertical",
			Right:  "10",
			Top:    "20",
			Bottom: "20",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name:        "迭代",
			SplitNumber: 20,
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type:  yType,
			Scale: opts.Bool(true),
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			XAxisIndex: []int{0},
		}),
		charts.WithAnimation(false),
	)
	return line
}

// circuitGraph 元件与节点连接图
func (c *Charts) circuitGraph() *charts.Graph {
	graph := charts.NewGraph()
	graph.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "电路节点信息",
			Subtitle: "电路连接节点网络图",
		}),
	)
	nodes := make([]opts.GraphNode, 0, len(c.Nodes)+len(c.Elements))
	for i, n := range c.Nodes {
		node := opts.GraphNode{Name: n, Category: 1, Tooltip: &opts.Tooltip{Show: opts.Bool(true)}}
		if i == c.Ground {
			node.ItemStyle = &opts.ItemStyle{Color: "#000000de"}
		}
		nodes = append(nodes, node)
	}
	links := make([]opts.GraphLink, 0, 2*len(c.Elements))
	for i, e := range c.Elements {
		nodes = append(nodes, opts.GraphNode{Name: e, Category: 0, Tooltip: &opts.Tooltip{Show: opts.Bool(true)}})
		for pin, n := range c.Pins[i] {
			links = append(links, opts.GraphLink{Source: e, Target: c.Nodes[n], Value: float32(pin + 1)})
		}
	}
	graph.AddSeries("电路列表", nodes, links,
		charts.WithGraphChartOpts(opts.GraphChart{
			Categories: []*opts.GraphCategory{
				{Name: "元件", ItemStyle: &opts.ItemStyle{Color: "#c71979b7"}},
				{Name: "节点", ItemStyle: &opts.ItemStyle{Color: "#1987c7b7"}},
			},
			Roam:               opts.Bool(true),
			Force:              &opts.GraphForce{Repulsion: 80},
			EdgeLabel:          &opts.EdgeLabel{Show: opts.Bool(true)},
			FocusNodeAdjacency: opts.Bool(true),
		}))
	return graph
}

// Render 格式化
func (c *Charts) Render(w io.Writer) error {
	lineV := lineChart("电压曲线", "节点电压随迭代变化曲线", "value")
	lineR := lineChart("残差曲线", "接受点残差 max|Delta|", "log")
	lineA := lineChart("阻尼曲线", "试探步阻尼系数", "log")
	lineV.SetXAxis(c.Index)
	lineR.SetXAxis(c.Index)
	lineA.SetXAxis(c.Index)
	// 电压信息
	for n, name := range c.Nodes {
		items := make([]opts.LineData, len(c.Voltage))
		for i, v := range c.Voltage {
			items[i].Value = v[n]
		}
		lineV.AddSeries(name, items)
	}
	// 残差与阻尼，对数坐标跳过非正值
	residual := make([]opts.LineData, len(c.Residual))
	for i, r := range c.Residual {
		if r > 0 {
			residual[i].Value = r
		}
	}
	lineR.AddSeries("Residual", residual)
	accepted := make([]opts.LineData, len(c.Alpha))
	rejected := make([]opts.LineData, len(c.Alpha))
	for i, a := range c.Alpha {
		if c.Accepted[i] {
			accepted[i].Value = a
		} else {
			rejected[i].Value = a
		}
	}
	lineA.AddSeries("Accepted", accepted)
	lineA.AddSeries("Rejected", rejected)
	// 构建界面
	page := components.NewPage()
	page.SetPageTitle(fmt.Sprintf("工作点求解 %s(%d)", c.Status, c.Iterations))
	page.AddCharts(
		c.circuitGraph(),
		lineV,
		lineR,
		lineA,
	)
	return page.Render(w)
}

// Handler 发布到网页面
func (c *Charts) Handler(w http.ResponseWriter, _ *http.Request) {
	if err := c.Render(w); err != nil {
		c.Error(err)
	}
}

func (c *Charts) Error(err error) { log.Println(err) }
