package debug

import (
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Plot 收敛过程静态图，默认字体不含中文字形，图中文字使用英文
type Plot struct {
	Record
	Width, Height vg.Length // 图片尺寸，0 使用默认值
}

// residualPlot 残差曲线，对数坐标
func (p *Plot) residualPlot() (*plot.Plot, error) {
	plt := plot.New()
	plt.Title.Text = "Residual"
	plt.X.Label.Text = "iteration"
	plt.Y.Label.Text = "max|Delta|"
	pts := make(plotter.XYs, 0, len(p.Residual))
	lo, hi := math.Inf(1), math.Inf(-1)
	for i, r := range p.Residual {
		if r <= 0 {
			continue
		}
		pts = append(pts, plotter.XY{X: float64(p.Index[i]), Y: r})
		lo, hi = math.Min(lo, r), math.Max(hi, r)
	}
	if err := plotutil.AddLines(plt, "Residual", pts); err != nil {
		return nil, err
	}
	if len(pts) > 0 {
		plt.Y.Scale = plot.LogScale{}
		plt.Y.Tick.Marker = plot.LogTicks{Prec: -1}
		plt.Y.Min, plt.Y.Max = lo/2, hi*2
	}
	return plt, nil
}

// voltagePlot 节点电压曲线
func (p *Plot) voltagePlot() (*plot.Plot, error) {
	plt := plot.New()
	plt.Title.Text = "Node voltage"
	plt.X.Label.Text = "iteration"
	plt.Y.Label.Text = "V"
	plt.Legend.Top = true
	lines := make([]any, 0, 2*len(p.Nodes))
	for n, name := range p.Nodes {
		pts := make(plotter.XYs, len(p.Voltage))
		for i, v := range p.Voltage {
			pts[i] = plotter.XY{X: float64(p.Index[i]), Y: v[n]}
		}
		lines = append(lines, name, pts)
	}
	if err := plotutil.AddLines(plt, lines...); err != nil {
		return nil, err
	}
	return plt, nil
}

// Render 输出 PNG 图片，残差与电压上下排列
func (p *Plot) Render(w io.Writer) error {
	width, height := p.Width, p.Height
	if width == 0 {
		width = 20 * vg.Centimeter
	}
	if height == 0 {
		height = 20 * vg.Centimeter
	}
	residual, err := p.residualPlot()
	if err != nil {
		return err
	}
	voltage, err := p.voltagePlot()
	if err != nil {
		return err
	}
	img := vgimg.New(width, height)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows:      2,
		Cols:      1,
		PadX:      vg.Millimeter,
		PadY:      5 * vg.Millimeter,
		PadTop:    2 * vg.Millimeter,
		PadBottom: 2 * vg.Millimeter,
		PadLeft:   2 * vg.Millimeter,
		PadRight:  2 * vg.Millimeter,
	}
	plots := [][]*plot.Plot{{residual}, {voltage}}
	canvases := plot.Align(plots, tiles, dc)
	for j := range plots {
		for i := range plots[j] {
			plots[j][i].Draw(canvases[j][i])
		}
	}
	_, err = vgimg.PngCanvas{Canvas: img}.WriteTo(w)
	return err
}
