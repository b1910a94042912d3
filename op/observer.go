package op

import "vcid/graph"

// Iteration 单次试探步信息
// Voltages 为求解器内部缓冲区，观察者需要保存时必须复制。
type Iteration struct {
	Index    int       // 试探步序号，从 1 开始
	Accepted bool      // 试探步是否被接受
	Alpha    float64   // 本次试探使用的阻尼系数
	Residual float64   // 当前接受点的残差
	Merit    float64   // 当前接受点的评价值
	Voltages []float64 // 当前接受点的节点电压
}

// Observer 求解过程观察者
type Observer interface {
	Init(g *graph.Graph) // 求解开始
	Update(it Iteration) // 每次试探步之后
	Finish(res *Result)  // 求解结束，包括取消
}

// Observers 组合多个观察者，按顺序通知
type Observers []Observer

// Init 初始化
func (list Observers) Init(g *graph.Graph) {
	for _, o := range list {
		o.Init(g)
	}
}

// Update 记录数据
func (list Observers) Update(it Iteration) {
	for _, o := range list {
		o.Update(it)
	}
}

// Finish 结束
func (list Observers) Finish(res *Result) {
	for _, o := range list {
		o.Finish(res)
	}
}

// nopObserver 空观察者
type nopObserver struct{}

func (nopObserver) Init(*graph.Graph) {}
func (nopObserver) Update(Iteration)  {}
func (nopObserver) Finish(*Result)    {}
