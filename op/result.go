package op

import "fmt"

// Status 求解结束状态
type Status uint8

const (
	StatusConverged Status = iota // 残差小于容差
	StatusExhausted               // 达到迭代上限
	StatusCanceled                // 调用方取消
)

func (s Status) String() string {
	switch s {
	case StatusConverged:
		return "converged"
	case StatusExhausted:
		return "exhausted"
	case StatusCanceled:
		return "canceled"
	}
	return fmt.Sprintf("Status(%d)", uint8(s))
}

// Result 工作点求解结果
type Result struct {
	Voltages   []float64 // 节点电压，地节点恒为 0
	Status     Status    // 结束状态
	Converged  bool      // 是否收敛
	Iterations int       // 试探步数量(含被拒绝的)
	Rejected   int       // 被拒绝的试探步数量
	Residual   float64   // 最终接受点的残差 max|Delta|
	Merit      float64   // 最终接受点的评价值 sum(Q*Delta)
	Alpha      float64   // 结束时的阻尼系数
}

func (r *Result) String() string {
	return fmt.Sprintf("%s: 迭代 %d 次(拒绝 %d 次), 残差 %g, 阻尼 %g",
		r.Status, r.Iterations, r.Rejected, r.Residual, r.Alpha)
}
