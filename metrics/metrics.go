package metrics

import (
	"io"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/common/expfmt"

	"vcid/graph"
	"vcid/op"
)

// prefix 本包指标名称前缀
const prefix = "vcid_"

var (
	// SolveTotal 按结束状态统计求解次数
	SolveTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vcid_solve_total",
			Help: "Total number of operating point solves by terminal status",
		},
		[]string{"status"},
	)

	// IterationTotal 按接受与否统计试探步
	IterationTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vcid_iteration_total",
			Help: "Total number of damped trial steps",
		},
		[]string{"result"},
	)

	// SolveIterations 单次求解的试探步数量
	SolveIterations = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "vcid_solve_iterations",
			Help:    "Trial steps needed by one solve",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		},
	)

	// Residual 最近接受点的残差
	Residual = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "vcid_residual",
			Help: "Largest voltage correction at the last accepted point",
		},
	)

	// Alpha 最近一次求解结束时的阻尼系数
	Alpha = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "vcid_alpha",
			Help: "Damping factor at the end of the last solve",
		},
	)
)

func init() {
	// 注册到默认注册表
	prometheus.MustRegister(SolveTotal)
	prometheus.MustRegister(IterationTotal)
	prometheus.MustRegister(SolveIterations)
	prometheus.MustRegister(Residual)
	prometheus.MustRegister(Alpha)
}

// Observer 将求解过程写入全局指标
type Observer struct{}

func (Observer) Init(*graph.Graph) {}

// Update 统计试探步
func (Observer) Update(it op.Iteration) {
	if it.Accepted {
		IterationTotal.WithLabelValues("accepted").Inc()
	} else {
		IterationTotal.WithLabelValues("rejected").Inc()
	}
	Residual.Set(it.Residual)
}

// Finish 统计求解结果
func (Observer) Finish(res *op.Result) {
	SolveTotal.WithLabelValues(res.Status.String()).Inc()
	SolveIterations.Observe(float64(res.Iterations))
	Residual.Set(res.Residual)
	Alpha.Set(res.Alpha)
}

// WriteText 以文本格式输出本包指标
func WriteText(w io.Writer) error {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if !strings.HasPrefix(mf.GetName(), prefix) {
			continue
		}
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

// Handler 发布全部指标
func Handler() http.Handler { return promhttp.Handler() }
