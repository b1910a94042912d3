package metrics

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"vcid/element"
	"vcid/graph"
	"vcid/op"
)

func TestObserver(t *testing.T) {
	g, err := graph.New(2, 0, []element.Component{
		element.CurrentDc{Anode: 1, Cathode: 0, Current: 1},
		element.Resistor{Pin1: 1, Pin2: 0, R: 2},
	}, nil)
	if err != nil {
		t.Fatalf("创建扩散图失败: %v", err)
	}
	converged := testutil.ToFloat64(SolveTotal.WithLabelValues("converged"))
	accepted := testutil.ToFloat64(IterationTotal.WithLabelValues("accepted"))
	rejected := testutil.ToFloat64(IterationTotal.WithLabelValues("rejected"))

	cfg := op.DefaultConfig()
	cfg.Observer = Observer{}
	res, err := op.Run(context.Background(), g, 0.05, 1e-6, cfg)
	if err != nil {
		t.Fatalf("求解失败: %v", err)
	}
	if got := testutil.ToFloat64(SolveTotal.WithLabelValues("converged")) - converged; got != 1 {
		t.Errorf("收敛次数增量应为 1, 实际 %v", got)
	}
	got := testutil.ToFloat64(IterationTotal.WithLabelValues("accepted")) - accepted +
		testutil.ToFloat64(IterationTotal.WithLabelValues("rejected")) - rejected
	if int(got) != res.Iterations {
		t.Errorf("试探步计数 %v 与迭代次数 %d 不一致", got, res.Iterations)
	}
	if got := testutil.ToFloat64(Residual); got != res.Residual {
		t.Errorf("残差指标不正确: %v != %v", got, res.Residual)
	}
	if got := testutil.ToFloat64(Alpha); got != res.Alpha {
		t.Errorf("阻尼指标不正确: %v != %v", got, res.Alpha)
	}
}

func TestWriteText(t *testing.T) {
	Observer{}.Finish(&op.Result{Status: op.StatusExhausted, Iterations: 3})
	var buf bytes.Buffer
	if err := WriteText(&buf); err != nil {
		t.Fatalf("输出失败: %v", err)
	}
	text := buf.String()
	for _, s := range []string{"vcid_solve_total", `status="exhausted"`, "vcid_solve_iterations_bucket"} {
		if !strings.Contains(text, s) {
			t.Errorf("指标输出缺少 %q:\n%s", s, text)
		}
	}
	if strings.Contains(text, "go_goroutines") {
		t.Errorf("不应输出其他指标")
	}

	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	if !strings.Contains(w.Body.String(), "vcid_solve_total") {
		t.Errorf("指标网页缺少 vcid_solve_total")
	}
}
