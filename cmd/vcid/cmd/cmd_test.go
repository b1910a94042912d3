package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vcid"
	"vcid/debug"
	"vcid/op"
)

// execute 重置参数后执行命令
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	opCircuit, opTau, opTol, opMaxIter, opWorkers = "example", 0, 0, 0, 1
	opElastance, opHTML, opPNG, opJSON = "nominal", "", "", ""
	opMetrics, opCheck, opServe = false, false, ""
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestCircuits(t *testing.T) {
	for _, name := range circuitNames() {
		t.Run(name, func(t *testing.T) {
			b, c, err := lookup(name)
			if err != nil {
				t.Fatalf("构建失败: %v", err)
			}
			if err := c.Validate(); err != nil {
				t.Fatalf("电路无效: %v", err)
			}
			limit := 0
			if name == "island" {
				limit = 50
			}
			res, err := vcid.Simulate(c, b.Tau, b.Tol, limit)
			if name == "island" {
				if !errors.Is(err, op.ErrNotConverged) {
					t.Errorf("孤立节点不应收敛, err = %v", err)
				}
				return
			}
			if err != nil || !res.Converged {
				t.Errorf("未收敛: %v, %v", res, err)
			}
		})
	}
	if _, _, err := lookup("nothing"); err == nil {
		t.Errorf("未知电路应返回错误")
	}
}

func TestExamplesCommand(t *testing.T) {
	out, err := execute(t, "examples")
	if err != nil {
		t.Fatalf("执行失败: %v", err)
	}
	for _, name := range circuitNames() {
		if !strings.Contains(out, name) {
			t.Errorf("输出缺少 %s:\n%s", name, out)
		}
	}
}

func TestOpCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "trace.json")
	out, err := execute(t, "op", "--circuit", "divider", "--check", "--json", path, "--metrics")
	if err != nil {
		t.Fatalf("执行失败: %v", err)
	}
	for _, s := range []string{"status:     converged", "V(1) = 2.7272", "reference", "vcid_solve_total"} {
		if !strings.Contains(out, s) {
			t.Errorf("输出缺少 %q:\n%s", s, out)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("读取记录失败: %v", err)
	}
	var rec debug.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		t.Fatalf("解析记录失败: %v", err)
	}
	if rec.Status != "converged" || rec.Iterations != len(rec.Index) {
		t.Errorf("记录不正确: status %s, %d/%d", rec.Status, rec.Iterations, len(rec.Index))
	}
}

func TestOpCommandErrors(t *testing.T) {
	tests := []struct {
		args []string
		err  error
	}{
		{[]string{"op", "--circuit", "island", "--max-iter", "50"}, op.ErrNotConverged},
		{[]string{"op", "--circuit", "nothing"}, nil},
		{[]string{"op", "--elastance", "nothing"}, nil},
		{[]string{"op", "--tol", "-1"}, nil},
	}
	for _, tt := range tests {
		_, err := execute(t, tt.args...)
		if err == nil {
			t.Errorf("%v 应返回错误", tt.args)
			continue
		}
		if tt.err != nil && !errors.Is(err, tt.err) {
			t.Errorf("%v 错误类型不正确: %v", tt.args, err)
		}
	}
}

func TestElastance(t *testing.T) {
	for _, name := range []string{"nominal", "conductance"} {
		if e, err := elastance(name); err != nil || e == nil {
			t.Errorf("%s 应有效: %v", name, err)
		}
	}
}
