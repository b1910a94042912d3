package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"vcid"
	"vcid/debug"
	"vcid/element"
	"vcid/metrics"
	"vcid/op"
	"vcid/reference"
)

var opCmd = &cobra.Command{
	Use:   "op",
	Short: "Solve the DC operating point of a built-in circuit",
	Long: `Solve the DC operating point of a built-in circuit by virtual charge diffusion.

The node voltages are printed to stdout. The iteration trace can be written as
an interactive HTML page (--html), a PNG plot (--png) or JSON (--json).`,
	RunE: runOp,
}

var (
	opCircuit   string
	opTau       float64
	opTol       float64
	opMaxIter   int
	opWorkers   int
	opElastance string
	opHTML      string
	opPNG       string
	opJSON      string
	opMetrics   bool
	opCheck     bool
	opServe     string
)

// elastance 按名称选择耦合强度
func elastance(name string) (element.Elastance, error) {
	switch name {
	case "nominal":
		return element.NominalElastance, nil
	case "conductance":
		return element.ConductanceElastance(1), nil
	}
	return nil, fmt.Errorf("unknown elastance %q, want nominal or conductance", name)
}

func runOp(cmd *cobra.Command, args []string) error {
	b, c, err := lookup(opCircuit)
	if err != nil {
		return err
	}
	tau, tol := b.Tau, b.Tol
	if opTau != 0 {
		tau = opTau
	}
	if opTol != 0 {
		tol = opTol
	}
	el, err := elastance(opElastance)
	if err != nil {
		return err
	}

	rec := &debug.Record{}
	res, err := vcid.SimulateContext(cmd.Context(), c, tau, tol, opMaxIter,
		vcid.WithLogger(newLogger()),
		vcid.WithWorkers(opWorkers),
		vcid.WithElastance(el),
		vcid.WithObserver(rec, metrics.Observer{}),
	)
	if res == nil {
		return fmt.Errorf("simulate %s: %w", opCircuit, err)
	}
	out := cmd.OutOrStdout()
	printResult(out, opCircuit, res)
	if opCheck {
		if err := check(out, c, res); err != nil {
			return err
		}
	}
	if err := writeOutputs(rec); err != nil {
		return err
	}
	if opMetrics {
		if err := metrics.WriteText(out); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	if opServe != "" {
		if err := serve(cmd.Context(), rec); err != nil {
			return err
		}
	}
	if errors.Is(err, op.ErrNotConverged) {
		return fmt.Errorf("%s: %w after %d iterations", opCircuit, err, res.Iterations)
	}
	return err
}

// printResult 输出节点电压
func printResult(w io.Writer, name string, res *op.Result) {
	fmt.Fprintf(w, "circuit:    %s\n", name)
	fmt.Fprintf(w, "status:     %s\n", res.Status)
	fmt.Fprintf(w, "iterations: %d (%d rejected)\n", res.Iterations, res.Rejected)
	fmt.Fprintf(w, "residual:   %.3e\n", res.Residual)
	fmt.Fprintln(w)
	for i, v := range res.Voltages {
		fmt.Fprintf(w, "  V(%d) = %.6f\n", i, v)
	}
}

// check 与牛顿迭代参考解比较
func check(w io.Writer, c *vcid.Circuit, res *op.Result) error {
	g, err := c.Graph(nil)
	if err != nil {
		return err
	}
	sol, err := reference.Solve(g)
	if err != nil {
		return fmt.Errorf("reference solve: %w", err)
	}
	fmt.Fprintf(w, "\nreference (%d Newton iterations):\n", sol.Iterations)
	diff := 0.0
	for i, v := range sol.Voltages {
		d := res.Voltages[i] - v
		diff = math.Max(diff, math.Abs(d))
		fmt.Fprintf(w, "  V(%d) = %.6f  diff %+.3e\n", i, v, d)
	}
	kcl := 0.0
	for _, r := range reference.KCL(g, res.Voltages) {
		kcl = math.Max(kcl, math.Abs(r))
	}
	fmt.Fprintf(w, "max diff %.3e, max KCL residual %.3e A\n", diff, kcl)
	return nil
}

// writeOutputs 写出迭代记录
func writeOutputs(rec *debug.Record) error {
	type renderer interface{ Render(io.Writer) error }
	files := []struct {
		path string
		r    renderer
	}{
		{opHTML, &debug.Charts{Record: *rec}},
		{opPNG, &debug.Plot{Record: *rec}},
		{opJSON, rec},
	}
	for _, f := range files {
		if f.path == "" {
			continue
		}
		file, err := os.Create(f.path)
		if err != nil {
			return err
		}
		err = f.r.Render(file)
		if cerr := file.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("write %s: %w", f.path, err)
		}
		slog.Info("trace written", "path", f.path)
	}
	return nil
}

// serve 发布曲线页面与指标，直到 ctx 结束
func serve(ctx context.Context, rec *debug.Record) error {
	ch := &debug.Charts{Record: *rec}
	mux := http.NewServeMux()
	mux.HandleFunc("/", ch.Handler)
	mux.Handle("/metrics", metrics.Handler())
	srv := &http.Server{Addr: opServe, Handler: mux}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	slog.Info("serving charts", "addr", opServe)
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdown)
}

func init() {
	rootCmd.AddCommand(opCmd)

	opCmd.Flags().StringVarP(&opCircuit, "circuit", "c", "example", "built-in circuit name")
	opCmd.Flags().Float64Var(&opTau, "tau", 0, "virtual time step, 0 uses the circuit default")
	opCmd.Flags().Float64Var(&opTol, "tol", 0, "convergence tolerance in volts, 0 uses the circuit default")
	opCmd.Flags().IntVar(&opMaxIter, "max-iter", 0, "iteration cap, 0 uses the default")
	opCmd.Flags().IntVarP(&opWorkers, "workers", "w", 1, "goroutines for the per-node sums")
	opCmd.Flags().StringVar(&opElastance, "elastance", "nominal", "coupling policy: nominal or conductance")
	opCmd.Flags().StringVar(&opHTML, "html", "", "write the iteration trace as an HTML page")
	opCmd.Flags().StringVar(&opPNG, "png", "", "write the convergence plot as PNG")
	opCmd.Flags().StringVar(&opJSON, "json", "", "write the iteration trace as JSON")
	opCmd.Flags().BoolVar(&opMetrics, "metrics", false, "print solver metrics in Prometheus text format")
	opCmd.Flags().BoolVar(&opCheck, "check", false, "compare with a Newton reference solve")
	opCmd.Flags().StringVar(&opServe, "serve", "", "serve charts and /metrics on this address after solving")
}
