package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "vcid",
	Short: "vcid - DC operating point by virtual charge diffusion",
	Long: `vcid solves the DC operating point of resistor, diode and current source
networks by diffusing virtual node charge instead of factorizing a nodal matrix.

Examples:
  vcid examples                          # List built-in circuits
  vcid op                                # Solve the documented 3-node circuit
  vcid op --circuit ladder --check       # Compare with a Newton reference solve
  vcid op --html trace.html --png trace.png
  vcid op --serve :8080                  # Serve charts and /metrics`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// newLogger 日志输出到标准错误，--verbose 打开调试级别
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every rejected damping step")
}
