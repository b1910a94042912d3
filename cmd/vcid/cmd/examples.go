package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var examplesCmd = &cobra.Command{
	Use:   "examples",
	Short: "List built-in circuits",
	RunE:  runExamples,
}

func runExamples(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	for _, name := range circuitNames() {
		b := circuits[name]
		c, err := b.Build()
		if err != nil {
			return fmt.Errorf("build %s: %w", name, err)
		}
		fmt.Fprintf(out, "%-8s %d nodes, %d components, tau %g, tol %g\n", name, c.NodeCount, len(c.Components), b.Tau, b.Tol)
		fmt.Fprintf(out, "         %s\n", b.Description)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(examplesCmd)
}
