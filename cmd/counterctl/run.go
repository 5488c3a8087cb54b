package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/hulomjosuan21/counter-app/pkg/engine"
	"github.com/hulomjosuan21/counter-app/pkg/graph"
)

var runJSON bool

var runCmd = &cobra.Command{
	Use:   "run <script>",
	Short: "Evaluate a diagram script and print the resulting counters",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		eng := engine.NewEngine()
		d, evalErrs, err := eng.Evaluate(string(source))
		if err != nil {
			return err
		}
		if len(evalErrs) > 0 {
			for _, e := range evalErrs {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", args[0], e.Error())
			}
			return fmt.Errorf("script failed with %d error(s)", len(evalErrs))
		}

		if runJSON {
			out, err := json.MarshalIndent(d.Snapshot(), "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		}

		printCounters(cmd, d)
		return nil
	},
}

// printCounters lists counter values sorted by name; unnamed counters fall
// back to their short id.
func printCounters(cmd *cobra.Command, d *graph.Diagram) {
	counters := d.Counters()
	sort.Slice(counters, func(i, j int) bool {
		return labelOf(counters[i]) < labelOf(counters[j])
	})
	for _, c := range counters {
		fmt.Fprintf(cmd.OutOrStdout(), "%s = %d\n", labelOf(c), c.Count())
	}
}

func labelOf(n *graph.Node) string {
	if n.Name != "" {
		return n.Name
	}
	return n.ID.Short()
}

func init() {
	runCmd.Flags().BoolVar(&runJSON, "json", false, "print the full diagram snapshot as JSON")
	rootCmd.AddCommand(runCmd)
}
