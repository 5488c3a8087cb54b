package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is the CLI version, overridable at build time with -ldflags.
var Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "counterctl",
	Short: "counterctl runs counter diagram scripts without the canvas",
	Long: `counterctl evaluates diagram scripts (counter, increment, decrement,
connect, click) headlessly and prints the resulting counter values.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
