// Command sassc is the CLI front end: a thin Cobra wrapper around pkg/api,
// the way the teacher's cmd/esbuild wraps pkg/api's Build/Transform.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "sassc",
	Short:         "Compile Sass stylesheets to CSS",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(buildCmd)
}
