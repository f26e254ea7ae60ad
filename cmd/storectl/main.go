// AngelaMos | 2026
// main.go

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "storectl",
		Short:         "Operator tasks for the storefront API",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("config", "config.yaml", "path to config file")

	rootCmd.AddCommand(keygenCmd())
	rootCmd.AddCommand(promoteCmd())

	return rootCmd
}
