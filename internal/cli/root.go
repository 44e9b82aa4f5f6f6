// Package cli implements the flashmentord command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/flashmentor-network/flashmentor/internal/api"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "flashmentord",
	Short: "Flash Mentor matching-and-ledger daemon",
	Long: `flashmentord runs the Flash Mentor core: the time-credit ledger,
the expert directory, and the matching coordinator, exposed over a
small HTTP API. Page rendering, auth, and the live session transport
are external collaborators — this daemon only decides who helps whom
and moves the minutes.`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "flashmentor.toml", "Path to the TOML config file")
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the daemon version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("flashmentord", api.Version)
	},
}

// Execute runs the command tree.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
