package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tapboard",
	Short: "Check-in feed and tap list extraction for the bar display",
	Long: `Fetches the venue's public check-in feed and tap list, extracts them into
fixed JSON shapes (4 latest check-ins, 16 tap slots) and serves them to the display client.`,
}

// Execute runs the root command. It is called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
