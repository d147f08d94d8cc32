package cmd

import "github.com/spf13/cobra"

var rootCmd = &cobra.Command{
	Use:   "crypto-pnl",
	Short: "Realized profit/loss reporting for Binance trading pairs",
}

func init() {
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(migrateCmd)
}

func Execute() error {
	return rootCmd.Execute()
}
