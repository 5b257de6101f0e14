package cmd

import (
	"github.com/spf13/cobra"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "powersched",
	Short: "Short-term power generation scheduling",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "study.yaml", "study configuration file")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }
