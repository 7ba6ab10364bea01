package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// set via -ldflags at release time
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the gcvm version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("gcvm", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
