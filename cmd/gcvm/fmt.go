package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mastercactapus/gcvm/gcode"
	"github.com/spf13/cobra"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt <file.gcode>",
	Short: "Rewrite a GCode file in canonical form",
	Long: `Parses a GCode file and prints it back out normalized: uppercase words,
comments and blank lines stripped, numbers trimmed of trailing zeros.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open %q: %w", args[0], err)
		}
		defer f.Close()

		_, err = io.Copy(os.Stdout, gcode.NewBuffer(gcode.NewParser(f)))
		return err
	},
}

func init() {
	rootCmd.AddCommand(fmtCmd)
}
