package main

import (
	"fmt"
	"os"

	"github.com/mastercactapus/gcvm/gcode"
	"github.com/mastercactapus/gcvm/vm"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <file.gcode>",
	Short: "Interpret a GCode file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		onError, _ := cmd.Flags().GetString("on-error")
		if !cmd.Flags().Changed("on-error") {
			onError = cfg.Run.OnError
		}
		policy, err := vm.ParsePolicy(onError)
		if err != nil {
			return err
		}

		printState, _ := cmd.Flags().GetBool("state")
		if !cmd.Flags().Changed("state") {
			printState = cfg.Run.PrintState
		}
		trace, _ := cmd.Flags().GetBool("trace")
		noColor, _ := cmd.Flags().GetBool("no-color")

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open %q: %w", args[0], err)
		}
		defer f.Close()

		r := vm.NewRunner(vm.DefaultRegistry(), vm.NewMachine())
		r.Policy = policy
		r.Logger = logger
		if trace {
			r.OnState = func(s vm.State) {
				logger.Info("state", "pos", s.Pos.String(), "feed", s.Feed, "tool", s.Tool)
			}
		}

		diags, runErr := r.Run(gcode.NewParser(f))
		printDiagnostics(diags, noColor)
		if printState {
			s := r.Machine.State()
			fmt.Printf("pos: %s\nfeed: %g\nspeed: %g\ntool: %d\nspindle: %t\ncoolant: %t\n",
				s.Pos, s.Feed, s.Speed, s.Tool, s.Spindle, s.Coolant)
		}
		if runErr != nil {
			return fmt.Errorf("run aborted: %w", runErr)
		}

		return nil
	},
}

func printDiagnostics(diags []vm.Diagnostic, noColor bool) {
	opts := []termenv.OutputOption{}
	if noColor {
		opts = append(opts, termenv.WithProfile(termenv.Ascii))
	}
	out := termenv.NewOutput(os.Stdout, opts...)

	for _, d := range diags {
		s := out.String(d.Message)
		switch d.Kind {
		case vm.KindParse:
			s = s.Foreground(out.Color("1"))
		case vm.KindUnsupported:
			s = s.Foreground(out.Color("3"))
		case vm.KindParameter:
			s = s.Foreground(out.Color("5"))
		}
		fmt.Println(s)
	}
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("on-error", "", `Error policy: "continue" reports every problem, "abort" stops at the first.`)
	runCmd.Flags().Bool("state", false, "Print the final machine state.")
	runCmd.Flags().Bool("trace", false, "Log the machine state after every command.")
	runCmd.Flags().Bool("no-color", false, "Disable colored diagnostics.")
}
