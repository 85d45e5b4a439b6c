package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"um/vm"
)

func main() {
	os.Exit(run())
}

func run() int {
	diag := log.New(os.Stderr, "", 0)

	var (
		trace    bool
		maxSteps uint64
	)

	cmd := &cobra.Command{
		Use:   "um <scroll>",
		Short: "Execute a Universal Machine scroll",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return execScroll(args[0], trace, maxSteps, diag)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().BoolVar(&trace, "trace", false, "print each decoded instruction to stderr before executing it")
	cmd.Flags().Uint64Var(&maxSteps, "max-steps", 0, "abort after this many instructions (0 = unlimited)")

	if err := cmd.Execute(); err != nil {
		if me, ok := asMachineError(err); ok {
			diag.Println(me.Error())
			return 1
		}
		diag.Println(err)
		return 2
	}

	return 0
}

func execScroll(path string, trace bool, maxSteps uint64, diag *log.Logger) error {
	scroll, err := vm.LoadScroll(path)
	if err != nil {
		return err
	}

	in, out, restore, err := buildChannels()
	if err != nil {
		return err
	}
	defer restore()

	m, err := vm.NewMachine(scroll, in, out)
	if err != nil {
		return err
	}

	if trace {
		m.SetTrace(os.Stderr)
	}
	if maxSteps != 0 {
		m.SetMaxSteps(maxSteps)
	}

	if err := m.Run(); err != nil {
		return err
	}

	return nil
}

// buildChannels picks the raw-terminal Input/Output pair when both stdin
// and stdout are attached to a real terminal (so a single keypress
// reaches IN without the user pressing Enter), and falls back to a
// buffered pair otherwise (piping a golden file through the binary, or
// redirecting to a file). restore is always safe to call, even when the
// buffered pair was chosen.
func buildChannels() (vm.Input, vm.Output, func(), error) {
	if term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd())) {
		ch, err := vm.NewTerminalChannel(os.Stdin, os.Stdout)
		if err == nil {
			return ch, ch, func() { _ = ch.Restore() }, nil
		}
		// Fall through to the buffered pair if raw mode couldn't be set
		// (e.g. the terminal doesn't support it); the program still runs,
		// just without single-keypress IN.
	}

	in := vm.NewBufferedInput(os.Stdin)
	out := vm.NewBufferedOutput(os.Stdout)
	return in, out, func() {}, nil
}

func asMachineError(err error) (*vm.MachineError, bool) {
	me, ok := err.(*vm.MachineError)
	if ok {
		return me, true
	}
	return nil, false
}
