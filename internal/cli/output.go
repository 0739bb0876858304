package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/sanixdarker/gqlpath/internal/config"
	"github.com/sanixdarker/gqlpath/internal/console"
	"github.com/sanixdarker/gqlpath/pkg/querygen"
	"github.com/spf13/cobra"
)

// consoleFlags are shared by the commands that print paths.
type consoleFlags struct {
	mode      string
	noConsole bool
	noColor   bool
	separator string
	logPath   string
}

var conFlags consoleFlags

func addConsoleFlags(cmd *cobra.Command) {
	d := config.Default()
	f := cmd.Flags()
	f.StringVarP(&conFlags.mode, "console-mode", "m", d.Output.ConsoleMode, "Console body style: pretty, burp or burp_pretty")
	f.BoolVarP(&conFlags.noConsole, "no-console", "n", false, "Do not print to the console")
	f.BoolVarP(&conFlags.noColor, "no-color", "C", false, "Disable colored console output")
	f.StringVarP(&conFlags.separator, "separator", "Z", d.Output.Separator, "Separator line between paths")
	f.StringVarP(&conFlags.logPath, "console-log", "L", "", "Also write the console output, without colors, to this file")
}

// applyConsoleFlags copies explicitly set console flags into c.
func applyConsoleFlags(cmd *cobra.Command, c *config.Config) {
	f := cmd.Flags()
	if f.Changed("console-mode") {
		c.Output.ConsoleMode = conFlags.mode
	}
	if f.Changed("separator") {
		c.Output.Separator = conFlags.separator
	}
	if f.Changed("no-color") {
		c.Output.Color = !conFlags.noColor
	}
}

// newPrinter builds the console printer. The returned close function
// flushes the console log, if any.
func newPrinter(cmd *cobra.Command, c *config.Config) (*console.Printer, func() error, error) {
	if conFlags.noConsole {
		return console.NewPrinter(io.Discard, nil, console.PlainStyles(), c.Output.ConsoleMode, c.Output.Separator), func() error { return nil }, nil
	}

	styles := console.DefaultStyles()
	if !c.Output.Color {
		styles = console.PlainStyles()
	}

	var log io.Writer
	closeFn := func() error { return nil }
	if conFlags.logPath != "" {
		f, err := os.Create(conFlags.logPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create console log: %w", err)
		}
		log = f
		closeFn = f.Close
	}

	return console.NewPrinter(cmd.OutOrStdout(), log, styles, c.Output.ConsoleMode, c.Output.Separator), closeFn, nil
}

// writeOutput writes bodies to path in the configured format.
func writeOutput(path, format string, bodies []querygen.QueryBody) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := console.WriteBodies(f, bodies, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
