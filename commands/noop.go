package commands

import (
	"fmt"

	"github.com/josephlewis42/crsh/core/vos"
)

// NoOpCommand describes a command that ignores its arguments.
type NoOpCommand struct {
	Name     string
	Use      string
	Short    string
	Stdout   string
	ExitCode int
}

// ToCommand converts the no-op command description to a functioning command.
func (c *NoOpCommand) ToCommand() vos.ProcessFunc {
	return func(virtOS vos.VOS) int {
		cmd := &SimpleCommand{
			Use:   c.Use,
			Short: c.Short,
			// Never bail, even if args are bad.
			NeverBail: true,
		}

		return cmd.Run(virtOS, func() int {
			if c.Stdout != "" {
				fmt.Fprintln(virtOS.Stdout(), c.Stdout)
			}

			return c.ExitCode
		})
	}
}

var noOpBinCommands = []NoOpCommand{
	{
		Name:  "true",
		Use:   "true [ignored command line arguments]",
		Short: "Do nothing, successfully.",
	},
	{
		Name:     "false",
		Use:      "false [ignored command line arguments]",
		Short:    "Do nothing, unsuccessfully.",
		ExitCode: 1,
	},
}

func init() {
	for i := range noOpBinCommands {
		cmd := noOpBinCommands[i]
		addBinCmd(cmd.Name, cmd.ToCommand())
	}
}
