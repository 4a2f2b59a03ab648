package commands

import (
	"fmt"

	"github.com/josephlewis42/crsh/core/shell"
	"github.com/josephlewis42/crsh/core/vos"
)

// Which implements the UNIX which command using the same search rules as
// the interpreter.
func Which(virtOS vos.VOS) int {
	cmd := &SimpleCommand{
		Use:   "which [COMMAND...]",
		Short: "Locate a command.",
	}

	return cmd.RunEachArg(virtOS, func(arg string) error {
		searchPath := shell.ParseSearchPath(virtOS.Getenv(shell.EnvPath), shell.DefaultCapacity)
		defer searchPath.Release()

		res, ok := searchPath.Resolve(virtOS, arg)
		if !ok {
			return fmt.Errorf("no %s in (%s)", arg, virtOS.Getenv(shell.EnvPath))
		}
		fmt.Fprintln(virtOS.Stdout(), res)
		return nil
	})
}

var _ vos.ProcessFunc = Which

func init() {
	addBinCmd("which", Which)
}
