package commands

import (
	"fmt"
	"io"

	"github.com/josephlewis42/crsh/core/vos"
)

// Cat implements the UNIX cat command.
func Cat(virtOS vos.VOS) int {
	cmd := &SimpleCommand{
		Use:   "cat [OPTION]... [FILE]...",
		Short: "Concatenate FILE(s) to standard output.",
	}

	return cmd.RunEachArg(virtOS, func(arg string) error {
		fd, err := virtOS.Open(arg)
		if err != nil {
			return err
		}
		defer fd.Close()

		stat, err := fd.Stat()
		if err != nil {
			return err
		}
		if stat.IsDir() {
			return fmt.Errorf("%s: Is a directory", arg)
		}

		_, err = io.Copy(virtOS.Stdout(), fd)
		return err
	})
}

var _ vos.ProcessFunc = Cat

func init() {
	addBinCmd("cat", Cat)
}
