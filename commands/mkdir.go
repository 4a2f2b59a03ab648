package commands

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/josephlewis42/crsh/core/vos"
)

// Mkdir implements a POSIX mkdir command.
//
// https://pubs.opengroup.org/onlinepubs/9699919799.2018edition/utilities/mkdir.html
func Mkdir(virtOS vos.VOS) int {
	cmd := &SimpleCommand{
		Use:   "mkdir [OPTION...] DIRECTORY...",
		Short: "Create directories if they don't exist.",
	}

	makeParents := cmd.Flags().BoolLong("parents", 'p', "make parents if needed")
	verbose := cmd.Flags().BoolLong("verbose", 'v', "print line for every created directory")

	return cmd.RunEachArg(virtOS, func(dir string) error {
		var err error
		if *makeParents {
			err = virtOS.MkdirAll(dir, 0777)
		} else {
			err = virtOS.Mkdir(dir, 0777)
		}
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			err = pathErr.Err
		}
		if err != nil {
			return fmt.Errorf("cannot create directory %q: %w", dir, err)
		}

		if *verbose {
			fmt.Fprintf(virtOS.Stdout(), "mkdir: created directory %q\n", dir)
		}
		return nil
	})
}

var _ vos.ProcessFunc = Mkdir

func init() {
	addBinCmd("mkdir", Mkdir)
}
