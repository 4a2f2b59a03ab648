package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/josephlewis42/crsh/core/vos"
)

// Touch implements a POSIX touch command.
func Touch(virtOS vos.VOS) int {
	cmd := &SimpleCommand{
		Use:   "touch [OPTION...] FILE...",
		Short: "Update the modification times of files to now.",
	}

	noCreate := cmd.Flags().BoolLong("no-create", 'c', "don't create files")

	return cmd.RunEachArg(virtOS, func(name string) error {
		now := time.Now()
		err := virtOS.Chtimes(name, now, now)

		switch {
		case errors.Is(err, fs.ErrNotExist) && *noCreate:
			return nil
		case errors.Is(err, fs.ErrNotExist):
			fd, err := virtOS.Create(name)
			if err != nil {
				return fmt.Errorf("cannot touch %q: %w", name, err)
			}
			return fd.Close()
		case err != nil:
			return fmt.Errorf("setting times of %q: %w", name, err)
		default:
			return nil
		}
	})
}

var _ vos.ProcessFunc = Touch

func init() {
	addBinCmd("touch", Touch)
}
