package shell

import (
	"fmt"

	"github.com/josephlewis42/crsh/core/logger"
	"github.com/josephlewis42/crsh/core/vos"
)

// execute runs a program in the foreground and waits for it to exit.
func (s *Interpreter) execute(argv []string) {
	proc, err := s.VirtualOS.StartProcess(argv[0], argv, &vos.ProcAttr{
		Dir:   s.VirtualOS.Getwd(),
		Env:   s.VirtualOS.Environ(),
		Files: s.VirtualOS,
	})
	if err != nil {
		fmt.Fprintln(s.VirtualOS.Stdout(), &ExecutionError{Name: argv[0], Err: err})
		s.lastStatus = 1
		s.record(logger.EventUnknownCommand, logger.Fields{
			"command": argv,
			"error":   err,
		})
		return
	}

	s.lastStatus = proc.Run()
	s.record(logger.EventRunCommand, logger.Fields{
		"command": argv,
		"status":  s.lastStatus,
	})
}
