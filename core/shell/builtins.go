package shell

import (
	"fmt"

	"github.com/josephlewis42/crsh/core/logger"
)

// AllBuiltins holds a list of all registered shell builtins
var AllBuiltins = make(map[string]Builtin)

// Builtin is a command that runs inside the interpreter instead of as a
// separate program.
type Builtin interface {
	Main(s *Interpreter, args []string) int
}

type BuiltinFunc func(s *Interpreter, args []string) int

func (f BuiltinFunc) Main(s *Interpreter, args []string) int {
	return f(s, args)
}

var _ Builtin = (BuiltinFunc)(nil)

// Cd changes the working directory to the first argument, or the home
// directory if none is given.
func Cd(s *Interpreter, args []string) int {
	var dir string
	if len(args) > 1 {
		dir = args[1]
	} else {
		dir = s.VirtualOS.Getenv(s.opts.HomeEnv)
	}

	if err := s.VirtualOS.Chdir(dir); err != nil {
		fmt.Fprintln(s.VirtualOS.Stdout(), NewDirectoryChangeError(dir, err))
		return 1
	}
	return 0
}

// Exit stops the interpreter.
func Exit(s *Interpreter, args []string) int {
	s.Exit()
	return 0
}

// Source runs each line of the file named by the first argument.
func Source(s *Interpreter, args []string) int {
	var path string
	if len(args) > 1 {
		path = args[1]
	}
	return s.Source(path)
}

func (s *Interpreter) runBuiltin(args []string) bool {
	builtin, ok := AllBuiltins[args[0]]
	if !ok {
		return false
	}

	s.record(logger.EventBuiltin, logger.Fields{"command": args})
	s.lastStatus = builtin.Main(s, args)
	return true
}

func init() {
	AllBuiltins["cd"] = BuiltinFunc(Cd)
	AllBuiltins["exit"] = BuiltinFunc(Exit)
	AllBuiltins["."] = BuiltinFunc(Source)
}
