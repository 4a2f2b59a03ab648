package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/josephlewis42/crsh/core/shell"
	"github.com/josephlewis42/crsh/core/vos"
)

const (
	envStatusCannotRun = 126
	envStatusNotFound  = 127
)

// Env implements the POSIX env command: it prints the environment or runs a
// program with a modified one.
//
// https://pubs.opengroup.org/onlinepubs/9699919799.2018edition/utilities/env.html
func Env(virtOS vos.VOS) int {
	cmd := &SimpleCommand{
		Use:   "env [-i] [-u NAME]... [NAME=VALUE]... [UTILITY [ARG]...]",
		Short: "Run a program in a modified environment.",
	}

	opt := cmd.Flags()
	ignore := opt.Bool('i', "start with an empty environment")
	unset := opt.List('u', "remove NAME from the environment")

	return cmd.Run(virtOS, func() int {
		env := vos.NewMapEnv()
		if !*ignore {
			env = vos.NewMapEnvFromEnvList(virtOS.Environ())
		}
		for _, name := range *unset {
			env.Unsetenv(name)
		}

		args := opt.Args()
		for len(args) > 0 && strings.Contains(args[0], "=") {
			if err := vos.CopyEnv(env, args[:1]); err != nil {
				fmt.Fprintf(virtOS.Stderr(), "env: %s\n", err)
				return 1
			}
			args = args[1:]
		}

		if len(args) == 0 {
			for _, envDef := range env.Environ() {
				fmt.Fprintln(virtOS.Stdout(), envDef)
			}
			return 0
		}

		return envExec(virtOS, env, args)
	})
}

// envExec runs argv with env, bare names are found on the new environment's
// search path.
func envExec(virtOS vos.VOS, env *vos.MapEnv, argv []string) int {
	name := argv[0]
	if !strings.Contains(name, "/") {
		searchPath := shell.ParseSearchPath(env.Getenv(shell.EnvPath), shell.DefaultCapacity)
		defer searchPath.Release()

		resolved, ok := searchPath.Resolve(virtOS, name)
		if !ok {
			fmt.Fprintf(virtOS.Stderr(), "env: %s: not found\n", name)
			return envStatusNotFound
		}
		name = resolved
	}

	environ := env.Environ()
	if environ == nil {
		environ = []string{}
	}

	proc, err := virtOS.StartProcess(name, argv, &vos.ProcAttr{Env: environ, Files: virtOS})
	switch {
	case errors.Is(err, fs.ErrNotExist):
		fmt.Fprintf(virtOS.Stderr(), "env: %s: not found\n", argv[0])
		return envStatusNotFound
	case err != nil:
		fmt.Fprintf(virtOS.Stderr(), "env: %s\n", err)
		return envStatusCannotRun
	}
	return proc.Run()
}

var _ vos.ProcessFunc = Env

func init() {
	addBinCmd("env", Env)
}
