package vostest

import (
	"bytes"
	"io"
	"path"

	"github.com/josephlewis42/crsh/core/vos"
	"github.com/spf13/afero"
)

// SingleProcessResolver resolves every path to the same process.
func SingleProcessResolver(process vos.ProcessFunc) vos.ProcessResolver {
	return func(path string) vos.ProcessFunc {
		return process
	}
}

// NewDeterministicOS creates a sandbox with a fixed environment and an
// in-memory filesystem holding the standard directories.
func NewDeterministicOS(resolver vos.ProcessResolver) *vos.SandboxOS {
	base := vos.NewMemFs()
	for _, dir := range []string{"/bin", "/usr/bin", "/root", "/tmp"} {
		// MemMapFs can't fail creating directories.
		_ = base.MkdirAll(dir, 0755)
	}

	sandbox := vos.NewSandboxOS(base, resolver, vos.NewNullIO())
	sandbox.Setenv("PATH", "/bin:/usr/bin")
	sandbox.Setenv("HOME", "/root")
	return sandbox
}

// Cmd is similar to exec.Cmd.
type Cmd struct {
	// Process function
	Process vos.ProcessFunc
	// Process arguments, the first argument should be the process name.
	Argv []string
	// If Dir is non-empty, the child changes into the directory before
	// creating the process.
	Dir string
	// If Env is non-empty, it gives the environment variables for the
	// new process in the form returned by Environ.
	// If it is nil, the result of Environ will be used.
	Env []string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	ExitStatus int

	// VOS is the sandbox the command runs in, it can be modified before the
	// command is run and inspected after.
	VOS *vos.SandboxOS
}

// Command creates a Cmd for the process, the program is installed at /bin/name.
func Command(process vos.ProcessFunc, name string, arg ...string) *Cmd {
	cmd := &Cmd{
		Process: process,
		Argv:    append([]string{name}, arg...),
	}
	cmd.VOS = NewDeterministicOS(func(string) vos.ProcessFunc {
		return cmd.Process
	})
	return cmd
}

// CombinedOutput runs the command and returns its stdout and stderr.
func (c *Cmd) CombinedOutput() ([]byte, error) {
	buf := &bytes.Buffer{}
	c.Stdout = buf
	c.Stderr = buf

	err := c.Run()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Run starts the comand and waits for it to complete.
func (c *Cmd) Run() error {
	execPath := path.Join("/bin", path.Base(c.Argv[0]))
	exists, err := afero.Exists(c.VOS, execPath)
	if err != nil {
		return err
	}
	if !exists {
		if err := afero.WriteFile(c.VOS, execPath, nil, 0755); err != nil {
			return err
		}
	}

	runner, err := c.VOS.StartProcess(execPath, c.Argv, &vos.ProcAttr{
		Dir:   c.Dir,
		Env:   c.Env,
		Files: vos.NewVIOAdapter(c.Stdin, c.Stdout, c.Stderr),
	})
	if err != nil {
		return err
	}

	c.ExitStatus = runner.Run()
	return nil
}
