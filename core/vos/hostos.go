package vos

import (
	"os"
	"os/exec"

	"github.com/spf13/afero"
)

// HostOS is a VOS backed by the real operating system.
//
// The environment is a snapshot taken at creation so changes made through
// the VOS are passed to children without touching the process environment.
type HostOS struct {
	VEnv
	VIO
	VFS

	args []string
}

var _ VOS = (*HostOS)(nil)

// NewHostOS creates a VOS for the running process with the given streams.
func NewHostOS(stdio VIO) *HostOS {
	return &HostOS{
		VEnv: NewHostEnv(),
		VIO:  stdio,
		VFS:  afero.NewOsFs(),
		args: os.Args,
	}
}

// Args implements VOS.Args.
func (h *HostOS) Args() []string {
	return h.args
}

// Getwd implements VOS.Getwd.
func (h *HostOS) Getwd() string {
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return wd
}

// Chdir implements VOS.Chdir.
func (h *HostOS) Chdir(dir string) error {
	return os.Chdir(dir)
}

// StartProcess implements VOS.StartProcess.
//
// The name is executed as given: no search path lookup is done, so a bare
// name is interpreted relative to the working directory.
func (h *HostOS) StartProcess(name string, argv []string, attr *ProcAttr) (Process, error) {
	if attr == nil {
		attr = &ProcAttr{}
	}
	env := attr.Env
	if env == nil {
		env = h.Environ()
	}
	files := attr.Files
	if files == nil {
		files = h.VIO
	}

	cmd := &exec.Cmd{
		Path:   name,
		Args:   argv,
		Env:    env,
		Dir:    attr.Dir,
		Stdin:  files.Stdin(),
		Stdout: files.Stdout(),
		Stderr: files.Stderr(),
	}
	if err := cmd.Start(); err != nil {
		return nil, err
	}

	return &hostProcess{cmd: cmd}, nil
}

type hostProcess struct {
	cmd *exec.Cmd
}

func (p *hostProcess) Run() int {
	// Wait only fails for non-zero exits or I/O copy errors, the exit
	// status is reported either way.
	_ = p.cmd.Wait()
	if p.cmd.ProcessState == nil {
		return 1
	}
	if code := p.cmd.ProcessState.ExitCode(); code >= 0 {
		return code
	}
	// Killed by a signal.
	return 1
}
