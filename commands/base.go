package commands

import (
	"fmt"
	"io"
	"path"
	"sort"

	"github.com/fatih/color"
	"github.com/josephlewis42/crsh/core/vos"
	getopt "github.com/pborman/getopt/v2"
	"github.com/spf13/afero"
)

// AllCommands holds a list of all registered commands by absolute path.
var AllCommands = make(map[string]vos.ProcessFunc)

// commandNames maps the base name of each command to its paths.
var commandNames = make(map[string][]string)

// addBinCmd adds a command under /bin and /usr/bin.
func addBinCmd(name string, cmd vos.ProcessFunc) {
	for _, dir := range []string{"/bin", "/usr/bin"} {
		fullPath := path.Join(dir, name)
		if _, ok := AllCommands[fullPath]; ok {
			panic(fmt.Sprintf("command %q registered twice", fullPath))
		}
		AllCommands[fullPath] = cmd
		commandNames[name] = append(commandNames[name], fullPath)
	}
}

// ProcessResolver looks up a registered command by path.
func ProcessResolver(path string) vos.ProcessFunc {
	return AllCommands[path]
}

var _ vos.ProcessResolver = ProcessResolver

// CommandEntry describes a registered command.
type CommandEntry struct {
	// Names holds the paths the command is installed at.
	Names []string
	Proc  vos.ProcessFunc
}

// ListBuiltinCommands returns every registered command sorted by name.
func ListBuiltinCommands() []CommandEntry {
	var names []string
	for name := range commandNames {
		names = append(names, name)
	}
	sort.Strings(names)

	var out []CommandEntry
	for _, name := range names {
		paths := commandNames[name]
		out = append(out, CommandEntry{
			Names: paths,
			Proc:  AllCommands[paths[0]],
		})
	}
	return out
}

// InstallPrograms creates an executable file for every registered command so
// they can be found on the search path.
func InstallPrograms(fs afero.Fs) error {
	for fullPath := range AllCommands {
		if err := fs.MkdirAll(path.Dir(fullPath), 0755); err != nil {
			return err
		}

		exists, err := afero.Exists(fs, fullPath)
		if err != nil {
			return err
		}
		if exists {
			continue
		}

		if err := afero.WriteFile(fs, fullPath, []byte("#!crsh-builtin\n"), 0755); err != nil {
			return err
		}
	}
	return nil
}

type SimpleCommand struct {
	// Use holds a one line usage string
	Use string
	// Short holds a sone line description of the command.
	Short string
	// ShowHelp sets whether help is displayed or not.
	// If this is non-nil when Run() is called, then the default help flag isn't
	// added.
	ShowHelp *bool
	// NeverBail skips interacting with stdout/stderr on failure and
	// always runs the callback.
	NeverBail bool

	flags *getopt.Set
}

// Flags gets the command's flag set.
func (s *SimpleCommand) Flags() *getopt.Set {
	if s.flags == nil {
		s.flags = getopt.New()
	}

	return s.flags
}

// PrintHelp writes help for the command to the given writer.
func (s *SimpleCommand) PrintHelp(w io.Writer) {
	fmt.Fprint(w, "usage: ")
	fmt.Fprintln(w, s.Use)
	fmt.Fprintln(w, s.Short)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	s.Flags().PrintOptions(w)
}

// Run the command, if flag parsing was succcessful call the callback.
func (s *SimpleCommand) Run(virtOS vos.VOS, callback func() int) int {
	opts := s.Flags()

	// Add help flag if not overridden.
	if s.ShowHelp == nil {
		s.ShowHelp = opts.BoolLong("help", 'h', "show this help and exit")
	}

	err := opts.Getopt(virtOS.Args(), nil)
	if err != nil && !s.NeverBail {
		fmt.Fprintf(virtOS.Stderr(), "error: %s\n\n", err)

		s.PrintHelp(virtOS.Stdout())
		return 1
	}

	if *s.ShowHelp {
		s.PrintHelp(virtOS.Stdout())
		return 0
	}

	return callback()
}

// RunEachArg runs the callback for every positional argument, errors are
// reported and the exit status is 1 if any failed.
func (s *SimpleCommand) RunEachArg(virtOS vos.VOS, callback func(arg string) error) int {
	return s.Run(virtOS, func() int {
		name := path.Base(virtOS.Args()[0])

		status := 0
		for _, arg := range s.Flags().Args() {
			if err := callback(arg); err != nil {
				fmt.Fprintf(virtOS.Stderr(), "%s: %s\n", name, err)
				status = 1
			}
		}
		return status
	})
}

const (
	colorAlways = "always"
	colorAuto   = "auto"
	colorNever  = "never"

	// EnvColor forces color on (1) or off (0) for auto mode.
	EnvColor = "CLICOLOR_FORCE"
)

var (
	ColorBoldBlue  = color.New(color.FgBlue, color.Bold)
	ColorBoldGreen = color.New(color.FgGreen, color.Bold)
	ColorBoldCyan  = color.New(color.FgCyan, color.Bold)
)

type ColorPrinter struct {
	value  *string
	virtOS vos.VOS
}

// Init sets up the flag and virtual OS to determine the color output.
func (c *ColorPrinter) Init(flags *getopt.Set, virtOS vos.VOS) {
	c.virtOS = virtOS
	c.value = flags.EnumLong(
		"color",
		rune(0), // No short flag.
		[]string{colorAlways, colorAuto, colorNever},
		colorAuto,
		"colorize the output (always|auto|never)")
}

func (c *ColorPrinter) ShouldColor() bool {
	switch {
	case *c.value == colorNever:
		return false
	case *c.value == colorAlways:
		return true
	default:
		return c.virtOS.Getenv(EnvColor) == "1"
	}
}

func (c *ColorPrinter) Sprintf(color *color.Color, format string, a ...interface{}) string {
	if c.ShouldColor() {
		// The color package only checks the host terminal, not the virtual one.
		color.EnableColor()
		return color.Sprintf(format, a...)
	}
	return fmt.Sprintf(format, a...)
}
