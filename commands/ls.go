package commands

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"text/tabwriter"

	fcolor "github.com/fatih/color"
	"github.com/josephlewis42/crsh/core/vos"
)

// Ls implements a basic UNIX ls command.
func Ls(virtOS vos.VOS) int {
	cmd := &SimpleCommand{
		Use:   "ls [OPTION]... [FILE]...",
		Short: "List information about the FILEs (the current directory by default).",
	}

	opts := cmd.Flags()
	listAll := opts.Bool('a', "don't ignore entries starting with .")
	longListing := opts.Bool('l', "use a long listing format")
	humanSize := opts.Bool('H', "print human readable sizes")

	var color ColorPrinter
	color.Init(opts, virtOS)

	return cmd.Run(virtOS, func() int {
		toList := opts.Args()
		if len(toList) == 0 {
			toList = append(toList, ".")
		}
		sort.Strings(toList)

		sizeFmt := func(bytes int64) string {
			return fmt.Sprintf("%d", bytes)
		}
		if *humanSize {
			sizeFmt = BytesToHuman
		}

		exitCode := 0
		for i, name := range toList {
			entries, err := readEntries(virtOS, name)
			if err != nil {
				fmt.Fprintf(virtOS.Stderr(), "ls: cannot access %q: %v\n", name, err)
				exitCode = 1
				continue
			}

			if len(toList) > 1 {
				if i > 0 {
					fmt.Fprintln(virtOS.Stdout())
				}
				fmt.Fprintf(virtOS.Stdout(), "%s:\n", name)
			}

			tw := tabwriter.NewWriter(virtOS.Stdout(), 0, 0, 1, ' ', 0)
			for _, f := range entries {
				if !*listAll && strings.HasPrefix(f.Name(), ".") {
					continue
				}

				displayName := color.Sprintf(Dircolor(f), "%s", f.Name())
				if *longListing {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
						f.Mode().String(),
						sizeFmt(f.Size()),
						f.ModTime().Format("Jan _2 15:04"),
						displayName)
				} else {
					fmt.Fprintln(tw, displayName)
				}
			}
			tw.Flush()
		}

		return exitCode
	})
}

// readEntries lists a directory, or returns the file itself.
func readEntries(virtOS vos.VOS, name string) ([]fs.FileInfo, error) {
	fd, err := virtOS.Open(name)
	if err != nil {
		return nil, err
	}
	defer fd.Close()

	stat, err := fd.Stat()
	if err != nil {
		return nil, err
	}
	if !stat.IsDir() {
		return []fs.FileInfo{renamedInfo{stat, path.Base(name)}}, nil
	}

	entries, err := fd.Readdir(-1)
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})
	return entries, nil
}

type renamedInfo struct {
	fs.FileInfo
	name string
}

func (r renamedInfo) Name() string {
	return r.name
}

// Dircolor picks the color to display a file with.
func Dircolor(f fs.FileInfo) *fcolor.Color {
	mode := f.Mode()
	switch {
	case mode.IsDir():
		return ColorBoldBlue
	case mode&fs.ModeSymlink != 0:
		return ColorBoldCyan
	case mode&0111 != 0:
		return ColorBoldGreen
	default:
		return fcolor.New(fcolor.Reset)
	}
}

// BytesToHuman formats a size with a metric suffix.
func BytesToHuman(bytes int64) string {
	for _, e := range []struct {
		unit  string
		power int64
	}{
		{"P", 1e15},
		{"T", 1e12},
		{"G", 1e9},
		{"M", 1e6},
		{"K", 1e3},
	} {
		quotient := bytes / e.power
		switch {
		case quotient == 0:
			continue
		case quotient > 10:
			return fmt.Sprintf("%d%s", quotient, e.unit)
		default:
			return fmt.Sprintf("%0.1f%s", float64(bytes)/float64(e.power), e.unit)
		}
	}

	return fmt.Sprintf("%d", bytes)
}

var _ vos.ProcessFunc = Ls

func init() {
	addBinCmd("ls", Ls)
}
