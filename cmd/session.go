package cmd

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/josephlewis42/crsh/core/config"
	"github.com/josephlewis42/crsh/core/logger"
	"github.com/josephlewis42/crsh/core/shell"
	"github.com/josephlewis42/crsh/core/ttylog"
	"github.com/josephlewis42/crsh/core/vos"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/ssh/terminal"
)

const (
	commandFlag   = "command"
	defaultWidth  = 80
	defaultHeight = 24
)

var (
	commandLine string
	recordPath  string
)

func addSessionFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&commandLine, commandFlag, "c", "", "run a single line and exit")
	cmd.Flags().StringVar(&recordPath, "record", "", "save the session output to an asciicast file")
}

// sessionIO connects to the command's streams, copying output to the
// recording if one was requested.
func sessionIO(cmd *cobra.Command) (vos.VIO, io.Closer, error) {
	stdio := vos.NewVIOAdapter(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
	if recordPath == "" {
		return stdio, nopCloser{}, nil
	}

	fd, err := os.Create(recordPath)
	if err != nil {
		return nil, nil, err
	}

	width, height := terminalSize()
	sink := ttylog.NewCRLFAdapter(ttylog.NewAsciicastLogSink(fd, width, height))
	return ttylog.NewRecorder(stdio, sink), fd, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// openEvents returns the recorder for a new session, events are discarded
// unless the configuration has a directory and enables the log.
func openEvents(cfg *config.Configuration) (*logger.SessionLogger, io.Closer, error) {
	if !cfg.EventLog || cfg.Dir() == "" {
		return logger.NewNopLogger().NewSession(), nopCloser{}, nil
	}

	logFd, err := cfg.OpenAppLog()
	if err != nil {
		return nil, nil, err
	}
	return logger.NewJsonLinesLogRecorder(logFd).NewSession(), logFd, nil
}

func isTerminal(f *os.File) bool {
	return terminal.IsTerminal(int(f.Fd()))
}

func terminalSize() (width, height int) {
	width, height, err := terminal.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 || height <= 0 {
		return defaultWidth, defaultHeight
	}
	return width, height
}

func terminalWidth() int {
	width, _ := terminalSize()
	return width
}

// newLineReader picks how lines are read based on the configuration and
// whether the process is attached to a terminal.
func newLineReader(virtOS vos.VOS, cfg *config.Configuration, interactive bool) (shell.LineReader, io.Closer, error) {
	useReadline := cfg.LineEditor == config.LineEditorReadline ||
		(cfg.LineEditor == config.LineEditorAuto && interactive)

	if !useReadline {
		return shell.NewByteLineReader(virtOS.Stdin(), virtOS.Stdout(), cfg.Limits.LineCapacity), nopCloser{}, nil
	}

	rl, err := shell.NewReadlineReader(virtOS, cfg.HistoryPath(), terminalWidth)
	if err != nil {
		return nil, nil, err
	}
	return rl, rl, nil
}

// runSession runs the interpreter in the mode selected by the arguments: a
// single line, a script or the interactive loop.
func runSession(cmd *cobra.Command, virtOS vos.VOS, cfg *config.Configuration, args []string) error {
	events, eventsCloser, err := openEvents(cfg)
	if err != nil {
		return err
	}
	defer eventsCloser.Close()

	interactive := isTerminal(os.Stdin) && isTerminal(os.Stdout)

	opts := cfg.ShellOptions()
	if cfg.ColorPrompt && interactive {
		opts.Prompt = color.New(color.FgGreen, color.Bold).Sprint(opts.Prompt)
	}

	sh := shell.New(virtOS, opts, events)

	switch {
	case cmd.Flags().Changed(commandFlag):
		sh.RunLine(commandLine)
		return sh.Close()

	case len(args) > 0:
		sh.Source(args[0])
		return sh.Close()

	default:
		reader, readerCloser, err := newLineReader(virtOS, cfg, interactive)
		if err != nil {
			return err
		}
		defer readerCloser.Close()

		sh.Run(reader)
		return nil
	}
}
