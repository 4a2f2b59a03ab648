package cmd

import (
	"log"

	"github.com/josephlewis42/crsh/commands"
	"github.com/josephlewis42/crsh/core/vos"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

const (
	playgroundHome = "/root"
	playgroundPath = "/bin:/usr/bin"
)

var playgroundRoot string

// newPlaygroundFs builds the sandbox filesystem. A host directory is mounted
// read-only with changes kept in memory.
func newPlaygroundFs(root string) (vos.VFS, error) {
	var base vos.VFS
	if root == "" {
		base = vos.NewMemFs()
	} else {
		readOnly := afero.NewReadOnlyFs(afero.NewBasePathFs(afero.NewOsFs(), root))
		base = afero.NewCopyOnWriteFs(readOnly, vos.NewMemFs())
	}

	for _, dir := range []string{playgroundHome, "/tmp"} {
		if err := base.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}

	if err := commands.InstallPrograms(base); err != nil {
		return nil, err
	}

	return base, nil
}

// playgroundCmd runs the shell in a sandbox with builtin programs
var playgroundCmd = &cobra.Command{
	Use:   "playground [SCRIPT]",
	Short: "Run the shell in a sandbox that can't change the host.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		playgroundLogger := log.New(cmd.ErrOrStderr(), "[playground] ", 0)

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		fs, err := newPlaygroundFs(playgroundRoot)
		if err != nil {
			return err
		}

		stdio, recording, err := sessionIO(cmd)
		if err != nil {
			return err
		}
		defer recording.Close()

		sandbox := vos.NewSandboxOS(fs, commands.ProcessResolver, stdio)
		sandbox.Setenv(cfg.Env.SearchPath, playgroundPath)
		sandbox.Setenv(cfg.Env.Home, playgroundHome)
		if err := sandbox.Chdir(playgroundHome); err != nil {
			return err
		}

		if cfg.EventLog && cfg.Dir() != "" {
			playgroundLogger.Printf("Logging events to: %s", cfg.Dir())
		}
		playgroundLogger.Println("Run builtins with e.g. ls, cat or which.")

		return runSession(cmd, sandbox, cfg, args)
	},
}

func init() {
	playgroundCmd.Flags().StringVar(&playgroundRoot, "root", "", "host directory to use as the sandbox root")
	addSessionFlags(playgroundCmd)
	rootCmd.AddCommand(playgroundCmd)
}
