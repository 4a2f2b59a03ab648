package cmd

import (
	"errors"
	"io/fs"
	"log"

	"github.com/josephlewis42/crsh/core/config"
	"github.com/josephlewis42/crsh/core/vos"
	"github.com/spf13/cobra"
)

var cfgPath string

func loadConfig() (*config.Configuration, error) {
	if cfgPath == "" {
		return config.Default(), nil
	}

	configuration, err := config.Load(cfgPath)

	if errors.Is(err, fs.ErrNotExist) {
		log.Println("Couldn't load config: did you run init?")
	}

	return configuration, err
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "crsh [SCRIPT]",
	Short: "A minimal command shell",
	Long: `crsh reads lines from the terminal, splits them on spaces and runs
the named builtin or program. Given a SCRIPT, its lines are run instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		stdio, recording, err := sessionIO(cmd)
		if err != nil {
			return err
		}
		defer recording.Close()

		return runSession(cmd, vos.NewHostOS(stdio), cfg, args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config directory, defaults are used if unset")
	addSessionFlags(rootCmd)
}
