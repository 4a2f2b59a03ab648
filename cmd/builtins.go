package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/josephlewis42/crsh/commands"
	"github.com/josephlewis42/crsh/core/shell"
	"github.com/spf13/cobra"
)

// builtinsCmd lists what can be run without a host program
var builtinsCmd = &cobra.Command{
	Use:   "builtins",
	Short: "Show the shell builtins and the playground programs.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var builtins []string

		for _, entry := range commands.ListBuiltinCommands() {
			builtins = append(builtins, strings.Join(entry.Names, ", "))
		}

		for name := range shell.AllBuiltins {
			builtins = append(builtins, "shell:"+name)
		}

		sort.Strings(builtins)

		for _, v := range builtins {
			fmt.Fprintln(cmd.OutOrStdout(), v)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(builtinsCmd)
}
