package main

import (
	"github.com/spf13/cobra"
)

func init() {
	SamCount.AddCommand(
		countCommand(),
		dumpCommand(),
		listCommand(),
		cleanupCommand(),
		exportCommand(),
	)
}

var (
	SamCount = &cobra.Command{
		Use:           "samcount",
		Version:       "v0.1.0",
		Short:         "samcount builds a suffix automaton over a text and counts pattern occurrences in it",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			loadConfig()
		},
	}
)

func main() {
	if err := SamCount.Execute(); err != nil {
		logFatal(err)
	}
}
