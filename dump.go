package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/MoonshotAI/samcount/automaton"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func dumpCommand() *cobra.Command {
	var (
		source sourceFlags
		verify bool
	)
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print every state of the suffix automaton built from a text",
		Run: func(cmd *cobra.Command, args []string) {
			text, opts, err := source.load(cmd.Flags(), bufio.NewReader(os.Stdin), os.Stderr)
			if err != nil {
				logFatal(err)
			}
			a, buildLatency, err := buildAutomaton(text, opts)
			if err != nil {
				logFatal(err)
			}
			defer a.Release()
			logBuild(a, buildLatency)
			if verify {
				if err = a.Verify(); err != nil {
					logFatal(err)
				}
				logger.Println(boldWhite("  Invariants:"), boldGreen("ok"))
			}
			t.AppendHeader(table.Row{"state", "length", "link", "count", "transitions"})
			for _, state := range a.Describe() {
				t.AppendRow(table.Row{
					state.Index,
					state.Length,
					formatLink(state.Link),
					state.Count,
					formatTransitions(state.Transitions),
				})
			}
			t.AppendFooter(table.Row{
				"", "", "", "",
				fmt.Sprintf("%d states, %d distinct substrings, repeatness %.4f",
					a.NumStates(), a.DistinctSubstrings(), a.Repeatness()),
			})
			t.SetColumnConfigs([]table.ColumnConfig{
				{Name: "transitions", WidthMax: 64},
			})
			t.SuppressTrailingSpaces()
			t.Render()
		},
	}
	flags := cmd.PersistentFlags()
	source.register(flags)
	flags.BoolVar(&verify, "verify", false, "check the automaton invariants before printing")
	cmd.MarkFlagsMutuallyExclusive("text", "file")
	cmd.MarkPersistentFlagFilename("file")
	return cmd
}

func formatLink(link automaton.StateRef) string {
	if link == automaton.None {
		return "-"
	}
	return strconv.Itoa(int(link))
}

func formatTransitions(transitions []automaton.Transition) string {
	var builder strings.Builder
	for i, transition := range transitions {
		if i > 0 {
			builder.WriteString(" ")
		}
		builder.WriteString(formatSymbol(transition.Symbol))
		builder.WriteString("→")
		builder.WriteString(strconv.Itoa(int(transition.Target)))
	}
	return builder.String()
}

func formatSymbol(c rune) string {
	if b, ok := automaton.SymbolByte(c); ok {
		return fmt.Sprintf(`'\x%02x'`, b)
	}
	return strconv.QuoteRune(c)
}
