package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/MoonshotAI/samcount/automaton"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func countCommand() *cobra.Command {
	var (
		source   sourceFlags
		patterns []string
		noRecord bool
	)
	cmd := &cobra.Command{
		Use:   "count",
		Short: "Count the occurrences of patterns in a text",
		Run: func(cmd *cobra.Command, args []string) {
			in := bufio.NewReader(os.Stdin)
			text, opts, err := source.load(cmd.Flags(), in, os.Stderr)
			if err != nil {
				logFatal(err)
			}
			a, buildLatency, err := buildAutomaton(text, opts)
			if err != nil {
				logFatal(err)
			}
			defer a.Release()
			logBuild(a, buildLatency)
			if len(patterns) == 0 {
				pattern, err := promptLine(in, os.Stderr, "Enter the pattern to count:")
				if err != nil {
					logFatal(fmt.Errorf("read pattern: %w", err))
				}
				patterns = append(patterns, pattern)
			}
			var persistence *Persistence
			if SamConfig.ShouldRecord() && !noRecord {
				persistence = mustOpenPersistence()
				defer persistence.Close()
			}
			t.AppendHeader(table.Row{"pattern", "occurrences", "latency"})
			for _, pattern := range patterns {
				startedAt := time.Now()
				occurrences := a.Occurrences(pattern)
				queryLatency := time.Since(startedAt)
				logQuery(pattern, occurrences, queryLatency)
				t.AppendRow(table.Row{
					strconv.Quote(pattern),
					occurrences,
					queryLatency.String(),
				})
				if persistence != nil {
					id, err := persistence.Record(newQuery(a, text, pattern, occurrences, buildLatency, queryLatency))
					if err != nil {
						logFatal(err)
					}
					logNewRow(id)
				}
			}
			t.Render()
		},
	}
	flags := cmd.PersistentFlags()
	source.register(flags)
	flags.StringArrayVarP(&patterns, "pattern", "p", nil, "pattern to count, may be repeated")
	flags.BoolVar(&noRecord, "no-record", false, "do not record the queries in the history database")
	cmd.MarkFlagsMutuallyExclusive("text", "file")
	cmd.MarkPersistentFlagFilename("file")
	return cmd
}

func buildAutomaton(text string, opts automaton.Options) (*automaton.Automaton, time.Duration, error) {
	startedAt := time.Now()
	a, err := automaton.Build(text, opts)
	if err != nil {
		if errors.Is(err, automaton.ErrCapacityExceeded) {
			err = fmt.Errorf("%w\nraise --max-states (or max_states in config.yaml), or use a shorter text", err)
		}
		return nil, 0, fmt.Errorf("build: %w", err)
	}
	return a, time.Since(startedAt), nil
}
