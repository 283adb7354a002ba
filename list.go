package main

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-runewidth"
	"github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"
)

var t table.Writer

func init() {
	runewidth.EastAsianWidth = true
	text.OverrideRuneWidthEastAsianWidth(true)
	t = table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(style)
}

var style = table.Style{
	Name:    "StyleSamCount",
	Box:     table.StyleBoxDefault,
	Color:   table.ColorOptionsDefault,
	HTML:    table.DefaultHTMLOptions,
	Options: table.OptionsDefault,
	Title:   table.TitleOptionsDefault,
	Format: table.FormatOptions{
		Footer: text.FormatDefault,
		Header: text.FormatDefault,
		Row:    text.FormatDefault,
	},
}

const previewWidth = 32

// preview shortens text for a table cell, keeping wide runes aligned.
func preview(s string) string {
	s = strings.NewReplacer("\r", `\r`, "\n", `\n`, "\t", `\t`).Replace(s)
	return runewidth.Truncate(s, previewWidth, "...")
}

func listCommand() *cobra.Command {
	var (
		n       int64
		verbose bool
		pattern string
		grep    string
		export  string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List previously answered queries",
		Run: func(cmd *cobra.Command, args []string) {
			// If an export is needed and the n value is not set,
			// then there is no limit to the number of rows.
			if export != "" && !cmd.Flags().Changed("n") {
				n = 0
			}
			persistence := mustOpenPersistence()
			defer persistence.Close()
			queries, err := persistence.ListQueries(n, pattern, grep)
			if err != nil {
				if sqliteErr := new(sqlite3.Error); errors.As(err, sqliteErr) {
					logFatal(sqliteErr)
				}
				logFatal(err)
			}
			if export != "" {
				for _, query := range queries {
					path := filepath.Join(export, "query-"+strconv.FormatInt(query.ID, 10)+".json")
					if err = writeQueryJSON(path, query); err != nil {
						logFatal(err)
					}
					logExport(path)
				}
				return
			}
			if verbose {
				t.AppendHeader(table.Row{
					"id",
					"pattern",
					"occurrences",
					"text",
					"text_length",
					"states",
					"build_latency",
					"query_latency",
					"created_at",
				})
			} else {
				t.AppendHeader(table.Row{
					"id",
					"pattern",
					"occurrences",
					"text",
					"created_at",
				})
			}
			for _, query := range queries {
				if verbose {
					t.AppendRow(table.Row{
						strconv.FormatInt(query.ID, 10),
						strconv.Quote(query.Pattern),
						query.Occurrences,
						preview(query.Text),
						query.TextLength,
						query.States,
						time.Duration(query.BuildLatency.Int64).String(),
						time.Duration(query.QueryLatency.Int64).String(),
						query.CreatedAt.Format(time.DateTime),
					})
				} else {
					t.AppendRow(table.Row{
						strconv.FormatInt(query.ID, 10),
						strconv.Quote(query.Pattern),
						query.Occurrences,
						preview(query.Text),
						query.CreatedAt.Format(time.DateTime),
					})
				}
			}
			t.Render()
		},
	}
	flags := cmd.PersistentFlags()
	flags.Int64VarP(&n, "n", "n", 10, "number of results to return")
	flags.BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	flags.StringVarP(&pattern, "pattern", "p", "", "only list queries for this exact pattern")
	flags.StringVar(&grep, "grep", "", "only list queries whose text contains this substring")
	flags.StringVar(&export, "export", "", "export queries to directory")
	cmd.MarkPersistentFlagDirname("export")
	return cmd
}

func cleanupCommand() *cobra.Command {
	var (
		before string
	)
	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Cleanup recorded queries",
		Run: func(cmd *cobra.Command, args []string) {
			_, errParseDateOnly := time.Parse(time.DateOnly, before)
			_, errParseDateTime := time.Parse(time.DateTime, before)
			if errParseDateOnly != nil && errParseDateTime != nil {
				logFatal(
					fmt.Errorf(
						"the date(time) format is either YYYY-mm-dd or YYYY-mm-dd HH:MM:SS, got %s",
						before,
					),
				)
			}
			persistence := mustOpenPersistence()
			defer persistence.Close()
			result, err := persistence.Cleanup(before)
			if err != nil {
				logFatal(err)
			}
			rowsAffected, err := result.RowsAffected()
			if err != nil {
				logFatal(err)
			}
			t.AppendRow(table.Row{"cleanup", rowsAffected})
			t.Render()
		},
	}
	flags := cmd.PersistentFlags()
	flags.StringVar(
		&before,
		"before",
		time.Now().AddDate(0, 0, -7).Format(time.DateOnly),
		"queries recorded before this time will be cleanup",
	)
	return cmd
}

func getQuery(id int64) *Query {
	persistence := mustOpenPersistence()
	defer persistence.Close()
	query, err := persistence.GetQuery(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logFatal(fmt.Errorf("query id=%d: %w", id, sql.ErrNoRows))
		}
		logFatal(err)
	}
	return query
}

func writeQueryJSON(path string, query *Query) error {
	document, err := query.JSON()
	if err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return writeIndented(file, document)
}
