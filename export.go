package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/tidwall/sjson"
)

func exportCommand() *cobra.Command {
	var (
		id     int64
		output string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a recorded query as JSON",
		Run: func(cmd *cobra.Command, args []string) {
			query := getQuery(id)
			switch output {
			case "stdout":
				document, err := query.JSON()
				if err != nil {
					logFatal(err)
				}
				if err = writeIndented(os.Stdout, document); err != nil {
					logFatal(err)
				}
			default:
				if err := writeQueryJSON(output, query); err != nil {
					logFatal(err)
				}
				logExport(output)
			}
		},
	}
	flags := cmd.PersistentFlags()
	flags.Int64Var(&id, "id", 0, "row id")
	flags.StringVarP(&output, "output", "o", "stdout", "output file path")
	cmd.MarkPersistentFlagRequired("id")
	cmd.MarkPersistentFlagFilename("output")
	return cmd
}

// JSON renders the query as a compact JSON document.
func (q *Query) JSON() (string, error) {
	var (
		document = `{}`
		err      error
	)
	set := func(path string, value any) {
		if err == nil {
			document, err = sjson.Set(document, path, value)
		}
	}
	set("id", q.ID)
	set("text.content", q.Text)
	set("text.length", q.TextLength)
	set("automaton.states", q.States)
	set("query.pattern", q.Pattern)
	set("query.occurrences", q.Occurrences)
	if q.BuildLatency.Valid {
		set("latency.build", time.Duration(q.BuildLatency.Int64).String())
	}
	if q.QueryLatency.Valid {
		set("latency.query", time.Duration(q.QueryLatency.Int64).String())
	}
	set("created_at", q.CreatedAt.Format(time.DateTime))
	if err != nil {
		return "", err
	}
	return document, nil
}

func writeIndented(w io.Writer, document string) error {
	var buffer bytes.Buffer
	if err := json.Indent(&buffer, []byte(document), "", "    "); err != nil {
		return err
	}
	buffer.WriteByte('\n')
	_, err := buffer.WriteTo(w)
	return err
}
