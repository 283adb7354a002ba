package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/MoonshotAI/samcount/automaton"
	"github.com/fatih/color"
)

var (
	logger = log.New(os.Stderr, boldGreen("[samcount] "), log.LstdFlags)
)

var (
	boldWhite  = color.New(color.FgHiWhite, color.Bold).SprintfFunc()
	boldGreen  = color.New(color.FgGreen, color.Bold).SprintfFunc()
	boldYellow = color.New(color.FgYellow, color.Bold).SprintfFunc()
	boldRed    = color.New(color.FgRed, color.Bold).SprintfFunc()
	green      = color.New(color.FgHiGreen).SprintfFunc()
	red        = color.New(color.FgRed).SprintfFunc()
)

func logBuild(a *automaton.Automaton, latency time.Duration) {
	logger.Printf("%s %s %.4fs\n",
		boldYellow(fmt.Sprintf("%-6s", "BUILD")),
		boldWhite(fmt.Sprintf("%d runes", a.TextLength())),
		float64(latency)/float64(time.Second),
	)
	logger.Printf("  - states:              %d\n", a.NumStates())
	logger.Printf("  - distinct_substrings: %d\n", a.DistinctSubstrings())
	logger.Printf("  - repeatness:          %.4f\n", a.Repeatness())
}

func logQuery(pattern string, occurrences int, latency time.Duration) {
	result := strconv.Itoa(occurrences)
	if occurrences > 0 {
		result = green(result)
	} else {
		result = red(result)
	}
	logger.Printf("%s %s %s %.6fs\n",
		boldYellow(fmt.Sprintf("%-6s", "QUERY")),
		boldWhite(fmt.Sprintf("%q", pattern)),
		result,
		float64(latency)/float64(time.Second),
	)
}

func logNewRow(id int64) {
	logger.Println(
		boldWhite("  New Row Inserted:"),
		boldGreen(fmt.Sprintf("last_insert_id=%d", id)),
	)
}

func logExport(path string) {
	logger.Println(
		boldWhite("  Exported:"),
		boldGreen(path),
	)
}

func logFatal(err error) {
	if errorMsg := err.Error(); errorMsg != "" {
		render := boldRed
		if errors.Is(err, automaton.ErrCapacityExceeded) {
			render = boldYellow
		}
		for _, line := range strings.Split(errorMsg, "\n") {
			fmt.Fprintln(os.Stderr, render(line))
		}
	}
	os.Exit(2)
}
