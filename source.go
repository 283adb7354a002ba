package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/MoonshotAI/samcount/automaton"
	"github.com/spf13/pflag"
)

// sourceFlags are the flags shared by every command that builds an automaton.
type sourceFlags struct {
	text      string
	file      string
	maxStates int
	newline   bool
}

func (s *sourceFlags) register(flags *pflag.FlagSet) {
	flags.StringVarP(&s.text, "text", "t", "", "text to build the automaton from")
	flags.StringVarP(&s.file, "file", "f", "", "read the text from file")
	flags.IntVar(&s.maxStates, "max-states", 0, "maximum number of automaton states, 0 means 2 * text length, negative means unbounded")
	flags.BoolVar(&s.newline, "newline", false, "append a trailing newline to the text")
}

// load resolves the text and build options from flags, config and, when
// neither --text nor --file is given, one line of in.
func (s *sourceFlags) load(flags *pflag.FlagSet, in *bufio.Reader, prompts io.Writer) (string, automaton.Options, error) {
	opts := SamConfig.Options()
	if flags.Changed("max-states") {
		opts.MaxStates = s.maxStates
	}
	appendNewline := SamConfig.AppendNewline
	if flags.Changed("newline") {
		appendNewline = s.newline
	}
	var text string
	switch {
	case flags.Changed("text"):
		text = s.text
	case s.file != "":
		content, err := os.ReadFile(s.file)
		if err != nil {
			return "", opts, err
		}
		text = string(content)
	default:
		line, err := promptLine(in, prompts, "Enter the text to build the automaton from:")
		if err != nil {
			return "", opts, fmt.Errorf("read text: %w", err)
		}
		text = line
	}
	if appendNewline {
		text += "\n"
	}
	return text, opts, nil
}

// promptLine writes message to prompts and reads one line from in, without
// its line terminator. A final line lacking a terminator is accepted.
func promptLine(in *bufio.Reader, prompts io.Writer, message string) (string, error) {
	if prompts != nil {
		fmt.Fprintln(prompts, boldWhite(message))
	}
	line, err := in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) || line == "" {
			return "", err
		}
	}
	return strings.TrimRight(line, "\r\n"), nil
}
