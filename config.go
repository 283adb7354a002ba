package main

import (
	"io"

	"github.com/MoonshotAI/samcount/automaton"
	"gopkg.in/yaml.v3"
)

var SamConfig = new(Config)

type Config struct {
	MaxStates     int    `yaml:"max_states"`
	AppendNewline bool   `yaml:"append_newline"`
	Record        *bool  `yaml:"record"`
	Database      string `yaml:"database"`
}

func loadConfig() {
	if file := getConfig(); file != nil {
		defer file.Close()
		config, err := decodeConfig(file)
		if err != nil {
			logFatal(err)
		}
		SamConfig = config
	}
}

func decodeConfig(r io.Reader) (*Config, error) {
	config := new(Config)
	if err := yaml.NewDecoder(r).Decode(config); err != nil && err != io.EOF {
		return nil, err
	}
	return config, nil
}

// ShouldRecord reports whether answered queries go to the history database.
// Recording is on unless the config turns it off.
func (c *Config) ShouldRecord() bool {
	return c.Record == nil || *c.Record
}

func (c *Config) Options() automaton.Options {
	return automaton.Options{MaxStates: c.MaxStates}
}
