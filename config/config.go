// Package config loads the settings of the nfa2dfa command from confl documents:
//
//	# nfa2dfa.conf
//	epsilon     = "E"
//	log_level   = warn
//	trace       = true
//	parallel    = false
//	format      = text
//	compression = 2
//
// Environment variables such as $HOME are expanded before decoding.
package config

import (
	"fmt"
	"os"

	"github.com/lytics/confl"
	"github.com/nihei9/nfa2dfa/automaton"
)

const (
	FormatText = "text"
	FormatGrid = "grid"
	FormatJSON = "json"
)

type Config struct {
	Epsilon     string `json:"epsilon"`     // symbol that stands for epsilon in the header of an NFA
	LogLevel    string `json:"log_level"`   // [debug,info,warn,error]
	Trace       bool   `json:"trace"`       // print the construction steps
	Parallel    bool   `json:"parallel"`    // compute the moves of a state concurrently
	Format      string `json:"format"`      // [text,grid,json]
	Compression int    `json:"compression"` // compression level of compiled DFAs [0,1,2]
}

func Default() *Config {
	return &Config{
		Epsilon:     automaton.DefaultEpsilon,
		LogLevel:    "warn",
		Trace:       true,
		Format:      FormatText,
		Compression: automaton.CompressionLevelMax,
	}
}

// Load reads a confl file. Keys missing from the file keep their default values.
func Load(filename string) (*Config, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	c, err := Parse(string(b))
	if err != nil {
		return nil, fmt.Errorf("%v: %w", filename, err)
	}
	return c, nil
}

func Parse(conf string) (*Config, error) {
	c := Default()
	if _, err := confl.Decode(os.ExpandEnv(conf), c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	if c.Epsilon == "" {
		return fmt.Errorf("epsilon must not be empty")
	}
	switch c.Format {
	case FormatText, FormatGrid, FormatJSON:
	default:
		return fmt.Errorf("unknown format: %v", c.Format)
	}
	if c.Compression < automaton.CompressionLevelMin || c.Compression > automaton.CompressionLevelMax {
		return fmt.Errorf("compression must be %v..%v: %v", automaton.CompressionLevelMin, automaton.CompressionLevelMax, c.Compression)
	}
	return nil
}
