// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package main

import (
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/marwlod/bwt/bwt"
)

// Config is the TOML configuration of the tool. Flags override file values,
// which override the defaults.
type Config struct {
	Transform TransformConfig
	Log       LogConfig
}

// TransformConfig selects how blocks are sorted and how large they may be.
type TransformConfig struct {
	Algorithm    string // Name of the rotation sorting algorithm
	MaxBlockSize int    // Largest accepted block in bytes
}

// LogConfig controls the records written to standard error.
type LogConfig struct {
	Level string // slog level name
	JSON  bool   // Force JSON output even on a terminal
}

var defaultConfig = Config{
	Transform: TransformConfig{
		Algorithm:    bwt.PrefixDoubling.String(),
		MaxBlockSize: 64 << 20,
	},
	Log: LogConfig{
		Level: "info",
	},
}

var (
	configFileFlag = &cli.StringFlag{
		Name:    "config",
		Usage:   "TOML configuration file",
		EnvVars: []string{"BWT_CONFIG"},
	}
	algorithmFlag = &cli.StringFlag{
		Name:    "algorithm",
		Usage:   "rotation sorting algorithm (doubling, comparison, parallel)",
		Value:   defaultConfig.Transform.Algorithm,
		EnvVars: []string{"BWT_ALGORITHM"},
	}
	maxBlockSizeFlag = &cli.IntFlag{
		Name:    "max-block-size",
		Usage:   "largest accepted block in bytes; framed inputs may be 4 bytes longer",
		Value:   defaultConfig.Transform.MaxBlockSize,
		EnvVars: []string{"BWT_MAX_BLOCK_SIZE"},
	}
	verbosityFlag = &cli.StringFlag{
		Name:    "verbosity",
		Usage:   "log level (debug, info, warn, error)",
		Value:   defaultConfig.Log.Level,
		EnvVars: []string{"BWT_VERBOSITY"},
	}
	logJSONFlag = &cli.BoolFlag{
		Name:    "log.json",
		Usage:   "format logs as JSON",
		EnvVars: []string{"BWT_LOG_JSON"},
	}
)

func loadConfig(file string, cfg *Config) error {
	md, err := toml.DecodeFile(file, cfg)
	if err != nil {
		return errors.Wrapf(err, "loading config %s", file)
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		var names []string
		for _, k := range keys {
			names = append(names, k.String())
		}
		return errors.Errorf("config %s: unknown keys %s", file, strings.Join(names, ", "))
	}
	return nil
}

// makeConfig layers the defaults, the config file and the global flags.
func makeConfig(c *cli.Context) (*Config, error) {
	cfg := defaultConfig
	if file := c.String(configFileFlag.Name); file != "" {
		if err := loadConfig(file, &cfg); err != nil {
			return nil, err
		}
	}
	if c.IsSet(algorithmFlag.Name) {
		cfg.Transform.Algorithm = c.String(algorithmFlag.Name)
	}
	if c.IsSet(maxBlockSizeFlag.Name) {
		cfg.Transform.MaxBlockSize = c.Int(maxBlockSizeFlag.Name)
	}
	if c.IsSet(verbosityFlag.Name) {
		cfg.Log.Level = c.String(verbosityFlag.Name)
	}
	if c.IsSet(logJSONFlag.Name) {
		cfg.Log.JSON = c.Bool(logJSONFlag.Name)
	}

	if _, err := bwt.ParseAlgorithm(cfg.Transform.Algorithm); err != nil {
		return nil, err
	}
	if n := cfg.Transform.MaxBlockSize; n <= 0 || n > bwt.MaxBlockSize {
		return nil, errors.Errorf("max block size %d not in [1, %d]", n, bwt.MaxBlockSize)
	}
	return &cfg, nil
}

func (cfg *Config) algorithm() bwt.Algorithm {
	alg, _ := bwt.ParseAlgorithm(cfg.Transform.Algorithm)
	return alg
}
