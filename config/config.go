// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"encoding/json"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Config struct {
	// DBDir is where the pebble store lives.
	DBDir string `json:"dbDir"`

	LogLevel string `json:"logLevel"`

	// LogFile enables rotated file logging when set; stderr logging is
	// always on.
	LogFile       string `json:"logFile"`
	LogMaxSizeMB  int    `json:"logMaxSizeMB"`
	LogMaxBackups int    `json:"logMaxBackups"`
}

func Default() *Config {
	return &Config{
		DBDir:         ".provault",
		LogLevel:      "info",
		LogMaxSizeMB:  128,
		LogMaxBackups: 8,
	}
}

// New overlays JSON config bytes on the defaults.
func New(b []byte) (*Config, error) {
	c := Default()
	if len(b) > 0 {
		if err := json.Unmarshal(b, c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// NewLogger builds the service logger: structured stderr output, plus a
// rotated file sink when [LogFile] is set.
func (c *Config) NewLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(
			zapcore.NewConsoleEncoder(encCfg),
			zapcore.Lock(zapcore.AddSync(os.Stderr)),
			level,
		),
	}
	if c.LogFile != "" {
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encCfg),
			zapcore.AddSync(&lumberjack.Logger{
				Filename:   c.LogFile,
				MaxSize:    c.LogMaxSizeMB,
				MaxBackups: c.LogMaxBackups,
			}),
			level,
		))
	}
	return zap.New(zapcore.NewTee(cores...)), nil
}
