// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config sets up the ambient radix context from environment variables.
//
//	RADIX_PRECISION     "max", "sci" or a number of places (default "max")
//	RADIX_TRUNCATION    "trunc", "round", "ceil" or "floor" (default "trunc")
//	RADIX_RECORDING     record operations (default true)
//	RADIX_HISTORY_DSN   path of a SQLite database receiving the records
package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/db47h/radix"
	"github.com/db47h/radix/history/sqlitestore"
)

// Config is the environment configuration of the ambient context.
type Config struct {
	Precision  radix.Precision      `env:"RADIX_PRECISION"   envDefault:"max"`
	Mode       radix.TruncationMode `env:"RADIX_TRUNCATION"  envDefault:"trunc"`
	Recording  bool                 `env:"RADIX_RECORDING"   envDefault:"true"`
	HistoryDSN string               `env:"RADIX_HISTORY_DSN"`
}

// Load parses the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Context returns the default context with the precision, truncation mode and
// recording switch of cfg.
func (cfg Config) Context() (*radix.Context, error) {
	return radix.DefaultContext().With(
		radix.WithPrec(cfg.Precision),
		radix.WithMode(cfg.Mode),
		radix.WithRecording(cfg.Recording),
	)
}

// Apply installs the context of cfg as the ambient context. If a history DSN
// is set, records also go to the SQLite store it names. The returned function
// closes the store and reinstalls the previous ambient context.
func (cfg Config) Apply() (closer func() error, err error) {
	c, err := cfg.Context()
	if err != nil {
		return nil, err
	}
	var store *sqlitestore.Store
	if cfg.HistoryDSN != "" {
		if store, err = sqlitestore.Open(cfg.HistoryDSN); err != nil {
			return nil, fmt.Errorf("open history: %w", err)
		}
		if c, err = c.With(radix.WithRecorder(radix.MultiRecorder(radix.DefaultHistory, store))); err != nil {
			_ = store.Close()
			return nil, err
		}
	}
	prev := radix.Active()
	if err := radix.SetContext(c); err != nil {
		if store != nil {
			_ = store.Close()
		}
		return nil, err
	}
	return func() error {
		err := radix.SetContext(prev)
		if store != nil {
			err = errors.Join(err, store.Err(), store.Close())
		}
		return err
	}, nil
}
