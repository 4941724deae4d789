// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/db47h/radix"
	"github.com/db47h/radix/history/sqlitestore"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Precision != radix.Max || cfg.Mode != radix.ModeTrunc || !cfg.Recording || cfg.HistoryDSN != "" {
		t.Fatalf("defaults = %+v", cfg)
	}
}

func TestLoad(t *testing.T) {
	t.Setenv("RADIX_PRECISION", "3")
	t.Setenv("RADIX_TRUNCATION", "round")
	t.Setenv("RADIX_RECORDING", "false")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	c, err := cfg.Context()
	if err != nil {
		t.Fatal(err)
	}
	if c.Prec() != 3 || c.Mode() != radix.ModeRound || c.Recording() {
		t.Fatalf("context = %s, recording %v", c, c.Recording())
	}
}

func TestLoadError(t *testing.T) {
	for _, kv := range [][2]string{
		{"RADIX_PRECISION", "many"},
		{"RADIX_TRUNCATION", "half_even"},
		{"RADIX_RECORDING", "maybe"},
	} {
		t.Run(kv[0], func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			_, err := Load()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), "parse env:") {
				t.Fatalf("expected parse env prefix, got %v", err)
			}
		})
	}
}

func TestApply(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "history.db")
	t.Setenv("RADIX_PRECISION", "1")
	t.Setenv("RADIX_HISTORY_DSN", dsn)
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	before := radix.Active()
	closer, err := cfg.Apply()
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if radix.Active().Prec() != 1 {
		t.Errorf("ambient precision = %s", radix.Active().Prec())
	}
	n := radix.DefaultHistory.Len()
	x, err := radix.Sexagesimal.MustParse("0;20").Mul(radix.Sexagesimal.MustParse("3"))
	if err != nil {
		t.Fatal(err)
	}
	if x.String() != "01 ; 00" {
		t.Errorf("0;20 * 3 = %s", x)
	}
	if radix.DefaultHistory.Len() != n+1 {
		t.Error("default history not recorded")
	}
	if err := closer(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if radix.Active() != before {
		t.Error("ambient context not restored")
	}

	store, err := sqlitestore.Open(dsn)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	if n, err := store.Count(context.Background()); err != nil || n != 1 {
		t.Errorf("stored records = %d, %v; want 1", n, err)
	}
}

func TestApplyInScope(t *testing.T) {
	err := radix.WithPrecision(func(*radix.Context) error {
		_, err := Config{Precision: radix.Max, Recording: true}.Apply()
		return err
	}, radix.WithPrec(2))
	if err == nil {
		t.Fatal("Apply inside a scope succeeded")
	}
}
