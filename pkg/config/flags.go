package config

import (
	"fmt"

	"github.com/levenlabs/go-lflag"
)

// Configured registers the scenario flags and returns the scenario once the
// flags are parsed. Flags override the file.
func Configured() *Config {
	path := lflag.String("config", "", "YAML scenario file (defaults to the built-in scenario)")
	dataDir := lflag.String("data-dir", "", "Directory of PG&E interval CSV exports (overrides data_dir)")
	xlsxOut := lflag.String("xlsx-out", "", "Write the sweep grid to this XLSX file (overrides xlsx_out)")
	workers := lflag.Int("sweep-workers", 0, "Concurrent sweep evaluations; 0 uses GOMAXPROCS (overrides sweep.workers)")

	cfg := &Config{}

	lflag.Do(func() {
		loaded, err := Load(*path)
		if err != nil {
			panic(fmt.Sprintf("config load failed: %v", err))
		}
		loaded = loaded.withOverrides(*dataDir, *xlsxOut, *workers)
		if err := loaded.Validate(); err != nil {
			panic(fmt.Sprintf("config validation failed: %v", err))
		}
		*cfg = loaded
	})

	return cfg
}

// withOverrides applies the non-zero flag values on top of c.
func (c Config) withOverrides(dataDir, xlsxOut string, workers int) Config {
	if dataDir != "" {
		c.DataDir = dataDir
	}
	if xlsxOut != "" {
		c.XLSXOut = xlsxOut
	}
	if workers > 0 {
		c.Sweep.Workers = workers
	}
	return c
}
