package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// genConfig holds everything a generation run needs. Values come from the
// optional TOML config file and are overridden by command-line flags.
type genConfig struct {
	OutPath      string
	SrcPaths     []string
	IncludePaths []string
	PackageName  string
	Cleanup      bool
}

type fileConfig struct {
	OutPath      string   `toml:"out_path"`
	SrcPaths     []string `toml:"src_paths"`
	IncludePaths []string `toml:"include_paths"`
	PackageName  string   `toml:"package_name"`
	Cleanup      bool     `toml:"cleanup_out_path"`
}

// loadConfigFile merges settings from a TOML file into cfg. Only keys
// actually present in the file are applied.
func loadConfigFile(path string, cfg *genConfig) error {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("load config: unknown keys: %s", strings.Join(keys, ", "))
	}

	if meta.IsDefined("out_path") {
		cfg.OutPath = strings.TrimSpace(raw.OutPath)
	}
	if meta.IsDefined("src_paths") {
		cfg.SrcPaths = normalizePaths(raw.SrcPaths)
	}
	if meta.IsDefined("include_paths") {
		cfg.IncludePaths = normalizePaths(raw.IncludePaths)
	}
	if meta.IsDefined("package_name") {
		cfg.PackageName = strings.TrimSpace(raw.PackageName)
	}
	if meta.IsDefined("cleanup_out_path") {
		cfg.Cleanup = raw.Cleanup
	}
	return nil
}

func normalizePaths(in []string) []string {
	out := make([]string, 0, len(in))
	for _, p := range in {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}
