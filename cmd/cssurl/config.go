package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/yacobolo/cssurl"
)

var k = koanf.New(".")

// defaultIncludes applies when neither flags nor config name any pattern.
var defaultIncludes = []string{"**/*.css"}

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	// Resolve config file path from flag
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = ".cssurl.yaml"
	}

	// Load config file and env vars
	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// 3. CLI flags (highest precedence). Unchanged flags only fill in keys
	// that neither the file nor the environment set.
	flags := cmd.Flags()
	provider := posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
		if f.Name == "config" {
			return "", nil
		}
		return flagKey(f.Name), posflag.FlagVal(flags, f)
	})
	if err := k.Load(provider, nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// flagKey maps a flag name to its config key: --filter-all -> filter.all
func flagKey(name string) string {
	if rest, ok := strings.CutPrefix(name, "filter-"); ok {
		return "filter." + rest
	}
	return name
}

// loadConfigFromPath loads configuration from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(configPath string) error {
	// 1. Config file (lowest precedence among providers)
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// 2. Environment variables (CSSURL_* prefix)
	if err := k.Load(env.Provider("CSSURL_", ".", envKey), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// envKey maps an environment variable to its config key:
//
//	CSSURL_OUTPUT_DIR    -> output-dir
//	CSSURL_FILTER__ALL   -> filter.all
//	CSSURL_VERBOSE       -> verbose
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, "CSSURL_"))
	key = strings.ReplaceAll(key, "__", ".")
	return strings.ReplaceAll(key, "_", "-")
}

// buildConfig constructs the library's Config struct from koanf state.
func buildConfig() cssurl.Config {
	return cssurl.Config{
		SourceDir:        getStringWithFallback("source", "."),
		Includes:         getStringsWithFallback("include", defaultIncludes),
		OutputDir:        getStringWithFallback("output-dir", ""),
		Stdout:           getBoolWithFallback("stdout", false),
		Check:            getBoolWithFallback("check", false),
		RespectGitignore: getBoolWithFallback("respect-gitignore", true),
		Verbose:          getBoolWithFallback("verbose", false),
		Filter: cssurl.FilterConfig{
			All:     getBoolWithFallback("filter.all", false),
			Include: k.Strings("filter.include"),
			Exclude: k.Strings("filter.exclude"),
		},
	}
}

// getStringWithFallback returns the value at key, or defaultVal when it is unset or empty.
func getStringWithFallback(key, defaultVal string) string {
	if v := k.String(key); v != "" {
		return v
	}
	return defaultVal
}

// getBoolWithFallback returns the value at key, or defaultVal when it is unset.
func getBoolWithFallback(key string, defaultVal bool) bool {
	if k.Exists(key) {
		return k.Bool(key)
	}
	return defaultVal
}

// getStringsWithFallback returns the list at key, or defaultVal when it is unset or empty.
func getStringsWithFallback(key string, defaultVal []string) []string {
	if v := k.Strings(key); len(v) > 0 {
		return v
	}
	return defaultVal
}
