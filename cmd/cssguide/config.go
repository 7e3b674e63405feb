package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/tidwall/jsonc"

	"github.com/yacobolo/cssguide/internal/config"
	"github.com/yacobolo/cssguide/internal/diag"
	"github.com/yacobolo/cssguide/internal/discover"
	"github.com/yacobolo/cssguide/internal/report"
)

var k = koanf.New(".")

// defaultConfigFiles are tried in order when --config is not given.
var defaultConfigFiles = []string{".cssguide.yaml", ".cssguide.yml", ".cssguide.jsonc", ".cssguide.json"}

// flagKeys maps command-line flags to configuration keys.
var flagKeys = map[string]string{
	"verbose":             "verbose",
	"quiet":               "quiet",
	"color":               "color",
	"indent":              "style.indent",
	"indent-width":        "style.indent-width",
	"quote":               "style.quote",
	"blank-lines":         "style.blank-lines",
	"max-nesting-depth":   "style.max-nesting-depth",
	"preprocessor":        "style.preprocessor",
	"min-class-length":    "style.min-class-length",
	"tie-break":           "style.tie-break",
	"fix":                 "style.fix",
	"enable":              "enable",
	"disable":             "disable",
	"strict":              "lint.strict",
	"output-format":       "lint.output-format",
	"max-issues-per-rule": "lint.max-issues-per-rule",
	"max-same-issues":     "lint.max-same-issues",
	"print-lines":         "lint.print-lines",
	"print-rule-name":     "lint.print-rule-name",
	"exclude":             "lint.exclude",
	"workers":             "lint.workers",
	"timeout":             "lint.timeout",
}

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")

	// Load config file and env vars
	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// 3. CLI flags (highest precedence, only flags that were explicitly set)
	fs := cmd.Flags()
	provider := posflag.ProviderWithFlag(fs, ".", k, func(f *pflag.Flag) (string, any) {
		key, ok := flagKeys[f.Name]
		if !ok || !f.Changed {
			return "", nil
		}
		return key, posflag.FlagVal(fs, f)
	})
	if err := k.Load(provider, nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// loadConfigFromPath loads configuration from a file and environment variables.
// An empty path searches the working directory for a default config file;
// an explicit path must exist.
func loadConfigFromPath(configPath string) error {
	// 1. Config file (lowest precedence among providers)
	path, err := resolveConfigPath(configPath)
	if err != nil {
		return err
	}
	if path != "" {
		if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
			return fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	// 2. Environment variables (CSSGUIDE_* prefix)
	if err := k.Load(env.Provider("CSSGUIDE_", ".", envKey), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

func resolveConfigPath(configPath string) (string, error) {
	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			return "", fmt.Errorf("config file: %w", err)
		}
		return configPath, nil
	}

	for _, candidate := range defaultConfigFiles {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", nil
}

// envKey maps environment variable names to configuration keys. A double
// underscore separates levels and a single underscore stands for a hyphen:
//
//	CSSGUIDE_VERBOSE                 -> verbose
//	CSSGUIDE_STYLE__INDENT_WIDTH     -> style.indent-width
//	CSSGUIDE_STYLE__CHECKS__HEX_COLOR -> style.checks.hex-color
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, "CSSGUIDE_"))
	parts := strings.Split(s, "__")
	for i, p := range parts {
		parts[i] = strings.ReplaceAll(p, "_", "-")
	}
	return strings.Join(parts, ".")
}

// parserFor picks the parser for a config file by extension. JSON is a
// subset of YAML, so comments and trailing commas are stripped from .json
// and .jsonc files and the result goes through the YAML parser.
func parserFor(path string) koanf.Parser {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".json") || strings.HasSuffix(lower, ".jsonc") {
		return jsoncParser{}
	}
	return yaml.Parser()
}

type jsoncParser struct{}

func (jsoncParser) Unmarshal(b []byte) (map[string]any, error) {
	return yaml.Parser().Unmarshal(jsonc.ToJSON(b))
}

func (jsoncParser) Marshal(m map[string]any) ([]byte, error) {
	return yaml.Parser().Marshal(m)
}

// buildStyleConfig constructs the style configuration from koanf state.
func buildStyleConfig() (*config.Config, error) {
	def := config.Default()

	opts := []config.Option{
		config.WithIndent(
			config.IndentChar(getStringWithFallback("style.indent", string(def.Indent))),
			getIntWithFallback("style.indent-width", def.IndentWidth)),
		config.WithQuote(config.Quote(getStringWithFallback("style.quote", string(def.Quote)))),
		config.WithBlankLines(getIntWithFallback("style.blank-lines", def.BlankLines)),
		config.WithMaxNestingDepth(getIntWithFallback("style.max-nesting-depth", def.MaxNestingDepth)),
		config.WithPreprocessor(getBoolWithFallback("style.preprocessor", def.Preprocessor)),
		config.WithMinClassLength(getIntWithFallback("style.min-class-length", def.MinClassLength)),
		config.WithTieBreak(diag.TieBreak(getStringWithFallback("style.tie-break", string(def.TieBreak)))),
		config.WithFix(getBoolWithFallback("style.fix", def.Fix)),
	}

	if k.Exists("style.zero-unit-properties") {
		opts = append(opts, config.WithZeroUnitProperties(k.Strings("style.zero-unit-properties")...))
	}
	if k.Exists("style.naming-allow") {
		opts = append(opts, config.WithNamingAllow(k.Strings("style.naming-allow")...))
	}

	// Checks from the config file, then --enable/--disable
	for id, on := range k.BoolMap("style.checks") {
		opts = append(opts, config.WithCheck(id, on))
	}
	for _, id := range k.Strings("enable") {
		opts = append(opts, config.WithCheck(id, true))
	}
	for _, id := range k.Strings("disable") {
		opts = append(opts, config.WithCheck(id, false))
	}

	cfg, err := config.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// lintSettings holds the options that control a lint run, as opposed to the
// style itself.
type lintSettings struct {
	Paths         []string      `yaml:"paths"`
	Exclude       []string      `yaml:"exclude"`
	Strict        bool          `yaml:"strict"`              // exit 1 on any violation
	OutputFormat  string        `yaml:"output-format"`       // issues | summary | full | json
	MaxPerRule    int           `yaml:"max-issues-per-rule"` // 0 = unlimited
	MaxSame       int           `yaml:"max-same-issues"`     // 0 = unlimited
	PrintLines    bool          `yaml:"print-lines"`
	PrintRuleName bool          `yaml:"print-rule-name"`
	Workers       int           `yaml:"workers"` // 0 = one per CPU
	Timeout       time.Duration `yaml:"timeout"` // per file
}

// buildLintSettings constructs the lint options from koanf state.
func buildLintSettings() lintSettings {
	paths := k.Strings("lint.paths")
	if len(paths) == 0 {
		paths = discover.DefaultPatterns
	}

	return lintSettings{
		Paths:         paths,
		Exclude:       k.Strings("lint.exclude"),
		Strict:        getBoolWithFallback("lint.strict", false),
		OutputFormat:  getStringWithFallback("lint.output-format", string(report.FormatIssues)),
		MaxPerRule:    getIntWithFallback("lint.max-issues-per-rule", 0),
		MaxSame:       getIntWithFallback("lint.max-same-issues", 0),
		PrintLines:    getBoolWithFallback("lint.print-lines", true),
		PrintRuleName: getBoolWithFallback("lint.print-rule-name", true),
		Workers:       getIntWithFallback("lint.workers", 0),
		Timeout:       getDurationWithFallback("lint.timeout", 10*time.Second),
	}
}

// reportOptions converts lint settings into reporter options.
func (s lintSettings) reportOptions() report.Options {
	return report.Options{
		UseColors:        getBoolWithFallback("color", false),
		PrintLines:       s.PrintLines,
		PrintRuleName:    s.PrintRuleName,
		MaxIssuesPerRule: s.MaxPerRule,
		MaxSameIssues:    s.MaxSame,
	}
}

// getStringWithFallback returns the value at key, or the default when it is unset or empty.
func getStringWithFallback(key, defaultVal string) string {
	if v := k.String(key); v != "" {
		return v
	}
	return defaultVal
}

// getBoolWithFallback returns the value at key, or the default when it is unset.
func getBoolWithFallback(key string, defaultVal bool) bool {
	if k.Exists(key) {
		return k.Bool(key)
	}
	return defaultVal
}

// getIntWithFallback returns the value at key, or the default when it is unset.
func getIntWithFallback(key string, defaultVal int) int {
	if k.Exists(key) {
		return k.Int(key)
	}
	return defaultVal
}

// getDurationWithFallback returns the value at key, or the default when it is unset.
func getDurationWithFallback(key string, defaultVal time.Duration) time.Duration {
	if k.Exists(key) {
		return k.Duration(key)
	}
	return defaultVal
}
