// Package cssguide checks stylesheets against a fixed style guide and
// rewrites them into its canonical form.
//
// # Checking
//
// Report every violation in a stylesheet:
//
//	cfg, err := cssguide.NewConfig(cssguide.WithCheck(cssguide.CheckNaming, true))
//	if err != nil {
//		return err
//	}
//	for _, v := range cssguide.Check(text, cfg) {
//		fmt.Println(v)
//	}
//
// # Formatting
//
// Rewrite a stylesheet and get the violations the formatter cannot fix:
//
//	formatted, remaining := cssguide.Format(text, nil)
//
// Text with syntax errors is never rewritten. Process picks either mode from
// the configuration's Fix option.
//
// # CLI Tool
//
// cssguide also provides a CLI tool and a language server. Install with:
//
//	go install github.com/yacobolo/cssguide/cmd/cssguide@latest
package cssguide

import (
	"github.com/yacobolo/cssguide/internal/config"
	"github.com/yacobolo/cssguide/internal/diag"
	"github.com/yacobolo/cssguide/internal/format"
	"github.com/yacobolo/cssguide/internal/lint"
	"github.com/yacobolo/cssguide/internal/rules"
)

type (
	// Config holds the style options
	Config = config.Config
	// Option modifies a Config under construction
	Option = config.Option
	// Violation is a single finding
	Violation = diag.Violation
	// Severity indicates how serious a violation is
	Severity = diag.Severity
	// Rule describes one check
	Rule = rules.Rule
)

// Severity levels
const (
	SeverityError   = diag.SeverityError
	SeverityWarning = diag.SeverityWarning
	SeverityInfo    = diag.SeverityInfo
)

// Check identifiers
const (
	CheckIndentation           = config.CheckIndentation
	CheckBraceSpacing          = config.CheckBraceSpacing
	CheckSelectorPerLine       = config.CheckSelectorPerLine
	CheckDeclarationPerLine    = config.CheckDeclarationPerLine
	CheckColonSpacing          = config.CheckColonSpacing
	CheckHexColor              = config.CheckHexColor
	CheckQuoteConsistency      = config.CheckQuoteConsistency
	CheckZeroUnit              = config.CheckZeroUnit
	CheckTrailingSemicolon     = config.CheckTrailingSemicolon
	CheckClosingBraceAlignment = config.CheckClosingBraceAlignment
	CheckBlankLines            = config.CheckBlankLines
	CheckPropertyOrder         = config.CheckPropertyOrder
	CheckNaming                = config.CheckNaming
	CheckNestingDepth          = config.CheckNestingDepth

	RuleSyntax   = diag.RuleSyntax
	RuleInternal = diag.RuleInternal
)

// ErrInvalidConfig is wrapped by every configuration error.
var ErrInvalidConfig = config.ErrInvalid

// Configuration options
var (
	WithIndent             = config.WithIndent
	WithQuote              = config.WithQuote
	WithBlankLines         = config.WithBlankLines
	WithZeroUnitProperties = config.WithZeroUnitProperties
	WithMaxNestingDepth    = config.WithMaxNestingDepth
	WithPreprocessor       = config.WithPreprocessor
	WithNamingAllow        = config.WithNamingAllow
	WithMinClassLength     = config.WithMinClassLength
	WithTieBreak           = config.WithTieBreak
	WithFix                = config.WithFix
	WithCheck              = config.WithCheck
)

// NewConfig builds a validated configuration from the defaults and opts.
func NewConfig(opts ...Option) (*Config, error) {
	return config.New(opts...)
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return config.Default()
}

// Rules returns every rule in registry order.
func Rules() []Rule {
	return rules.All()
}

// Result is the outcome of Process
type Result struct {
	Text       string      // the input in report mode, the formatted text in fix mode
	Violations []Violation // sorted by position
	Fixed      bool        // fix mode ran
	Changed    bool        // Text differs from the input
}

// Check returns every violation in text, sorted by position. A nil cfg
// means defaults.
func Check(text string, cfg *Config) []Violation {
	return lint.Check(text, cfg)
}

// Format returns the canonical text and the violations that remain in it.
// Text with syntax errors is returned unchanged with its violations.
func Format(text string, cfg *Config) (string, []Violation) {
	return format.Format(text, cfg)
}

// Process runs Format when cfg.Fix is set and Check otherwise.
func Process(text string, cfg *Config) Result {
	if cfg == nil {
		cfg = config.Default()
	}

	if !cfg.Fix {
		return Result{Text: text, Violations: Check(text, cfg)}
	}

	formatted, remaining := Format(text, cfg)
	return Result{
		Text:       formatted,
		Violations: remaining,
		Fixed:      true,
		Changed:    formatted != text,
	}
}
