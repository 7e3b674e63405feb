// Package config holds the options shared by the checks and the formatter.
//
// A Config is built once, validated, and then treated as read-only for the
// duration of a run; it may be shared by concurrent document pipelines.
package config

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/yacobolo/cssguide/internal/diag"
)

// ErrInvalid is wrapped by every configuration validation error.
var ErrInvalid = errors.New("invalid configuration")

// Check identifiers, also used as configuration keys
const (
	CheckIndentation           = "indentation"
	CheckBraceSpacing          = "brace-spacing"
	CheckSelectorPerLine       = "selector-per-line"
	CheckDeclarationPerLine    = "declaration-per-line"
	CheckColonSpacing          = "colon-spacing"
	CheckHexColor              = "hex-color"
	CheckQuoteConsistency      = "quote-consistency"
	CheckZeroUnit              = "zero-unit"
	CheckTrailingSemicolon     = "trailing-semicolon"
	CheckClosingBraceAlignment = "closing-brace-alignment"
	CheckBlankLines            = "blank-line-between-rulesets"
	CheckPropertyOrder         = "property-order"
	CheckNaming                = "naming"
	CheckNestingDepth          = "nesting-depth"
)

// defaultChecks is the enablement of every known check.
var defaultChecks = map[string]bool{
	CheckIndentation:           true,
	CheckBraceSpacing:          true,
	CheckSelectorPerLine:       true,
	CheckDeclarationPerLine:    true,
	CheckColonSpacing:          true,
	CheckHexColor:              true,
	CheckQuoteConsistency:      true,
	CheckZeroUnit:              true,
	CheckTrailingSemicolon:     true,
	CheckClosingBraceAlignment: true,
	CheckBlankLines:            true,
	CheckPropertyOrder:         true,
	CheckNaming:                false, // opinionated, opt-in
	CheckNestingDepth:          true,  // only runs in preprocessor mode
}

// CheckIDs returns every known check identifier, sorted.
func CheckIDs() []string {
	ids := make([]string, 0, len(defaultChecks))
	for id := range defaultChecks {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// DefaultEnabled reports whether a check is on by default.
func DefaultEnabled(id string) bool {
	return defaultChecks[id]
}

// IndentChar selects the indentation character
type IndentChar string

// Indentation characters
const (
	IndentTab   IndentChar = "tab"
	IndentSpace IndentChar = "space"
)

// Quote selects the preferred string quote
type Quote string

// Quote styles
const (
	QuoteDouble Quote = "double"
	QuoteSingle Quote = "single"
)

// DefaultZeroUnitProperties lists length properties where a zero needs no unit.
var DefaultZeroUnitProperties = []string{
	"border", "border-bottom", "border-bottom-width", "border-left", "border-left-width",
	"border-radius", "border-right", "border-right-width", "border-spacing", "border-top",
	"border-top-width", "border-width", "bottom", "column-gap", "gap", "height", "inset",
	"left", "letter-spacing", "margin", "margin-bottom", "margin-left", "margin-right",
	"margin-top", "max-height", "max-width", "min-height", "min-width", "outline",
	"outline-offset", "outline-width", "padding", "padding-bottom", "padding-left",
	"padding-right", "padding-top", "right", "row-gap", "text-indent", "top", "width",
	"word-spacing",
}

// Config holds the style options
type Config struct {
	Indent             IndentChar      `yaml:"indent"`               // "tab" or "space" (default: tab)
	IndentWidth        int             `yaml:"indent-width"`         // spaces per level when Indent is space (default: 4)
	Quote              Quote           `yaml:"quote"`                // preferred quote (default: double)
	BlankLines         int             `yaml:"blank-lines"`          // blank lines between top-level rulesets (default: 1)
	ZeroUnitProperties []string        `yaml:"zero-unit-properties"` // properties allowing unitless zero
	MaxNestingDepth    int             `yaml:"max-nesting-depth"`    // preprocessor mode only (default: 1)
	Preprocessor       bool            `yaml:"preprocessor"`         // accept nested rulesets and @extend/@include
	NamingAllow        []string        `yaml:"naming-allow"`         // selectors exempt from the naming check
	MinClassLength     int             `yaml:"min-class-length"`     // shorter class names are abbreviations (default: 3)
	TieBreak           diag.TieBreak   `yaml:"tie-break"`            // ordering of violations at the same position
	Fix                bool            `yaml:"fix"`                  // fix mode instead of report mode
	Checks             map[string]bool `yaml:"checks"`               // check id -> enabled
}

// Default returns a configuration with every default applied.
func Default() *Config {
	checks := make(map[string]bool, len(defaultChecks))
	for id, on := range defaultChecks {
		checks[id] = on
	}
	return &Config{
		Indent:             IndentTab,
		IndentWidth:        4,
		Quote:              QuoteDouble,
		BlankLines:         1,
		ZeroUnitProperties: slices.Clone(DefaultZeroUnitProperties),
		MaxNestingDepth:    1,
		NamingAllow:        []string{"html", "body"},
		MinClassLength:     3,
		TieBreak:           diag.TieBreakRule,
		Checks:             checks,
	}
}

// Option modifies a Config under construction
type Option func(*Config)

// New builds a validated configuration from the defaults and opts.
func New(opts ...Option) (*Config, error) {
	cfg := Default()
	for _, opt := range opts {
		opt(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WithIndent sets the indentation character and width.
func WithIndent(ch IndentChar, width int) Option {
	return func(c *Config) {
		c.Indent = ch
		c.IndentWidth = width
	}
}

// WithQuote sets the preferred quote.
func WithQuote(q Quote) Option {
	return func(c *Config) { c.Quote = q }
}

// WithBlankLines sets the blank line count between top-level rulesets.
func WithBlankLines(n int) Option {
	return func(c *Config) { c.BlankLines = n }
}

// WithZeroUnitProperties replaces the zero-unit allow-list.
func WithZeroUnitProperties(props ...string) Option {
	return func(c *Config) { c.ZeroUnitProperties = props }
}

// WithMaxNestingDepth sets the maximum nesting depth.
func WithMaxNestingDepth(n int) Option {
	return func(c *Config) { c.MaxNestingDepth = n }
}

// WithPreprocessor toggles preprocessor mode.
func WithPreprocessor(on bool) Option {
	return func(c *Config) { c.Preprocessor = on }
}

// WithNamingAllow replaces the naming allow-list.
func WithNamingAllow(names ...string) Option {
	return func(c *Config) { c.NamingAllow = names }
}

// WithMinClassLength sets the minimum class name length.
func WithMinClassLength(n int) Option {
	return func(c *Config) { c.MinClassLength = n }
}

// WithTieBreak sets how violations at the same position are ordered.
func WithTieBreak(tb diag.TieBreak) Option {
	return func(c *Config) { c.TieBreak = tb }
}

// WithFix selects fix mode.
func WithFix(on bool) Option {
	return func(c *Config) { c.Fix = on }
}

// WithCheck enables or disables one check.
func WithCheck(id string, enabled bool) Option {
	return func(c *Config) {
		if c.Checks == nil {
			c.Checks = map[string]bool{}
		}
		c.Checks[id] = enabled
	}
}

// Validate reports every invalid option at once.
func (c *Config) Validate() error {
	var errs []error

	switch c.Indent {
	case IndentTab, IndentSpace:
	default:
		errs = append(errs, fmt.Errorf("indent must be %q or %q, got %q", IndentTab, IndentSpace, c.Indent))
	}
	if c.IndentWidth < 1 {
		errs = append(errs, fmt.Errorf("indent-width must be positive, got %d", c.IndentWidth))
	}
	switch c.Quote {
	case QuoteDouble, QuoteSingle:
	default:
		errs = append(errs, fmt.Errorf("quote must be %q or %q, got %q", QuoteDouble, QuoteSingle, c.Quote))
	}
	if c.BlankLines < 0 {
		errs = append(errs, fmt.Errorf("blank-lines must not be negative, got %d", c.BlankLines))
	}
	if c.MaxNestingDepth < 0 {
		errs = append(errs, fmt.Errorf("max-nesting-depth must not be negative, got %d", c.MaxNestingDepth))
	}
	if c.MinClassLength < 0 {
		errs = append(errs, fmt.Errorf("min-class-length must not be negative, got %d", c.MinClassLength))
	}
	switch c.TieBreak {
	case diag.TieBreakRule, diag.TieBreakSeverity:
	default:
		errs = append(errs, fmt.Errorf("tie-break must be %q or %q, got %q",
			diag.TieBreakRule, diag.TieBreakSeverity, c.TieBreak))
	}

	unknown := make([]string, 0)
	for id := range c.Checks {
		if _, ok := defaultChecks[id]; !ok {
			unknown = append(unknown, id)
		}
	}
	sort.Strings(unknown)
	for _, id := range unknown {
		errs = append(errs, fmt.Errorf("unknown check %q", id))
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
}

// Enabled reports whether the check id should run.
func (c *Config) Enabled(id string) bool {
	if on, ok := c.Checks[id]; ok {
		return on
	}
	return defaultChecks[id]
}

// IndentUnit returns the text of one indentation level.
func (c *Config) IndentUnit() string {
	if c.Indent == IndentSpace {
		return strings.Repeat(" ", c.IndentWidth)
	}
	return "\t"
}

// QuoteChar returns the preferred quote character.
func (c *Config) QuoteChar() byte {
	if c.Quote == QuoteSingle {
		return '\''
	}
	return '"'
}

// ZeroUnitAllowed reports whether prop may drop the unit of a zero value.
func (c *Config) ZeroUnitAllowed(prop string) bool {
	return slices.Contains(c.ZeroUnitProperties, strings.ToLower(prop))
}

// NamingAllowed reports whether a selector fragment is exempt from the
// naming check. Entries match with or without their leading "." or "#".
func (c *Config) NamingAllowed(name string) bool {
	bare := strings.TrimLeft(name, ".#")
	for _, a := range c.NamingAllow {
		if strings.EqualFold(a, name) || strings.EqualFold(a, bare) {
			return true
		}
	}
	return false
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.ZeroUnitProperties = slices.Clone(c.ZeroUnitProperties)
	out.NamingAllow = slices.Clone(c.NamingAllow)
	out.Checks = make(map[string]bool, len(c.Checks))
	for id, on := range c.Checks {
		out.Checks[id] = on
	}
	return &out
}
