package redact

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
)

// Builder assembles a redaction policy: the enabled built-in rules in their
// fixed order, followed by custom rules in the order they were added.
// The zero value is not usable; start from NewBuilder.
type Builder struct {
	disabled map[string]bool
	custom   []Rule
}

// NewBuilder returns a builder with all five built-in rules enabled and no
// custom rules.
func NewBuilder() *Builder {
	return &Builder{
		disabled: make(map[string]bool),
	}
}

// DisableCreditCard removes the credit-card rule from the policy.
func (b *Builder) DisableCreditCard() *Builder {
	b.disabled[RuleCreditCard] = true
	return b
}

// DisableSSN removes the SSN rule from the policy.
func (b *Builder) DisableSSN() *Builder {
	b.disabled[RuleSSN] = true
	return b
}

// DisablePassword removes the password rule from the policy.
func (b *Builder) DisablePassword() *Builder {
	b.disabled[RulePassword] = true
	return b
}

// DisableAPIKey removes the API-key rule from the policy.
func (b *Builder) DisableAPIKey() *Builder {
	b.disabled[RuleAPIKey] = true
	return b
}

// DisableEmailCredential removes the email-credential rule from the policy.
func (b *Builder) DisableEmailCredential() *Builder {
	b.disabled[RuleEmailCredential] = true
	return b
}

// DisableAll removes every built-in rule, leaving only custom rules.
func (b *Builder) DisableAll() *Builder {
	for _, rule := range DefaultRules() {
		b.disabled[rule.ID] = true
	}
	return b
}

// WithPattern appends a custom case-sensitive rule. Validation happens at
// Build, not here, so calls chain fluently.
func (b *Builder) WithPattern(id, pattern string) *Builder {
	b.custom = append(b.custom, Rule{ID: id, Pattern: pattern})
	return b
}

// WithRule appends a custom rule with full match options.
func (b *Builder) WithRule(rule Rule) *Builder {
	b.custom = append(b.custom, rule)
	return b
}

// Build compiles the policy into an immutable Redactor. Every pattern is
// compiled here; a malformed custom pattern fails the build rather than the
// first redaction.
func (b *Builder) Build() (*Redactor, error) {
	enabled := make([]Rule, 0, len(DefaultRules())+len(b.custom))
	for _, rule := range DefaultRules() {
		if !b.disabled[rule.ID] {
			enabled = append(enabled, rule)
		}
	}
	enabled = append(enabled, b.custom...)

	compiled := make([]compiledRule, 0, len(enabled))
	for i, rule := range enabled {
		if rule.ID == "" {
			return nil, fmt.Errorf("redact: rule %d: ID is required", i)
		}
		if rule.Pattern == "" {
			return nil, fmt.Errorf("redact: rule %s: pattern is required", rule.ID)
		}

		pattern := rule.Pattern
		if rule.CaseInsensitive && !strings.HasPrefix(pattern, "(?i)") {
			pattern = "(?i)" + pattern
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("redact: rule %s: invalid pattern: %w", rule.ID, err)
		}
		compiled = append(compiled, compiledRule{Rule: rule, re: re})
	}

	return &Redactor{rules: compiled}, nil
}

// MustBuild is Build, panicking on error. Intended for policies built from
// literal patterns.
func (b *Builder) MustBuild() *Redactor {
	r, err := b.Build()
	if err != nil {
		panic(err)
	}
	return r
}

var (
	defaultOnce     sync.Once
	defaultRedactor *Redactor
)

// Default returns the process-wide redactor with all five built-in rules
// enabled and no custom rules. It is constructed once on first use and
// never mutated afterwards, so concurrent readers need no coordination.
func Default() *Redactor {
	defaultOnce.Do(func() {
		defaultRedactor = NewBuilder().MustBuild()
	})
	return defaultRedactor
}
