package redact

import (
	"regexp"
	"strings"
)

// Token is the literal every matched value is replaced with. It is fixed:
// downstream consumers (log scanners, test assertions) key off the exact
// string.
const Token = "***REDACTED***"

// compiledRule pairs a rule with its compiled pattern.
type compiledRule struct {
	Rule
	re *regexp.Regexp
}

// Redactor applies an ordered, immutable list of rules to string values.
// Construct one through Builder or Default; the rule set cannot change
// afterwards, so a Redactor is safe for concurrent use.
type Redactor struct {
	rules []compiledRule
}

// Redact applies every rule in registration order and returns the result.
// Each rule's output feeds the next rule's input. Empty or whitespace-only
// input is returned unchanged.
func (r *Redactor) Redact(s string) string {
	out, _ := r.Transform(s)
	return out
}

// Transform is Redact plus a changed signal, so callers persisting the
// value can skip re-wrapping it when nothing matched.
func (r *Redactor) Transform(s string) (string, bool) {
	if strings.TrimSpace(s) == "" {
		return s, false
	}
	out := s
	for _, rule := range r.rules {
		out = rule.re.ReplaceAllString(out, Token)
	}
	return out, out != s
}

// Rules returns a copy of the rule definitions in application order.
func (r *Redactor) Rules() []Rule {
	rules := make([]Rule, len(r.rules))
	for i, cr := range r.rules {
		rules[i] = cr.Rule
	}
	return rules
}
