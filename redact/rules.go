package redact

// Built-in rule IDs, in the order the default policy applies them.
const (
	RuleCreditCard      = "credit-card"
	RuleSSN             = "ssn"
	RulePassword        = "password"
	RuleAPIKey          = "api-key"
	RuleEmailCredential = "email-credential"
)

// Rule defines a sensitive-data detection rule. Patterns compile at policy
// build time; a malformed pattern is a build error, never a redaction-time
// failure.
type Rule struct {
	// ID is the unique identifier for this rule
	ID string

	// Description explains what this rule matches
	Description string

	// Pattern is the regex applied to candidate values
	Pattern string

	// CaseInsensitive compiles the pattern with (?i) when the pattern
	// itself does not already carry the flag
	CaseInsensitive bool
}

// DefaultRules returns the built-in detection rules in application order.
// Ordering matters: each rule rewrites the output of the previous one.
func DefaultRules() []Rule {
	return []Rule{
		{
			ID:          RuleCreditCard,
			Description: "Credit-card-like 16 digit sequence, optionally grouped in 4s",
			Pattern:     `\b\d{4}[ -]?\d{4}[ -]?\d{4}[ -]?\d{4}\b`,
		},
		{
			ID:          RuleSSN,
			Description: "US Social Security Number shaped digit sequence",
			Pattern:     `\b\d{3}-\d{2}-\d{4}\b`,
		},
		{
			ID:              RulePassword,
			Description:     "password/pwd/passwd followed by a value",
			Pattern:         `\b(?:password|pwd|passwd)(?:\s*[:=]\s*|\s+)\S+`,
			CaseInsensitive: true,
		},
		{
			ID:              RuleAPIKey,
			Description:     "API key or access token assignment",
			Pattern:         `\b(?:api[_-]?key|apikey|access[_-]?token)(?:\s*[:=]\s*|\s+)\S+`,
			CaseInsensitive: true,
		},
		{
			ID:          RuleEmailCredential,
			Description: "Email address followed by a credential value",
			Pattern:     `\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}(?:\s*[:=]\s*|\s+)\S+`,
		},
	}
}
