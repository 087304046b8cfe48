// Package redact rewrites sensitive substrings in log values before they
// are persisted.
//
// A Redactor holds an ordered, immutable list of regex rules. Five rules
// ship built in: credit-card-like digit runs, SSN-shaped digit runs,
// password assignments, API key / access token assignments, and email
// address plus credential pairs. Every match is replaced with the literal
// ***REDACTED***.
//
// Rules apply sequentially: each rule's output feeds the next rule's input.
// Redaction over a fixed rule set is idempotent; input with no match is
// returned as-is.
//
// Build a policy with Builder:
//
//	r, err := redact.NewBuilder().
//	    DisableEmailCredential().
//	    WithPattern("order-token", `ord_[0-9a-f]{24}`).
//	    Build()
//
// or use the shared Default() policy. Malformed patterns fail at Build,
// never at redaction time; Redact itself has no error path.
package redact
