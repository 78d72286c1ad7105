// Package validation holds the per-field rules applied before a step may be
// left. Each rule is a predicate plus a fixed user-facing message; failures are
// returned as Issue values rather than errors because they are recovered
// locally by annotating the offending input.
package validation
