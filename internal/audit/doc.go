// Package audit records label-order decisions durably.
//
// Every FlowsTo/ActsFor query answered on behalf of a caller can be
// written to a SQLite log as a Decision. Decisions are content-addressed:
// the record id is a domain-separated hash over the canonical encoding
// of the decision, so replaying the same session produces identical ids
// and re-recording is idempotent.
//
// Ordering within a session uses a monotonic logical clock, never
// wall-clock timestamps, so logs compare deterministically across runs.
package audit
