// Package canon produces deterministic JSON for content addressing.
//
// Audit records are identified by a hash over their canonical encoding,
// so two runs that make the same decisions produce the same record ids.
// Canonical form here means: object keys sorted bytewise, strings NFC
// normalized, no HTML escaping, and a value domain restricted to
// strings, int64, bools, arrays, and objects. Floats and null are
// rejected outright rather than canonicalized.
package canon
