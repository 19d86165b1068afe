// Package harness runs YAML-described label scenarios for tests.
//
// A scenario declares a principal universe, a set of named labels, and
// expected relation outcomes. The harness builds the labels against a
// fresh formula store, asserts every expectation, and can snapshot the
// complete rendered relation matrix against a golden file so any change
// in algebra behavior shows up as a readable diff.
package harness
