// Package model loads label-model descriptions from files.
//
// A model names the universe of principals (their order fixes the
// variable ids) and a set of named labels, each either a pair of
// principal references or one of the lattice constants. Two on-disk
// formats are supported, dispatched on file extension: an XML form
// (.xml) and a CUE form (.cue).
//
// The loader validates eagerly and reports typed LoadErrors with stable
// error codes, so callers can distinguish a missing file from a
// malformed model without string matching.
package model
