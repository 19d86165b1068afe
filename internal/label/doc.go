// Package label implements a decentralized information-flow-control
// label algebra.
//
// A label is an ordered pair of monotone boolean formulas over
// principals: a confidentiality component (who may read) and an
// integrity component (whose influence the value carries). Labels form
// a lattice under FlowsTo, with Join/Meet as least upper bound and
// greatest lower bound, and carry the nonmalleable-IFC View/Voice
// transforms.
//
// Every operation takes the formula store explicitly. Labels built from
// different stores must never be mixed; the store fails fast on such
// misuse. Labels are immutable value types: operations return new
// labels and never mutate their receivers.
package label
