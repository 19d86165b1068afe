package audit

import (
	"fmt"

	"github.com/troupe-ifc/flam/internal/canon"
)

// DomainDecision is the domain prefix for decision ids. The version
// suffix allows the hash layout to change without colliding with old
// records.
const DomainDecision = "flam/decision/v1"

// Relation names as stored in the log.
const (
	RelationFlowsTo = "flows-to"
	RelationActsFor = "acts-for"
)

// Decision is one answered label-order query.
type Decision struct {
	// ID is the content-addressed identity of the decision.
	ID string `json:"id"`

	// Session identifies the run that asked; one UUID per CLI session.
	Session string `json:"session"`

	// Seq is the logical-clock position within the session.
	Seq int64 `json:"seq"`

	// Relation is RelationFlowsTo or RelationActsFor.
	Relation string `json:"relation"`

	// LHS and RHS are the model names of the compared labels.
	LHS string `json:"lhs"`
	RHS string `json:"rhs"`

	// Outcome is the relation's answer.
	Outcome bool `json:"outcome"`
}

// DecisionID computes the content-addressed id for a decision. Stable
// across runs given the same session, ordering, and answer.
func DecisionID(session, relation, lhs, rhs string, outcome bool, seq int64) (string, error) {
	payload, err := canon.Marshal(map[string]any{
		"session":  session,
		"relation": relation,
		"lhs":      lhs,
		"rhs":      rhs,
		"outcome":  outcome,
		"seq":      seq,
	})
	if err != nil {
		return "", fmt.Errorf("DecisionID: failed to marshal: %w", err)
	}
	return canon.HashWithDomain(DomainDecision, payload), nil
}

// NewDecision stamps and addresses a decision.
func NewDecision(clock *Clock, session, relation, lhs, rhs string, outcome bool) (Decision, error) {
	seq := clock.Next()
	id, err := DecisionID(session, relation, lhs, rhs, outcome, seq)
	if err != nil {
		return Decision{}, err
	}
	return Decision{
		ID:       id,
		Session:  session,
		Seq:      seq,
		Relation: relation,
		LHS:      lhs,
		RHS:      rhs,
		Outcome:  outcome,
	}, nil
}
