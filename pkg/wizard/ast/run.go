package ast

import (
	"time"

	"github.com/google/uuid"
)

// RunStatus tracks a wizard session's lifecycle.
type RunStatus string

const (
	RunStatusDraft      RunStatus = "draft"
	RunStatusInProgress RunStatus = "in_progress"
	RunStatusCompleted  RunStatus = "completed"
	RunStatusApproved   RunStatus = "approved"
)

// Run is the mutable unit of work for one wizard session. The pipeline
// treats a Run as a read-only snapshot per invocation; only the owning
// wizard session mutates it between invocations.
type Run struct {
	ID       string    `json:"id"`
	FirmID   string    `json:"firm_id"`
	PolicyID string    `json:"policy_id"`
	Status   RunStatus `json:"status"`

	// Answers is the answer map snapshot for this session.
	Answers AnswerMap `json:"answers"`

	// SelectedClauses are the clause codes ultimately selected.
	SelectedClauses []string `json:"selected_clauses"`

	// Variables is the merged variable map from the last rules evaluation.
	Variables map[string]Value `json:"variables"`

	// Metadata carries free-form session annotations.
	Metadata map[string]string `json:"metadata,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewRun creates a draft run for a firm and policy.
func NewRun(firmID, policyID string) *Run {
	now := time.Now().UTC()
	return &Run{
		ID:        uuid.New().String(),
		FirmID:    firmID,
		PolicyID:  policyID,
		Status:    RunStatusDraft,
		Answers:   make(AnswerMap),
		Variables: make(map[string]Value),
		CreatedAt: now,
		UpdatedAt: now,
	}
}
