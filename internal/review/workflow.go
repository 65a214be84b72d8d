package review

import (
	"errors"
	"log"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/MellowMango/apartment-search-sub004/internal/database"
)

// ErrMalformedID marks a candidate whose target id fails the identifier
// format check. The action is dropped and counted, never executed.
var ErrMalformedID = errors.New("review: malformed target identifier")

// PendingAction is an approved, not-yet-executed mutation. It lives only
// in memory between ProposeActions and ExecuteActions.
type PendingAction struct {
	Action         database.ProposedAction
	TargetUUID     string
	SecondaryUUIDs []string // Set for merges only
	Reason         string
	Confidence     float64
	ReviewID       string
}

// ExecuteResults counts per-kind outcomes of one execution batch
type ExecuteResults struct {
	MergeSuccess  int
	MergeErrors   int
	DeleteSuccess int
	DeleteErrors  int
	FlagSuccess   int
	FlagErrors    int
}

// Errors returns the total error count across action kinds
func (r *ExecuteResults) Errors() int {
	return r.MergeErrors + r.DeleteErrors + r.FlagErrors
}

// Successes returns the total success count across action kinds
func (r *ExecuteResults) Successes() int {
	return r.MergeSuccess + r.DeleteSuccess + r.FlagSuccess
}

// Workflow owns candidate state transitions and the two-phase
// propose/execute gate. Nothing mutates the property store without an
// approved candidate and a separate, explicit ExecuteActions call.
type Workflow struct {
	candidates  CandidateStore
	properties  PropertyStore
	concurrency int
}

// NewWorkflow creates a workflow over the given collaborators.
// Concurrency bounds the simultaneous property-store calls during
// execution; values below 1 mean sequential.
func NewWorkflow(candidates CandidateStore, properties PropertyStore, concurrency int) *Workflow {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Workflow{
		candidates:  candidates,
		properties:  properties,
		concurrency: concurrency,
	}
}

// UpdateStatus records a human decision on a candidate. It touches only
// the candidate store, never the property store.
func (w *Workflow) UpdateStatus(reviewID string, approved bool, notes string) error {
	return w.candidates.UpdateStatus(reviewID, approved, notes)
}

// ProposeActions turns approved candidates into pending actions. This is
// a pure planning phase: it performs no writes anywhere. Candidates that
// are not approved are skipped; candidates with malformed target ids are
// dropped and counted.
func (w *Workflow) ProposeActions(candidates []database.ReviewCandidate) ([]PendingAction, int) {
	var actions []PendingAction
	malformed := 0

	for _, c := range candidates {
		if c.Approval != database.ApprovalApproved {
			continue
		}
		if c.IsApplied() {
			continue
		}
		if !wellFormedID(c.PrimaryUUID) {
			log.Printf("Dropping candidate %s: malformed primary id %q", c.ReviewID, c.PrimaryUUID)
			malformed++
			continue
		}

		action := PendingAction{
			Action:     c.ProposedAction,
			TargetUUID: c.PrimaryUUID,
			Reason:     c.Reason,
			Confidence: c.Confidence,
			ReviewID:   c.ReviewID,
		}

		if c.ProposedAction == database.ActionMerge {
			if !wellFormedID(c.SecondaryUUID) {
				log.Printf("Dropping candidate %s: malformed secondary id %q", c.ReviewID, c.SecondaryUUID)
				malformed++
				continue
			}
			action.SecondaryUUIDs = []string{c.SecondaryUUID}
		}

		actions = append(actions, action)
	}

	return actions, malformed
}

// ExecuteActions applies pending actions against the property store with
// bounded concurrency. One action's failure does not abort the batch:
// failures are logged and counted, and the batch continues. A candidate
// transitions to applied only after its own action succeeds.
func (w *Workflow) ExecuteActions(actions []PendingAction) *ExecuteResults {
	results := &ExecuteResults{}
	var group errgroup.Group
	group.SetLimit(w.concurrency)

	type outcome struct {
		action PendingAction
		err    error
	}
	outcomes := make([]outcome, len(actions))

	for i, action := range actions {
		i, action := i, action
		group.Go(func() error {
			outcomes[i] = outcome{action: action, err: w.executeOne(action)}
			return nil
		})
	}
	// Workers never return errors; failures are carried in outcomes
	_ = group.Wait()

	for _, o := range outcomes {
		switch o.action.Action {
		case database.ActionMerge:
			if o.err != nil {
				results.MergeErrors++
			} else {
				results.MergeSuccess++
			}
		case database.ActionDelete:
			if o.err != nil {
				results.DeleteErrors++
			} else {
				results.DeleteSuccess++
			}
		case database.ActionFlag:
			if o.err != nil {
				results.FlagErrors++
			} else {
				results.FlagSuccess++
			}
		}
		if o.err != nil {
			log.Printf("Action %s on %s failed: %v", o.action.Action, o.action.TargetUUID, o.err)
			continue
		}
		if err := w.candidates.MarkApplied(o.action.ReviewID); err != nil {
			log.Printf("Failed to mark candidate %s applied: %v", o.action.ReviewID, err)
		}
	}

	return results
}

// executeOne runs a single action. A missing target is a no-op reported
// as success so that re-running a partially applied batch converges.
func (w *Workflow) executeOne(action PendingAction) error {
	var found bool
	var err error

	switch action.Action {
	case database.ActionMerge:
		found, err = w.properties.Merge(action.TargetUUID, action.SecondaryUUIDs)
	case database.ActionDelete:
		found, err = w.properties.Delete(action.TargetUUID)
	case database.ActionFlag:
		found, err = w.properties.Update(action.TargetUUID, map[string]interface{}{
			"property_status": database.PropertyStatusFlagged,
		})
	default:
		return ErrMalformedID
	}

	if err != nil {
		return err
	}
	if !found {
		log.Printf("Target %s already gone, treating %s as applied", action.TargetUUID, action.Action)
	}
	return nil
}

// wellFormedID reports whether an identifier is a valid UUID
func wellFormedID(id string) bool {
	if id == "" {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}
