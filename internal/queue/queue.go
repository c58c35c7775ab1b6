// Package queue buffers AI decisions between the turn they are made and the
// turns they execute, with per-turn rate limiting and bounded retries.
package queue

import (
	"github.com/rs/zerolog/log"

	"github.com/baselsoftwaredev/dominion-earth-sub001/pkg/civ"
)

// Defaults applied by NewQueue and QueueAction.
const (
	DefaultCapacity       = 20
	DefaultActionsPerTurn = 3
	DefaultMaxRetries     = 2
	UrgentMaxRetries      = 1
)

// QueuedAction is an action waiting to execute, with its scheduling metadata.
type QueuedAction struct {
	Action civ.AIAction
	// TurnQueued records when the action entered the queue.
	TurnQueued int
	// NotBefore is the earliest turn the action may execute. Zero means
	// immediately eligible.
	NotBefore int
	// RetriesLeft counts how many more failures the action survives.
	RetriesLeft int
	// Seq breaks priority ties in favor of earlier arrivals.
	Seq uint64
}

// Queue holds pending actions for one civilization. Not safe for concurrent
// use; the turn loop owns it.
type Queue struct {
	owner civ.CivId

	backlog           []QueuedAction
	capacity          int
	perTurnLimit      int
	processedThisTurn int
	seq               uint64
}

// NewQueue creates a queue with the given bounds. Non-positive bounds fall
// back to the defaults.
func NewQueue(owner civ.CivId, capacity, perTurnLimit int) *Queue {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if perTurnLimit <= 0 {
		perTurnLimit = DefaultActionsPerTurn
	}
	return &Queue{owner: owner, capacity: capacity, perTurnLimit: perTurnLimit}
}

// Len returns the number of pending actions.
func (q *Queue) Len() int { return len(q.backlog) }

// QueueAction enqueues an action with default retry allowance, eligible
// immediately. A full queue drops the action.
func (q *Queue) QueueAction(action civ.AIAction, currentTurn int) bool {
	return q.QueueActionWithSettings(action, currentTurn, 0, DefaultMaxRetries)
}

// QueueUrgent enqueues an action with a reduced retry allowance. Urgent
// actions carry their own priority; eligibility is still immediate.
func (q *Queue) QueueUrgent(action civ.AIAction, currentTurn int) bool {
	return q.QueueActionWithSettings(action, currentTurn, 0, UrgentMaxRetries)
}

// QueueActionWithSettings enqueues an action with explicit scheduling. A
// notBefore of zero means the action may run on the current turn. Returns
// false when the queue is at capacity.
func (q *Queue) QueueActionWithSettings(action civ.AIAction, currentTurn, notBefore, retries int) bool {
	if len(q.backlog) >= q.capacity {
		log.Warn().
			Int("civ", int(q.owner)).
			Str("action", civ.Describe(action)).
			Msg("queue full, action dropped")
		return false
	}
	q.seq++
	q.backlog = append(q.backlog, QueuedAction{
		Action:      action,
		TurnQueued:  currentTurn,
		NotBefore:   notBefore,
		RetriesLeft: retries,
		Seq:         q.seq,
	})
	return true
}

// ResetTurnProcessing clears the per-turn processed counter. Call at the
// start of each turn before draining.
func (q *Queue) ResetTurnProcessing() {
	q.processedThisTurn = 0
}

// CanProcessMoreActions reports whether the queue may dequeue again this
// turn: the per-turn limit has headroom and work is pending.
func (q *Queue) CanProcessMoreActions() bool {
	return q.processedThisTurn < q.perTurnLimit && len(q.backlog) > 0
}

// IncrementTurnProcessing consumes one slot of this turn's processing budget.
// Callers count successful executions only; failed attempts are requeued
// without spending the slot.
func (q *Queue) IncrementTurnProcessing() {
	q.processedThisTurn++
}

// DequeueNext removes and returns the highest priority action eligible on
// currentTurn. Ties go to the action queued first. Returns false when
// nothing is eligible.
func (q *Queue) DequeueNext(currentTurn int) (QueuedAction, bool) {
	best := -1
	for i, qa := range q.backlog {
		if qa.NotBefore > currentTurn {
			continue
		}
		if best == -1 {
			best = i
			continue
		}
		pi := civ.ActionPriority(qa.Action)
		pb := civ.ActionPriority(q.backlog[best].Action)
		if pi > pb || (pi == pb && qa.Seq < q.backlog[best].Seq) {
			best = i
		}
	}
	if best == -1 {
		return QueuedAction{}, false
	}
	qa := q.backlog[best]
	q.backlog = append(q.backlog[:best], q.backlog[best+1:]...)
	return qa, true
}

// RequeueFailed puts a failed action back with one fewer retry, deferred to
// the next turn. Actions out of retries are dropped.
func (q *Queue) RequeueFailed(qa QueuedAction, currentTurn int) {
	qa.RetriesLeft--
	if qa.RetriesLeft < 0 {
		log.Info().
			Int("civ", int(q.owner)).
			Str("action", civ.Describe(qa.Action)).
			Msg("action abandoned after retries")
		return
	}
	qa.NotBefore = currentTurn + 1
	q.backlog = append(q.backlog, qa)
}
