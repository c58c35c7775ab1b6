package engine

import (
	"fmt"

	"github.com/baselsoftwaredev/dominion-earth-sub001/internal/ai"
	"github.com/baselsoftwaredev/dominion-earth-sub001/internal/logger"
	"github.com/baselsoftwaredev/dominion-earth-sub001/internal/queue"
	"github.com/baselsoftwaredev/dominion-earth-sub001/internal/turn"
	"github.com/baselsoftwaredev/dominion-earth-sub001/pkg/civ"
)

// Runner drives the world through complete turns: the phase machine, AI
// decision generation, queued action execution, income, and diplomatic drift.
type Runner struct {
	world       *World
	controller  *turn.Controller
	order       *turn.Order
	coordinator *ai.Coordinator
	queues      *queue.Registry
	maxRetries  int
}

// NewRunner wires a runner over the given world. Queue bounds of zero use
// the package defaults.
func NewRunner(w *World, queueCapacity, actionsPerTurn, maxRetries int) *Runner {
	view := BuildWorldView(w)
	roster := view.SortedIds()
	var players []civ.CivId
	for _, id := range roster {
		if w.Civs[id].Player {
			players = append(players, id)
		}
	}
	return &Runner{
		world:       w,
		controller:  turn.NewController(),
		order:       turn.NewOrder(roster, players),
		coordinator: ai.NewCoordinator(),
		queues:      queue.NewRegistry(queueCapacity, actionsPerTurn),
		maxRetries:  maxRetries,
	}
}

// Turn returns the current global turn number.
func (r *Runner) Turn() int { return r.controller.Turn() }

// RunTurn advances the world by one full global turn: the player phase (a
// no-op in headless play), every AI civilization's decisions and queued
// actions, then end-of-turn bookkeeping.
func (r *Runner) RunTurn() error {
	if err := r.controller.Handle(turn.PlayerEndedTurn); err != nil {
		return fmt.Errorf("end player turn: %w", err)
	}

	r.coordinator.TickCooldowns()
	view := BuildWorldView(r.world)
	decisions := r.coordinator.GenerateTurnDecisions(view)

	for r.order.Len() > 0 {
		id := r.order.CurrentCiv()
		if !r.order.IsPlayerCiv(id) {
			if err := r.controller.Handle(turn.ProcessAITurn); err != nil {
				return fmt.Errorf("civ %d: %w", id, err)
			}
			r.processCivTurn(id, decisions[id])
			if err := r.controller.Handle(turn.AITurnComplete); err != nil {
				return fmt.Errorf("civ %d: %w", id, err)
			}
		}
		if r.order.Advance() {
			break
		}
	}

	if err := r.controller.Handle(turn.AllAITurnsComplete); err != nil {
		return fmt.Errorf("finish ai turns: %w", err)
	}

	r.world.CollectIncome()
	r.world.Diplomacy.Tick(r.personalities())

	if err := r.controller.Handle(turn.StartPlayerTurn); err != nil {
		return fmt.Errorf("start next turn: %w", err)
	}
	r.world.Turn = r.controller.Turn()
	return nil
}

// processCivTurn enqueues this turn's decisions and drains the civilization's
// queue up to its per-turn limit, executing each action against the world.
func (r *Runner) processCivTurn(id civ.CivId, decisions []civ.AIAction) {
	civLog := logger.ForCiv(int(id))
	q := r.queues.Ensure(id)
	currentTurn := r.controller.Turn()

	retries := r.maxRetries
	if retries <= 0 {
		retries = queue.DefaultMaxRetries
	}
	for _, action := range decisions {
		q.QueueActionWithSettings(action, currentTurn, 0, retries)
	}

	q.ResetTurnProcessing()
	for q.CanProcessMoreActions() {
		qa, ok := q.DequeueNext(currentTurn)
		if !ok {
			break
		}

		// Failed attempts are deferred to the next turn and do not count
		// against this turn's processing budget.
		if err := Execute(r.world, id, qa.Action); err != nil {
			civLog.Debug().
				Err(err).
				Str("action", civ.Describe(qa.Action)).
				Msg("action failed")
			q.RequeueFailed(qa, currentTurn)
			continue
		}
		q.IncrementTurnProcessing()
		civLog.Debug().
			Str("action", civ.Describe(qa.Action)).
			Msg("action executed")
	}
}

func (r *Runner) personalities() map[civ.CivId]civ.Personality {
	out := make(map[civ.CivId]civ.Personality, len(r.world.Civs))
	for id, c := range r.world.Civs {
		out[id] = c.Personality
	}
	return out
}

// RemoveCiv eliminates a civilization from the world, the turn order, and
// the queue registry in one step.
func (r *Runner) RemoveCiv(id civ.CivId) {
	r.world.RemoveCiv(id)
	r.order.Remove(id)
	r.queues.Remove(id)
}
