package queue

import "github.com/baselsoftwaredev/dominion-earth-sub001/pkg/civ"

// Registry keeps one queue per civilization, creating them on demand.
type Registry struct {
	capacity     int
	perTurnLimit int
	queues       map[civ.CivId]*Queue
}

// NewRegistry creates a registry whose queues use the given bounds.
func NewRegistry(capacity, perTurnLimit int) *Registry {
	return &Registry{
		capacity:     capacity,
		perTurnLimit: perTurnLimit,
		queues:       make(map[civ.CivId]*Queue),
	}
}

// Ensure returns the queue for a civilization, creating it if needed.
func (r *Registry) Ensure(id civ.CivId) *Queue {
	q, ok := r.queues[id]
	if !ok {
		q = NewQueue(id, r.capacity, r.perTurnLimit)
		r.queues[id] = q
	}
	return q
}

// Lookup returns the queue for a civilization without creating one.
func (r *Registry) Lookup(id civ.CivId) (*Queue, bool) {
	q, ok := r.queues[id]
	return q, ok
}

// Remove drops a civilization's queue, discarding any pending actions.
func (r *Registry) Remove(id civ.CivId) {
	delete(r.queues, id)
}
