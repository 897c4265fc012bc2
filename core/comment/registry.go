package comment

import "sync"

// Subscriber is one live connection interested in a course's comment events.
// Send must not block; it reports a delivery failure instead.
type Subscriber interface {
	Send(Event) error
}

// Registry maps course ids to their currently connected subscribers.
// It is safe for concurrent use; the lock is only held for membership
// mutations and snapshot reads, never across a delivery.
type Registry struct {
	mu   sync.RWMutex
	subs map[string]map[Subscriber]struct{}
}

func NewRegistry() *Registry {
	return &Registry{subs: make(map[string]map[Subscriber]struct{})}
}

// Subscribe adds sub to the course's subscriber set,
// creating the set on first subscription. Double-adds are harmless.
func (r *Registry) Subscribe(courseID string, sub Subscriber) {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.subs[courseID]
	if !ok {
		set = make(map[Subscriber]struct{})
		r.subs[courseID] = set
	}
	set[sub] = struct{}{}
}

// Unsubscribe removes sub from the course's subscriber set; no-op if absent.
// An emptied set is kept around: courses are streamed again and again and
// the garbage is bounded by the number of distinct courses ever streamed.
func (r *Registry) Unsubscribe(courseID string, sub Subscriber) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if set, ok := r.subs[courseID]; ok {
		delete(set, sub)
	}
}

// Subscribers returns a snapshot of the course's current subscriber set.
func (r *Registry) Subscribers(courseID string) []Subscriber {
	r.mu.RLock()
	defer r.mu.RUnlock()

	set := r.subs[courseID]
	if len(set) == 0 {
		return nil
	}
	snapshot := make([]Subscriber, 0, len(set))
	for sub := range set {
		snapshot = append(snapshot, sub)
	}
	return snapshot
}
