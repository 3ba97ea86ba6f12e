package engine

import (
	"slices"
	"sync"
)

type EventKind string

const (
	EventProgressChanged EventKind = "progress_changed"
	EventBadgesUnlocked  EventKind = "badges_unlocked"
	EventJournalChanged  EventKind = "journal_changed"
	EventThemeChanged    EventKind = "theme_changed"
)

// Event describes a state change. Progress is a copy owned by the receiver.
type Event struct {
	Kind     EventKind
	Progress *UserProgress
	Badges   []string
	Theme    ThemeType
}

type observers struct {
	mu   sync.Mutex
	next int
	fns  map[int]func(Event)
}

func (o *observers) add(fn func(Event)) func() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.fns == nil {
		o.fns = map[int]func(Event){}
	}
	id := o.next
	o.next++
	o.fns[id] = fn
	return func() {
		o.mu.Lock()
		delete(o.fns, id)
		o.mu.Unlock()
	}
}

// notify calls observers outside the lock so they may call back into the service.
func (o *observers) notify(ev Event) {
	o.mu.Lock()
	ids := make([]int, 0, len(o.fns))
	for id := range o.fns {
		ids = append(ids, id)
	}
	fns := make([]func(Event), 0, len(ids))
	slices.Sort(ids)
	for _, id := range ids {
		fns = append(fns, o.fns[id])
	}
	o.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}

// Subscribe registers fn for state-change events, in subscription order.
// The returned func removes the subscription.
func (s *Service) Subscribe(fn func(Event)) func() {
	return s.observers.add(fn)
}
