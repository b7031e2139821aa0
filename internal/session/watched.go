package session

import "sync"

// Change describes a mutation of one credential slot
type Change struct {
	Slot    string
	Present bool
}

// Watched decorates a Repository and publishes every successful mutation to
// its subscribers. Subscribers run synchronously on the mutating goroutine,
// after the write has been persisted.
type Watched struct {
	Repository

	mu     sync.Mutex
	nextID int
	subs   map[int]func(Change)
}

// Watch wraps repo so that mutations can be observed
func Watch(repo Repository) *Watched {
	return &Watched{
		Repository: repo,
		subs:       make(map[int]func(Change)),
	}
}

// Subscribe registers fn for future changes and returns a function that removes it
func (w *Watched) Subscribe(fn func(Change)) (unsubscribe func()) {
	w.mu.Lock()
	id := w.nextID
	w.nextID++
	w.subs[id] = fn
	w.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			w.mu.Lock()
			delete(w.subs, id)
			w.mu.Unlock()
		})
	}
}

func (w *Watched) publish(c Change) {
	w.mu.Lock()
	subs := make([]func(Change), 0, len(w.subs))
	for _, fn := range w.subs {
		subs = append(subs, fn)
	}
	w.mu.Unlock()

	for _, fn := range subs {
		fn(c)
	}
}

func (w *Watched) SetToken(token string) error {
	if err := w.Repository.SetToken(token); err != nil {
		return err
	}
	w.publish(Change{Slot: TokenKey, Present: token != ""})
	return nil
}

func (w *Watched) RemoveToken() error {
	if err := w.Repository.RemoveToken(); err != nil {
		return err
	}
	w.publish(Change{Slot: TokenKey, Present: false})
	return nil
}

func (w *Watched) SetRole(role string) error {
	if err := w.Repository.SetRole(role); err != nil {
		return err
	}
	w.publish(Change{Slot: RoleKey, Present: true})
	return nil
}
