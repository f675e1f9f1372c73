// Package store is the single source of truth every screen consumes: one
// state container mutated only through a closed set of actions. The reducer
// is pure; durable persistence of the user and theme slices happens as a
// side channel around it.
package store

import (
	"sync"

	"github.com/user-console/internal/logger"
	"github.com/user-console/internal/model"
	"github.com/user-console/internal/session"
	"github.com/user-console/internal/storage"
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// State is one immutable snapshot. IsAuthenticated is always derived from
// User; it is never set independently.
type State struct {
	User            *model.User
	Users           []model.User
	Addresses       []model.Address
	Notifications   []model.Notification
	IsAuthenticated bool
	Loading         bool
	Err             string
	Theme           Theme
}

type Listener func(State)

type Store struct {
	mu        sync.Mutex
	state     State
	listeners map[int]Listener
	nextID    int
	session   *session.Session
	storage   *storage.Store
}

// New builds the store, rehydrating the user and theme slices from durable
// storage.
func New(sess *session.Session, st *storage.Store) *Store {
	initial := State{Theme: ThemeLight}
	if user := sess.User(); user != nil {
		initial.User = user
		initial.IsAuthenticated = true
	}
	if theme, ok := st.Get(storage.KeyTheme); ok && theme != "" {
		initial.Theme = Theme(theme)
	}

	return &Store{
		state:     initial,
		listeners: make(map[int]Listener),
		session:   sess,
		storage:   st,
	}
}

// State returns the current snapshot.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers a listener for every post-dispatch snapshot and
// returns its unsubscribe function.
func (s *Store) Subscribe(l Listener) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// Dispatch applies an action and notifies subscribers. Dispatches are
// serialized; listeners run outside the lock and may dispatch themselves.
func (s *Store) Dispatch(action Action) {
	s.mu.Lock()
	prev := s.state
	next := reduce(prev, action)
	s.state = next

	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	s.persist(action, prev, next)

	for _, l := range listeners {
		l(next)
	}
}

// persist mirrors the user and theme slices to durable storage. This is the
// only non-pure step of a dispatch, and it stays outside the reducer. The
// user slice is written on every SetUser, not on pointer change: callers may
// re-dispatch the same pointer after editing its fields.
func (s *Store) persist(action Action, prev, next State) {
	if _, ok := action.(SetUser); ok {
		if err := s.session.SetUser(next.User); err != nil {
			logger.Error("failed to persist user slice", "error", err)
		}
	}
	if prev.Theme != next.Theme {
		if err := s.storage.Set(storage.KeyTheme, string(next.Theme)); err != nil {
			logger.Error("failed to persist theme", "error", err)
		}
	}
}
