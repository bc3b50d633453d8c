package user

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// Store owns the current State for one application session. Construct one
// per session and pass it to whatever needs it.
type Store struct {
	getter Getter
	log    *zap.Logger

	state atomic.Pointer[State]

	mu     sync.Mutex // serialises Dispatch and guards subs
	subs   []subscriber
	nextID int
}

type subscriber struct {
	id int
	fn func(*State)
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for dispatch and load events.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithInitialState starts the store from st instead of Initial().
func WithInitialState(st *State) Option {
	return func(s *Store) {
		if st != nil {
			s.state.Store(st)
		}
	}
}

// NewStore creates a store whose actions use getter for network access. A
// store without a getter can still Dispatch; loads run on it fail with
// KindNetwork.
func NewStore(getter Getter, opts ...Option) *Store {
	s := &Store{
		getter: getter,
		log:    zap.NewNop(),
	}
	s.state.Store(Reduce(nil, Init{}))
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current state.
func (s *Store) State() *State {
	return s.state.Load()
}

// Dispatch applies ev and returns the resulting state. Subscribers are called
// in registration order, while the dispatch lock is held, whenever the state
// changes; they must not call Dispatch or Subscribe themselves.
func (s *Store) Dispatch(ev Event) *State {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.state.Load()
	next := Reduce(prev, ev)
	if next == prev {
		return prev
	}
	s.state.Store(next)

	s.log.Debug("dispatch",
		zap.String("event", string(ev.Kind())),
		zap.Int("users", next.Len()))

	for _, sub := range s.subs {
		sub.fn(next)
	}
	return next
}

// Subscribe registers fn to be called with every new state. The returned
// function removes the subscription and is safe to call more than once.
func (s *Store) Subscribe(fn func(*State)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, sub := range s.subs {
				if sub.id == id {
					s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// Run executes a and blocks until it returns. Callers that must not block
// run it on their own goroutine.
func (s *Store) Run(ctx context.Context, a Action) error {
	s.log.Debug("action started")
	err := a(ctx, s.Dispatch, s.State, s.getter)
	if err == nil {
		st := s.State()
		s.log.Info("action completed", zap.Bool("loaded", st.Loaded()), zap.Int("users", st.Len()))
		return nil
	}

	var fe *FetchError
	if errors.As(err, &fe) {
		s.log.Warn("load failed",
			zap.String("kind", fe.Kind.String()),
			zap.String("url", fe.URL),
			zap.Int("status", fe.StatusCode),
			zap.Error(fe.Err))
	} else {
		s.log.Warn("action failed", zap.Error(err))
	}
	return err
}
