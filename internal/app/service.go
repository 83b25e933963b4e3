package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jaminalder/tictactoe-timetravel/internal/domain"
)

// Errors exposed by the service layer.
var (
	ErrNotFound = errors.New("game not found")
)

// Session is the in-memory state tracked per game.
type Session struct {
	ID      string
	State   domain.GameState
	Order   domain.Order
	Created time.Time
	Updated time.Time
}

type subscriber struct {
	ch        chan []byte
	closeOnce sync.Once
}

func (s *subscriber) close() { s.closeOnce.Do(func() { close(s.ch) }) }

// Service owns game sessions and notifies subscribers when one changes.
type Service struct {
	mu     sync.Mutex
	games  map[string]*Session
	subs   map[string]map[*subscriber]struct{}
	render func(Session) []byte
	log    zerolog.Logger
	now    func() time.Time
}

// NewService creates a service with a renderer that encodes nothing.
func NewService() *Service { return NewServiceWithRenderer(nil) }

// NewServiceWithRenderer allows injecting a renderer for broadcast payloads.
func NewServiceWithRenderer(renderer func(Session) []byte) *Service {
	s := &Service{
		games: make(map[string]*Session),
		subs:  make(map[string]map[*subscriber]struct{}),
		log:   zerolog.Nop(),
		now:   time.Now,
	}
	s.SetRenderer(renderer)
	return s
}

// SetRenderer replaces the broadcast renderer function.
func (s *Service) SetRenderer(renderer func(Session) []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if renderer == nil {
		s.render = func(Session) []byte { return nil }
		return
	}
	s.render = renderer
}

// SetLogger replaces the service logger.
func (s *Service) SetLogger(l zerolog.Logger) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.log = l.With().Str("component", "game-service").Logger()
}

// CreateGame creates and registers a new game.
func (s *Service) CreateGame() (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	gs := &Session{ID: newID(), State: domain.New(), Order: domain.Ascending, Created: now, Updated: now}
	s.games[gs.ID] = gs
	s.log.Debug().Str("game", gs.ID).Int("games", len(s.games)).Msg("game created")
	cp := *gs
	return &cp, nil
}

// Get returns a copy of the session if present.
func (s *Service) Get(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	gs, ok := s.games[id]
	if !ok {
		return nil, false
	}
	cp := *gs
	return &cp, true
}

// Play applies a move at the board index. Rejected moves return the
// unchanged session without an error.
func (s *Service) Play(id string, index int) (*Session, error) {
	return s.apply(id, func(gs *Session) bool {
		next := gs.State.ApplyMove(index)
		if next.Cursor == gs.State.Cursor {
			return false
		}
		gs.State = next
		return true
	})
}

// JumpTo moves the session's cursor to step. Out-of-range steps are ignored.
func (s *Service) JumpTo(id string, step int) (*Session, error) {
	return s.apply(id, func(gs *Session) bool {
		if step < 0 || step >= len(gs.State.History) || step == gs.State.Cursor {
			return false
		}
		gs.State = gs.State.JumpTo(step)
		return true
	})
}

// ToggleOrder flips the display order of the move list.
func (s *Service) ToggleOrder(id string) (*Session, error) {
	return s.apply(id, func(gs *Session) bool {
		gs.Order = gs.Order.Toggle()
		return true
	})
}

// apply runs fn under the lock and broadcasts when fn reports a change.
func (s *Service) apply(id string, fn func(*Session) bool) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	gs, ok := s.games[id]
	if !ok {
		return nil, ErrNotFound
	}
	if fn(gs) {
		gs.Updated = s.now()
		s.broadcastLocked(*gs)
	}
	cp := *gs
	return &cp, nil
}

// broadcastLocked fans the rendered session out without blocking; slow
// subscribers are closed and dropped. Callers hold s.mu, which unsubscribe
// also takes before closing a channel.
func (s *Service) broadcastLocked(gs Session) {
	set := s.subs[gs.ID]
	if len(set) == 0 {
		return
	}
	payload := s.render(gs)
	dropped := 0
	for sub := range set {
		select {
		case sub.ch <- payload:
		default:
			sub.close()
			delete(set, sub)
			dropped++
		}
	}
	if dropped > 0 {
		s.log.Debug().Str("game", gs.ID).Int("dropped", dropped).Msg("dropped slow subscribers")
	}
}

// Subscribe registers a subscriber for a game. Returns a channel and an
// unsubscribe func; the subscription also ends when ctx is done.
func (s *Service) Subscribe(ctx context.Context, id string) (<-chan []byte, func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.games[id]; !ok {
		return nil, func() {}, ErrNotFound
	}
	set := s.subs[id]
	if set == nil {
		set = make(map[*subscriber]struct{})
		s.subs[id] = set
	}
	sub := &subscriber{ch: make(chan []byte, 1)}
	set[sub] = struct{}{}

	unsubOnce := &sync.Once{}
	unsub := func() {
		unsubOnce.Do(func() {
			s.mu.Lock()
			if set, ok := s.subs[id]; ok {
				delete(set, sub)
				if len(set) == 0 {
					delete(s.subs, id)
				}
			}
			s.mu.Unlock()
			sub.close()
		})
	}
	go func() {
		<-ctx.Done()
		unsub()
	}()
	return sub.ch, unsub, nil
}

// Sweep removes games idle for longer than ttl that have no subscribers.
// It returns the number of games removed.
func (s *Service) Sweep(ttl time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := s.now().Add(-ttl)
	removed := 0
	for id, gs := range s.games {
		if gs.Updated.After(cutoff) || len(s.subs[id]) > 0 {
			continue
		}
		delete(s.games, id)
		delete(s.subs, id)
		removed++
	}
	if removed > 0 {
		s.log.Debug().Int("removed", removed).Int("games", len(s.games)).Msg("swept idle games")
	}
	return removed
}

// RunJanitor sweeps idle games every interval until ctx is done.
func (s *Service) RunJanitor(ctx context.Context, interval, ttl time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(ttl)
		}
	}
}

// Len returns the number of live games.
func (s *Service) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.games)
}
