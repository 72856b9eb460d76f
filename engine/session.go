package engine

import (
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/rand"
)

// Session runs consecutive rounds on a fixed config and keeps the scores.
// It is not safe for concurrent use; Loop serializes access.
type Session struct {
	ID      string
	cfg     Config
	scores  []int
	round   *Round
	rounds  int
	spawner *FoodSpawner
	pending []Event
	quit    bool
	logger  *log.Logger
	seed    uint64
}

// Option configures a Session.
type Option func(*Session)

// WithSeed fixes the food RNG seed.
func WithSeed(seed uint64) Option {
	return func(s *Session) { s.seed = seed }
}

// WithLogger replaces log.Default().
func WithLogger(l *log.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// NewSession validates cfg and opens the first round.
func NewSession(cfg Config, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Session{
		ID:     uuid.New().String(),
		cfg:    cfg,
		scores: make([]int, cfg.Players),
		logger: log.Default(),
		seed:   uint64(time.Now().UnixNano()),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.spawner = NewFoodSpawner(cfg.Grid(), rand.New(rand.NewSource(s.seed)))
	s.newRound()
	return s, nil
}

func (s *Session) newRound() {
	s.round = NewRound(s.cfg, s.spawner)
	s.rounds++
	s.logger.Printf("session %s: round %d (%s) waiting for %d player(s)", s.ID, s.rounds, s.round.ID, s.cfg.Players)
}

// Config returns the session's fixed configuration.
func (s *Session) Config() Config {
	return s.cfg
}

// Round returns the current round.
func (s *Session) Round() *Round {
	return s.round
}

// Phase returns the current round's phase.
func (s *Session) Phase() Phase {
	return s.round.phase
}

// Scores returns a copy of the cumulative scores, index = player.
func (s *Session) Scores() []int {
	out := make([]int, len(s.scores))
	copy(out, s.scores)
	return out
}

// Done reports whether a QuitSignal was received.
func (s *Session) Done() bool {
	return s.quit
}

// Interval returns the wait before the next tick for the current phase.
func (s *Session) Interval() time.Duration {
	return Interval(s.round.phase)
}

// Apply buffers ev for the next tick. Events naming a player the session
// does not have are dropped.
func (s *Session) Apply(ev Event) {
	if ev.Kind == QuitSignal {
		s.quit = true
		return
	}
	if ev.Player < 0 || ev.Player >= s.cfg.Players {
		return
	}
	s.pending = append(s.pending, ev)
}

// Tick runs one clock tick. A tick in RoundOver replaces the finished round
// with a fresh one; input buffered during the display delay is discarded.
func (s *Session) Tick() TickReport {
	if s.quit {
		return TickReport{}
	}
	events := s.pending
	s.pending = nil

	if s.round.phase == RoundOver {
		s.newRound()
		return TickReport{}
	}

	before := s.round.phase
	report := s.round.Tick(events)
	if before == Countdown && s.round.phase == Playing {
		s.logger.Printf("session %s: round %d started", s.ID, s.rounds)
	}

	if s.cfg.Players == 1 {
		s.scores[0] += len(report.Ate)
	}
	if report.Ended {
		s.score(s.round.outcome)
	}
	return report
}

func (s *Session) score(out Outcome) {
	switch out.Result {
	case Tie:
		s.logger.Printf("session %s: round %d tie (head-on=%v)", s.ID, s.rounds, out.HeadOn)
	case Win:
		s.scores[out.Winner]++
		s.logger.Printf("session %s: round %d won by %s, %s died (%s)",
			s.ID, s.rounds, PlayerNames[out.Winner], PlayerNames[out.Losers[0].Player], out.Losers[0].Cause)
	case Loss:
		s.logger.Printf("session %s: round %d lost (%s) with score %d", s.ID, s.rounds, out.Losers[0].Cause, s.scores[0])
		s.scores[0] = 0
	}
}
