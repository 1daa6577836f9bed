// Package server is the dispatch hub: it owns the one authoritative
// GameState, serializes every command through it, and fans the
// resulting events out to the connected players.
package server

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/undeconstructed/quintet/comms"
	"github.com/undeconstructed/quintet/game"
)

// SessionPhase is the coarse connection-acceptance state, one level
// above the game's own phases.
type SessionPhase int

const (
	SessionWaiting SessionPhase = iota
	SessionPlaying
	SessionFinished
)

func (s SessionPhase) String() string {
	switch s {
	case SessionWaiting:
		return "waiting"
	case SessionPlaying:
		return "playing"
	case SessionFinished:
		return "finished"
	}
	return "unknown"
}

type Options struct {
	TCPAddr string
	WebAddr string
}

// ErrGameFull refuses a sixth connection, or any connection once play
// has started.
var ErrGameFull = errors.New("no free seats")

// Server serves just one game, that's enough.
type Server struct {
	opts Options
	log  zerolog.Logger
	rng  *rand.Rand

	reg *registry

	// mu serializes everything below: the game state, the session
	// phase, seat assignment and the restart votes. Delivery into the
	// clients' buffered channels happens under it too, so events reach
	// every client in apply order; it is never held across a blocking
	// socket write, those belong to the writer goroutines.
	mu      sync.Mutex
	state   *game.GameState
	session SessionPhase
	seated  [game.NumPlayers]bool
	votes   map[int]bool
}

func NewServer(opts Options) *Server {
	return &Server{
		opts:    opts,
		log:     log.With().Str("comp", "server").Logger(),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		reg:     newRegistry(),
		state:   game.NewGameState(),
		session: SessionWaiting,
		votes:   map[int]bool{},
	}
}

// Run starts the gateways and blocks until the context ends.
func (s *Server) Run(ctx context.Context) error {
	s.log.Info().Msg("server running")
	defer s.log.Info().Msg("server stopping")

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return runTCPGateway(ctx, s, s.opts.TCPAddr)
	})
	g.Go(func() error {
		return runWebGateway(ctx, s, s.opts.WebAddr)
	})
	return g.Wait()
}

// outbound is a routed message ready for delivery.
type outbound struct {
	route game.Route
	msg   comms.Message
}

// dispatch delivers into the per-client channels. Sends never block,
// so calling this with the state lock held is fine, and doing so keeps
// cross-command delivery in apply order.
func (s *Server) dispatch(out []outbound) {
	for _, o := range out {
		if o.route.Broadcast {
			s.reg.broadcast(o.msg)
		} else {
			s.reg.unicast(o.route.Player, o.msg)
		}
	}
}

func routeEvents(events []game.Event) []outbound {
	var out []outbound
	for _, e := range events {
		msg, err := game.EncodeEvent(e)
		if err != nil {
			// an unencodable event is a programming error
			panic(err)
		}
		out = append(out, outbound{route: game.RouteOf(e), msg: msg})
	}
	return out
}

// Connect seats a new connection. Refused once all five seats are
// taken, or after the game has started without this seat.
func (s *Server) Connect(c *clientBundle) (int, error) {
	s.mu.Lock()

	if s.session != SessionWaiting {
		s.mu.Unlock()
		return -1, ErrGameFull
	}

	seat := -1
	for i, taken := range s.seated {
		if !taken {
			seat = i
			break
		}
	}
	if seat == -1 {
		s.mu.Unlock()
		return -1, ErrGameFull
	}

	s.seated[seat] = true
	c.player = seat
	s.reg.add(c)

	var out []outbound
	out = append(out, routeEvents([]game.Event{game.PlayerAssigned{Player: seat}})...)

	full := true
	for _, taken := range s.seated {
		if !taken {
			full = false
			break
		}
	}
	if full {
		// the fifth seat starts the game; dealing happens exactly once
		s.session = SessionPlaying
		events := []game.Event{game.GameStarted{}}
		events = append(events, s.state.Deal(s.rng)...)
		events = append(events, game.PhaseChanged{Phase: s.state.Phase.String()})
		out = append(out, routeEvents(events)...)
		s.log.Info().Msg("all seats filled, game starting")
	}

	s.dispatch(out)
	s.mu.Unlock()
	return seat, nil
}

// Disconnect drops a seat. During Waiting the seat opens up again;
// mid-game it stays assigned and the game simply stalls, there is no
// resume.
func (s *Server) Disconnect(player int) {
	s.mu.Lock()
	if s.session == SessionWaiting {
		s.seated[player] = false
	}
	delete(s.votes, player)
	s.mu.Unlock()

	s.reg.remove(player)
	s.log.Info().Int("player", player).Msg("player gone")
}

// HandleCommand applies one command from one player. The error return
// goes back to that player only.
func (s *Server) HandleCommand(player int, cmd game.Command) error {
	if cmd.Actor() != player {
		// a connection may only speak for its own seat
		return game.ErrInvalidPlayer
	}
	if r, ok := cmd.(game.Restart); ok {
		return s.handleRestart(player, r)
	}

	s.mu.Lock()
	events, err := s.state.Apply(cmd)
	if err != nil {
		s.mu.Unlock()
		return err
	}

	out := routeEvents(events)
	for _, e := range events {
		if _, ok := e.(game.GameEnded); ok {
			s.session = SessionFinished
		}
	}
	s.dispatch(out)
	s.mu.Unlock()

	return nil
}

// handleRestart tallies replay votes. When every currently seated
// player has voted yes the game is rebuilt from scratch; with all five
// still present it re-deals immediately, otherwise it goes back to
// waiting for players.
func (s *Server) handleRestart(player int, cmd game.Restart) error {
	s.mu.Lock()
	s.votes[player] = cmd.Yes

	seated := s.reg.seated()
	unanimous := len(seated) > 0
	for _, p := range seated {
		if yes, ok := s.votes[p]; !ok || !yes {
			unanimous = false
			break
		}
	}

	var out []outbound
	if unanimous {
		s.log.Info().Msg("restart vote passed")
		s.state = game.NewGameState()
		s.votes = map[int]bool{}

		if len(seated) == game.NumPlayers {
			s.session = SessionPlaying
			events := []game.Event{game.GameStarted{}}
			events = append(events, s.state.Deal(s.rng)...)
			events = append(events, game.PhaseChanged{Phase: s.state.Phase.String()})
			out = routeEvents(events)
		} else {
			// seats of players who left mid-game open up again
			s.seated = [game.NumPlayers]bool{}
			for _, p := range seated {
				s.seated[p] = true
			}
			s.session = SessionWaiting
		}
	}
	s.dispatch(out)
	s.mu.Unlock()

	return nil
}

// Status is the redacted snapshot for the web gateway.
type Status struct {
	Session string       `json:"session"`
	Players []int        `json:"players"`
	Game    game.Summary `json:"game"`
}

func (s *Server) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	players := s.reg.seated()
	if players == nil {
		players = []int{}
	}
	return Status{
		Session: s.session.String(),
		Players: players,
		Game:    s.state.Summarize(),
	}
}
