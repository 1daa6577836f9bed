package client

import (
	"sync"

	"github.com/undeconstructed/quintet/game"
)

// view is the client's local picture of the game, rebuilt purely from
// the event stream. The server never says whose turn it is, so the
// view re-derives the counter-clockwise order the same way the engine
// runs it.
type view struct {
	mu sync.Mutex

	me      int
	hand    []game.Card
	scores  [game.NumPlayers]int
	round   int
	phase   game.Phase
	start   int
	current int
	started bool
	ended   bool

	// index of our in-flight play, removed from hand once the server
	// confirms it
	pendingPlay int
}

func newView() *view {
	return &view{me: -1, pendingPlay: -1}
}

func nextSeat(seat int) int {
	return (seat + game.NumPlayers - 1) % game.NumPlayers
}

// apply folds one event into the view.
func (v *view) apply(e game.Event) {
	v.mu.Lock()
	defer v.mu.Unlock()

	switch ev := e.(type) {
	case game.PlayerAssigned:
		v.me = ev.Player
	case game.GameStarted:
		v.hand = nil
		v.scores = [game.NumPlayers]int{}
		v.round = 0
		v.phase = game.PhasePriorPrediction
		v.start = 0
		v.current = 0
		v.started = true
		v.ended = false
		v.pendingPlay = -1
	case game.CardsDealt:
		if ev.Player == v.me {
			v.hand = ev.Cards
		}
	case game.PredictionAccepted:
		if v.phase == game.PhasePriorPrediction {
			v.current = nextSeat(v.current)
		}
	case game.CardPlayed:
		if ev.Player == v.me && v.pendingPlay >= 0 && v.pendingPlay < len(v.hand) {
			v.hand = append(v.hand[:v.pendingPlay], v.hand[v.pendingPlay+1:]...)
			v.pendingPlay = -1
		}
		if v.phase == game.PhasePlay {
			v.current = nextSeat(v.current)
		}
	case game.RoundResult:
		for i, d := range ev.Deltas {
			v.scores[i] += d
		}
		v.round++
		v.start = nextSeat(v.start)
		v.current = v.start
	case game.PhaseChanged:
		switch ev.Phase {
		case game.PhasePlay.String():
			v.phase = game.PhasePlay
			v.current = v.start
		case game.PhasePosteriorPrediction.String():
			v.phase = game.PhasePosteriorPrediction
		case game.PhasePriorPrediction.String():
			v.phase = game.PhasePriorPrediction
		case game.PhaseEnd.String():
			v.phase = game.PhaseEnd
		}
	case game.GameEnded:
		v.ended = true
	}
}

type viewSnapshot struct {
	me      int
	hand    []game.Card
	scores  [game.NumPlayers]int
	round   int
	phase   game.Phase
	start   int
	current int
	started bool
	ended   bool
}

func (v *view) snapshot() viewSnapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	hand := make([]game.Card, len(v.hand))
	copy(hand, v.hand)
	return viewSnapshot{
		me:      v.me,
		hand:    hand,
		scores:  v.scores,
		round:   v.round,
		phase:   v.phase,
		start:   v.start,
		current: v.current,
		started: v.started,
		ended:   v.ended,
	}
}

// myTurn says whether we are expected to act right now.
func (s viewSnapshot) myTurn() bool {
	if !s.started || s.ended {
		return false
	}
	switch s.phase {
	case game.PhasePriorPrediction, game.PhasePlay:
		return s.current == s.me
	case game.PhasePosteriorPrediction:
		return s.start == s.me
	}
	return false
}

func (v *view) notePendingPlay(index int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pendingPlay = index
}
