package client

import (
	"testing"

	"github.com/undeconstructed/quintet/game"
)

func feed(v *view, events ...game.Event) {
	for _, e := range events {
		v.apply(e)
	}
}

func TestViewTracksTurns(t *testing.T) {
	v := newView()
	feed(v,
		game.PlayerAssigned{Player: 3},
		game.GameStarted{},
		game.PhaseChanged{Phase: "prior_prediction"},
	)

	if s := v.snapshot(); s.myTurn() {
		t.Errorf("player 3 should not open the first round")
	}

	// 0 then 4 predict; counter-clockwise, now it's 3
	feed(v,
		game.PredictionAccepted{Player: 0},
		game.PredictionAccepted{Player: 4},
	)
	if s := v.snapshot(); !s.myTurn() {
		t.Errorf("player 3 should be up, current is %d", s.current)
	}
}

func TestViewHand(t *testing.T) {
	v := newView()
	hand := []game.Card{
		{Rank: game.Rank2, Suit: game.SuitHeart},
		{Rank: game.RankKing, Suit: game.SuitClub},
		{Rank: game.Rank5, Suit: game.SuitSpade},
	}
	feed(v,
		game.PlayerAssigned{Player: 1},
		game.GameStarted{},
		game.CardsDealt{Player: 1, Cards: hand},
		game.CardsDealt{Player: 2, Cards: []game.Card{{Rank: game.Rank9, Suit: game.SuitDiamond}}},
	)

	if s := v.snapshot(); len(s.hand) != 3 {
		t.Fatalf("hand: got %v", s.hand)
	}

	// play confirmation removes the pending card, other plays don't
	v.notePendingPlay(1)
	feed(v,
		game.PhaseChanged{Phase: "play"},
		game.CardPlayed{Player: 0},
	)
	if s := v.snapshot(); len(s.hand) != 3 {
		t.Errorf("someone else's play touched my hand: %v", s.hand)
	}
	feed(v, game.CardPlayed{Player: 1})
	s := v.snapshot()
	if len(s.hand) != 2 {
		t.Fatalf("hand after play: got %v", s.hand)
	}
	for _, c := range s.hand {
		if c.Rank == game.RankKing {
			t.Errorf("played card still in hand: %v", s.hand)
		}
	}
}

func TestViewRoundRollover(t *testing.T) {
	v := newView()
	feed(v,
		game.PlayerAssigned{Player: 4},
		game.GameStarted{},
		game.RoundResult{Deltas: []int{6, -1, -4, 2, -3}},
		game.PhaseChanged{Phase: "prior_prediction"},
	)

	s := v.snapshot()
	if s.round != 1 {
		t.Errorf("round: got %d", s.round)
	}
	if s.scores != [game.NumPlayers]int{6, -1, -4, 2, -3} {
		t.Errorf("scores: got %v", s.scores)
	}
	// start rotates to 4, so it's our turn to predict
	if !s.myTurn() {
		t.Errorf("player 4 should open round 2, current is %d", s.current)
	}
}

func TestViewEnd(t *testing.T) {
	v := newView()
	feed(v,
		game.PlayerAssigned{Player: 0},
		game.GameStarted{},
		game.PhaseChanged{Phase: "end"},
		game.GameEnded{},
	)
	if s := v.snapshot(); s.myTurn() || !s.ended {
		t.Errorf("game should be over: %+v", v)
	}
}

func TestParseRanking(t *testing.T) {
	if got := parseRanking("4 2 0 1 3"); got == nil || got[0] != 4 || got[4] != 3 {
		t.Errorf("got %v", got)
	}
	for _, bad := range []string{"", "1 2 3", "1 2 3 4 x", "1 2 3 4 5 6"} {
		if got := parseRanking(bad); got != nil {
			t.Errorf("%q: got %v, want nil", bad, got)
		}
	}
}
