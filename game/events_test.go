package game

import (
	"bytes"
	"testing"
)

func TestRouteOf(t *testing.T) {
	tests := []struct {
		event Event
		want  Route
	}{
		{PlayerAssigned{Player: 3}, Route{Player: 3}},
		{CardsDealt{Player: 2}, Route{Player: 2}},
		{PredictionAccepted{Player: 1}, Route{Broadcast: true}},
		{CardPlayed{Player: 4}, Route{Broadcast: true}},
		{PosteriorPredictionAccepted{Player: 0}, Route{Broadcast: true}},
		{RoundResult{}, Route{Broadcast: true}},
		{GameStarted{}, Route{Broadcast: true}},
		{PhaseChanged{Phase: "play"}, Route{Broadcast: true}},
		{GameEnded{}, Route{Broadcast: true}},
	}
	for _, tt := range tests {
		if got := RouteOf(tt.event); got != tt.want {
			t.Errorf("%T: got %v, want %v", tt.event, got, tt.want)
		}
	}
}

func TestPlayedCardRedaction(t *testing.T) {
	full := PlayedCard{Player: 2, Card: Card{RankAce, SuitSpade}}
	pub := full.Public()
	if pub.Player != 2 {
		t.Errorf("player lost in redaction")
	}

	// the public projection must not leak the card over the wire
	msg, err := EncodeEvent(pub)
	if err != nil {
		t.Fatal(err)
	}
	for _, needle := range []string{"rank", "suit", "card\"", "spade"} {
		if bytes.Contains(msg.Data, []byte(needle)) {
			t.Errorf("redacted play leaks %q: %s", needle, msg.Data)
		}
	}
}

func TestPredictionStaysPrivate(t *testing.T) {
	msg, err := EncodeEvent(PredictionAccepted{Player: 1})
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Contains(msg.Data, []byte("rank")) {
		t.Errorf("acceptance leaks the prediction: %s", msg.Data)
	}
}
