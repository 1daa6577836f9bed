package game

import (
	"github.com/undeconstructed/quintet/comms"
)

// Event is something the game announces. Events go out with an
// "event:<name>" head.
type Event interface {
	eventName() string
}

// PredictionAccepted says the player's prior prediction was recorded.
// The prediction itself stays private.
type PredictionAccepted struct {
	Player int `json:"player"`
}

// CardPlayed says the player put a card on the table. Deliberately
// does not say which card; identities come out in RoundResult only.
type CardPlayed struct {
	Player int `json:"player"`
}

// PosteriorPredictionAccepted says the start player's full-order guess
// was recorded (or skipped).
type PosteriorPredictionAccepted struct {
	Player int `json:"player"`
}

// RoundResult is the settlement of one round, and the only moment card
// identities become public.
type RoundResult struct {
	// Cards in play order, with their players.
	Cards []PlayedCard `json:"cards"`
	// Ranking is player ids best to worst.
	Ranking []int `json:"ranking"`
	// Predictions indexed by player id; 0 means no prediction.
	Predictions []int `json:"predictions"`
	// Posterior is the start player's guess, empty if skipped.
	Posterior []int `json:"posterior"`
	// Deltas indexed by player id.
	Deltas []int `json:"deltas"`
}

// GameStarted says all five seats are filled.
type GameStarted struct{}

// PhaseChanged announces a phase transition.
type PhaseChanged struct {
	Phase string `json:"phase"`
}

// GameEnded says all rounds are done.
type GameEnded struct{}

// PlayerAssigned tells one connection which seat it has. Private.
type PlayerAssigned struct {
	Player int `json:"player"`
}

// CardsDealt is one player's hand for the game. Private.
type CardsDealt struct {
	Player int    `json:"player"`
	Cards  []Card `json:"cards"`
}

func (PredictionAccepted) eventName() string          { return "prediction_accepted" }
func (CardPlayed) eventName() string                  { return "card_played" }
func (PosteriorPredictionAccepted) eventName() string { return "posterior_prediction_accepted" }
func (RoundResult) eventName() string                 { return "round_result" }
func (GameStarted) eventName() string                 { return "game_started" }
func (PhaseChanged) eventName() string                { return "phase_changed" }
func (GameEnded) eventName() string                   { return "game_ended" }
func (PlayerAssigned) eventName() string              { return "player_assigned" }
func (CardsDealt) eventName() string                  { return "cards_dealt" }

// Route says where an event goes.
type Route struct {
	// Broadcast to everyone, or unicast to Player.
	Broadcast bool
	Player    int
}

// RouteOf classifies an event as broadcast or unicast. This is the
// single place the delivery policy lives.
func RouteOf(e Event) Route {
	switch v := e.(type) {
	case PlayerAssigned:
		return Route{Player: v.Player}
	case CardsDealt:
		return Route{Player: v.Player}
	}
	return Route{Broadcast: true}
}

// EncodeEvent wraps an event in its wire envelope.
func EncodeEvent(e Event) (comms.Message, error) {
	return comms.Encode("event:"+e.eventName(), e)
}

// DecodeEvent unwraps a wire envelope into a typed event.
func DecodeEvent(m comms.Message) (Event, error) {
	f := m.Head.Fields()
	if len(f) != 2 || f[0] != "event" {
		return nil, ErrMalformed
	}

	var e Event
	var err error
	switch f[1] {
	case "prediction_accepted":
		var v PredictionAccepted
		err = comms.Decode(m, &v)
		e = v
	case "card_played":
		var v CardPlayed
		err = comms.Decode(m, &v)
		e = v
	case "posterior_prediction_accepted":
		var v PosteriorPredictionAccepted
		err = comms.Decode(m, &v)
		e = v
	case "round_result":
		var v RoundResult
		err = comms.Decode(m, &v)
		e = v
	case "game_started":
		var v GameStarted
		err = comms.Decode(m, &v)
		e = v
	case "phase_changed":
		var v PhaseChanged
		err = comms.Decode(m, &v)
		e = v
	case "game_ended":
		var v GameEnded
		err = comms.Decode(m, &v)
		e = v
	case "player_assigned":
		var v PlayerAssigned
		err = comms.Decode(m, &v)
		e = v
	case "cards_dealt":
		var v CardsDealt
		err = comms.Decode(m, &v)
		e = v
	default:
		return nil, ErrMalformed
	}
	if err != nil {
		return nil, ErrMalformed
	}
	return e, nil
}
