package game

import (
	"github.com/undeconstructed/quintet/comms"
)

// Command is a player's request to change the game. Commands come in
// over the wire with a "command:<name>" head.
type Command interface {
	cmdName() string
	// Actor is the player id the command claims to come from. The hub
	// checks it against the connection's actual seat.
	Actor() int
}

// Predict records the player's guess of their own finishing rank for
// this round. Nil rank means the player abstains.
type Predict struct {
	Player int  `json:"player"`
	Rank   *int `json:"rank,omitempty"`
}

// PlayCard plays the card at Index in the player's hand.
type PlayCard struct {
	Player int `json:"player"`
	Index  int `json:"index"`
}

// PosteriorPredict is the start player's guess of the whole finishing
// order, best first. Nil ranking means skip.
type PosteriorPredict struct {
	Player  int   `json:"player"`
	Ranking []int `json:"ranking,omitempty"`
}

// Restart votes to replay. The hub tallies these; the reducer never
// sees them.
type Restart struct {
	Player int  `json:"player"`
	Yes    bool `json:"yes"`
}

func (Predict) cmdName() string          { return "predict" }
func (PlayCard) cmdName() string         { return "play_card" }
func (PosteriorPredict) cmdName() string { return "posterior_predict" }
func (Restart) cmdName() string          { return "restart" }

func (c Predict) Actor() int          { return c.Player }
func (c PlayCard) Actor() int         { return c.Player }
func (c PosteriorPredict) Actor() int { return c.Player }
func (c Restart) Actor() int          { return c.Player }

// EncodeCommand wraps a command in its wire envelope.
func EncodeCommand(c Command) (comms.Message, error) {
	return comms.Encode("command:"+c.cmdName(), c)
}

// DecodeCommand unwraps a wire envelope into a typed command. Anything
// that isn't a known command head is ErrMalformed.
func DecodeCommand(m comms.Message) (Command, error) {
	f := m.Head.Fields()
	if len(f) != 2 || f[0] != "command" {
		return nil, ErrMalformed
	}

	var c Command
	var err error
	switch f[1] {
	case "predict":
		var v Predict
		err = comms.Decode(m, &v)
		c = v
	case "play_card":
		var v PlayCard
		err = comms.Decode(m, &v)
		c = v
	case "posterior_predict":
		var v PosteriorPredict
		err = comms.Decode(m, &v)
		c = v
	case "restart":
		var v Restart
		err = comms.Decode(m, &v)
		c = v
	default:
		return nil, ErrMalformed
	}
	if err != nil {
		return nil, ErrMalformed
	}
	return c, nil
}
