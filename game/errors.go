package game

type GameError struct {
	Code string
	Msg  string
}

func (e *GameError) ErrorCode() string { return e.Code }
func (e *GameError) Error() string     { return e.Msg }

var (
	// ErrWrongPhase means the command is not valid in the current phase
	ErrWrongPhase = &GameError{"WRONGPHASE", "not in that phase"}
	// ErrNotYourTurn means the actor isn't the one required right now
	ErrNotYourTurn = &GameError{"NOTYOURTURN", "it's not your turn"}
	// ErrInvalidPlayer means an unknown player id
	ErrInvalidPlayer = &GameError{"INVALIDPLAYER", "no such player"}
	// ErrInvalidCardIndex means a hand index out of range
	ErrInvalidCardIndex = &GameError{"INVALIDCARDINDEX", "no card at that index"}
	// ErrInvalidPrediction means a rank outside 1..5, or a posterior
	// guess that isn't a permutation of the player ids
	ErrInvalidPrediction = &GameError{"INVALIDPREDICTION", "prediction doesn't make sense"}
	// ErrMalformed means an undecodable message; the transport reports
	// this, the reducer never does
	ErrMalformed = &GameError{"MALFORMED", "malformed message"}
)

// ReError matches error codes back to error objects, for clients that
// only get a code over the wire.
func ReError(code string) error {
	switch code {
	case "WRONGPHASE":
		return ErrWrongPhase
	case "NOTYOURTURN":
		return ErrNotYourTurn
	case "INVALIDPLAYER":
		return ErrInvalidPlayer
	case "INVALIDCARDINDEX":
		return ErrInvalidCardIndex
	case "INVALIDPREDICTION":
		return ErrInvalidPrediction
	case "MALFORMED":
		return ErrMalformed
	}
	return nil
}
