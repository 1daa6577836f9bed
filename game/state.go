package game

import (
	"math/rand"
)

const (
	// NumPlayers is fixed; the rules don't work for any other count.
	NumPlayers = 5
	// NumRounds before the game ends.
	NumRounds = 5
	// HandSize dealt to each player.
	HandSize = 5
)

type Phase int

const (
	PhasePriorPrediction Phase = iota
	PhasePlay
	PhasePosteriorPrediction
	PhaseEnd
)

func (p Phase) String() string {
	switch p {
	case PhasePriorPrediction:
		return "prior_prediction"
	case PhasePlay:
		return "play"
	case PhasePosteriorPrediction:
		return "posterior_prediction"
	case PhaseEnd:
		return "end"
	}
	return "unknown"
}

// PlayerState is one seat. The hand is owned by the player alone until
// cards reach the table.
type PlayerState struct {
	ID           int
	Hand         []Card
	Score        int
	Prediction   *int
	HasPredicted bool
	HasPlayed    bool
	// Posterior is the start player's guess of the full finishing
	// order, best first. Nil means skipped.
	Posterior []int
}

// PlayedCard is a table entry: the full fact of a play, including the
// card. Only its Public projection ever leaves the engine before
// settlement.
type PlayedCard struct {
	Player int  `json:"player"`
	Card   Card `json:"card"`
}

// Public redacts the card. This is what everyone else learns when a
// card hits the table.
func (p PlayedCard) Public() CardPlayed {
	return CardPlayed{Player: p.Player}
}

// GameState is the single authoritative game. It is not safe for
// concurrent use; the hub serializes access.
type GameState struct {
	Players [NumPlayers]PlayerState
	// Round counts completed rounds, 0..NumRounds.
	Round int
	// StartPlayer opens each phase of the current round.
	StartPlayer int
	// CurrentPlayer is whose turn it is, meaningful in the prediction
	// and play phases.
	CurrentPlayer int
	Phase         Phase
	// Table holds this round's plays in play order, cleared at
	// settlement.
	Table []PlayedCard
	// Dealt is set once hands have been dealt.
	Dealt bool
}

func NewGameState() *GameState {
	g := &GameState{}
	for i := range g.Players {
		g.Players[i] = PlayerState{ID: i}
	}
	return g
}

// nextSeat moves one seat counter-clockwise, which is the direction all
// turn order runs in.
func nextSeat(seat int) int {
	return (seat + NumPlayers - 1) % NumPlayers
}

// Deal gives every player 2 low-tier cards (A-7 of hearts, diamonds,
// clubs), 2 high-tier cards (8-K of the same suits) and 1 spade, and
// reports each hand as a private event. Randomness only needs to be
// fair-ish, not cryptographic.
func (g *GameState) Deal(rng *rand.Rand) []Event {
	var low, high, spades []Card

	for _, suit := range []Suit{SuitHeart, SuitDiamond, SuitClub} {
		for r := RankAce; r <= Rank7; r++ {
			low = append(low, Card{Rank: r, Suit: suit})
		}
		for r := Rank8; r <= RankKing; r++ {
			high = append(high, Card{Rank: r, Suit: suit})
		}
	}
	for r := RankAce; r <= RankKing; r++ {
		spades = append(spades, Card{Rank: r, Suit: SuitSpade})
	}

	shuffle := func(deck []Card) {
		rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
	}
	shuffle(low)
	shuffle(high)
	shuffle(spades)

	var events []Event
	for i := range g.Players {
		p := &g.Players[i]
		p.Hand = []Card{low[2*i], low[2*i+1], high[2*i], high[2*i+1], spades[i]}

		hand := make([]Card, len(p.Hand))
		copy(hand, p.Hand)
		events = append(events, CardsDealt{Player: p.ID, Cards: hand})
	}

	g.Dealt = true
	return events
}

// Summary is the redacted view served over the web gateway. No hands,
// no table card identities.
type Summary struct {
	Round         int    `json:"round"`
	Phase         string `json:"phase"`
	StartPlayer   int    `json:"startPlayer"`
	CurrentPlayer int    `json:"currentPlayer"`
	Scores        [5]int `json:"scores"`
	PlayedBy      []int  `json:"playedBy"`
	Dealt         bool   `json:"dealt"`
}

func (g *GameState) Summarize() Summary {
	s := Summary{
		Round:         g.Round,
		Phase:         g.Phase.String(),
		StartPlayer:   g.StartPlayer,
		CurrentPlayer: g.CurrentPlayer,
		Dealt:         g.Dealt,
		PlayedBy:      []int{},
	}
	for i, p := range g.Players {
		s.Scores[i] = p.Score
	}
	for _, t := range g.Table {
		s.PlayedBy = append(s.PlayedBy, t.Player)
	}
	return s
}
