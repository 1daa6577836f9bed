package game

import (
	"encoding/json"
	"fmt"
)

type Suit int

// Tie break order, highest first.
const (
	SuitSpade Suit = iota
	SuitHeart
	SuitDiamond
	SuitClub
)

func (s Suit) String() string {
	switch s {
	case SuitSpade:
		return "spade"
	case SuitHeart:
		return "heart"
	case SuitDiamond:
		return "diamond"
	case SuitClub:
		return "club"
	}
	return fmt.Sprintf("suit(%d)", int(s))
}

// Glyph is for terminal rendering.
func (s Suit) Glyph() string {
	switch s {
	case SuitSpade:
		return "♠"
	case SuitHeart:
		return "♥"
	case SuitDiamond:
		return "♦"
	case SuitClub:
		return "♣"
	}
	return "?"
}

func (s Suit) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Suit) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	switch name {
	case "spade":
		*s = SuitSpade
	case "heart":
		*s = SuitHeart
	case "diamond":
		*s = SuitDiamond
	case "club":
		*s = SuitClub
	default:
		return fmt.Errorf("unknown suit: %s", name)
	}
	return nil
}

// value for tie-breaking, higher wins
func (s Suit) value() int {
	switch s {
	case SuitSpade:
		return 4
	case SuitHeart:
		return 3
	case SuitDiamond:
		return 2
	default:
		return 1
	}
}

// Rank is the face value. Ace is normally the lowest card; see Compare
// for the one situation where it isn't.
type Rank int

const (
	RankAce Rank = 1 + iota
	Rank2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
	Rank9
	Rank10
	RankJack
	RankQueen
	RankKing
)

var rankNames = map[Rank]string{
	RankAce: "A", Rank2: "2", Rank3: "3", Rank4: "4", Rank5: "5",
	Rank6: "6", Rank7: "7", Rank8: "8", Rank9: "9", Rank10: "10",
	RankJack: "J", RankQueen: "Q", RankKing: "K",
}

func (r Rank) String() string {
	if n, ok := rankNames[r]; ok {
		return n
	}
	return fmt.Sprintf("rank(%d)", int(r))
}

func (r Rank) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *Rank) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for k, v := range rankNames {
		if v == name {
			*r = k
			return nil
		}
	}
	return fmt.Errorf("unknown rank: %s", name)
}

// Card is an immutable rank/suit pair. Cards have no intrinsic total
// order; comparison depends on everything played in the round.
type Card struct {
	Rank Rank `json:"rank"`
	Suit Suit `json:"suit"`
}

func (c Card) String() string {
	return c.Suit.Glyph() + c.Rank.String()
}

// Compare orders a against b in the context of all cards played this
// round. Returns <0, 0, >0 in the usual way. If the round contains both
// an ace and a king, the ace beats everything and the king beats
// everything but the ace; equal honours still fall back to suits.
// Outside that case ranks compare numerically, ace low, ties broken by
// suit, spades high.
func Compare(a, b Card, played []Card) int {
	hasAce, hasKing := false, false
	for _, c := range played {
		switch c.Rank {
		case RankAce:
			hasAce = true
		case RankKing:
			hasKing = true
		}
	}

	if hasAce && hasKing {
		aAce, bAce := a.Rank == RankAce, b.Rank == RankAce
		if aAce != bAce {
			if aAce {
				return 1
			}
			return -1
		}
		aKing, bKing := a.Rank == RankKing, b.Rank == RankKing
		if aKing != bKing && !aAce {
			if aKing {
				return 1
			}
			return -1
		}
	}

	if a.Rank != b.Rank {
		return int(a.Rank) - int(b.Rank)
	}
	return a.Suit.value() - b.Suit.value()
}
