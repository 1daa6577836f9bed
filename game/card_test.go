package game

import (
	"sort"
	"testing"
)

func sortDesc(cards []Card, played []Card) {
	sort.SliceStable(cards, func(i, j int) bool {
		return Compare(cards[i], cards[j], played) > 0
	})
}

func TestCompare_plain(t *testing.T) {
	// no ace+king pair on the table, so plain numeric order
	played := []Card{
		{RankKing, SuitHeart},
		{RankQueen, SuitSpade},
		{Rank2, SuitClub},
	}

	cards := append([]Card{}, played...)
	sortDesc(cards, played)

	want := []Card{
		{RankKing, SuitHeart},
		{RankQueen, SuitSpade},
		{Rank2, SuitClub},
	}
	for i := range want {
		if cards[i] != want[i] {
			t.Errorf("pos %d: got %v, want %v", i, cards[i], want[i])
		}
	}
}

func TestCompare_aceKingOverride(t *testing.T) {
	// ace and king both present: ace on top, king second, ace's usual
	// low rank suspended
	played := []Card{
		{RankAce, SuitSpade},
		{RankKing, SuitHeart},
		{Rank7, SuitClub},
	}

	cards := append([]Card{}, played...)
	sortDesc(cards, played)

	want := []Card{
		{RankAce, SuitSpade},
		{RankKing, SuitHeart},
		{Rank7, SuitClub},
	}
	for i := range want {
		if cards[i] != want[i] {
			t.Errorf("pos %d: got %v, want %v", i, cards[i], want[i])
		}
	}
}

func TestCompare_aceLowWithoutKing(t *testing.T) {
	played := []Card{
		{RankAce, SuitSpade},
		{Rank2, SuitHeart},
	}
	if Compare(played[0], played[1], played) >= 0 {
		t.Errorf("ace should rank below 2 without a king in play")
	}
}

func TestCompare_suitTieBreak(t *testing.T) {
	played := []Card{
		{Rank7, SuitClub},
		{Rank7, SuitSpade},
		{Rank7, SuitHeart},
		{Rank7, SuitDiamond},
	}

	cards := append([]Card{}, played...)
	sortDesc(cards, played)

	wantSuits := []Suit{SuitSpade, SuitHeart, SuitDiamond, SuitClub}
	for i, s := range wantSuits {
		if cards[i].Suit != s {
			t.Errorf("pos %d: got %v, want suit %v", i, cards[i], s)
		}
	}
}

func TestCompare_twoAces(t *testing.T) {
	// both honours forced up, equal honours still split by suit
	played := []Card{
		{RankAce, SuitHeart},
		{RankAce, SuitSpade},
		{RankKing, SuitClub},
		{RankQueen, SuitDiamond},
	}

	cards := append([]Card{}, played...)
	sortDesc(cards, played)

	want := []Card{
		{RankAce, SuitSpade},
		{RankAce, SuitHeart},
		{RankKing, SuitClub},
		{RankQueen, SuitDiamond},
	}
	for i := range want {
		if cards[i] != want[i] {
			t.Errorf("pos %d: got %v, want %v", i, cards[i], want[i])
		}
	}
}

func TestCompare_consistency(t *testing.T) {
	played := []Card{
		{RankAce, SuitSpade},
		{RankKing, SuitHeart},
		{RankKing, SuitClub},
		{Rank5, SuitDiamond},
	}
	for _, a := range played {
		for _, b := range played {
			if Compare(a, b, played) != -Compare(b, a, played) {
				t.Errorf("asymmetric compare for %v vs %v", a, b)
			}
		}
	}
}
