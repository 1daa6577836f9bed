package client

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"github.com/undeconstructed/quintet/game"
)

func cardString(c game.Card) string {
	s := c.String()
	switch c.Suit {
	case game.SuitHeart, game.SuitDiamond:
		return pterm.LightRed(s)
	default:
		return pterm.LightWhite(s)
	}
}

func renderHand(hand []game.Card) string {
	if len(hand) == 0 {
		return pterm.Gray("(no cards)")
	}
	parts := make([]string, len(hand))
	for i, c := range hand {
		parts[i] = fmt.Sprintf("[%d] %s", i, cardString(c))
	}
	return strings.Join(parts, "  ")
}

func printHand(hand []game.Card) {
	pterm.Info.Println("hand: " + renderHand(hand))
}

func printScores(scores [game.NumPlayers]int, me int) {
	rows := pterm.TableData{{"player", "score"}}
	for i, s := range scores {
		name := fmt.Sprintf("%d", i)
		if i == me {
			name += " (you)"
		}
		rows = append(rows, []string{name, fmt.Sprintf("%d", s)})
	}
	pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}

func printRoundResult(res game.RoundResult, me int) {
	pterm.Println()
	pterm.DefaultSection.Println("round result")

	byPlayer := map[int]game.Card{}
	for _, pc := range res.Cards {
		byPlayer[pc.Player] = pc.Card
	}

	rows := pterm.TableData{{"rank", "player", "card", "predicted", "delta"}}
	for pos, pid := range res.Ranking {
		pred := "-"
		if res.Predictions[pid] != 0 {
			pred = fmt.Sprintf("%d", res.Predictions[pid])
		}
		name := fmt.Sprintf("%d", pid)
		if pid == me {
			name += " (you)"
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", pos+1),
			name,
			cardString(byPlayer[pid]),
			pred,
			fmt.Sprintf("%+d", res.Deltas[pid]),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(rows).Render()

	if len(res.Posterior) > 0 {
		pterm.Info.Printfln("posterior guess was: %v", res.Posterior)
	}
}

// describeEvent turns broadcast events into one-liners for the log
// area above the prompt.
func describeEvent(e game.Event, me int) string {
	who := func(p int) string {
		if p == me {
			return "you"
		}
		return fmt.Sprintf("player %d", p)
	}

	switch ev := e.(type) {
	case game.GameStarted:
		return pterm.LightGreen("all seats filled, game on")
	case game.PredictionAccepted:
		return fmt.Sprintf("%s predicted", who(ev.Player))
	case game.CardPlayed:
		return fmt.Sprintf("%s played a card", who(ev.Player))
	case game.PosteriorPredictionAccepted:
		return fmt.Sprintf("%s made the posterior call", who(ev.Player))
	case game.PhaseChanged:
		return pterm.Gray("phase: " + ev.Phase)
	case game.GameEnded:
		return pterm.LightGreen("game over")
	}
	return ""
}
