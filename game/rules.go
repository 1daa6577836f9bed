package game

import (
	"sort"
)

// baseScores by finishing position, best to worst.
var baseScores = [NumPlayers]int{2, 1, 0, -1, -2}

// Apply validates a command against the current state and either
// mutates the state and returns the resulting events, or returns an
// error and leaves the state exactly as it was. Checks run in a fixed
// order: phase, then actor, then payload.
func (g *GameState) Apply(c Command) ([]Event, error) {
	switch cmd := c.(type) {
	case Predict:
		return g.applyPredict(cmd)
	case PlayCard:
		return g.applyPlayCard(cmd)
	case PosteriorPredict:
		return g.applyPosterior(cmd)
	case Restart:
		// votes are a session concern, not a rules one
		return nil, nil
	}
	return nil, ErrMalformed
}

func (g *GameState) checkTurn(phase Phase, player int) error {
	if g.Phase != phase {
		return ErrWrongPhase
	}
	if player < 0 || player >= NumPlayers {
		return ErrInvalidPlayer
	}
	if player != g.CurrentPlayer {
		return ErrNotYourTurn
	}
	return nil
}

func (g *GameState) applyPredict(cmd Predict) ([]Event, error) {
	if err := g.checkTurn(PhasePriorPrediction, cmd.Player); err != nil {
		return nil, err
	}
	if cmd.Rank != nil && (*cmd.Rank < 1 || *cmd.Rank > NumPlayers) {
		return nil, ErrInvalidPrediction
	}

	p := &g.Players[cmd.Player]
	p.Prediction = cmd.Rank
	p.HasPredicted = true

	events := []Event{PredictionAccepted{Player: cmd.Player}}

	done := true
	for i := range g.Players {
		if !g.Players[i].HasPredicted {
			done = false
			break
		}
	}
	if done {
		g.Phase = PhasePlay
		g.CurrentPlayer = g.StartPlayer
		events = append(events, PhaseChanged{Phase: g.Phase.String()})
	} else {
		g.CurrentPlayer = nextSeat(g.CurrentPlayer)
	}

	return events, nil
}

func (g *GameState) applyPlayCard(cmd PlayCard) ([]Event, error) {
	if err := g.checkTurn(PhasePlay, cmd.Player); err != nil {
		return nil, err
	}

	p := &g.Players[cmd.Player]
	if cmd.Index < 0 || cmd.Index >= len(p.Hand) {
		return nil, ErrInvalidCardIndex
	}

	card := p.Hand[cmd.Index]
	p.Hand = append(p.Hand[:cmd.Index], p.Hand[cmd.Index+1:]...)
	p.HasPlayed = true

	played := PlayedCard{Player: cmd.Player, Card: card}
	g.Table = append(g.Table, played)

	// only the redacted projection leaves the engine here
	events := []Event{played.Public()}

	if len(g.Table) == NumPlayers {
		// settlement is armed; it fires once the start player has had
		// their posterior say
		g.Phase = PhasePosteriorPrediction
		events = append(events, PhaseChanged{Phase: g.Phase.String()})
	} else {
		g.CurrentPlayer = nextSeat(g.CurrentPlayer)
	}

	return events, nil
}

func (g *GameState) applyPosterior(cmd PosteriorPredict) ([]Event, error) {
	if g.Phase != PhasePosteriorPrediction {
		return nil, ErrWrongPhase
	}
	if cmd.Player < 0 || cmd.Player >= NumPlayers {
		return nil, ErrInvalidPlayer
	}
	if cmd.Player != g.StartPlayer {
		return nil, ErrNotYourTurn
	}
	if cmd.Ranking != nil && !isPermutation(cmd.Ranking) {
		return nil, ErrInvalidPrediction
	}

	g.Players[cmd.Player].Posterior = cmd.Ranking

	events := []Event{PosteriorPredictionAccepted{Player: cmd.Player}}
	events = append(events, g.settle()...)
	return events, nil
}

// settle ranks the table, applies all score deltas, and resets for the
// next round (or ends the game). Runs exactly once per round.
func (g *GameState) settle() []Event {
	cards := make([]Card, len(g.Table))
	for i, t := range g.Table {
		cards[i] = t.Card
	}

	ranked := make([]PlayedCard, len(g.Table))
	copy(ranked, g.Table)
	sort.SliceStable(ranked, func(i, j int) bool {
		return Compare(ranked[i].Card, ranked[j].Card, cards) > 0
	})

	deltas := make([]int, NumPlayers)
	ranking := make([]int, 0, NumPlayers)

	for pos, t := range ranked {
		ranking = append(ranking, t.Player)
		deltas[t.Player] += baseScores[pos]

		// prior prediction: right is +2, wrong is -2, and no
		// prediction counts as wrong
		pred := g.Players[t.Player].Prediction
		if pred != nil && *pred == pos+1 {
			deltas[t.Player] += 2
		} else {
			deltas[t.Player] -= 2
		}
	}

	// posterior: the start player's full-order guess earns the base
	// score of position 5-k for k exact matches, floored at the worst
	// position
	posterior := g.Players[g.StartPlayer].Posterior
	if posterior != nil {
		matches := 0
		for i, pid := range posterior {
			if i < len(ranking) && ranking[i] == pid {
				matches++
			}
		}
		idx := NumPlayers - matches
		if idx >= NumPlayers {
			idx = NumPlayers - 1
		}
		deltas[g.StartPlayer] += baseScores[idx]
	}

	result := RoundResult{
		Cards:       g.Table,
		Ranking:     ranking,
		Predictions: make([]int, NumPlayers),
		Posterior:   posterior,
		Deltas:      deltas,
	}
	if result.Posterior == nil {
		result.Posterior = []int{}
	}

	for i := range g.Players {
		p := &g.Players[i]
		p.Score += deltas[i]
		if p.Prediction != nil {
			result.Predictions[i] = *p.Prediction
		}
		p.Prediction = nil
		p.Posterior = nil
		p.HasPredicted = false
		p.HasPlayed = false
	}

	g.Table = nil
	g.Round++
	g.StartPlayer = nextSeat(g.StartPlayer)
	g.CurrentPlayer = g.StartPlayer

	events := []Event{result}
	if g.Round >= NumRounds {
		g.Phase = PhaseEnd
		events = append(events, PhaseChanged{Phase: g.Phase.String()}, GameEnded{})
	} else {
		g.Phase = PhasePriorPrediction
		events = append(events, PhaseChanged{Phase: g.Phase.String()})
	}
	return events
}

func isPermutation(ranking []int) bool {
	if len(ranking) != NumPlayers {
		return false
	}
	var seen [NumPlayers]bool
	for _, id := range ranking {
		if id < 0 || id >= NumPlayers || seen[id] {
			return false
		}
		seen[id] = true
	}
	return true
}
