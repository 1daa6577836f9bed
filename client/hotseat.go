package client

import (
	"context"
	"io"
	"math/rand"
	"strconv"
	"strings"
	"time"

	rl "github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/undeconstructed/quintet/game"
)

// Hotseat runs all five seats at one terminal against an in-process
// game, no server involved. Handy for learning the rules.
type Hotseat struct{}

func NewHotseat() *Hotseat {
	return &Hotseat{}
}

func (h *Hotseat) Run(ctx context.Context) error {
	l, err := rl.NewEx(&rl.Config{
		Prompt:          "» ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return err
	}
	defer l.Close()

	state := game.NewGameState()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	state.Deal(rng)

	pterm.DefaultSection.Println("quintet hotseat")

	for state.Phase != game.PhaseEnd {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		var cmd game.Command
		switch state.Phase {
		case game.PhasePriorPrediction:
			cmd = readPredict(l, state.CurrentPlayer)
		case game.PhasePlay:
			p := state.CurrentPlayer
			printHand(state.Players[p].Hand)
			cmd = readPlay(l, p)
		case game.PhasePosteriorPrediction:
			cmd = readGuess(l, state.StartPlayer)
		}
		if cmd == nil {
			// input stream ended
			return nil
		}

		events, err := state.Apply(cmd)
		if err != nil {
			pterm.Error.Println(err)
			continue
		}
		for _, e := range events {
			if res, ok := e.(game.RoundResult); ok {
				printRoundResult(res, -1)
			}
		}
	}

	pterm.DefaultSection.Println("final scores")
	var scores [game.NumPlayers]int
	for i, p := range state.Players {
		scores[i] = p.Score
	}
	printScores(scores, -1)
	return nil
}

func readLine(l *rl.Instance, prompt string) (string, bool) {
	l.SetPrompt(prompt)
	for {
		line, err := l.Readline()
		if err == rl.ErrInterrupt || err == io.EOF {
			return "", false
		}
		line = strings.TrimSpace(line)
		if line != "" {
			return line, true
		}
	}
}

func readPredict(l *rl.Instance, player int) game.Command {
	for {
		line, ok := readLine(l, pterm.Sprintf("player %d predict (1-5 or -)» ", player))
		if !ok {
			return nil
		}
		if line == "-" {
			return game.Predict{Player: player}
		}
		if n, err := strconv.Atoi(line); err == nil {
			return game.Predict{Player: player, Rank: &n}
		}
		pterm.Error.Println("1-5 or -")
	}
}

func readPlay(l *rl.Instance, player int) game.Command {
	for {
		line, ok := readLine(l, pterm.Sprintf("player %d play (index)» ", player))
		if !ok {
			return nil
		}
		if n, err := strconv.Atoi(line); err == nil {
			return game.PlayCard{Player: player, Index: n}
		}
		pterm.Error.Println("pick a card index")
	}
}

func readGuess(l *rl.Instance, player int) game.Command {
	for {
		line, ok := readLine(l, pterm.Sprintf("player %d guess order (ids or -)» ", player))
		if !ok {
			return nil
		}
		if line == "-" {
			return game.PosteriorPredict{Player: player}
		}
		if ranking := parseRanking(line); ranking != nil {
			return game.PosteriorPredict{Player: player, Ranking: ranking}
		}
		pterm.Error.Println("five ids best to worst, or -")
	}
}
