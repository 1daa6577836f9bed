// Package client is the terminal player. It speaks the line protocol
// to the server, keeps a local view of the game derived from the event
// stream, and wraps it all in a readline repl.
package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"

	rl "github.com/chzyer/readline"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/undeconstructed/quintet/comms"
	"github.com/undeconstructed/quintet/game"
)

type Client interface {
	Run(ctx context.Context) error
}

func NewClient(server string) Client {
	return &client{
		server: server,
		view:   newView(),
		log:    log.With().Str("comp", "client").Logger(),
	}
}

type client struct {
	server string
	view   *view
	log    zerolog.Logger

	enc *comms.Encoder
}

func (c *client) Run(ctx context.Context) error {
	conn, err := net.Dial("tcp", c.server)
	if err != nil {
		return err
	}
	defer conn.Close()

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	c.enc = comms.NewEncoder(conn)
	dec := comms.NewDecoder(conn)

	completer := rl.NewPrefixCompleter(
		rl.PcItem("predict"),
		rl.PcItem("play"),
		rl.PcItem("guess"),
		rl.PcItem("restart",
			rl.PcItem("yes"),
			rl.PcItem("no"),
		),
		rl.PcItem("hand"),
		rl.PcItem("scores"),
		rl.PcItem("quit"),
	)

	l, err := rl.NewEx(&rl.Config{
		Prompt:            "» ",
		HistoryFile:       "quintet-hist.txt",
		AutoComplete:      completer,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		return err
	}
	defer l.Close()

	go func() {
		c.readLoop(dec, l)
		// server gone, unblock the repl
		l.Close()
	}()

	c.repl(l)
	return nil
}

// readLoop handles everything the server sends until the stream ends.
func (c *client) readLoop(dec *comms.Decoder, l *rl.Instance) {
	for {
		msg, err := dec.Decode()
		if err == comms.ErrBadLine {
			c.log.Info().Msg("undecodable line from server")
			continue
		}
		if err != nil {
			if err != io.EOF {
				c.log.Info().Err(err).Msg("read error")
			}
			pterm.Warning.Println("disconnected")
			return
		}

		switch msg.Type() {
		case "event":
			ev, err := game.DecodeEvent(msg)
			if err != nil {
				c.log.Info().Msgf("bad event: %s", msg.Head)
				continue
			}
			c.handleEvent(ev)
		case "error":
			pterm.Error.Println(decodeError(msg))
		case "command":
			// commands only ever flow client to server
			c.log.Info().Msgf("server sent a command: %s", msg.Head)
		default:
			c.log.Info().Msgf("junk from server: %s", msg.Head)
		}

		c.updatePrompt(l)
	}
}

func (c *client) handleEvent(ev game.Event) {
	c.view.apply(ev)
	snap := c.view.snapshot()

	switch e := ev.(type) {
	case game.PlayerAssigned:
		pterm.Success.Printfln("you are player %d", e.Player)
	case game.CardsDealt:
		printHand(snap.hand)
	case game.RoundResult:
		printRoundResult(e, snap.me)
		printScores(snap.scores, snap.me)
	case game.GameEnded:
		pterm.DefaultSection.Println("final scores")
		printScores(snap.scores, snap.me)
		pterm.Info.Println("vote 'restart yes' to play again")
	default:
		if line := describeEvent(ev, snap.me); line != "" {
			pterm.Println(line)
		}
	}

	if snap.myTurn() {
		switch snap.phase {
		case game.PhasePriorPrediction:
			pterm.Info.Println("your turn: predict <1-5> or predict -")
		case game.PhasePlay:
			printHand(snap.hand)
			pterm.Info.Println("your turn: play <index>")
		case game.PhasePosteriorPrediction:
			pterm.Info.Println("your call: guess <id id id id id> or guess -")
		}
	}
}

func (c *client) updatePrompt(l *rl.Instance) {
	snap := c.view.snapshot()
	marker := ""
	if snap.myTurn() {
		marker = "!"
	}
	prompt := fmt.Sprintf("r%d|%s%s» ", snap.round, snap.phase, marker)
	if !snap.started {
		prompt = "waiting» "
	}
	l.SetPrompt(prompt)
	l.Refresh()
}

func (c *client) send(cmd game.Command) {
	msg, err := game.EncodeCommand(cmd)
	if err != nil {
		c.log.Error().Err(err).Msg("encode error")
		return
	}
	if err := c.enc.Send(msg); err != nil {
		pterm.Error.Printfln("send failed: %v", err)
	}
}

func (c *client) repl(l *rl.Instance) {
	for {
		line, err := l.Readline()
		if err == rl.ErrInterrupt {
			if len(line) == 0 {
				return
			}
			continue
		} else if err == io.EOF {
			return
		}

		parts := strings.SplitN(strings.TrimSpace(line), " ", 2)
		cmd := parts[0]
		rest := ""
		if len(parts) == 2 {
			rest = strings.TrimSpace(parts[1])
		}

		snap := c.view.snapshot()

		switch cmd {
		case "":
			continue
		case "quit":
			return
		case "hand":
			printHand(snap.hand)
		case "scores":
			printScores(snap.scores, snap.me)
		case "predict":
			var rank *int
			if rest != "-" {
				n, err := strconv.Atoi(rest)
				if err != nil {
					pterm.Error.Println("predict <1-5> or predict -")
					continue
				}
				rank = &n
			}
			c.send(game.Predict{Player: snap.me, Rank: rank})
		case "play":
			idx, err := strconv.Atoi(rest)
			if err != nil {
				pterm.Error.Println("play <index>")
				continue
			}
			c.view.notePendingPlay(idx)
			c.send(game.PlayCard{Player: snap.me, Index: idx})
		case "guess":
			var ranking []int
			if rest != "-" {
				ranking = parseRanking(rest)
				if ranking == nil {
					pterm.Error.Println("guess <id id id id id> or guess -")
					continue
				}
			}
			c.send(game.PosteriorPredict{Player: snap.me, Ranking: ranking})
		case "restart":
			switch rest {
			case "yes", "no":
				c.send(game.Restart{Player: snap.me, Yes: rest == "yes"})
			default:
				pterm.Error.Println("restart <yes|no>")
			}
		default:
			pterm.Error.Println("unknown command")
		}
	}
}

// decodeError rebuilds a typed game error from an error message. Codes
// the rules never issue come through as plain text.
func decodeError(msg comms.Message) error {
	var info struct {
		Code string `json:"code"`
		Msg  string `json:"msg"`
	}
	if err := comms.Decode(msg, &info); err != nil {
		return game.ErrMalformed
	}
	if err := game.ReError(info.Code); err != nil {
		return err
	}
	return errors.New(info.Msg)
}

func parseRanking(s string) []int {
	fields := strings.Fields(s)
	if len(fields) != game.NumPlayers {
		return nil
	}
	out := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil
		}
		out[i] = n
	}
	return out
}
