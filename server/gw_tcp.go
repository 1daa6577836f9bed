package server

import (
	"context"
	"errors"
	"io"
	"net"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/undeconstructed/quintet/comms"
	"github.com/undeconstructed/quintet/game"
)

// ErrorInfo is what an offending connection gets back, and only that
// connection.
type ErrorInfo struct {
	Code string `json:"code,omitempty"`
	Msg  string `json:"msg"`
}

func errorMessage(err error) comms.Message {
	info := ErrorInfo{Msg: err.Error()}
	var gerr *game.GameError
	if errors.As(err, &gerr) {
		info.Code = gerr.Code
	}
	msg, _ := comms.Encode("error", info)
	return msg
}

func runTCPGateway(ctx context.Context, server *Server, addr string) error {
	log := log.With().Str("gw", "tcp").Logger()

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	log.Info().Msgf("comms listening on tcp:%v", ln.Addr())

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		go manageTCPConnection(server, conn, log)
	}
}

func manageTCPConnection(server *Server, conn net.Conn, glog zerolog.Logger) {
	defer conn.Close()

	connID := uuid.New()
	log := glog.With().Str("conn", connID.String()).Logger()
	log.Info().Msgf("connecting from %v", conn.RemoteAddr())

	dnStream := comms.NewEncoder(conn)
	upStream := comms.NewDecoder(conn)

	downCh := make(chan comms.Message, 100)
	client := &clientBundle{connID: connID, downCh: downCh, log: log}

	seat, err := server.Connect(client)
	if err != nil {
		log.Info().Err(err).Msg("refusing connection")
		dnStream.Send(errorMessage(err))
		return
	}
	log = log.With().Int("player", seat).Logger()

	go func() {
		// read downCh, write to conn
		for down := range downCh {
			if err := dnStream.Send(down); err != nil {
				log.Info().Err(err).Msg("send error")
				return
			}
		}
	}()

	for {
		// read conn, despatch into server
		msg, err := upStream.Decode()
		if err == comms.ErrBadLine {
			// transport noise, skip the line and stay connected
			log.Info().Msg("undecodable line")
			client.send(errorMessage(game.ErrMalformed))
			continue
		}
		if err != nil {
			if err != io.EOF {
				log.Info().Err(err).Msg("decode error")
			}
			break
		}

		handleInbound(server, client, msg)
	}

	server.Disconnect(seat)
}

// handleInbound is the per-message work shared by the gateways: only
// commands are welcome here, anything else is a protocol violation
// that gets logged without killing the connection.
func handleInbound(server *Server, client *clientBundle, msg comms.Message) {
	switch msg.Type() {
	case "command":
		cmd, err := game.DecodeCommand(msg)
		if err != nil {
			client.log.Info().Msgf("bad command: %s", msg.Head)
			client.send(errorMessage(game.ErrMalformed))
			return
		}
		if err := server.HandleCommand(client.player, cmd); err != nil {
			client.send(errorMessage(err))
		}
	case "event":
		// events only ever flow server to client
		client.log.Info().Msgf("client sent an event: %s", msg.Head)
		client.send(errorMessage(game.ErrMalformed))
	default:
		client.log.Info().Msgf("junk from client: %s", msg.Head)
		client.send(errorMessage(game.ErrMalformed))
	}
}
