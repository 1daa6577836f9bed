package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"nhooyr.io/websocket"

	"github.com/undeconstructed/quintet/comms"
)

// runWebGateway serves the status API and a websocket transport that
// carries the same JSON envelopes as the TCP gateway.
func runWebGateway(ctx context.Context, server *Server, addr string) error {
	log := log.With().Str("gw", "web").Logger()

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	log.Info().Msgf("web listening on http://%v", ln.Addr())

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	rh := restHandler{server: server, log: log}
	ch := wsHandler{ctx: ctx, server: server, log: log}

	a := r.Group("/api")
	a.GET("/status", rh.getStatus)
	a.GET("/players", rh.getPlayers)
	r.GET("/ws", ch.serveWS)

	s := &http.Server{
		Handler:      r,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
	}

	go func() {
		<-ctx.Done()
		s.Close()
		ln.Close()
	}()

	err = s.Serve(ln)
	if ctx.Err() != nil {
		return nil
	}
	return err
}

type restHandler struct {
	server *Server
	log    zerolog.Logger
}

func (rh *restHandler) getStatus(c *gin.Context) {
	c.JSON(http.StatusOK, rh.server.Status())
}

func (rh *restHandler) getPlayers(c *gin.Context) {
	c.JSON(http.StatusOK, rh.server.Status().Players)
}

type wsHandler struct {
	// ctx is the gateway's run context. The request context is no use
	// after the websocket hijacks the connection, so reads and writes
	// watch this one to observe server shutdown.
	ctx    context.Context
	server *Server
	log    zerolog.Logger
}

func (ch *wsHandler) serveWS(c *gin.Context) {
	addr := c.Request.RemoteAddr

	connID := uuid.New()
	log := ch.log.With().Str("conn", connID.String()).Logger()
	log.Info().Msgf("connecting from %v", addr)

	socket, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
		Subprotocols: []string{"quintet"},
	})
	if err != nil {
		log.Info().Err(err).Msg("websocket accept error")
		return
	}
	defer socket.Close(websocket.StatusInternalError, "going away")

	server := ch.server

	downCh := make(chan comms.Message, 100)
	client := &clientBundle{connID: connID, downCh: downCh, log: log}

	seat, err := server.Connect(client)
	if err != nil {
		log.Info().Err(err).Msg("refusing connection")
		sendDownWs(ch.ctx, socket, errorMessage(err))
		socket.Close(websocket.StatusNormalClosure, "cannot connect")
		return
	}
	log = log.With().Int("player", seat).Logger()

	go func() {
		// read downCh, write to conn
		for down := range downCh {
			if err := sendDownWs(ch.ctx, socket, down); err != nil {
				log.Info().Err(err).Msg("send error")
				return
			}
		}
	}()

	for {
		msg, err := readMessageWs(ch.ctx, socket)
		if err == comms.ErrBadLine {
			log.Info().Msg("undecodable frame")
			continue
		}
		if err != nil {
			if websocket.CloseStatus(err) != websocket.StatusNormalClosure {
				log.Info().Err(err).Msg("read error")
			}
			break
		}

		handleInbound(server, client, msg)
	}

	server.Disconnect(seat)
	socket.Close(websocket.StatusNormalClosure, "bye")
}

func sendDownWs(ctx context.Context, ws *websocket.Conn, msg comms.Message) error {
	data, err := comms.Marshal(msg)
	if err != nil {
		return err
	}
	return ws.Write(ctx, websocket.MessageText, data)
}

func readMessageWs(ctx context.Context, c *websocket.Conn) (comms.Message, error) {
	typ, r, err := c.Reader(ctx)
	if err != nil {
		return comms.Message{}, err
	}

	if typ != websocket.MessageText {
		return comms.Message{}, comms.ErrBadLine
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return comms.Message{}, err
	}
	return comms.Unmarshal(data)
}
