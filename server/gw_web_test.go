package server

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"nhooyr.io/websocket"

	"github.com/undeconstructed/quintet/comms"
)

func TestWSObservesShutdown(t *testing.T) {
	s := NewServer(Options{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gin.SetMode(gin.TestMode)
	r := gin.New()
	ch := wsHandler{ctx: ctx, server: s, log: zerolog.Nop()}
	r.GET("/ws", ch.serveWS)

	ts := httptest.NewServer(r)
	defer ts.Close()

	dialCtx, dialCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer dialCancel()
	conn, _, err := websocket.Dial(dialCtx, "ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close(websocket.StatusNormalClosure, "done")

	// first frame is the seat assignment
	_, data, err := conn.Read(dialCtx)
	require.NoError(t, err)
	msg, err := comms.Unmarshal(data)
	require.NoError(t, err)
	require.Equal(t, "event:player_assigned", string(msg.Head))
	require.Equal(t, 1, s.reg.count())

	// stopping the gateway must unblock the in-flight read and drop
	// the connection, even though nothing arrived on it
	cancel()

	readCtx, readCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer readCancel()
	_, _, err = conn.Read(readCtx)
	require.Error(t, err)

	require.Eventually(t, func() bool { return s.reg.count() == 0 },
		5*time.Second, 10*time.Millisecond)
}
