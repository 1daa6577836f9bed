package client

import (
	"testing"

	"github.com/undeconstructed/quintet/comms"
	"github.com/undeconstructed/quintet/game"
)

func TestDecodeError(t *testing.T) {
	msg, err := comms.Encode("error", map[string]string{
		"code": "NOTYOURTURN",
		"msg":  "it's not your turn",
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := decodeError(msg); got != game.ErrNotYourTurn {
		t.Errorf("got %v, want %v", got, game.ErrNotYourTurn)
	}

	// codeless errors (e.g. a full game) come through as text
	msg, err = comms.Encode("error", map[string]string{"msg": "no free seats"})
	if err != nil {
		t.Fatal(err)
	}
	if got := decodeError(msg); got == nil || got.Error() != "no free seats" {
		t.Errorf("got %v", got)
	}

	if got := decodeError(comms.Message{Head: "error", Data: []byte("junk")}); got != game.ErrMalformed {
		t.Errorf("undecodable body: got %v", got)
	}
}
