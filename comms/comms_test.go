package comms

import (
	"bytes"
	"io"
	"testing"
)

func TestStreamRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)

	if err := enc.Encode("command:predict", map[string]int{"player": 3}); err != nil {
		t.Fatal(err)
	}
	if err := enc.Encode("event:game_started", struct{}{}); err != nil {
		t.Fatal(err)
	}

	dec := NewDecoder(&buf)

	m, err := dec.Decode()
	if err != nil {
		t.Fatal(err)
	}
	if m.Head != "command:predict" || m.Type() != "command" {
		t.Errorf("bad first message: %v", m)
	}
	var body struct {
		Player int `json:"player"`
	}
	if err := Decode(m, &body); err != nil || body.Player != 3 {
		t.Errorf("bad body: %v %v", body, err)
	}

	m, err = dec.Decode()
	if err != nil {
		t.Fatal(err)
	}
	if m.Head != "event:game_started" {
		t.Errorf("bad second message: %v", m)
	}

	if _, err := dec.Decode(); err != io.EOF {
		t.Errorf("expected EOF, got %v", err)
	}
}

func TestDecodeBadLines(t *testing.T) {
	input := "this is not json\n" +
		"{\"nohead\":true}\n" +
		"{\"head\":\"event:ping\"}\n"
	dec := NewDecoder(bytes.NewBufferString(input))

	if _, err := dec.Decode(); err != ErrBadLine {
		t.Errorf("junk line: got %v, want ErrBadLine", err)
	}
	if _, err := dec.Decode(); err != ErrBadLine {
		t.Errorf("headless line: got %v, want ErrBadLine", err)
	}

	// the stream survives bad lines
	m, err := dec.Decode()
	if err != nil {
		t.Fatal(err)
	}
	if m.Head != "event:ping" {
		t.Errorf("got %v", m)
	}
}

func TestHeadFields(t *testing.T) {
	f := Head("command:play_card").Fields()
	if len(f) != 2 || f[0] != "command" || f[1] != "play_card" {
		t.Errorf("got %v", f)
	}
}

func TestFrameRoundTrip(t *testing.T) {
	m, err := Encode("event:phase_changed", map[string]string{"phase": "play"})
	if err != nil {
		t.Fatal(err)
	}
	frame, err := Marshal(m)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.ContainsRune(frame, '\n') {
		t.Errorf("frame has a newline: %q", frame)
	}
	back, err := Unmarshal(frame)
	if err != nil {
		t.Fatal(err)
	}
	if back.Head != m.Head || !bytes.Equal(back.Data, m.Data) {
		t.Errorf("got %v, want %v", back, m)
	}
}

func TestUnmarshalJunk(t *testing.T) {
	if _, err := Unmarshal([]byte("nope")); err != ErrBadLine {
		t.Errorf("got %v, want ErrBadLine", err)
	}
	if _, err := Unmarshal([]byte("{}")); err != ErrBadLine {
		t.Errorf("headless: got %v, want ErrBadLine", err)
	}
}
