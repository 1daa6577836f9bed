// Package comms is the line-delimited JSON message envelope shared by
// the server gateways and the client. One message per line, shaped as
// {"head":"event:card_played","data":{...}}.
package comms

import (
	"bufio"
	"encoding/json"
	"errors"
	"io"
	"strings"
)

// Head tags a message, e.g. "command:predict" or "event:round_result".
type Head string

// Fields splits the head on colons.
func (h Head) Fields() []string {
	return strings.Split(string(h), ":")
}

// Message is an encoded message, with the body still raw.
type Message struct {
	Head Head            `json:"head"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Type is the first field of the head.
func (m Message) Type() string {
	return m.Head.Fields()[0]
}

// Encode makes a message out of anything marshallable.
func Encode(head string, data interface{}) (Message, error) {
	jdata, err := json.Marshal(data)
	if err != nil {
		return Message{}, err
	}
	return Message{Head: Head(head), Data: jdata}, nil
}

// Decode unmarshals a message body into out.
func Decode(m Message, out interface{}) error {
	return json.Unmarshal(m.Data, out)
}

// Encoder writes messages onto a stream, one per line.
type Encoder struct {
	w *bufio.Writer
}

func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: bufio.NewWriter(w)}
}

// Send writes one message and flushes.
func (e *Encoder) Send(m Message) error {
	jmsg, err := json.Marshal(m)
	if err != nil {
		return err
	}
	if _, err := e.w.Write(jmsg); err != nil {
		return err
	}
	if err := e.w.WriteByte('\n'); err != nil {
		return err
	}
	return e.w.Flush()
}

// Encode is Send for anything marshallable.
func (e *Encoder) Encode(head string, data interface{}) error {
	m, err := Encode(head, data)
	if err != nil {
		return err
	}
	return e.Send(m)
}

// ErrBadLine means a line that wasn't a message. The connection can
// carry on past it.
var ErrBadLine = errors.New("undecodable line")

// Decoder reads messages off a stream, one per line.
type Decoder struct {
	r *bufio.Reader
}

func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: bufio.NewReader(r)}
}

// Decode reads one message. Returns ErrBadLine for a line that isn't a
// message envelope; io errors are returned as-is and end the stream.
func (d *Decoder) Decode() (Message, error) {
	line, err := d.r.ReadBytes('\n')
	if err != nil {
		return Message{}, err
	}

	var m Message
	if err := json.Unmarshal(line, &m); err != nil {
		return Message{}, ErrBadLine
	}
	if m.Head == "" {
		return Message{}, ErrBadLine
	}
	return m, nil
}

// Unmarshal parses a single raw frame (used by the websocket gateway,
// where framing is already handled).
func Unmarshal(data []byte) (Message, error) {
	var m Message
	if err := json.Unmarshal(data, &m); err != nil {
		return Message{}, ErrBadLine
	}
	if m.Head == "" {
		return Message{}, ErrBadLine
	}
	return m, nil
}

// Marshal renders a message to a single frame, without the newline.
func Marshal(m Message) ([]byte, error) {
	return json.Marshal(m)
}
