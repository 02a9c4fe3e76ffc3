package overlay

import (
	"encoding/json"
	"fmt"

	"chickenescape/internal/sim"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"
)

// Codec turns a snapshot into one websocket frame.
type Codec interface {
	Name() string
	MessageType() int
	Encode(sim.Snapshot) ([]byte, error)
}

type jsonCodec struct{}

func (jsonCodec) Name() string     { return "json" }
func (jsonCodec) MessageType() int { return websocket.TextMessage }
func (jsonCodec) Encode(s sim.Snapshot) ([]byte, error) {
	return json.Marshal(s)
}

type msgpackCodec struct{}

func (msgpackCodec) Name() string     { return "msgpack" }
func (msgpackCodec) MessageType() int { return websocket.BinaryMessage }
func (msgpackCodec) Encode(s sim.Snapshot) ([]byte, error) {
	return msgpack.Marshal(&s)
}

// CodecByName resolves the ?codec= query value; empty means json.
func CodecByName(name string) (Codec, error) {
	switch name {
	case "", "json":
		return jsonCodec{}, nil
	case "msgpack":
		return msgpackCodec{}, nil
	}
	return nil, fmt.Errorf("unknown codec %q", name)
}
