package persist

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// Codec converts snapshots to and from bytes. Decode errors wrap ErrMalformed.
type Codec interface {
	Name() string
	Encode(s Snapshot) ([]byte, error)
	Decode(data []byte) (Snapshot, error)
}

var (
	// JSON is the save format read and written by default.
	JSON Codec = jsonCodec{}
	// MsgPack stores the same snapshot in binary form.
	MsgPack Codec = msgpackCodec{}
)

// CodecByName returns the codec registered under name (case-insensitive).
func CodecByName(name string) (Codec, error) {
	switch strings.ToLower(name) {
	case "", "json":
		return JSON, nil
	case "msgpack":
		return MsgPack, nil
	}
	return nil, fmt.Errorf("unknown save format %q", name)
}

type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Encode(s Snapshot) ([]byte, error) {
	return json.Marshal(s.normalized())
}

func (jsonCodec) Decode(data []byte) (Snapshot, error) {
	var w wireSnapshot
	if err := json.Unmarshal(data, &w); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	s, err := w.snapshot()
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return s, nil
}

type msgpackCodec struct{}

func (msgpackCodec) Name() string { return "msgpack" }

func (msgpackCodec) Encode(s Snapshot) ([]byte, error) {
	return msgpack.Marshal(s.normalized())
}

func (msgpackCodec) Decode(data []byte) (Snapshot, error) {
	var w wireSnapshot
	if err := msgpack.Unmarshal(data, &w); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	s, err := w.snapshot()
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return s, nil
}
