// Package apiconnect wires the api messages to Connect handlers and clients.
package apiconnect

import (
	"encoding/json"

	"connectrpc.com/connect"
)

// codecName replaces Connect's default protobuf JSON codec, so requests are
// sent with Content-Type application/json.
const codecName = "json"

// jsonCodec marshals plain Go structs with encoding/json.
type jsonCodec struct{}

func (jsonCodec) Name() string { return codecName }

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}

// withCodec is prepended to every handler and client option list.
func withCodec() connect.Option {
	return connect.WithCodec(jsonCodec{})
}
