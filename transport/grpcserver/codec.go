package grpcserver

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// jsonCodecName must match the content-subtype callers dial with (mirrors
// runtime/toolclient's own client-side codec registration), since this
// service has no generated protobuf stubs to fall back to.
const jsonCodecName = "json"

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
func (jsonCodec) Name() string { return jsonCodecName }

func init() {
	encoding.RegisterCodec(jsonCodec{})
}
