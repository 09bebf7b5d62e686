package codec

import (
	"encoding/json"

	"github.com/go-kratos/kratos/v2/encoding"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

// Name is the content subtype this codec registers under.
const Name = "json"

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

var (
	marshalOpts = protojson.MarshalOptions{
		EmitUnpopulated: true,
	}
	unmarshalOpts = protojson.UnmarshalOptions{
		DiscardUnknown: true,
	}
)

// jsonCodec replaces the kratos default so that plain snapshot structs
// and protobuf payloads share one content type. Proto messages go
// through protojson, everything else through encoding/json with the
// snake_case struct tags.
type jsonCodec struct{}

func (jsonCodec) Marshal(v interface{}) ([]byte, error) {
	if msg, ok := v.(proto.Message); ok {
		return marshalOpts.Marshal(msg)
	}
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v interface{}) error {
	if msg, ok := v.(proto.Message); ok {
		return unmarshalOpts.Unmarshal(data, msg)
	}
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string { return Name }
