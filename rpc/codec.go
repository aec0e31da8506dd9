// Package rpc is the wire layer of the CAD service: plain request/response
// structs carried by a jsoniter-backed gRPC codec, plus the service
// descriptor and client stub for rpcad.CadService.
package rpc

import (
	"github.com/json-iterator/go"
	"github.com/modern-go/reflect2"
	"google.golang.org/grpc/encoding"
)

// CodecName is the gRPC content-subtype the CAD service speaks. Clients must
// set grpc.CallContentSubtype(CodecName) on every call; the client stub in
// this package does so by default.
const CodecName = "json"

var api = newAPI()

func newAPI() jsoniter.API {
	api := jsoniter.Config{
		EscapeHTML:                    false,
		ObjectFieldMustBeSimpleString: true, // do not unescape object field
	}.Froze()

	timeType := reflect2.TypeByName("time.Time")
	tc := NewTimeCodec(FullDateFormat)
	encExt := jsoniter.EncoderExtension{timeType: tc}
	decExt := jsoniter.DecoderExtension{timeType: tc}
	api.RegisterExtension(encExt)
	api.RegisterExtension(decExt)

	return api
}

func init() {
	encoding.RegisterCodec(codec{})
}

type codec struct{}

func (codec) Marshal(v any) ([]byte, error) {
	return api.Marshal(v)
}

func (codec) Unmarshal(data []byte, v any) error {
	return api.Unmarshal(data, v)
}

func (codec) Name() string {
	return CodecName
}

// Marshal serializes v with the wire codec. Used for command batch payloads
// so batched arguments round-trip identically to direct calls.
func Marshal(v any) ([]byte, error) {
	return api.Marshal(v)
}

func Unmarshal(data []byte, ptr any) error {
	return api.Unmarshal(data, ptr)
}
