package cache

import (
	"encoding/json"

	"github.com/vmihailenco/msgpack/v5"
)

// Codec encodes/decodes values V to the byte representation stored in the cache.
// Round-trips must be lossless for every field callers read back. Cached bytes
// are an implementation detail and carry no cross-version guarantee.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}

// JSONCodec serializes values with encoding/json. The zero value is ready to use.
// It is the default codec: verbose but debuggable, and it honors the custom
// marshalers on money types.
type JSONCodec[V any] struct{}

func (JSONCodec[V]) Encode(v V) ([]byte, error) { return json.Marshal(v) }
func (JSONCodec[V]) Decode(b []byte) (V, error) {
	var v V
	err := json.Unmarshal(b, &v)
	return v, err
}

// MsgpackCodec serializes values with vmihailenco/msgpack/v5. Compact and fast;
// use `msgpack:"name"` struct tags when field naming matters.
type MsgpackCodec[V any] struct{}

func (MsgpackCodec[V]) Encode(v V) ([]byte, error) { return msgpack.Marshal(v) }
func (MsgpackCodec[V]) Decode(b []byte) (V, error) {
	var v V
	err := msgpack.Unmarshal(b, &v)
	return v, err
}
