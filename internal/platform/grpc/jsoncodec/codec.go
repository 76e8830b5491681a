// Package jsoncodec registers a JSON gRPC codec under the "json" content
// subtype. The registrar wire messages are plain Go structs, so every client
// call selects this codec through grpc.CallContentSubtype(Name) and servers
// pick it up from the request content type.
package jsoncodec

import (
	"encoding/json"
	"fmt"

	"google.golang.org/grpc/encoding"
)

// Name is the codec name and gRPC content subtype.
const Name = "json"

// Codec marshals gRPC messages as JSON.
type Codec struct{}

// Marshal encodes v as JSON.
func (Codec) Marshal(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("json codec marshal %T: %w", v, err)
	}
	return data, nil
}

// Unmarshal decodes JSON data into v.
func (Codec) Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("json codec unmarshal %T: %w", v, err)
	}
	return nil
}

// Name returns the registered codec name.
func (Codec) Name() string {
	return Name
}

func init() {
	encoding.RegisterCodec(Codec{})
}
