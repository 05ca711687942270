// Package pbtimegrpc provides the gRPC transport layer for the pbtime
// clock service.
//
// No protobuf code generation is required. Domain types from
// pbtime/types travel either as cramberry binary (the default) or as
// JSON, where Timestamps take their RFC 3339 string form.
package pbtimegrpc

import (
	"fmt"

	"github.com/blockberries/cramberry/pkg/cramberry"
	json "github.com/goccy/go-json"
	"google.golang.org/grpc/encoding"
)

const (
	codecName     = "cramberry"
	jsonCodecName = "json"
)

// CramberryCodec implements grpc/encoding.Codec using cramberry
// for deterministic binary serialization.
type CramberryCodec struct{}

func (CramberryCodec) Marshal(v any) ([]byte, error) {
	data, err := cramberry.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("cramberry marshal: %w", err)
	}
	return data, nil
}

func (CramberryCodec) Unmarshal(data []byte, v any) error {
	if err := cramberry.Unmarshal(data, v); err != nil {
		return fmt.Errorf("cramberry unmarshal: %w", err)
	}
	return nil
}

func (CramberryCodec) Name() string { return codecName }

// JSONCodec implements grpc/encoding.Codec with the protobuf JSON
// text forms of the pbtime types.
type JSONCodec struct{}

func (JSONCodec) Marshal(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	return data, nil
}

func (JSONCodec) Unmarshal(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("json unmarshal: %w", err)
	}
	return nil
}

func (JSONCodec) Name() string { return jsonCodecName }

// CodecByName returns the codec registered under name, or nil.
func CodecByName(name string) encoding.Codec {
	switch name {
	case codecName:
		return CramberryCodec{}
	case jsonCodecName:
		return JSONCodec{}
	default:
		return nil
	}
}

func init() {
	encoding.RegisterCodec(CramberryCodec{})
	encoding.RegisterCodec(JSONCodec{})
}
