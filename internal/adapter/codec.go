package adapter

import (
	"encoding/json"

	"github.com/gowebpki/jcs"
)

// JSON defines an interface for JSON operations to enable mocking
//
//go:generate mockgen -source=codec.go -destination=../mocks/codec.go -package=mocks -mock_names=JSON=MockJSON,JCS=MockJCS
type JSON interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// JCS rewrites JSON documents in RFC 8785 canonical form
type JCS interface {
	Transform(data []byte) ([]byte, error)
}

type stdJSON struct{}

// NewJSON creates a JSON implementation backed by encoding/json
func NewJSON() JSON {
	return stdJSON{}
}

func (stdJSON) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (stdJSON) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

type realJCS struct{}

// NewJCS creates a JCS implementation backed by gowebpki/jcs
func NewJCS() JCS {
	return realJCS{}
}

func (realJCS) Transform(data []byte) ([]byte, error) {
	return jcs.Transform(data)
}

// Canonicalize marshals v and rewrites it in canonical form,
// so equal option sets always produce byte-identical audit payloads.
func Canonicalize(j JSON, c JCS, v any) ([]byte, error) {
	raw, err := j.Marshal(v)
	if err != nil {
		return nil, err
	}
	return c.Transform(raw)
}
