package engine

import (
	"encoding/json"
	"fmt"
)

// A BodyKind tags which variant of [Body] is populated.
type BodyKind int

const (
	BodyNone BodyKind = iota
	BodyText
	BodyJSON
	BodyBytes
)

// A Body is the payload carried by a [Request] or [Response]:
// nothing, plain text, a JSON-encodable value, or raw bytes.
type Body struct {
	kind BodyKind
	text string
	json any
	raw  []byte
}

func TextBody(s string) Body  { return Body{kind: BodyText, text: s} }
func JSONBody(v any) Body     { return Body{kind: BodyJSON, json: v} }
func BytesBody(b []byte) Body { return Body{kind: BodyBytes, raw: b} }

func (b Body) Kind() BodyKind { return b.kind }

// IsEmpty reports whether the Body carries no payload at all.
func (b Body) IsEmpty() bool {
	switch b.kind {
	case BodyText:
		return b.text == ""
	case BodyBytes:
		return len(b.raw) == 0
	case BodyJSON:
		return false
	default:
		return true
	}
}

// Text returns the text variant's value, "" for any other variant.
func (b Body) Text() string { return b.text }

// JSON returns the JSON variant's value, nil for any other variant.
func (b Body) JSON() any { return b.json }

// Bytes returns the raw variant's value, nil for any other variant.
func (b Body) Bytes() []byte { return b.raw }

// Payload renders the Body into wire bytes and the content type they imply.
// Adapters call it when serializing a [Response].
func (b Body) Payload() (contentType string, data []byte, err error) {
	switch b.kind {
	case BodyText:
		return "text/plain; charset=utf-8", []byte(b.text), nil
	case BodyBytes:
		return "application/octet-stream", b.raw, nil
	case BodyJSON:
		data, err = json.Marshal(b.json)
		if err != nil {
			return "", nil, fmt.Errorf("engine: cannot marshal response body: %w", err)
		}
		return "application/json", data, nil
	default:
		return "", nil, nil
	}
}
