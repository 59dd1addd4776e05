// Package frame implements the MAVLink frame scanner/parser and serializer
// (spec components C6 and C7): turning wire bytes into decoded Frames and
// back.
package frame

import (
	"github.com/goccy/go-json"

	"github.com/mavbridge/mavcodec/schema"
	"github.com/mavbridge/mavcodec/wire"
)

/*
A Frame is owned by a single caller. Scanner.Parse and Scanner.ParseDiscrete
allocate and populate a fresh Frame per call; neither accepts a caller's
Frame to fill. Reset clears the header, payload, lazily-decoded field cache,
and signature together.
*/

////////////////////////////////////////////////////////////////////////////////

// Frame is a decoded MAVLink packet. Field values are decoded lazily on
// first access via Fields, since many callers only inspect the header.
type Frame struct {
	Version     int // 1 or 2
	Incompat    byte
	Compat      byte
	Seq         byte
	SystemID    byte
	ComponentID byte
	MessageID   uint32
	Schema      *schema.MessageSchema

	// Payload holds the on-wire payload bytes, zero-padded to
	// Schema.BaseFieldPayloadLength (v1) or Schema.MaxPayloadLength (v2).
	Payload []byte

	Checksum     uint16
	HasSignature bool
	Signature    [SignatureLen]byte

	fields map[string]any
}

// Fields decodes and caches Payload into a name-to-value map, per the §4.5
// payload codec. Subsequent calls return the cached map.
func (f *Frame) Fields() (map[string]any, error) {
	if f.fields != nil {
		return f.fields, nil
	}
	values, err := wire.ReadPayload(f.Schema, f.Payload)
	if err != nil {
		return nil, err
	}
	f.fields = values
	return values, nil
}

// FieldsJSON decodes f's payload, as Fields does, and marshals the result
// for debug/introspection output (the mavctl decode subcommand's primary
// consumer).
func (f *Frame) FieldsJSON() ([]byte, error) {
	values, err := f.Fields()
	if err != nil {
		return nil, err
	}
	return json.Marshal(values)
}

// Reset clears f so it can be reused for the next decode.
func (f *Frame) Reset() {
	f.Version = 0
	f.Incompat = 0
	f.Compat = 0
	f.Seq = 0
	f.SystemID = 0
	f.ComponentID = 0
	f.MessageID = 0
	f.Schema = nil
	f.Payload = nil
	f.Checksum = 0
	f.HasSignature = false
	f.Signature = [SignatureLen]byte{}
	f.fields = nil
}
