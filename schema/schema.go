// Package schema compiles raw dialect bundles into the immutable,
// wire-ready Catalog that the frame scanner/parser and serializer consult
// at runtime.
package schema

import (
	"sync/atomic"

	"github.com/mavbridge/mavcodec/mavtype"
)

/*
A MessageSchema's Fields preserve XML declaration order; OrderedFields is
the derived wire order (base fields by descending element size, stable,
then extended fields in declaration order) that the payload codec and
CRC_EXTRA derivation both walk. Catalog owns every schema; once Compile
returns, schemas are read-only — IncludeMessages/ExcludeMessages only ever
flip the atomic included flag, never field layout.
*/

////////////////////////////////////////////////////////////////////////////////

// Deprecation records a dialect element's <deprecated> metadata.
type Deprecation struct {
	Since      string
	ReplacedBy string
	Note       string
}

// FieldSchema describes one field of a compiled MessageSchema.
type FieldSchema struct {
	Name        string
	Declared    string
	Kind        mavtype.Kind
	ElementSize int
	ArrayLength int // 0 for scalar fields
	Length      int // total wire bytes: ElementSize * max(ArrayLength, 1)
	Offset      int // byte offset within the payload, assigned on compile
	Extended    bool
}

// Array reports whether the field is an array (including char[N] strings).
func (f FieldSchema) Array() bool { return f.ArrayLength > 0 }

// ParamDoc documents one <param> child of a MAV_CMD enum entry.
type ParamDoc struct {
	Index int
	Label string
	Units string
	Min   string
	Max   string
}

// EntryValue is one named value of an EnumSchema.
type EntryValue struct {
	Value       int64
	Name        string
	Description string
	Params      []ParamDoc
}

// EnumSchema is metadata-only: the codec never interprets enum values, it
// only carries them for introspection.
type EnumSchema struct {
	Name           string
	Bitmask        bool
	Description    string
	Deprecated     *Deprecation
	WorkInProgress bool
	Entries        []EntryValue
}

// MessageSchema is the compiled, wire-ready description of one message.
type MessageSchema struct {
	ID                     uint32
	Name                   string
	Description            string
	Deprecated             *Deprecation
	WorkInProgress         bool
	Fields                 []FieldSchema // declaration order
	OrderedFields          []FieldSchema // wire order, offsets assigned
	BaseFieldPayloadLength int
	MaxPayloadLength       int
	CRCExtra               byte

	included atomic.Bool
}

// Included reports whether the message currently passes the catalog's
// include/exclude filter.
func (m *MessageSchema) Included() bool { return m.included.Load() }
