// Package mavtype resolves MAVLink's declared field type strings
// ("uint16_t", "float[4]", "char[50]") into wire-layout descriptors.
package mavtype

import (
	"strconv"
	"strings"
)

/*
Declared types take the form <primitive> or <primitive>[<N>]. Resolution is
pure and allocation-free beyond the Descriptor return value; it is called
once per field at schema-compile time, never on the decode hot path.
*/

////////////////////////////////////////////////////////////////////////////////

// Kind enumerates the primitive element kinds MAVLink payload fields resolve
// to. Values mirror the teacher corpus's convention of a small closed
// enumeration with a String method, not a bare string type.
type Kind int

const (
	Invalid Kind = iota
	Int8
	Uint8
	Int16
	Uint16
	Int32
	Uint32
	Int64
	Uint64
	Float32
	Float64
	Char
)

// String returns the MAVLink primitive spelling of the kind.
func (k Kind) String() string {
	switch k {
	case Int8:
		return "int8_t"
	case Uint8:
		return "uint8_t"
	case Int16:
		return "int16_t"
	case Uint16:
		return "uint16_t"
	case Int32:
		return "int32_t"
	case Uint32:
		return "uint32_t"
	case Int64:
		return "int64_t"
	case Uint64:
		return "uint64_t"
	case Float32:
		return "float"
	case Float64:
		return "double"
	case Char:
		return "char"
	default:
		return "invalid"
	}
}

// Size returns the wire size in bytes of a single element of the kind.
func (k Kind) Size() int {
	switch k {
	case Int8, Uint8, Char:
		return 1
	case Int16, Uint16:
		return 2
	case Int32, Uint32, Float32:
		return 4
	case Int64, Uint64, Float64:
		return 8
	default:
		return 0
	}
}

var primitivesByName = map[string]Kind{ // nolint: gochecknoglobals
	"int8_t":   Int8,
	"uint8_t":  Uint8,
	"int16_t":  Int16,
	"uint16_t": Uint16,
	"int32_t":  Int32,
	"uint32_t": Uint32,
	"int64_t":  Int64,
	"uint64_t": Uint64,
	"float":    Float32,
	"double":   Float64,
	"char":     Char,

	// uint8_t_mavlink_version is a historical alias some dialects (and the
	// upstream generator) use for HEARTBEAT.mavlink_version. It resolves to
	// the same wire shape as uint8_t; only CRC_EXTRA curation treats it
	// differently, stripping the suffix before hashing.
	"uint8_t_mavlink_version": Uint8,
}

// Descriptor is the resolved shape of a declared field type: its element
// kind, the byte size of one element, whether it is an array, and if so how
// many elements long.
type Descriptor struct {
	Kind        Kind
	ElementSize int
	Array       bool
	ArrayLength int
}

// Length returns the total wire byte length described by d.
func (d Descriptor) Length() int {
	if d.Array {
		return d.ElementSize * d.ArrayLength
	}
	return d.ElementSize
}

// Parse resolves a declared type string such as "uint16_t" or "float[4]"
// into a Descriptor. It fails with BadType if the primitive token is
// unrecognized or the bracketed length is not a positive decimal integer.
func Parse(declared string) (Descriptor, error) {
	name := declared
	arrayLength := 0
	isArray := false

	if open := strings.IndexByte(declared, '['); open >= 0 {
		if !strings.HasSuffix(declared, "]") {
			return Descriptor{}, BadType{Declared: declared}
		}
		name = declared[:open]
		lengthStr := declared[open+1 : len(declared)-1]
		n, err := strconv.Atoi(lengthStr)
		if err != nil || n <= 0 {
			return Descriptor{}, BadType{Declared: declared}
		}
		isArray = true
		arrayLength = n
	}

	kind, ok := primitivesByName[name]
	if !ok {
		return Descriptor{}, BadType{Declared: declared}
	}

	return Descriptor{
		Kind:        kind,
		ElementSize: kind.Size(),
		Array:       isArray,
		ArrayLength: arrayLength,
	}, nil
}
