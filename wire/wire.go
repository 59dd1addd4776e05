// Package wire implements the MAVLink payload codec (spec component C5):
// reading and writing a message's fields at their precomputed offsets.
package wire

import (
	"encoding/binary"
	"math"

	"github.com/mavbridge/mavcodec/mavtype"
	"github.com/mavbridge/mavcodec/schema"
)

/*
ReadPayload and WritePayload operate purely on a schema.MessageSchema's
OrderedFields and a byte buffer; they perform no I/O and allocate only the
returned map and (for WritePayload) the output buffer. Each field decodes to
a plain Go value: the unsigned/signed/float primitive for scalars, a typed
slice for numeric arrays, and a string for char arrays (and the rare char
scalar), preserving any embedded NUL bytes rather than trimming them.
*/

////////////////////////////////////////////////////////////////////////////////

// ReadPayload decodes every field of msg out of buf. buf may be shorter
// than msg.MaxPayloadLength (v2 trailing-zero truncation, or a v1 payload
// of msg.BaseFieldPayloadLength): fields past its end read as zero. A buf
// longer than msg.MaxPayloadLength fails with PayloadLengthInvalid.
func ReadPayload(msg *schema.MessageSchema, buf []byte) (map[string]any, error) {
	if len(buf) > msg.MaxPayloadLength {
		return nil, PayloadLengthInvalid{Got: len(buf), Max: msg.MaxPayloadLength}
	}

	values := make(map[string]any, len(msg.OrderedFields))
	for _, f := range msg.OrderedFields {
		end := f.Offset + f.Length
		var field []byte
		if f.Offset >= len(buf) {
			field = make([]byte, f.Length) // wholly truncated: reads as zero
		} else if end > len(buf) {
			field = make([]byte, f.Length)
			copy(field, buf[f.Offset:])
		} else {
			field = buf[f.Offset:end]
		}
		values[f.Name] = decodeField(f, field)
	}
	return values, nil
}

// WritePayload encodes values into a new buffer of exactly length payloadLen
// (msg.BaseFieldPayloadLength for v1, msg.MaxPayloadLength for v2). Fields
// absent from values encode as zero.
func WritePayload(msg *schema.MessageSchema, values map[string]any, payloadLen int) ([]byte, error) {
	buf := make([]byte, payloadLen)
	for _, f := range msg.OrderedFields {
		if f.Offset+f.Length > payloadLen {
			continue // field lives entirely in the truncated tail
		}
		v, ok := values[f.Name]
		if !ok {
			continue // zero value already in place
		}
		if err := encodeField(f, v, buf[f.Offset:f.Offset+f.Length]); err != nil {
			return nil, err
		}
	}
	return buf, nil
}

func decodeField(f schema.FieldSchema, data []byte) any {
	if f.Kind == mavtype.Char {
		return string(data)
	}
	if !f.Array() {
		return decodeScalar(f.Kind, data)
	}
	return decodeArray(f.Kind, f.ArrayLength, data)
}

func decodeScalar(kind mavtype.Kind, data []byte) any {
	switch kind {
	case mavtype.Int8:
		return int8(data[0])
	case mavtype.Uint8:
		return data[0]
	case mavtype.Int16:
		return int16(binary.LittleEndian.Uint16(data))
	case mavtype.Uint16:
		return binary.LittleEndian.Uint16(data)
	case mavtype.Int32:
		return int32(binary.LittleEndian.Uint32(data))
	case mavtype.Uint32:
		return binary.LittleEndian.Uint32(data)
	case mavtype.Int64:
		return int64(binary.LittleEndian.Uint64(data))
	case mavtype.Uint64:
		return binary.LittleEndian.Uint64(data)
	case mavtype.Float32:
		return math.Float32frombits(binary.LittleEndian.Uint32(data))
	case mavtype.Float64:
		return math.Float64frombits(binary.LittleEndian.Uint64(data))
	default:
		return nil
	}
}

func decodeArray(kind mavtype.Kind, n int, data []byte) any {
	size := kind.Size()
	switch kind {
	case mavtype.Int8:
		out := make([]int8, n)
		for i := 0; i < n; i++ {
			out[i] = int8(data[i*size])
		}
		return out
	case mavtype.Uint8:
		out := make([]uint8, n)
		copy(out, data[:n*size])
		return out
	case mavtype.Int16:
		out := make([]int16, n)
		for i := 0; i < n; i++ {
			out[i] = int16(binary.LittleEndian.Uint16(data[i*size:]))
		}
		return out
	case mavtype.Uint16:
		out := make([]uint16, n)
		for i := 0; i < n; i++ {
			out[i] = binary.LittleEndian.Uint16(data[i*size:])
		}
		return out
	case mavtype.Int32:
		out := make([]int32, n)
		for i := 0; i < n; i++ {
			out[i] = int32(binary.LittleEndian.Uint32(data[i*size:]))
		}
		return out
	case mavtype.Uint32:
		out := make([]uint32, n)
		for i := 0; i < n; i++ {
			out[i] = binary.LittleEndian.Uint32(data[i*size:])
		}
		return out
	case mavtype.Int64:
		out := make([]int64, n)
		for i := 0; i < n; i++ {
			out[i] = int64(binary.LittleEndian.Uint64(data[i*size:]))
		}
		return out
	case mavtype.Uint64:
		out := make([]uint64, n)
		for i := 0; i < n; i++ {
			out[i] = binary.LittleEndian.Uint64(data[i*size:])
		}
		return out
	case mavtype.Float32:
		out := make([]float32, n)
		for i := 0; i < n; i++ {
			out[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*size:]))
		}
		return out
	case mavtype.Float64:
		out := make([]float64, n)
		for i := 0; i < n; i++ {
			out[i] = math.Float64frombits(binary.LittleEndian.Uint64(data[i*size:]))
		}
		return out
	default:
		return nil
	}
}

func encodeField(f schema.FieldSchema, v any, out []byte) error {
	if f.Kind == mavtype.Char {
		s, ok := v.(string)
		if !ok {
			return BadFieldValue{Field: f.Name, Got: v}
		}
		copy(out, s) // out is zero-initialized; short strings leave the tail zero
		return nil
	}
	if !f.Array() {
		return encodeScalar(f, v, out)
	}
	return encodeArray(f, v, out)
}

func encodeScalar(f schema.FieldSchema, v any, out []byte) error {
	switch f.Kind {
	case mavtype.Int8:
		n, ok := v.(int8)
		if !ok {
			return BadFieldValue{Field: f.Name, Got: v}
		}
		out[0] = byte(n)
	case mavtype.Uint8:
		n, ok := v.(uint8)
		if !ok {
			return BadFieldValue{Field: f.Name, Got: v}
		}
		out[0] = n
	case mavtype.Int16:
		n, ok := v.(int16)
		if !ok {
			return BadFieldValue{Field: f.Name, Got: v}
		}
		binary.LittleEndian.PutUint16(out, uint16(n))
	case mavtype.Uint16:
		n, ok := v.(uint16)
		if !ok {
			return BadFieldValue{Field: f.Name, Got: v}
		}
		binary.LittleEndian.PutUint16(out, n)
	case mavtype.Int32:
		n, ok := v.(int32)
		if !ok {
			return BadFieldValue{Field: f.Name, Got: v}
		}
		binary.LittleEndian.PutUint32(out, uint32(n))
	case mavtype.Uint32:
		n, ok := v.(uint32)
		if !ok {
			return BadFieldValue{Field: f.Name, Got: v}
		}
		binary.LittleEndian.PutUint32(out, n)
	case mavtype.Int64:
		n, ok := v.(int64)
		if !ok {
			return BadFieldValue{Field: f.Name, Got: v}
		}
		binary.LittleEndian.PutUint64(out, uint64(n))
	case mavtype.Uint64:
		n, ok := v.(uint64)
		if !ok {
			return BadFieldValue{Field: f.Name, Got: v}
		}
		binary.LittleEndian.PutUint64(out, n)
	case mavtype.Float32:
		n, ok := v.(float32)
		if !ok {
			return BadFieldValue{Field: f.Name, Got: v}
		}
		binary.LittleEndian.PutUint32(out, math.Float32bits(n))
	case mavtype.Float64:
		n, ok := v.(float64)
		if !ok {
			return BadFieldValue{Field: f.Name, Got: v}
		}
		binary.LittleEndian.PutUint64(out, math.Float64bits(n))
	default:
		return BadFieldValue{Field: f.Name, Got: v}
	}
	return nil
}

func encodeArray(f schema.FieldSchema, v any, out []byte) error {
	size := f.ElementSize
	switch f.Kind {
	case mavtype.Int8:
		vs, ok := v.([]int8)
		if !ok {
			return BadFieldValue{Field: f.Name, Got: v}
		}
		for i, n := range vs {
			out[i] = byte(n)
		}
	case mavtype.Uint8:
		vs, ok := v.([]uint8)
		if !ok {
			return BadFieldValue{Field: f.Name, Got: v}
		}
		copy(out, vs)
	case mavtype.Int16:
		vs, ok := v.([]int16)
		if !ok {
			return BadFieldValue{Field: f.Name, Got: v}
		}
		for i, n := range vs {
			binary.LittleEndian.PutUint16(out[i*size:], uint16(n))
		}
	case mavtype.Uint16:
		vs, ok := v.([]uint16)
		if !ok {
			return BadFieldValue{Field: f.Name, Got: v}
		}
		for i, n := range vs {
			binary.LittleEndian.PutUint16(out[i*size:], n)
		}
	case mavtype.Int32:
		vs, ok := v.([]int32)
		if !ok {
			return BadFieldValue{Field: f.Name, Got: v}
		}
		for i, n := range vs {
			binary.LittleEndian.PutUint32(out[i*size:], uint32(n))
		}
	case mavtype.Uint32:
		vs, ok := v.([]uint32)
		if !ok {
			return BadFieldValue{Field: f.Name, Got: v}
		}
		for i, n := range vs {
			binary.LittleEndian.PutUint32(out[i*size:], n)
		}
	case mavtype.Int64:
		vs, ok := v.([]int64)
		if !ok {
			return BadFieldValue{Field: f.Name, Got: v}
		}
		for i, n := range vs {
			binary.LittleEndian.PutUint64(out[i*size:], uint64(n))
		}
	case mavtype.Uint64:
		vs, ok := v.([]uint64)
		if !ok {
			return BadFieldValue{Field: f.Name, Got: v}
		}
		for i, n := range vs {
			binary.LittleEndian.PutUint64(out[i*size:], n)
		}
	case mavtype.Float32:
		vs, ok := v.([]float32)
		if !ok {
			return BadFieldValue{Field: f.Name, Got: v}
		}
		for i, n := range vs {
			binary.LittleEndian.PutUint32(out[i*size:], math.Float32bits(n))
		}
	case mavtype.Float64:
		vs, ok := v.([]float64)
		if !ok {
			return BadFieldValue{Field: f.Name, Got: v}
		}
		for i, n := range vs {
			binary.LittleEndian.PutUint64(out[i*size:], math.Float64bits(n))
		}
	default:
		return BadFieldValue{Field: f.Name, Got: v}
	}
	return nil
}
