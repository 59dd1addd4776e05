package frame

import (
	"encoding/binary"

	"github.com/mavbridge/mavcodec/crc16"
	"github.com/mavbridge/mavcodec/schema"
	"github.com/mavbridge/mavcodec/wire"
)

/*
Serialize implements §4.7. It never emits a signature: a caller that needs
a signed v2 frame must set Header.Incompat's signing bit itself and append
its own 13-byte signature to the returned buffer, since only the caller
holds the signing key.
*/

////////////////////////////////////////////////////////////////////////////////

// Header carries the fields a serialized frame needs beyond its payload.
// Version selects v1 (HeaderLenV1 layout, BaseFieldPayloadLength buffer) or
// v2 (HeaderLenV2 layout, MaxPayloadLength buffer); TrimV2Zeros, if set,
// trims trailing zero bytes from a v2 payload before framing, as §4.7
// permits but does not require.
type Header struct {
	Version     int
	Incompat    byte
	Compat      byte
	Seq         byte
	SystemID    byte
	ComponentID byte
	TrimV2Zeros bool
}

// Serialize encodes values against msg's schema into a complete frame:
// header, payload, and LE checksum. It does not append a signature.
func Serialize(msg *schema.MessageSchema, hdr Header, values map[string]any) ([]byte, error) {
	payloadLen := msg.BaseFieldPayloadLength
	if hdr.Version == 2 {
		payloadLen = msg.MaxPayloadLength
	}
	payload, err := wire.WritePayload(msg, values, payloadLen)
	if err != nil {
		return nil, err
	}
	if hdr.Version == 2 && hdr.TrimV2Zeros {
		payload = trimTrailingZeros(payload, msg.BaseFieldPayloadLength)
	}

	headerLen := HeaderLenV1
	if hdr.Version == 2 {
		headerLen = HeaderLenV2
	}

	buf := make([]byte, headerLen+len(payload)+ChecksumLen)
	if hdr.Version == 1 {
		buf[0] = StartV1
		buf[1] = byte(len(payload))
		buf[2] = hdr.Seq
		buf[3] = hdr.SystemID
		buf[4] = hdr.ComponentID
		buf[5] = byte(msg.ID)
	} else {
		buf[0] = StartV2
		buf[1] = byte(len(payload))
		buf[2] = hdr.Incompat
		buf[3] = hdr.Compat
		buf[4] = hdr.Seq
		buf[5] = hdr.SystemID
		buf[6] = hdr.ComponentID
		buf[7] = byte(msg.ID)
		buf[8] = byte(msg.ID >> 8)
		buf[9] = byte(msg.ID >> 16)
	}
	copy(buf[headerLen:], payload)

	checksumOffset := headerLen + len(payload)
	crc := crc16.Calculate(buf[1:checksumOffset])
	crc = crc16.Accumulate(msg.CRCExtra, crc)
	binary.LittleEndian.PutUint16(buf[checksumOffset:], crc)

	return buf, nil
}

// trimTrailingZeros drops trailing zero bytes from payload, never going
// below minLen (the base field length, which must always be present).
func trimTrailingZeros(payload []byte, minLen int) []byte {
	end := len(payload)
	for end > minLen && payload[end-1] == 0 {
		end--
	}
	return payload[:end]
}
