package frame

import (
	"encoding/binary"

	"github.com/mavbridge/mavcodec/crc16"
	"github.com/mavbridge/mavcodec/schema"
	"github.com/mavbridge/mavcodec/wire"
)

/*
Scanner implements the resynchronizing decode described in §4.6: it never
gives up on a byte stream just because one candidate marker turns out to be
junk. ParseDiscrete treats the whole input as a single complete (or
incomplete) buffer. Parse follows a consumed/examined protocol suited to a
streaming transport: consumed marks how much of the buffer the caller may
drop, examined marks how far the scanner looked before concluding it needs
more data.
*/

////////////////////////////////////////////////////////////////////////////////

// Scanner decodes frames against a fixed schema.Catalog.
type Scanner struct {
	catalog *schema.Catalog
}

// NewScanner returns a Scanner that resolves message ids against catalog.
func NewScanner(catalog *schema.Catalog) *Scanner {
	return &Scanner{catalog: catalog}
}

// ParseDiscrete decodes exactly one frame from buf, skipping any leading
// junk and any marker that fails to validate. It never waits for more
// data: an incomplete candidate at the end of buf is reported as
// FrameTooShort, FrameHasNoChecksum, or SignatureLengthInvalid rather than
// NeedMore. When candidates failed validation and no later marker exists,
// the last candidate's error (e.g. BadChecksum) is returned; StartMarkerNotFound
// is returned only when buf holds no candidate at all. consumed is the offset
// just past the decoded frame.
func (s *Scanner) ParseDiscrete(buf []byte) (f *Frame, consumed int, err error) {
	i := 0
	var lastErr error
	for {
		marker := nextMarker(buf, i)
		if marker < 0 {
			if lastErr != nil {
				return nil, len(buf), lastErr
			}
			return nil, len(buf), StartMarkerNotFound{}
		}
		frame, used, decErr := s.decodeAt(buf, marker, true)
		if decErr == nil {
			return frame, marker + used, nil
		}
		if isShortfall(decErr) {
			return nil, marker, decErr
		}
		lastErr = decErr
		i = marker + 1
	}
}

// Parse implements the streaming variant: it returns either a decoded
// frame, or NeedMore if the candidate at the front of the buffer might
// complete once more data arrives. On failure at an interior marker it
// keeps scanning internally, so by the time it returns, every byte before
// consumed is known to be unusable and safe to discard.
func (s *Scanner) Parse(buf []byte) (f *Frame, consumed int, examined int, err error) {
	i := 0
	for {
		marker := nextMarker(buf, i)
		if marker < 0 {
			return nil, len(buf), len(buf), StartMarkerNotFound{}
		}
		frame, used, decErr := s.decodeAt(buf, marker, false)
		if decErr == nil {
			return frame, marker + used, marker + used, nil
		}
		if _, needMore := decErr.(NeedMore); needMore {
			return nil, marker, len(buf), decErr
		}
		i = marker + 1
	}
}

// nextMarker finds the smallest index at or after from holding a v1 or v2
// start byte, preferring v2 if both occur at the same index (which cannot
// happen for single-byte markers, but the tie-break is checked for parity
// with the resync rule).
func nextMarker(buf []byte, from int) int {
	v1, v2 := -1, -1
	for j := from; j < len(buf); j++ {
		if v1 < 0 && buf[j] == StartV1 {
			v1 = j
		}
		if v2 < 0 && buf[j] == StartV2 {
			v2 = j
		}
		if v1 >= 0 && v2 >= 0 {
			break
		}
	}
	switch {
	case v1 < 0:
		return v2
	case v2 < 0:
		return v1
	case v2 <= v1:
		return v2
	default:
		return v1
	}
}

func isShortfall(err error) bool {
	switch err.(type) {
	case FrameTooShort, FrameHasNoChecksum, SignatureLengthInvalid:
		return true
	default:
		return false
	}
}

// decodeAt implements §4.6.3 steps 1-9 for the candidate marker at idx.
// When discrete is true, insufficient data is reported with the specific
// discrete-mode error (FrameTooShort/FrameHasNoChecksum/
// SignatureLengthInvalid); otherwise every shortfall collapses to NeedMore.
func (s *Scanner) decodeAt(buf []byte, idx int, discrete bool) (*Frame, int, error) {
	version := 1
	headerLen, minPacket, maxPacket := HeaderLenV1, MinPacketV1, MaxPacketV1
	if buf[idx] == StartV2 {
		version = 2
		headerLen, minPacket, maxPacket = HeaderLenV2, MinPacketV2, MaxPacketV2
	}

	avail := len(buf) - idx
	if avail < minPacket {
		return nil, 0, shortfall(discrete, FrameTooShort{})
	}

	payloadLen := int(buf[idx+1])
	coreTotal := headerLen + payloadLen + ChecksumLen
	if coreTotal > maxPacket {
		return nil, 0, FrameTooLong{Version: version, Total: coreTotal}
	}
	if avail < headerLen+payloadLen {
		return nil, 0, shortfall(discrete, FrameTooShort{})
	}
	if avail < coreTotal {
		return nil, 0, shortfall(discrete, FrameHasNoChecksum{})
	}

	var seq, sysID, compID, incompat, compat byte
	var msgID uint32
	if version == 1 {
		seq, sysID, compID = buf[idx+2], buf[idx+3], buf[idx+4]
		msgID = uint32(buf[idx+5])
	} else {
		incompat, compat = buf[idx+2], buf[idx+3]
		seq, sysID, compID = buf[idx+4], buf[idx+5], buf[idx+6]
		msgID = uint32(buf[idx+7]) | uint32(buf[idx+8])<<8 | uint32(buf[idx+9])<<16
	}

	msg, ok := s.catalog.Message(msgID)
	if !ok {
		return nil, 0, MessageNotFound{MessageID: msgID}
	}
	if !msg.Included() {
		return nil, 0, MessageExcluded{MessageID: msgID}
	}
	// v1 carries no extensions, so its bound is BaseFieldPayloadLength, not
	// MaxPayloadLength; only v2 may legitimately claim the larger bound.
	maxForVersion := msg.BaseFieldPayloadLength
	if version == 2 {
		maxForVersion = msg.MaxPayloadLength
	}
	if payloadLen > maxForVersion {
		return nil, 0, wire.PayloadLengthInvalid{Got: payloadLen, Max: maxForVersion}
	}

	padLen := msg.BaseFieldPayloadLength
	if version == 2 {
		padLen = msg.MaxPayloadLength
	}
	payload := make([]byte, padLen)
	copy(payload, buf[idx+headerLen:idx+headerLen+payloadLen])

	checksumOffset := idx + headerLen + payloadLen
	onWire := binary.LittleEndian.Uint16(buf[checksumOffset : checksumOffset+2])

	crc := crc16.Calculate(buf[idx+1 : checksumOffset])
	crc = crc16.Accumulate(msg.CRCExtra, crc)
	if crc != onWire {
		return nil, 0, BadChecksum{Expected: crc, Got: onWire}
	}

	f := &Frame{
		Version:     version,
		Incompat:    incompat,
		Compat:      compat,
		Seq:         seq,
		SystemID:    sysID,
		ComponentID: compID,
		MessageID:   msgID,
		Schema:      msg,
		Payload:     payload,
		Checksum:    crc,
	}
	consumed := coreTotal

	if version == 2 && incompat&IFlagSigned != 0 {
		sigStart := checksumOffset + ChecksumLen
		got := avail - consumed
		if got < SignatureLen {
			if discrete {
				return nil, 0, SignatureLengthInvalid{Got: got}
			}
			return nil, 0, NeedMore{}
		}
		copy(f.Signature[:], buf[sigStart:sigStart+SignatureLen])
		f.HasSignature = true
		consumed += SignatureLen
	}

	return f, consumed, nil
}

func shortfall(discrete bool, specific error) error {
	if discrete {
		return specific
	}
	return NeedMore{}
}
