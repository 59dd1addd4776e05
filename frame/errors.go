package frame

import "fmt"

// StartMarkerNotFound reports that no 0xFE or 0xFD byte exists anywhere in
// the scanned buffer.
type StartMarkerNotFound struct{}

func (e StartMarkerNotFound) Error() string { return "no start marker found" }

func (e StartMarkerNotFound) Is(target error) bool {
	_, ok := target.(StartMarkerNotFound)
	return ok
}

// FrameTooShort reports a discrete buffer that ends before a candidate
// frame's header and payload are fully present.
type FrameTooShort struct{}

func (e FrameTooShort) Error() string { return "frame too short" }

func (e FrameTooShort) Is(target error) bool {
	_, ok := target.(FrameTooShort)
	return ok
}

// FrameTooLong reports a candidate frame whose declared length would exceed
// the protocol's maximum packet size. The wire format's one-byte payload
// length field makes this practically unreachable; it is kept for parity
// with the error taxonomy callers may switch on.
type FrameTooLong struct {
	Version int
	Total   int
}

func (e FrameTooLong) Error() string {
	return fmt.Sprintf("v%d frame of %d bytes exceeds the maximum packet size", e.Version, e.Total)
}

func (e FrameTooLong) Is(target error) bool {
	_, ok := target.(FrameTooLong)
	return ok
}

// FrameHasNoChecksum reports a discrete buffer that holds the whole payload
// but ends before both checksum bytes are present.
type FrameHasNoChecksum struct{}

func (e FrameHasNoChecksum) Error() string { return "frame has no checksum" }

func (e FrameHasNoChecksum) Is(target error) bool {
	_, ok := target.(FrameHasNoChecksum)
	return ok
}

// NeedMore is returned by the streaming scanner when a candidate frame is
// plausible but the buffer does not yet hold enough bytes to decide.
type NeedMore struct{}

func (e NeedMore) Error() string { return "need more data" }

func (e NeedMore) Is(target error) bool {
	_, ok := target.(NeedMore)
	return ok
}

// MessageNotFound reports a message id absent from the catalog entirely.
type MessageNotFound struct {
	MessageID uint32
}

func (e MessageNotFound) Error() string {
	return fmt.Sprintf("message id %d not found", e.MessageID)
}

func (e MessageNotFound) Is(target error) bool {
	_, ok := target.(MessageNotFound)
	return ok
}

// MessageExcluded reports a message id present in the catalog but currently
// excluded via Catalog.ExcludeMessages.
type MessageExcluded struct {
	MessageID uint32
}

func (e MessageExcluded) Error() string {
	return fmt.Sprintf("message id %d excluded", e.MessageID)
}

func (e MessageExcluded) Is(target error) bool {
	_, ok := target.(MessageExcluded)
	return ok
}

// BadChecksum reports a computed checksum that disagrees with the checksum
// bytes on the wire.
type BadChecksum struct {
	Expected uint16
	Got      uint16
}

func (e BadChecksum) Error() string {
	return fmt.Sprintf("checksum mismatch: computed %#04x, wire has %#04x", e.Expected, e.Got)
}

func (e BadChecksum) Is(target error) bool {
	_, ok := target.(BadChecksum)
	return ok
}

// SignatureLengthInvalid reports a v2 signed frame whose trailing bytes
// number fewer than the 13 a signature requires.
type SignatureLengthInvalid struct {
	Got int
}

func (e SignatureLengthInvalid) Error() string {
	return fmt.Sprintf("signature length %d, want 13", e.Got)
}

func (e SignatureLengthInvalid) Is(target error) bool {
	_, ok := target.(SignatureLengthInvalid)
	return ok
}
