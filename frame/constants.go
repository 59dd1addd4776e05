package frame

// Wire constants for MAVLink v1 and v2, per the protocol's frame layout.
const (
	StartV1 byte = 0xFE
	StartV2 byte = 0xFD

	HeaderLenV1 = 6  // STX, len, seq, sysId, compId, msgId(1)
	HeaderLenV2 = 10 // STX, len, incompat, compat, seq, sysId, compId, msgId(3)

	ChecksumLen  = 2
	SignatureLen = 13

	MinPacketV1 = HeaderLenV1 + ChecksumLen
	MinPacketV2 = HeaderLenV2 + ChecksumLen

	MaxPacketV1 = HeaderLenV1 + 255 + ChecksumLen
	MaxPacketV2 = HeaderLenV2 + 255 + ChecksumLen + SignatureLen

	// IFlagSigned is the v2 incompat-flag bit that marks a frame as carrying
	// a trailing 13-byte signature. The scanner uses it to decide whether to
	// look for a signature rather than guessing from trailing-byte counts,
	// which would misread an unsigned frame's neighbor as a signature.
	IFlagSigned byte = 0x01
)
