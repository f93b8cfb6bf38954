// Package protocol implements the framed link between the controller
// firmware and the host.
//
// Every block is laid out as
//
//	len(1) seq(1) payload(len-5) crc16(2, big endian) sync(0x7E)
//
// with the CRC computed over len, seq and payload. The payload is a VLQ
// message id followed by the message fields, also VLQ encoded. This is the
// Klipper block format, minus acknowledgements: the firmware only streams.
package protocol

// Version is the link protocol revision reported in identify messages.
const Version = 1

// Block layout.
const (
	MessageHeaderSize  = 2
	MessageTrailerSize = 3
	MessageLengthMin   = MessageHeaderSize + MessageTrailerSize
	MessageLengthMax   = 64
	MessagePositionLen = 0
	MessagePositionSeq = 1
	MessageTrailerCRC  = 3
	MessageTrailerSync = 1
	MessageValueSync   = 0x7E
	MessageSeqMask     = 0x0F

	// MessageMax is the scratch buffer size used while encoding.
	MessageMax = MessageLengthMax
)

// Message ids.
const (
	MsgIdentify uint32 = 1
	MsgSample   uint32 = 2
)
