package protocol

import "errors"

// ErrMessageTooLong is returned when a payload does not fit one block.
var ErrMessageTooLong = errors.New("message exceeds block size")

// Encoder builds outgoing blocks with a rolling 4-bit sequence number.
// It reuses one scratch buffer and is not safe for concurrent use.
type Encoder struct {
	out ScratchOutput
	seq uint8
}

// NewEncoder creates an encoder starting at sequence 0.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Encode frames one message. The returned slice is only valid until the
// next call.
func (e *Encoder) Encode(msgID uint32, args func(output OutputBuffer)) ([]byte, error) {
	e.out.Reset()

	// header: length placeholder, sequence
	e.out.Output([]byte{0, e.seq})

	EncodeVLQUint(&e.out, msgID)
	if args != nil {
		args(&e.out)
	}

	if e.out.CurPosition()+MessageTrailerSize > MessageLengthMax || e.out.Overflowed() {
		return nil, ErrMessageTooLong
	}

	e.out.Update(MessagePositionLen, uint8(e.out.CurPosition()+MessageTrailerSize))

	crc := CRC16(e.out.Result())
	e.out.Output([]byte{
		uint8(crc >> 8),
		uint8(crc & 0xFF),
		MessageValueSync,
	})

	e.seq = (e.seq + 1) & MessageSeqMask
	return e.out.Result(), nil
}
