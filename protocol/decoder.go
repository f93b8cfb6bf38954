package protocol

// Message is one validated block.
type Message struct {
	Sequence uint8
	ID       uint32
	Payload  []byte // fields after the message id
}

// Decoder reassembles blocks from a byte stream. On a bad length, a missing
// sync byte or a CRC mismatch it drops to unsynchronized and skips ahead to
// the next sync byte. It is not safe for concurrent use.
type Decoder struct {
	input        *FifoBuffer
	synchronized bool
	haveSeq      bool
	nextSeq      uint8

	errors uint64
	lost   uint64
}

// NewDecoder creates a decoder. It starts synchronized, so a stream that
// begins on a block boundary is accepted from the first byte.
func NewDecoder() *Decoder {
	return &Decoder{
		input:        NewFifoBuffer(4 * MessageLengthMax),
		synchronized: true,
	}
}

// Feed consumes p and returns every complete message it finished.
func (d *Decoder) Feed(p []byte) []Message {
	var msgs []Message
	for len(p) > 0 {
		n := d.input.Write(p)
		p = p[n:]
		msgs = d.process(msgs)
		if n == 0 && d.input.Free() == 0 {
			// a full buffer that yields nothing cannot be a valid block
			d.input.Reset()
			d.errors++
			d.synchronized = false
		}
	}
	return msgs
}

// Errors returns the number of framing or CRC errors seen.
func (d *Decoder) Errors() uint64 {
	return d.errors
}

// Lost returns the number of blocks skipped according to sequence gaps.
func (d *Decoder) Lost() uint64 {
	return d.lost
}

func (d *Decoder) process(msgs []Message) []Message {
	data := d.input.Data()
	start := len(data)

	for len(data) > 0 {
		if !d.synchronized {
			syncPos := -1
			for i, b := range data {
				if b == MessageValueSync {
					syncPos = i
					break
				}
			}
			if syncPos < 0 {
				data = nil
				break
			}
			data = data[syncPos+1:]
			d.synchronized = true
			continue
		}

		if data[0] == MessageValueSync {
			data = data[1:]
			continue
		}

		if len(data) < MessageLengthMin {
			break
		}

		msgLen := int(data[MessagePositionLen])
		if msgLen < MessageLengthMin || msgLen > MessageLengthMax {
			d.desync()
			continue
		}

		if len(data) < msgLen {
			break
		}

		if data[msgLen-MessageTrailerSync] != MessageValueSync {
			d.desync()
			continue
		}

		frameCRC := uint16(data[msgLen-MessageTrailerCRC])<<8 |
			uint16(data[msgLen-MessageTrailerCRC+1])
		if frameCRC != CRC16(data[:msgLen-MessageTrailerSize]) {
			d.desync()
			continue
		}

		seq := data[MessagePositionSeq] & MessageSeqMask
		payload := make([]byte, msgLen-MessageLengthMin)
		copy(payload, data[MessageHeaderSize:msgLen-MessageTrailerSize])
		data = data[msgLen:]

		d.trackSequence(seq)

		id, err := DecodeVLQUint(&payload)
		if err != nil {
			d.errors++
			continue
		}
		msgs = append(msgs, Message{Sequence: seq, ID: id, Payload: payload})
	}

	d.input.Pop(start - len(data))
	return msgs
}

func (d *Decoder) desync() {
	d.synchronized = false
	d.errors++
}

func (d *Decoder) trackSequence(seq uint8) {
	if d.haveSeq && seq != d.nextSeq {
		d.lost += uint64((seq - d.nextSeq) & MessageSeqMask)
	}
	d.haveSeq = true
	d.nextSeq = (seq + 1) & MessageSeqMask
}
