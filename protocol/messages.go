package protocol

import (
	"errors"
	"fmt"

	"nunchuk/nunchuk"
)

// ErrBadMessage is returned when a payload does not match its message id.
var ErrBadMessage = errors.New("malformed message")

// Identify is sent once after the controller is initialized.
// Format: identify version=%u mode=%*s ok=%c id=%*s
type Identify struct {
	Version uint32
	Mode    string
	OK      bool
	ID      nunchuk.ID
}

// Sample carries one poll result.
// Format: sample clock=%u ok=%c frame=%*s
//
// OK is the ReadFrame result. When it is false the frame may be partially
// stale.
type Sample struct {
	Clock uint32 // milliseconds since boot
	OK    bool
	Frame nunchuk.Frame
}

// EncodeIdentify frames an identify message.
func (e *Encoder) EncodeIdentify(m Identify) ([]byte, error) {
	return e.Encode(MsgIdentify, func(output OutputBuffer) {
		EncodeVLQUint(output, m.Version)
		EncodeVLQBytes(output, []byte(m.Mode))
		EncodeVLQUint(output, boolToUint(m.OK))
		EncodeVLQBytes(output, m.ID[:])
	})
}

// EncodeSample frames a sample message.
func (e *Encoder) EncodeSample(m Sample) ([]byte, error) {
	return e.Encode(MsgSample, func(output OutputBuffer) {
		EncodeVLQUint(output, m.Clock)
		EncodeVLQUint(output, boolToUint(m.OK))
		EncodeVLQBytes(output, m.Frame[:])
	})
}

// DecodeIdentify parses the payload of a MsgIdentify message.
func DecodeIdentify(msg Message) (Identify, error) {
	var m Identify
	if msg.ID != MsgIdentify {
		return m, fmt.Errorf("%w: id %d is not identify", ErrBadMessage, msg.ID)
	}
	data := msg.Payload

	var err error
	if m.Version, err = DecodeVLQUint(&data); err != nil {
		return m, fmt.Errorf("%w: version: %v", ErrBadMessage, err)
	}
	mode, err := DecodeVLQBytes(&data)
	if err != nil {
		return m, fmt.Errorf("%w: mode: %v", ErrBadMessage, err)
	}
	m.Mode = string(mode)
	ok, err := DecodeVLQUint(&data)
	if err != nil {
		return m, fmt.Errorf("%w: ok: %v", ErrBadMessage, err)
	}
	m.OK = ok != 0
	id, err := DecodeVLQBytes(&data)
	if err != nil {
		return m, fmt.Errorf("%w: id: %v", ErrBadMessage, err)
	}
	if len(id) != len(m.ID) {
		return m, fmt.Errorf("%w: id is %d bytes", ErrBadMessage, len(id))
	}
	copy(m.ID[:], id)
	return m, nil
}

// DecodeSample parses the payload of a MsgSample message.
func DecodeSample(msg Message) (Sample, error) {
	var m Sample
	if msg.ID != MsgSample {
		return m, fmt.Errorf("%w: id %d is not sample", ErrBadMessage, msg.ID)
	}
	data := msg.Payload

	var err error
	if m.Clock, err = DecodeVLQUint(&data); err != nil {
		return m, fmt.Errorf("%w: clock: %v", ErrBadMessage, err)
	}
	ok, err := DecodeVLQUint(&data)
	if err != nil {
		return m, fmt.Errorf("%w: ok: %v", ErrBadMessage, err)
	}
	m.OK = ok != 0
	frame, err := DecodeVLQBytes(&data)
	if err != nil {
		return m, fmt.Errorf("%w: frame: %v", ErrBadMessage, err)
	}
	if len(frame) != nunchuk.FrameSize {
		return m, fmt.Errorf("%w: frame is %d bytes", ErrBadMessage, len(frame))
	}
	copy(m.Frame[:], frame)
	return m, nil
}

func boolToUint(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
