package nunchuk

// register is a single register write sent during the handshake.
type register struct {
	addr  byte
	value byte
}

var (
	plainHandshake  = []register{{0xF0, 0x55}, {0xFB, 0x00}}
	legacyHandshake = []register{{0x40, 0x00}}
)

// Mode selects the handshake and the matching byte transform.
// It is implemented only by Plain and Legacy.
type Mode interface {
	// DecodeByte undoes the transmission scramble for one frame byte.
	DecodeByte(b byte) byte

	String() string

	handshake() []register
}

// Plain disables the byte scramble on the controller. Works with clones.
type Plain struct{}

// DecodeByte returns b unchanged.
func (Plain) DecodeByte(b byte) byte { return b }

func (Plain) String() string { return "plain" }

func (Plain) handshake() []register { return plainHandshake }

// Legacy uses the original handshake and de-scrambles every byte.
type Legacy struct{}

// DecodeByte computes (b ^ 0x17) + 0x17 with 8-bit wraparound.
// It is not self-inverse.
func (Legacy) DecodeByte(b byte) byte { return (b ^ 0x17) + 0x17 }

func (Legacy) String() string { return "legacy" }

func (Legacy) handshake() []register { return legacyHandshake }
