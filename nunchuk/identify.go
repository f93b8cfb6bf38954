package nunchuk

// regIdentify is the register holding the 6-byte extension identifier.
const regIdentify = 0xFA

// ID is the raw extension identifier reported by the controller.
type ID [6]byte

// nunchukSignature is the identifier tail shared by Nunchuk controllers.
// Bytes 0 and 1 vary between genuine units and clones.
var nunchukSignature = [4]byte{0xA4, 0x20, 0x00, 0x00}

// IsNunchuk reports whether id identifies a Nunchuk.
func (id ID) IsNunchuk() bool {
	return [4]byte(id[2:]) == nunchukSignature
}

// Identify reads the extension identifier through the same byte transform
// as data frames. The controller is re-armed afterwards so the next
// ReadFrame returns a data frame. Call it after Initialize.
func (d *Device[M]) Identify() (ID, bool) {
	var id ID

	d.bus.Start(Address)
	d.bus.Write(regIdentify)
	d.bus.Stop()

	d.bus.RequestFrom(Address, len(id))
	i := 0
	for ; i < len(id) && d.bus.Available() > 0; i++ {
		id[i] = d.mode.DecodeByte(d.bus.Read())
	}
	d.rearm()
	return id, i == len(id)
}
