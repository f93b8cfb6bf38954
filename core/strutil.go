package core

// utoa converts an unsigned integer to a string without fmt, which TinyGo
// builds poorly on small targets.
func utoa(n uint32) string {
	if n == 0 {
		return "0"
	}

	var buf [10]byte
	pos := len(buf)
	for n > 0 {
		pos--
		buf[pos] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[pos:])
}

// hexBytes renders b as space separated lowercase hex pairs.
func hexBytes(b []byte) string {
	const hexDigits = "0123456789abcdef"
	if len(b) == 0 {
		return ""
	}

	out := make([]byte, 0, len(b)*3-1)
	for i, v := range b {
		if i > 0 {
			out = append(out, ' ')
		}
		out = append(out, hexDigits[v>>4], hexDigits[v&0x0F])
	}
	return string(out)
}
