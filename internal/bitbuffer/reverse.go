package bitbuffer

var reverseTable [256]byte

func init() {
	for i := range reverseTable {
		b := byte(i)
		b = b>>4 | b<<4
		b = (b&0xCC)>>2 | (b&0x33)<<2
		b = (b&0xAA)>>1 | (b&0x55)<<1
		reverseTable[i] = b
	}
}

// Reverse8 returns b with its bit order reversed. Over-the-air LSB-first
// fields land in the buffer MSB first and need flipping per byte.
func Reverse8(b byte) byte {
	return reverseTable[b]
}
