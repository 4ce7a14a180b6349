package ogg

// crc32Poly is the polynomial Ogg pages checksum against (spec §4.5):
// 0x04C11DB7, initial value 0, no input/output reflection, no xor-out.
// This is libogg's "unreflected" CRC-32, distinct from the IEEE
// polynomial zlib/crc32 in the standard library.
const crc32Poly = 0x04c11db7

var crc32Table = buildCRC32Table(crc32Poly)

func buildCRC32Table(poly uint32) *[256]uint32 {
	var t [256]uint32
	for i := 0; i < 256; i++ {
		crc := uint32(i) << 24
		for j := 0; j < 8; j++ {
			if crc&0x80000000 != 0 {
				crc = (crc << 1) ^ poly
			} else {
				crc <<= 1
			}
		}
		t[i] = crc
	}
	return &t
}

// crc32Checksum computes the unreflected CRC-32 of p, assuming its CRC
// field (bytes 22-25 of an Ogg page) has already been zeroed.
func crc32Checksum(p []byte) uint32 {
	var c uint32
	for _, n := range p {
		c = (c << 8) ^ crc32Table[byte(c>>24)^n]
	}
	return c
}
