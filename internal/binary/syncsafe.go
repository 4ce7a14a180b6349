package binary

// EncodeSyncSafe32 encodes v as a 4-byte sync-safe integer: 7 significant
// bits per byte, high bit always zero. Used by ID3v2 tag/frame sizes
// (ID3v2.4 frame sizes, ID3v2.3+ header size) so that a 0xFF byte can never
// appear in a tag size field and be mistaken for an MPEG frame sync.
//
// v must fit in 28 bits; larger values are truncated.
func EncodeSyncSafe32(v uint32) [4]byte {
	return [4]byte{
		byte((v >> 21) & 0x7F),
		byte((v >> 14) & 0x7F),
		byte((v >> 7) & 0x7F),
		byte(v & 0x7F),
	}
}

// DecodeSyncSafe32 decodes a 4-byte sync-safe integer.
func DecodeSyncSafe32(b []byte) uint32 {
	if len(b) != 4 {
		return 0
	}
	return uint32(b[0]&0x7F)<<21 |
		uint32(b[1]&0x7F)<<14 |
		uint32(b[2]&0x7F)<<7 |
		uint32(b[3]&0x7F)
}
