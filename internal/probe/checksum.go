package probe

// inetChecksum computes the RFC 1071 Internet checksum of b: the one's
// complement of the one's-complement sum of b taken as big-endian 16-bit
// words. An odd trailing byte is the high byte of a zero-padded final word.
func inetChecksum(b []byte) uint16 {
	var sum uint32
	for i := 0; i+1 < len(b); i += 2 {
		sum += uint32(b[i])<<8 | uint32(b[i+1])
	}
	if len(b)%2 != 0 {
		sum += uint32(b[len(b)-1]) << 8
	}
	for sum > 0xffff {
		sum = (sum >> 16) + (sum & 0xffff)
	}
	return ^uint16(sum)
}
