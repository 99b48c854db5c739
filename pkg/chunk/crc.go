package chunk

import "hash/crc32"

// Checksum computes the CRC-32 checksum PNG uses for chunk integrity: the
// IEEE polynomial (0xEDB88320, reflected) with an initial value of all ones
// and a final complement. Parts are fed into the checksum in order without
// being concatenated, so callers can checksum type code and payload without
// joining them into one buffer.
func Checksum(parts ...[]byte) uint32 {
	var crc uint32
	for _, part := range parts {
		crc = crc32.Update(crc, crc32.IEEETable, part)
	}
	return crc
}
