package crypto

import "math/bits"

// transform is the GOST round function: add the subkey mod 2^32,
// substitute every nibble, rotate left by 11.
func transform(acc, subkey uint32, s *SBox) uint32 {
	return bits.RotateLeft32(s.substitute(acc+subkey), 11)
}
