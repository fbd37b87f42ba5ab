package crypto

import (
	"encoding/binary"
	"fmt"
)

// KeySize is the key length in bytes.
const KeySize = 32

// Key is a 256-bit key as eight 32-bit words K0..K7.
type Key [8]uint32

// DefaultKey is the fixed key of the ECB file tool.
var DefaultKey = Key{
	0x12345678, 0x9ABCDEF0, 0x11223344, 0x55667788,
	0x99AABBCC, 0xDDEEFF00, 0x13579BDF, 0x2468ACE0,
}

// NewKey builds a Key from exactly eight words.
func NewKey(words []uint32) (Key, error) {
	var k Key
	if len(words) != len(k) {
		return k, fmt.Errorf("%w: got %d words", ErrInvalidKeyLength, len(words))
	}
	copy(k[:], words)
	return k, nil
}

// KeyFromBytes reads 32 bytes as eight little-endian words.
func KeyFromBytes(b []byte) (Key, error) {
	var k Key
	if len(b) != KeySize {
		return k, fmt.Errorf("%w: got %d bytes", ErrInvalidKeyLength, len(b))
	}
	for i := range k {
		k[i] = binary.LittleEndian.Uint32(b[i*4:])
	}
	return k, nil
}

// Bytes returns the little-endian encoding of k.
func (k Key) Bytes() []byte {
	b := make([]byte, KeySize)
	for i, w := range k {
		binary.LittleEndian.PutUint32(b[i*4:], w)
	}
	return b
}

// Rounds 0..23 cycle K0..K7 three times, rounds 24..31 run K7..K0.
func subkeyForRound(round int, k *Key) uint32 {
	if round < 24 {
		return k[round%8]
	}
	return k[7-round%8]
}

// Decryption walks the same rounds backwards; both directions go
// through subkeyForRound.
var encryptRounds, decryptRounds = roundOrders()

func roundOrders() (enc, dec [32]int) {
	for i := 0; i < 32; i++ {
		enc[i] = i
		dec[i] = 31 - i
	}
	return enc, dec
}

func expandSchedule(k *Key, order *[32]int) [32]uint32 {
	var ks [32]uint32
	for i, round := range order {
		ks[i] = subkeyForRound(round, k)
	}
	return ks
}
