package crypto

import "encoding/binary"

// BlockSize is the GOST 28147-89 block size in bytes.
const BlockSize = 8

// Cipher is a GOST 28147-89 block cipher bound to one key and table set.
// It holds no mutable state and may be shared between goroutines.
type Cipher struct {
	key  Key
	sbox *SBox

	encryptSchedule [32]uint32
	decryptSchedule [32]uint32
}

// NewCipher expands k for both directions.
func NewCipher(k Key, s *SBox) (*Cipher, error) {
	if s == nil {
		return nil, ErrNilSBox
	}
	c := &Cipher{key: k, sbox: s}
	c.encryptSchedule = expandSchedule(&c.key, &encryptRounds)
	c.decryptSchedule = expandSchedule(&c.key, &decryptRounds)
	return c, nil
}

// Key returns the key the cipher was built with.
func (c *Cipher) Key() Key { return c.key }

// SBox returns the cipher's substitution tables.
func (c *Cipher) SBox() *SBox { return c.sbox }

// EncryptBlock runs the 32 rounds in ascending order.
func (c *Cipher) EncryptBlock(block uint64) uint64 {
	return c.rounds(block, &c.encryptSchedule)
}

// DecryptBlock runs the 32 rounds in descending order.
func (c *Cipher) DecryptBlock(block uint64) uint64 {
	return c.rounds(block, &c.decryptSchedule)
}

func (c *Cipher) rounds(block uint64, ks *[32]uint32) uint64 {
	a, b := uint32(block>>32), uint32(block)
	for _, x := range ks {
		a, b = b^transform(a, x, c.sbox), a
	}
	// Halves leave in swapped order.
	return uint64(b)<<32 | uint64(a)
}

// BlockSize implements cipher.Block.
func (c *Cipher) BlockSize() int { return BlockSize }

// Encrypt implements cipher.Block. Blocks are little-endian uint64 values.
func (c *Cipher) Encrypt(dst, src []byte) {
	binary.LittleEndian.PutUint64(dst, c.EncryptBlock(binary.LittleEndian.Uint64(src)))
}

// Decrypt implements cipher.Block.
func (c *Cipher) Decrypt(dst, src []byte) {
	binary.LittleEndian.PutUint64(dst, c.DecryptBlock(binary.LittleEndian.Uint64(src)))
}
