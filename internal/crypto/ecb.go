package crypto

import (
	"bytes"
	"fmt"
	"sync"
)

// Pad appends 8-len(data)%8 zero bytes, so an aligned input gains a whole
// zero block. data is not modified.
func Pad(data []byte) []byte {
	pad := BlockSize - len(data)%BlockSize
	out := make([]byte, len(data)+pad)
	copy(out, data)
	return out
}

// Unpad strips every trailing zero byte. Plaintext that genuinely ends in
// zero bytes loses them; the padding carries no length.
func Unpad(data []byte) []byte {
	return bytes.TrimRight(data, "\x00")
}

// EncryptECB pads data and encrypts it block by block.
func EncryptECB(c *Cipher, data []byte) []byte {
	return (&ECB{Cipher: c}).Encrypt(data)
}

// DecryptECB decrypts data block by block and strips trailing zeros.
func DecryptECB(c *Cipher, data []byte) ([]byte, error) {
	return (&ECB{Cipher: c}).Decrypt(data)
}

// ECB processes byte streams in electronic codebook mode. Blocks are
// independent, so with Workers > 1 the stream is cut into contiguous
// ranges handled by separate goroutines.
type ECB struct {
	Cipher  *Cipher
	Workers int
}

// Encrypt pads data and returns the ciphertext, always 1..8 bytes longer
// than data.
func (e *ECB) Encrypt(data []byte) []byte {
	buf := Pad(data)
	e.cryptBlocks(buf, buf, false)
	return buf
}

// Decrypt rejects data that is not whole blocks, otherwise returns the
// unpadded plaintext.
func (e *ECB) Decrypt(data []byte) ([]byte, error) {
	out := make([]byte, len(data))
	if err := e.CryptBlocks(out, data, true); err != nil {
		return nil, err
	}
	return Unpad(out), nil
}

// CryptBlocks transforms whole blocks of src into dst without padding.
// dst must be at least len(src) long and may alias src exactly.
func (e *ECB) CryptBlocks(dst, src []byte, decrypt bool) error {
	if len(src)%BlockSize != 0 {
		return fmt.Errorf("%w: %d bytes", ErrInvalidCiphertextLength, len(src))
	}
	if len(dst) < len(src) {
		return fmt.Errorf("crypto: output buffer too small: %d < %d", len(dst), len(src))
	}
	e.cryptBlocks(dst[:len(src)], src, decrypt)
	return nil
}

func (e *ECB) cryptBlocks(dst, src []byte, decrypt bool) {
	crypt := e.Cipher.Encrypt
	if decrypt {
		crypt = e.Cipher.Decrypt
	}

	n := len(src) / BlockSize
	workers := e.Workers
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		cryptRange(crypt, dst, src)
		return
	}

	per := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < n; start += per {
		end := start + per
		if end > n {
			end = n
		}
		lo, hi := start*BlockSize, end*BlockSize
		wg.Add(1)
		go func() {
			defer wg.Done()
			cryptRange(crypt, dst[lo:hi], src[lo:hi])
		}()
	}
	wg.Wait()
}

func cryptRange(crypt func(dst, src []byte), dst, src []byte) {
	for i := 0; i+BlockSize <= len(src); i += BlockSize {
		crypt(dst[i:i+BlockSize], src[i:i+BlockSize])
	}
}
