package crypto

import "errors"

var (
	// ErrMalformedTable is returned when a substitution table row is not a
	// permutation of 0..15.
	ErrMalformedTable = errors.New("crypto: malformed substitution table")

	// ErrInvalidIndex is returned by SBox.Substitute for a table index
	// outside 0..7 or a nibble outside 0..15.
	ErrInvalidIndex = errors.New("crypto: substitution index out of range")

	// ErrInvalidKeyLength is returned when a key is not exactly 8 words (32 bytes).
	ErrInvalidKeyLength = errors.New("crypto: invalid key length, must be 8 words")

	// ErrInvalidCiphertextLength is returned when ECB input is not a whole
	// number of 8-byte blocks.
	ErrInvalidCiphertextLength = errors.New("crypto: ciphertext length is not a multiple of 8")

	// ErrUnknownSBox is returned by SBoxByName for an unregistered name.
	ErrUnknownSBox = errors.New("crypto: unknown substitution table set")

	// ErrNilSBox is returned when a cipher is built without tables.
	ErrNilSBox = errors.New("crypto: substitution table set is nil")
)
