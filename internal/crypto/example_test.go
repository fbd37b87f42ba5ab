package crypto_test

import (
	"fmt"

	"gost-ecb/internal/crypto"
)

func ExampleCipher_EncryptBlock() {
	c, err := crypto.NewCipher(crypto.DefaultKey, crypto.LabSBox)
	if err != nil {
		panic(err)
	}

	enc := c.EncryptBlock(0x0011223344556677)
	fmt.Printf("%#016x\n", enc)
	fmt.Printf("%#016x\n", c.DecryptBlock(enc))

	// Output:
	// 0x2d89d80c1a616bb7
	// 0x0011223344556677
}

func ExampleEncryptECB() {
	c, _ := crypto.NewCipher(crypto.DefaultKey, crypto.LabSBox)

	enc := crypto.EncryptECB(c, []byte("HELLO\x00"))
	dec, _ := crypto.DecryptECB(c, enc)

	fmt.Printf("%d -> %d bytes\n", 6, len(enc))
	fmt.Printf("%q\n", dec)

	// Output:
	// 6 -> 8 bytes
	// "HELLO"
}
