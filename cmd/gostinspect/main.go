package main

import (
	"flag"
	"fmt"
	"os"

	"gost-ecb/internal/config"
	"gost-ecb/internal/crypto"
	"gost-ecb/internal/preview"
)

const (
	selfTestBlock  = 0x0011223344556677
	selfTestCipher = 0x2d89d80c1a616bb7
)

func selfTest() bool {
	c, err := crypto.NewCipher(crypto.DefaultKey, crypto.LabSBox)
	if err != nil {
		fmt.Printf("FAIL  %v\n", err)
		return false
	}

	ok := true
	enc := c.EncryptBlock(selfTestBlock)
	dec := c.DecryptBlock(enc)
	fmt.Printf("Key:        %08X\n", crypto.DefaultKey[:])
	fmt.Printf("Plaintext:  %016X\n", uint64(selfTestBlock))
	fmt.Printf("Ciphertext: %016X - ", enc)
	if enc != selfTestCipher {
		fmt.Printf("FAILED! [expected %016X]\n", uint64(selfTestCipher))
		ok = false
	} else {
		fmt.Println("OK")
	}
	fmt.Printf("Decrypted:  %016X - ", dec)
	if dec != selfTestBlock {
		fmt.Println("FAILED!")
		ok = false
	} else {
		fmt.Println("OK")
	}

	stream := []byte("HELLO!!!")
	back, err := crypto.DecryptECB(c, crypto.EncryptECB(c, stream))
	fmt.Printf("Stream %q round trip - ", stream)
	if err != nil || string(back) != string(stream) {
		fmt.Println("FAILED!")
		ok = false
	} else {
		fmt.Println("OK")
	}
	return ok
}

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	runSelfTest := flag.Bool("selftest", false, "Check the reference key and block")
	raw := flag.Bool("raw", false, "Inspect the file as is, without decrypting")
	encoding := flag.String("encoding", "", "Text preview encoding: cp1251, koi8r, cp866, cp1252, utf8")
	limit := flag.Int("n", 256, "Bytes to dump (0 = all)")
	sbox := flag.String("sbox", "", "Substitution table set: lab or test (default: lab)")
	key := flag.String("key", "", "Key as 8 comma-separated hex words (not with -keyfile)")
	keyFile := flag.String("keyfile", "", "Key file (32 raw bytes or 8 hex words)")

	flag.Parse()

	if *runSelfTest {
		if !selfTest() {
			os.Exit(1)
		}
		return
	}

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: gostinspect [flags] <file>  |  gostinspect -selftest")
		os.Exit(2)
	}
	path := flag.Arg(0)

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	flags := config.Flags{Key: *key, KeyFile: *keyFile, SBox: *sbox, TextEncoding: *encoding}
	if err := flags.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	cfg.Resolve(flags)

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("File: %s (%d bytes, %d blocks, tail %d)\n", path, len(data), len(data)/crypto.BlockSize, len(data)%crypto.BlockSize)

	if !*raw {
		c, err := cfg.Cipher()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		plain, err := crypto.DecryptECB(c, data)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Decrypted: %d bytes (%d stripped, sbox %s)\n", len(plain), len(data)-len(plain), cfg.SBox)
		data = plain
	}

	fmt.Println()
	fmt.Print(preview.HexDump(data, *limit))

	text, err := preview.Text(data, cfg.TextEncoding)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if *limit > 0 && len([]rune(text)) > *limit {
		text = string([]rune(text)[:*limit]) + "..."
	}
	fmt.Printf("\nText (%s):\n%s\n", cfg.TextEncoding, text)
}
