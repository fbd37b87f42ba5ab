package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"gost-ecb/internal/batch"
	"gost-ecb/internal/config"
)

func main() {
	var modeName, input, output string
	flag.StringVar(&modeName, "mode", "", "encrypt or decrypt")
	flag.StringVar(&modeName, "m", "", "shorthand for -mode")
	flag.StringVar(&input, "input", "", "Input file")
	flag.StringVar(&input, "i", "", "shorthand for -input")
	flag.StringVar(&output, "output", "", "Output file")
	flag.StringVar(&output, "o", "", "shorthand for -output")
	configFile := flag.String("config", "", "Path to config.json file")
	sbox := flag.String("sbox", "", "Substitution table set: lab or test (default: lab)")
	key := flag.String("key", "", "Key as 8 comma-separated hex words (not with -keyfile)")
	keyFile := flag.String("keyfile", "", "Key file (32 raw bytes or 8 hex words)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")

	flag.Parse()

	if modeName == "" || input == "" || output == "" {
		fmt.Fprintln(os.Stderr, "Usage: gostecb -m encrypt|decrypt -i <input> -o <output>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	mode, err := batch.ParseMode(modeName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	// Load config
	var cfg config.Config
	if *configFile != "" {
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	flags := config.Flags{
		Key:     *key,
		KeyFile: *keyFile,
		SBox:    *sbox,
		Workers: *workers,
	}
	if err := flags.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	cfg.Resolve(flags)

	ecb, err := cfg.ECB()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	data, err := os.ReadFile(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		os.Exit(1)
	}

	start := time.Now()

	var out []byte
	if mode == batch.Decrypt {
		out, err = ecb.Decrypt(data)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", input, err)
			os.Exit(1)
		}
	} else {
		out = ecb.Encrypt(data)
	}

	if err := os.WriteFile(output, out, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("GOST 28147-89 ECB %s (sbox %s): %d -> %d bytes in %s\n",
		mode, cfg.SBox, len(data), len(out), time.Since(start).Round(time.Microsecond))
}
