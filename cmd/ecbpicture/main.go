package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gost-ecb/internal/config"
	"gost-ecb/internal/picture"
)

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	output := flag.String("output", "", "Output WebP (default: <input>.ecb.webp)")
	decrypt := flag.Bool("decrypt", false, "Decrypt pixels instead of encrypting")
	minSize := flag.Int("size", 512, "Also write an upscaled <output>.view.webp with the longer side at least this many pixels (0 = off)")
	sbox := flag.String("sbox", "", "Substitution table set: lab or test (default: lab)")
	key := flag.String("key", "", "Key as 8 comma-separated hex words (not with -keyfile)")
	keyFile := flag.String("keyfile", "", "Key file (32 raw bytes or 8 hex words)")

	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: ecbpicture [flags] <image.png|bmp|tga|jpg>")
		flag.PrintDefaults()
		os.Exit(2)
	}
	input := flag.Arg(0)

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	flags := config.Flags{Key: *key, KeyFile: *keyFile, SBox: *sbox}
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

	img, err := picture.Load(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	crypt, suffix := picture.EncryptPixels, ".ecb.webp"
	if *decrypt {
		crypt, suffix = picture.DecryptPixels, ".plain.webp"
	}
	out, err := crypt(ecb, img)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	outPath := *output
	if outPath == "" {
		outPath = strings.TrimSuffix(input, filepath.Ext(input)) + suffix
	}
	// Native size only: ecbpicture -decrypt reads this file back.
	if err := picture.Save(outPath, out); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	b := img.Bounds()
	fmt.Printf("%s: %dx%d, %d blocks -> %s\n", input, b.Dx(), b.Dy(), b.Dx()*b.Dy()*3/8, outPath)

	if *minSize > 0 {
		if view := picture.Fit(out, *minSize); view != out {
			viewPath := strings.TrimSuffix(outPath, filepath.Ext(outPath)) + ".view.webp"
			if err := picture.Save(viewPath, view); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("View: %dx%d -> %s\n", view.Bounds().Dx(), view.Bounds().Dy(), viewPath)
		}
	}
}
