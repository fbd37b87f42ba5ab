package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gost-ecb/internal/batch"
	"gost-ecb/internal/config"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	modeName := flag.String("mode", "encrypt", "encrypt or decrypt")
	inputDir := flag.String("input", "", "Directory to process")
	outputDir := flag.String("output", "", "Output directory (default: <input>-<mode>ed)")
	sbox := flag.String("sbox", "", "Substitution table set: lab or test (default: lab)")
	key := flag.String("key", "", "Key as 8 comma-separated hex words (not with -keyfile)")
	keyFile := flag.String("keyfile", "", "Key file (32 raw bytes or 8 hex words)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")

	flag.Parse()

	if *inputDir == "" {
		fmt.Fprintln(os.Stderr, "Error: -input is required")
		os.Exit(2)
	}

	mode, err := batch.ParseMode(*modeName)
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

	flags := config.Flags{
		Key:       *key,
		KeyFile:   *keyFile,
		SBox:      *sbox,
		Workers:   *workers,
		OutputDir: *outputDir,
	}
	if err := flags.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	cfg.Resolve(flags)
	if cfg.OutputDir == "" {
		cfg.OutputDir = filepath.Clean(*inputDir) + "-" + mode.String() + "ed"
	}

	// Files run in parallel; each file is processed on one goroutine.
	ecb, err := cfg.ECB()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	ecb.Workers = 1

	jobs, err := batch.Scan(*inputDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(jobs) == 0 {
		fmt.Println("No files to process.")
		os.Exit(0)
	}

	fmt.Printf("GOST 28147-89 ECB batch %s (sbox %s)\n", mode, cfg.SBox)
	fmt.Printf("Files: %d, Workers: %d\n", len(jobs), cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	results := batch.Run(batch.Config{
		InputDir:  *inputDir,
		OutputDir: cfg.OutputDir,
		Mode:      mode,
		ECB:       ecb,
		Workers:   cfg.Workers,
		Progress: func(done, total int, rate float64) {
			fmt.Printf("  [%d/%d] %.1f files/sec\n", done, total, rate)
		},
	}, jobs)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success, failed := 0, 0
	var errors []batch.Result
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
			errors = append(errors, r)
		}
	}

	fmt.Printf("Processed: %d/%d\n", success, len(jobs))

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := min(len(errors), 20)
		for _, e := range errors[:limit] {
			fmt.Printf("  %s: %s\n", e.Path, e.Error)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, batch.ManifestName)
	os.MkdirAll(cfg.OutputDir, 0755)
	if err := batch.WriteManifest(manifestPath, mode, cfg.SBox, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		os.Exit(1)
	}
}
