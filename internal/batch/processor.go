package batch

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"gost-ecb/internal/crypto"
)

// Suffix is appended to encrypted file names and stripped on decrypt.
const Suffix = ".gost"

// Mode selects the direction of a run.
type Mode int

const (
	Encrypt Mode = iota
	Decrypt
)

func (m Mode) String() string {
	if m == Decrypt {
		return "decrypt"
	}
	return "encrypt"
}

// ParseMode accepts "encrypt"/"decrypt" and their one-letter forms.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "encrypt", "e":
		return Encrypt, nil
	case "decrypt", "d":
		return Decrypt, nil
	}
	return 0, fmt.Errorf("batch: unknown mode %q", s)
}

// Config holds all shared resources for a batch run.
type Config struct {
	InputDir  string
	OutputDir string
	Mode      Mode
	ECB       *crypto.ECB
	Workers   int

	// Progress is called every two seconds while the run is going.
	// Nil disables progress reports.
	Progress func(done, total int, rate float64)
}

// Job is one input file, named relative to Config.InputDir.
type Job struct {
	Rel  string
	Size int64
}

// Result holds the outcome of processing one file.
type Result struct {
	Path    string `json:"path"`
	Output  string `json:"output,omitempty"`
	InSize  int64  `json:"in_size"`
	OutSize int64  `json:"out_size"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Scan lists regular files under dir, sorted by relative path. A
// manifest left in dir by an earlier run is not a job.
func Scan(dir string) ([]Job, error) {
	var jobs []Job
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		if rel == ManifestName {
			return nil
		}
		jobs = append(jobs, Job{Rel: rel, Size: info.Size()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("batch: scan %s: %w", dir, err)
	}
	sort.Slice(jobs, func(i, j int) bool { return jobs[i].Rel < jobs[j].Rel })
	return jobs, nil
}

// Run processes all jobs using a worker pool. Results are in job order.
func Run(cfg Config, jobs []Job) []Result {
	total := len(jobs)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 && cfg.Progress != nil {
					elapsed := time.Since(start).Seconds()
					cfg.Progress(int(p), total, float64(p)/elapsed)
				}
			}
		}
	}()

	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	// Worker pool
	jobChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobChan {
				results[idx] = processFile(cfg, jobs[idx])
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range jobs {
		jobChan <- i
	}
	close(jobChan)

	wg.Wait()
	close(done)

	return results
}

// OutputName maps an input relative path to its output relative path.
func OutputName(rel string, mode Mode) string {
	if mode == Decrypt {
		if trimmed := strings.TrimSuffix(rel, Suffix); trimmed != rel && trimmed != "" {
			return trimmed
		}
		return rel + ".dec"
	}
	return rel + Suffix
}

func processFile(cfg Config, job Job) Result {
	res := Result{Path: job.Rel, InSize: job.Size}

	data, err := os.ReadFile(filepath.Join(cfg.InputDir, job.Rel))
	if err != nil {
		res.Error = err.Error()
		return res
	}

	var out []byte
	if cfg.Mode == Decrypt {
		out, err = cfg.ECB.Decrypt(data)
		if err != nil {
			res.Error = err.Error()
			return res
		}
	} else {
		out = cfg.ECB.Encrypt(data)
	}

	rel := OutputName(job.Rel, cfg.Mode)
	outPath := filepath.Join(cfg.OutputDir, rel)
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		res.Error = err.Error()
		return res
	}
	if err := os.WriteFile(outPath, out, 0644); err != nil {
		res.Error = err.Error()
		return res
	}

	res.Output = rel
	res.OutSize = int64(len(out))
	res.Success = true
	return res
}
