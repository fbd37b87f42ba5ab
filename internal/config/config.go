package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"gost-ecb/internal/crypto"
)

// Config holds key material and run settings.
type Config struct {
	// Key material. KeyFile wins over Key; both empty means crypto.DefaultKey.
	Key     []string `json:"key"`
	KeyFile string   `json:"key_file"`
	SBox    string   `json:"sbox"`

	// Run settings
	Workers      int    `json:"workers"`
	OutputDir    string `json:"output_dir"`
	TextEncoding string `json:"text_encoding"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// ErrKeyConflict is returned by Flags.Validate when both -key and -keyfile are set.
var ErrKeyConflict = errors.New("config: -key and -keyfile are mutually exclusive")

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Key          string // comma-separated hex words
	KeyFile      string
	SBox         string
	Workers      int
	OutputDir    string
	TextEncoding string
}

// Validate rejects flag combinations Resolve cannot honour.
func (f Flags) Validate() error {
	if f.Key != "" && f.KeyFile != "" {
		return ErrKeyConflict
	}
	return nil
}

// Resolve applies flag overrides, then fills empty fields with defaults.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.Key != "" {
		c.Key = splitWords(flags.Key)
		c.KeyFile = ""
	}
	if flags.KeyFile != "" {
		c.KeyFile = flags.KeyFile
		c.Key = nil
	}
	if flags.SBox != "" {
		c.SBox = flags.SBox
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.TextEncoding != "" {
		c.TextEncoding = flags.TextEncoding
	}

	if c.SBox == "" {
		c.SBox = "lab"
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.TextEncoding == "" {
		c.TextEncoding = "cp1251"
	}
}

// ResolveKey returns the configured key.
func (c *Config) ResolveKey() (crypto.Key, error) {
	switch {
	case c.KeyFile != "":
		return LoadKeyFile(c.KeyFile)
	case len(c.Key) > 0:
		k, err := ParseKeyWords(c.Key)
		if err != nil {
			return crypto.Key{}, fmt.Errorf("config: key: %w", err)
		}
		return k, nil
	default:
		return crypto.DefaultKey, nil
	}
}

// Cipher builds the cipher described by c.
func (c *Config) Cipher() (*crypto.Cipher, error) {
	key, err := c.ResolveKey()
	if err != nil {
		return nil, err
	}
	sbox, err := crypto.SBoxByName(c.SBox)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return crypto.NewCipher(key, sbox)
}

// ECB builds a block processor using the configured worker count.
func (c *Config) ECB() (*crypto.ECB, error) {
	ci, err := c.Cipher()
	if err != nil {
		return nil, err
	}
	return &crypto.ECB{Cipher: ci, Workers: c.Workers}, nil
}

// ParseKeyWords parses eight hex words, with or without a 0x prefix.
func ParseKeyWords(words []string) (crypto.Key, error) {
	vals := make([]uint32, 0, len(words))
	for _, w := range words {
		w = strings.TrimSpace(w)
		w = strings.TrimPrefix(strings.TrimPrefix(w, "0x"), "0X")
		v, err := strconv.ParseUint(w, 16, 32)
		if err != nil {
			return crypto.Key{}, fmt.Errorf("word %q: %w", w, err)
		}
		vals = append(vals, uint32(v))
	}
	return crypto.NewKey(vals)
}

// LoadKeyFile reads a key from path. A 32-byte file is taken as the raw
// little-endian key; anything else must be eight hex words separated by
// whitespace or commas.
func LoadKeyFile(path string) (crypto.Key, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return crypto.Key{}, fmt.Errorf("config: read key %s: %w", path, err)
	}

	if len(data) == crypto.KeySize {
		if k, err := ParseKeyWords(splitWords(string(data))); err == nil {
			return k, nil
		}
		return crypto.KeyFromBytes(data)
	}

	k, err := ParseKeyWords(splitWords(string(data)))
	if err != nil {
		return crypto.Key{}, fmt.Errorf("config: key file %s: %w", path, err)
	}
	return k, nil
}

func splitWords(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
}
