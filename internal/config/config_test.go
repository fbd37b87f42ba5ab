package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"gost-ecb/internal/crypto"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, "config.json", []byte(`{
		"key": ["0x1", "2", "3", "4", "5", "6", "7", "0x8"],
		"sbox": "test",
		"workers": 3
	}`))

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SBox != "test" || cfg.Workers != 3 || len(cfg.Key) != 8 {
		t.Errorf("Load = %+v", cfg)
	}

	k, err := cfg.ResolveKey()
	if err != nil {
		t.Fatalf("ResolveKey: %v", err)
	}
	if want := (crypto.Key{1, 2, 3, 4, 5, 6, 7, 8}); k != want {
		t.Errorf("ResolveKey = %x, want %x", k, want)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Load(missing) returned nil error")
	}
	if _, err := Load(writeFile(t, "bad.json", []byte("{"))); err == nil {
		t.Error("Load(bad json) returned nil error")
	}
}

func TestResolveDefaults(t *testing.T) {
	var cfg Config
	cfg.Resolve(Flags{})

	if cfg.SBox != "lab" {
		t.Errorf("SBox = %q, want lab", cfg.SBox)
	}
	if cfg.Workers != runtime.NumCPU() {
		t.Errorf("Workers = %d, want %d", cfg.Workers, runtime.NumCPU())
	}
	if cfg.TextEncoding != "cp1251" {
		t.Errorf("TextEncoding = %q, want cp1251", cfg.TextEncoding)
	}

	k, err := cfg.ResolveKey()
	if err != nil {
		t.Fatalf("ResolveKey: %v", err)
	}
	if k != crypto.DefaultKey {
		t.Errorf("ResolveKey = %x, want DefaultKey", k)
	}
}

func TestResolveFlagsOverride(t *testing.T) {
	cfg := Config{SBox: "lab", Workers: 2, KeyFile: "ignored.key"}
	cfg.Resolve(Flags{
		Key:     "0x12345678,9ABCDEF0,11223344,55667788,99AABBCC,DDEEFF00,13579BDF,2468ACE0",
		SBox:    "test",
		Workers: 5,
	})

	if cfg.SBox != "test" || cfg.Workers != 5 || cfg.KeyFile != "" {
		t.Errorf("Resolve = %+v", cfg)
	}
	k, err := cfg.ResolveKey()
	if err != nil {
		t.Fatalf("ResolveKey: %v", err)
	}
	if k != crypto.DefaultKey {
		t.Errorf("ResolveKey = %x, want DefaultKey", k)
	}
}

func TestParseKeyWords(t *testing.T) {
	testCases := []struct {
		name    string
		words   []string
		wantErr error
	}{
		{"ok", []string{"0", "1", "2", "3", "4", "5", "6", "ffffffff"}, nil},
		{"short", []string{"0", "1"}, crypto.ErrInvalidKeyLength},
		{"long", []string{"0", "1", "2", "3", "4", "5", "6", "7", "8"}, crypto.ErrInvalidKeyLength},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseKeyWords(tc.words)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("ParseKeyWords error = %v, want %v", err, tc.wantErr)
			}
		})
	}

	if _, err := ParseKeyWords([]string{"xyz", "1", "2", "3", "4", "5", "6", "7"}); err == nil {
		t.Error("ParseKeyWords(non-hex) returned nil error")
	}
	if _, err := ParseKeyWords([]string{"100000000", "1", "2", "3", "4", "5", "6", "7"}); err == nil {
		t.Error("ParseKeyWords(33-bit word) returned nil error")
	}
}

func TestLoadKeyFile(t *testing.T) {
	t.Run("raw", func(t *testing.T) {
		path := writeFile(t, "raw.key", crypto.DefaultKey.Bytes())
		k, err := LoadKeyFile(path)
		if err != nil {
			t.Fatalf("LoadKeyFile: %v", err)
		}
		if k != crypto.DefaultKey {
			t.Errorf("LoadKeyFile = %x, want DefaultKey", k)
		}
	})

	t.Run("text", func(t *testing.T) {
		path := writeFile(t, "text.key", []byte("0x12345678 0x9ABCDEF0 0x11223344 0x55667788\n0x99AABBCC,0xDDEEFF00,0x13579BDF,0x2468ACE0\n"))
		k, err := LoadKeyFile(path)
		if err != nil {
			t.Fatalf("LoadKeyFile: %v", err)
		}
		if k != crypto.DefaultKey {
			t.Errorf("LoadKeyFile = %x, want DefaultKey", k)
		}
	})

	t.Run("wrong_size", func(t *testing.T) {
		path := writeFile(t, "short.key", []byte("1 2 3"))
		if _, err := LoadKeyFile(path); !errors.Is(err, crypto.ErrInvalidKeyLength) {
			t.Errorf("LoadKeyFile error = %v, want ErrInvalidKeyLength", err)
		}
	})
}

func TestCipherUnknownSBox(t *testing.T) {
	cfg := Config{SBox: "nope"}
	if _, err := cfg.Cipher(); !errors.Is(err, crypto.ErrUnknownSBox) {
		t.Errorf("Cipher error = %v, want ErrUnknownSBox", err)
	}
}

func TestECB(t *testing.T) {
	cfg := Config{}
	cfg.Resolve(Flags{Workers: 2})
	e, err := cfg.ECB()
	if err != nil {
		t.Fatalf("ECB: %v", err)
	}
	if e.Workers != 2 || e.Cipher.Key() != crypto.DefaultKey {
		t.Errorf("ECB = %+v", e)
	}
}

func TestFlagsValidate(t *testing.T) {
	testCases := []struct {
		name    string
		flags   Flags
		wantErr error
	}{
		{"none", Flags{}, nil},
		{"key", Flags{Key: "1,2,3,4,5,6,7,8"}, nil},
		{"key_file", Flags{KeyFile: "k.key"}, nil},
		{"both", Flags{Key: "1,2,3,4,5,6,7,8", KeyFile: "k.key"}, ErrKeyConflict},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.flags.Validate(); !errors.Is(err, tc.wantErr) {
				t.Errorf("Validate error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestResolveKeyFileFlagOverridesConfigKey(t *testing.T) {
	path := writeFile(t, "raw.key", crypto.DefaultKey.Bytes())
	cfg := Config{Key: []string{"1", "2", "3", "4", "5", "6", "7", "8"}}
	cfg.Resolve(Flags{KeyFile: path})

	if cfg.Key != nil {
		t.Errorf("Key = %v, want nil after -keyfile", cfg.Key)
	}
	k, err := cfg.ResolveKey()
	if err != nil {
		t.Fatalf("ResolveKey: %v", err)
	}
	if k != crypto.DefaultKey {
		t.Errorf("ResolveKey = %x, want DefaultKey", k)
	}
}
