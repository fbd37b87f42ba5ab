package crypto

import (
	"errors"
	"testing"
)

func TestSBoxBijective(t *testing.T) {
	for _, name := range SBoxNames() {
		s, err := SBoxByName(name)
		if err != nil {
			t.Fatalf("SBoxByName(%q): %v", name, err)
		}
		for j := 0; j < 8; j++ {
			var count [16]int
			for i := 0; i < 16; i++ {
				v, err := s.Substitute(j, i)
				if err != nil {
					t.Fatalf("%s: Substitute(%d, %d): %v", name, j, i, err)
				}
				count[v]++
			}
			for v, n := range count {
				if n != 1 {
					t.Errorf("%s row %d: value %d appears %d times", name, j, v, n)
				}
			}
		}
	}
}

func TestNewSBoxRejectsMalformed(t *testing.T) {
	dup := labRows
	dup[4][7] = dup[4][8]

	big := labRows
	big[0][0] = 16

	for name, rows := range map[string][8][16]byte{"duplicate": dup, "out_of_range": big} {
		t.Run(name, func(t *testing.T) {
			if _, err := NewSBox(rows); !errors.Is(err, ErrMalformedTable) {
				t.Errorf("NewSBox error = %v, want ErrMalformedTable", err)
			}
		})
	}
}

func TestSubstituteOutOfRange(t *testing.T) {
	testCases := []struct{ table, nibble int }{
		{-1, 0}, {8, 0}, {0, -1}, {0, 16},
	}
	for _, tc := range testCases {
		if _, err := LabSBox.Substitute(tc.table, tc.nibble); !errors.Is(err, ErrInvalidIndex) {
			t.Errorf("Substitute(%d, %d) error = %v, want ErrInvalidIndex", tc.table, tc.nibble, err)
		}
	}
}

func TestSBoxRowsIsCopy(t *testing.T) {
	rows := LabSBox.Rows()
	rows[0][0] = 15
	if v, _ := LabSBox.Substitute(0, 0); v != 4 {
		t.Errorf("mutating Rows() changed the table: Substitute(0, 0) = %d", v)
	}
}

func TestSBoxByNameUnknown(t *testing.T) {
	if _, err := SBoxByName("cryptopro-a"); !errors.Is(err, ErrUnknownSBox) {
		t.Errorf("SBoxByName error = %v, want ErrUnknownSBox", err)
	}
}

func TestSBoxNames(t *testing.T) {
	names := SBoxNames()
	if len(names) != 2 || names[0] != "lab" || names[1] != "test" {
		t.Errorf("SBoxNames() = %v, want [lab test]", names)
	}
}
