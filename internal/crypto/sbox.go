package crypto

import (
	"fmt"
	"sort"
)

// SBox is a validated set of eight 4-bit substitution tables.
// Row j substitutes the nibble at bit offset 4*j of the round input.
type SBox struct {
	rows [8][16]byte

	// Pairs of 4-bit rows folded into byte-wide tables, already shifted
	// into position: lookup[k] covers bits 8k..8k+7.
	lookup [4][256]uint32
}

// labRows is the reference table of the ECB file tool.
var labRows = [8][16]byte{
	{4, 10, 9, 2, 13, 8, 0, 14, 6, 11, 1, 12, 7, 15, 5, 3},
	{14, 11, 4, 12, 6, 13, 15, 10, 2, 3, 8, 1, 0, 7, 5, 9},
	{5, 8, 1, 3, 10, 7, 4, 12, 9, 14, 0, 6, 11, 2, 13, 15},
	{7, 13, 10, 1, 0, 8, 9, 15, 14, 4, 6, 12, 11, 2, 5, 3},
	{6, 12, 7, 1, 5, 15, 13, 8, 4, 10, 9, 14, 0, 3, 11, 2},
	{4, 11, 10, 0, 7, 2, 1, 13, 3, 6, 8, 5, 9, 12, 15, 14},
	{13, 11, 4, 1, 3, 15, 5, 9, 0, 10, 14, 7, 6, 8, 2, 12},
	{1, 15, 13, 0, 5, 7, 10, 4, 9, 2, 3, 14, 6, 11, 8, 12},
}

// testParamRows is the GOST R 34.11-94 test parameter set.
var testParamRows = [8][16]byte{
	{4, 10, 9, 2, 13, 8, 0, 14, 6, 11, 1, 12, 7, 15, 5, 3},
	{14, 11, 4, 12, 6, 13, 15, 10, 2, 3, 8, 1, 0, 7, 5, 9},
	{5, 8, 1, 13, 10, 3, 4, 2, 14, 15, 12, 7, 6, 0, 9, 11},
	{7, 13, 10, 1, 0, 8, 9, 15, 14, 4, 6, 12, 11, 2, 5, 3},
	{6, 12, 7, 1, 5, 15, 13, 8, 4, 10, 9, 14, 0, 3, 11, 2},
	{4, 11, 10, 0, 7, 2, 1, 13, 3, 6, 8, 5, 9, 12, 15, 14},
	{13, 11, 4, 1, 3, 15, 5, 9, 0, 10, 14, 7, 6, 8, 2, 12},
	{1, 15, 13, 0, 5, 7, 10, 4, 9, 2, 3, 14, 6, 11, 8, 12},
}

var (
	// LabSBox is the default table set.
	LabSBox = mustSBox(labRows)
	// TestParamSBox is the GOST R 34.11-94 test parameter set.
	TestParamSBox = mustSBox(testParamRows)
)

var namedSBoxes = map[string]*SBox{
	"lab":  LabSBox,
	"test": TestParamSBox,
}

// NewSBox validates rows and builds the lookup tables.
func NewSBox(rows [8][16]byte) (*SBox, error) {
	for j, row := range rows {
		var seen [16]bool
		for i, v := range row {
			if v > 15 {
				return nil, fmt.Errorf("%w: row %d entry %d has value %d", ErrMalformedTable, j, i, v)
			}
			if seen[v] {
				return nil, fmt.Errorf("%w: row %d repeats value %d", ErrMalformedTable, j, v)
			}
			seen[v] = true
		}
	}

	s := &SBox{rows: rows}
	for k := 0; k < 4; k++ {
		lo := rows[2*k]
		hi := rows[2*k+1]
		for i := 0; i < 256; i++ {
			v := uint32(lo[i&0x0F]) | uint32(hi[i>>4])<<4
			s.lookup[k][i] = v << (8 * uint(k))
		}
	}
	return s, nil
}

func mustSBox(rows [8][16]byte) *SBox {
	s, err := NewSBox(rows)
	if err != nil {
		panic(err)
	}
	return s
}

// SBoxByName returns a registered table set ("lab" or "test").
func SBoxByName(name string) (*SBox, error) {
	s, ok := namedSBoxes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSBox, name)
	}
	return s, nil
}

// SBoxNames lists the registered table set names in sorted order.
func SBoxNames() []string {
	names := make([]string, 0, len(namedSBoxes))
	for n := range namedSBoxes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Substitute looks up nibble in table. The round transform never calls it
// with out-of-range arguments; it exists for inspection and tests.
func (s *SBox) Substitute(table, nibble int) (byte, error) {
	if table < 0 || table > 7 || nibble < 0 || nibble > 15 {
		return 0, fmt.Errorf("%w: table %d nibble %d", ErrInvalidIndex, table, nibble)
	}
	return s.rows[table][nibble], nil
}

// Rows returns a copy of the tables.
func (s *SBox) Rows() [8][16]byte {
	return s.rows
}

// substitute runs all eight nibbles of v through their rows.
func (s *SBox) substitute(v uint32) uint32 {
	return s.lookup[0][v&0xFF] |
		s.lookup[1][(v>>8)&0xFF] |
		s.lookup[2][(v>>16)&0xFF] |
		s.lookup[3][(v>>24)&0xFF]
}
