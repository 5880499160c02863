package dna

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseAndAt(t *testing.T) {
	s, err := ParseString(DefaultAlphabet, "acgtacgtac")
	require.NoError(t, err)
	require.Equal(t, 10, s.Len())
	want := "acgtacgtac"
	for i := 0; i < s.Len(); i++ {
		require.Equal(t, want[i], s.At(i).ToByte()|0x20) // ToByte is uppercase; lowercase it
	}
}

func TestViewString(t *testing.T) {
	s, err := ParseString(DefaultAlphabet, "ACGTACGTAC")
	require.NoError(t, err)
	v := s.Sub(4, 4)
	require.Equal(t, "ACGT", v.String())
}

func TestMatchLenExact(t *testing.T) {
	a, _ := ParseString(DefaultAlphabet, "ACGTACGT")
	b, _ := ParseString(DefaultAlphabet, "ACGTTTTT")
	require.Equal(t, 4, MatchLen(a.View(), b.View()))
}

func TestMatchLenUnaligned(t *testing.T) {
	a, _ := ParseString(DefaultAlphabet, "TACGTACGTT")
	b, _ := ParseString(DefaultAlphabet, "GACGTACGTG")
	// both views start at offset 1, length 8, identical "ACGTACGT"
	va := a.Sub(1, 8)
	vb := b.Sub(1, 8)
	require.Equal(t, 8, MatchLen(va, vb))
}

func TestInvalidLetter(t *testing.T) {
	_, err := ParseString(DefaultAlphabet, "ACGX")
	require.Error(t, err)
}
