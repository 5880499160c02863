// Package dna implements the 2-bit DNA alphabet, a bit-packed sequence type,
// and sub-range views over it with a word-alignment-agnostic longest-common-
// prefix match.
package dna

import "fmt"

// Letter is a small integer over the DNA alphabet (plus an optional N).
// The EPS sentinel is used to label deletion edges and is never stored in a
// PackedString.
type Letter uint8

const (
	A Letter = iota
	C
	G
	T
	N // only valid when Alphabet.Size == 5

	// EPS is the deletion-edge sentinel; never appears in stored sequences.
	EPS Letter = 0xFF
)

// Alphabet describes the active letter set and its bit width.
type Alphabet struct {
	Size      int // 4 (ACGT) or 5 (ACGTN)
	bitsPerLt uint
}

// DefaultAlphabet is the plain 4-letter DNA alphabet.
var DefaultAlphabet = NewAlphabet(4)

// NewAlphabet returns the alphabet of the given size (4 or 5), with
// BitsPerLetter = ceil(log2(size)).
func NewAlphabet(size int) Alphabet {
	if size != 4 && size != 5 {
		panic(fmt.Sprintf("dna: unsupported alphabet size %d", size))
	}
	bits := uint(1)
	for (1 << bits) < size {
		bits++
	}
	return Alphabet{Size: size, bitsPerLt: bits}
}

// BitsPerLetter returns ceil(log2(Size)).
func (a Alphabet) BitsPerLetter() uint { return a.bitsPerLt }

// FromByte decodes an ASCII DNA character into a Letter.
func (a Alphabet) FromByte(c byte) (Letter, error) {
	switch c {
	case 'A', 'a':
		return A, nil
	case 'C', 'c':
		return C, nil
	case 'G', 'g':
		return G, nil
	case 'T', 't':
		return T, nil
	case 'N', 'n':
		if a.Size == 5 {
			return N, nil
		}
	}
	return 0, fmt.Errorf("dna: invalid letter %q for alphabet of size %d", c, a.Size)
}

// ToByte encodes a Letter back to its uppercase ASCII character.
func (l Letter) ToByte() byte {
	switch l {
	case A:
		return 'A'
	case C:
		return 'C'
	case G:
		return 'G'
	case T:
		return 'T'
	case N:
		return 'N'
	default:
		return '?'
	}
}

func (l Letter) String() string { return string(l.ToByte()) }
