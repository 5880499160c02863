package dna

import "math/bits"

// wordBits is the machine word size used for packing.
const wordBits = 64

// PackedString is a sequence of Letters packed LSB-first into 64-bit words,
// wordBits/BitsPerLetter letters per word.
type PackedString struct {
	alpha  Alphabet
	words  []uint64
	length int
}

// NewPackedString packs a slice of Letters under the given alphabet.
func NewPackedString(alpha Alphabet, letters []Letter) *PackedString {
	p := &PackedString{alpha: alpha, length: len(letters)}
	perWord := wordBits / alpha.BitsPerLetter()
	p.words = make([]uint64, (len(letters)+int(perWord)-1)/int(perWord))
	for i, l := range letters {
		p.set(i, l)
	}
	return p
}

// ParseString packs a raw ASCII DNA string.
func ParseString(alpha Alphabet, s string) (*PackedString, error) {
	letters := make([]Letter, len(s))
	for i := 0; i < len(s); i++ {
		l, err := alpha.FromByte(s[i])
		if err != nil {
			return nil, err
		}
		letters[i] = l
	}
	return NewPackedString(alpha, letters), nil
}

// Len returns the number of letters.
func (p *PackedString) Len() int { return p.length }

// Alphabet returns the alphabet this string was packed under.
func (p *PackedString) Alphabet() Alphabet { return p.alpha }

func (p *PackedString) set(i int, l Letter) {
	perWord := wordBits / p.alpha.BitsPerLetter()
	word := i / int(perWord)
	shift := uint(i%int(perWord)) * p.alpha.BitsPerLetter()
	mask := uint64(1)<<p.alpha.BitsPerLetter() - 1
	p.words[word] &^= mask << shift
	p.words[word] |= uint64(l) << shift
}

// At returns the letter at position i.
func (p *PackedString) At(i int) Letter {
	perWord := wordBits / p.alpha.BitsPerLetter()
	word := i / int(perWord)
	shift := uint(i%int(perWord)) * p.alpha.BitsPerLetter()
	mask := uint64(1)<<p.alpha.BitsPerLetter() - 1
	return Letter((p.words[word] >> shift) & mask)
}

// View returns the full string as a View.
func (p *PackedString) View() View {
	return View{base: p, offset: 0, length: p.length}
}

// Sub returns the sub-range [offset, offset+length) as a View.
func (p *PackedString) Sub(offset, length int) View {
	if offset < 0 || length < 0 || offset+length > p.length {
		panic("dna: Sub out of range")
	}
	return View{base: p, offset: offset, length: length}
}

// View is a (base, offset, length) triple over a PackedString. Forward
// iteration over a view yields exactly `length` letters, identical to random
// access base[offset..offset+length).
type View struct {
	base   *PackedString
	offset int
	length int
}

// Len returns the number of letters in the view.
func (v View) Len() int { return v.length }

// At returns the i-th letter of the view (0 <= i < Len()).
func (v View) At(i int) Letter {
	if i < 0 || i >= v.length {
		panic("dna: View.At out of range")
	}
	return v.base.At(v.offset + i)
}

// Letters materializes the view as a []Letter slice.
func (v View) Letters() []Letter {
	out := make([]Letter, v.length)
	for i := range out {
		out[i] = v.At(i)
	}
	return out
}

func (v View) String() string {
	buf := make([]byte, v.length)
	for i := range buf {
		buf[i] = v.At(i).ToByte()
	}
	return string(buf)
}

// MatchLen returns the length of the longest common prefix of v and o,
// correct regardless of the word alignment of either view.
func MatchLen(v, o View) int {
	n := v.length
	if o.length < n {
		n = o.length
	}
	// Fast path: both views start on the same bit-phase of their backing
	// words and share the same alphabet, so whole words can be XOR-compared.
	bpl := v.base.alpha.BitsPerLetter()
	if bpl == o.base.alpha.BitsPerLetter() {
		perWord := int(wordBits / bpl)
		if v.offset%perWord == o.offset%perWord {
			i := 0
			for i+perWord <= n && (v.offset+i)%perWord == 0 {
				wv := v.base.words[(v.offset+i)/perWord]
				wo := o.base.words[(o.offset+i)/perWord]
				if wv == wo {
					i += perWord
					continue
				}
				diff := wv ^ wo
				// number of fully-matching letters within this word
				matched := bits.TrailingZeros64(diff) / int(bpl)
				return i + matched
			}
			for ; i < n; i++ {
				if v.At(i) != o.At(i) {
					return i
				}
			}
			return i
		}
	}
	// Slow, alignment-agnostic path.
	for i := 0; i < n; i++ {
		if v.At(i) != o.At(i) {
			return i
		}
	}
	return n
}
