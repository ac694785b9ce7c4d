package gf2

import (
	"fmt"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// WordBits converts a '0'/'1' string into a bitset with bit j = word[j].
func WordBits(word string) (*bitset.BitSet, error) {
	bs := bitset.New(uint(len(word)))
	for j := range len(word) {
		switch word[j] {
		case '0':
		case '1':
			bs.Set(uint(j))
		default:
			return nil, fmt.Errorf("gf2: word %q: character %q is not binary", word, word[j])
		}
	}
	return bs, nil
}

// WordFromIndex renders the low n bits of v as a word, bit j first.
func WordFromIndex(v uint64, n int) string {
	b := make([]byte, n)
	for j := range n {
		if v>>uint(j)&1 == 1 {
			b[j] = '1'
		} else {
			b[j] = '0'
		}
	}
	return string(b)
}

// Weight is the Hamming weight of a word.
func Weight(word string) int {
	return strings.Count(word, "1")
}

// IsZero reports whether the word has no set bits.
func IsZero(word string) bool {
	return Weight(word) == 0
}
