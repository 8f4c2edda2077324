package bpe

// symbolID is a 16-bit symbol identifier. Ids 0-255 denote raw bytes;
// ids >= firstMintedID denote tokens minted during training.
type symbolID = uint16

const (
	// firstMintedID is the first id available for a trained merge.
	firstMintedID = 256
	// maxMerges bounds the number of mintable ids: 65535 - 256.
	maxMerges = 0xFFFF - firstMintedID
)

// wordRecord is store A's unit: a word's current symbol sequence together
// with its corpus multiplicity. The original C reference NUL-terminates
// symbols in place of a length field; this implementation uses a plain Go
// slice instead (see DESIGN.md's Open Question resolution), which also
// lifts the "no NUL byte in input" restriction.
type wordRecord struct {
	symbols []symbolID
	count   uint16
}

// wordStore is store A: one record per WordCount handed to Train, in the
// caller's order (duplicate words are kept as separate records). Iterating
// in this order (rather than over a Go map)
// is what makes Train deterministic for a given caller-supplied ordering.
type wordStore struct {
	words  []wordRecord
	maxLen int
}

func newWordStore() *wordStore {
	return &wordStore{}
}

// add inserts a word already widened to symbol ids with its multiplicity.
func (s *wordStore) add(symbols []symbolID, count uint16) {
	if len(symbols) > s.maxLen {
		s.maxLen = len(symbols)
	}
	s.words = append(s.words, wordRecord{symbols: symbols, count: count})
}

// widen converts a raw byte string into its initial one-byte-per-symbol
// sequence.
func widen(word []byte) []symbolID {
	symbols := make([]symbolID, len(word))
	for i, b := range word {
		symbols[i] = symbolID(b)
	}
	return symbols
}
