// Package ans provides entropy coding using rANS (range Asymmetric Numeral
// Systems) over a BPE token-id alphabet.
//
// Unlike a byte-oriented coder, the symbol table here is built from the
// token ids that actually occur in a given batch rather than a fixed
// 256-entry (or 65536-entry) array: a short stream minted from a small
// vocabulary carries a short table, and a stream that uses the full 16-bit
// id space carries a full one.
package ans

import (
	"encoding/binary"
	"errors"
	"sort"
)

const (
	ProbBits  = 14
	ProbScale = 1 << ProbBits
	RansL     = 1 << 23
)

var (
	ErrEmpty     = errors.New("ans: empty input")
	ErrCorrupted = errors.New("ans: corrupted data")
)

// Symbol contains frequency information for encoding/decoding.
type Symbol struct {
	CumFreq uint32
	Freq    uint32
}

// TokenTable holds the encode/decode tables for the token ids observed in
// one batch. Ids holds the alphabet in ascending order; Symbols and
// CumToSym index into it by position, not by token id, since ids can range
// across the full uint16 space while a batch typically uses only a few of
// them.
type TokenTable struct {
	Ids      []uint16
	index    map[uint16]int
	Symbols  []Symbol
	CumToSym []uint16 // holds a position into Ids/Symbols
}

// BuildTokenTable creates a symbol table from per-token-id frequency counts.
func BuildTokenTable(counts map[uint16]uint32) *TokenTable {
	ids := make([]uint16, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	tab := &TokenTable{
		Ids:      ids,
		index:    make(map[uint16]int, len(ids)),
		Symbols:  make([]Symbol, len(ids)),
		CumToSym: make([]uint16, ProbScale),
	}
	for i, id := range ids {
		tab.index[id] = i
	}
	if len(ids) == 0 {
		return tab
	}

	var total uint64
	for _, id := range ids {
		total += uint64(counts[id])
	}
	if total == 0 {
		tab.Symbols[0] = Symbol{Freq: ProbScale}
		for i := range tab.CumToSym {
			tab.CumToSym[i] = 0
		}
		return tab
	}

	// Normalize counts to ProbScale, same rounding rule as the original
	// byte-alphabet coder: floor the ratio, clamp zero-frequency
	// occurring symbols up to 1, and correct the largest bucket so the
	// table sums exactly to ProbScale.
	normalized := make([]uint32, len(ids))
	var normTotal uint32
	for i, id := range ids {
		c := counts[id]
		n := uint32((uint64(c) * ProbScale) / total)
		if n == 0 {
			n = 1
		}
		normalized[i] = n
		normTotal += n
	}
	if normTotal != ProbScale {
		maxIdx := 0
		for i, n := range normalized {
			if n > normalized[maxIdx] {
				maxIdx = i
			}
		}
		if normTotal > ProbScale {
			normalized[maxIdx] -= normTotal - ProbScale
		} else {
			normalized[maxIdx] += ProbScale - normTotal
		}
	}

	var cumFreq uint32
	for i, n := range normalized {
		tab.Symbols[i] = Symbol{CumFreq: cumFreq, Freq: n}
		for j := uint32(0); j < n; j++ {
			tab.CumToSym[cumFreq+j] = uint16(i)
		}
		cumFreq += n
	}

	return tab
}

// IndexOf returns the table position for a token id.
func (t *TokenTable) IndexOf(id uint16) (int, bool) {
	i, ok := t.index[id]
	return i, ok
}

// === ENCODER ===

// Encoder encodes token positions using rANS.
type Encoder struct {
	state  uint32
	output []byte
}

// NewEncoder creates a new encoder.
func NewEncoder() *Encoder {
	return &Encoder{state: RansL}
}

// Reset resets the encoder for reuse.
func (e *Encoder) Reset() {
	e.state = RansL
	e.output = e.output[:0]
}

// Encode encodes a single token, given its table position (see TokenTable.IndexOf).
func (e *Encoder) Encode(pos int, tab *TokenTable) {
	s := &tab.Symbols[pos]
	freq := s.Freq
	if freq == 0 {
		return
	}

	maxState := ((RansL >> ProbBits) << 8) * freq
	for e.state >= maxState {
		e.output = append(e.output, byte(e.state))
		e.state >>= 8
	}

	e.state = ((e.state / freq) << ProbBits) + s.CumFreq + (e.state % freq)
}

// Finish finalizes encoding and returns the compressed data.
func (e *Encoder) Finish() []byte {
	stateBytes := make([]byte, 4)
	binary.LittleEndian.PutUint32(stateBytes, e.state)

	for i, j := 0, len(e.output)-1; i < j; i, j = i+1, j-1 {
		e.output[i], e.output[j] = e.output[j], e.output[i]
	}

	result := make([]byte, 4+len(e.output))
	copy(result[:4], stateBytes)
	copy(result[4:], e.output)
	return result
}

// === DECODER ===

// Decoder decodes token positions using rANS.
type Decoder struct {
	state uint32
	data  []byte
	pos   int
}

// NewDecoder creates a decoder from compressed data.
func NewDecoder(data []byte) (*Decoder, error) {
	if len(data) < 4 {
		return nil, ErrCorrupted
	}
	return &Decoder{
		state: binary.LittleEndian.Uint32(data[:4]),
		data:  data,
		pos:   4,
	}, nil
}

// Decode decodes a single token and returns its table position.
func (d *Decoder) Decode(tab *TokenTable) int {
	cumFreq := d.state & (ProbScale - 1)
	pos := tab.CumToSym[cumFreq]
	s := &tab.Symbols[pos]

	d.state = s.Freq*(d.state>>ProbBits) + cumFreq - s.CumFreq

	for d.state < RansL && d.pos < len(d.data) {
		d.state = (d.state << 8) | uint32(d.data[d.pos])
		d.pos++
	}

	return int(pos)
}

// === BATCH API ===

// Compress entropy-codes a BPE token stream. The encoded form carries its
// own alphabet (the distinct token ids used and their normalized
// frequencies), so Decompress needs nothing beyond the bytes it returns.
func Compress(tokens []uint16) ([]byte, error) {
	if len(tokens) == 0 {
		return []byte{0, 0, 0, 0}, nil
	}

	counts := make(map[uint16]uint32)
	for _, tok := range tokens {
		counts[tok]++
	}
	tab := BuildTokenTable(counts)

	enc := NewEncoder()
	for i := len(tokens) - 1; i >= 0; i-- {
		pos, ok := tab.IndexOf(tokens[i])
		if !ok {
			return nil, ErrCorrupted
		}
		enc.Encode(pos, tab)
	}
	compressed := enc.Finish()

	// Output: [tokenCount:4][alphabetSize:2][(id:2, freq:2) per alphabet entry][compressed]
	header := make([]byte, 6+len(tab.Ids)*4)
	binary.LittleEndian.PutUint32(header[:4], uint32(len(tokens)))
	binary.LittleEndian.PutUint16(header[4:6], uint16(len(tab.Ids)))
	pos := 6
	for i, id := range tab.Ids {
		binary.LittleEndian.PutUint16(header[pos:], id)
		binary.LittleEndian.PutUint16(header[pos+2:], uint16(tab.Symbols[i].Freq))
		pos += 4
	}

	output := make([]byte, len(header)+len(compressed))
	copy(output, header)
	copy(output[len(header):], compressed)
	return output, nil
}

// Decompress reconstructs a token stream from rANS-compressed data.
func Decompress(data []byte) ([]uint16, error) {
	if len(data) < 4 {
		return nil, ErrCorrupted
	}

	tokenCount := int(binary.LittleEndian.Uint32(data[:4]))
	if tokenCount == 0 {
		return []uint16{}, nil
	}
	if len(data) < 6 {
		return nil, ErrCorrupted
	}

	alphabetSize := int(binary.LittleEndian.Uint16(data[4:6]))
	headerLen := 6 + alphabetSize*4
	if len(data) < headerLen+4 {
		return nil, ErrCorrupted
	}

	counts := make(map[uint16]uint32, alphabetSize)
	pos := 6
	for i := 0; i < alphabetSize; i++ {
		id := binary.LittleEndian.Uint16(data[pos:])
		freq := binary.LittleEndian.Uint16(data[pos+2:])
		counts[id] = uint32(freq)
		pos += 4
	}
	tab := BuildTokenTable(counts)

	dec, err := NewDecoder(data[headerLen:])
	if err != nil {
		return nil, err
	}

	tokens := make([]uint16, tokenCount)
	for i := 0; i < tokenCount; i++ {
		p := dec.Decode(tab)
		tokens[i] = tab.Ids[p]
	}

	return tokens, nil
}
