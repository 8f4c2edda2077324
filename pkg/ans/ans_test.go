package ans

import (
	"math/rand"
	"reflect"
	"testing"
)

func TestCompressDecompressRoundtrip(t *testing.T) {
	cases := [][]uint16{
		{0},
		{0, 0, 0, 0, 0},
		{1, 2, 3, 4, 5},
		makeAllIDs(),
		makeSkewed(4096, 40),
	}

	for i, tokens := range cases {
		compressed, err := Compress(tokens)
		if err != nil {
			t.Fatalf("case %d: Compress: %v", i, err)
		}
		decompressed, err := Decompress(compressed)
		if err != nil {
			t.Fatalf("case %d: Decompress: %v", i, err)
		}
		if !reflect.DeepEqual(decompressed, tokens) {
			t.Fatalf("case %d: roundtrip mismatch: got %v, want %v", i, decompressed, tokens)
		}
	}
}

func TestCompressEmpty(t *testing.T) {
	compressed, err := Compress(nil)
	if err != nil {
		t.Fatalf("Compress(nil): %v", err)
	}
	decompressed, err := Decompress(compressed)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if len(decompressed) != 0 {
		t.Errorf("expected empty output, got %v", decompressed)
	}
}

func TestDecompressInvalid(t *testing.T) {
	cases := [][]byte{
		nil,
		{1, 2, 3},
		{1, 0, 0, 0, 5, 0}, // claims tokens but truncated alphabet/body
	}
	for _, data := range cases {
		if _, err := Decompress(data); err == nil {
			t.Errorf("Decompress(%v): expected error, got nil", data)
		}
	}
}

func TestBuildTokenTable(t *testing.T) {
	counts := map[uint16]uint32{10: 100, 20: 50, 30: 25}
	tab := BuildTokenTable(counts)

	if len(tab.Ids) != 3 {
		t.Fatalf("alphabet size: got %d, want 3", len(tab.Ids))
	}

	var total uint32
	for _, s := range tab.Symbols {
		total += s.Freq
		if s.Freq == 0 {
			t.Error("symbol with zero frequency in nonempty table")
		}
	}
	if total != ProbScale {
		t.Errorf("frequencies sum to %d, want %d", total, ProbScale)
	}

	for id := range counts {
		pos, ok := tab.IndexOf(id)
		if !ok {
			t.Errorf("id %d missing from table", id)
		}
		if tab.Ids[pos] != id {
			t.Errorf("IndexOf(%d) = %d, Ids[%d] = %d", id, pos, pos, tab.Ids[pos])
		}
	}
}

func TestBuildTokenTableSkewed(t *testing.T) {
	counts := map[uint16]uint32{1: 1000000, 2: 1}
	tab := BuildTokenTable(counts)

	rarePos, _ := tab.IndexOf(2)
	if tab.Symbols[rarePos].Freq == 0 {
		t.Error("rare symbol got zero frequency after normalization")
	}
}

func TestBuildTokenTableEmpty(t *testing.T) {
	tab := BuildTokenTable(map[uint16]uint32{})
	if len(tab.Ids) != 0 {
		t.Errorf("expected empty alphabet, got %d ids", len(tab.Ids))
	}
}

func TestEncoderDecoder(t *testing.T) {
	tokens := []uint16{5, 5, 5, 1, 1, 2, 9, 9, 9, 9}
	counts := make(map[uint16]uint32)
	for _, tok := range tokens {
		counts[tok]++
	}
	tab := BuildTokenTable(counts)

	enc := NewEncoder()
	for i := len(tokens) - 1; i >= 0; i-- {
		pos, _ := tab.IndexOf(tokens[i])
		enc.Encode(pos, tab)
	}
	compressed := enc.Finish()

	dec, err := NewDecoder(compressed)
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}
	for i, want := range tokens {
		pos := dec.Decode(tab)
		if got := tab.Ids[pos]; got != want {
			t.Fatalf("token %d: got %d, want %d", i, got, want)
		}
	}
}

func TestEncoderReset(t *testing.T) {
	tab := BuildTokenTable(map[uint16]uint32{1: 1})
	enc := NewEncoder()
	enc.Encode(0, tab)
	enc.Encode(0, tab)
	enc.Reset()
	if enc.state != RansL {
		t.Errorf("state after reset = %d, want %d", enc.state, RansL)
	}
	if len(enc.output) != 0 {
		t.Errorf("output after reset: len %d, want 0", len(enc.output))
	}
}

func TestCompressRatio(t *testing.T) {
	// A token stream dominated by one id should compress well below its
	// naive 2-bytes-per-token size.
	tokens := make([]uint16, 10000)
	for i := range tokens {
		if i%50 == 0 {
			tokens[i] = uint16(i % 7)
		} else {
			tokens[i] = 3
		}
	}

	compressed, err := Compress(tokens)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}

	naive := len(tokens) * 2
	if len(compressed) >= naive {
		t.Errorf("compressed size %d not smaller than naive %d", len(compressed), naive)
	}
}

func BenchmarkCompress(b *testing.B) {
	tokens := makeSkewed(16384, 200)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Compress(tokens)
	}
}

func BenchmarkDecompress(b *testing.B) {
	tokens := makeSkewed(16384, 200)
	compressed, _ := Compress(tokens)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Decompress(compressed)
	}
}

// makeAllIDs returns one occurrence of every id in a small alphabet.
func makeAllIDs() []uint16 {
	ids := make([]uint16, 300)
	for i := range ids {
		ids[i] = uint16(i)
	}
	return ids
}

// makeSkewed returns n tokens drawn from an alphabet-sized id space with a
// Zipf-like skew, mimicking a trained BPE vocabulary's merge-frequency
// distribution.
func makeSkewed(n, alphabet int) []uint16 {
	r := rand.New(rand.NewSource(1))
	tokens := make([]uint16, n)
	for i := range tokens {
		x := r.Float64() * r.Float64()
		tokens[i] = uint16(int(x*float64(alphabet)) % alphabet)
	}
	return tokens
}
