package bpe

import "testing"

func wc(word string, count uint16) WordCount {
	return WordCount{Word: []byte(word), Count: count}
}

// S1 — Trivial training.
func TestTrainTrivial(t *testing.T) {
	merges, err := Train([]WordCount{wc("aa", 5)}, 1)
	if err != nil {
		t.Fatalf("Train: %v", err)
	}
	if len(merges) != 1 {
		t.Fatalf("len(merges): got %d, want 1", len(merges))
	}
	if string(merges[0]) != "aa" {
		t.Errorf("merges[0]: got %q, want %q", merges[0], "aa")
	}
}

// S2 — Deterministic tie-break: whichever pair comes first in the
// caller-supplied order wins on a frequency tie.
func TestTrainTieBreakFirstEncountered(t *testing.T) {
	merges, err := Train([]WordCount{wc("ab", 3), wc("cd", 3)}, 1)
	if err != nil {
		t.Fatalf("Train: %v", err)
	}
	if len(merges) != 1 {
		t.Fatalf("len(merges): got %d, want 1", len(merges))
	}
	if string(merges[0]) != "ab" {
		t.Errorf("merges[0]: got %q, want %q (first-encountered)", merges[0], "ab")
	}

	merges, err = Train([]WordCount{wc("cd", 3), wc("ab", 3)}, 1)
	if err != nil {
		t.Fatalf("Train: %v", err)
	}
	if string(merges[0]) != "cd" {
		t.Errorf("merges[0]: got %q, want %q (order flipped)", merges[0], "cd")
	}
}

// S3 — Overlapping merges: "aaaa" must first merge into two adjacent
// tokens, then (given a second merge budget in the same run) those two
// tokens must merge into one spanning all four original bytes.
func TestTrainOverlappingMerges(t *testing.T) {
	merges, err := Train([]WordCount{wc("aaaa", 1)}, 1)
	if err != nil {
		t.Fatalf("Train: %v", err)
	}
	if len(merges) != 1 || string(merges[0]) != "aa" {
		t.Fatalf("one merge: got %q, want [\"aa\"]", merges)
	}

	merges, err = Train([]WordCount{wc("aaaa", 1)}, 2)
	if err != nil {
		t.Fatalf("Train: %v", err)
	}
	if len(merges) != 2 {
		t.Fatalf("len(merges): got %d, want 2", len(merges))
	}
	if string(merges[0]) != "aa" {
		t.Errorf("merges[0]: got %q, want \"aa\"", merges[0])
	}
	if string(merges[1]) != "aaaa" {
		t.Errorf("merges[1]: got %q, want \"aaaa\" (the second merge must combine the two first-round tokens)", merges[1])
	}
}

// S6 — Frequency weighting: higher count wins even against an otherwise
// plausible competing pair.
func TestTrainFrequencyWeighting(t *testing.T) {
	merges, err := Train([]WordCount{wc("ab", 10), wc("ba", 1)}, 1)
	if err != nil {
		t.Fatalf("Train: %v", err)
	}
	if len(merges) != 1 || string(merges[0]) != "ab" {
		t.Fatalf("merges: got %q, want [\"ab\"]", merges)
	}
}

// Merge count bound (Testable Property 4): training halts early once no
// improving merge remains, and never returns more than requested.
func TestTrainHaltsWhenNoImprovingPair(t *testing.T) {
	merges, err := Train([]WordCount{wc("abc", 1)}, 10)
	if err != nil {
		t.Fatalf("Train: %v", err)
	}
	if len(merges) == 0 {
		t.Fatalf("expected at least one merge for \"abc\"")
	}
	if len(merges) > 10 {
		t.Fatalf("len(merges): got %d, must be <= 10", len(merges))
	}

	merges, err = Train([]WordCount{wc("a", 1)}, 5)
	if err != nil {
		t.Fatalf("Train: %v", err)
	}
	if len(merges) != 0 {
		t.Errorf("single-byte word: got %d merges, want 0", len(merges))
	}
}

// Determinism (Testable Property 3): repeated invocations on identical
// input produce identical output.
func TestTrainDeterministic(t *testing.T) {
	words := []WordCount{wc("the quick brown fox", 7), wc("the lazy dog", 3)}

	first, err := Train(words, 20)
	if err != nil {
		t.Fatalf("Train: %v", err)
	}
	second, err := Train(words, 20)
	if err != nil {
		t.Fatalf("Train: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("len mismatch: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if string(first[i]) != string(second[i]) {
			t.Errorf("merge %d: %q vs %q", i, first[i], second[i])
		}
	}
}

// Vocabulary monotonicity (Testable Property 5): every minted token's
// expansion equals the concatenation of its two children's expansions —
// checked transitively via DecodeDict/Decode round-tripping the merges
// against the original corpus.
func TestTrainVocabularyMonotonicity(t *testing.T) {
	words := []WordCount{wc("banana banana banana", 5)}
	merges, err := Train(words, 10)
	if err != nil {
		t.Fatalf("Train: %v", err)
	}

	dict := DecodeDict(merges)
	handle, err := BuildTrie(dict)
	if err != nil {
		t.Fatalf("BuildTrie: %v", err)
	}
	defer handle.Release()

	ids, err := handle.EncodeBatch([][]byte{words[0].Word})
	if err != nil {
		t.Fatalf("EncodeBatch: %v", err)
	}
	got := Decode(dict, ids)
	if string(got) != string(words[0].Word) {
		t.Errorf("round-trip: got %q, want %q", got, words[0].Word)
	}
}

func TestTrainRejectsNegativeMergeCount(t *testing.T) {
	_, err := Train([]WordCount{wc("a", 1)}, -1)
	if !IsKind(err, ErrMalformedInput) {
		t.Fatalf("expected ErrMalformedInput, got %v", err)
	}
}

func TestTrainRejectsMergeCountAboveSymbolSpace(t *testing.T) {
	_, err := Train([]WordCount{wc("a", 1)}, maxMerges+1)
	if !IsKind(err, ErrResourceExhaustion) {
		t.Fatalf("expected ErrResourceExhaustion, got %v", err)
	}
}

func TestTrainSkipsEmptyWords(t *testing.T) {
	merges, err := Train([]WordCount{wc("", 100), wc("aa", 2)}, 1)
	if err != nil {
		t.Fatalf("Train: %v", err)
	}
	if len(merges) != 1 || string(merges[0]) != "aa" {
		t.Fatalf("merges: got %q, want [\"aa\"]", merges)
	}
}

func BenchmarkTrain(b *testing.B) {
	words := []WordCount{wc("the quick brown fox jumps over the lazy dog", 1000)}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Train(words, 100); err != nil {
			b.Fatal(err)
		}
	}
}
