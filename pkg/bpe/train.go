package bpe

import "sort"

// WordCount is one entry of the caller-supplied corpus: a pre-tokenized
// word and its multiplicity. Train consumes an ordered slice of these
// rather than a Go map so that iteration order — and therefore the
// first-encountered tie-break in §4.1 — is under the caller's control;
// Go map iteration order is randomized per process and would silently
// break determinism (Testable Property 3).
type WordCount struct {
	Word  []byte
	Count uint16
}

// WordCountsFromMap builds a deterministic WordCount slice from a Go map,
// ordering by word bytes. Callers that only have a map and don't care
// about insertion-order reproducibility across differently-built maps
// (only within a single sorted ordering) can use this; callers that need
// to match external, order-sensitive training output should build the
// []WordCount slice themselves in the order they require.
func WordCountsFromMap(m map[string]uint16) []WordCount {
	out := make([]WordCount, 0, len(m))
	for w, c := range m {
		out = append(out, WordCount{Word: []byte(w), Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		return string(out[i].Word) < string(out[j].Word)
	})
	return out
}

// Train learns up to numMerges BPE merges from words, per §4.1. It
// returns, for each minted token id (256, 257, ... in order), the raw
// byte expansion of that token. The result has length <= numMerges; it is
// shorter exactly when some merge step found no improving pair (maximum
// pair frequency <= 0).
func Train(words []WordCount, numMerges int, opts ...TrainOption) ([][]byte, error) {
	if numMerges < 0 {
		return nil, newError(ErrMalformedInput, "train", "numMerges must be non-negative, got %d", numMerges)
	}
	if numMerges > maxMerges {
		return nil, newError(ErrResourceExhaustion, "train", "numMerges %d exceeds the 16-bit symbol space (max %d)", numMerges, maxMerges)
	}

	cfg := defaultTrainConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	store := newWordStore()
	idx := newPairIndex(cfg.bucketCount)

	// Pre-pass: populate A.
	for _, wc := range words {
		if len(wc.Word) == 0 {
			continue
		}
		store.add(widen(wc.Word), wc.Count)
	}

	// Statistics pass: one pass over A seeds B.
	for _, rec := range store.words {
		c := int64(rec.count)
		for i := 0; i+1 < len(rec.symbols); i++ {
			idx.add(pair{rec.symbols[i], rec.symbols[i+1]}, c)
		}
	}

	merges := newMergeTable()
	result := make([][]byte, 0, numMerges)

	for k := 0; k < numMerges; k++ {
		winner, freq, ok := idx.scanMax()
		if !ok || freq <= 0 {
			break
		}

		t := merges.record(winner.a, winner.b)

		for i := range store.words {
			rewriteWord(&store.words[i], winner.a, winner.b, t, idx)
		}

		expanded, err := expand(merges, t, make([]byte, 0, store.maxLen))
		if err != nil {
			return nil, wrapError(ErrInternalInvariant, "train", err)
		}
		result = append(result, expanded)
	}

	return result, nil
}
