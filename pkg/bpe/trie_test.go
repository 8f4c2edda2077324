package bpe

import "testing"

func basicDecodeDict() map[uint16][]byte {
	dict := make(map[uint16][]byte, 256)
	for b := 0; b < 256; b++ {
		dict[uint16(b)] = []byte{byte(b)}
	}
	return dict
}

// Testable Property 1: byte-identity base case.
func TestEncodeByteIdentity(t *testing.T) {
	handle, err := BuildTrie(basicDecodeDict())
	if err != nil {
		t.Fatalf("BuildTrie: %v", err)
	}
	defer handle.Release()

	for b := 0; b < 256; b++ {
		ids, err := handle.EncodeBatch([][]byte{{byte(b)}})
		if err != nil {
			t.Fatalf("EncodeBatch(%d): %v", b, err)
		}
		if len(ids) != 1 || ids[0] != uint16(b) {
			t.Errorf("encode(%d): got %v, want [%d]", b, ids, b)
		}
	}
}

// S4 — Encode with longest match.
func TestEncodeLongestMatch(t *testing.T) {
	dict := basicDecodeDict()
	dict[256] = []byte("ab")
	dict[257] = []byte("abc")

	handle, err := BuildTrie(dict)
	if err != nil {
		t.Fatalf("BuildTrie: %v", err)
	}
	defer handle.Release()

	ids, err := handle.EncodeBatch([][]byte{[]byte("abcab")})
	if err != nil {
		t.Fatalf("EncodeBatch: %v", err)
	}
	want := []uint16{257, 256}
	if !equalIDs(ids, want) {
		t.Errorf("Encode(\"abcab\"): got %v, want %v", ids, want)
	}
}

// S5 — Encode fallback to raw bytes when the trie only has one token.
func TestEncodeFallback(t *testing.T) {
	dict := map[uint16][]byte{97: []byte("a")}
	handle, err := BuildTrie(dict)
	if err != nil {
		t.Fatalf("BuildTrie: %v", err)
	}
	defer handle.Release()

	ids, err := handle.EncodeBatch([][]byte{[]byte("ab")})
	if err != nil {
		t.Fatalf("EncodeBatch: %v", err)
	}
	want := []uint16{97, 98}
	if !equalIDs(ids, want) {
		t.Errorf("Encode(\"ab\"): got %v, want %v", ids, want)
	}
}

// Testable Property 6: longest match, explicit trie-level check.
func TestTrieLongestMatch(t *testing.T) {
	root := newTrieNode()
	root.insert([]byte("hello"), 1)
	root.insert([]byte("help"), 2)
	root.insert([]byte("he"), 3)

	cases := []struct {
		input   string
		wantID  int32
		wantLen int
	}{
		{"hello world", 1, 5},
		{"help me", 2, 4},
		{"he said", 3, 2},
		{"hero", 3, 2},
		{"hi", noTerminal, 0},
	}

	for _, tc := range cases {
		gotID, gotLen := root.longestMatch([]byte(tc.input), 0)
		if gotID != tc.wantID || gotLen != tc.wantLen {
			t.Errorf("longestMatch(%q): got (%d,%d), want (%d,%d)", tc.input, gotID, gotLen, tc.wantID, tc.wantLen)
		}
	}
}

func TestEncodeStreamMatchesBatch(t *testing.T) {
	dict := basicDecodeDict()
	dict[256] = []byte("th")
	dict[257] = []byte("the")

	handle, err := BuildTrie(dict)
	if err != nil {
		t.Fatalf("BuildTrie: %v", err)
	}
	defer handle.Release()

	chunks := [][]byte{[]byte("the"), []byte(" "), []byte("theater")}

	batch, err := handle.EncodeBatch(chunks)
	if err != nil {
		t.Fatalf("EncodeBatch: %v", err)
	}

	i := 0
	stream, err := handle.EncodeStream(func() ([]byte, bool) {
		if i >= len(chunks) {
			return nil, false
		}
		c := chunks[i]
		i++
		return c, true
	})
	if err != nil {
		t.Fatalf("EncodeStream: %v", err)
	}

	if !equalIDs(batch, stream) {
		t.Errorf("EncodeStream diverged from EncodeBatch: %v vs %v", stream, batch)
	}
}

func TestTrieHandleReleaseIsIdempotentAndRejectsReuse(t *testing.T) {
	handle, err := BuildTrie(basicDecodeDict())
	if err != nil {
		t.Fatalf("BuildTrie: %v", err)
	}

	handle.Release()
	handle.Release() // must not panic

	if _, err := handle.EncodeBatch([][]byte{[]byte("a")}); !IsKind(err, ErrInvalidHandle) {
		t.Fatalf("expected ErrInvalidHandle after release, got %v", err)
	}
}

func TestBuildTrieRejectsEmptyDict(t *testing.T) {
	if _, err := BuildTrie(nil); !IsKind(err, ErrMalformedInput) {
		t.Fatalf("expected ErrMalformedInput for empty dict, got %v", err)
	}
}

// Testable Property 2: round-trip.
func TestDecodeRoundTrip(t *testing.T) {
	dict := basicDecodeDict()
	dict[256] = []byte("he")
	dict[257] = []byte("ll")

	handle, err := BuildTrie(dict)
	if err != nil {
		t.Fatalf("BuildTrie: %v", err)
	}
	defer handle.Release()

	for _, s := range []string{"", "a", "hello", "Hello, World!", "\x00\x01\xff"} {
		ids, err := handle.EncodeBatch([][]byte{[]byte(s)})
		if err != nil {
			t.Fatalf("EncodeBatch(%q): %v", s, err)
		}
		got := string(Decode(dict, ids))
		if got != s {
			t.Errorf("round-trip(%q): got %q", s, got)
		}
	}
}

func equalIDs(a, b []uint16) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
