package bpe

import (
	"encoding/binary"
	"sort"
	"sync"

	"github.com/dchest/siphash"
)

// trieNode is one node of store F: a fixed 256-way byte trie. noTerminal
// is the sentinel marking "no token ends here".
const noTerminal = -1

type trieNode struct {
	children [256]*trieNode
	tokenID  int32
}

func newTrieNode() *trieNode {
	return &trieNode{tokenID: noTerminal}
}

func (n *trieNode) insert(token []byte, id uint16) {
	node := n
	for _, b := range token {
		child := node.children[b]
		if child == nil {
			child = newTrieNode()
			node.children[b] = child
		}
		node = child
	}
	node.tokenID = int32(id)
}

// longestMatch descends as far as input allows from offset, returning the
// deepest terminal encountered along the way (§4.6). consumed is 0 and
// tokenID is noTerminal if no terminal was ever reached.
func (n *trieNode) longestMatch(data []byte, offset int) (tokenID int32, consumed int) {
	node := n
	best := int32(noTerminal)
	bestLen := 0
	for i := offset; i < len(data); i++ {
		child := node.children[data[i]]
		if child == nil {
			break
		}
		node = child
		if node.tokenID != noTerminal {
			best = node.tokenID
			bestLen = i - offset + 1
		}
	}
	return best, bestLen
}

// sipK0/sipK1 are fixed keys for the handle fingerprint. They need not be
// secret: the fingerprint identifies a vocabulary, it does not
// authenticate against an adversary.
const (
	sipK0 = 0x746f6b656e697a65
	sipK1 = 0x6861006e646c6521
)

func fingerprintDecodeDict(decodeDict map[uint16][]byte) uint64 {
	ids := make([]uint16, 0, len(decodeDict))
	for id := range decodeDict {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	buf := make([]byte, 0, len(ids)*4)
	var idBuf [2]byte
	for _, id := range ids {
		binary.LittleEndian.PutUint16(idBuf[:], id)
		buf = append(buf, idBuf[:]...)
		buf = append(buf, decodeDict[id]...)
		buf = append(buf, 0)
	}
	return siphash.Hash(sipK0, sipK1, buf)
}

// TrieHandle is the scoped-ownership surface over a built trie (§9): it
// offers exactly one release path, guards against double-release and
// use-after-release, and tags itself with a fingerprint of the vocabulary
// it was built from. Encoding does not compare fingerprints, so a handle
// built from another vocabulary is not rejected; the fingerprint is only
// exposed through Fingerprint.
type TrieHandle struct {
	mu          sync.Mutex
	root        *trieNode
	released    bool
	fingerprint uint64
	maxTokenLen int
}

// BuildTrie constructs store F from a decode dictionary (token id -> raw
// bytes). Ids 0-255 should be present with their single-byte values so
// every input byte is guaranteed a match; Encode's single-byte fallback
// makes this a should, not a must.
func BuildTrie(decodeDict map[uint16][]byte) (*TrieHandle, error) {
	if len(decodeDict) == 0 {
		return nil, newError(ErrMalformedInput, "build_trie", "decode dict is empty")
	}

	root := newTrieNode()
	maxLen := 0
	for id, bs := range decodeDict {
		if len(bs) == 0 {
			return nil, newError(ErrMalformedInput, "build_trie", "token %d has an empty byte sequence", id)
		}
		root.insert(bs, id)
		if len(bs) > maxLen {
			maxLen = len(bs)
		}
	}

	return &TrieHandle{
		root:        root,
		fingerprint: fingerprintDecodeDict(decodeDict),
		maxTokenLen: maxLen,
	}, nil
}

// Release marks the handle unusable. Idempotent: releasing an
// already-released handle is a no-op, not an error.
func (h *TrieHandle) Release() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.released = true
	h.root = nil
}

func (h *TrieHandle) checkUsable(stage string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.released || h.root == nil {
		return newError(ErrInvalidHandle, stage, "trie handle is released or was never built")
	}
	return nil
}

// Fingerprint returns the handle's vocabulary fingerprint, useful for
// callers that want to assert two handles describe the same vocabulary
// without comparing the full decode dict.
func (h *TrieHandle) Fingerprint() uint64 {
	return h.fingerprint
}
