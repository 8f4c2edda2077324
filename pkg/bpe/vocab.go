package bpe

// DecodeDict builds the {token_id -> bytes} mapping §6 requires for
// BuildTrie from Train's output: base bytes 0-255 plus each minted
// token's expansion, in order starting at 256.
func DecodeDict(merges [][]byte) map[uint16][]byte {
	dict := make(map[uint16][]byte, firstMintedID+len(merges))
	for b := 0; b < firstMintedID; b++ {
		dict[uint16(b)] = []byte{byte(b)}
	}
	for i, expansion := range merges {
		dict[uint16(firstMintedID+i)] = expansion
	}
	return dict
}

// Decode concatenates the byte expansion of each id in ids, per Testable
// Property 2's round-trip definition. Unknown ids are skipped.
func Decode(decodeDict map[uint16][]byte, ids []uint16) []byte {
	total := 0
	for _, id := range ids {
		total += len(decodeDict[id])
	}
	out := make([]byte, 0, total)
	for _, id := range ids {
		out = append(out, decodeDict[id]...)
	}
	return out
}

// EncodeDict inverts a decode dict into a {bytes -> token_id} mapping,
// the other half of the persisted-state pair §6 describes.
func EncodeDict(decodeDict map[uint16][]byte) map[string]uint16 {
	enc := make(map[string]uint16, len(decodeDict))
	for id, bs := range decodeDict {
		enc[string(bs)] = id
	}
	return enc
}
