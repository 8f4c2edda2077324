package bpe

// expand performs the §4.5 depth-first expansion of a (possibly minted)
// symbol id down to raw bytes, appending to out and returning the result.
// Recursion terminates because every merge record's children are strictly
// smaller ids than the id they compose.
func expand(m *mergeTable, id symbolID, out []byte) ([]byte, error) {
	if id < firstMintedID {
		return append(out, byte(id)), nil
	}
	left, right, ok := m.childrenOf(id)
	if !ok {
		return nil, newError(ErrInternalInvariant, "expand", "merge table missing record for minted id %d", id)
	}
	out, err := expand(m, left, out)
	if err != nil {
		return nil, err
	}
	return expand(m, right, out)
}
