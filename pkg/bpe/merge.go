package bpe

// mergeRecord is one entry of store E: the two child symbol ids that a
// minted token id replaced.
type mergeRecord struct {
	left, right symbolID
}

// mergeTable is store E, indexed by (id - firstMintedID).
type mergeTable struct {
	records []mergeRecord
}

func newMergeTable() *mergeTable {
	return &mergeTable{}
}

func (m *mergeTable) record(left, right symbolID) symbolID {
	id := symbolID(firstMintedID + len(m.records))
	m.records = append(m.records, mergeRecord{left: left, right: right})
	return id
}

func (m *mergeTable) childrenOf(id symbolID) (left, right symbolID, ok bool) {
	if int(id) < firstMintedID {
		return 0, 0, false
	}
	i := int(id) - firstMintedID
	if i < 0 || i >= len(m.records) {
		return 0, 0, false
	}
	r := m.records[i]
	return r.left, r.right, true
}

// rewriteWord applies the winning merge (a,b)->t to a single word record
// in place, patching idx with the neighbor-frequency deltas described in
// §4.3. It derives every neighbor purely from indices into the word's
// current and original symbol slices, per the Open Question resolution in
// DESIGN.md — no pointer arithmetic is mimicked from the C reference.
func rewriteWord(rec *wordRecord, a, b, t symbolID, idx *pairIndex) {
	symbols := rec.symbols
	n := len(symbols)
	if n < 2 {
		return
	}

	c := int64(rec.count)
	out := make([]symbolID, 0, n)
	i := 0
	for i < n {
		if i < n-1 && symbols[i] == a && symbols[i+1] == b {
			if len(out) > 0 {
				left := out[len(out)-1]
				idx.add(pair{left, a}, -c)
				idx.add(pair{left, t}, c)
			}
			idx.add(pair{a, b}, -c)
			if i+2 < n {
				right := symbols[i+2]
				idx.add(pair{b, right}, -c)
				idx.add(pair{t, right}, c)
			}
			out = append(out, t)
			i += 2
		} else {
			out = append(out, symbols[i])
			i++
		}
	}
	rec.symbols = out
}
