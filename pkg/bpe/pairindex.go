package bpe

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

const defaultBucketCount = 1 << 20 // matches the reference's BIGRAM_TABLE_SIZE
const minBucketCount = 1 << 16

// pair is the ordered couple (a, b) of symbol ids that store B keys on.
type pair struct {
	a, b symbolID
}

// pairEntry is one chain link in a pair index bucket. seq records creation
// order across the whole table (not just its chain) so scanMax's
// first-encountered tie-break reflects the order pairs were first seen by
// the caller, independent of hash bucket layout — see DESIGN.md's note on
// this Open Question resolution.
type pairEntry struct {
	p    pair
	freq int64
	seq  uint32
}

// pairIndex is store B: a chained hash table from pair to accumulated
// frequency. Entries are never removed, even once their frequency falls
// to zero or below — stale entries are simply ignored by scanMax, per
// §4.2 of the spec. The hash function is xxhash over the pair's 4-byte
// little-endian encoding rather than the reference's DJB2 loop; the spec
// explicitly permits this (§5 "MAY replace B's chained hash table...
// provided the operations... are preserved semantically").
type pairIndex struct {
	buckets [][]pairEntry
	mask    uint64
	nextSeq uint32
}

func newPairIndex(bucketCount uint32) *pairIndex {
	return &pairIndex{
		buckets: make([][]pairEntry, bucketCount),
		mask:    uint64(bucketCount - 1),
	}
}

func (idx *pairIndex) hash(p pair) uint64 {
	var buf [4]byte
	binary.LittleEndian.PutUint16(buf[0:2], p.a)
	binary.LittleEndian.PutUint16(buf[2:4], p.b)
	return xxhash.Sum64(buf[:]) & idx.mask
}

// add accumulates delta (which may be negative) into the entry for p,
// creating it on first use.
func (idx *pairIndex) add(p pair, delta int64) {
	if delta == 0 {
		return
	}
	h := idx.hash(p)
	chain := idx.buckets[h]
	for i := range chain {
		if chain[i].p == p {
			chain[i].freq += delta
			return
		}
	}
	idx.buckets[h] = append(chain, pairEntry{p: p, freq: delta, seq: idx.nextSeq})
	idx.nextSeq++
}

// scanMax performs a full linear scan, returning the highest-frequency
// pair and its frequency, breaking ties by first-encountered (lowest
// creation sequence). ok is false if the index has no entries at all
// (distinct from every entry being zero/negative).
func (idx *pairIndex) scanMax() (p pair, freq int64, ok bool) {
	bestSeq := uint32(0)
	found := false
	var bestFreq int64
	for _, chain := range idx.buckets {
		for _, e := range chain {
			if !found || e.freq > bestFreq || (e.freq == bestFreq && e.seq < bestSeq) {
				bestFreq = e.freq
				bestSeq = e.seq
				p = e.p
				found = true
			}
		}
	}
	return p, bestFreq, found
}
