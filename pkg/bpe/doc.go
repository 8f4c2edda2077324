// Package bpe implements the training and inference core of a byte-pair
// encoding tokenizer.
//
// Training (Train) repeatedly finds the most frequent adjacent symbol pair
// across a weighted set of pre-tokenized words and merges it into a new
// token, incrementally maintaining pair-frequency statistics so no full
// rescan of the corpus happens per merge. Inference (TrieHandle.EncodeBatch
// / EncodeStream) segments raw bytes against a byte-level trie built from
// the learned vocabulary, using longest-prefix matching with a guaranteed
// single-byte fallback.
//
// The package is single-threaded internally: Train owns its working state
// exclusively for the duration of one call, and a built *TrieHandle is
// immutable and safe for concurrent encoders once returned from BuildTrie.
package bpe
