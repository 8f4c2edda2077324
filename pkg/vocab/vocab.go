// Package vocab provides pre-trained BPE vocabularies for compression.
//
// Each vocabulary is trained at first use (and cached) from a small
// representative corpus baked into this package, rather than from a
// generated token table, so the vocabulary a caller gets is always built
// by the same bpe.Train/BuildTrie path exercised by cmd/mkdict.
package vocab

import (
	"sync"

	"github.com/ha1tch/bpetoolkit/pkg/bpe"
	"github.com/ha1tch/bpetoolkit/pkg/pretok"
)

// Language represents a programming language or text type.
type Language int

const (
	LangText       Language = iota // Natural language text (default)
	LangGo                         // Go source code
	LangPython                     // Python source code
	LangJavaScript                 // JavaScript/TypeScript source code
)

func (l Language) String() string {
	switch l {
	case LangGo:
		return "Go"
	case LangPython:
		return "Python"
	case LangJavaScript:
		return "JavaScript"
	default:
		return "Text"
	}
}

const defaultVocabMerges = 512

// Vocabulary is a trained merge table together with the trie built over it,
// ready to encode and decode byte streams against that merge set.
type Vocabulary struct {
	merges     [][]byte
	decodeDict map[uint16][]byte
	handle     *bpe.TrieHandle
}

// Build trains a vocabulary from a representative corpus. The corpus is
// split into word counts by pkg/pretok before training; numMerges bounds
// how many tokens get minted above the 256 raw bytes.
func Build(corpus string, numMerges int) (*Vocabulary, error) {
	counts := pretok.WordCounts(corpus)
	merges, err := bpe.Train(counts, numMerges)
	if err != nil {
		return nil, err
	}

	dict := bpe.DecodeDict(merges)
	handle, err := bpe.BuildTrie(dict)
	if err != nil {
		return nil, err
	}

	return &Vocabulary{merges: merges, decodeDict: dict, handle: handle}, nil
}

// EncodeBatch tokenizes chunks against this vocabulary's trie.
func (v *Vocabulary) EncodeBatch(chunks [][]byte) ([]uint16, error) {
	return v.handle.EncodeBatch(chunks)
}

// Decode expands a token stream back into bytes.
func (v *Vocabulary) Decode(ids []uint16) []byte {
	return bpe.Decode(v.decodeDict, ids)
}

// Merges returns the trained merge list, in mint order, for persistence
// (e.g. embedding in an archive's extra field).
func (v *Vocabulary) Merges() [][]byte {
	return v.merges
}

// FromMerges rebuilds a vocabulary's trie from a previously persisted
// merge list, without retraining.
func FromMerges(merges [][]byte) (*Vocabulary, error) {
	dict := bpe.DecodeDict(merges)
	handle, err := bpe.BuildTrie(dict)
	if err != nil {
		return nil, err
	}
	return &Vocabulary{merges: merges, decodeDict: dict, handle: handle}, nil
}

// Size returns the number of minted tokens (above the 256 raw bytes) in
// this vocabulary.
func (v *Vocabulary) Size() int {
	return len(v.merges)
}

var (
	once       sync.Once
	defaultV   *Vocabulary
	goV        *Vocabulary
	pythonV    *Vocabulary
	jsV        *Vocabulary
	buildError error
)

func buildAll() {
	defaultV, buildError = Build(textCorpus, defaultVocabMerges)
	if buildError != nil {
		return
	}
	goV, buildError = Build(goCorpus, defaultVocabMerges)
	if buildError != nil {
		return
	}
	pythonV, buildError = Build(pythonCorpus, defaultVocabMerges)
	if buildError != nil {
		return
	}
	jsV, buildError = Build(jsCorpus, defaultVocabMerges)
}

// Default returns the default BPE vocabulary for natural language text.
// It panics if training the built-in corpus fails, which would indicate a
// bug in this package rather than anything a caller can recover from.
func Default() *Vocabulary {
	once.Do(buildAll)
	if buildError != nil {
		panic("vocab: failed to build built-in vocabularies: " + buildError.Error())
	}
	return defaultV
}

// ForLanguage returns the BPE vocabulary for the specified language.
func ForLanguage(lang Language) *Vocabulary {
	once.Do(buildAll)
	if buildError != nil {
		panic("vocab: failed to build built-in vocabularies: " + buildError.Error())
	}
	switch lang {
	case LangGo:
		return goV
	case LangPython:
		return pythonV
	case LangJavaScript:
		return jsV
	default:
		return defaultV
	}
}
