// Command mkdict trains a BPE vocabulary from a sample corpus and emits it
// as a Go source file, for embedding a pre-trained dictionary the way
// pkg/vocab's built-in vocabularies are built.
//
// Usage:
//
//	mkdict -pkg vocab -var GoTokens -merges 2000 corpus.txt > gotokens.go
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/ha1tch/bpetoolkit/pkg/bpe"
)

var (
	goPackage = flag.String("pkg", "main", "package name for the generated file")
	varName   = flag.String("var", "Tokens", "variable name for the generated token-rank map")
	numMerges = flag.Int("merges", 2000, "number of merges to train")
	output    = flag.String("o", "", "output file (default stdout)")
	help      = flag.Bool("h", false, "display this help")
)

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "mkdict: missing corpus file argument")
		fmt.Fprintln(os.Stderr, "Try 'mkdict -h' for more information.")
		os.Exit(1)
	}

	input, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fatal("cannot read '%s': %v", flag.Arg(0), err)
	}

	tokenRanks := trainBPE(input, *numMerges)

	var buf bytes.Buffer
	writeGoSource(&buf, tokenRanks)

	if *output == "" {
		os.Stdout.Write(buf.Bytes())
		return
	}
	if err := os.WriteFile(*output, buf.Bytes(), 0644); err != nil {
		fatal("cannot write '%s': %v", *output, err)
	}
}

// trainBPE trains a vocabulary over the whole input treated as a single
// weighted word, and returns its {token bytes -> rank} mapping — every
// byte value 0-255 plus each minted merge, in mint order.
func trainBPE(input []byte, numMerges int) map[string]int {
	if numMerges < 0 {
		numMerges = 0
	}

	var words []bpe.WordCount
	if len(input) > 0 {
		words = []bpe.WordCount{{Word: input, Count: 1}}
	}

	merges, err := bpe.Train(words, numMerges)
	if err != nil {
		fatal("training failed: %v", err)
	}

	dict := bpe.DecodeDict(merges)
	enc := bpe.EncodeDict(dict)

	ranks := make(map[string]int, len(enc))
	for tok, id := range enc {
		ranks[tok] = int(id)
	}
	return ranks
}

// goStringLiteral renders s as a Go string literal, escaping bytes that
// aren't valid printable UTF-8 the way the generated source needs to.
func goStringLiteral(s string) string {
	return strconv.Quote(s)
}

// writeGoSource writes a generated Go source file defining a
// map[string]int literal of tokenRanks, ordered by rank for a stable diff
// across regenerations.
func writeGoSource(w *bytes.Buffer, tokenRanks map[string]int) {
	type entry struct {
		token string
		rank  int
	}
	entries := make([]entry, 0, len(tokenRanks))
	for tok, rank := range tokenRanks {
		entries = append(entries, entry{tok, rank})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].rank < entries[j].rank })

	fmt.Fprintf(w, "// Code generated by mkdict; DO NOT EDIT.\n\n")
	fmt.Fprintf(w, "package %s\n\n", *goPackage)
	fmt.Fprintf(w, "var %s = map[string]int{\n", *varName)
	for _, e := range entries {
		fmt.Fprintf(w, "\t%s: %d,\n", goStringLiteral(e.token), e.rank)
	}
	fmt.Fprintf(w, "}\n")
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: mkdict [-pkg name] [-var name] [-merges n] [-o file] corpus.txt

Train a BPE vocabulary from corpus.txt and emit it as Go source.

Options:
  -pkg name     package name for the generated file (default "main")
  -var name     variable name for the generated map (default "Tokens")
  -merges n     number of merges to train (default 2000)
  -o file       output file (default stdout)
  -h            display this help

`)
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "mkdict: "+format+"\n", args...)
	os.Exit(1)
}
