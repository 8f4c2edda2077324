package vocab

// These corpora stand in for the large token tables a production build
// would ship pre-trained; they're just big enough to give each
// vocabulary's trie a useful set of multi-byte merges for its domain.

const textCorpus = `
The quick brown fox jumps over the lazy dog. This is a sample of English
text used to train a general-purpose byte pair encoding vocabulary. It
contains common words, punctuation, and sentence structure so that the
resulting merges capture frequent substrings such as "the", "ing", "tion",
and "ed" endings. Compression of natural language documents, comments, and
other free text benefits from a vocabulary trained on similar material.
Repetition helps the trainer discover stable merges: the the the quick
quick brown brown fox fox over over lazy lazy dog dog text text training
training compression compression vocabulary vocabulary.
`

const goCorpus = `
package main

import (
	"fmt"
	"strings"
)

type Server struct {
	Name string
	Port int
}

func NewServer(name string, port int) *Server {
	return &Server{Name: name, Port: port}
}

func (s *Server) Start() error {
	fmt.Printf("starting server %s on port %d\n", s.Name, s.Port)
	return nil
}

func main() {
	srv := NewServer("example", 8080)
	if err := srv.Start(); err != nil {
		fmt.Println("error:", err)
	}
	_ = strings.ToUpper("hello")
}
`

const pythonCorpus = `
import os
import sys

class Server:
    def __init__(self, name, port):
        self.name = name
        self.port = port

    def start(self):
        print(f"starting server {self.name} on port {self.port}")
        return True

def main():
    srv = Server("example", 8080)
    if not srv.start():
        sys.exit(1)

if __name__ == "__main__":
    main()
`

const jsCorpus = `
function createServer(name, port) {
  return {
    name: name,
    port: port,
    start: function () {
      console.log("starting server " + name + " on port " + port);
      return true;
    },
  };
}

const srv = createServer("example", 8080);
if (!srv.start()) {
  throw new Error("failed to start server");
}

export default createServer;
`
