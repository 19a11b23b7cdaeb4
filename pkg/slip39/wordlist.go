// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-slip39.
//
// go-slip39 is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

package slip39

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"
)

// WordlistSize is the radix of the mnemonic encoding: 2^10 words.
const WordlistSize = 1 << RadixBits

//go:embed wordlist.txt
var englishWordlist string

// Wordlist is an immutable, ordered list of 1024 distinct words. A word's
// position is the 10-bit value it encodes.
type Wordlist struct {
	words [WordlistSize]string
	index map[string]int
}

var (
	defaultWordlist    *Wordlist
	defaultWordlistErr error
	defaultWordlistOne sync.Once
)

// DefaultWordlist returns the SLIP-39 English wordlist.
func DefaultWordlist() *Wordlist {
	defaultWordlistOne.Do(func() {
		defaultWordlist, defaultWordlistErr = NewWordlist(strings.Fields(englishWordlist))
	})
	if defaultWordlistErr != nil {
		// The embedded list is fixed at build time; a failure here is a broken build.
		panic(defaultWordlistErr)
	}
	return defaultWordlist
}

// NewWordlist builds a Wordlist from exactly 1024 distinct, non-empty,
// lowercase words.
func NewWordlist(words []string) (*Wordlist, error) {
	if len(words) != WordlistSize {
		return nil, fmt.Errorf("wordlist must contain %d words, got %d", WordlistSize, len(words))
	}
	wl := &Wordlist{index: make(map[string]int, WordlistSize)}
	for i, w := range words {
		if w == "" || w != strings.ToLower(w) || strings.ContainsAny(w, " \t\r\n") {
			return nil, fmt.Errorf("wordlist entry %d (%q) must be a non-empty lowercase word", i, w)
		}
		if prev, dup := wl.index[w]; dup {
			return nil, fmt.Errorf("wordlist entry %d duplicates entry %d (%q)", i, prev, w)
		}
		wl.words[i] = w
		wl.index[w] = i
	}
	return wl, nil
}

// Word returns the word encoding value i.
func (wl *Wordlist) Word(i int) (string, error) {
	if i < 0 || i >= WordlistSize {
		return "", fmt.Errorf("word index %d out of range", i)
	}
	return wl.words[i], nil
}

// Index returns the value encoded by word. Lookup is case-insensitive.
func (wl *Wordlist) Index(word string) (int, bool) {
	i, ok := wl.index[strings.ToLower(word)]
	return i, ok
}

// Words returns a copy of the list in index order.
func (wl *Wordlist) Words() []string {
	out := make([]string, WordlistSize)
	copy(out, wl.words[:])
	return out
}
