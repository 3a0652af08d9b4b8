package autocomplete

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/DanielHalachev/WikiSearch/wikierrors"
)

// LoadCompletionTrieFile builds a CompletionTrie from a plain-text file
// of one lowercased vocabulary word per line, the offline counterpart
// to the "dictionary/trie construction scripts" this module treats as
// an external collaborator.
func LoadCompletionTrieFile(path string) (*CompletionTrie, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening completion trie file %s: %v", wikierrors.ErrResource, path, err)
	}
	defer f.Close()

	ct := NewCompletionTrie()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word == "" {
			continue
		}
		ct.Insert(word)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading completion trie file %s: %v", wikierrors.ErrResource, path, err)
	}
	return ct, nil
}

// LoadNextWordTrieFile builds a NextWordTrie from a plain-text file of
// "w1 w2<TAB>freq" lines, one bigram per line.
func LoadNextWordTrieFile(path string) (*NextWordTrie, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening next-word trie file %s: %v", wikierrors.ErrResource, path, err)
	}
	defer f.Close()

	nt := NewNextWordTrie()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := strings.Split(line, "\t")
		if len(parts) != 2 {
			continue
		}
		freq, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			continue
		}
		nt.Insert(strings.TrimSpace(parts[0]), freq)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading next-word trie file %s: %v", wikierrors.ErrResource, path, err)
	}
	return nt, nil
}
