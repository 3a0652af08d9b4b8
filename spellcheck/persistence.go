package spellcheck

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/DanielHalachev/WikiSearch/schema"
	"github.com/DanielHalachev/WikiSearch/wikierrors"
)

// LoadDictionaryFile reads a word list ordered by corpus frequency, one
// "token<TAB>freq" pair per line.
func LoadDictionaryFile(path string) ([]schema.DictionaryEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening spell dictionary %s: %v", wikierrors.ErrResource, path, err)
	}
	defer f.Close()

	var entries []schema.DictionaryEntry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := strings.Split(line, "\t")
		token := strings.TrimSpace(parts[0])
		if token == "" {
			continue
		}
		freq := 0
		if len(parts) > 1 {
			if n, err := strconv.Atoi(strings.TrimSpace(parts[1])); err == nil {
				freq = n
			}
		}
		entries = append(entries, schema.DictionaryEntry{Token: token, Freq: freq})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading spell dictionary %s: %v", wikierrors.ErrResource, path, err)
	}
	return entries, nil
}
