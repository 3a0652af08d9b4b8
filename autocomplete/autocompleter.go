package autocomplete

import "strings"

const defaultK = 10

// Autocompleter composes a CompletionTrie and a NextWordTrie into the
// single suggest(input) contract the query box calls.
type Autocompleter struct {
	completions *CompletionTrie
	nextWords   *NextWordTrie
	k           int
}

func New(completions *CompletionTrie, nextWords *NextWordTrie, k int) *Autocompleter {
	if k <= 0 {
		k = defaultK
	}
	return &Autocompleter{completions: completions, nextWords: nextWords, k: k}
}

// Suggest returns up to k suggestions for input: next-word suggestions
// when input ends in a space, otherwise word completions of the last
// token, topped up with next-word suggestions if short.
func (a *Autocompleter) Suggest(input string) []string {
	if input == "" {
		return nil
	}
	if strings.HasSuffix(input, " ") {
		return a.suggestNextWords(input, a.k)
	}
	return a.suggestWordCompletions(input)
}

func (a *Autocompleter) suggestWordCompletions(input string) []string {
	prefix := input
	if idx := strings.LastIndex(input, " "); idx != -1 {
		prefix = input[idx+1:]
	}

	suggestions := dedupe(a.completions.Completions(prefix), a.k)
	if len(suggestions) >= a.k {
		return suggestions
	}

	remaining := a.k - len(suggestions)
	more := a.suggestNextWords(input, remaining)
	return dedupe(append(suggestions, more...), a.k)
}

func (a *Autocompleter) suggestNextWords(input string, k int) []string {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return nil
	}

	var out []string
	seen := make(map[string]struct{})
	for i := 0; i < len(parts) && len(out) < k; i++ {
		subphrase := strings.Join(parts[i:], " ") + " "
		for _, match := range a.nextWords.Matches(subphrase) {
			continuation := strings.TrimPrefix(match, subphrase)
			if continuation == "" {
				continue
			}
			if _, dup := seen[continuation]; dup {
				continue
			}
			seen[continuation] = struct{}{}
			out = append(out, continuation)
			if len(out) >= k {
				break
			}
		}
	}
	return out
}

func dedupe(items []string, limit int) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if _, dup := seen[item]; dup {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
		if len(out) >= limit {
			break
		}
	}
	return out
}
