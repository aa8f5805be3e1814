package vectorize

import "strings"

// tokenize splits text into words, lowercases, trims punctuation, and removes
// stop words. Bigrams are formed over the filtered token stream, so a stop
// word never appears inside a phrase term either.
func tokenize(text string) []string {
	words := strings.Fields(text)
	filtered := make([]string, 0, len(words))

	for _, word := range words {
		// Lowercase and trim punctuation
		cleaned := strings.ToLower(strings.Trim(word, ".,!?;:'\"-()[]{}"))

		// Skip stop words and empty strings
		if cleaned != "" && !stopWords[cleaned] {
			filtered = append(filtered, cleaned)
		}
	}

	return filtered
}

// analyze returns the unigram and bigram terms of a text, in order of
// appearance. This is the single tokenization path shared by training and
// projection; the two must agree on term shape or projection would silently
// miss vocabulary entries.
func analyze(text string) []string {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return nil
	}

	terms := make([]string, 0, 2*len(tokens)-1)
	terms = append(terms, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		terms = append(terms, tokens[i]+" "+tokens[i+1])
	}
	return terms
}
