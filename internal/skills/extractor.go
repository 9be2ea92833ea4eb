package skills

import "strings"

// Extractor finds vocabulary entries in text.
type Extractor struct {
	vocab *Vocabulary
}

// NewExtractor creates an Extractor over vocab. A nil vocab selects DefaultVocabulary.
func NewExtractor(vocab *Vocabulary) *Extractor {
	if vocab == nil {
		vocab = DefaultVocabulary()
	}
	return &Extractor{vocab: vocab}
}

// Vocabulary returns the vocabulary the extractor matches against.
func (e *Extractor) Vocabulary() *Vocabulary {
	return e.vocab
}

// Extract returns the canonical names of every vocabulary entry contained in text,
// compared case-insensitively, in vocabulary order. Entries that are substrings of
// each other (Java, JavaScript) match independently.
func (e *Extractor) Extract(text string) []string {
	found := make([]string, 0)
	if text == "" {
		return found
	}

	lower := strings.ToLower(text)
	for i, entry := range e.vocab.lower {
		if strings.Contains(lower, entry) {
			found = append(found, e.vocab.skills[i])
		}
	}
	return found
}
