// Package skills recognizes canonical skill names in free text.
package skills

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed vocabulary.yaml
var defaultVocabularyYAML []byte

// Vocabulary is an ordered, duplicate-free list of canonical skill names.
// It is immutable once built and safe to share between goroutines.
type Vocabulary struct {
	skills []string
	lower  []string
}

// vocabularyFile is the on-disk YAML layout.
type vocabularyFile struct {
	Skills []string `yaml:"skills"`
}

// VocabularyError reports a vocabulary that cannot be loaded or is malformed.
type VocabularyError struct {
	Source  string
	Message string
	Cause   error
}

func (e *VocabularyError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("vocabulary %s: %s: %v", e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("vocabulary %s: %s", e.Source, e.Message)
}

func (e *VocabularyError) Unwrap() error {
	return e.Cause
}

// NewVocabulary builds a vocabulary from canonical names, keeping their order.
// Entries are trimmed; blank entries and case-insensitive duplicates are rejected.
func NewVocabulary(names []string) (*Vocabulary, error) {
	if len(names) == 0 {
		return nil, &VocabularyError{Source: "(inline)", Message: "no skills defined"}
	}

	v := &Vocabulary{
		skills: make([]string, 0, len(names)),
		lower:  make([]string, 0, len(names)),
	}
	seen := make(map[string]bool, len(names))

	for i, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, &VocabularyError{Source: "(inline)", Message: fmt.Sprintf("entry %d is empty", i)}
		}
		lower := strings.ToLower(name)
		if seen[lower] {
			return nil, &VocabularyError{Source: "(inline)", Message: fmt.Sprintf("duplicate entry %q", name)}
		}
		seen[lower] = true
		v.skills = append(v.skills, name)
		v.lower = append(v.lower, lower)
	}

	return v, nil
}

// ParseVocabulary parses a YAML document of the form `skills: [...]`.
func ParseVocabulary(data []byte) (*Vocabulary, error) {
	var file vocabularyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, &VocabularyError{Source: "(yaml)", Message: "failed to parse", Cause: err}
	}
	return NewVocabulary(file.Skills)
}

// LoadVocabulary reads a YAML vocabulary file.
func LoadVocabulary(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &VocabularyError{Source: path, Message: "failed to read", Cause: err}
	}

	v, err := ParseVocabulary(data)
	if err != nil {
		if ve, ok := err.(*VocabularyError); ok {
			ve.Source = path
		}
		return nil, err
	}
	return v, nil
}

var defaultVocabulary = sync.OnceValue(func() *Vocabulary {
	v, err := ParseVocabulary(defaultVocabularyYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded skill vocabulary is invalid: %v", err))
	}
	return v
})

// DefaultVocabulary returns the built-in vocabulary.
func DefaultVocabulary() *Vocabulary {
	return defaultVocabulary()
}

// Skills returns a copy of the canonical names in vocabulary order.
func (v *Vocabulary) Skills() []string {
	out := make([]string, len(v.skills))
	copy(out, v.skills)
	return out
}

// Len returns the number of entries.
func (v *Vocabulary) Len() int {
	return len(v.skills)
}
