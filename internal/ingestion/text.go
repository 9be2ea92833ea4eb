// Package ingestion turns uploaded or on-disk documents into normalized plain text.
package ingestion

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"
)

// ErrNotText is returned for documents that are not valid UTF-8.
var ErrNotText = errors.New("document is not UTF-8 text")

var (
	utf8BOM        = []byte{0xEF, 0xBB, 0xBF}
	innerSpace     = regexp.MustCompile(`\s+`)
	excessiveBlank = regexp.MustCompile(`\n\n\n+`)
)

// Document is a normalized text document.
type Document struct {
	Text string
	// Hash is the SHA-256 hex digest of Text, used to correlate log lines without logging content.
	Hash string
}

// Decode validates raw bytes as UTF-8, strips a leading byte-order mark and normalizes the text.
func Decode(data []byte) (*Document, error) {
	if !utf8.Valid(data) {
		return nil, ErrNotText
	}
	text := CleanText(string(bytes.TrimPrefix(data, utf8BOM)))
	return &Document{Text: text, Hash: computeHash(text)}, nil
}

// ReadFile reads and decodes a text file.
func ReadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %w", err)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	doc, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// CleanText normalizes line endings and whitespace while keeping line structure.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	result := excessiveBlank.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine collapses runs of whitespace inside a line. Bullet indentation is kept.
func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	trimmed := strings.TrimLeft(line, " \t")
	if trimmed == "" {
		return ""
	}

	if strings.HasPrefix(trimmed, "#") {
		return innerSpace.ReplaceAllString(trimmed, " ")
	}

	content := innerSpace.ReplaceAllString(trimmed, " ")
	if isBulletLine(trimmed) {
		if indent := len(line) - len(trimmed); indent > 0 {
			return strings.Repeat(" ", indent) + content
		}
	}
	return content
}

func isBulletLine(line string) bool {
	return strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ") ||
		strings.HasPrefix(line, "• ") || strings.HasPrefix(line, "· ")
}

func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}
