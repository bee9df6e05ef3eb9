package content

import (
	"bufio"
	"math/rand"
	"os"
	"strings"

	"github.com/samber/oops"
)

const (
	// MaxWordLength caps custom entries so a word always fits the play field
	MaxWordLength = 40
)

var (
	// CommentPrefixes defines the prefixes that identify comment lines in word files
	CommentPrefixes = []string{"//", "#"}
)

// Words returns the list a category draws from
// The custom list is used only for the custom category and only when non-empty
func Words(category Category, custom []string) []string {
	if category == CategoryCustom && len(custom) > 0 {
		return custom
	}
	return wordLists[category]
}

// RandomWord draws uniformly from the resolved list, falling back to FallbackWord
func RandomWord(rng *rand.Rand, category Category, custom []string) string {
	words := Words(category, custom)
	if len(words) == 0 {
		return FallbackWord
	}
	return words[rng.Intn(len(words))]
}

// ParseCustomWords splits comma or newline separated input into a clean list
// Entries are trimmed, empty entries dropped, duplicates removed in first-seen order
func ParseCustomWords(input string) []string {
	fields := strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r'
	})

	seen := make(map[string]struct{}, len(fields))
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		w := strings.TrimSpace(f)
		if w == "" {
			continue
		}
		if len(w) > MaxWordLength {
			w = w[:MaxWordLength]
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		words = append(words, w)
	}
	return words
}

// LoadCustomWords reads a word file, skipping blank and comment lines
// A line may hold several comma separated words
func LoadCustomWords(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, oops.Code("CONTENT_READ_FAILED").With("path", path).Wrap(err)
	}
	defer file.Close()

	var b strings.Builder
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if isCommentLine(line) {
			continue
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return nil, oops.Code("CONTENT_READ_FAILED").With("path", path).Wrap(err)
	}

	words := ParseCustomWords(b.String())
	if len(words) == 0 {
		return nil, oops.Code("CONFIG_EMPTY_WORDS").With("path", path).Errorf("no words in %s", path)
	}
	return words, nil
}

// isCommentLine checks if a line starts with any comment prefix
func isCommentLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	for _, prefix := range CommentPrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}
	return false
}
