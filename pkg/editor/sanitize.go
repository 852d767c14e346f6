package editor

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/aretw0/tessera/pkg/domain"
)

// DefaultMaxContentSize is 4KB per leaf.
const DefaultMaxContentSize = 4096

// SanitizeContent cleans leaf text by enforcing a size limit, validating
// UTF-8 and stripping control characters other than newline, tab and
// carriage return. Oversized text is rejected, never truncated.
func SanitizeContent(text string, limit int) (string, error) {
	if limit <= 0 {
		limit = DefaultMaxContentSize
	}
	if len(text) > limit {
		return "", fmt.Errorf("%w: size=%d limit=%d", domain.ErrContentTooLarge, len(text), limit)
	}

	if !utf8.ValidString(text) {
		return "", fmt.Errorf("%w: invalid UTF-8", domain.ErrInvalidContent)
	}

	// Fast path: nothing to strip.
	if strings.IndexFunc(text, isUnsafeControl) < 0 {
		return text, nil
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if !isUnsafeControl(r) {
			b.WriteRune(r)
		}
	}
	return b.String(), nil
}

func isUnsafeControl(r rune) bool {
	return unicode.IsControl(r) && r != '\n' && r != '\t' && r != '\r'
}
