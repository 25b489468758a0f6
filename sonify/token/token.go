// Package token splits text into the character runs that become notes.
//
// Offsets and lengths count Unicode code points, not bytes. Tokens are
// emitted left to right and cover the source text exactly once.
package token

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	// ErrInvalidSize is returned for a token size below 1.
	ErrInvalidSize = errors.New("token: size must be >= 1")
	// ErrEmptyPattern is returned for a size pattern with no entries.
	ErrEmptyPattern = errors.New("token: size pattern is empty")
)

// Token is a contiguous run of characters.
type Token struct {
	Text   string
	Offset int
	Len    int
}

// Spec selects the tokenization mode. Pattern wins over Size when set.
type Spec struct {
	Size    int
	Pattern []int
}

// Validate checks the sizes without tokenizing anything.
func (s Spec) Validate() error {
	if len(s.Pattern) > 0 {
		return validatePattern(s.Pattern)
	}

	if s.Size < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidSize, s.Size)
	}

	return nil
}

// Split tokenizes text according to spec.
func Split(text string, spec Spec) ([]Token, error) {
	if len(spec.Pattern) > 0 {
		return Pattern(text, spec.Pattern)
	}

	return Fixed(text, spec.Size)
}

// Fixed cuts text into runs of exactly n characters; the final run holds the
// remainder when the length is not a multiple of n.
func Fixed(text string, n int) ([]Token, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, n)
	}

	return cut(text, func(int) int { return n }), nil
}

// Pattern cuts text into runs whose sizes cycle through sizes. The final run
// is truncated to the characters that remain.
func Pattern(text string, sizes []int) ([]Token, error) {
	if err := validatePattern(sizes); err != nil {
		return nil, err
	}

	return cut(text, func(i int) int { return sizes[i%len(sizes)] }), nil
}

// Join concatenates the token texts.
func Join(tokens []Token) string {
	var sb strings.Builder
	for _, t := range tokens {
		sb.WriteString(t.Text)
	}

	return sb.String()
}

// Distinct returns the number of distinct characters in s.
func Distinct(s string) int {
	seen := make(map[rune]struct{}, len(s))
	for _, r := range s {
		seen[r] = struct{}{}
	}

	return len(seen)
}

func validatePattern(sizes []int) error {
	if len(sizes) == 0 {
		return ErrEmptyPattern
	}

	for i, n := range sizes {
		if n < 1 {
			return fmt.Errorf("%w: pattern[%d] = %d", ErrInvalidSize, i, n)
		}
	}

	return nil
}

func cut(text string, sizeAt func(i int) int) []Token {
	total := utf8.RuneCountInString(text)
	if total == 0 {
		return nil
	}

	var (
		tokens []Token
		offset int
		rest   = text
	)

	for i := 0; offset < total; i++ {
		n := min(sizeAt(i), total-offset)

		end := 0
		for range n {
			_, w := utf8.DecodeRuneInString(rest[end:])
			end += w
		}

		tokens = append(tokens, Token{Text: rest[:end], Offset: offset, Len: n})
		rest = rest[end:]
		offset += n
	}

	return tokens
}
