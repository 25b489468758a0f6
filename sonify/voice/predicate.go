package voice

import (
	"fmt"
	"strings"
	"unicode"
)

// CharClass is a named Unicode character category.
type CharClass int

const (
	ClassLetter CharClass = iota
	ClassDigit
	ClassAlnum
	ClassSpace
	ClassPunct
	ClassSymbol
)

var charClassNames = [...]string{
	ClassLetter: "letter",
	ClassDigit:  "digit",
	ClassAlnum:  "alnum",
	ClassSpace:  "space",
	ClassPunct:  "punct",
	ClassSymbol: "symbol",
}

// Valid reports whether c is a known class.
func (c CharClass) Valid() bool {
	return c >= ClassLetter && c <= ClassSymbol
}

func (c CharClass) String() string {
	if !c.Valid() {
		return fmt.Sprintf("CharClass(%d)", int(c))
	}

	return charClassNames[c]
}

// ParseCharClass resolves a class name (case-insensitive).
func ParseCharClass(name string) (CharClass, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range charClassNames {
		if n == name {
			return CharClass(i), nil
		}
	}

	return 0, fmt.Errorf("voice: unknown character class %q", name)
}

// Match reports whether r belongs to the class.
func (c CharClass) Match(r rune) bool {
	switch c {
	case ClassLetter:
		return unicode.IsLetter(r)
	case ClassDigit:
		return unicode.IsDigit(r)
	case ClassAlnum:
		return unicode.IsLetter(r) || unicode.IsDigit(r)
	case ClassSpace:
		return unicode.IsSpace(r)
	case ClassPunct:
		return unicode.IsPunct(r)
	case ClassSymbol:
		return unicode.IsSymbol(r)
	default:
		return false
	}
}

// Predicate selects the characters a voice plays: the union of Chars and
// Classes, minus Except. The zero Predicate matches every character.
type Predicate struct {
	Chars   string
	Classes []CharClass
	Except  string
}

// IsZero reports whether p selects nothing explicitly.
func (p Predicate) IsZero() bool {
	return p.Chars == "" && len(p.Classes) == 0 && p.Except == ""
}

// Validate rejects unknown classes.
func (p Predicate) Validate() error {
	for _, c := range p.Classes {
		if !c.Valid() {
			return fmt.Errorf("voice: invalid character class %v", c)
		}
	}

	return nil
}

// Match reports whether r is selected.
func (p Predicate) Match(r rune) bool {
	if strings.ContainsRune(p.Except, r) {
		return false
	}

	if p.Chars == "" && len(p.Classes) == 0 {
		return true
	}

	if strings.ContainsRune(p.Chars, r) {
		return true
	}

	for _, c := range p.Classes {
		if c.Match(r) {
			return true
		}
	}

	return false
}
