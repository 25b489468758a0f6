package voice

import (
	"reflect"
	"testing"
)

const bassChars = `<>/="{}[]()!@#$%^&*`

func TestSplitFirstMatchWins(t *testing.T) {
	preds := []Predicate{
		{Chars: bassChars},
		{Classes: []CharClass{ClassAlnum}, Except: bassChars},
	}

	got := Split(`<p class="x">Hi 42</p>`, preds)

	want := []string{`<=""></>`, "pclassxHi42p"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Split = %q, want %q", got, want)
	}
}

func TestSplitDisjointAndOrdered(t *testing.T) {
	preds := []Predicate{
		{Chars: bassChars},
		{Classes: []CharClass{ClassDigit}, Chars: ".,;:?!"},
		{Classes: []CharClass{ClassAlnum}},
	}

	text := "a1!b.2<c"
	got := Split(text, preds)

	want := []string{"!<", "1.2", "abc"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Split = %q, want %q", got, want)
	}

	total := 0
	for _, s := range got {
		total += len([]rune(s))
	}

	if total != len([]rune(text)) {
		t.Fatalf("partition lost characters: %d of %d", total, len([]rune(text)))
	}
}

func TestSplitZeroPredicateTakesAll(t *testing.T) {
	got := Split("any text <here>", []Predicate{{}})
	if got[0] != "any text <here>" {
		t.Fatalf("Split = %q", got)
	}
}

func TestSplitDropsUnmatched(t *testing.T) {
	got := Split("a b\n", []Predicate{{Classes: []CharClass{ClassLetter}}})
	if got[0] != "ab" {
		t.Fatalf("Split = %q, want %q", got[0], "ab")
	}
}

func TestPredicateMatch(t *testing.T) {
	p := Predicate{Classes: []CharClass{ClassAlnum}, Except: "x"}

	tests := []struct {
		r    rune
		want bool
	}{
		{'a', true},
		{'7', true},
		{'ñ', true},
		{'x', false},
		{'<', false},
	}
	for _, tt := range tests {
		if got := p.Match(tt.r); got != tt.want {
			t.Errorf("Match(%q) = %v, want %v", tt.r, got, tt.want)
		}
	}

	if (Predicate{Except: "a"}).Match('a') {
		t.Error("Except must win over the implicit match-all")
	}
}

func TestCharClasses(t *testing.T) {
	tests := []struct {
		c    CharClass
		r    rune
		want bool
	}{
		{ClassLetter, 'Q', true},
		{ClassLetter, '1', false},
		{ClassDigit, '9', true},
		{ClassSpace, '\t', true},
		{ClassPunct, '!', true},
		{ClassSymbol, '<', true},
		{ClassSymbol, 'a', false},
		{CharClass(99), 'a', false},
	}
	for _, tt := range tests {
		if got := tt.c.Match(tt.r); got != tt.want {
			t.Errorf("%v.Match(%q) = %v, want %v", tt.c, tt.r, got, tt.want)
		}
	}
}

func TestParseCharClass(t *testing.T) {
	for c := ClassLetter; c <= ClassSymbol; c++ {
		got, err := ParseCharClass(c.String())
		if err != nil || got != c {
			t.Errorf("ParseCharClass(%q) = %v, %v", c.String(), got, err)
		}
	}

	if _, err := ParseCharClass("emoji"); err == nil {
		t.Error("expected error")
	}

	if err := (Predicate{Classes: []CharClass{42}}).Validate(); err == nil {
		t.Error("expected validation error")
	}
}
