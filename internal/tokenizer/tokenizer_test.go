package tokenizer

import (
	"reflect"
	"testing"
)

var testStopwords = []string{"a", "i", "s", "v", "na", "se", "do", "je", "pro", "z", "u", "o", "§", ".", ",", "?", "!", ":", ";", "-"}

func TestTokenize(t *testing.T) {
	n := NewNormalizer(testStopwords)

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty string", "", []string{}},
		{"simple lowercase", "hello world", []string{"hello", "world"}},
		{"all caps word", "HELLO WORLD", []string{"hello", "world"}},
		{"leading/trailing spaces", "  hello world  ", []string{"hello", "world"}},
		{"multiple spaces between words", "hello   world", []string{"hello", "world"}},
		{"tabs and newlines", "hello\tworld\nagain", []string{"hello", "world", "again"}},
		{"punctuation stays attached", "hello, world!", []string{"hello,", "world!"}},
		{"standalone punctuation removed", "theft - vehicle , car", []string{"theft", "vehicle", "car"}},
		{"stopwords removed", "krádež v obchodě a na ulici", []string{"krádež", "obchodě", "ulici"}},
		{"section sign removed", "§ 205 tr. zák.", []string{"205", "tr.", "zák."}},
		{"unicode lowercasing", "KRÁDEŽ Předmět", []string{"krádež", "předmět"}},
		{"duplicates kept in order", "stolen stolen car", []string{"stolen", "stolen", "car"}},
		{"only stopwords", "a i v .", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := n.Tokenize(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestTokenSet(t *testing.T) {
	n := NewNormalizer(testStopwords)

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty string", "", []string{}},
		{"duplicates collapse", "stolen Stolen STOLEN car", []string{"car", "stolen"}},
		{"stopwords never enter the set", "a theft v car", []string{"car", "theft"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := n.TokenSet(tt.input).Sorted()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("TokenSet(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizer_StopwordsCaseInsensitive(t *testing.T) {
	n := NewNormalizer([]string{"The", "OF"})

	got := n.Tokenize("the Theft of THE car")
	want := []string{"theft", "car"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize() = %v, want %v", got, want)
	}
	if !n.IsStopword("tHe") {
		t.Error("Expected 'tHe' to be a stopword")
	}
	if n.IsStopword("theft") {
		t.Error("Did not expect 'theft' to be a stopword")
	}
}

func TestNormalizer_NoStopwords(t *testing.T) {
	n := NewNormalizer(nil)

	got := n.Tokenize("a b .")
	want := []string{"a", "b", "."}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize() = %v, want %v", got, want)
	}
}

func TestTokenSet_Intersection(t *testing.T) {
	n := NewNormalizer(testStopwords)
	a := n.TokenSet("stolen vehicle in the night")
	b := n.TokenSet("vehicle stolen")
	c := n.TokenSet("contract dispute")

	if got := a.IntersectionSize(b); got != 2 {
		t.Errorf("IntersectionSize() = %d, want 2", got)
	}
	if got := b.IntersectionSize(a); got != 2 {
		t.Errorf("IntersectionSize() is not symmetric: got %d, want 2", got)
	}
	if got := a.IntersectionSize(c); got != 0 {
		t.Errorf("IntersectionSize() = %d, want 0", got)
	}
	if got := a.Intersection(b); !reflect.DeepEqual(got, []string{"stolen", "vehicle"}) {
		t.Errorf("Intersection() = %v, want [stolen vehicle]", got)
	}
	if got := a.Intersection(c); !reflect.DeepEqual(got, []string{}) {
		t.Errorf("Intersection() = %v, want []", got)
	}
	if !a.Contains("night") || a.Contains("day") {
		t.Error("Contains() returned unexpected results")
	}
}
