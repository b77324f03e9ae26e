package space

import (
	"errors"
	"testing"
)

func TestCombinationsSize(t *testing.T) {
	tests := []struct {
		name           string
		charset        string
		minLen, maxLen int
		want           string
	}{
		{
			name:    "binary lengths 1-2",
			charset: "01",
			minLen:  1,
			maxLen:  2,
			want:    "6",
		},
		{
			name:    "single length",
			charset: "0123456789",
			minLen:  2,
			maxLen:  2,
			want:    "100",
		},
		{
			name:    "zero length contributes empty word",
			charset: "ab",
			minLen:  0,
			maxLen:  1,
			want:    "3",
		},
		{
			name:    "overflows native integers",
			charset: printable95(),
			minLen:  1,
			maxLen:  20,
			want:    "3622996024341650240846169344922329517120",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := NewCombinations(tt.charset, tt.minLen, tt.maxLen)
			if err != nil {
				t.Fatalf("NewCombinations failed: %v", err)
			}
			if got := spec.Size().String(); got != tt.want {
				t.Errorf("Size() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestCombinationsValidation(t *testing.T) {
	tests := []struct {
		name           string
		charset        string
		minLen, maxLen int
		wantErr        error
	}{
		{name: "empty charset", charset: "", minLen: 1, maxLen: 2, wantErr: ErrEmptyCharset},
		{name: "duplicate symbol", charset: "aba", minLen: 1, maxLen: 2, wantErr: ErrDuplicateSymbol},
		{name: "min exceeds max", charset: "ab", minLen: 3, maxLen: 2, wantErr: ErrLengthOrder},
		{name: "negative length", charset: "ab", minLen: -1, maxLen: 2, wantErr: ErrNegativeLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCombinations(tt.charset, tt.minLen, tt.maxLen)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewCombinations error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestPatternSize(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		want    string
	}{
		{name: "class times class", pattern: "@%", want: "260"},
		{name: "literal contributes one choice", pattern: "PIN%", want: "10"},
		{name: "all literals", pattern: "abc", want: "1"},
		{name: "empty pattern", pattern: "", want: "1"},
		{name: "punctuation class", pattern: "^", want: "31"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := NewPattern(tt.pattern, nil)
			if err != nil {
				t.Fatalf("NewPattern failed: %v", err)
			}
			if got := spec.Size().String(); got != tt.want {
				t.Errorf("Size() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestPatternCustomClasses(t *testing.T) {
	classes := map[rune]string{'#': "xyz"}
	spec, err := NewPattern("#@", classes)
	if err != nil {
		t.Fatalf("NewPattern failed: %v", err)
	}
	// '@' is not in the custom table, so it is a literal here.
	if got := spec.Size().String(); got != "3" {
		t.Errorf("Size() = %s, want 3", got)
	}
}

func TestPatternEmptyClass(t *testing.T) {
	if _, err := NewPattern("#", map[rune]string{'#': ""}); err == nil {
		t.Error("expected error for class resolving to empty charset")
	}
}

func TestPermutationsSize(t *testing.T) {
	tests := []struct {
		name    string
		symbols string
		want    string
	}{
		{name: "two symbols", symbols: "ab", want: "2"},
		{name: "empty string has one arrangement", symbols: "", want: "1"},
		{name: "duplicates are not collapsed", symbols: "aab", want: "6"},
		{name: "twelve symbols", symbols: "abcdefghijkl", want: "479001600"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := NewPermutations(tt.symbols)
			if err != nil {
				t.Fatalf("NewPermutations failed: %v", err)
			}
			if got := spec.Size().String(); got != tt.want {
				t.Errorf("Size() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestSizeReturnsCopy(t *testing.T) {
	spec, err := NewCombinations("01", 1, 2)
	if err != nil {
		t.Fatalf("NewCombinations failed: %v", err)
	}
	spec.Size().SetInt64(99)
	if got := spec.Size().String(); got != "6" {
		t.Errorf("Size() mutated through returned value: %s", got)
	}
}

// printable95 builds a 95-symbol charset of distinct runes.
func printable95() string {
	cs := make([]rune, 0, 95)
	for r := rune(' '); r <= '~'; r++ {
		cs = append(cs, r)
	}
	return string(cs)
}
