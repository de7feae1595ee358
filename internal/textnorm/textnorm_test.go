package textnorm

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"lowercase", "The Quick BROWN Fox", "the quick brown fox"},
		{"punctuation", "dogs are great pets!!!", "dogs are great pets"},
		{"tabs and newlines", "line one\n\n\tline  two", "line one line two"},
		{"punctuation between spaces", "a - b", "a b"},
		{"underscore kept", "snake_case, ok?", "snake_case ok"},
		{"digits kept", "Room 101.", "room 101"},
		{"all punctuation", "?!.,;", ""},
		{"unicode letters", "Café Über", "café über"},
		{"leading space kept", "  hello", " hello"},
		{"apostrophe joins", "don't", "dont"},
		{"hyphen joins", "well-known", "wellknown"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Normalize(tc.in); got != tc.want {
				t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		" ",
		"Hello, World!",
		"a - b -- c",
		"\t\tTabs\r\nand CRLF\r\n",
		"MiXeD 123 _under_ ***stars***",
		"Ünïcödé — dashes … ellipsis",
		"İstanbul",
		"   ",
		"?! ?! ?!",
	}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestIsWordRune(t *testing.T) {
	for _, r := range []rune{'a', 'Z', '0', '_', 'é', '٣'} {
		if !IsWordRune(r) {
			t.Errorf("IsWordRune(%q) = false, want true", r)
		}
	}
	for _, r := range []rune{' ', '-', '!', '\'', '\n'} {
		if IsWordRune(r) {
			t.Errorf("IsWordRune(%q) = true, want false", r)
		}
	}
}
