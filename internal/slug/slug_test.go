package slug

import "testing"

// TestGenerate exercises the slug generator with typical product names,
// punctuation, accented input, whitespace and edge cases.
func TestGenerate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		// --- Normal names ---
		{name: "simple two words", input: "Black Pepper", want: "black-pepper"},
		{name: "single word", input: "Cardamom", want: "cardamom"},
		{name: "already a slug", input: "green-cardamom", want: "green-cardamom"},
		{name: "with number", input: "Cinnamon Grade 1", want: "cinnamon-grade-1"},
		{name: "mixed case", input: "WHOLE All Spices", want: "whole-all-spices"},

		// --- Punctuation collapses to a single separator ---
		{name: "punctuation marks", input: "Hello, World! How's it going?", want: "hello-world-hows-it-going"},
		{name: "curly apostrophe", input: "Grandma’s Masala", want: "grandmas-masala"},
		{name: "ampersand and at sign", input: "Rock & Roll @ the Arena", want: "rock-roll-the-arena"},
		{name: "parentheses and dots", input: "Version (2.0) [Beta]", want: "version-2-0-beta"},
		{name: "slashes and pipes", input: "Frontend/Backend | Full Stack", want: "frontend-backend-full-stack"},
		{name: "underscores", input: "black_pepper", want: "black-pepper"},
		{name: "hash and dollar", input: "Issue #42 costs $100", want: "issue-42-costs-100"},

		// --- Accents fold to ASCII ---
		{name: "french accents", input: "Café Crème", want: "cafe-creme"},
		{name: "german umlauts", input: "Über die Brücke", want: "uber-die-brucke"},
		{name: "spanish tilde", input: "Pimentón de la Vera", want: "pimenton-de-la-vera"},
		{name: "ligature decomposed", input: "ﬁne Grind", want: "fine-grind"},
		{name: "non-latin script dropped", input: "東京 Pepper", want: "pepper"},

		// --- Whitespace ---
		{name: "leading and trailing spaces", input: "  hello world  ", want: "hello-world"},
		{name: "consecutive spaces", input: "hello    world", want: "hello-world"},
		{name: "tabs and newlines", input: "hello\tworld\nagain", want: "hello-world-again"},

		// --- Hyphens ---
		{name: "leading hyphens", input: "---hello world", want: "hello-world"},
		{name: "multiple hyphens between words", input: "hello---world", want: "hello-world"},
		{name: "hyphens and spaces mixed", input: "  --hello -- world--  ", want: "hello-world"},

		// --- Edge cases ---
		{name: "empty string", input: "", want: ""},
		{name: "only spaces", input: "     ", want: ""},
		{name: "only special characters", input: "!@#$%^&*()", want: ""},
		{name: "single character", input: "A", want: "a"},
		{name: "date-like string", input: "2026-02-25", want: "2026-02-25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Generate(tt.input)
			if got != tt.want {
				t.Errorf("Generate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// TestGenerate_Idempotent verifies that generating a slug from an already
// valid slug produces the same result.
func TestGenerate_Idempotent(t *testing.T) {
	for _, s := range []string{"black-pepper", "cinnamon-grade-1", "a", "123"} {
		t.Run(s, func(t *testing.T) {
			if got := Generate(s); got != s {
				t.Errorf("Generate(%q) = %q, want idempotent result %q", s, got, s)
			}
		})
	}
}

// TestGenerate_ConsistentCase verifies that slugs are always lowercase
// regardless of input casing.
func TestGenerate_ConsistentCase(t *testing.T) {
	for _, input := range []string{"BLACK PEPPER", "Black Pepper", "bLaCk PePpEr"} {
		t.Run(input, func(t *testing.T) {
			if got := Generate(input); got != "black-pepper" {
				t.Errorf("Generate(%q) = %q, want %q", input, got, "black-pepper")
			}
		})
	}
}
