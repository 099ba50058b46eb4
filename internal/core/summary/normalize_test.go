package summary

import "testing"

func TestNormalizeStripsMarkersAndCollapsesWhitespace(t *testing.T) {
	got := Normalize("--- Page 1 ---\n  Hello   world  \n\n\n\nBye")
	want := "Hello world\n\nBye"
	if got != want {
		t.Fatalf("Normalize() = %q, want %q", got, want)
	}
}

func TestNormalizeRewritesBulletGlyphs(t *testing.T) {
	got := Normalize("• first\n● second\n◆ third\n■ fourth\n□ fifth")
	want := "- first\n- second\n- third\n- fourth\n- fifth"
	if got != want {
		t.Fatalf("Normalize() = %q, want %q", got, want)
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"plain text",
		"--- Page 1 ---\n  Hello   world  \n\n\n\nBye",
		"• bullet\n\n\n--- Page 2 ---\ttabs\t here",
		"a\nb\n\nc\n\n\n\nd",
	}
	for _, input := range inputs {
		once := Normalize(input)
		twice := Normalize(once)
		if once != twice {
			t.Fatalf("Normalize not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}

func TestNormalizeEmptyString(t *testing.T) {
	if got := Normalize(""); got != "" {
		t.Fatalf("Normalize(\"\") = %q, want empty", got)
	}
}

func TestMarkPagesSkipsEmptyPagesButKeepsNumbers(t *testing.T) {
	got := MarkPages([]string{"first", "", "third"})
	want := "--- Page 1 ---\nfirst\n\n--- Page 3 ---\nthird\n"
	if got != want {
		t.Fatalf("MarkPages() = %q, want %q", got, want)
	}
}

func TestMarkPagesAllEmpty(t *testing.T) {
	if got := MarkPages([]string{"", "  "}); got != "" {
		t.Fatalf("MarkPages() = %q, want empty", got)
	}
}
