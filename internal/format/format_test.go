package format

import "testing"

func TestTruncateUnicodeNoOp(t *testing.T) {
	if got := TruncateUnicode("short", 10); got != "short" {
		t.Fatalf("expected no truncation, got %q", got)
	}
}

func TestTruncateUnicodeTruncates(t *testing.T) {
	got := TruncateUnicode("a very long process name", 10)
	if runeWidth(got) > 10 {
		t.Fatalf("expected width <= 10, got %q (%d)", got, runeWidth(got))
	}
}

func runeWidth(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}

func TestBytesFormatsHumanReadable(t *testing.T) {
	got := Bytes(1073741824)
	if got == "" {
		t.Fatalf("expected non-empty byte format")
	}
}
