package util

import "testing"

func TestChecksum(t *testing.T) {
	data := []byte("resume body")
	got := Checksum(data)
	if got != Checksum([]byte("resume body")) {
		t.Fatalf("expected stable hash, got %s", got)
	}
	if got == Checksum([]byte("other body")) {
		t.Fatal("expected different content to hash differently")
	}
	for _, ch := range got {
		if !((ch >= 'a' && ch <= 'f') || (ch >= '0' && ch <= '9')) {
			t.Fatalf("hash contains non-hex character: %c", ch)
		}
	}
	if len(got) != 64 {
		t.Fatalf("expected 64 hex characters, got %d", len(got))
	}
}
