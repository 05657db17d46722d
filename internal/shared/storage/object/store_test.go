package object

import (
	"testing"
	"time"
)

func TestUploadKey(t *testing.T) {
	at := time.Date(2025, time.March, 9, 23, 0, 0, 0, time.FixedZone("X", -3*3600))
	key, err := UploadKey("b-1", "My CV/final.pdf", at)
	if err != nil {
		t.Fatalf("UploadKey: %v", err)
	}
	if key != "uploads/2025/03/b-1/My CV_final.pdf" {
		t.Fatalf("unexpected key %q", key)
	}
	if _, err := UploadKey("b-1", "../x.pdf", at); err == nil {
		t.Fatal("expected traversal rejected")
	}
	if _, err := UploadKey("", "x.pdf", at); err == nil {
		t.Fatal("expected missing batch rejected")
	}
}
