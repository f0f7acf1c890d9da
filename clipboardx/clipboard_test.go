package clipboardx

import "testing"

func TestLocalClipboardRoundTrip(t *testing.T) {
	c := New(false)
	if got := c.Paste(); got != "" {
		t.Fatalf("expected empty clipboard, got %q", got)
	}
	if c.Copy("hello") {
		t.Fatalf("expected local-only clipboard to report no system copy")
	}
	if got := c.Paste(); got != "hello" {
		t.Fatalf("expected hello, got %q", got)
	}
}
