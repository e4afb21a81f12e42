package util

import "testing"

func TestStorageKey(t *testing.T) {
	tok := "4f7e2f3a-session-token"
	got := StorageKey(tok)
	if got != StorageKey(tok) {
		t.Fatalf("expected stable key, got %s", got)
	}
	for _, ch := range got {
		if !((ch >= 'a' && ch <= 'f') || (ch >= '0' && ch <= '9')) {
			t.Fatalf("key contains non-hex character: %c", ch)
		}
	}
	if len(got) != 64 {
		t.Fatalf("expected 64 hex characters, got %d", len(got))
	}
}

func TestSanitizeFileName(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "resume.pdf", want: "resume.pdf"},
		{in: " resume.pdf ", want: "resume.pdf"},
		{in: "a/b.pdf", want: "a_b.pdf"},
		{in: "a\\b.pdf", want: "a_b.pdf"},
		{in: "../etc/passwd", wantErr: true},
		{in: "   ", wantErr: true},
	}
	for _, tc := range cases {
		got, err := SanitizeFileName(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("SanitizeFileName(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("SanitizeFileName(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("SanitizeFileName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
