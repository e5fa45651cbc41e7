// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package browser

import (
	"os/exec"
	"path/filepath"
	"testing"
)

func TestOpenRejectsNonHTTP(t *testing.T) {
	var launched []string
	start = func(cmd *exec.Cmd) error {
		launched = append(launched, cmd.Args[len(cmd.Args)-1])
		return nil
	}
	t.Cleanup(func() { start = func(cmd *exec.Cmd) error { return cmd.Start() } })

	tests := []struct {
		url     string
		wantErr bool
	}{
		{"https://arxiv.org/abs/2510.07692v1", false},
		{"http://arxiv.org/pdf/2510.07692v1", false},
		{"file:///etc/passwd", true},
		{"javascript:alert(1)", true},
		{"ftp://example.com", true},
		{"https://", true},
		{"", true},
	}

	for _, tt := range tests {
		err := Open(tt.url)
		if tt.wantErr && err == nil {
			t.Errorf("Open(%q): expected error, got nil", tt.url)
		}
		if !tt.wantErr && err != nil {
			t.Errorf("Open(%q): unexpected error %v", tt.url, err)
		}
	}

	if len(launched) != 2 {
		t.Fatalf("launched %d commands, want 2: %v", len(launched), launched)
	}
}

func TestCommand(t *testing.T) {
	tests := map[string]string{
		"darwin":  "open",
		"linux":   "xdg-open",
		"freebsd": "xdg-open",
		"windows": "rundll32",
	}
	for goos, want := range tests {
		cmd := command(goos, "https://arxiv.org")
		if got := filepath.Base(cmd.Args[0]); got != want {
			t.Errorf("command(%q) = %q, want %q", goos, got, want)
		}
	}
}

func TestFunc(t *testing.T) {
	var got string
	f := Func(func(u string) error { got = u; return nil })
	if err := f.Open("https://arxiv.org"); err != nil {
		t.Fatal(err)
	}
	if got != "https://arxiv.org" {
		t.Errorf("got %q", got)
	}
}
