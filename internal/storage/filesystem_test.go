package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestSanitizeKey(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "donation-certificate-DON1.pdf", want: "donation-certificate-DON1.pdf"},
		{in: "/2026/10/a.pdf", want: "2026/10/a.pdf"},
		{in: `dir\file.png`, want: "dir/file.png"},
		{in: "./a/../b.pdf", want: "b.pdf"},
		{in: "../escape", wantErr: true},
		{in: "..", wantErr: true},
		{in: "  ", wantErr: true},
	}
	for _, tc := range tests {
		got, err := sanitizeKey(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("sanitizeKey(%q) expected error, got %q", tc.in, got)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("sanitizeKey(%q) = %q, %v; want %q", tc.in, got, err, tc.want)
		}
	}
}

func TestFileStoreWriteRead(t *testing.T) {
	root := filepath.Join(t.TempDir(), "artifacts")
	store, err := NewFileStore(root)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	key, err := store.Write(context.Background(), "2026/DON1.pdf", []byte("%PDF"))
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if key != "2026/DON1.pdf" {
		t.Fatalf("unexpected key %q", key)
	}
	data, err := store.Read(context.Background(), key)
	if err != nil || string(data) != "%PDF" {
		t.Fatalf("Read = %q, %v", data, err)
	}
	entries, _ := os.ReadDir(filepath.Join(root, "2026"))
	if len(entries) != 1 {
		t.Fatalf("temp files left behind: %v", entries)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := store.Write(ctx, "x.pdf", nil); err == nil {
		t.Fatal("expected cancelled write to fail")
	}
	if _, err := NewFileStore(" "); err == nil {
		t.Fatal("expected error for empty base path")
	}
}
