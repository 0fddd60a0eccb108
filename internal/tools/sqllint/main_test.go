package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestRunAcceptsRepositoryQueries(t *testing.T) {
	var stderr bytes.Buffer
	if code := run([]string{"../../sqlinline"}, &stderr); code != 0 {
		t.Fatalf("expected clean sqlinline package, got %d: %s", code, stderr.String())
	}
}

func TestRunReportsMissingAndDuplicateMarkers(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.go", "package q\n\nconst QA = `--sql 4c1f7a2e-8d3b-4f6a-9e21-b7c05d9a13f4\nselect 1;`\n")
	writeFile(t, dir, "b.go", "package q\n\nconst QB = `--sql 4c1f7a2e-8d3b-4f6a-9e21-b7c05d9a13f4\nselect 2;`\nconst QC = \"select 3\"\nconst Label = \"not sql\"\n")

	var stderr bytes.Buffer
	if code := run([]string{dir}, &stderr); code != 1 {
		t.Fatalf("expected violations, got %d", code)
	}
	out := stderr.String()
	if !strings.Contains(out, "marker already used by QA") {
		t.Fatalf("duplicate marker not reported: %s", out)
	}
	if !strings.Contains(out, "missing or invalid --sql <uuid> marker (QC)") {
		t.Fatalf("missing marker not reported: %s", out)
	}
	if strings.Contains(out, "Label") {
		t.Fatalf("non-SQL constant flagged: %s", out)
	}
}

func TestRunMissingTarget(t *testing.T) {
	var stderr bytes.Buffer
	if code := run([]string{filepath.Join(t.TempDir(), "nope")}, &stderr); code != 2 {
		t.Fatalf("expected usage error, got %d", code)
	}
}
