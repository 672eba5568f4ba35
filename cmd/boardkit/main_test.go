package main

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleBoard = `{
  "name": "Snack Time",
  "rows": 2,
  "cols": 2,
  "pages": [
    {
      "id": "home",
      "buttons": [
        {"id": "b1", "row": 0, "col": 0, "label": "Eat"},
        {"id": "b2", "row": 0, "col": 1, "label": "Drink"}
      ]
    }
  ]
}`

func writeBoard(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "board.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExportCmd(t *testing.T) {
	boardPath := writeBoard(t, sampleBoard)
	out := filepath.Join(t.TempDir(), "out.obz")

	cmd := &ExportCmd{Board: boardPath, Format: "obf", Output: out}
	if err := cmd.Run(); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	info, err := os.Stat(out)
	if err != nil {
		t.Fatalf("output missing: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("output is empty")
	}
}

func TestExportCmdUnknownFormat(t *testing.T) {
	boardPath := writeBoard(t, sampleBoard)
	cmd := &ExportCmd{Board: boardPath, Format: "bogus"}
	if err := cmd.Run(); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestBundleCmdAllFormats(t *testing.T) {
	boardPath := writeBoard(t, sampleBoard)
	out := filepath.Join(t.TempDir(), "bundle.tar.xz")

	cmd := &BundleCmd{Board: boardPath, Output: out}
	if err := cmd.Run(); err != nil {
		t.Fatalf("bundle failed: %v", err)
	}
	info, err := os.Stat(out)
	if err != nil {
		t.Fatalf("bundle missing: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("bundle is empty")
	}
}

func TestValidateCmd(t *testing.T) {
	boardPath := writeBoard(t, sampleBoard)
	cmd := &ValidateCmd{Board: boardPath}
	if err := cmd.Run(); err != nil {
		t.Fatalf("validate failed: %v", err)
	}
}

func TestValidateCmdRejectsOverlap(t *testing.T) {
	bad := `{
  "name": "Bad",
  "rows": 1,
  "cols": 1,
  "pages": [
    {
      "id": "home",
      "buttons": [
        {"id": "b1", "row": 0, "col": 0, "label": "A"},
        {"id": "b2", "row": 0, "col": 0, "label": "B"}
      ]
    }
  ]
}`
	cmd := &ValidateCmd{Board: writeBoard(t, bad)}
	if err := cmd.Run(); err == nil {
		t.Fatal("expected validation failure")
	}
}
