package editor

import (
	"runtime"
	"testing"
)

func TestEdit_ReturnsContentWhenEditorLeavesItUntouched(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on the true(1) command")
	}

	// `true` exits immediately without touching the file, so the
	// round-trip returns the original content.
	got, err := Edit("true", "echo hello\n", ".sh")
	if err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if got != "echo hello\n" {
		t.Errorf("content: got %q, want %q", got, "echo hello\n")
	}
}

func TestEdit_EmptyCommand(t *testing.T) {
	if _, err := Edit("", "x", ".txt"); err == nil {
		t.Error("expected error for empty editor command")
	}
}

func TestEdit_MissingEditor(t *testing.T) {
	if _, err := Edit("definitely-not-a-real-editor-binary", "x", ".txt"); err == nil {
		t.Error("expected error for missing editor binary")
	}
}
