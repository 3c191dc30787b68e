package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/snip-dev/snip/internal/snippet"
)

// memStore records created snippets without a real database.
type memStore struct {
	created []snippet.Snippet
}

func (m *memStore) Create(sn snippet.Snippet) error {
	for _, existing := range m.created {
		if existing.Name == sn.Name {
			return snippet.ErrDuplicateName
		}
	}
	m.created = append(m.created, sn)
	return nil
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestImport_BasicTree(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "scripts/deploy.sh", "#!/bin/sh\necho deploy\n")
	writeFile(t, root, "main.go", "package main\n")

	store := &memStore{}
	res, err := Import(store, Options{Root: root, Tags: []string{"imported"}})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}

	if res.Imported != 2 {
		t.Fatalf("imported: got %d, want 2 (errors: %v)", res.Imported, res.Errors)
	}

	byName := make(map[string]snippet.Snippet)
	for _, sn := range store.created {
		byName[sn.Name] = sn
	}

	sh, ok := byName["scripts-deploy"]
	if !ok {
		t.Fatalf("missing scripts-deploy, have %v", byName)
	}
	if sh.Language != "bash" {
		t.Errorf("language: got %q, want bash", sh.Language)
	}
	if len(sh.Tags) != 1 || sh.Tags[0] != "imported" {
		t.Errorf("tags: got %v", sh.Tags)
	}
	if _, ok := byName["main"]; !ok {
		t.Error("missing main")
	}
}

func TestImport_SkipsIgnoredAndBinary(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".gitignore", "secret.txt\n")
	writeFile(t, root, "secret.txt", "password")
	writeFile(t, root, ".hidden", "dotfile")
	writeFile(t, root, "node_modules/dep.js", "module.exports = {}")
	writeFile(t, root, "logo.png", "\x89PNG")
	writeFile(t, root, "keep.sh", "echo ok")

	store := &memStore{}
	res, err := Import(store, Options{Root: root})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}

	if res.Imported != 1 {
		t.Errorf("imported: got %d, want 1", res.Imported)
	}
	if len(store.created) != 1 || store.created[0].Name != "keep" {
		t.Errorf("created: got %v", store.created)
	}
}

func TestImport_SkipsDuplicates(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "dup.sh", "echo one")

	store := &memStore{}
	store.created = append(store.created, snippet.Snippet{Name: "dup"})

	res, err := Import(store, Options{Root: root})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if res.Imported != 0 || res.Skipped == 0 {
		t.Errorf("expected duplicate to be skipped, got %+v", res)
	}
}

func TestImport_SkipsNonUTF8AndEmpty(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "empty.sh", "")
	writeFile(t, root, "binary.dat", string([]byte{0xff, 0xfe, 0x00, 0x01}))

	store := &memStore{}
	res, err := Import(store, Options{Root: root})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if res.Imported != 0 {
		t.Errorf("imported: got %d, want 0", res.Imported)
	}
}

func TestImport_NotADirectory(t *testing.T) {
	if _, err := Import(&memStore{}, Options{Root: filepath.Join(t.TempDir(), "missing")}); err == nil {
		t.Error("expected error for missing root")
	}
}

func TestImport_ReportsProgress(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.sh", "echo a")
	writeFile(t, root, "b.sh", "echo b")

	var seen []string
	_, err := Import(&memStore{}, Options{
		Root:     root,
		Progress: func(path string) { seen = append(seen, path) },
	})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if len(seen) != 2 {
		t.Errorf("progress calls: got %d, want 2", len(seen))
	}
}

func TestNameForPath(t *testing.T) {
	tests := []struct {
		rel  string
		want string
	}{
		{"deploy.sh", "deploy"},
		{"scripts/db/backup.sql", "scripts-db-backup"},
		{"Makefile", "Makefile"},
	}
	for _, tt := range tests {
		if got := NameForPath(tt.rel); got != tt.want {
			t.Errorf("NameForPath(%q) = %q, want %q", tt.rel, got, tt.want)
		}
	}
}
