package source

import (
	"os"
	"path/filepath"
	"testing"

	"pdf-hint-be/internal/entity"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadOrdersAndClassifies(t *testing.T) {
	dataDir := t.TempDir()
	src := NewFilesystemSource(dataDir)

	writeFile(t, filepath.Join(src.MaterialsDir(), "b_chapter2.txt"), "chapter two")
	writeFile(t, filepath.Join(src.MaterialsDir(), "a_chapter1.txt"), "chapter one")
	writeFile(t, filepath.Join(src.MaterialsDir(), "notes.pdf"), "not text, ignored")
	writeFile(t, filepath.Join(src.AssignmentsDir(), "hw1.txt"), "1. What is equity?")

	docs, loadErrors := src.Load()
	if len(loadErrors) != 0 {
		t.Fatalf("loadErrors = %v, want none", loadErrors)
	}
	if len(docs) != 3 {
		t.Fatalf("doc count = %d, want 3", len(docs))
	}

	if docs[0].Filename != "a_chapter1.txt" || docs[1].Filename != "b_chapter2.txt" {
		t.Errorf("materials order = [%q, %q], want lexical", docs[0].Filename, docs[1].Filename)
	}
	if docs[0].Class != entity.DocumentClassMaterial {
		t.Errorf("docs[0].Class = %q, want material", docs[0].Class)
	}
	if docs[2].Class != entity.DocumentClassAssignment {
		t.Errorf("docs[2].Class = %q, want assignment", docs[2].Class)
	}
}

func TestLoadMissingDirectories(t *testing.T) {
	src := NewFilesystemSource(t.TempDir())

	docs, loadErrors := src.Load()
	if len(docs) != 0 {
		t.Errorf("doc count = %d, want 0", len(docs))
	}
	if len(loadErrors) != 0 {
		t.Errorf("loadErrors = %v, want none for missing directories", loadErrors)
	}
}
