package source

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"pdf-hint-be/internal/entity"
)

// RawDocument is the ingestion contract: extracted text plus where it came
// from. PDF-to-text extraction happens upstream; this package only consumes
// its output.
type RawDocument struct {
	Class    entity.DocumentClass
	Filename string
	RawText  string
}

// FilesystemSource reads pre-extracted document text from the data
// directory pair:
//
//	<dataDir>/extracted/materials/*.txt
//	<dataDir>/extracted/assignments/*.txt
//
// Files are returned in lexical filename order per class so ingestion order
// is deterministic across restarts.
type FilesystemSource struct {
	dataDir string
}

func NewFilesystemSource(dataDir string) *FilesystemSource {
	return &FilesystemSource{dataDir: dataDir}
}

func (f *FilesystemSource) MaterialsDir() string {
	return filepath.Join(f.dataDir, "extracted", "materials")
}

func (f *FilesystemSource) AssignmentsDir() string {
	return filepath.Join(f.dataDir, "extracted", "assignments")
}

// Load collects all documents from both class directories. A missing
// directory yields no documents for that class; unreadable files are
// reported but do not stop the load.
func (f *FilesystemSource) Load() ([]RawDocument, []string) {
	var docs []RawDocument
	var loadErrors []string

	materials, errs := loadDirectory(f.MaterialsDir(), entity.DocumentClassMaterial)
	docs = append(docs, materials...)
	loadErrors = append(loadErrors, errs...)

	assignments, errs := loadDirectory(f.AssignmentsDir(), entity.DocumentClassAssignment)
	docs = append(docs, assignments...)
	loadErrors = append(loadErrors, errs...)

	return docs, loadErrors
}

func loadDirectory(dir string, class entity.DocumentClass) ([]RawDocument, []string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, []string{fmt.Sprintf("%s: %v", dir, err)}
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".txt") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var docs []RawDocument
	var loadErrors []string
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			loadErrors = append(loadErrors, fmt.Sprintf("%s: %v", name, err))
			continue
		}
		docs = append(docs, RawDocument{
			Class:    class,
			Filename: name,
			RawText:  string(data),
		})
	}
	return docs, loadErrors
}
