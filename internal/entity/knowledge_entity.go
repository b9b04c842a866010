package entity

import (
	"time"

	"github.com/google/uuid"
)

type DocumentClass string

const (
	DocumentClassMaterial   DocumentClass = "material"
	DocumentClassAssignment DocumentClass = "assignment"
)

// Document is one ingested PDF's extracted text. Immutable after ingestion.
type Document struct {
	Id       uuid.UUID
	Class    DocumentClass
	Filename string
	RawText  string
}

// Question is a segment of an assignment document that the segmenter
// classified as an actual question. The Id is the numbering marker as it
// appears in the source text (e.g. "3." or "b)").
type Question struct {
	Id               string
	SourceDocumentId uuid.UUID
	Text             string
	HasScenario      bool
	HasTable         bool
	HasImage         bool
}

// KnowledgeSnapshot is an immutable point-in-time view of the corpus.
// It is rebuilt wholesale on refresh and published atomically, never
// mutated in place.
type KnowledgeSnapshot struct {
	Materials   []Document
	Assignments []Document
	Questions   []Question
	BuiltAt     time.Time
}

func (s *KnowledgeSnapshot) TotalDocuments() int {
	return len(s.Materials) + len(s.Assignments)
}

func (s *KnowledgeSnapshot) HasContent() bool {
	return s.TotalDocuments() > 0
}
