package memory

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"pdf-hint-be/internal/entity"
	"pdf-hint-be/internal/source"
	"pdf-hint-be/pkg/segment"

	"github.com/google/uuid"
)

// minReadableChars mirrors the extraction layer's notion of an unusable
// document: anything shorter is treated as an extraction failure.
const minReadableChars = 10

// IngestionError records one skipped document. Ingestion of the remaining
// set continues; one bad PDF never blocks the corpus.
type IngestionError struct {
	Filename string
	Reason   string
}

func (e IngestionError) Error() string {
	return fmt.Sprintf("ingest %s: %s", e.Filename, e.Reason)
}

// IngestReport summarizes one ingestion pass.
type IngestReport struct {
	Succeeded int
	Skipped   []IngestionError
}

// AssignmentQuestionGroup is the per-file grouping view over the snapshot.
type AssignmentQuestionGroup struct {
	Filename  string
	Questions []entity.Question
}

// KnowledgeStore holds the corpus snapshot. A refresh builds the whole new
// snapshot off to the side and swaps the visible pointer under the lock, so
// concurrent readers never observe a half-updated corpus.
type KnowledgeStore struct {
	mu       sync.RWMutex
	snapshot *entity.KnowledgeSnapshot

	now func() time.Time
}

func NewKnowledgeStore() *KnowledgeStore {
	return &KnowledgeStore{
		snapshot: &entity.KnowledgeSnapshot{BuiltAt: time.Now()},
		now:      time.Now,
	}
}

// Ingest builds a brand-new snapshot from the supplied documents and
// publishes it atomically. Documents without readable content are skipped
// and reported. Assignment documents are segmented into questions.
func (k *KnowledgeStore) Ingest(docs []source.RawDocument) (*entity.KnowledgeSnapshot, *IngestReport) {
	snapshot := &entity.KnowledgeSnapshot{BuiltAt: k.now()}
	report := &IngestReport{}

	for _, raw := range docs {
		if len(strings.TrimSpace(raw.RawText)) < minReadableChars {
			report.Skipped = append(report.Skipped, IngestionError{
				Filename: raw.Filename,
				Reason:   "no readable content",
			})
			continue
		}

		doc := entity.Document{
			Id:       uuid.New(),
			Class:    raw.Class,
			Filename: raw.Filename,
			RawText:  raw.RawText,
		}

		switch raw.Class {
		case entity.DocumentClassAssignment:
			snapshot.Assignments = append(snapshot.Assignments, doc)
			for _, q := range segment.Parse(doc.RawText) {
				q.SourceDocumentId = doc.Id
				snapshot.Questions = append(snapshot.Questions, q)
			}
		default:
			snapshot.Materials = append(snapshot.Materials, doc)
		}
		report.Succeeded++
	}

	k.mu.Lock()
	k.snapshot = snapshot
	k.mu.Unlock()

	return snapshot, report
}

// CurrentSnapshot returns the latest snapshot by reference. O(1) and safe
// under a concurrent refresh; the snapshot itself is never mutated.
func (k *KnowledgeStore) CurrentSnapshot() *entity.KnowledgeSnapshot {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.snapshot
}

// ListAssignmentQuestions groups questions by source file. Ordering is
// stable: ingestion order of documents, then order of appearance in the
// source text.
func (k *KnowledgeStore) ListAssignmentQuestions() []AssignmentQuestionGroup {
	snapshot := k.CurrentSnapshot()

	groups := make([]AssignmentQuestionGroup, 0, len(snapshot.Assignments))
	for _, doc := range snapshot.Assignments {
		group := AssignmentQuestionGroup{Filename: doc.Filename}
		for _, q := range snapshot.Questions {
			if q.SourceDocumentId == doc.Id {
				group.Questions = append(group.Questions, q)
			}
		}
		if len(group.Questions) > 0 {
			groups = append(groups, group)
		}
	}
	return groups
}
