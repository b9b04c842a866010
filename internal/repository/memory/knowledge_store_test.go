package memory

import (
	"testing"

	"pdf-hint-be/internal/entity"
	"pdf-hint-be/internal/source"
)

func TestKnowledgeStoreIngestPartialSuccess(t *testing.T) {
	store := NewKnowledgeStore()

	docs := []source.RawDocument{
		{Class: entity.DocumentClassMaterial, Filename: "ch1.txt", RawText: "The accounting equation states that assets equal liabilities plus equity."},
		{Class: entity.DocumentClassMaterial, Filename: "scan.txt", RawText: "   \n  "},
		{Class: entity.DocumentClassAssignment, Filename: "hw1.txt", RawText: "1. What is depreciation?\n2. Explain accrual accounting."},
	}

	snapshot, report := store.Ingest(docs)

	if report.Succeeded != 2 {
		t.Errorf("Succeeded = %d, want 2", report.Succeeded)
	}
	if len(report.Skipped) != 1 {
		t.Fatalf("Skipped = %d, want 1", len(report.Skipped))
	}
	if report.Skipped[0].Filename != "scan.txt" {
		t.Errorf("skipped filename = %q, want %q", report.Skipped[0].Filename, "scan.txt")
	}

	if len(snapshot.Materials) != 1 || len(snapshot.Assignments) != 1 {
		t.Fatalf("materials = %d, assignments = %d, want 1 and 1", len(snapshot.Materials), len(snapshot.Assignments))
	}
	if len(snapshot.Questions) != 2 {
		t.Errorf("questions = %d, want 2", len(snapshot.Questions))
	}
	for _, q := range snapshot.Questions {
		if q.SourceDocumentId != snapshot.Assignments[0].Id {
			t.Errorf("question %q not linked to its source document", q.Id)
		}
	}
}

func TestKnowledgeStoreEmptyCorpus(t *testing.T) {
	store := NewKnowledgeStore()

	snapshot, report := store.Ingest(nil)

	if report.Succeeded != 0 || len(report.Skipped) != 0 {
		t.Errorf("report = %+v, want empty", report)
	}
	if snapshot.HasContent() {
		t.Error("HasContent() = true for an empty corpus")
	}
	if snapshot.TotalDocuments() != 0 {
		t.Errorf("TotalDocuments() = %d, want 0", snapshot.TotalDocuments())
	}
}

func TestKnowledgeStoreSnapshotSwapIsAtomic(t *testing.T) {
	store := NewKnowledgeStore()

	first, _ := store.Ingest([]source.RawDocument{
		{Class: entity.DocumentClassMaterial, Filename: "v1.txt", RawText: "first version of the course notes"},
	})

	held := store.CurrentSnapshot()
	if held != first {
		t.Fatal("CurrentSnapshot() did not return the ingested snapshot")
	}

	store.Ingest([]source.RawDocument{
		{Class: entity.DocumentClassMaterial, Filename: "v2.txt", RawText: "second version of the course notes"},
	})

	// The snapshot taken before the refresh is untouched
	if len(held.Materials) != 1 || held.Materials[0].Filename != "v1.txt" {
		t.Error("refresh mutated a previously published snapshot")
	}
	if store.CurrentSnapshot().Materials[0].Filename != "v2.txt" {
		t.Error("CurrentSnapshot() did not observe the refresh")
	}
}

func TestKnowledgeStoreListAssignmentQuestionsOrdering(t *testing.T) {
	store := NewKnowledgeStore()

	store.Ingest([]source.RawDocument{
		{Class: entity.DocumentClassAssignment, Filename: "hw2.txt", RawText: "1. Explain the matching principle.\n2. What is a contra account?"},
		{Class: entity.DocumentClassAssignment, Filename: "hw1.txt", RawText: "1. Define working capital."},
	})

	groups := store.ListAssignmentQuestions()
	if len(groups) != 2 {
		t.Fatalf("group count = %d, want 2", len(groups))
	}
	if groups[0].Filename != "hw2.txt" || groups[1].Filename != "hw1.txt" {
		t.Errorf("group order = [%q, %q], want ingestion order", groups[0].Filename, groups[1].Filename)
	}
	if len(groups[0].Questions) != 2 {
		t.Fatalf("hw2 questions = %d, want 2", len(groups[0].Questions))
	}
	if groups[0].Questions[0].Id != "1." || groups[0].Questions[1].Id != "2." {
		t.Errorf("question order within file = [%q, %q], want source order", groups[0].Questions[0].Id, groups[0].Questions[1].Id)
	}
}

func TestKnowledgeStoreListAssignmentQuestionsSkipsEmptyFiles(t *testing.T) {
	store := NewKnowledgeStore()

	store.Ingest([]source.RawDocument{
		{Class: entity.DocumentClassAssignment, Filename: "narration-only.txt", RawText: "1. Paid $500 for office supplies during the month."},
		{Class: entity.DocumentClassAssignment, Filename: "hw1.txt", RawText: "1. What is equity?"},
	})

	groups := store.ListAssignmentQuestions()
	if len(groups) != 1 {
		t.Fatalf("group count = %d, want 1", len(groups))
	}
	if groups[0].Filename != "hw1.txt" {
		t.Errorf("group filename = %q, want %q", groups[0].Filename, "hw1.txt")
	}
}
