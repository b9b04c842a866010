package prompt

import (
	"strings"
	"testing"
	"time"

	"pdf-hint-be/internal/constant"
	"pdf-hint-be/internal/entity"

	"github.com/google/uuid"
)

func snapshotWith(materials, assignments []entity.Document) *entity.KnowledgeSnapshot {
	return &entity.KnowledgeSnapshot{
		Materials:   materials,
		Assignments: assignments,
		BuiltAt:     time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func doc(filename, text string) entity.Document {
	return entity.Document{Id: uuid.New(), Filename: filename, RawText: text}
}

func TestBuildIsDeterministic(t *testing.T) {
	session := entity.Session{
		Id: "s1",
		Turns: []entity.Turn{
			{Role: constant.ChatMessageRoleUser, Content: "hello"},
			{Role: constant.ChatMessageRoleAssistant, Content: "hi, how can I help?"},
		},
	}
	snapshot := snapshotWith(
		[]entity.Document{doc("ch1.txt", "chapter one content")},
		[]entity.Document{doc("hw1.txt", "1. What is depreciation?")},
	)

	builder := NewBuilder(session, snapshot, "give me a hint", Budget{MaxKnowledgeChars: 100000})
	first := builder.Build()
	second := builder.Build()

	if first.KnowledgeText != second.KnowledgeText {
		t.Error("two builds over the same inputs produced different knowledge text")
	}
	if len(first.HistoryWindow) != len(second.HistoryWindow) {
		t.Fatal("two builds produced different history windows")
	}
	for i := range first.HistoryWindow {
		if first.HistoryWindow[i] != second.HistoryWindow[i] {
			t.Errorf("history[%d] differs between builds", i)
		}
	}
}

func TestBuildKnowledgeSerialization(t *testing.T) {
	snapshot := snapshotWith(
		[]entity.Document{doc("ch1.txt", "material body")},
		[]entity.Document{doc("hw1.txt", "assignment body")},
	)

	payload := NewBuilder(entity.Session{}, snapshot, "hint please", Budget{}).Build()

	want := "=== CLASS MATERIALS ===\n" +
		"\n--- ch1.txt ---\nmaterial body\n" +
		"\n=== ASSIGNMENTS ===\n" +
		"\n--- hw1.txt ---\nassignment body\n"
	if payload.KnowledgeText != want {
		t.Errorf("KnowledgeText = %q, want %q", payload.KnowledgeText, want)
	}
	if payload.Truncated {
		t.Error("Truncated = true with no budget set")
	}
}

func TestBuildTruncationKeepsWholeDocuments(t *testing.T) {
	big := strings.Repeat("Z", 200)
	snapshot := snapshotWith(
		[]entity.Document{
			doc("small.txt", "fits easily"),
			doc("big.txt", big),
			doc("after.txt", "never reached"),
		},
		nil,
	)

	payload := NewBuilder(entity.Session{}, snapshot, "hint", Budget{MaxKnowledgeChars: 100}).Build()

	if !payload.Truncated {
		t.Fatal("Truncated = false, want true")
	}
	if !strings.Contains(payload.KnowledgeText, "fits easily") {
		t.Error("first document missing from truncated knowledge")
	}
	if strings.Contains(payload.KnowledgeText, "Z") {
		t.Error("oversized document partially serialized, want whole-document prefix")
	}
	if strings.Contains(payload.KnowledgeText, "never reached") {
		t.Error("document after the cut point was serialized")
	}
}

func TestBuildEmptyCorpus(t *testing.T) {
	payload := NewBuilder(entity.Session{}, snapshotWith(nil, nil), "hello", Budget{MaxKnowledgeChars: 1000}).Build()

	if payload.KnowledgeText != "" {
		t.Errorf("KnowledgeText = %q, want empty", payload.KnowledgeText)
	}
	if payload.Truncated {
		t.Error("Truncated = true for an empty corpus")
	}

	messages := payload.Messages()
	if len(messages) != 2 {
		t.Fatalf("message count = %d, want 2 (system + user)", len(messages))
	}
	if !strings.Contains(messages[0].Content, "No class materials or assignments have been loaded.") {
		t.Error("system message missing the empty-corpus placeholder")
	}
}

func TestMessagesOrdering(t *testing.T) {
	session := entity.Session{
		Turns: []entity.Turn{
			{Role: constant.ChatMessageRoleUser, Content: "first question"},
			{Role: constant.ChatMessageRoleAssistant, Content: "first hint"},
		},
	}
	payload := NewBuilder(session, snapshotWith(nil, nil), "second question", Budget{}).Build()

	messages := payload.Messages()
	if len(messages) != 4 {
		t.Fatalf("message count = %d, want 4", len(messages))
	}
	if messages[0].Role != constant.ChatMessageRoleSystem {
		t.Errorf("messages[0].Role = %q, want system", messages[0].Role)
	}
	if messages[1].Content != "first question" || messages[2].Content != "first hint" {
		t.Error("history not in chronological order")
	}
	if messages[3].Role != constant.ChatMessageRoleUser || messages[3].Content != "second question" {
		t.Errorf("last message = %+v, want the new user message", messages[3])
	}
}
