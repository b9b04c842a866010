package prompt

import (
	"strings"

	"pdf-hint-be/internal/constant"
	"pdf-hint-be/internal/entity"
	"pdf-hint-be/pkg/llm"
)

// Budget bounds the assembled context.
type Budget struct {
	MaxKnowledgeChars int
}

// Payload is the exact context handed to the model gateway for one turn.
type Payload struct {
	SystemInstructions string
	KnowledgeText      string
	HistoryWindow      []llm.Message
	NewMessage         string

	// Truncated reports that the corpus exceeded the budget and trailing
	// documents were dropped. Not an error; callers log it.
	Truncated bool
}

// Messages renders the payload as the provider-facing message list: one
// system message carrying instructions plus corpus, the bounded history in
// chronological order, then the new user message.
func (p Payload) Messages() []llm.Message {
	messages := make([]llm.Message, 0, len(p.HistoryWindow)+2)

	var system strings.Builder
	system.WriteString(p.SystemInstructions)
	system.WriteString("\n\nCLASS MATERIALS:\n")
	if p.KnowledgeText == "" {
		system.WriteString("No class materials or assignments have been loaded.")
	} else {
		system.WriteString(p.KnowledgeText)
	}

	messages = append(messages, llm.Message{Role: constant.ChatMessageRoleSystem, Content: system.String()})
	messages = append(messages, p.HistoryWindow...)
	messages = append(messages, llm.Message{Role: constant.ChatMessageRoleUser, Content: p.NewMessage})
	return messages
}

// Builder assembles the per-turn payload. It only reads its inputs: the
// same session state, snapshot, message and budget always produce a
// byte-identical payload.
type Builder struct {
	session  entity.Session
	snapshot *entity.KnowledgeSnapshot
	message  string
	budget   Budget
}

func NewBuilder(session entity.Session, snapshot *entity.KnowledgeSnapshot, message string, budget Budget) *Builder {
	return &Builder{
		session:  session,
		snapshot: snapshot,
		message:  message,
		budget:   budget,
	}
}

func (b *Builder) Build() Payload {
	knowledge, truncated := b.serializeKnowledge()
	return Payload{
		SystemInstructions: constant.HintSystemPromptV1,
		KnowledgeText:      knowledge,
		HistoryWindow:      b.serializeHistory(),
		NewMessage:         b.message,
		Truncated:          truncated,
	}
}

// serializeKnowledge renders the corpus up to the budget. Materials come
// first in ingestion order, then assignments. When the corpus exceeds the
// budget the serialization stops at the first document that does not fit,
// so the result is always a prefix of whole documents, never a mid-document
// cut. This lossy policy is deliberate; the caller logs it.
func (b *Builder) serializeKnowledge() (string, bool) {
	if b.snapshot == nil {
		return "", false
	}

	var out strings.Builder
	budget := b.budget.MaxKnowledgeChars

	write := func(header string, docs []entity.Document) bool {
		for i, doc := range docs {
			var block strings.Builder
			if i == 0 {
				block.WriteString(header)
			}
			block.WriteString("\n--- ")
			block.WriteString(doc.Filename)
			block.WriteString(" ---\n")
			block.WriteString(doc.RawText)
			block.WriteString("\n")

			if budget > 0 && out.Len()+block.Len() > budget {
				return false
			}
			out.WriteString(block.String())
		}
		return true
	}

	if !write("=== CLASS MATERIALS ===\n", b.snapshot.Materials) {
		return out.String(), true
	}
	if !write("\n=== ASSIGNMENTS ===\n", b.snapshot.Assignments) {
		return out.String(), true
	}
	return out.String(), false
}

func (b *Builder) serializeHistory() []llm.Message {
	history := make([]llm.Message, 0, len(b.session.Turns))
	for _, turn := range b.session.Turns {
		role := constant.ChatMessageRoleUser
		if turn.Role == constant.ChatMessageRoleAssistant {
			role = constant.ChatMessageRoleAssistant
		}
		history = append(history, llm.Message{Role: role, Content: turn.Content})
	}
	return history
}
