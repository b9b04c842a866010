package service

import (
	"context"
	"time"

	"pdf-hint-be/internal/config"
	"pdf-hint-be/internal/constant"
	"pdf-hint-be/internal/dto"
	"pdf-hint-be/internal/pkg/logger"
	"pdf-hint-be/internal/repository/memory"
	"pdf-hint-be/pkg/llm"
	"pdf-hint-be/pkg/prompt"

	"github.com/google/uuid"
)

// IChatService defines the conversation runtime surface.
type IChatService interface {
	SendChat(ctx context.Context, request *dto.SendChatRequest) (*dto.SendChatResponse, error)
	GetHistory(sessionId string) ([]dto.MessageDTO, error)
	ClearHistory(sessionId string) *dto.ClearResponse
	SessionInfo(sessionId string) (*dto.SessionInfoResponse, error)
	Cleanup() *dto.CleanupResponse
	Stats() dto.SessionStatsDTO
}

type chatService struct {
	sessions  *memory.SessionStore
	knowledge *memory.KnowledgeStore
	provider  llm.LLMProvider
	log       logger.ILogger

	budget prompt.Budget
	ai     config.AIConfig
	now    func() time.Time
}

func NewChatService(
	sessions *memory.SessionStore,
	knowledge *memory.KnowledgeStore,
	provider llm.LLMProvider,
	log logger.ILogger,
	chatCfg config.ChatConfig,
	aiCfg config.AIConfig,
) IChatService {
	return &chatService{
		sessions:  sessions,
		knowledge: knowledge,
		provider:  provider,
		log:       log,
		budget:    prompt.Budget{MaxKnowledgeChars: chatCfg.MaxKnowledgeChars},
		ai:        aiCfg,
		now:       time.Now,
	}
}

// SendChat runs one conversation turn: record the user message, assemble
// the bounded context, call the model, and record the reply. The user turn
// is recorded before the model call; the assistant turn only on success, so
// a failed or cancelled call leaves history consistent and retryable.
func (cs *chatService) SendChat(ctx context.Context, request *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	// Opportunistic sweep; bounded scan, sessions idle past the timeout go away
	cs.sessions.EvictExpired(cs.now())

	sessionId := request.SessionId
	if sessionId == "" || !cs.sessions.Exists(sessionId) {
		sessionId = uuid.NewString()
	}

	session := cs.sessions.Append(sessionId, constant.ChatMessageRoleUser, request.Message)

	// The new message rides separately in the payload; drop it from the
	// history window so the model does not see it twice.
	historyView := session
	if n := len(historyView.Turns); n > 0 {
		historyView.Turns = historyView.Turns[:n-1]
	}

	payload := prompt.NewBuilder(historyView, cs.knowledge.CurrentSnapshot(), request.Message, cs.budget).Build()
	if payload.Truncated {
		cs.log.Warn("CHAT", "Knowledge corpus exceeds budget, trailing documents dropped", map[string]interface{}{
			"session_id":      sessionId,
			"knowledge_chars": len(payload.KnowledgeText),
			"budget_chars":    cs.budget.MaxKnowledgeChars,
		})
	}

	reply, err := cs.provider.Chat(ctx, payload.Messages(),
		llm.WithTemperature(cs.ai.Temperature),
		llm.WithTopP(cs.ai.TopP),
		llm.WithTopK(cs.ai.TopK),
		llm.WithMaxTokens(cs.ai.MaxOutputTokens),
	)
	if err != nil {
		details := map[string]interface{}{
			"session_id": sessionId,
			"error":      err.Error(),
		}
		if modelErr, ok := llm.AsModelError(err); ok {
			details["kind"] = string(modelErr.Kind)
		}
		cs.log.Error("CHAT", "Model call failed", details)
		return nil, err
	}

	cs.sessions.Append(sessionId, constant.ChatMessageRoleAssistant, reply)

	return &dto.SendChatResponse{
		SessionId: sessionId,
		Response:  reply,
		Timestamp: cs.now().Format(time.RFC3339Nano),
	}, nil
}

func (cs *chatService) GetHistory(sessionId string) ([]dto.MessageDTO, error) {
	session, err := cs.sessions.Get(sessionId)
	if err != nil {
		return nil, err
	}

	messages := make([]dto.MessageDTO, 0, len(session.Turns))
	for _, turn := range session.Turns {
		messages = append(messages, dto.MessageDTO{
			Role:      turn.Role,
			Content:   turn.Content,
			Timestamp: turn.Timestamp.Format(time.RFC3339Nano),
		})
	}
	return messages, nil
}

// ClearHistory empties the session but keeps its id usable. Clearing a
// never-seen session succeeds as well.
func (cs *chatService) ClearHistory(sessionId string) *dto.ClearResponse {
	cs.sessions.Clear(sessionId)
	return &dto.ClearResponse{
		Message:   "History cleared successfully",
		SessionId: sessionId,
	}
}

func (cs *chatService) SessionInfo(sessionId string) (*dto.SessionInfoResponse, error) {
	session, err := cs.sessions.Get(sessionId)
	if err != nil {
		return nil, err
	}

	return &dto.SessionInfoResponse{
		SessionId:    session.Id,
		MessageCount: len(session.Turns),
		CreatedAt:    session.CreatedAt.Format(time.RFC3339Nano),
		LastActivity: session.LastActivity.Format(time.RFC3339Nano),
		IsExpired:    cs.sessions.IsExpired(sessionId),
	}, nil
}

func (cs *chatService) Cleanup() *dto.CleanupResponse {
	count := cs.sessions.EvictExpired(cs.now())
	if count > 0 {
		cs.log.Info("CHAT", "Evicted expired sessions", map[string]interface{}{"count": count})
	}
	return &dto.CleanupResponse{CleanedUp: count}
}

func (cs *chatService) Stats() dto.SessionStatsDTO {
	stats := cs.sessions.Stats()
	return dto.SessionStatsDTO{
		TotalSessions:  stats.TotalSessions,
		ActiveSessions: stats.ActiveSessions,
		TotalMessages:  stats.TotalTurns,
	}
}
