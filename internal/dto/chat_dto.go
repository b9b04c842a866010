package dto

type SendChatRequest struct {
	SessionId string `json:"session_id"`
	Message   string `json:"message" validate:"required,min=1,max=5000"`
}

type SendChatResponse struct {
	SessionId string `json:"session_id"`
	Response  string `json:"response"`
	Timestamp string `json:"timestamp"`
}

type MessageDTO struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

type SessionInfoResponse struct {
	SessionId    string `json:"session_id"`
	MessageCount int    `json:"message_count"`
	CreatedAt    string `json:"created_at"`
	LastActivity string `json:"last_activity"`
	IsExpired    bool   `json:"is_expired"`
}

type ClearResponse struct {
	Message   string `json:"message"`
	SessionId string `json:"session_id"`
}

type CleanupResponse struct {
	CleanedUp int `json:"cleaned_up"`
}

type SessionStatsDTO struct {
	TotalSessions  int `json:"total_sessions"`
	ActiveSessions int `json:"active_sessions"`
	TotalMessages  int `json:"total_messages"`
}
