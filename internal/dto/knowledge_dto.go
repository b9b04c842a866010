package dto

type QuestionDTO struct {
	Id          string `json:"id"`
	Text        string `json:"text"`
	HasScenario bool   `json:"has_scenario"`
	HasTable    bool   `json:"has_table"`
	HasImage    bool   `json:"has_image"`
}

type AssignmentFileDTO struct {
	Filename  string        `json:"filename"`
	Questions []QuestionDTO `json:"questions"`
}

type AssignmentQuestionsResponse struct {
	Assignments []AssignmentFileDTO `json:"assignments"`
}

type HealthResponse struct {
	Status            string `json:"status"`
	MaterialsLoaded   int    `json:"materials_loaded"`
	AssignmentsLoaded int    `json:"assignments_loaded"`
	TotalPdfs         int    `json:"total_pdfs"`
	HasContent        bool   `json:"has_content"`
}

type KnowledgeStatsDTO struct {
	MaterialsCount   int      `json:"materials_count"`
	AssignmentsCount int      `json:"assignments_count"`
	TotalPdfs        int      `json:"total_pdfs"`
	MaterialsList    []string `json:"materials_list"`
	AssignmentsList  []string `json:"assignments_list"`
	Errors           []string `json:"errors"`
}

type StatsResponse struct {
	KnowledgeBase KnowledgeStatsDTO `json:"knowledge_base"`
	ChatSessions  SessionStatsDTO   `json:"chat_sessions"`
}
