package mapper

import (
	"pdf-hint-be/internal/dto"
	"pdf-hint-be/internal/repository/memory"
)

func ToAssignmentQuestionsResponse(groups []memory.AssignmentQuestionGroup) *dto.AssignmentQuestionsResponse {
	res := &dto.AssignmentQuestionsResponse{
		Assignments: make([]dto.AssignmentFileDTO, 0, len(groups)),
	}
	for _, group := range groups {
		file := dto.AssignmentFileDTO{
			Filename:  group.Filename,
			Questions: make([]dto.QuestionDTO, 0, len(group.Questions)),
		}
		for _, q := range group.Questions {
			file.Questions = append(file.Questions, dto.QuestionDTO{
				Id:          q.Id,
				Text:        q.Text,
				HasScenario: q.HasScenario,
				HasTable:    q.HasTable,
				HasImage:    q.HasImage,
			})
		}
		res.Assignments = append(res.Assignments, file)
	}
	return res
}
