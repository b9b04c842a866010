package service

import (
	"context"
	"sync"
	"time"

	"pdf-hint-be/internal/dto"
	"pdf-hint-be/internal/entity"
	"pdf-hint-be/internal/mapper"
	"pdf-hint-be/internal/pkg/logger"
	"pdf-hint-be/internal/repository/memory"
	"pdf-hint-be/internal/source"
	"pdf-hint-be/pkg/events"
)

// IKnowledgeService owns corpus loading and the read views over it.
type IKnowledgeService interface {
	Refresh(ctx context.Context) (*memory.IngestReport, error)
	ListAssignmentQuestions() *dto.AssignmentQuestionsResponse
	Health() *dto.HealthResponse
	Stats() dto.KnowledgeStatsDTO
}

type knowledgeService struct {
	src   *source.FilesystemSource
	store *memory.KnowledgeStore
	bus   *events.Bus
	log   logger.ILogger

	mu         sync.Mutex
	lastErrors []string
}

func NewKnowledgeService(
	src *source.FilesystemSource,
	store *memory.KnowledgeStore,
	bus *events.Bus,
	log logger.ILogger,
) IKnowledgeService {
	return &knowledgeService{
		src:   src,
		store: store,
		bus:   bus,
		log:   log,
	}
}

// Refresh reloads the corpus from the ingestion source and publishes a new
// snapshot. Failing documents are skipped and reported; the rest of the
// corpus still loads.
func (ks *knowledgeService) Refresh(ctx context.Context) (*memory.IngestReport, error) {
	docs, loadErrors := ks.src.Load()
	snapshot, report := ks.store.Ingest(docs)

	errs := make([]string, 0, len(loadErrors)+len(report.Skipped))
	errs = append(errs, loadErrors...)
	for _, skipped := range report.Skipped {
		errs = append(errs, skipped.Error())
		ks.publish(ctx, events.BaseEvent{
			Type: events.TypeKnowledgeDocumentSkipped,
			Data: map[string]interface{}{
				"filename": skipped.Filename,
				"reason":   skipped.Reason,
			},
			OccurredAt: time.Now(),
		})
	}

	ks.mu.Lock()
	ks.lastErrors = errs
	ks.mu.Unlock()

	for _, doc := range snapshot.Materials {
		ks.publishDocumentLoaded(ctx, doc, 0)
	}
	questionCounts := countQuestionsByDocument(snapshot)
	for _, doc := range snapshot.Assignments {
		ks.publishDocumentLoaded(ctx, doc, questionCounts[doc.Id.String()])
	}

	ks.publish(ctx, events.BaseEvent{
		Type: events.TypeKnowledgeRefreshed,
		Data: map[string]interface{}{
			"materials":   len(snapshot.Materials),
			"assignments": len(snapshot.Assignments),
			"questions":   len(snapshot.Questions),
			"skipped":     len(report.Skipped),
		},
		OccurredAt: time.Now(),
	})

	ks.log.Info("KNOWLEDGE", "Corpus refreshed", map[string]interface{}{
		"materials":   len(snapshot.Materials),
		"assignments": len(snapshot.Assignments),
		"questions":   len(snapshot.Questions),
		"skipped":     len(report.Skipped),
		"load_errors": len(loadErrors),
	})

	return report, nil
}

func (ks *knowledgeService) ListAssignmentQuestions() *dto.AssignmentQuestionsResponse {
	return mapper.ToAssignmentQuestionsResponse(ks.store.ListAssignmentQuestions())
}

func (ks *knowledgeService) Health() *dto.HealthResponse {
	snapshot := ks.store.CurrentSnapshot()
	return &dto.HealthResponse{
		Status:            "healthy",
		MaterialsLoaded:   len(snapshot.Materials),
		AssignmentsLoaded: len(snapshot.Assignments),
		TotalPdfs:         snapshot.TotalDocuments(),
		HasContent:        snapshot.HasContent(),
	}
}

func (ks *knowledgeService) Stats() dto.KnowledgeStatsDTO {
	snapshot := ks.store.CurrentSnapshot()

	ks.mu.Lock()
	errs := append([]string(nil), ks.lastErrors...)
	ks.mu.Unlock()

	stats := dto.KnowledgeStatsDTO{
		MaterialsCount:   len(snapshot.Materials),
		AssignmentsCount: len(snapshot.Assignments),
		TotalPdfs:        snapshot.TotalDocuments(),
		MaterialsList:    make([]string, 0, len(snapshot.Materials)),
		AssignmentsList:  make([]string, 0, len(snapshot.Assignments)),
		Errors:           errs,
	}
	for _, doc := range snapshot.Materials {
		stats.MaterialsList = append(stats.MaterialsList, doc.Filename)
	}
	for _, doc := range snapshot.Assignments {
		stats.AssignmentsList = append(stats.AssignmentsList, doc.Filename)
	}
	return stats
}

func (ks *knowledgeService) publishDocumentLoaded(ctx context.Context, doc entity.Document, questions int) {
	ks.publish(ctx, events.BaseEvent{
		Type: events.TypeKnowledgeDocumentLoaded,
		Data: map[string]interface{}{
			"filename":  doc.Filename,
			"class":     string(doc.Class),
			"chars":     len(doc.RawText),
			"questions": questions,
		},
		OccurredAt: time.Now(),
	})
}

func (ks *knowledgeService) publish(ctx context.Context, evt events.BaseEvent) {
	if ks.bus == nil {
		return
	}
	if err := ks.bus.Publish(ctx, evt); err != nil {
		ks.log.Error("KNOWLEDGE", "Failed to publish event", map[string]interface{}{
			"event": evt.Type,
			"error": err.Error(),
		})
	}
}

func countQuestionsByDocument(snapshot *entity.KnowledgeSnapshot) map[string]int {
	counts := make(map[string]int)
	for _, q := range snapshot.Questions {
		counts[q.SourceDocumentId.String()]++
	}
	return counts
}
