package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"student-analyzer-be/internal/dto"
	"student-analyzer-be/internal/entity"
	"student-analyzer-be/internal/pkg/logger"
	"student-analyzer-be/internal/repository/specification"
	"student-analyzer-be/internal/repository/unitofwork"
)

// IUsageService writes the ui_interactions usage table.
// Updates always target the user's latest analysis row.
type IUsageService interface {
	LogDocument(ctx context.Context, email, documentName, fileType string, fileSize int64, language string) error
	Increment(ctx context.Context, email string, counter entity.UsageCounter) error
	RecordQuiz(ctx context.Context, email string, score float64, detail interface{}) error
	Latest(ctx context.Context, email string) (*dto.UsageSummary, error)
	History(ctx context.Context, email string, page, limit int) (*dto.UsageHistory, error)
}

type usageService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewUsageService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) IUsageService {
	return &usageService{
		uowFactory: uowFactory,
		logger:     log,
	}
}

func (s *usageService) LogDocument(ctx context.Context, email, documentName, fileType string, fileSize int64, language string) error {
	if language == "" {
		language = "English"
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	row := &entity.Interaction{
		UserEmail:         email,
		DocumentName:      documentName,
		FileType:          fileType,
		FileSize:          fileSize,
		LanguageUsed:      language,
		AnalysisTimestamp: time.Now(),
	}
	if err := uow.InteractionRepository().Create(ctx, row); err != nil {
		return fmt.Errorf("failed to log document: %w", err)
	}

	s.logger.Info("USAGE", "Analysis logged", map[string]interface{}{
		"user":     email,
		"document": documentName,
		"s_no":     row.SNo,
	})
	return nil
}

func (s *usageService) latest(ctx context.Context, uow unitofwork.UnitOfWork, email string) (*entity.Interaction, error) {
	row, err := uow.InteractionRepository().FindOne(ctx,
		specification.ByUserEmail{Email: email},
		specification.LatestAnalysis(),
	)
	if err != nil {
		return nil, err
	}
	return row, nil
}

func (s *usageService) Increment(ctx context.Context, email string, counter entity.UsageCounter) error {
	if !counter.Valid() {
		return fmt.Errorf("unknown usage counter %q", counter)
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	row, err := s.latest(ctx, uow, email)
	if err != nil {
		return err
	}
	if row == nil {
		// Nothing analyzed yet, nothing to count against
		s.logger.Warn("USAGE", "No analysis row to update", map[string]interface{}{
			"user":    email,
			"counter": string(counter),
		})
		return nil
	}
	return uow.InteractionRepository().IncrementCounter(ctx, row.SNo, counter)
}

func (s *usageService) RecordQuiz(ctx context.Context, email string, score float64, detail interface{}) error {
	payload, err := json.Marshal(detail)
	if err != nil {
		return fmt.Errorf("failed to encode quiz detail: %w", err)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	row, err := s.latest(ctx, uow, email)
	if err != nil {
		return err
	}
	if row == nil {
		return nil
	}
	if err := uow.InteractionRepository().UpdateQuiz(ctx, row.SNo, score, payload); err != nil {
		return err
	}
	if err := uow.InteractionRepository().IncrementCounter(ctx, row.SNo, entity.CounterAssessmentsTaken); err != nil {
		return err
	}
	return uow.Commit()
}

func (s *usageService) Latest(ctx context.Context, email string) (*dto.UsageSummary, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	row, err := s.latest(ctx, uow, email)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, nil
	}
	summary := toUsageSummary(row)
	return &summary, nil
}

func (s *usageService) History(ctx context.Context, email string, page, limit int) (*dto.UsageHistory, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.InteractionRepository()

	total, err := repo.Count(ctx, specification.ByUserEmail{Email: email})
	if err != nil {
		return nil, err
	}
	rows, err := repo.FindAll(ctx,
		specification.ByUserEmail{Email: email},
		specification.LatestAnalysis(),
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
	)
	if err != nil {
		return nil, err
	}

	items := make([]dto.UsageSummary, 0, len(rows))
	for _, row := range rows {
		items = append(items, toUsageSummary(row))
	}
	return &dto.UsageHistory{
		Items: items,
		Page:  page,
		Limit: limit,
		Total: total,
	}, nil
}

func toUsageSummary(row *entity.Interaction) dto.UsageSummary {
	return dto.UsageSummary{
		DocumentName:          row.DocumentName,
		FileType:              row.FileType,
		LanguageUsed:          row.LanguageUsed,
		DoubtSessions:         row.DoubtSessions,
		AssessmentsTaken:      row.AssessmentsTaken,
		QuizScore:             row.QuizScore,
		VideoScriptsGenerated: row.VideoScriptsGenerated,
		VideosGenerated:       row.VideosGenerated,
		PdfsGenerated:         row.PdfsGenerated,
		AnalysisTimestamp:     row.AnalysisTimestamp.Format(time.RFC3339),
	}
}
