package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"student-analyzer-be/internal/dto"
	"student-analyzer-be/internal/entity"
	"student-analyzer-be/internal/pkg/logger"
	"student-analyzer-be/internal/pkg/serverutils"
	"student-analyzer-be/pkg/assessment"
	"student-analyzer-be/pkg/events"
	"student-analyzer-be/pkg/extract"
	"student-analyzer-be/pkg/llm"
	"student-analyzer-be/pkg/media/synthesia"
	"student-analyzer-be/pkg/prompt"
	"student-analyzer-be/pkg/render"
	"student-analyzer-be/pkg/state"
	"student-analyzer-be/pkg/store"
	"student-analyzer-be/pkg/translate"
)

const (
	PersonalizedPdfFileName = "personalized_course_guide.pdf"
	VideoScriptFileName     = "educational_video_script.md"
	personalizedPdfTitle    = "Personalized Course Guide"
)

var (
	ErrSessionExpired       = errors.New("Session expired. Please login again")
	ErrVideoNotConfigured   = errors.New("Video generation is not configured")
	ErrEmptyQuestion        = errors.New("Please enter a question first")
	ErrAssessmentNotStarted = errors.New("Take the assessment before submitting answers")
	ErrUnsupportedLanguage  = errors.New("Unsupported language")
)

// ITranslator renders text in a language code; it never fails
type ITranslator interface {
	Translate(ctx context.Context, text, code string) string
}

type IThumbnailGenerator interface {
	Thumbnail(ctx context.Context, prompt string) (string, error)
}

type IVideoClient interface {
	CreateVideo(ctx context.Context, req synthesia.CreateVideoRequest) (*synthesia.Video, error)
	WaitForVideo(ctx context.Context, id string) (*synthesia.Video, error)
}

// DocumentOptions holds the tunables of the document service
type DocumentOptions struct {
	VideoTestMode  bool
	ScriptMaxWords int
}

type IDocumentService interface {
	State(ctx context.Context, email string) (*dto.StateResponse, error)
	Analyze(ctx context.Context, email string, req *dto.AnalyzeRequest, file io.Reader) (*dto.AnalyzeResponse, error)
	SetView(ctx context.Context, email, view string) (*dto.ViewResponse, error)
	AskDoubt(ctx context.Context, email string, req *dto.DoubtRequest) (*dto.DoubtResponse, error)
	Assessment(ctx context.Context, email string) (*dto.AssessmentResponse, error)
	SubmitAssessment(ctx context.Context, email string, req *dto.SubmitAssessmentRequest) (*dto.SubmitAssessmentResponse, error)
	VideoScript(ctx context.Context, email string) (*dto.ContentResponse, error)
	VideoScriptFile(ctx context.Context, email string) ([]byte, error)
	GenerateVideo(ctx context.Context, email string) (*dto.ContentResponse, error)
	Conclusion(ctx context.Context, email string) (*dto.ContentResponse, error)
	PersonalizedPdf(ctx context.Context, email string) (*dto.PdfFile, error)
	SetLanguage(ctx context.Context, email string, req *dto.LanguageRequest) (*dto.StateResponse, error)
	Reset(ctx context.Context, email string) (*dto.StateResponse, error)
}

type documentService struct {
	sessions         ISessionStore
	stateManager     *state.Manager
	llm              llm.LLMProvider
	prompts          *prompt.Builder
	translator       ITranslator
	thumbnails       IThumbnailGenerator // optional
	videos           IVideoClient        // optional
	publisherService IPublisherService
	eventPublisher   IEventPublisher
	options          DocumentOptions
	logger           logger.ILogger
}

func NewDocumentService(
	sessions ISessionStore,
	stateManager *state.Manager,
	provider llm.LLMProvider,
	prompts *prompt.Builder,
	translator ITranslator,
	thumbnails IThumbnailGenerator,
	videos IVideoClient,
	publisherService IPublisherService,
	eventPublisher IEventPublisher,
	options DocumentOptions,
	log logger.ILogger,
) IDocumentService {
	if options.ScriptMaxWords <= 0 {
		options.ScriptMaxWords = 180
	}
	return &documentService{
		sessions:         sessions,
		stateManager:     stateManager,
		llm:              provider,
		prompts:          prompts,
		translator:       translator,
		thumbnails:       thumbnails,
		videos:           videos,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		options:          options,
		logger:           log,
	}
}

func (s *documentService) session(email string) (*store.Session, error) {
	session, ok := s.sessions.Get(email)
	if !ok {
		return nil, serverutils.Wrap(serverutils.ErrUnauthorized, ErrSessionExpired)
	}
	return session, nil
}

// open moves the session to view, enforcing the analysis gate
func (s *documentService) open(email string, view store.View) (*store.Session, error) {
	session, err := s.session(email)
	if err != nil {
		return nil, err
	}
	if err := s.stateManager.SetActiveView(session, view); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *documentService) stateResponse(session *store.Session) *dto.StateResponse {
	snap := s.stateManager.Snapshot(session)
	return &dto.StateResponse{
		ActiveView:        snap.ActiveView,
		Flags:             snap.Flags(),
		AnalysisCompleted: snap.AnalysisCompleted,
		DocumentName:      snap.DocumentName,
		FileType:          snap.FileType,
		Language:          snap.Language,
		QuizPerformance:   snap.QuizPerformance,
		GeneratedViews:    snap.GeneratedViews,
	}
}

func (s *documentService) State(ctx context.Context, email string) (*dto.StateResponse, error) {
	session, err := s.session(email)
	if err != nil {
		return nil, err
	}
	return s.stateResponse(session), nil
}

func fileTypeLabel(fileType string) string {
	switch fileType {
	case extract.TypePDF:
		return "PDF"
	case extract.TypePPTX:
		return "PowerPoint"
	default:
		return strings.ToUpper(fileType)
	}
}

// Analyze starts a new analysis. Once it succeeds the previous document and its artifacts are discarded
func (s *documentService) Analyze(ctx context.Context, email string, req *dto.AnalyzeRequest, file io.Reader) (*dto.AnalyzeResponse, error) {
	session, err := s.session(email)
	if err != nil {
		return nil, err
	}

	text, fileType, err := extract.Text(req.FileName, req.ContentType, file)
	if err != nil {
		s.logger.Warn("DOCUMENT", "Text extraction failed", map[string]interface{}{
			"user":  email,
			"file":  req.FileName,
			"error": err.Error(),
		})
		return nil, err
	}

	p, err := s.prompts.Analysis(fileTypeLabel(fileType), text, req.LevelMode)
	if err != nil {
		return nil, err
	}
	analysis, err := s.generate(ctx, "analysis", p)
	if err != nil {
		return nil, err
	}

	// The previous analysis stays usable until the new one has been generated
	s.stateManager.ResetAnalysis(session)
	s.stateManager.SetDocument(session, req.FileName, fileType, text)
	s.stateManager.StoreArtifact(session, store.ViewAnalysis, analysis)
	s.stateManager.MarkAnalysisCompleted(session)

	snap := s.stateManager.Snapshot(session)
	s.publishUsage(ctx, dto.PublishUsageMessage{
		Kind:         dto.UsageDocumentAnalyzed,
		UserEmail:    email,
		DocumentName: req.FileName,
		FileType:     fileTypeLabel(fileType),
		FileSize:     req.Size,
		Language:     languageName(snap.Language),
	})
	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, events.New(events.TypeDocumentAnalyzed, map[string]interface{}{
			"email":      email,
			"document":   req.FileName,
			"file_type":  fileType,
			"level_mode": req.LevelMode,
		})); err != nil {
			s.logger.Warn("DOCUMENT", "Failed to publish event", map[string]interface{}{"error": err.Error()})
		}
	}

	s.logger.Info("DOCUMENT", "Analysis completed", map[string]interface{}{
		"user":       email,
		"document":   req.FileName,
		"chars":      len(text),
		"level_mode": req.LevelMode,
	})

	return &dto.AnalyzeResponse{
		DocumentName: req.FileName,
		FileType:     fileType,
		ActiveView:   snap.ActiveView,
		Content:      s.translator.Translate(ctx, analysis, snap.Language),
	}, nil
}

// SetView navigates and returns whatever the new view displays
func (s *documentService) SetView(ctx context.Context, email, view string) (*dto.ViewResponse, error) {
	session, err := s.session(email)
	if err != nil {
		return nil, err
	}
	if err := s.stateManager.SetView(session, view); err != nil {
		return nil, err
	}

	res := &dto.ViewResponse{}
	switch s.stateManager.Snapshot(session).ActiveView {
	case store.ViewAnalysis:
		res.Content, err = s.content(ctx, session, store.ViewAnalysis)
	case store.ViewAssessment:
		res.Assessment, err = s.assessment(ctx, session)
	case store.ViewVideoScript:
		res.Content, err = s.ensureContent(ctx, session, store.ViewVideoScript)
	case store.ViewConclusion:
		res.Content, err = s.ensureContent(ctx, session, store.ViewConclusion)
	case store.ViewVideoGeneration:
		// Rendering videos is slow and billed; it only starts on an explicit request
		if _, ok := s.stateManager.Artifact(session, store.ViewVideoGeneration); ok {
			res.Content, err = s.content(ctx, session, store.ViewVideoGeneration)
		}
	}
	if err != nil {
		return nil, err
	}

	res.State = *s.stateResponse(session)
	return res, nil
}

func (s *documentService) AskDoubt(ctx context.Context, email string, req *dto.DoubtRequest) (*dto.DoubtResponse, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return nil, serverutils.Wrap(serverutils.ErrBadRequest, ErrEmptyQuestion)
	}
	session, err := s.open(email, store.ViewDoubtSession)
	if err != nil {
		return nil, err
	}
	snap := s.stateManager.Snapshot(session)

	p, err := s.prompts.Doubt(snap.DocumentText, question)
	if err != nil {
		return nil, err
	}
	answer, err := s.generate(ctx, "doubt", p)
	if err != nil {
		return nil, err
	}

	s.publishCounter(ctx, email, entity.CounterDoubtSessions)
	return &dto.DoubtResponse{
		Question: question,
		Answer:   s.translator.Translate(ctx, answer, snap.Language),
	}, nil
}

func (s *documentService) Assessment(ctx context.Context, email string) (*dto.AssessmentResponse, error) {
	session, err := s.open(email, store.ViewAssessment)
	if err != nil {
		return nil, err
	}
	return s.assessment(ctx, session)
}

func (s *documentService) assessment(ctx context.Context, session *store.Session) (*dto.AssessmentResponse, error) {
	if a := s.stateManager.Assessment(session); a != nil {
		return &dto.AssessmentResponse{Questions: a.Public()}, nil
	}

	snap := s.stateManager.Snapshot(session)
	p, err := s.prompts.Assessment(snap.DocumentText)
	if err != nil {
		return nil, err
	}
	raw, err := s.generate(ctx, "assessment", p)
	if err != nil {
		return nil, err
	}
	parsed, err := assessment.Parse(raw)
	if err != nil {
		s.logger.Error("DOCUMENT", "Assessment JSON rejected", map[string]interface{}{
			"user":  session.UserEmail,
			"error": err.Error(),
		})
		return nil, serverutils.Wrap(serverutils.ErrUpstream, fmt.Errorf("Error generating questions: %w", err))
	}

	// The first stored quiz wins when two requests race
	if s.stateManager.StoreArtifact(session, store.ViewAssessment, assessment.Clean(raw)) {
		s.stateManager.SetAssessment(session, parsed)
	}
	if current := s.stateManager.Assessment(session); current != nil {
		parsed = current
	}
	return &dto.AssessmentResponse{Questions: parsed.Public()}, nil
}

func (s *documentService) SubmitAssessment(ctx context.Context, email string, req *dto.SubmitAssessmentRequest) (*dto.SubmitAssessmentResponse, error) {
	session, err := s.open(email, store.ViewAssessment)
	if err != nil {
		return nil, err
	}
	quiz := s.stateManager.Assessment(session)
	if quiz == nil {
		return nil, serverutils.Wrap(serverutils.ErrConflict, ErrAssessmentNotStarted)
	}

	result := quiz.Grade(req.Answers)
	s.stateManager.SetQuizPerformance(session, store.QuizPerformance{
		Score:      result.Score,
		Total:      result.Total,
		Percentage: result.Percentage,
		Level:      result.Level,
	})

	s.publishUsage(ctx, dto.PublishUsageMessage{
		Kind:       dto.UsageQuizSubmitted,
		UserEmail:  email,
		QuizScore:  result.Percentage,
		QuizDetail: result,
	})

	s.logger.Info("DOCUMENT", "Assessment submitted", map[string]interface{}{
		"user":  email,
		"score": result.Score,
		"total": result.Total,
		"level": result.Level,
	})

	return &dto.SubmitAssessmentResponse{
		Score:      result.Score,
		Total:      result.Total,
		Percentage: result.Percentage,
		Level:      result.Level,
		Feedback:   result.Feedback,
	}, nil
}

func (s *documentService) VideoScript(ctx context.Context, email string) (*dto.ContentResponse, error) {
	session, err := s.open(email, store.ViewVideoScript)
	if err != nil {
		return nil, err
	}
	return s.ensureContent(ctx, session, store.ViewVideoScript)
}

// VideoScriptFile returns the untranslated script for download
func (s *documentService) VideoScriptFile(ctx context.Context, email string) ([]byte, error) {
	session, err := s.open(email, store.ViewVideoScript)
	if err != nil {
		return nil, err
	}
	script, err := s.ensureArtifact(ctx, session, store.ViewVideoScript)
	if err != nil {
		return nil, err
	}
	return []byte(script), nil
}

func (s *documentService) Conclusion(ctx context.Context, email string) (*dto.ContentResponse, error) {
	session, err := s.open(email, store.ViewConclusion)
	if err != nil {
		return nil, err
	}
	return s.ensureContent(ctx, session, store.ViewConclusion)
}

func (s *documentService) PersonalizedPdf(ctx context.Context, email string) (*dto.PdfFile, error) {
	session, err := s.open(email, store.ViewPersonalizedPdf)
	if err != nil {
		return nil, err
	}
	content, err := s.ensureArtifact(ctx, session, store.ViewPersonalizedPdf)
	if err != nil {
		return nil, err
	}

	blocks, err := render.RenderPtr(&content)
	if err != nil {
		return nil, err
	}
	pdf, err := render.NewPDFLayout(personalizedPdfTitle).Layout(blocks)
	if err != nil {
		return nil, fmt.Errorf("Failed to create PDF: %w", err)
	}

	s.publishCounter(ctx, email, entity.CounterPdfsGenerated)
	return &dto.PdfFile{FileName: PersonalizedPdfFileName, Content: pdf}, nil
}

func (s *documentService) SetLanguage(ctx context.Context, email string, req *dto.LanguageRequest) (*dto.StateResponse, error) {
	session, err := s.session(email)
	if err != nil {
		return nil, err
	}
	lang, ok := translate.LookupLanguage(req.Language)
	if !ok {
		return nil, serverutils.Wrap(serverutils.ErrBadRequest, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, req.Language))
	}
	s.stateManager.SetLanguage(session, lang.Code)
	return s.stateResponse(session), nil
}

func (s *documentService) Reset(ctx context.Context, email string) (*dto.StateResponse, error) {
	session, err := s.session(email)
	if err != nil {
		return nil, err
	}
	s.stateManager.ResetAnalysis(session)
	return s.stateResponse(session), nil
}

// content returns an existing artifact translated for display
func (s *documentService) content(ctx context.Context, session *store.Session, view store.View) (*dto.ContentResponse, error) {
	text, ok := s.stateManager.Artifact(session, view)
	if !ok {
		return nil, serverutils.Wrap(serverutils.ErrNotFound, fmt.Errorf("no %s content yet", view))
	}
	lang := s.stateManager.Snapshot(session).Language
	return &dto.ContentResponse{
		View:     view,
		Content:  s.translator.Translate(ctx, text, lang),
		Language: lang,
	}, nil
}

func (s *documentService) ensureContent(ctx context.Context, session *store.Session, view store.View) (*dto.ContentResponse, error) {
	if _, err := s.ensureArtifact(ctx, session, view); err != nil {
		return nil, err
	}
	return s.content(ctx, session, view)
}

// ensureArtifact generates a view's artifact on first use and reuses it afterwards
func (s *documentService) ensureArtifact(ctx context.Context, session *store.Session, view store.View) (string, error) {
	if text, ok := s.stateManager.Artifact(session, view); ok {
		return text, nil
	}

	snap := s.stateManager.Snapshot(session)
	var (
		p   string
		err error
	)
	switch view {
	case store.ViewVideoScript:
		p, err = s.prompts.VideoScript(snap.DocumentText)
	case store.ViewConclusion:
		p, err = s.prompts.Conclusion(snap.DocumentText)
	case store.ViewPersonalizedPdf:
		var perf *prompt.Performance
		if q := snap.QuizPerformance; q != nil {
			perf = &prompt.Performance{Score: q.Score, Total: q.Total, Percentage: q.Percentage, Level: q.Level}
		}
		p, err = s.prompts.PersonalizedPdf(snap.DocumentText, perf)
	default:
		return "", fmt.Errorf("no generator for view %s", view)
	}
	if err != nil {
		return "", err
	}

	text, err := s.generate(ctx, string(view), p)
	if err != nil {
		return "", err
	}
	if s.stateManager.StoreArtifact(session, view, text) && view == store.ViewVideoScript {
		s.publishCounter(ctx, session.UserEmail, entity.CounterVideoScriptsGenerated)
	}

	stored, _ := s.stateManager.Artifact(session, view)
	return stored, nil
}

func (s *documentService) generate(ctx context.Context, kind, p string) (string, error) {
	out, err := s.llm.Generate(ctx, p)
	if err == nil && strings.TrimSpace(out) == "" {
		err = llm.ErrEmptyResponse
	}
	if err != nil {
		s.logger.Error("DOCUMENT", "Generation failed", map[string]interface{}{
			"kind":  kind,
			"error": err.Error(),
		})
		return "", serverutils.Wrap(serverutils.ErrUpstream, fmt.Errorf("failed to generate %s: %w", kind, err))
	}
	return out, nil
}

func (s *documentService) publishCounter(ctx context.Context, email string, counter entity.UsageCounter) {
	s.publishUsage(ctx, dto.PublishUsageMessage{
		Kind:      dto.UsageCounterIncrement,
		UserEmail: email,
		Counter:   string(counter),
	})
}

// publishUsage never fails the request; usage tracking is auxiliary
func (s *documentService) publishUsage(ctx context.Context, msg dto.PublishUsageMessage) {
	if s.publisherService == nil {
		return
	}
	payload, err := json.Marshal(msg)
	if err == nil {
		err = s.publisherService.Publish(ctx, payload)
	}
	if err != nil {
		s.logger.Warn("DOCUMENT", "Failed to publish usage", map[string]interface{}{
			"kind":  string(msg.Kind),
			"error": err.Error(),
		})
	}
}

func languageName(code string) string {
	if lang, ok := translate.LookupLanguage(code); ok {
		return lang.Name
	}
	return "English"
}
