package dto

import (
	"student-analyzer-be/pkg/assessment"
	"student-analyzer-be/pkg/store"
	"student-analyzer-be/pkg/translate"
)

// AnalyzeRequest is built from the multipart form, not parsed from JSON
type AnalyzeRequest struct {
	FileName    string
	ContentType string
	Size        int64
	LevelMode   bool
}

type SetViewRequest struct {
	View string `json:"view"`
}

type DoubtRequest struct {
	Question string `json:"question" validate:"required"`
}

type SubmitAssessmentRequest struct {
	Answers map[string]string `json:"answers" validate:"required"`
}

type LanguageRequest struct {
	Language string `json:"language" validate:"required"`
}

type StateResponse struct {
	ActiveView        store.View             `json:"active_view"`
	Flags             map[store.View]bool    `json:"flags"`
	AnalysisCompleted bool                   `json:"analysis_completed"`
	DocumentName      string                 `json:"document_name,omitempty"`
	FileType          string                 `json:"file_type,omitempty"`
	Language          string                 `json:"language"`
	QuizPerformance   *store.QuizPerformance `json:"quiz_performance,omitempty"`
	GeneratedViews    []store.View           `json:"generated_views"`
}

// ContentResponse carries one view's text, already translated for display
type ContentResponse struct {
	View     store.View `json:"view"`
	Content  string     `json:"content"`
	Language string     `json:"language"`
}

type AnalyzeResponse struct {
	DocumentName string     `json:"document_name"`
	FileType     string     `json:"file_type"`
	ActiveView   store.View `json:"active_view"`
	Content      string     `json:"content"`
}

type DoubtResponse struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type AssessmentResponse struct {
	Questions []assessment.PublicQuestion `json:"questions"`
}

type SubmitAssessmentResponse struct {
	Score      int                   `json:"score"`
	Total      int                   `json:"total"`
	Percentage float64               `json:"percentage"`
	Level      string                `json:"level"`
	Feedback   []assessment.Feedback `json:"feedback"`
}

// ViewResponse is the payload of PUT /view. Only the field matching the view is set.
type ViewResponse struct {
	State      StateResponse       `json:"state"`
	Content    *ContentResponse    `json:"content,omitempty"`
	Assessment *AssessmentResponse `json:"assessment,omitempty"`
}

type PdfFile struct {
	FileName string
	Content  []byte
}

type LanguagesResponse struct {
	Languages []translate.Language `json:"languages"`
}
