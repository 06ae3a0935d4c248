package store

import (
	"sync"

	"student-analyzer-be/pkg/assessment"
)

// View is one of the mutually exclusive display modes of a session
type View string

const (
	ViewUpload          View = "Upload"
	ViewAnalysis        View = "Analysis"
	ViewDoubtSession    View = "DoubtSession"
	ViewAssessment      View = "Assessment"
	ViewVideoScript     View = "VideoScript"
	ViewVideoGeneration View = "VideoGeneration"
	ViewConclusion      View = "Conclusion"
	ViewPersonalizedPdf View = "PersonalizedPdf"
)

// Views lists every view in navigation order
var Views = []View{
	ViewUpload,
	ViewAnalysis,
	ViewDoubtSession,
	ViewAssessment,
	ViewVideoScript,
	ViewVideoGeneration,
	ViewConclusion,
	ViewPersonalizedPdf,
}

// Valid reports whether v belongs to the closed view enumeration
func (v View) Valid() bool {
	for _, known := range Views {
		if v == known {
			return true
		}
	}
	return false
}

// IsAction reports whether v is one of the views unlocked by a completed analysis
func (v View) IsAction() bool {
	return v.Valid() && v != ViewUpload && v != ViewAnalysis
}

const (
	DefaultLanguage = "en"
)

// QuizPerformance is the outcome of the latest assessment submission
type QuizPerformance struct {
	Score      int     `json:"score"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
	Level      string  `json:"level"`
}

// Session represents one authenticated user's document-analysis state in memory.
// Fields must only be touched while holding the session lock; pkg/state does that.
type Session struct {
	mu sync.Mutex

	ID        string `json:"id"` // user email
	UserEmail string `json:"user_email"`

	ActiveView        View `json:"active_view"`
	AnalysisCompleted bool `json:"analysis_completed"`

	// THE DOCUMENT (owned by the session, cleared on reset)
	DocumentText string `json:"-"`
	DocumentName string `json:"document_name"`
	FileType     string `json:"file_type"`

	// Generated text per view, reused until the next reset
	Artifacts map[View]string `json:"-"`

	Assessment      *assessment.Assessment `json:"-"`
	QuizPerformance *QuizPerformance       `json:"quiz_performance"`

	Language string `json:"language"`
}

// NewSession creates the initial session state for a freshly logged-in user
func NewSession(userEmail string) *Session {
	return &Session{
		ID:         userEmail,
		UserEmail:  userEmail,
		ActiveView: ViewUpload,
		Artifacts:  make(map[View]string),
		Language:   DefaultLanguage,
	}
}

func (s *Session) Lock()   { s.mu.Lock() }
func (s *Session) Unlock() { s.mu.Unlock() }

// Snapshot is a detached, read-only copy of a session
type Snapshot struct {
	UserEmail         string           `json:"user_email"`
	ActiveView        View             `json:"active_view"`
	AnalysisCompleted bool             `json:"analysis_completed"`
	DocumentName      string           `json:"document_name,omitempty"`
	FileType          string           `json:"file_type,omitempty"`
	Language          string           `json:"language"`
	QuizPerformance   *QuizPerformance `json:"quiz_performance,omitempty"`
	GeneratedViews    []View           `json:"generated_views"`
	DocumentText      string           `json:"-"`
}

// Flags expands the active view into one boolean per view; exactly one is true
func (s Snapshot) Flags() map[View]bool {
	flags := make(map[View]bool, len(Views))
	for _, v := range Views {
		flags[v] = v == s.ActiveView
	}
	return flags
}
