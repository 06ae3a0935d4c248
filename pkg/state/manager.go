package state

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"student-analyzer-be/internal/pkg/logger"
	"student-analyzer-be/pkg/assessment"
	"student-analyzer-be/pkg/store"
)

var (
	// ErrInvalidViewTransition is returned for identifiers outside the view enumeration
	ErrInvalidViewTransition = errors.New("invalid view transition")
	// ErrAnalysisNotCompleted is returned when an action view is requested before the analysis finished
	ErrAnalysisNotCompleted = errors.New("analysis not completed")
)

// ResetIdentifier navigates back to the analysis view, same as the empty identifier
const ResetIdentifier = "reset"

// ParseView resolves a wire identifier to a view.
// The empty identifier and "reset" both mean Analysis. Matching ignores case.
func ParseView(name string) (store.View, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, ResetIdentifier) {
		return store.ViewAnalysis, nil
	}
	for _, v := range store.Views {
		if strings.EqualFold(name, string(v)) {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidViewTransition, name)
}

// Manager handles session view transitions
type Manager struct {
	logger logger.ILogger
}

// NewManager creates a new state manager
func NewManager(logger logger.ILogger) *Manager {
	return &Manager{logger: logger}
}

// SetView moves the session to the named view
func (m *Manager) SetView(session *store.Session, name string) error {
	view, err := ParseView(name)
	if err != nil {
		m.logger.Warn("STATE", "Rejected view identifier", map[string]interface{}{
			"user":  session.UserEmail,
			"view":  name,
			"error": err.Error(),
		})
		return err
	}
	return m.SetActiveView(session, view)
}

// SetActiveView is the typed variant of SetView
func (m *Manager) SetActiveView(session *store.Session, view store.View) error {
	if !view.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidViewTransition, view)
	}

	session.Lock()
	defer session.Unlock()

	if !session.AnalysisCompleted && view != store.ViewUpload {
		return fmt.Errorf("%w: cannot open %s", ErrAnalysisNotCompleted, view)
	}

	from := session.ActiveView
	session.ActiveView = view
	m.logger.Debug("STATE", "View changed", map[string]interface{}{
		"user": session.UserEmail,
		"from": string(from),
		"to":   string(view),
	})
	return nil
}

// ResetAnalysis returns the session to its initial state.
// The owner and the chosen display language survive the reset.
func (m *Manager) ResetAnalysis(session *store.Session) {
	session.Lock()
	defer session.Unlock()

	session.DocumentText = ""
	session.DocumentName = ""
	session.FileType = ""
	session.Artifacts = make(map[store.View]string)
	session.Assessment = nil
	session.QuizPerformance = nil
	session.AnalysisCompleted = false
	session.ActiveView = store.ViewUpload

	m.logger.Info("STATE", "Analysis reset", map[string]interface{}{
		"user": session.UserEmail,
	})
}

// MarkAnalysisCompleted unlocks the action views. Calling it again is a no-op.
func (m *Manager) MarkAnalysisCompleted(session *store.Session) {
	session.Lock()
	defer session.Unlock()

	if session.AnalysisCompleted {
		return
	}
	session.AnalysisCompleted = true
	if session.ActiveView == store.ViewUpload {
		session.ActiveView = store.ViewAnalysis
	}

	m.logger.Info("STATE", "Analysis completed", map[string]interface{}{
		"user":     session.UserEmail,
		"document": session.DocumentName,
	})
}

// SetDocument attaches freshly extracted text to the session
func (m *Manager) SetDocument(session *store.Session, name, fileType, text string) {
	session.Lock()
	defer session.Unlock()

	session.DocumentName = name
	session.FileType = fileType
	session.DocumentText = text
}

// StoreArtifact keeps the first text generated for a view.
// It reports false when the view already had an artifact, which is left untouched.
func (m *Manager) StoreArtifact(session *store.Session, view store.View, text string) bool {
	session.Lock()
	defer session.Unlock()

	if session.Artifacts == nil {
		session.Artifacts = make(map[store.View]string)
	}
	if _, exists := session.Artifacts[view]; exists {
		return false
	}
	session.Artifacts[view] = text
	return true
}

func (m *Manager) Artifact(session *store.Session, view store.View) (string, bool) {
	session.Lock()
	defer session.Unlock()

	text, ok := session.Artifacts[view]
	return text, ok
}

// SetAssessment stores the parsed quiz that belongs to the Assessment artifact
func (m *Manager) SetAssessment(session *store.Session, a *assessment.Assessment) {
	session.Lock()
	defer session.Unlock()
	session.Assessment = a
}

func (m *Manager) Assessment(session *store.Session) *assessment.Assessment {
	session.Lock()
	defer session.Unlock()
	return session.Assessment
}

// SetQuizPerformance replaces the latest quiz outcome.
// The personalized guide is built from the quiz outcome, so a stored guide is dropped
// and the next request regenerates it.
func (m *Manager) SetQuizPerformance(session *store.Session, perf store.QuizPerformance) {
	session.Lock()
	defer session.Unlock()
	session.QuizPerformance = &perf
	delete(session.Artifacts, store.ViewPersonalizedPdf)
}

func (m *Manager) SetLanguage(session *store.Session, code string) {
	session.Lock()
	defer session.Unlock()
	session.Language = code
}

// Snapshot copies the session so it can be read without holding the lock
func (m *Manager) Snapshot(session *store.Session) store.Snapshot {
	session.Lock()
	defer session.Unlock()

	generated := make([]store.View, 0, len(session.Artifacts))
	for v := range session.Artifacts {
		generated = append(generated, v)
	}
	sort.Slice(generated, func(i, j int) bool { return viewIndex(generated[i]) < viewIndex(generated[j]) })

	var perf *store.QuizPerformance
	if session.QuizPerformance != nil {
		p := *session.QuizPerformance
		perf = &p
	}

	return store.Snapshot{
		UserEmail:         session.UserEmail,
		ActiveView:        session.ActiveView,
		AnalysisCompleted: session.AnalysisCompleted,
		DocumentName:      session.DocumentName,
		FileType:          session.FileType,
		Language:          session.Language,
		QuizPerformance:   perf,
		GeneratedViews:    generated,
		DocumentText:      session.DocumentText,
	}
}

func viewIndex(v store.View) int {
	for i, known := range store.Views {
		if known == v {
			return i
		}
	}
	return len(store.Views)
}
