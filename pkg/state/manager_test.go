package state

import (
	"sync"
	"testing"

	"student-analyzer-be/internal/pkg/logger"
	"student-analyzer-be/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *Manager {
	return NewManager(logger.NewNopLogger())
}

func completedSession(m *Manager) *store.Session {
	s := store.NewSession("student@example.com")
	m.SetDocument(s, "notes.pdf", "pdf", "photosynthesis text")
	m.MarkAnalysisCompleted(s)
	return s
}

func activeFlags(t *testing.T, m *Manager, s *store.Session) []store.View {
	t.Helper()
	var on []store.View
	for v, flag := range m.Snapshot(s).Flags() {
		if flag {
			on = append(on, v)
		}
	}
	return on
}

func TestParseView(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    store.View
		wantErr bool
	}{
		{name: "exact", input: "Assessment", want: store.ViewAssessment},
		{name: "case insensitive", input: "videoscript", want: store.ViewVideoScript},
		{name: "empty means analysis", input: "", want: store.ViewAnalysis},
		{name: "reset means analysis", input: "reset", want: store.ViewAnalysis},
		{name: "unknown", input: "Dashboard", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseView(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidViewTransition)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSetView_ExactlyOneFlagMatchesLastCall(t *testing.T) {
	m := newTestManager()
	s := completedSession(m)

	sequence := []string{"Assessment", "Conclusion", "", "DoubtSession", "PersonalizedPdf", "reset", "VideoGeneration", "Upload", "VideoScript", "Analysis"}
	for _, name := range sequence {
		require.NoError(t, m.SetView(s, name))

		want, _ := ParseView(name)
		assert.Equal(t, []store.View{want}, activeFlags(t, m, s), "after %q", name)
		assert.Equal(t, want, s.ActiveView)
	}
}

func TestSetView_InvalidIdentifier(t *testing.T) {
	m := newTestManager()
	s := completedSession(m)
	require.NoError(t, m.SetView(s, "Conclusion"))

	err := m.SetView(s, "Quiz")

	assert.ErrorIs(t, err, ErrInvalidViewTransition)
	assert.Equal(t, store.ViewConclusion, s.ActiveView)
}

func TestSetView_GateBeforeAnalysis(t *testing.T) {
	m := newTestManager()
	s := store.NewSession("student@example.com")

	for _, v := range store.Views {
		err := m.SetActiveView(s, v)
		if v == store.ViewUpload {
			assert.NoError(t, err)
			continue
		}
		assert.ErrorIs(t, err, ErrAnalysisNotCompleted, v)
		assert.Equal(t, store.ViewUpload, s.ActiveView)
	}

	assert.ErrorIs(t, m.SetView(s, ""), ErrAnalysisNotCompleted)
}

func TestResetAnalysis_AlwaysReturnsToInitialState(t *testing.T) {
	m := newTestManager()

	fresh := store.NewSession("a@example.com")
	populated := completedSession(m)
	m.StoreArtifact(populated, store.ViewAnalysis, "# Analysis")
	m.StoreArtifact(populated, store.ViewConclusion, "# Conclusion")
	m.SetQuizPerformance(populated, store.QuizPerformance{Score: 1, Total: 2, Percentage: 50, Level: "Good"})
	m.SetLanguage(populated, "hi")
	require.NoError(t, m.SetView(populated, "Assessment"))

	for _, s := range []*store.Session{fresh, populated} {
		m.ResetAnalysis(s)

		assert.Equal(t, store.ViewUpload, s.ActiveView)
		assert.False(t, s.AnalysisCompleted)
		assert.Empty(t, s.DocumentText)
		assert.Empty(t, s.Artifacts)
		assert.Nil(t, s.QuizPerformance)
		assert.Nil(t, s.Assessment)
	}

	assert.Equal(t, "student@example.com", populated.UserEmail)
	assert.Equal(t, "hi", populated.Language)
}

func TestMarkAnalysisCompleted_Idempotent(t *testing.T) {
	m := newTestManager()

	once := store.NewSession("a@example.com")
	m.MarkAnalysisCompleted(once)

	twice := store.NewSession("a@example.com")
	m.MarkAnalysisCompleted(twice)
	m.MarkAnalysisCompleted(twice)

	assert.Equal(t, m.Snapshot(once), m.Snapshot(twice))
	assert.True(t, twice.AnalysisCompleted)
	assert.Equal(t, store.ViewAnalysis, twice.ActiveView)
}

func TestMarkAnalysisCompleted_KeepsCurrentActionView(t *testing.T) {
	m := newTestManager()
	s := completedSession(m)
	require.NoError(t, m.SetView(s, "Conclusion"))

	m.MarkAnalysisCompleted(s)

	assert.Equal(t, store.ViewConclusion, s.ActiveView)
}

func TestStoreArtifact_KeepsFirstValue(t *testing.T) {
	m := newTestManager()
	s := completedSession(m)

	assert.True(t, m.StoreArtifact(s, store.ViewVideoScript, "first"))
	assert.False(t, m.StoreArtifact(s, store.ViewVideoScript, "second"))

	text, ok := m.Artifact(s, store.ViewVideoScript)
	assert.True(t, ok)
	assert.Equal(t, "first", text)

	_, ok = m.Artifact(s, store.ViewConclusion)
	assert.False(t, ok)
}

func TestSetQuizPerformance_DropsPersonalizedGuide(t *testing.T) {
	m := newTestManager()
	s := completedSession(m)
	m.StoreArtifact(s, store.ViewAnalysis, "# Analysis")
	m.StoreArtifact(s, store.ViewPersonalizedPdf, "# Guide without quiz")

	m.SetQuizPerformance(s, store.QuizPerformance{Score: 1, Total: 2, Percentage: 50, Level: "Good"})

	_, ok := m.Artifact(s, store.ViewPersonalizedPdf)
	assert.False(t, ok)
	text, ok := m.Artifact(s, store.ViewAnalysis)
	assert.True(t, ok)
	assert.Equal(t, "# Analysis", text)

	assert.True(t, m.StoreArtifact(s, store.ViewPersonalizedPdf, "# Guide for Good"))
	text, _ = m.Artifact(s, store.ViewPersonalizedPdf)
	assert.Equal(t, "# Guide for Good", text)
}

func TestScenario_AnalysisAssessmentReset(t *testing.T) {
	m := newTestManager()
	s := store.NewSession("student@example.com")

	m.SetDocument(s, "bio.pdf", "pdf", "cells and stuff")
	m.StoreArtifact(s, store.ViewAnalysis, "# Cell Biology")
	m.MarkAnalysisCompleted(s)

	text, ok := m.Artifact(s, store.ViewAnalysis)
	require.True(t, ok)
	assert.Equal(t, "# Cell Biology", text)
	assert.Equal(t, store.ViewAnalysis, s.ActiveView)

	require.NoError(t, m.SetView(s, "Assessment"))
	assert.Equal(t, store.ViewAssessment, s.ActiveView)
	text, _ = m.Artifact(s, store.ViewAnalysis)
	assert.Equal(t, "# Cell Biology", text)

	m.ResetAnalysis(s)
	assert.Empty(t, s.Artifacts)
	assert.Equal(t, store.ViewUpload, s.ActiveView)
}

func TestSnapshot_IsDetached(t *testing.T) {
	m := newTestManager()
	s := completedSession(m)
	m.StoreArtifact(s, store.ViewConclusion, "c")
	m.StoreArtifact(s, store.ViewAnalysis, "a")
	m.SetQuizPerformance(s, store.QuizPerformance{Score: 2, Total: 2, Percentage: 100, Level: "Good"})

	snap := m.Snapshot(s)
	snap.QuizPerformance.Score = 0

	assert.Equal(t, 2, s.QuizPerformance.Score)
	assert.Equal(t, []store.View{store.ViewAnalysis, store.ViewConclusion}, snap.GeneratedViews)
}

func TestManager_ConcurrentAccess(t *testing.T) {
	m := newTestManager()
	s := completedSession(m)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = m.SetActiveView(s, store.Views[i%len(store.Views)])
			m.StoreArtifact(s, store.ViewDoubtSession, "x")
			_ = m.Snapshot(s)
		}(i)
	}
	wg.Wait()

	assert.Len(t, activeFlags(t, m, s), 1)
}
