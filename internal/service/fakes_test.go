package service

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"student-analyzer-be/internal/entity"
	"student-analyzer-be/internal/repository/contract"
	"student-analyzer-be/internal/repository/specification"
	"student-analyzer-be/internal/repository/unitofwork"
	"student-analyzer-be/pkg/events"
	"student-analyzer-be/pkg/llm"
	"student-analyzer-be/pkg/media/synthesia"

	"github.com/stretchr/testify/require"
)

// fakeDB is the shared in-memory state behind every fake unit of work
type fakeDB struct {
	mu           sync.Mutex
	accounts     []*entity.Account
	interactions []*entity.Interaction
	commits      int
}

type fakeFactory struct{ db *fakeDB }

func newFakeFactory() *fakeFactory { return &fakeFactory{db: &fakeDB{}} }

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUoW{db: f.db}
}

type fakeUoW struct {
	db   *fakeDB
	inTx bool
}

func (u *fakeUoW) Begin(ctx context.Context) error { u.inTx = true; return nil }
func (u *fakeUoW) Commit() error {
	if !u.inTx {
		return fmt.Errorf("no transaction to commit")
	}
	u.inTx = false
	u.db.mu.Lock()
	u.db.commits++
	u.db.mu.Unlock()
	return nil
}
func (u *fakeUoW) Rollback() error {
	u.inTx = false
	return nil
}
func (u *fakeUoW) InTransaction() bool { return u.inTx }

func (u *fakeUoW) AccountRepository() contract.AccountRepository         { return &fakeAccountRepo{db: u.db} }
func (u *fakeUoW) InteractionRepository() contract.InteractionRepository { return &fakeInteractionRepo{db: u.db} }

type fakeAccountRepo struct{ db *fakeDB }

func (r *fakeAccountRepo) Create(ctx context.Context, a *entity.Account) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	a.Id = uint(len(r.db.accounts) + 1)
	cp := *a
	r.db.accounts = append(r.db.accounts, &cp)
	return nil
}

func (r *fakeAccountRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Account, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, spec := range specs {
		if byEmail, ok := spec.(specification.ByEmail); ok {
			for _, a := range r.db.accounts {
				if strings.EqualFold(a.Email, byEmail.Email) {
					cp := *a
					return &cp, nil
				}
			}
		}
	}
	return nil, nil
}

func (r *fakeAccountRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return int64(len(r.db.accounts)), nil
}

func (r *fakeAccountRepo) RecordLogin(ctx context.Context, email string, at time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, a := range r.db.accounts {
		if strings.EqualFold(a.Email, email) {
			a.LoginCount++
			a.LastLoginAt = &at
			return nil
		}
	}
	return fmt.Errorf("record not found")
}

type fakeInteractionRepo struct{ db *fakeDB }

func (r *fakeInteractionRepo) Create(ctx context.Context, i *entity.Interaction) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	i.SNo = int64(len(r.db.interactions) + 1)
	cp := *i
	r.db.interactions = append(r.db.interactions, &cp)
	return nil
}

// FindOne honours ByUserEmail and always returns the newest row
func (r *fakeInteractionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Interaction, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	email := ""
	for _, spec := range specs {
		if s, ok := spec.(specification.ByUserEmail); ok {
			email = s.Email
		}
	}
	for i := len(r.db.interactions) - 1; i >= 0; i-- {
		row := r.db.interactions[i]
		if email == "" || row.UserEmail == email {
			cp := *row
			return &cp, nil
		}
	}
	return nil, nil
}

// FindAll honours ByUserEmail and Pagination, newest first
func (r *fakeInteractionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Interaction, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	email, page := "", specification.Pagination{}
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByUserEmail:
			email = s.Email
		case specification.Pagination:
			page = s
		}
	}
	var out []*entity.Interaction
	for i := len(r.db.interactions) - 1; i >= 0; i-- {
		row := r.db.interactions[i]
		if email == "" || row.UserEmail == email {
			cp := *row
			out = append(out, &cp)
		}
	}
	if page.Offset >= len(out) {
		return nil, nil
	}
	out = out[page.Offset:]
	if page.Limit > 0 && page.Limit < len(out) {
		out = out[:page.Limit]
	}
	return out, nil
}

func (r *fakeInteractionRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	email := ""
	for _, spec := range specs {
		if s, ok := spec.(specification.ByUserEmail); ok {
			email = s.Email
		}
	}
	var n int64
	for _, row := range r.db.interactions {
		if email == "" || row.UserEmail == email {
			n++
		}
	}
	return n, nil
}

func (r *fakeInteractionRepo) row(sNo int64) *entity.Interaction {
	for _, row := range r.db.interactions {
		if row.SNo == sNo {
			return row
		}
	}
	return nil
}

func (r *fakeInteractionRepo) IncrementCounter(ctx context.Context, sNo int64, counter entity.UsageCounter) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	row := r.row(sNo)
	if row == nil {
		return fmt.Errorf("row %d not found", sNo)
	}
	switch counter {
	case entity.CounterDoubtSessions:
		row.DoubtSessions++
	case entity.CounterAssessmentsTaken:
		row.AssessmentsTaken++
	case entity.CounterVideoScriptsGenerated:
		row.VideoScriptsGenerated++
	case entity.CounterVideosGenerated:
		row.VideosGenerated++
	case entity.CounterPdfsGenerated:
		row.PdfsGenerated++
	default:
		return fmt.Errorf("unknown usage counter %q", counter)
	}
	return nil
}

func (r *fakeInteractionRepo) UpdateQuiz(ctx context.Context, sNo int64, score float64, detail []byte) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	row := r.row(sNo)
	if row == nil {
		return fmt.Errorf("row %d not found", sNo)
	}
	row.QuizScore = &score
	row.QuizDetail = detail
	return nil
}

// fakeLLM answers through a routing function and records every prompt
type fakeLLM struct {
	mu      sync.Mutex
	prompts []string
	answer  func(prompt string) (string, error)
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return f.Generate(ctx, history[len(history)-1].Content, options...)
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()
	return f.answer(prompt)
}

func (f *fakeLLM) calls(substr string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, p := range f.prompts {
		if strings.Contains(p, substr) {
			n++
		}
	}
	return n
}

const quizJSON = "```json\n" + `{
  "question1": {"question": "What is X?", "options": {"A": "a", "B": "b", "C": "c", "D": "d"}, "correct_answer": "A", "explanation": "Because A."},
  "question2": {"question": "What is Y?", "options": {"A": "a", "B": "b", "C": "c", "D": "d"}, "correct_answer": "C", "explanation": "Because C."}
}` + "\n```"

// routedAnswer returns a canned reply per prompt template
func routedAnswer(prompt string) (string, error) {
	switch {
	case strings.Contains(prompt, "Generate exactly 2 multiple choice questions"):
		return quizJSON, nil
	case strings.Contains(prompt, "charismatic faculty member"):
		return "# VIDEO SCRIPT: Photosynthesis\nScene one.", nil
	case strings.Contains(prompt, "wrapping up an important lesson"):
		return "# Conclusion\nPlants make food.", nil
	case strings.Contains(prompt, "personalized study guide"):
		return "# Study Guide\n\n## Basics\nLight becomes **sugar**.\n### Detail\nChlorophyll.", nil
	case strings.Contains(prompt, "patient, caring professor"):
		return "Chlorophyll absorbs light.", nil
	case strings.Contains(prompt, "educational video presenter"):
		return "Narration for the lesson.", nil
	default:
		return "# Analysis\n## Overview\nPhotosynthesis explained.", nil
	}
}

type fakePublisher struct {
	mu       sync.Mutex
	payloads [][]byte
}

func (p *fakePublisher) Publish(ctx context.Context, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.payloads = append(p.payloads, payload)
	return nil
}

func (p *fakePublisher) count(substr string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, b := range p.payloads {
		if strings.Contains(string(b), substr) {
			n++
		}
	}
	return n
}

type fakeEvents struct {
	mu    sync.Mutex
	types []string
}

func (e *fakeEvents) Publish(ctx context.Context, event events.Event) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.types = append(e.types, event.EventType())
	return nil
}

func (e *fakeEvents) has(eventType string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, t := range e.types {
		if t == eventType {
			return true
		}
	}
	return false
}

type fakeTranslator struct{}

func (fakeTranslator) Translate(ctx context.Context, text, code string) string {
	if code == "" || code == "en" {
		return text
	}
	return "[" + code + "] " + text
}

type fakeThumbnails struct{ err error }

func (f fakeThumbnails) Thumbnail(ctx context.Context, prompt string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "https://images.example.com/thumb.png", nil
}

// fakeVideos fails the levels listed in failTitles
type fakeVideos struct {
	mu         sync.Mutex
	created    []synthesia.CreateVideoRequest
	failTitles []string
}

func (f *fakeVideos) CreateVideo(ctx context.Context, req synthesia.CreateVideoRequest) (*synthesia.Video, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.failTitles {
		if strings.Contains(req.Title, t) {
			return nil, fmt.Errorf("synthesia: quota exceeded")
		}
	}
	f.created = append(f.created, req)
	id := fmt.Sprintf("vid-%d", len(f.created))
	return &synthesia.Video{ID: id, Title: req.Title, Status: synthesia.StatusInProgress}, nil
}

func (f *fakeVideos) WaitForVideo(ctx context.Context, id string) (*synthesia.Video, error) {
	return &synthesia.Video{ID: id, Status: synthesia.StatusComplete, Download: "https://videos.example.com/" + id}, nil
}

const deckSlide = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">
<p:cSld><p:spTree><p:sp><p:nvSpPr/><p:txBody><a:p><a:r><a:t>%s</a:t></a:r></a:p></p:txBody></p:sp></p:spTree></p:cSld></p:sld>`

// buildDeck returns a one-slide .pptx containing text
func buildDeck(t *testing.T, text string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("ppt/slides/slide1.xml")
	require.NoError(t, err)
	_, err = fmt.Fprintf(w, deckSlide, text)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}
