package assessment

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

const (
	LevelGood             = "Good"
	LevelNeedsImprovement = "Needs Improvement"

	passPercentage = 50.0
)

var (
	ErrMalformed = errors.New("malformed assessment")

	codeFence = regexp.MustCompile("```json|```")
	quoteFix  = strings.NewReplacer("“", `"`, "”", `"`, "‘", "'", "’", "'")
)

// Question is one multiple choice item as produced by the model
type Question struct {
	Question      string            `json:"question"`
	Options       map[string]string `json:"options"`
	CorrectAnswer string            `json:"correct_answer"`
	Explanation   string            `json:"explanation"`
}

// Assessment holds the two generated questions
type Assessment struct {
	Question1 Question `json:"question1"`
	Question2 Question `json:"question2"`
}

// Items returns the questions keyed by the answer ids used in submissions (q1, q2)
func (a *Assessment) Items() map[string]Question {
	return map[string]Question{
		"q1": a.Question1,
		"q2": a.Question2,
	}
}

// Clean strips markdown code fences and typographic quotes from raw model output
func Clean(raw string) string {
	cleaned := strings.TrimSpace(raw)
	cleaned = codeFence.ReplaceAllString(cleaned, "")
	return strings.TrimSpace(quoteFix.Replace(cleaned))
}

// Parse cleans raw model output and decodes it into an Assessment
func Parse(raw string) (*Assessment, error) {
	var a Assessment
	if err := json.Unmarshal([]byte(Clean(raw)), &a); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	for id, q := range a.Items() {
		if strings.TrimSpace(q.Question) == "" || len(q.Options) == 0 {
			return nil, fmt.Errorf("%w: %s has no question or options", ErrMalformed, id)
		}
		if _, ok := q.Options[q.CorrectAnswer]; !ok {
			return nil, fmt.Errorf("%w: %s correct answer %q is not an option", ErrMalformed, id, q.CorrectAnswer)
		}
	}
	return &a, nil
}

// Feedback describes the outcome for a single question
type Feedback struct {
	ID            string `json:"id"`
	Answer        string `json:"answer"`
	CorrectAnswer string `json:"correct_answer"`
	Correct       bool   `json:"correct"`
	Explanation   string `json:"explanation"`
}

type Result struct {
	Score      int        `json:"score"`
	Total      int        `json:"total"`
	Percentage float64    `json:"percentage"`
	Level      string     `json:"level"`
	Feedback   []Feedback `json:"feedback"`
}

// Grade scores the submitted answers. Unanswered questions count as wrong.
func (a *Assessment) Grade(answers map[string]string) Result {
	items := a.Items()
	ids := make([]string, 0, len(items))
	for id := range items {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	res := Result{Total: len(items)}
	for _, id := range ids {
		q := items[id]
		given := strings.ToUpper(strings.TrimSpace(answers[id]))
		fb := Feedback{
			ID:            id,
			Answer:        given,
			CorrectAnswer: q.CorrectAnswer,
			Correct:       given != "" && given == q.CorrectAnswer,
			Explanation:   q.Explanation,
		}
		if fb.Correct {
			res.Score++
		}
		res.Feedback = append(res.Feedback, fb)
	}

	if res.Total > 0 {
		res.Percentage = float64(res.Score) / float64(res.Total) * 100
	}
	res.Level = LevelNeedsImprovement
	if res.Percentage >= passPercentage {
		res.Level = LevelGood
	}
	return res
}

// PublicQuestion is a question without its answer key
type PublicQuestion struct {
	ID       string            `json:"id"`
	Question string            `json:"question"`
	Options  map[string]string `json:"options"`
}

// Public returns the questions in answer-id order without answers or explanations
func (a *Assessment) Public() []PublicQuestion {
	return []PublicQuestion{
		{ID: "q1", Question: a.Question1.Question, Options: a.Question1.Options},
		{ID: "q2", Question: a.Question2.Question, Options: a.Question2.Options},
	}
}
