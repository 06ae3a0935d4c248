package prompt

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// DefaultMaxChars bounds how much document text goes into a single prompt
const DefaultMaxChars = 120000

// Difficulty tiers used by the multi-level analysis and video generation
var Levels = []string{"Easy", "Medium", "Hard"}

var levelGuidance = map[string]string{
	"Easy":   "start from absolute basics, everyday analogies, short sentences",
	"Medium": "assume some background, introduce proper terminology and cause and effect",
	"Hard":   "advanced analysis, edge cases, current research and professional practice",
}

var templates = template.Must(parseAll(map[string]string{
	"analysis":            analysisTemplate,
	"analysis_multilevel": multiLevelAnalysisTemplate,
	"video_script":        videoScriptTemplate,
	"conclusion":          conclusionTemplate,
	"assessment":          assessmentTemplate,
	"doubt":               doubtTemplate,
	"personalized_pdf":    personalizedPdfTemplate,
	"translation":         translationTemplate,
	"level_video_script":  levelVideoScriptTemplate,
	"thumbnail":           thumbnailTemplate,
}))

func parseAll(sources map[string]string) (*template.Template, error) {
	root := template.New("prompts").Funcs(sprig.TxtFuncMap())
	for name, src := range sources {
		if _, err := root.New(name).Parse(src); err != nil {
			return nil, fmt.Errorf("parse prompt %s: %w", name, err)
		}
	}
	return root, nil
}

// Performance is the quiz outcome injected into the personalized guide prompt
type Performance struct {
	Score      int
	Total      int
	Percentage float64
	Level      string
}

// Builder renders the fixed prompt templates
type Builder struct {
	MaxChars int
}

func NewBuilder(maxChars int) *Builder {
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}
	return &Builder{MaxChars: maxChars}
}

func (b *Builder) render(name string, data map[string]interface{}) (string, error) {
	data["MaxChars"] = b.MaxChars
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render prompt %s: %w", name, err)
	}
	return buf.String(), nil
}

// Analysis builds the document analysis prompt, optionally split into difficulty levels
func (b *Builder) Analysis(fileType, text string, multiLevel bool) (string, error) {
	name := "analysis"
	if multiLevel {
		name = "analysis_multilevel"
	}
	return b.render(name, map[string]interface{}{
		"FileType": fileType,
		"Text":     text,
		"Levels":   Levels,
	})
}

func (b *Builder) VideoScript(documentText string) (string, error) {
	return b.render("video_script", map[string]interface{}{"DocumentText": documentText})
}

func (b *Builder) Conclusion(documentText string) (string, error) {
	return b.render("conclusion", map[string]interface{}{"DocumentText": documentText})
}

func (b *Builder) Assessment(documentText string) (string, error) {
	return b.render("assessment", map[string]interface{}{"DocumentText": documentText})
}

func (b *Builder) Doubt(documentText, question string) (string, error) {
	return b.render("doubt", map[string]interface{}{
		"DocumentText":  documentText,
		"Question":      question,
		"OffTopicReply": OffTopicReply,
	})
}

// PersonalizedPdf builds the study guide prompt; perf may be nil when no quiz was taken
func (b *Builder) PersonalizedPdf(documentText string, perf *Performance) (string, error) {
	return b.render("personalized_pdf", map[string]interface{}{
		"DocumentText": documentText,
		"Performance":  perf,
	})
}

func (b *Builder) Translation(text, targetLanguage string) (string, error) {
	return b.render("translation", map[string]interface{}{
		"Text":           text,
		"TargetLanguage": targetLanguage,
	})
}

// LevelVideoScript builds the narration prompt for one difficulty tier of a generated video
func (b *Builder) LevelVideoScript(level, documentText string, maxWords int) (string, error) {
	guidance, ok := levelGuidance[level]
	if !ok {
		return "", fmt.Errorf("unknown level %q", level)
	}
	return b.render("level_video_script", map[string]interface{}{
		"Level":        level,
		"Guidance":     guidance,
		"DocumentText": documentText,
		"MaxWords":     maxWords,
	})
}

func (b *Builder) Thumbnail(level, title string) (string, error) {
	return b.render("thumbnail", map[string]interface{}{
		"Level": level,
		"Title": title,
	})
}
