package translate

import (
	"context"

	"student-analyzer-be/internal/pkg/logger"
	"student-analyzer-be/pkg/llm"
	"student-analyzer-be/pkg/prompt"
)

// Translator renders artifact text in the student's chosen language.
// It never fails: on any error the original text is returned.
type Translator struct {
	llm     llm.LLMProvider
	prompts *prompt.Builder
	cache   Cache // optional
	logger  logger.ILogger
}

func NewTranslator(provider llm.LLMProvider, prompts *prompt.Builder, cache Cache, log logger.ILogger) *Translator {
	return &Translator{
		llm:     provider,
		prompts: prompts,
		cache:   cache,
		logger:  log,
	}
}

func (t *Translator) Translate(ctx context.Context, text, code string) string {
	if code == "" || code == CodeEnglish || text == "" {
		return text
	}

	lang, ok := LookupLanguage(code)
	if !ok {
		t.logger.Warn("TRANSLATE", "Unsupported language, returning original", map[string]interface{}{"language": code})
		return text
	}

	key := CacheKey(text, lang.Code)
	if t.cache != nil {
		if cached, found, err := t.cache.Get(ctx, key); err != nil {
			t.logger.Warn("TRANSLATE", "Cache read failed", map[string]interface{}{"error": err.Error()})
		} else if found {
			return cached
		}
	}

	p, err := t.prompts.Translation(text, lang.Name)
	if err != nil {
		t.logger.Error("TRANSLATE", "Failed to build prompt", map[string]interface{}{"error": err.Error()})
		return text
	}

	translated, err := t.llm.Generate(ctx, p)
	if err != nil {
		t.logger.Error("TRANSLATE", "Translation failed, returning original", map[string]interface{}{
			"language": lang.Code,
			"error":    err.Error(),
		})
		return text
	}

	if t.cache != nil {
		if err := t.cache.Set(ctx, key, translated); err != nil {
			t.logger.Warn("TRANSLATE", "Cache write failed", map[string]interface{}{"error": err.Error()})
		}
	}
	return translated
}
