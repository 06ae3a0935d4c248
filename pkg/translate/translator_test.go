package translate

import (
	"context"
	"errors"
	"strings"
	"testing"

	"student-analyzer-be/internal/pkg/logger"
	"student-analyzer-be/pkg/llm"
	"student-analyzer-be/pkg/prompt"

	"github.com/stretchr/testify/assert"
)

type fakeLLM struct {
	calls   int
	prompts []string
	reply   string
	err     error
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	return f.Generate(ctx, history[len(history)-1].Content, opts...)
}

func (f *fakeLLM) Generate(_ context.Context, p string, _ ...llm.Option) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, p)
	return f.reply, f.err
}

type mapCache map[string]string

func (m mapCache) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := m[key]
	return v, ok, nil
}

func (m mapCache) Set(_ context.Context, key, value string) error {
	m[key] = value
	return nil
}

func newTranslator(f *fakeLLM, c Cache) *Translator {
	return NewTranslator(f, prompt.NewBuilder(0), c, logger.NewNopLogger())
}

func TestLookupLanguage(t *testing.T) {
	l, ok := LookupLanguage("hindi")
	assert.True(t, ok)
	assert.Equal(t, "hi", l.Code)

	l, ok = LookupLanguage("KN")
	assert.True(t, ok)
	assert.Equal(t, "Kannada", l.Name)

	_, ok = LookupLanguage("French")
	assert.False(t, ok)
}

func TestTranslate_EnglishPassthrough(t *testing.T) {
	f := &fakeLLM{reply: "should not be used"}

	out := newTranslator(f, nil).Translate(context.Background(), "## Hello", "en")

	assert.Equal(t, "## Hello", out)
	assert.Zero(t, f.calls)
}

func TestTranslate_UsesLanguageName(t *testing.T) {
	f := &fakeLLM{reply: "## नमस्ते"}

	out := newTranslator(f, nil).Translate(context.Background(), "## Hello", "hi")

	assert.Equal(t, "## नमस्ते", out)
	assert.True(t, strings.Contains(f.prompts[0], "to Hindi."))
}

func TestTranslate_FailureReturnsOriginal(t *testing.T) {
	f := &fakeLLM{err: errors.New("quota exceeded")}

	out := newTranslator(f, nil).Translate(context.Background(), "original", "te")

	assert.Equal(t, "original", out)
}

func TestTranslate_UnsupportedLanguage(t *testing.T) {
	f := &fakeLLM{reply: "x"}

	out := newTranslator(f, nil).Translate(context.Background(), "original", "fr")

	assert.Equal(t, "original", out)
	assert.Zero(t, f.calls)
}

func TestTranslate_Caches(t *testing.T) {
	f := &fakeLLM{reply: "translated"}
	cache := mapCache{}
	tr := newTranslator(f, cache)

	first := tr.Translate(context.Background(), "text", "kn")
	second := tr.Translate(context.Background(), "text", "kn")

	assert.Equal(t, "translated", first)
	assert.Equal(t, "translated", second)
	assert.Equal(t, 1, f.calls)
	assert.Contains(t, cache, CacheKey("text", "kn"))
}

func TestCacheKey(t *testing.T) {
	assert.NotEqual(t, CacheKey("a", "hi"), CacheKey("a", "te"))
	assert.NotEqual(t, CacheKey("a", "hi"), CacheKey("b", "hi"))
	assert.True(t, strings.HasPrefix(CacheKey("a", "hi"), "translation:hi:"))
}
