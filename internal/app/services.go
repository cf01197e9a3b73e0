package app

import (
	"github.com/klemjul/nodepulse/internal/llm"
	"github.com/klemjul/nodepulse/internal/phrases"
)

type LLMService interface {
	NewClient(provider llm.LLMProvider, opts llm.LLMClientOptions) (llm.LLMClient, error)
}

type PhraseService interface {
	Load(path string) ([]string, error)
}

type App interface {
	LLM() LLMService
	Phrases() PhraseService
}

type DefaultLLMService struct{}
type DefaultPhraseService struct{}

type DefaultApp struct {
	llm     LLMService
	phrases PhraseService
}

func (a *DefaultApp) LLM() LLMService        { return a.llm }
func (a *DefaultApp) Phrases() PhraseService { return a.phrases }

func (l *DefaultLLMService) NewClient(provider llm.LLMProvider, opts llm.LLMClientOptions) (llm.LLMClient, error) {
	return llm.NewClient(provider, opts)
}

func (p *DefaultPhraseService) Load(path string) ([]string, error) {
	return phrases.Load(path)
}

func NewDefaultApp() App {
	return &DefaultApp{llm: &DefaultLLMService{}, phrases: &DefaultPhraseService{}}
}
