package llm

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// LLMClient sends one dialog per call. Implementations never return errors
// from Send; every failure is reported through the Result.
type LLMClient interface {
	Send(ctx context.Context, dialog Dialog) Result
	Close() error
}

type LLMProvider string

const (
	LLMProviderGaia   LLMProvider = "gaia"
	LLMProviderOpenAI LLMProvider = "openai"
)

var LLMProviders = []LLMProvider{LLMProviderGaia, LLMProviderOpenAI}

type LLMClientOptions struct {
	// BaseURL is the API root, e.g. https://node.gaia.domains/v1.
	BaseURL string
	Model   string
	Timeout time.Duration
}

func NewClient(provider LLMProvider, opts LLMClientOptions) (LLMClient, error) {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		return nil, fmt.Errorf("base URL must be specified")
	}
	switch provider {
	case LLMProviderGaia:
		return newGaiaClient(baseURL+"/chat/completions", opts.Timeout), nil
	case LLMProviderOpenAI:
		return newOpenAIClient(baseURL, opts.Model, opts.Timeout), nil
	default:
		return nil, fmt.Errorf("%s: invalid provider", provider)
	}
}
