package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type openaiChatCompletions interface {
	New(ctx context.Context, body openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error)
}

type llmClientOpenAi struct {
	completions openaiChatCompletions
	httpClient  *http.Client
	model       string
}

// newOpenAIClient talks to an OpenAI compatible node. SDK retries are disabled
// so that the caller's retry policy is the only one applied.
func newOpenAIClient(baseURL string, model string, timeout time.Duration, opts ...option.RequestOption) *llmClientOpenAi {
	httpClient := &http.Client{}
	clientOpts := []option.RequestOption{
		option.WithBaseURL(baseURL + "/"),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(0),
	}
	if timeout > 0 {
		clientOpts = append(clientOpts, option.WithRequestTimeout(timeout))
	}
	client := openai.NewClient(append(clientOpts, opts...)...)
	return &llmClientOpenAi{
		completions: &client.Chat.Completions,
		httpClient:  httpClient,
		model:       model,
	}
}

func (ai *llmClientOpenAi) toOpenAiMessages(dialog Dialog) []openai.ChatCompletionMessageParamUnion {
	var openAiMessages []openai.ChatCompletionMessageParamUnion
	for _, msg := range dialog {
		switch msg.Role {
		case User:
			openAiMessages = append(openAiMessages, openai.UserMessage(msg.Content))
		case Assistant:
			openAiMessages = append(openAiMessages, openai.AssistantMessage(msg.Content))
		case System:
			openAiMessages = append(openAiMessages, openai.SystemMessage(msg.Content))
		case Tool:
			openAiMessages = append(openAiMessages, openai.ToolMessage(msg.Content, ""))
		default:
			openAiMessages = append(openAiMessages, openai.UserMessage(msg.Content))
		}
	}
	return openAiMessages
}

func (ai *llmClientOpenAi) Send(ctx context.Context, dialog Dialog) Result {
	res, err := ai.completions.New(
		ctx,
		openai.ChatCompletionNewParams{
			Model:    ai.model,
			Messages: ai.toOpenAiMessages(dialog),
			N:        openai.Int(1),
		},
	)
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return StatusFailure(apiErr.StatusCode)
		}
		return ErrorFailure(fmt.Errorf("openai: %w", err))
	}
	return Success(Response{Raw: []byte(res.RawJSON())})
}

func (ai *llmClientOpenAi) Close() error {
	if ai.httpClient != nil {
		ai.httpClient.CloseIdleConnections()
	}
	return nil
}
