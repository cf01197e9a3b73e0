package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"
)

const maxResponseBytes = 1 << 20

type chatRequest struct {
	Messages Dialog `json:"messages"`
}

type llmClientGaia struct {
	httpClient *http.Client
	endpoint   string
}

func newGaiaClient(endpoint string, timeout time.Duration) *llmClientGaia {
	return &llmClientGaia{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   endpoint,
	}
}

// Send posts the dialog and succeeds only on status 200 with a JSON body.
func (c *llmClientGaia) Send(ctx context.Context, dialog Dialog) Result {
	body, err := json.Marshal(chatRequest{Messages: dialog})
	if err != nil {
		return ErrorFailure(fmt.Errorf("gaia: marshal request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return ErrorFailure(fmt.Errorf("gaia: create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return ErrorFailure(fmt.Errorf("gaia: %w", err))
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, maxResponseBytes))
		return StatusFailure(res.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBytes))
	if err != nil {
		return ErrorFailure(fmt.Errorf("gaia: read response body: %w", err))
	}
	if !gjson.ValidBytes(raw) {
		return ErrorFailure(fmt.Errorf("gaia: response body is not valid JSON"))
	}
	return Success(Response{Raw: raw})
}

func (c *llmClientGaia) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}
