package llm

import (
	"fmt"

	"github.com/tidwall/gjson"
)

const replyContentPath = "choices.0.message.content"

// Response is the raw JSON body of a successful chat completion.
type Response struct {
	Raw []byte
}

// Content returns the first choice's message content, or fallback when the
// body does not carry one.
func (r Response) Content(fallback string) string {
	content := gjson.GetBytes(r.Raw, replyContentPath)
	if !content.Exists() || content.Type != gjson.String {
		return fallback
	}
	return content.String()
}

// Result is the outcome of a single request attempt. Exactly one of Response,
// StatusCode or Err describes it.
type Result struct {
	Response   *Response
	StatusCode int
	Err        error
}

func Success(resp Response) Result {
	return Result{Response: &resp, StatusCode: 200}
}

// StatusFailure records a completed exchange rejected by the node.
func StatusFailure(statusCode int) Result {
	return Result{StatusCode: statusCode}
}

// ErrorFailure records a transport, timeout or decoding failure.
func ErrorFailure(err error) Result {
	return Result{Err: err}
}

func (r Result) Succeeded() bool {
	return r.Response != nil
}

func (r Result) String() string {
	switch {
	case r.Succeeded():
		return "success"
	case r.Err != nil:
		return fmt.Sprintf("error: %v", r.Err)
	default:
		return fmt.Sprintf("status %d", r.StatusCode)
	}
}
