package bot

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/klemjul/nodepulse/internal/llm"
	"github.com/stretchr/testify/mock"
)

type mockLLMClient struct {
	mock.Mock
}

func (m *mockLLMClient) Send(ctx context.Context, dialog llm.Dialog) llm.Result {
	args := m.Called(ctx, dialog)
	return args.Get(0).(llm.Result)
}

func (m *mockLLMClient) Close() error {
	args := m.Called()
	return args.Error(0)
}

type mockRecorder struct {
	mock.Mock
}

func (m *mockRecorder) Record(dialog llm.Dialog, resp llm.Response) {
	m.Called(dialog, resp)
}

// fakeSleeper records requested pauses without waiting.
type fakeSleeper struct {
	mu      sync.Mutex
	pauses  []time.Duration
	onSleep func(n int)
}

func (s *fakeSleeper) Sleep(ctx context.Context, d time.Duration) error {
	s.mu.Lock()
	s.pauses = append(s.pauses, d)
	n := len(s.pauses)
	s.mu.Unlock()
	if s.onSleep != nil {
		s.onSleep(n)
	}
	return ctx.Err()
}

func (s *fakeSleeper) Pauses() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]time.Duration(nil), s.pauses...)
}

func newBufferLogger() (*slog.Logger, *bytes.Buffer) {
	buf := new(bytes.Buffer)
	return slog.New(slog.NewTextHandler(buf, nil)), buf
}

var testDialog = llm.Dialog{
	{Role: llm.User, Content: "Hello"},
	{Role: llm.Assistant, Content: "Tell me a joke"},
}

var okResponse = llm.Response{Raw: []byte(`{"choices":[{"message":{"content":"Why did the gopher cross the road?"}}]}`)}

type bytesLog struct {
	buf *bytes.Buffer
}

func (l *bytesLog) String() string { return l.buf.String() }

func (l *bytesLog) count(substr string) int { return strings.Count(l.buf.String(), substr) }
