package bot

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/klemjul/nodepulse/internal/llm"
	"github.com/klemjul/nodepulse/internal/metrics"
)

type ExecutorOptions struct {
	Client   llm.LLMClient
	Recorder Recorder
	Metrics  *metrics.Metrics
	Logger   *slog.Logger

	// MaxRetries is the total number of attempts per dialog, at least 1.
	MaxRetries int
	// RetryPause is multiplied by the attempt number before the next attempt.
	RetryPause time.Duration
	Sleep      SleepFunc
}

// Executor delivers dialogs on a best effort basis: failed attempts are
// logged and retried with a linear backoff, and a dialog that exhausts its
// attempts is dropped.
type Executor struct {
	client     llm.LLMClient
	recorder   Recorder
	metrics    *metrics.Metrics
	logger     *slog.Logger
	maxRetries int
	retryPause time.Duration
	sleep      SleepFunc
}

func NewExecutor(opts ExecutorOptions) *Executor {
	if opts.MaxRetries < 1 {
		opts.MaxRetries = 1
	}
	if opts.Sleep == nil {
		opts.Sleep = Sleep
	}
	return &Executor{
		client:     opts.Client,
		recorder:   opts.Recorder,
		metrics:    opts.Metrics,
		logger:     opts.Logger,
		maxRetries: opts.MaxRetries,
		retryPause: opts.RetryPause,
		sleep:      opts.Sleep,
	}
}

// Execute sends dialog until an attempt succeeds, attempts run out or ctx is
// done. It reports nothing to the caller. An attempt cut short by ctx is
// neither logged nor counted as a dropped dialog.
func (e *Executor) Execute(ctx context.Context, dialog llm.Dialog) {
	for attempt := 1; attempt <= e.maxRetries; attempt++ {
		res := e.attempt(ctx, dialog)
		if !res.Succeeded() && ctx.Err() != nil {
			return
		}
		if res.Succeeded() {
			e.metrics.Deliveries.WithLabelValues(metrics.ResultDelivered).Inc()
			e.recorder.Record(dialog, *res.Response)
			return
		}

		if res.Err != nil {
			e.logger.Error(fmt.Sprintf("❌ Request failed: %v", res.Err), "attempt", attempt)
		} else {
			e.logger.Warn(fmt.Sprintf("⚠️ Attempt %d failed with status %d", attempt, res.StatusCode))
		}

		if attempt < e.maxRetries {
			if err := e.sleep(ctx, e.backoff(attempt)); err != nil {
				return
			}
		}
	}
	e.metrics.Deliveries.WithLabelValues(metrics.ResultExhausted).Inc()
}

// backoff saturates instead of overflowing into a negative pause.
func (e *Executor) backoff(attempt int) time.Duration {
	if e.retryPause > 0 && time.Duration(attempt) > math.MaxInt64/e.retryPause {
		return math.MaxInt64
	}
	return e.retryPause * time.Duration(attempt)
}

func (e *Executor) attempt(ctx context.Context, dialog llm.Dialog) llm.Result {
	start := time.Now()
	res := e.client.Send(ctx, dialog)
	e.metrics.RequestDuration.Observe(time.Since(start).Seconds())

	switch {
	case res.Succeeded():
		e.metrics.Attempts.WithLabelValues(metrics.OutcomeSuccess).Inc()
	case res.Err != nil:
		e.metrics.Attempts.WithLabelValues(metrics.OutcomeError).Inc()
	default:
		e.metrics.Attempts.WithLabelValues(metrics.OutcomeStatus).Inc()
	}
	return res
}
