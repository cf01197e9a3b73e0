package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/klemjul/nodepulse/internal/llm"
	"github.com/klemjul/nodepulse/internal/metrics"
)

// ErrUnexpectedLoop wraps any panic escaping an iteration.
var ErrUnexpectedLoop = errors.New("unexpected loop failure")

const (
	minIterationPause = 500 * time.Millisecond
	iterationJitter   = time.Second
)

type LoopOptions struct {
	Client   llm.LLMClient
	Builder  *llm.DialogBuilder
	Executor *Executor
	Metrics  *metrics.Metrics
	Logger   *slog.Logger
	// Rand drives the pause between iterations. It is shared with Builder.
	Rand  *rand.Rand
	Sleep SleepFunc
}

// Loop builds and delivers dialogs one after another until its context is
// cancelled. It owns Client and closes it when Run returns.
type Loop struct {
	client   llm.LLMClient
	builder  *llm.DialogBuilder
	executor *Executor
	metrics  *metrics.Metrics
	logger   *slog.Logger
	rng      *rand.Rand
	sleep    SleepFunc
}

func NewLoop(opts LoopOptions) *Loop {
	if opts.Sleep == nil {
		opts.Sleep = Sleep
	}
	return &Loop{
		client:   opts.Client,
		builder:  opts.Builder,
		executor: opts.Executor,
		metrics:  opts.Metrics,
		logger:   opts.Logger,
		rng:      opts.Rand,
		sleep:    opts.Sleep,
	}
}

// Run returns nil once ctx is cancelled, or ErrUnexpectedLoop if an
// iteration panics. The client is closed in both cases.
func (l *Loop) Run(ctx context.Context) (err error) {
	l.logger.Info("🌍 Initializing traffic loop...")
	defer func() {
		if cerr := l.client.Close(); cerr != nil {
			l.logger.Warn("closing client", "error", cerr)
		}
		l.logger.Info("🔒 Network connection closed")
	}()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrUnexpectedLoop, r)
		}
	}()

	for ctx.Err() == nil {
		dialog := l.builder.Build()
		l.metrics.Dialogs.Inc()
		l.executor.Execute(ctx, dialog)

		if l.sleep(ctx, l.pause()) != nil {
			break
		}
	}

	l.logger.Info("🛑 Received termination signal")
	return nil
}

// pause is uniform in [0.5s, 1.5s).
func (l *Loop) pause() time.Duration {
	return minIterationPause + time.Duration(l.rng.Float64()*float64(iterationJitter))
}
