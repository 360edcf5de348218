package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/alexchase32/lessbuilder/internal/logging"
	"github.com/alexchase32/lessbuilder/internal/store"
)

// New builds the provider named in cfg, wrapped so that each attempt is
// recorded and failed attempts are retried:
// caller → timeout → retry → recording → provider.
func New(ctx context.Context, cfg Config, events store.EventRepo, log *logging.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		base Provider
		err  error
	)
	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropic(cfg)
	case "openai":
		base, err = NewOpenAI(cfg)
	case "gemini":
		base, err = NewGemini(ctx, cfg)
	case "openrouter":
		base, err = NewOpenRouter(cfg)
	case "mock":
		base = NewMock()
	}
	if err != nil {
		return nil, fmt.Errorf("init %s provider: %w", cfg.Provider, err)
	}

	recorded := WithRecording(base, cfg.Provider, events, log)
	retried := WithRetry(recorded, cfg.Retry)
	if cfg.Timeout <= 0 {
		return retried, nil
	}
	return bounded{Provider: retried, timeout: cfg.Timeout}, nil
}

// bounded caps the total time of one Generate call.
type bounded struct {
	Provider
	timeout time.Duration
}

func (b bounded) Generate(ctx context.Context, req Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()
	return b.Provider.Generate(ctx, req)
}
