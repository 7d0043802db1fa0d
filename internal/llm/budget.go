package llm

import (
	"context"
	"fmt"
	"sync"
)

// BudgetedProvider wraps a Provider with a running spend cap. Once the
// estimated cost of completed requests reaches the limit, further requests
// fail instead of calling the backend. Limit is in USD for the lifetime of
// the process, matching the max_cost_usd config knob.
type BudgetedProvider struct {
	provider Provider
	limit    float64

	mu    sync.Mutex
	spent float64
}

// NewBudgetedProvider wraps the given provider with a spend cap of limit
// USD.
func NewBudgetedProvider(provider Provider, limit float64) *BudgetedProvider {
	return &BudgetedProvider{provider: provider, limit: limit}
}

func (b *BudgetedProvider) Name() string {
	return b.provider.Name()
}

// Spent returns the estimated USD spent so far.
func (b *BudgetedProvider) Spent() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.spent
}

func (b *BudgetedProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	b.mu.Lock()
	if b.spent >= b.limit {
		spent := b.spent
		b.mu.Unlock()
		return nil, fmt.Errorf("cost budget exhausted: $%.4f spent of $%.2f limit", spent, b.limit)
	}
	b.mu.Unlock()

	resp, err := b.provider.Complete(ctx, req)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	b.spent += EstimateCost(resp.Model, resp.InputTokens, resp.OutputTokens)
	b.mu.Unlock()
	return resp, nil
}
