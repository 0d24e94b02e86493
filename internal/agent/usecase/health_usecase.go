package usecase

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	agentDomain "github.com/impactrealty/backoffice/internal/agent/domain"
)

// healthUseCase fans out status queries to every registered destination.
type healthUseCase struct {
	gateway  GatewayUseCase
	registry Registry
}

// NewHealthUseCase creates the health aggregator.
func NewHealthUseCase(gateway GatewayUseCase, registry Registry) HealthUseCase {
	return &healthUseCase{
		gateway:  gateway,
		registry: registry,
	}
}

// CheckAll queries every registered destination concurrently and waits for all
// to settle. A slow or failing destination cannot block or corrupt the results
// of the others: each query carries its own timeout and its own synthetic
// fallback. The returned map has exactly one entry per registered destination.
func (h *healthUseCase) CheckAll(ctx context.Context) map[string]agentDomain.InvocationResult {
	names := h.registry.Names()
	results := make(map[string]agentDomain.InvocationResult, len(names))

	var mu sync.Mutex
	group, groupCtx := errgroup.WithContext(ctx)

	for _, name := range names {
		group.Go(func() error {
			result := h.gateway.Check(groupCtx, name)

			mu.Lock()
			results[name] = result
			mu.Unlock()
			return nil
		})
	}

	// Workers never return errors; Wait is purely a barrier.
	_ = group.Wait()
	return results
}
