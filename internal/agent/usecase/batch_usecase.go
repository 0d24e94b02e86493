package usecase

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	agentDomain "github.com/impactrealty/backoffice/internal/agent/domain"
)

// batchUseCase fans out heterogeneous invocation requests.
type batchUseCase struct {
	gateway GatewayUseCase
}

// NewBatchUseCase creates the batch coordinator.
func NewBatchUseCase(gateway GatewayUseCase) BatchUseCase {
	return &batchUseCase{gateway: gateway}
}

// InvokeBatch runs all requests concurrently and waits for all to settle
// before returning. Results are keyed by destination; when the same
// destination appears more than once, the later result in completion order
// wins. Cancelling one member does not cancel the others — each invocation
// carries its own independent timeout.
func (b *batchUseCase) InvokeBatch(
	ctx context.Context,
	requests []agentDomain.InvocationRequest,
) map[string]agentDomain.InvocationResult {
	results := make(map[string]agentDomain.InvocationResult, len(requests))

	var mu sync.Mutex
	group, groupCtx := errgroup.WithContext(ctx)

	for _, request := range requests {
		group.Go(func() error {
			result := b.gateway.Invoke(groupCtx, request)

			mu.Lock()
			results[request.Destination] = result
			mu.Unlock()
			return nil
		})
	}

	// Workers never return errors; Wait is purely a barrier.
	_ = group.Wait()
	return results
}
