package app

import (
	"fmt"

	agentDomain "github.com/impactrealty/backoffice/internal/agent/domain"
	"github.com/impactrealty/backoffice/internal/agent/executor"
	agentHTTP "github.com/impactrealty/backoffice/internal/agent/http"
	"github.com/impactrealty/backoffice/internal/agent/registry"
	"github.com/impactrealty/backoffice/internal/agent/synthetic"
	agentUseCase "github.com/impactrealty/backoffice/internal/agent/usecase"
	"github.com/impactrealty/backoffice/internal/http"
	recordsHTTP "github.com/impactrealty/backoffice/internal/records/http"
)

// DestinationRegistry returns the destination registry seeded from the
// configured destinations. The gateway and the health aggregator share this
// instance so runtime reconfiguration is visible to both.
func (c *Container) DestinationRegistry() *registry.Registry {
	c.registryInit.Do(func() {
		seed := make([]agentDomain.DestinationConfig, 0, len(c.config.Destinations))
		for _, d := range c.config.Destinations {
			seed = append(seed, agentDomain.DestinationConfig{
				Name:        d.Name,
				Address:     d.Address,
				Timeout:     d.Timeout,
				RetryBudget: d.RetryBudget,
			})
		}
		c.destinationRegistry = registry.New(seed)
	})
	return c.destinationRegistry
}

// GatewayUseCase returns the agent invocation gateway use case.
func (c *Container) GatewayUseCase() (agentUseCase.GatewayUseCase, error) {
	var err error
	c.gatewayUseCaseInit.Do(func() {
		c.gatewayUseCase, err = c.initGatewayUseCase()
		if err != nil {
			c.initErrors["gatewayUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["gatewayUseCase"]; exists {
		return nil, storedErr
	}
	return c.gatewayUseCase, nil
}

// HealthUseCase returns the destination health aggregation use case.
func (c *Container) HealthUseCase() (agentUseCase.HealthUseCase, error) {
	var err error
	c.healthUseCaseInit.Do(func() {
		c.healthUseCase, err = c.initHealthUseCase()
		if err != nil {
			c.initErrors["healthUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["healthUseCase"]; exists {
		return nil, storedErr
	}
	return c.healthUseCase, nil
}

// BatchUseCase returns the batch invocation use case.
func (c *Container) BatchUseCase() (agentUseCase.BatchUseCase, error) {
	var err error
	c.batchUseCaseInit.Do(func() {
		c.batchUseCase, err = c.initBatchUseCase()
		if err != nil {
			c.initErrors["batchUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["batchUseCase"]; exists {
		return nil, storedErr
	}
	return c.batchUseCase, nil
}

// initGatewayUseCase assembles the registry, synthetic generator and executor
// into the gateway, wrapped with business metrics.
func (c *Container) initGatewayUseCase() (agentUseCase.GatewayUseCase, error) {
	logger := c.Logger()

	generator := synthetic.New(c.config.SyntheticDelayMin, c.config.SyntheticDelayMax)
	requestExecutor := executor.New(c.config.AgentBearerToken)

	gatewayMetrics, err := c.GatewayMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get gateway metrics for gateway use case: %w", err)
	}

	useCase := agentUseCase.NewGatewayUseCase(
		c.DestinationRegistry(),
		generator,
		requestExecutor,
		gatewayMetrics,
		logger,
		c.config.DisconnectedMode,
	)

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for gateway use case: %w", err)
	}

	return agentUseCase.NewGatewayUseCaseWithMetrics(useCase, businessMetrics), nil
}

// initHealthUseCase creates the health aggregation use case.
func (c *Container) initHealthUseCase() (agentUseCase.HealthUseCase, error) {
	gateway, err := c.GatewayUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get gateway use case for health use case: %w", err)
	}
	return agentUseCase.NewHealthUseCase(gateway, c.DestinationRegistry()), nil
}

// initBatchUseCase creates the batch invocation use case.
func (c *Container) initBatchUseCase() (agentUseCase.BatchUseCase, error) {
	gateway, err := c.GatewayUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get gateway use case for batch use case: %w", err)
	}
	return agentUseCase.NewBatchUseCase(gateway), nil
}

// initHandlers builds the HTTP handler set mounted on the API server.
func (c *Container) initHandlers() (http.Handlers, error) {
	logger := c.Logger()

	gateway, err := c.GatewayUseCase()
	if err != nil {
		return http.Handlers{}, fmt.Errorf("failed to get gateway use case for handlers: %w", err)
	}

	health, err := c.HealthUseCase()
	if err != nil {
		return http.Handlers{}, fmt.Errorf("failed to get health use case for handlers: %w", err)
	}

	batch, err := c.BatchUseCase()
	if err != nil {
		return http.Handlers{}, fmt.Errorf("failed to get batch use case for handlers: %w", err)
	}

	recordUseCase, err := c.RecordUseCase()
	if err != nil {
		return http.Handlers{}, fmt.Errorf("failed to get record use case for handlers: %w", err)
	}

	return http.Handlers{
		Agent:    agentHTTP.NewAgentHandler(gateway, health, batch, logger),
		Workflow: agentHTTP.NewWorkflowHandler(gateway, logger),
		System:   agentHTTP.NewSystemHandler(gateway, c.version, logger),
		Record:   recordsHTTP.NewRecordHandler(recordUseCase, logger),
	}, nil
}
