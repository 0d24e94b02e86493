package usecase

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	agentDomain "github.com/impactrealty/backoffice/internal/agent/domain"
)

// mockBusinessMetrics is a local mock for metrics.BusinessMetrics.
type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

// mockGatewayUseCase is a mock implementation of GatewayUseCase for testing.
type mockGatewayUseCase struct {
	mock.Mock
}

func (m *mockGatewayUseCase) Invoke(
	ctx context.Context,
	request agentDomain.InvocationRequest,
) agentDomain.InvocationResult {
	args := m.Called(ctx, request)
	return args.Get(0).(agentDomain.InvocationResult)
}

func (m *mockGatewayUseCase) ExecuteWorkflow(
	ctx context.Context,
	workflowName string,
	params agentDomain.Payload,
) agentDomain.InvocationResult {
	args := m.Called(ctx, workflowName, params)
	return args.Get(0).(agentDomain.InvocationResult)
}

func (m *mockGatewayUseCase) Check(ctx context.Context, destination string) agentDomain.InvocationResult {
	args := m.Called(ctx, destination)
	return args.Get(0).(agentDomain.InvocationResult)
}

func (m *mockGatewayUseCase) Stream(
	ctx context.Context,
	destination string,
	payload agentDomain.Payload,
) (io.ReadCloser, error) {
	args := m.Called(ctx, destination, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

func (m *mockGatewayUseCase) CancelExecution(
	ctx context.Context,
	correlationID string,
) agentDomain.InvocationResult {
	args := m.Called(ctx, correlationID)
	return args.Get(0).(agentDomain.InvocationResult)
}

func (m *mockGatewayUseCase) GetExecutionStatus(
	ctx context.Context,
	correlationID string,
) agentDomain.InvocationResult {
	args := m.Called(ctx, correlationID)
	return args.Get(0).(agentDomain.InvocationResult)
}

func (m *mockGatewayUseCase) SetDisconnectedMode(enabled bool) {
	m.Called(enabled)
}

func (m *mockGatewayUseCase) DisconnectedMode() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *mockGatewayUseCase) ReconfigureDestination(
	name string,
	patch agentDomain.DestinationPatch,
) agentDomain.DestinationConfig {
	args := m.Called(name, patch)
	return args.Get(0).(agentDomain.DestinationConfig)
}

func (m *mockGatewayUseCase) Destinations() []string {
	args := m.Called()
	return args.Get(0).([]string)
}

func TestGatewayUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()

	t.Run("Invoke success", func(t *testing.T) {
		mockNext := &mockGatewayUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := NewGatewayUseCaseWithMetrics(mockNext, mockMetrics)

		request := agentDomain.InvocationRequest{Destination: "supervisor", CorrelationID: "c-1"}
		result := agentDomain.NewSuccessResult(agentDomain.Payload{}, "c-1")

		mockNext.On("Invoke", ctx, request).Return(result).Once()
		mockMetrics.On("RecordOperation", ctx, "agent", "invoke", "success").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "agent", "invoke", mock.AnythingOfType("time.Duration"), "success").
			Return().
			Once()

		res := uc.Invoke(ctx, request)
		assert.True(t, res.Succeeded)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Invoke failure counts as error", func(t *testing.T) {
		mockNext := &mockGatewayUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := NewGatewayUseCaseWithMetrics(mockNext, mockMetrics)

		request := agentDomain.InvocationRequest{Destination: "nonexistent", CorrelationID: "c-1"}
		result := agentDomain.NewFailureResult(agentDomain.ReasonUnknownDestination, "c-1")

		mockNext.On("Invoke", ctx, request).Return(result).Once()
		mockMetrics.On("RecordOperation", ctx, "agent", "invoke", "error").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "agent", "invoke", mock.AnythingOfType("time.Duration"), "error").
			Return().
			Once()

		res := uc.Invoke(ctx, request)
		assert.False(t, res.Succeeded)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("ExecuteWorkflow success", func(t *testing.T) {
		mockNext := &mockGatewayUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := NewGatewayUseCaseWithMetrics(mockNext, mockMetrics)

		params := agentDomain.Payload{"deal_id": "d-1"}
		result := agentDomain.NewSuccessResult(agentDomain.Payload{"workflow_id": "wf-1"}, "c-1")

		mockNext.On("ExecuteWorkflow", ctx, "transaction_onboarding", params).Return(result).Once()
		mockMetrics.On("RecordOperation", ctx, "agent", "execute_workflow", "success").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "agent", "execute_workflow", mock.AnythingOfType("time.Duration"), "success").
			Return().
			Once()

		res := uc.ExecuteWorkflow(ctx, "transaction_onboarding", params)
		assert.True(t, res.Succeeded)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Check success", func(t *testing.T) {
		mockNext := &mockGatewayUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := NewGatewayUseCaseWithMetrics(mockNext, mockMetrics)

		result := agentDomain.NewSuccessResult(agentDomain.Payload{"status": "operational"}, "c-1")

		mockNext.On("Check", ctx, "compliance").Return(result).Once()
		mockMetrics.On("RecordOperation", ctx, "agent", "check", "success").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "agent", "check", mock.AnythingOfType("time.Duration"), "success").
			Return().
			Once()

		res := uc.Check(ctx, "compliance")
		assert.True(t, res.Succeeded)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Stream error", func(t *testing.T) {
		mockNext := &mockGatewayUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := NewGatewayUseCaseWithMetrics(mockNext, mockMetrics)

		mockNext.On("Stream", ctx, "nonexistent", mock.Anything).
			Return(nil, agentDomain.ErrUnknownDestination).
			Once()
		mockMetrics.On("RecordOperation", ctx, "agent", "stream", "error").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "agent", "stream", mock.AnythingOfType("time.Duration"), "error").
			Return().
			Once()

		stream, err := uc.Stream(ctx, "nonexistent", nil)
		assert.Nil(t, stream)
		assert.Error(t, err)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Stream success", func(t *testing.T) {
		mockNext := &mockGatewayUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := NewGatewayUseCaseWithMetrics(mockNext, mockMetrics)

		body := io.NopCloser(strings.NewReader(`{"chunk":1}`))
		mockNext.On("Stream", ctx, "supervisor", mock.Anything).Return(body, nil).Once()
		mockMetrics.On("RecordOperation", ctx, "agent", "stream", "success").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "agent", "stream", mock.AnythingOfType("time.Duration"), "success").
			Return().
			Once()

		stream, err := uc.Stream(ctx, "supervisor", nil)
		assert.NoError(t, err)
		assert.Equal(t, body, stream)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Passthrough methods skip instrumentation", func(t *testing.T) {
		mockNext := &mockGatewayUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := NewGatewayUseCaseWithMetrics(mockNext, mockMetrics)

		mockNext.On("SetDisconnectedMode", true).Return().Once()
		mockNext.On("DisconnectedMode").Return(true).Once()
		mockNext.On("Destinations").Return([]string{"supervisor"}).Once()

		uc.SetDisconnectedMode(true)
		assert.True(t, uc.DisconnectedMode())
		assert.Equal(t, []string{"supervisor"}, uc.Destinations())
		mockNext.AssertExpectations(t)
		mockMetrics.AssertNotCalled(t, "RecordOperation")
	})
}
