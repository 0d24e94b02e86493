package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	recordsDomain "github.com/impactrealty/backoffice/internal/records/domain"
	"github.com/impactrealty/backoffice/internal/records/http/dto"
)

// mockRecordUseCase is a mock implementation of usecase.RecordUseCase for testing.
type mockRecordUseCase struct {
	mock.Mock
}

func (m *mockRecordUseCase) Create(
	ctx context.Context,
	entity string,
	data map[string]any,
) (*recordsDomain.Record, error) {
	args := m.Called(ctx, entity, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recordsDomain.Record), args.Error(1)
}

func (m *mockRecordUseCase) Get(
	ctx context.Context,
	entity string,
	id uuid.UUID,
) (*recordsDomain.Record, error) {
	args := m.Called(ctx, entity, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recordsDomain.Record), args.Error(1)
}

func (m *mockRecordUseCase) List(
	ctx context.Context,
	entity string,
	filter map[string]any,
	offset, limit int,
) ([]*recordsDomain.Record, error) {
	args := m.Called(ctx, entity, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*recordsDomain.Record), args.Error(1)
}

func (m *mockRecordUseCase) Update(
	ctx context.Context,
	entity string,
	id uuid.UUID,
	data map[string]any,
) (*recordsDomain.Record, error) {
	args := m.Called(ctx, entity, id, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recordsDomain.Record), args.Error(1)
}

func (m *mockRecordUseCase) Delete(ctx context.Context, entity string, id uuid.UUID) error {
	args := m.Called(ctx, entity, id)
	return args.Error(0)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// createTestContext builds a gin test context carrying the given JSON body.
func createTestContext(method, path string, body any) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var reader io.Reader
	if body != nil {
		encoded, _ := json.Marshal(body)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, w
}

func setupRecordHandler(t *testing.T) (*RecordHandler, *mockRecordUseCase) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	mockUseCase := &mockRecordUseCase{}
	handler := NewRecordHandler(mockUseCase, testLogger())

	return handler, mockUseCase
}

func TestRecordHandler_EntitiesHandler(t *testing.T) {
	t.Run("Success_ListsAllowedEntities", func(t *testing.T) {
		handler, _ := setupRecordHandler(t)

		c, w := createTestContext(http.MethodGet, "/api/v1/records", nil)
		handler.EntitiesHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.EntityListResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Contains(t, response.Entities, recordsDomain.EntityTransactions)
		assert.Contains(t, response.Entities, recordsDomain.EntityCandidates)
		assert.Len(t, response.Entities, 6)
	})
}

func TestRecordHandler_CreateHandler(t *testing.T) {
	t.Run("Success_CreateRecord", func(t *testing.T) {
		handler, mockUseCase := setupRecordHandler(t)

		data := map[string]any{"address": "12 Palm Ave"}
		record := recordsDomain.NewRecord(recordsDomain.EntityProperties, data)

		mockUseCase.On("Create", mock.Anything, recordsDomain.EntityProperties, data).
			Return(record, nil).
			Once()

		c, w := createTestContext(http.MethodPost, "/api/v1/records/properties", dto.CreateRecordRequest{
			Data: data,
		})
		c.Params = gin.Params{{Key: "entity", Value: recordsDomain.EntityProperties}}

		handler.CreateHandler(c)

		assert.Equal(t, http.StatusCreated, w.Code)

		var response dto.RecordResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, record.ID.String(), response.ID)
		assert.Equal(t, recordsDomain.EntityProperties, response.Entity)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("Error_UnknownEntity", func(t *testing.T) {
		handler, mockUseCase := setupRecordHandler(t)

		mockUseCase.On("Create", mock.Anything, "parcels", mock.Anything).
			Return(nil, recordsDomain.ErrUnknownEntity).
			Once()

		c, w := createTestContext(http.MethodPost, "/api/v1/records/parcels", dto.CreateRecordRequest{
			Data: map[string]any{"lot": 4},
		})
		c.Params = gin.Params{{Key: "entity", Value: "parcels"}}

		handler.CreateHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Error_InvalidEntityName", func(t *testing.T) {
		handler, mockUseCase := setupRecordHandler(t)

		c, w := createTestContext(http.MethodPost, "/api/v1/records/Not-Valid", dto.CreateRecordRequest{
			Data: map[string]any{"lot": 4},
		})
		c.Params = gin.Params{{Key: "entity", Value: "Not-Valid"}}

		handler.CreateHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		mockUseCase.AssertNotCalled(t, "Create")
	})

	t.Run("Error_MissingData", func(t *testing.T) {
		handler, mockUseCase := setupRecordHandler(t)

		c, w := createTestContext(http.MethodPost, "/api/v1/records/properties", map[string]any{})
		c.Params = gin.Params{{Key: "entity", Value: recordsDomain.EntityProperties}}

		handler.CreateHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		mockUseCase.AssertNotCalled(t, "Create")
	})

	t.Run("Error_InvalidJSON", func(t *testing.T) {
		handler, mockUseCase := setupRecordHandler(t)

		c, w := createTestContext(http.MethodPost, "/api/v1/records/properties", nil)
		c.Params = gin.Params{{Key: "entity", Value: recordsDomain.EntityProperties}}
		c.Request.Body = io.NopCloser(strings.NewReader("{invalid"))

		handler.CreateHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockUseCase.AssertNotCalled(t, "Create")
	})
}

func TestRecordHandler_GetHandler(t *testing.T) {
	recordID := uuid.Must(uuid.NewV7())

	t.Run("Success_GetRecord", func(t *testing.T) {
		handler, mockUseCase := setupRecordHandler(t)

		record := recordsDomain.NewRecord(recordsDomain.EntityCandidates, map[string]any{"name": "J. Rivera"})
		mockUseCase.On("Get", mock.Anything, recordsDomain.EntityCandidates, recordID).
			Return(record, nil).
			Once()

		c, w := createTestContext(http.MethodGet, "/api/v1/records/candidates/"+recordID.String(), nil)
		c.Params = gin.Params{
			{Key: "entity", Value: recordsDomain.EntityCandidates},
			{Key: "id", Value: recordID.String()},
		}

		handler.GetHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.RecordResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "J. Rivera", response.Data["name"])
	})

	t.Run("Error_RecordNotFound", func(t *testing.T) {
		handler, mockUseCase := setupRecordHandler(t)

		mockUseCase.On("Get", mock.Anything, recordsDomain.EntityCandidates, recordID).
			Return(nil, recordsDomain.ErrRecordNotFound).
			Once()

		c, w := createTestContext(http.MethodGet, "/api/v1/records/candidates/"+recordID.String(), nil)
		c.Params = gin.Params{
			{Key: "entity", Value: recordsDomain.EntityCandidates},
			{Key: "id", Value: recordID.String()},
		}

		handler.GetHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "not_found")
	})

	t.Run("Error_InvalidUUID", func(t *testing.T) {
		handler, mockUseCase := setupRecordHandler(t)

		c, w := createTestContext(http.MethodGet, "/api/v1/records/candidates/not-a-uuid", nil)
		c.Params = gin.Params{
			{Key: "entity", Value: recordsDomain.EntityCandidates},
			{Key: "id", Value: "not-a-uuid"},
		}

		handler.GetHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		mockUseCase.AssertNotCalled(t, "Get")
	})
}

func TestRecordHandler_ListHandler(t *testing.T) {
	t.Run("Success_ListRecords", func(t *testing.T) {
		handler, mockUseCase := setupRecordHandler(t)

		records := []*recordsDomain.Record{
			recordsDomain.NewRecord(recordsDomain.EntityTransactions, map[string]any{"status": "open"}),
			recordsDomain.NewRecord(recordsDomain.EntityTransactions, map[string]any{"status": "closed"}),
		}
		mockUseCase.On("List", mock.Anything, recordsDomain.EntityTransactions, map[string]any{}, 0, 50).
			Return(records, nil).
			Once()

		c, w := createTestContext(http.MethodGet, "/api/v1/records/transactions", nil)
		c.Params = gin.Params{{Key: "entity", Value: recordsDomain.EntityTransactions}}

		handler.ListHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.ListRecordsResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Len(t, response.Data, 2)
	})

	t.Run("Success_CustomPagination", func(t *testing.T) {
		handler, mockUseCase := setupRecordHandler(t)

		mockUseCase.On("List", mock.Anything, recordsDomain.EntityTransactions, map[string]any{}, 10, 5).
			Return([]*recordsDomain.Record{}, nil).
			Once()

		c, w := createTestContext(http.MethodGet, "/api/v1/records/transactions?offset=10&limit=5", nil)
		c.Params = gin.Params{{Key: "entity", Value: recordsDomain.EntityTransactions}}

		handler.ListHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("Success_EqualityFilter", func(t *testing.T) {
		handler, mockUseCase := setupRecordHandler(t)

		mockUseCase.On("List", mock.Anything, recordsDomain.EntityTransactions, map[string]any{"status": "open"}, 0, 50).
			Return([]*recordsDomain.Record{}, nil).
			Once()

		c, w := createTestContext(http.MethodGet, "/api/v1/records/transactions?status=open", nil)
		c.Params = gin.Params{{Key: "entity", Value: recordsDomain.EntityTransactions}}

		handler.ListHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("Error_InvalidPagination", func(t *testing.T) {
		handler, mockUseCase := setupRecordHandler(t)

		c, w := createTestContext(http.MethodGet, "/api/v1/records/transactions?limit=500", nil)
		c.Params = gin.Params{{Key: "entity", Value: recordsDomain.EntityTransactions}}

		handler.ListHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		mockUseCase.AssertNotCalled(t, "List")
	})

	t.Run("Error_UnknownEntity", func(t *testing.T) {
		handler, mockUseCase := setupRecordHandler(t)

		mockUseCase.On("List", mock.Anything, "parcels", map[string]any{}, 0, 50).
			Return(nil, recordsDomain.ErrUnknownEntity).
			Once()

		c, w := createTestContext(http.MethodGet, "/api/v1/records/parcels", nil)
		c.Params = gin.Params{{Key: "entity", Value: "parcels"}}

		handler.ListHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestRecordHandler_UpdateHandler(t *testing.T) {
	recordID := uuid.Must(uuid.NewV7())

	t.Run("Success_MergeFields", func(t *testing.T) {
		handler, mockUseCase := setupRecordHandler(t)

		merged := &recordsDomain.Record{
			ID:     recordID,
			Entity: recordsDomain.EntityTransactions,
			Data:   map[string]any{"status": "closed", "price": 450000},
		}
		mockUseCase.On("Update", mock.Anything, recordsDomain.EntityTransactions, recordID,
			map[string]any{"status": "closed"}).
			Return(merged, nil).
			Once()

		c, w := createTestContext(http.MethodPatch,
			"/api/v1/records/transactions/"+recordID.String(),
			dto.UpdateRecordRequest{Data: map[string]any{"status": "closed"}})
		c.Params = gin.Params{
			{Key: "entity", Value: recordsDomain.EntityTransactions},
			{Key: "id", Value: recordID.String()},
		}

		handler.UpdateHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.RecordResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "closed", response.Data["status"])
		mockUseCase.AssertExpectations(t)
	})

	t.Run("Error_RecordNotFound", func(t *testing.T) {
		handler, mockUseCase := setupRecordHandler(t)

		mockUseCase.On("Update", mock.Anything, recordsDomain.EntityTransactions, recordID, mock.Anything).
			Return(nil, recordsDomain.ErrRecordNotFound).
			Once()

		c, w := createTestContext(http.MethodPatch,
			"/api/v1/records/transactions/"+recordID.String(),
			dto.UpdateRecordRequest{Data: map[string]any{"status": "closed"}})
		c.Params = gin.Params{
			{Key: "entity", Value: recordsDomain.EntityTransactions},
			{Key: "id", Value: recordID.String()},
		}

		handler.UpdateHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Error_InvalidUUID", func(t *testing.T) {
		handler, mockUseCase := setupRecordHandler(t)

		c, w := createTestContext(http.MethodPatch, "/api/v1/records/transactions/bogus",
			dto.UpdateRecordRequest{Data: map[string]any{"status": "closed"}})
		c.Params = gin.Params{
			{Key: "entity", Value: recordsDomain.EntityTransactions},
			{Key: "id", Value: "bogus"},
		}

		handler.UpdateHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		mockUseCase.AssertNotCalled(t, "Update")
	})
}

func TestRecordHandler_DeleteHandler(t *testing.T) {
	recordID := uuid.Must(uuid.NewV7())

	t.Run("Success_DeleteRecord", func(t *testing.T) {
		handler, mockUseCase := setupRecordHandler(t)

		mockUseCase.On("Delete", mock.Anything, recordsDomain.EntityCommunications, recordID).
			Return(nil).
			Once()

		c, w := createTestContext(http.MethodDelete,
			"/api/v1/records/communications/"+recordID.String(), nil)
		c.Params = gin.Params{
			{Key: "entity", Value: recordsDomain.EntityCommunications},
			{Key: "id", Value: recordID.String()},
		}

		handler.DeleteHandler(c)

		assert.Equal(t, http.StatusNoContent, w.Code)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("Error_RecordNotFound", func(t *testing.T) {
		handler, mockUseCase := setupRecordHandler(t)

		mockUseCase.On("Delete", mock.Anything, recordsDomain.EntityCommunications, recordID).
			Return(recordsDomain.ErrRecordNotFound).
			Once()

		c, w := createTestContext(http.MethodDelete,
			"/api/v1/records/communications/"+recordID.String(), nil)
		c.Params = gin.Params{
			{Key: "entity", Value: recordsDomain.EntityCommunications},
			{Key: "id", Value: recordID.String()},
		}

		handler.DeleteHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
