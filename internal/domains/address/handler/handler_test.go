package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	a "addressbook-backend/internal/domains/address"
	"addressbook-backend/internal/domains/address/model"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) CreateAddress(ctx context.Context, req *model.AddressCreateRequest) (*model.AddressResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AddressResponse), args.Error(1)
}

func (m *mockService) ListAddresses(ctx context.Context, search string) ([]*model.AddressResponse, error) {
	args := m.Called(ctx, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.AddressResponse), args.Error(1)
}

func (m *mockService) GetAddressByID(ctx context.Context, id uuid.UUID) (*model.AddressResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AddressResponse), args.Error(1)
}

func (m *mockService) GetAddressByPhone(ctx context.Context, phone string) (*model.CustomerProjection, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CustomerProjection), args.Error(1)
}

func (m *mockService) GetAddressByCustomerNumber(ctx context.Context, n int64) (*model.AddressResponse, error) {
	args := m.Called(ctx, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AddressResponse), args.Error(1)
}

func (m *mockService) UpdateAddress(ctx context.Context, id uuid.UUID, req *model.AddressUpdateRequest) (*model.AddressResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AddressResponse), args.Error(1)
}

func (m *mockService) DeleteAddress(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func setupRouter(svc *mockService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAddressHandler(svc)

	router := gin.New()
	group := router.Group("/api/addresses")
	group.POST("", h.CreateAddress)
	group.GET("", h.ListAddresses)
	group.GET("/phone/:phone", h.GetByPhone)
	group.GET("/customer_number/:customer_number", h.GetByCustomerNumber)
	group.GET("/:id", h.GetAddressByID)
	group.PUT("/:id", h.UpdateAddress)
	group.DELETE("/:id", h.DeleteAddress)
	return router
}

func performRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func sampleResponse(id uuid.UUID) *model.AddressResponse {
	custNo := int64(1)
	return &model.AddressResponse{
		ID:             id,
		FirstName:      "John",
		LastName:       "Doe",
		Street:         "123 Elm Street",
		Postcode:       "E1 6AN",
		Country:        "United Kingdom",
		Phone:          "07063116133",
		CustomerNumber: &custNo,
	}
}

func TestCreateAddressHandler(t *testing.T) {
	t.Run("returns 201 with the created record", func(t *testing.T) {
		svc := new(mockService)
		svc.On("CreateAddress", mock.Anything, mock.AnythingOfType("*model.AddressCreateRequest")).
			Return(sampleResponse(uuid.New()), nil)
		router := setupRouter(svc)

		w := performRequest(router, http.MethodPost, "/api/addresses", gin.H{
			"first_name": "John",
			"last_name":  "Doe",
			"street":     "123 Elm Street",
			"postcode":   "E1 6AN",
			"country":    "United Kingdom",
			"phone":      "07063116133",
		})

		assert.Equal(t, http.StatusCreated, w.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "Address created successfully", body["message"])
		assert.NotNil(t, body["data"])
	})

	t.Run("returns 400 with details on validation failure", func(t *testing.T) {
		svc := new(mockService)
		svc.On("CreateAddress", mock.Anything, mock.Anything).
			Return(nil, a.NewValidationError([]a.FieldViolation{
				{Path: "first_name", Message: "First name is required"},
				{Path: "phone", Message: "Phone number must be 10-15 digits"},
			}))
		router := setupRouter(svc)

		w := performRequest(router, http.MethodPost, "/api/addresses", gin.H{"phone": "123"})

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var body struct {
			Error   bool   `json:"error"`
			Message string `json:"message"`
			Details []struct {
				Path    string `json:"path"`
				Message string `json:"message"`
			} `json:"details"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.True(t, body.Error)
		assert.Equal(t, "Validation Error", body.Message)
		require.Len(t, body.Details, 2)
		assert.Equal(t, "first_name", body.Details[0].Path)
	})

	t.Run("returns 400 on a malformed body", func(t *testing.T) {
		svc := new(mockService)
		router := setupRouter(svc)

		req := httptest.NewRequest(http.MethodPost, "/api/addresses", bytes.NewBufferString("{not json"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "CreateAddress")
	})

	t.Run("returns 409 on a duplicate phone", func(t *testing.T) {
		svc := new(mockService)
		svc.On("CreateAddress", mock.Anything, mock.Anything).
			Return(nil, a.NewDuplicatePhone("07063116133"))
		router := setupRouter(svc)

		w := performRequest(router, http.MethodPost, "/api/addresses", gin.H{"phone": "07063116133"})

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestListAddressesHandler(t *testing.T) {
	svc := new(mockService)
	svc.On("ListAddresses", mock.Anything, "john").
		Return([]*model.AddressResponse{sampleResponse(uuid.New())}, nil)
	router := setupRouter(svc)

	w := performRequest(router, http.MethodGet, "/api/addresses?search=john", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool                     `json:"success"`
		Data    []*model.AddressResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Len(t, body.Data, 1)
}

func TestGetAddressByIDHandler(t *testing.T) {
	t.Run("returns 400 for a malformed id", func(t *testing.T) {
		svc := new(mockService)
		router := setupRouter(svc)

		w := performRequest(router, http.MethodGet, "/api/addresses/not-a-uuid", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "GetAddressByID")
	})

	t.Run("returns 404 for a missing record", func(t *testing.T) {
		svc := new(mockService)
		id := uuid.New()
		svc.On("GetAddressByID", mock.Anything, id).Return(nil, a.NewNotFoundByID(id.String()))
		router := setupRouter(svc)

		w := performRequest(router, http.MethodGet, "/api/addresses/"+id.String(), nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("returns the record", func(t *testing.T) {
		svc := new(mockService)
		id := uuid.New()
		svc.On("GetAddressByID", mock.Anything, id).Return(sampleResponse(id), nil)
		router := setupRouter(svc)

		w := performRequest(router, http.MethodGet, "/api/addresses/"+id.String(), nil)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestGetByPhoneHandler(t *testing.T) {
	svc := new(mockService)
	svc.On("GetAddressByPhone", mock.Anything, "07063116133").
		Return(&model.CustomerProjection{FirstName: "John", LastName: "Doe"}, nil)
	router := setupRouter(svc)

	w := performRequest(router, http.MethodGet, "/api/addresses/phone/07063116133", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotContains(t, body.Data, "phone", "projection omits the phone")
	assert.NotContains(t, body.Data, "customer_number", "projection omits the customer number")
}

func TestGetByCustomerNumberHandler(t *testing.T) {
	t.Run("returns 404 for a non-numeric customer number", func(t *testing.T) {
		svc := new(mockService)
		router := setupRouter(svc)

		w := performRequest(router, http.MethodGet, "/api/addresses/customer_number/abc", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		svc.AssertNotCalled(t, "GetAddressByCustomerNumber")
	})

	t.Run("returns the record for a numeric customer number", func(t *testing.T) {
		svc := new(mockService)
		svc.On("GetAddressByCustomerNumber", mock.Anything, int64(1)).
			Return(sampleResponse(uuid.New()), nil)
		router := setupRouter(svc)

		w := performRequest(router, http.MethodGet, "/api/addresses/customer_number/1", nil)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestUpdateAddressHandler(t *testing.T) {
	t.Run("returns 200 with the updated record", func(t *testing.T) {
		svc := new(mockService)
		id := uuid.New()
		svc.On("UpdateAddress", mock.Anything, id, mock.AnythingOfType("*model.AddressUpdateRequest")).
			Return(sampleResponse(id), nil)
		router := setupRouter(svc)

		w := performRequest(router, http.MethodPut, "/api/addresses/"+id.String(), gin.H{
			"street": "456 Oak Lane",
		})

		assert.Equal(t, http.StatusOK, w.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Address updated successfully", body["message"])
	})

	t.Run("returns 409 when the merge collides on coordinates", func(t *testing.T) {
		svc := new(mockService)
		id := uuid.New()
		svc.On("UpdateAddress", mock.Anything, id, mock.Anything).
			Return(nil, a.NewDuplicateCoordinates(51.5, -0.1))
		router := setupRouter(svc)

		w := performRequest(router, http.MethodPut, "/api/addresses/"+id.String(), gin.H{
			"lat": 51.5,
			"lon": -0.1,
		})

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestDeleteAddressHandler(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		svc := new(mockService)
		id := uuid.New()
		svc.On("DeleteAddress", mock.Anything, id).Return(nil)
		router := setupRouter(svc)

		w := performRequest(router, http.MethodDelete, "/api/addresses/"+id.String(), nil)

		assert.Equal(t, http.StatusOK, w.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Address deleted successfully", body["message"])
	})

	t.Run("returns 404 for a missing record", func(t *testing.T) {
		svc := new(mockService)
		id := uuid.New()
		svc.On("DeleteAddress", mock.Anything, id).Return(a.NewNotFoundByID(id.String()))
		router := setupRouter(svc)

		w := performRequest(router, http.MethodDelete, "/api/addresses/"+id.String(), nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestStorageFailureIsOpaque(t *testing.T) {
	svc := new(mockService)
	svc.On("ListAddresses", mock.Anything, "").
		Return(nil, a.NewStorageError("list", assert.AnError))
	router := setupRouter(svc)

	w := performRequest(router, http.MethodGet, "/api/addresses", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Internal server error", body["message"])
	assert.NotContains(t, w.Body.String(), assert.AnError.Error())
}
