package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	a "addressbook-backend/internal/domains/address"
	"addressbook-backend/internal/domains/address/model"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Create(ctx context.Context, addr *model.Address) (*model.Address, error) {
	args := m.Called(ctx, addr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Address), args.Error(1)
}

func (m *mockRepository) List(ctx context.Context, filter string) ([]*model.Address, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Address), args.Error(1)
}

func (m *mockRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Address, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Address), args.Error(1)
}

func (m *mockRepository) GetByPhone(ctx context.Context, phone string) (*model.Address, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Address), args.Error(1)
}

func (m *mockRepository) GetByCustomerNumber(ctx context.Context, n int64) (*model.Address, error) {
	args := m.Called(ctx, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Address), args.Error(1)
}

func (m *mockRepository) CoordinatesTaken(ctx context.Context, lat, lon float64, exclude uuid.UUID) (bool, error) {
	args := m.Called(ctx, lat, lon, exclude)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepository) Update(ctx context.Context, id uuid.UUID, addr *model.Address) (*model.Address, error) {
	args := m.Called(ctx, id, addr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Address), args.Error(1)
}

func (m *mockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func validCreateRequest() *model.AddressCreateRequest {
	lat, lon := 51.509865, -0.118092
	custNo := model.CustomerNumber(1)
	return &model.AddressCreateRequest{
		FirstName:      "John",
		LastName:       "Doe",
		Street:         "123 Elm Street",
		Postcode:       "E1 6AN",
		State:          "London",
		Country:        "United Kingdom",
		Lat:            &lat,
		Lon:            &lon,
		Phone:          "07063116133",
		CustomerNumber: &custNo,
	}
}

func storedAddress(id uuid.UUID) *model.Address {
	addr := validCreateRequest().ToModel()
	addr.ID = id
	return addr
}

func TestCreateAddress(t *testing.T) {
	t.Run("creates a valid address", func(t *testing.T) {
		repo := new(mockRepository)
		svc := NewAddressService(repo)

		id := uuid.New()
		repo.On("CoordinatesTaken", mock.Anything, 51.509865, -0.118092, uuid.Nil).Return(false, nil)
		repo.On("Create", mock.Anything, mock.AnythingOfType("*model.Address")).Return(storedAddress(id), nil)

		result, err := svc.CreateAddress(context.Background(), validCreateRequest())

		require.NoError(t, err)
		assert.Equal(t, id, result.ID)
		repo.AssertExpectations(t)
	})

	t.Run("sanitizes phone before validation", func(t *testing.T) {
		repo := new(mockRepository)
		svc := NewAddressService(repo)

		req := validCreateRequest()
		req.Phone = "070-631 (16133)"
		req.Lat = nil
		req.Lon = nil

		repo.On("Create", mock.Anything, mock.MatchedBy(func(addr *model.Address) bool {
			return addr.Phone == "07063116133"
		})).Return(storedAddress(uuid.New()), nil)

		_, err := svc.CreateAddress(context.Background(), req)

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("rejects an invalid address without touching the repository", func(t *testing.T) {
		repo := new(mockRepository)
		svc := NewAddressService(repo)

		req := validCreateRequest()
		req.FirstName = ""
		req.Phone = "123"

		_, err := svc.CreateAddress(context.Background(), req)

		require.Error(t, err)
		assert.True(t, a.IsValidation(err))

		var domErr *a.DomainError
		require.ErrorAs(t, err, &domErr)
		paths := make([]string, len(domErr.Details))
		for i, d := range domErr.Details {
			paths[i] = d.Path
		}
		assert.Equal(t, []string{"first_name", "phone"}, paths, "violations sorted by field path")
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("rejects occupied coordinates", func(t *testing.T) {
		repo := new(mockRepository)
		svc := NewAddressService(repo)

		repo.On("CoordinatesTaken", mock.Anything, 51.509865, -0.118092, uuid.Nil).Return(true, nil)

		_, err := svc.CreateAddress(context.Background(), validCreateRequest())

		require.Error(t, err)
		assert.True(t, a.IsConflict(err))
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("skips the coordinate check when lat or lon is absent", func(t *testing.T) {
		repo := new(mockRepository)
		svc := NewAddressService(repo)

		req := validCreateRequest()
		req.Lon = nil
		repo.On("Create", mock.Anything, mock.Anything).Return(storedAddress(uuid.New()), nil)

		_, err := svc.CreateAddress(context.Background(), req)

		require.NoError(t, err)
		repo.AssertNotCalled(t, "CoordinatesTaken")
	})
}

func TestUpdateAddress(t *testing.T) {
	t.Run("merges, revalidates and persists", func(t *testing.T) {
		repo := new(mockRepository)
		svc := NewAddressService(repo)

		id := uuid.New()
		newStreet := "456 Oak Lane"
		req := &model.AddressUpdateRequest{Street: &newStreet}

		updated := storedAddress(id)
		updated.Street = newStreet

		repo.On("GetByID", mock.Anything, id).Return(storedAddress(id), nil)
		repo.On("CoordinatesTaken", mock.Anything, 51.509865, -0.118092, id).Return(false, nil)
		repo.On("Update", mock.Anything, id, mock.MatchedBy(func(addr *model.Address) bool {
			return addr.Street == newStreet && addr.FirstName == "John"
		})).Return(updated, nil)

		result, err := svc.UpdateAddress(context.Background(), id, req)

		require.NoError(t, err)
		assert.Equal(t, newStreet, result.Street)
		repo.AssertExpectations(t)
	})

	t.Run("rejects a merge that breaks validation", func(t *testing.T) {
		repo := new(mockRepository)
		svc := NewAddressService(repo)

		id := uuid.New()
		badPhone := "123"
		req := &model.AddressUpdateRequest{Phone: &badPhone}

		repo.On("GetByID", mock.Anything, id).Return(storedAddress(id), nil)

		_, err := svc.UpdateAddress(context.Background(), id, req)

		require.Error(t, err)
		assert.True(t, a.IsValidation(err))
		repo.AssertNotCalled(t, "Update")
	})

	t.Run("checks coordinates excluding the record itself", func(t *testing.T) {
		repo := new(mockRepository)
		svc := NewAddressService(repo)

		id := uuid.New()
		lat, lon := 48.8566, 2.3522
		req := &model.AddressUpdateRequest{Lat: &lat, Lon: &lon}

		repo.On("GetByID", mock.Anything, id).Return(storedAddress(id), nil)
		repo.On("CoordinatesTaken", mock.Anything, lat, lon, id).Return(true, nil)

		_, err := svc.UpdateAddress(context.Background(), id, req)

		require.Error(t, err)
		assert.True(t, a.IsConflict(err))
		repo.AssertNotCalled(t, "Update")
	})

	t.Run("returns not found for a missing record", func(t *testing.T) {
		repo := new(mockRepository)
		svc := NewAddressService(repo)

		id := uuid.New()
		repo.On("GetByID", mock.Anything, id).Return(nil, nil)

		street := "456 Oak Lane"
		_, err := svc.UpdateAddress(context.Background(), id, &model.AddressUpdateRequest{Street: &street})

		require.Error(t, err)
		assert.True(t, a.IsNotFound(err))
	})
}

func TestGetAddressByPhone(t *testing.T) {
	t.Run("sanitizes the lookup key and projects the result", func(t *testing.T) {
		repo := new(mockRepository)
		svc := NewAddressService(repo)

		repo.On("GetByPhone", mock.Anything, "07063116133").Return(storedAddress(uuid.New()), nil)

		result, err := svc.GetAddressByPhone(context.Background(), "070 631-16133")

		require.NoError(t, err)
		assert.Equal(t, "John", result.FirstName)
		repo.AssertExpectations(t)
	})

	t.Run("reports the sanitized phone in the not-found message", func(t *testing.T) {
		repo := new(mockRepository)
		svc := NewAddressService(repo)

		repo.On("GetByPhone", mock.Anything, "0123456789").Return(nil, nil)

		_, err := svc.GetAddressByPhone(context.Background(), "01-234 567 89")

		require.Error(t, err)
		assert.True(t, a.IsNotFound(err))
		assert.Contains(t, err.Error(), "0123456789")
	})
}

func TestGetAddressByCustomerNumber(t *testing.T) {
	repo := new(mockRepository)
	svc := NewAddressService(repo)

	repo.On("GetByCustomerNumber", mock.Anything, int64(404)).Return(nil, nil)

	_, err := svc.GetAddressByCustomerNumber(context.Background(), 404)

	require.Error(t, err)
	assert.True(t, a.IsNotFound(err))
}

func TestListAddresses(t *testing.T) {
	repo := new(mockRepository)
	svc := NewAddressService(repo)

	repo.On("List", mock.Anything, "john").Return([]*model.Address{storedAddress(uuid.New())}, nil)

	results, err := svc.ListAddresses(context.Background(), "  john  ")

	require.NoError(t, err)
	assert.Len(t, results, 1)
	repo.AssertExpectations(t)
}

func TestDeleteAddress(t *testing.T) {
	repo := new(mockRepository)
	svc := NewAddressService(repo)

	id := uuid.New()
	repo.On("Delete", mock.Anything, id).Return(a.NewNotFoundByID(id.String()))

	err := svc.DeleteAddress(context.Background(), id)

	require.Error(t, err)
	assert.True(t, a.IsNotFound(err))
}

func TestStorageErrorsPassThrough(t *testing.T) {
	repo := new(mockRepository)
	svc := NewAddressService(repo)

	boom := a.NewStorageError("list", errors.New("connection reset"))
	repo.On("List", mock.Anything, "").Return(nil, boom)

	_, err := svc.ListAddresses(context.Background(), "")

	require.Error(t, err)
	assert.False(t, a.IsValidation(err))
	assert.False(t, a.IsNotFound(err))
}
