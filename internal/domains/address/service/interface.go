package service

import (
	"context"

	"github.com/google/uuid"

	"addressbook-backend/internal/domains/address/model"
)

// ServiceInterface is the business-logic contract for address records.
type ServiceInterface interface {
	CreateAddress(ctx context.Context, req *model.AddressCreateRequest) (*model.AddressResponse, error)
	ListAddresses(ctx context.Context, search string) ([]*model.AddressResponse, error)
	GetAddressByID(ctx context.Context, id uuid.UUID) (*model.AddressResponse, error)
	GetAddressByPhone(ctx context.Context, phone string) (*model.CustomerProjection, error)
	GetAddressByCustomerNumber(ctx context.Context, n int64) (*model.AddressResponse, error)
	UpdateAddress(ctx context.Context, id uuid.UUID, req *model.AddressUpdateRequest) (*model.AddressResponse, error)
	DeleteAddress(ctx context.Context, id uuid.UUID) error
}
