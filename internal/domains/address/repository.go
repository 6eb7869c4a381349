package address

import (
	"context"

	"github.com/google/uuid"

	"addressbook-backend/internal/domains/address/model"
)

// Repository is the storage contract for address records. Lookups that
// find nothing return (nil, nil); the service maps that to a not-found
// domain error naming the lookup key.
type Repository interface {
	Create(ctx context.Context, addr *model.Address) (*model.Address, error)

	// List returns all addresses, optionally narrowed by a free-text
	// token matched case-insensitively against first name, last name,
	// phone and street. Order is insertion order.
	List(ctx context.Context, filter string) ([]*model.Address, error)

	GetByID(ctx context.Context, id uuid.UUID) (*model.Address, error)
	GetByPhone(ctx context.Context, phone string) (*model.Address, error)
	GetByCustomerNumber(ctx context.Context, n int64) (*model.Address, error)

	// CoordinatesTaken reports whether another record already occupies
	// the exact (lat, lon) pair. exclude skips the record being
	// updated; pass uuid.Nil on create.
	CoordinatesTaken(ctx context.Context, lat, lon float64, exclude uuid.UUID) (bool, error)

	Update(ctx context.Context, id uuid.UUID, addr *model.Address) (*model.Address, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
