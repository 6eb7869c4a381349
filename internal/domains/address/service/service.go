package service

import (
	"context"
	"errors"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	a "addressbook-backend/internal/domains/address"
	"addressbook-backend/internal/domains/address/model"
)

type addressService struct {
	repo a.Repository
}

func NewAddressService(repo a.Repository) ServiceInterface {
	return &addressService{
		repo: repo,
	}
}

// CreateAddress validates the record and persists it. The duplicate
// coordinate check is advisory: it reads before the write and can race
// under concurrent creates.
func (s *addressService) CreateAddress(ctx context.Context, req *model.AddressCreateRequest) (*model.AddressResponse, error) {
	addr := req.ToModel()
	addr.Phone = digitsOnly(addr.Phone)

	if err := model.ValidateAddress(addr); err != nil {
		return nil, asValidationError(err)
	}

	if addr.Lat != nil && addr.Lon != nil {
		taken, err := s.repo.CoordinatesTaken(ctx, *addr.Lat, *addr.Lon, uuid.Nil)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, a.NewDuplicateCoordinates(*addr.Lat, *addr.Lon)
		}
	}

	created, err := s.repo.Create(ctx, addr)
	if err != nil {
		return nil, err
	}

	return created.ToResponse(), nil
}

// ListAddresses retrieves all addresses, optionally narrowed by a
// free-text search token.
func (s *addressService) ListAddresses(ctx context.Context, search string) ([]*model.AddressResponse, error) {
	addrs, err := s.repo.List(ctx, strings.TrimSpace(search))
	if err != nil {
		return nil, err
	}

	responses := make([]*model.AddressResponse, len(addrs))
	for i, addr := range addrs {
		responses[i] = addr.ToResponse()
	}

	return responses, nil
}

func (s *addressService) GetAddressByID(ctx context.Context, id uuid.UUID) (*model.AddressResponse, error) {
	addr, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if addr == nil {
		return nil, a.NewNotFoundByID(id.String())
	}

	return addr.ToResponse(), nil
}

// GetAddressByPhone sanitizes the input to digits before the lookup and
// returns the reduced projection without phone and customer number.
func (s *addressService) GetAddressByPhone(ctx context.Context, phone string) (*model.CustomerProjection, error) {
	sanitized := digitsOnly(phone)

	addr, err := s.repo.GetByPhone(ctx, sanitized)
	if err != nil {
		return nil, err
	}
	if addr == nil {
		return nil, a.NewNotFoundByPhone(sanitized)
	}

	return addr.ToProjection(), nil
}

func (s *addressService) GetAddressByCustomerNumber(ctx context.Context, n int64) (*model.AddressResponse, error) {
	addr, err := s.repo.GetByCustomerNumber(ctx, n)
	if err != nil {
		return nil, err
	}
	if addr == nil {
		return nil, a.NewNotFoundByCustomerNumber(n)
	}

	return addr.ToResponse(), nil
}

// UpdateAddress merges the supplied fields onto the stored record, runs
// the same validation as create on the merged result and replaces the
// record. The coordinate check is re-run here too, excluding the record
// itself; create-only checking would let updates collide silently.
func (s *addressService) UpdateAddress(ctx context.Context, id uuid.UUID, req *model.AddressUpdateRequest) (*model.AddressResponse, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, a.NewNotFoundByID(id.String())
	}

	merged := req.ApplyTo(existing)
	merged.Phone = digitsOnly(merged.Phone)

	if err := model.ValidateAddress(merged); err != nil {
		return nil, asValidationError(err)
	}

	if merged.Lat != nil && merged.Lon != nil {
		taken, err := s.repo.CoordinatesTaken(ctx, *merged.Lat, *merged.Lon, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, a.NewDuplicateCoordinates(*merged.Lat, *merged.Lon)
		}
	}

	updated, err := s.repo.Update(ctx, id, merged)
	if err != nil {
		return nil, err
	}

	return updated.ToResponse(), nil
}

func (s *addressService) DeleteAddress(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// digitsOnly strips everything that is not a decimal digit.
func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// asValidationError converts an ozzo validation result into the domain
// error shape, one entry per violated field, ordered by field path.
func asValidationError(err error) error {
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return a.NewValidationError([]a.FieldViolation{{Path: "body", Message: err.Error()}})
	}

	paths := make([]string, 0, len(verrs))
	for path := range verrs {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	details := make([]a.FieldViolation, 0, len(paths))
	for _, path := range paths {
		details = append(details, a.FieldViolation{Path: path, Message: verrs[path].Error()})
	}

	return a.NewValidationError(details)
}
