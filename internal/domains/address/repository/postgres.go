package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	a "addressbook-backend/internal/domains/address"
	"addressbook-backend/internal/domains/address/model"
)

const addressColumns = `id, first_name, last_name, street, postcode, state, country, lat, lon, phone, customer_number, created_at, updated_at`

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) a.Repository {
	return &postgresRepository{
		pool: pool,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAddress(row rowScanner) (*model.Address, error) {
	var addr model.Address
	err := row.Scan(
		&addr.ID, &addr.FirstName, &addr.LastName, &addr.Street,
		&addr.Postcode, &addr.State, &addr.Country, &addr.Lat, &addr.Lon,
		&addr.Phone, &addr.CustomerNumber, &addr.CreatedAt, &addr.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &addr, nil
}

// escapeLike neutralizes the LIKE metacharacters so a search token is
// matched literally inside the ILIKE pattern.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

// translateUnique turns storage-level unique violations into the
// conflict errors the normalizer knows about.
func translateUnique(err error, addr *model.Address) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return nil
	}

	switch pgErr.ConstraintName {
	case "addresses_phone_key":
		return a.NewDuplicatePhone(addr.Phone)
	case "addresses_customer_number_key":
		if addr.CustomerNumber != nil {
			return a.NewDuplicateCustomerNumber(*addr.CustomerNumber)
		}
	}
	return nil
}

// Create inserts a new address record. The store assigns the id.
func (r *postgresRepository) Create(ctx context.Context, addr *model.Address) (*model.Address, error) {
	query := `
    INSERT INTO addresses
    (first_name, last_name, street, postcode, state, country, lat, lon, phone, customer_number, created_at, updated_at)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
    RETURNING ` + addressColumns

	row := r.pool.QueryRow(
		ctx, query,
		addr.FirstName, addr.LastName, addr.Street, addr.Postcode, addr.State,
		addr.Country, addr.Lat, addr.Lon, addr.Phone, addr.CustomerNumber,
	)

	created, err := scanAddress(row)
	if err != nil {
		if conflict := translateUnique(err, addr); conflict != nil {
			return nil, conflict
		}
		return nil, a.NewStorageError("create", err)
	}

	return created, nil
}

// List retrieves addresses in insertion order, optionally narrowed by a
// free-text token matched against first_name, last_name, phone and
// street.
func (r *postgresRepository) List(ctx context.Context, filter string) ([]*model.Address, error) {
	query := `
    SELECT ` + addressColumns + `
    FROM addresses
    WHERE $1 = ''
       OR first_name ILIKE '%' || $1 || '%'
       OR last_name ILIKE '%' || $1 || '%'
       OR phone ILIKE '%' || $1 || '%'
       OR street ILIKE '%' || $1 || '%'
    ORDER BY created_at, id
  `

	rows, err := r.pool.Query(ctx, query, escapeLike(filter))
	if err != nil {
		return nil, a.NewStorageError("list", err)
	}
	defer rows.Close()

	var addresses []*model.Address

	for rows.Next() {
		addr, err := scanAddress(rows)
		if err != nil {
			return nil, a.NewStorageError("list", err)
		}
		addresses = append(addresses, addr)
	}

	if err = rows.Err(); err != nil {
		return nil, a.NewStorageError("list", err)
	}

	return addresses, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Address, error) {
	query := `SELECT ` + addressColumns + ` FROM addresses WHERE id = $1`

	addr, err := scanAddress(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, a.NewStorageError("get", err)
	}

	return addr, nil
}

func (r *postgresRepository) GetByPhone(ctx context.Context, phone string) (*model.Address, error) {
	query := `SELECT ` + addressColumns + ` FROM addresses WHERE phone = $1`

	addr, err := scanAddress(r.pool.QueryRow(ctx, query, phone))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, a.NewStorageError("get", err)
	}

	return addr, nil
}

func (r *postgresRepository) GetByCustomerNumber(ctx context.Context, n int64) (*model.Address, error) {
	query := `SELECT ` + addressColumns + ` FROM addresses WHERE customer_number = $1`

	addr, err := scanAddress(r.pool.QueryRow(ctx, query, n))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, a.NewStorageError("get", err)
	}

	return addr, nil
}

// CoordinatesTaken is the advisory duplicate-location check. It is a
// plain read, so two concurrent writes with the same pair can both pass
// it; that race is accepted.
func (r *postgresRepository) CoordinatesTaken(ctx context.Context, lat, lon float64, exclude uuid.UUID) (bool, error) {
	query := `
    SELECT EXISTS (
      SELECT 1 FROM addresses
      WHERE lat = $1 AND lon = $2 AND id != $3
    )
  `

	var taken bool
	if err := r.pool.QueryRow(ctx, query, lat, lon, exclude).Scan(&taken); err != nil {
		return false, a.NewStorageError("check coordinates for", err)
	}

	return taken, nil
}

// Update replaces the stored top-level fields with the supplied ones.
func (r *postgresRepository) Update(ctx context.Context, id uuid.UUID, addr *model.Address) (*model.Address, error) {
	query := `
    UPDATE addresses
    SET first_name = $1, last_name = $2, street = $3, postcode = $4, state = $5,
        country = $6, lat = $7, lon = $8, phone = $9, customer_number = $10,
        updated_at = NOW()
    WHERE id = $11
    RETURNING ` + addressColumns

	row := r.pool.QueryRow(
		ctx, query,
		addr.FirstName, addr.LastName, addr.Street, addr.Postcode, addr.State,
		addr.Country, addr.Lat, addr.Lon, addr.Phone, addr.CustomerNumber, id,
	)

	updated, err := scanAddress(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, a.NewNotFoundByID(id.String())
		}
		if conflict := translateUnique(err, addr); conflict != nil {
			return nil, conflict
		}
		return nil, a.NewStorageError("update", err)
	}

	return updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM addresses WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return a.NewStorageError("delete", err)
	}

	if result.RowsAffected() == 0 {
		return a.NewNotFoundByID(id.String())
	}

	return nil
}
