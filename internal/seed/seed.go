package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type addressSeed struct {
	FirstName      string
	LastName       string
	Street         string
	Postcode       string
	State          string
	Country        string
	Lat            float64
	Lon            float64
	Phone          string
	CustomerNumber int64
}

// Apply clears the collection and inserts the sample addresses, each
// assigned a customer number starting from 1. One-shot, destructive.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	initialAddresses := []addressSeed{
		{
			FirstName: "John",
			LastName:  "Doe",
			Street:    "123 Elm Street",
			Postcode:  "E1 6AN",
			State:     "London",
			Country:   "United Kingdom",
			Lat:       51.509865,
			Lon:       -0.118092,
			Phone:     "07063116133",
		},
		{
			FirstName: "Jane",
			LastName:  "Smith",
			Street:    "456 Oak Lane",
			Postcode:  "SW1A 2AA",
			State:     "London",
			Country:   "United Kingdom",
			Lat:       51.503363,
			Lon:       -0.127625,
			Phone:     "08012345678",
		},
	}
	for i := range initialAddresses {
		initialAddresses[i].CustomerNumber = int64(i + 1)
	}

	if _, err := pool.Exec(ctx, `TRUNCATE addresses`); err != nil {
		return fmt.Errorf("clear addresses: %w", err)
	}

	const q = `
INSERT INTO addresses (first_name, last_name, street, postcode, state, country, lat, lon, phone, customer_number)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
`
	for _, addr := range initialAddresses {
		_, err := pool.Exec(ctx, q,
			addr.FirstName, addr.LastName, addr.Street, addr.Postcode, addr.State,
			addr.Country, addr.Lat, addr.Lon, addr.Phone, addr.CustomerNumber,
		)
		if err != nil {
			return fmt.Errorf("insert address %s %s: %w", addr.FirstName, addr.LastName, err)
		}
	}

	return nil
}
